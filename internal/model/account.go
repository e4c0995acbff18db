package model

import (
	"golang.org/x/crypto/bcrypt"
)

// Account is a shopkeeper login, identified by phone number
type Account struct {
	BaseModel
	PhoneNumber  string `gorm:"type:varchar(10);uniqueIndex;not null" json:"phone_number"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Shop         *Shop  `gorm:"foreignKey:AccountID" json:"shop,omitempty"`
}

// SetPassword hashes and sets the account's password
func (a *Account) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}
