package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	BaseModel
	SoftDelete
	ShopID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name        *string   `gorm:"type:varchar(255)" json:"name"`
	PhoneNumber *string   `gorm:"type:varchar(10)" json:"phone_number"`
	Email       *string   `gorm:"type:varchar(255)" json:"email"`
	Address     *string   `gorm:"type:text" json:"address"`
}

// CustomerResponse is a customer as listed to clients
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        *string   `json:"name"`
	PhoneNumber *string   `json:"phone_number"`
	Email       *string   `json:"email"`
	Address     *string   `json:"address"`
}

func (c *Customer) ToResponse() CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Address:     c.Address,
	}
}

// CustomerItemPrice is a customer-specific price override for one item
type CustomerItemPrice struct {
	CustomerID  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"customer_id"`
	ItemID      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"item_id"`
	CustomPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"custom_price"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
