package model

import "github.com/google/uuid"

// Shop is the tenant boundary. Every item, customer and bill hangs off one.
type Shop struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	GSTIN     *string   `gorm:"column:gstin;type:varchar(20)" json:"gstin"`
	Address   *string   `gorm:"type:text" json:"address"`
}

// ShopResponse is the shape returned by GET /api/shop
type ShopResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	GSTIN   *string   `json:"gstin"`
	Address *string   `json:"address"`
}

func (s *Shop) ToResponse() ShopResponse {
	return ShopResponse{
		ID:      s.ID,
		Name:    s.Name,
		GSTIN:   s.GSTIN,
		Address: s.Address,
	}
}
