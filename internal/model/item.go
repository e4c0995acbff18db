package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which an item counts as low on the dashboard.
const LowStockThreshold = 10

type Item struct {
	BaseModel
	SoftDelete
	ShopID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	Name           string              `gorm:"type:varchar(255);not null" json:"name"`
	Description    *string             `gorm:"type:text" json:"description"`
	CostPrice      decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"cost_price"`
	WholesalePrice decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"wholesale_price"`
	RetailPrice    decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"retail_price"`
	StockQuantity  int                 `gorm:"not null;default:0" json:"stock_quantity"`
	SIUnit         *string             `gorm:"column:si_unit;type:varchar(20)" json:"si_unit"`
}

// IsStandardPrice reports whether price matches the item's retail or wholesale price.
// Anything else sold to a known customer is recorded as that customer's price.
func (i *Item) IsStandardPrice(price decimal.Decimal) bool {
	if price.Equal(i.RetailPrice) {
		return true
	}
	return i.WholesalePrice.Valid && price.Equal(i.WholesalePrice.Decimal)
}

// CatalogItem is an item as listed to clients
type CatalogItem struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	CostPrice      NullMoney `json:"cost_price"`
	WholesalePrice NullMoney `json:"wholesale_price"`
	RetailPrice    Money     `json:"retail_price"`
	StockQuantity  int       `json:"stock_quantity"`
	SIUnit         *string   `json:"si_unit"`
}

func (i *Item) ToCatalogItem() CatalogItem {
	return CatalogItem{
		ID:             i.ID,
		Name:           i.Name,
		Description:    i.Description,
		CostPrice:      NewNullMoney(i.CostPrice),
		WholesalePrice: NewNullMoney(i.WholesalePrice),
		RetailPrice:    NewMoney(i.RetailPrice),
		StockQuantity:  i.StockQuantity,
		SIUnit:         i.SIUnit,
	}
}

// CustomerCatalogItem is a catalog item annotated with a customer's own price
type CustomerCatalogItem struct {
	CatalogItem
	CustomPrice Money `json:"custom_price"`
}
