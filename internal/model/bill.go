package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillStatus string

const (
	BillPaid    BillStatus = "paid"
	BillUnpaid  BillStatus = "unpaid"
	BillPartial BillStatus = "partial"
)

func (s BillStatus) Valid() bool {
	switch s {
	case BillPaid, BillUnpaid, BillPartial:
		return true
	}
	return false
}

// WalkInName is shown for bills without a customer
const WalkInName = "Walk-in"

type Bill struct {
	BaseModel
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	Customer    *Customer       `gorm:"foreignKey:CustomerID" json:"-"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status      BillStatus      `gorm:"type:varchar(10);not null" json:"status"`
	AmountPaid  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount_paid"`
	Items       []BillItem      `gorm:"foreignKey:BillID" json:"-"`
}

// BillItem is one line of a bill. PricePerUnit is a snapshot taken at sale time.
type BillItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BillID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"bill_id"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Item         *Item           `gorm:"foreignKey:ItemID" json:"-"`
	LineNo       int             `gorm:"not null" json:"line_no"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PricePerUnit decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_per_unit"`
}

func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// BillSummary is the list projection of a bill
type BillSummary struct {
	ID           uuid.UUID  `json:"id"`
	CustomerID   *uuid.UUID `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	TotalAmount  Money      `json:"totalAmount"`
	CreatedAt    time.Time  `json:"createdAt"`
	Status       BillStatus `json:"status"`
	AmountPaid   Money      `json:"amountPaid"`
}

// BillLine is a line item in the bill detail projection
type BillLine struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Price    Money     `json:"price"`
}

type BillDetail struct {
	BillSummary
	Items []BillLine `json:"items"`
}

func (b *Bill) ToSummary() BillSummary {
	name := WalkInName
	if b.Customer != nil && b.Customer.Name != nil && *b.Customer.Name != "" {
		name = *b.Customer.Name
	}
	return BillSummary{
		ID:           b.ID,
		CustomerID:   b.CustomerID,
		CustomerName: name,
		TotalAmount:  NewMoney(b.TotalAmount),
		CreatedAt:    b.CreatedAt,
		Status:       b.Status,
		AmountPaid:   NewMoney(b.AmountPaid),
	}
}

func (b *Bill) ToDetail() BillDetail {
	lines := make([]BillLine, 0, len(b.Items))
	for _, bi := range b.Items {
		line := BillLine{ID: bi.ItemID, Quantity: bi.Quantity, Price: NewMoney(bi.PricePerUnit)}
		if bi.Item != nil {
			line.Name = bi.Item.Name
		}
		lines = append(lines, line)
	}
	return BillDetail{BillSummary: b.ToSummary(), Items: lines}
}
