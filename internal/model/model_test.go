package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountPassword(t *testing.T) {
	var a Account
	require.NoError(t, a.SetPassword("hunter22"))
	assert.NotEqual(t, "hunter22", a.PasswordHash)
	assert.True(t, a.CheckPassword("hunter22"))
	assert.False(t, a.CheckPassword("hunter23"))
}

func TestItemIsStandardPrice(t *testing.T) {
	item := Item{RetailPrice: decimal.RequireFromString("50.00")}

	assert.True(t, item.IsStandardPrice(decimal.NewFromInt(50)))
	assert.False(t, item.IsStandardPrice(decimal.NewFromInt(45)))

	item.WholesalePrice = decimal.NewNullDecimal(decimal.RequireFromString("45.0"))
	assert.True(t, item.IsStandardPrice(decimal.NewFromInt(45)))
	assert.False(t, item.IsStandardPrice(decimal.RequireFromString("44.99")))
}

func TestBillStatusValid(t *testing.T) {
	assert.True(t, BillPaid.Valid())
	assert.True(t, BillUnpaid.Valid())
	assert.True(t, BillPartial.Valid())
	assert.False(t, BillStatus("").Valid())
	assert.False(t, BillStatus("refunded").Valid())
}

func TestBillToSummaryWalkIn(t *testing.T) {
	b := Bill{Status: BillPaid, TotalAmount: decimal.NewFromInt(10), AmountPaid: decimal.NewFromInt(10)}
	assert.Equal(t, WalkInName, b.ToSummary().CustomerName)

	empty := ""
	b.Customer = &Customer{Name: &empty}
	assert.Equal(t, WalkInName, b.ToSummary().CustomerName)

	name := "Asha"
	b.Customer = &Customer{Name: &name}
	assert.Equal(t, "Asha", b.ToSummary().CustomerName)
}

func TestBillToDetail(t *testing.T) {
	itemID := uuid.New()
	b := Bill{
		Items: []BillItem{
			{ItemID: itemID, Quantity: 2, PricePerUnit: decimal.NewFromInt(45), Item: &Item{Name: "Rice"}},
			{ItemID: uuid.New(), Quantity: 1, PricePerUnit: decimal.NewFromInt(5)},
		},
	}
	d := b.ToDetail()
	require.Len(t, d.Items, 2)
	assert.Equal(t, itemID, d.Items[0].ID)
	assert.Equal(t, "Rice", d.Items[0].Name)
	assert.Equal(t, 2, d.Items[0].Quantity)
	assert.Equal(t, "", d.Items[1].Name)
}

func TestShopToResponse(t *testing.T) {
	gstin := "27AAAAA0000A1Z5"
	s := Shop{Name: "Corner Store", GSTIN: &gstin}
	s.ID = uuid.New()
	r := s.ToResponse()
	assert.Equal(t, s.ID, r.ID)
	assert.Equal(t, "Corner Store", r.Name)
	assert.Equal(t, &gstin, r.GSTIN)
	assert.Nil(t, r.Address)
}

func TestMoneyJSONKeepsTwoDecimals(t *testing.T) {
	item := Item{
		Name:           "Rice",
		RetailPrice:    decimal.RequireFromString("45.00"),
		WholesalePrice: decimal.NewNullDecimal(decimal.RequireFromString("40.5")),
	}
	raw, err := json.Marshal(item.ToCatalogItem())
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "45.00", got["retail_price"])
	assert.Equal(t, "40.50", got["wholesale_price"])
	assert.Nil(t, got["cost_price"])
}

func TestMoneyJSONOnBillSummary(t *testing.T) {
	b := Bill{Status: BillPartial, TotalAmount: decimal.NewFromInt(170), AmountPaid: decimal.RequireFromString("99.999")}
	raw, err := json.Marshal(b.ToSummary())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"totalAmount":"170.00"`)
	assert.Contains(t, string(raw), `"amountPaid":"100.00"`)
}
