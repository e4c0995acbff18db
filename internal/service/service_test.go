package service

import (
	"context"
	"testing"
	"time"

	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/event"
	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockShopRepo struct {
	mock.Mock
}

func (m *mockShopRepo) WithTx(*gorm.DB) repository.ShopRepository { return m }

func (m *mockShopRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Shop, error) {
	args := m.Called(ctx, accountID)
	shop, _ := args.Get(0).(*model.Shop)
	return shop, args.Error(1)
}

func (m *mockShopRepo) ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *mockShopRepo) Create(ctx context.Context, shop *model.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDeriveAmountPaid(t *testing.T) {
	total := dec("100.00")
	cases := []struct {
		name     string
		status   model.BillStatus
		supplied decimal.NullDecimal
		want     decimal.Decimal
		wantErr  bool
	}{
		{"paid ignores supplied", model.BillPaid, decimal.NewNullDecimal(dec("10")), total, false},
		{"unpaid ignores supplied", model.BillUnpaid, decimal.NewNullDecimal(dec("60")), decimal.Zero, false},
		{"partial takes supplied", model.BillPartial, decimal.NewNullDecimal(dec("40")), dec("40"), false},
		{"partial defaults to total", model.BillPartial, decimal.NullDecimal{}, total, false},
		{"partial zero allowed", model.BillPartial, decimal.NewNullDecimal(decimal.Zero), decimal.Zero, false},
		{"partial over total", model.BillPartial, decimal.NewNullDecimal(dec("100.01")), decimal.Zero, true},
		{"partial negative", model.BillPartial, decimal.NewNullDecimal(dec("-1")), decimal.Zero, true},
		{"unknown status", model.BillStatus("refunded"), decimal.NullDecimal{}, decimal.Zero, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := deriveAmountPaid(tc.status, total, tc.supplied)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s got %s", tc.want, got)
		})
	}
}

func TestCreateBillRequestCheck(t *testing.T) {
	line := BillItemInput{Item: &BillItemRef{ID: uuid.New()}, Quantity: 1, Price: decimal.NewNullDecimal(dec("5"))}

	req := &CreateBillRequest{Status: model.BillPaid, TotalAmount: dec("5")}
	_, err := req.check()
	require.Error(t, err)
	assert.Equal(t, msgNoBillItems, apperr.Message(err))

	req = &CreateBillRequest{BillItems: []BillItemInput{line}, Status: "", TotalAmount: dec("5")}
	_, err = req.check()
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	req = &CreateBillRequest{BillItems: []BillItemInput{line}, Status: model.BillPaid, TotalAmount: dec("-5")}
	_, err = req.check()
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	req = &CreateBillRequest{BillItems: []BillItemInput{line}, Status: model.BillPaid, TotalAmount: dec("5"), CustomerPhone: strPtr("12345")}
	_, err = req.check()
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	req = &CreateBillRequest{
		BillItems:     []BillItemInput{line},
		Status:        model.BillUnpaid,
		TotalAmount:   dec("5"),
		AmountPaid:    decimal.NewNullDecimal(dec("5")),
		CustomerName:  strPtr("  "),
		CustomerPhone: strPtr(" 9876543210 "),
	}
	paid, err := req.check()
	require.NoError(t, err)
	assert.True(t, paid.IsZero())
	assert.Nil(t, req.CustomerName)
	assert.Equal(t, "9876543210", *req.CustomerPhone)
}

func TestBillItemInputValid(t *testing.T) {
	good := BillItemInput{Item: &BillItemRef{ID: uuid.New()}, Quantity: 2, Price: decimal.NewNullDecimal(decimal.Zero)}
	assert.True(t, good.valid())

	noItem := good
	noItem.Item = nil
	assert.False(t, noItem.valid())

	nilID := good
	nilID.Item = &BillItemRef{}
	assert.False(t, nilID.valid())

	zeroQty := good
	zeroQty.Quantity = 0
	assert.False(t, zeroQty.valid())

	noPrice := good
	noPrice.Price = decimal.NullDecimal{}
	assert.False(t, noPrice.valid())

	negative := good
	negative.Price = decimal.NewNullDecimal(dec("-0.01"))
	assert.False(t, negative.valid())
}

func TestStockActionDelta(t *testing.T) {
	d, err := StockIncrement.delta()
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = StockDecrement.delta()
	require.NoError(t, err)
	assert.Equal(t, -1, d)

	_, err = StockAction("explode").delta()
	assert.Equal(t, "Invalid action", apperr.Message(err))
}

func TestCustomerRequestCheck(t *testing.T) {
	err := (&CustomerRequest{Name: strPtr(" "), Email: strPtr("")}).check()
	assert.Equal(t, "At least one field (name, phone, email, or address) is required.", apperr.Message(err))

	err = (&CustomerRequest{PhoneNumber: strPtr("98765")}).check()
	assert.Equal(t, "Phone number must be 10 digits.", apperr.Message(err))

	err = (&CustomerRequest{Email: strPtr("not-an-email")}).check()
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	req := &CustomerRequest{Name: strPtr(" Asha "), Address: strPtr("")}
	require.NoError(t, req.check())
	assert.Equal(t, "Asha", *req.Name)
	assert.Nil(t, req.Address)
}

func TestItemRequestValidation(t *testing.T) {
	req := &ItemRequest{Name: "  ", RetailPrice: dec("10")}
	req.normalize()
	err := validate(req)
	require.Error(t, err)
	assert.Contains(t, apperr.Message(err), "'name'")

	req = &ItemRequest{Name: "Rice"}
	err = validate(req)
	require.Error(t, err)
	assert.Contains(t, apperr.Message(err), "'retail_price'")

	negStock := -1
	req = &ItemRequest{Name: "Rice", RetailPrice: dec("10"), StockQuantity: &negStock}
	assert.Error(t, validate(req))

	req = &ItemRequest{Name: "Rice", RetailPrice: dec("10"), CostPrice: decimal.NewNullDecimal(dec("-1"))}
	assert.Error(t, validate(req))

	req = &ItemRequest{Name: "Rice", RetailPrice: dec("10")}
	assert.NoError(t, validate(req))
}

func TestItemRequestApplyKeepsStockWhenOmitted(t *testing.T) {
	item := &model.Item{StockQuantity: 7}
	(&ItemRequest{Name: "Rice", RetailPrice: dec("50")}).apply(item)
	assert.Equal(t, 7, item.StockQuantity)
	assert.Equal(t, "Rice", item.Name)

	zero := 0
	(&ItemRequest{Name: "Rice", RetailPrice: dec("50"), StockQuantity: &zero}).apply(item)
	assert.Equal(t, 0, item.StockQuantity)
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, DefaultSalesDays, ClampDays(0))
	assert.Equal(t, DefaultSalesDays, ClampDays(-3))
	assert.Equal(t, 30, ClampDays(30))
	assert.Equal(t, MaxSalesDays, ClampDays(10000))
}

func TestSalesWindowCoversExactlyNDays(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 3, 10, 2, 15, 0, 0, ist) // 2026-03-09 20:45 UTC

	start, end := salesWindow(now, 7)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, now.UTC(), end)

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	assert.Equal(t, 7, days)

	start, _ = salesWindow(now, 1)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)

	start, _ = salesWindow(now, 0)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), start)
}

// Rejected input must never reach the datastore; nil repositories would panic.
func TestValidationPrecedesDatastore(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	billing := NewBillingService(nil, nil, nil, nil, nil, nil, event.Nop{})
	_, err := billing.CreateBill(ctx, accountID, &CreateBillRequest{Status: model.BillPaid})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = billing.CustomerPrices(ctx, accountID, "123")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	items := NewItemService(nil, nil, nil, event.Nop{})
	_, err = items.CreateItem(ctx, accountID, &ItemRequest{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = items.AdjustStock(ctx, accountID, uuid.New(), "sideways")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	customers := NewCustomerService(nil, nil, event.Nop{})
	_, err = customers.CreateCustomer(ctx, accountID, &CustomerRequest{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	shops := NewShopService(nil, nil, nil)
	_, err = shops.CreateShop(ctx, accountID, &CreateShopRequest{Name: "   "})
	assert.Equal(t, "Shop name is required", apperr.Message(err))

	auth := NewAuthService(nil, nil, nil, nil, zerolog.Nop())
	_, err = auth.CheckUser(ctx, "12345")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = auth.CreateSession(ctx, &SessionRequest{PhoneNumber: "9876543210", Password: "short", OTP: "3210"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestNoShopIsNotFound(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	shops := &mockShopRepo{}
	shops.On("FindByAccountID", ctx, accountID).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewItemService(nil, nil, shops, event.Nop{}).ListItems(ctx, accountID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, msgNoShop, apperr.Message(err))

	_, err = NewDashboardService(shops, nil).GetDashboardStats(ctx, accountID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = NewShopService(nil, nil, shops).GetShop(ctx, accountID)
	assert.Equal(t, "No shop found for user", apperr.Message(err))

	shops.AssertExpectations(t)
}

func TestItemAuthorize(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	shop := &model.Shop{}
	shop.ID = uuid.New()

	shops := &mockShopRepo{}
	shops.On("FindByAccountID", ctx, accountID).Return(shop, nil)
	svc := &itemService{shopRepo: shops}

	assert.NoError(t, svc.authorize(ctx, accountID, &model.Item{ShopID: shop.ID}))

	err := svc.authorize(ctx, accountID, &model.Item{ShopID: uuid.New()})
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	stranger := uuid.New()
	shops.On("FindByAccountID", ctx, stranger).Return(nil, gorm.ErrRecordNotFound)
	err = svc.authorize(ctx, stranger, &model.Item{ShopID: shop.ID})
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))
}

func TestNullIfBlank(t *testing.T) {
	assert.Nil(t, nullIfBlank(nil))
	assert.Nil(t, nullIfBlank(strPtr(" \t")))
	assert.Equal(t, "x", *nullIfBlank(strPtr(" x ")))
}
