package service

import (
	"context"
	"errors"
	"fmt"

	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/event"
	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/repository"
	"go-shopkeeper/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgNoBillItems  = "At least one item is required to create a bill."
	msgBadBillItem  = "Each item must have item_id, quantity, and price."
	msgBillNotFound = "Bill not found or access denied"
)

type BillingService interface {
	PrepareBill(ctx context.Context, accountID uuid.UUID) ([]model.CatalogItem, error)
	CustomerPrices(ctx context.Context, accountID uuid.UUID, phone string) (*CustomerPrices, error)
	CreateBill(ctx context.Context, accountID uuid.UUID, req *CreateBillRequest) (*model.Bill, error)
	ListBills(ctx context.Context, accountID uuid.UUID) ([]model.BillSummary, error)
	GetBill(ctx context.Context, accountID, billID uuid.UUID) (*model.BillDetail, error)
}

type CustomerPrices struct {
	Items         []model.CatalogItem         `json:"items"`
	CustomerItems []model.CustomerCatalogItem `json:"customer_items"`
}

type BillItemRef struct {
	ID uuid.UUID `json:"id"`
}

type BillItemInput struct {
	Item     *BillItemRef        `json:"item"`
	Quantity int                 `json:"quantity"`
	Price    decimal.NullDecimal `json:"price"`
}

func (l *BillItemInput) valid() bool {
	return l.Item != nil && l.Item.ID != uuid.Nil &&
		l.Quantity > 0 &&
		l.Price.Valid && !l.Price.Decimal.IsNegative()
}

type CreateBillRequest struct {
	CustomerName  *string             `json:"customerName"`
	CustomerPhone *string             `json:"customerPhone"`
	BillItems     []BillItemInput     `json:"billItems"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	Status        model.BillStatus    `json:"status"`
	AmountPaid    decimal.NullDecimal `json:"amountPaid"`
}

// check runs every rule that needs no datastore access and returns the amount paid.
func (r *CreateBillRequest) check() (decimal.Decimal, error) {
	if len(r.BillItems) == 0 {
		return decimal.Zero, apperr.Validation(msgNoBillItems)
	}
	if !r.Status.Valid() {
		return decimal.Zero, apperr.Validation("Status must be one of paid, unpaid or partial.")
	}
	if r.TotalAmount.IsNegative() {
		return decimal.Zero, apperr.Validation("Total amount cannot be negative.")
	}
	r.CustomerName = nullIfBlank(r.CustomerName)
	r.CustomerPhone = nullIfBlank(r.CustomerPhone)
	if r.CustomerPhone != nil && !validator.IsPhone(*r.CustomerPhone) {
		return decimal.Zero, apperr.Validation("Phone number must be 10 digits.")
	}
	return deriveAmountPaid(r.Status, r.TotalAmount, r.AmountPaid)
}

// deriveAmountPaid: paid settles the total, unpaid is zero, partial takes the
// supplied amount (or the total when omitted) within [0, total].
func deriveAmountPaid(status model.BillStatus, total decimal.Decimal, supplied decimal.NullDecimal) (decimal.Decimal, error) {
	switch status {
	case model.BillPaid:
		return total, nil
	case model.BillUnpaid:
		return decimal.Zero, nil
	case model.BillPartial:
		if !supplied.Valid {
			return total, nil
		}
		if supplied.Decimal.IsNegative() || supplied.Decimal.GreaterThan(total) {
			return decimal.Zero, apperr.Validation("Amount paid must be between 0 and the bill total.")
		}
		return supplied.Decimal, nil
	}
	return decimal.Zero, apperr.Validation("Status must be one of paid, unpaid or partial.")
}

type billingService struct {
	db           *gorm.DB
	shopRepo     repository.ShopRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	priceRepo    repository.PriceRepository
	billRepo     repository.BillRepository
	events       event.Publisher
}

func NewBillingService(
	db *gorm.DB,
	shopRepo repository.ShopRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	priceRepo repository.PriceRepository,
	billRepo repository.BillRepository,
	events event.Publisher,
) BillingService {
	return &billingService{
		db:           db,
		shopRepo:     shopRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		priceRepo:    priceRepo,
		billRepo:     billRepo,
		events:       events,
	}
}

func (s *billingService) catalog(ctx context.Context, shopID uuid.UUID) ([]model.CatalogItem, error) {
	items, err := s.itemRepo.FindAllByShop(ctx, shopID)
	if err != nil {
		return nil, apperr.Internal(err, "list items")
	}
	catalog := make([]model.CatalogItem, 0, len(items))
	for i := range items {
		catalog = append(catalog, items[i].ToCatalogItem())
	}
	return catalog, nil
}

func (s *billingService) PrepareBill(ctx context.Context, accountID uuid.UUID) ([]model.CatalogItem, error) {
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}
	return s.catalog(ctx, shop.ID)
}

// CustomerPrices returns the catalog plus the items the customer has a price of their own for.
func (s *billingService) CustomerPrices(ctx context.Context, accountID uuid.UUID, phone string) (*CustomerPrices, error) {
	if !validator.IsPhone(phone) {
		return nil, apperr.Validation("A 10-digit phone number is required")
	}
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	result := &CustomerPrices{Items: catalog, CustomerItems: []model.CustomerCatalogItem{}}

	customer, err := s.customerRepo.FindByPhone(ctx, shop.ID, phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, apperr.Internal(err, "find customer")
	}

	prices, err := s.priceRepo.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, apperr.Internal(err, "load customer prices")
	}
	custom := make(map[uuid.UUID]decimal.Decimal, len(prices))
	for _, p := range prices {
		custom[p.ItemID] = p.CustomPrice
	}
	for _, item := range catalog {
		if price, ok := custom[item.ID]; ok {
			result.CustomerItems = append(result.CustomerItems, model.CustomerCatalogItem{CatalogItem: item, CustomPrice: model.NewMoney(price)})
		}
	}
	return result, nil
}

// CreateBill writes the bill, its lines and any new customer prices in one transaction.
func (s *billingService) CreateBill(ctx context.Context, accountID uuid.UUID, req *CreateBillRequest) (*model.Bill, error) {
	amountPaid, err := req.check()
	if err != nil {
		return nil, err
	}
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}

	bill := &model.Bill{
		ShopID:      shop.ID,
		TotalAmount: req.TotalAmount,
		Status:      req.Status,
		AmountPaid:  amountPaid,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.resolveCustomer(ctx, tx, shop.ID, req.CustomerName, req.CustomerPhone)
		if err != nil {
			return err
		}
		if customer != nil {
			bill.CustomerID = &customer.ID
			bill.Customer = customer
		}

		if err := s.billRepo.WithTx(tx).Create(ctx, bill); err != nil {
			return apperr.FromDB(err, "")
		}

		ids := make([]uuid.UUID, 0, len(req.BillItems))
		for _, line := range req.BillItems {
			if line.Item != nil {
				ids = append(ids, line.Item.ID)
			}
		}
		items, err := s.itemRepo.WithTx(tx).FindByIDsInShop(ctx, shop.ID, ids)
		if err != nil {
			return apperr.Internal(err, "load bill items")
		}

		bills := s.billRepo.WithTx(tx)
		prices := s.priceRepo.WithTx(tx)
		for i, line := range req.BillItems {
			if !line.valid() {
				return apperr.Validation(msgBadBillItem)
			}
			item, ok := items[line.Item.ID]
			if !ok {
				return apperr.Validation(msgBadBillItem)
			}

			billItem := &model.BillItem{
				BillID:       bill.ID,
				ItemID:       item.ID,
				LineNo:       i + 1,
				Quantity:     line.Quantity,
				PricePerUnit: line.Price.Decimal,
			}
			if err := bills.CreateItem(ctx, billItem); err != nil {
				return apperr.FromDB(err, "")
			}
			bill.Items = append(bill.Items, *billItem)

			if customer == nil || item.IsStandardPrice(line.Price.Decimal) {
				continue
			}
			override := &model.CustomerItemPrice{
				CustomerID:  customer.ID,
				ItemID:      item.ID,
				CustomPrice: line.Price.Decimal,
			}
			if err := prices.Upsert(ctx, override); err != nil {
				return apperr.Internal(err, "save customer price")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := bill.ToSummary()
	_ = s.events.Publish(ctx, event.New(event.BillCreated, shop.ID, accountID, summary,
		fmt.Sprintf("Bill of %s created for %s", bill.TotalAmount.StringFixed(2), summary.CustomerName)))
	return bill, nil
}

// resolveCustomer matches a live customer by phone, then by name, and registers
// a new one when neither matches. No name and no phone means a walk-in bill.
func (s *billingService) resolveCustomer(ctx context.Context, tx *gorm.DB, shopID uuid.UUID, name, phone *string) (*model.Customer, error) {
	if name == nil && phone == nil {
		return nil, nil
	}
	customers := s.customerRepo.WithTx(tx)

	if phone != nil {
		c, err := customers.FindByPhone(ctx, shopID, *phone)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err, "find customer")
		}
	}
	if name != nil {
		c, err := customers.FindByName(ctx, shopID, *name)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err, "find customer")
		}
	}

	c := &model.Customer{ShopID: shopID, Name: name, PhoneNumber: phone}
	if err := customers.Create(ctx, c); err != nil {
		return nil, conflictOnPhone(err)
	}
	return c, nil
}

func (s *billingService) ListBills(ctx context.Context, accountID uuid.UUID) ([]model.BillSummary, error) {
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.FindAllByShop(ctx, shop.ID)
	if err != nil {
		return nil, apperr.Internal(err, "list bills")
	}
	summaries := make([]model.BillSummary, 0, len(bills))
	for i := range bills {
		summaries = append(summaries, bills[i].ToSummary())
	}
	return summaries, nil
}

// GetBill never distinguishes a foreign bill from a missing one.
func (s *billingService) GetBill(ctx context.Context, accountID, billID uuid.UUID) (*model.BillDetail, error) {
	bill, err := s.billRepo.FindForAccount(ctx, billID, accountID)
	if err != nil {
		return nil, apperr.FromDB(err, msgBillNotFound)
	}
	detail := bill.ToDetail()
	return &detail, nil
}
