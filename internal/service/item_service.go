package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/event"
	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockAction string

const (
	StockIncrement StockAction = "increment"
	StockDecrement StockAction = "decrement"
)

func (a StockAction) delta() (int, error) {
	switch a {
	case StockIncrement:
		return 1, nil
	case StockDecrement:
		return -1, nil
	}
	return 0, apperr.Validation("Invalid action")
}

type ItemService interface {
	ListItems(ctx context.Context, accountID uuid.UUID) ([]model.Item, error)
	CreateItem(ctx context.Context, accountID uuid.UUID, req *ItemRequest) (*model.Item, error)
	UpdateItem(ctx context.Context, accountID, itemID uuid.UUID, req *ItemRequest) (*model.Item, error)
	DeleteItem(ctx context.Context, accountID, itemID uuid.UUID) error
	AdjustStock(ctx context.Context, accountID, itemID uuid.UUID, action StockAction) (int, error)
}

// ItemRequest is the full set of mutable item fields. Cost and wholesale prices
// are optional; stock defaults to 0 on create and is kept as-is on update when omitted.
type ItemRequest struct {
	Name           string              `json:"name" validate:"required,max=255"`
	Description    *string             `json:"description"`
	CostPrice      decimal.NullDecimal `json:"cost_price" validate:"omitempty,gte=0"`
	WholesalePrice decimal.NullDecimal `json:"wholesale_price" validate:"omitempty,gte=0"`
	RetailPrice    decimal.Decimal     `json:"retail_price" validate:"gt=0"`
	StockQuantity  *int                `json:"stock_quantity" validate:"omitempty,gte=0"`
	SIUnit         *string             `json:"si_unit" validate:"omitempty,max=20"`
}

func (r *ItemRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = nullIfBlank(r.Description)
	r.SIUnit = nullIfBlank(r.SIUnit)
}

func (r *ItemRequest) apply(item *model.Item) {
	item.Name = r.Name
	item.Description = r.Description
	item.CostPrice = r.CostPrice
	item.WholesalePrice = r.WholesalePrice
	item.RetailPrice = r.RetailPrice
	if r.StockQuantity != nil {
		item.StockQuantity = *r.StockQuantity
	}
	item.SIUnit = r.SIUnit
}

type itemService struct {
	db       *gorm.DB
	itemRepo repository.ItemRepository
	shopRepo repository.ShopRepository
	events   event.Publisher
}

func NewItemService(db *gorm.DB, itemRepo repository.ItemRepository, shopRepo repository.ShopRepository, events event.Publisher) ItemService {
	return &itemService{
		db:       db,
		itemRepo: itemRepo,
		shopRepo: shopRepo,
		events:   events,
	}
}

func (s *itemService) ListItems(ctx context.Context, accountID uuid.UUID) ([]model.Item, error) {
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindAllByShop(ctx, shop.ID)
	if err != nil {
		return nil, apperr.Internal(err, "list items")
	}
	return items, nil
}

func (s *itemService) CreateItem(ctx context.Context, accountID uuid.UUID, req *ItemRequest) (*model.Item, error) {
	req.normalize()
	if err := validate(req); err != nil {
		return nil, err
	}
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}

	item := &model.Item{ShopID: shop.ID}
	req.apply(item)
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, apperr.FromDB(err, "")
	}

	s.publish(ctx, event.ItemCreated, accountID, item, fmt.Sprintf("Item '%s' created", item.Name))
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, accountID, itemID uuid.UUID, req *ItemRequest) (*model.Item, error) {
	req.normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	var updated *model.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := s.itemRepo.WithTx(tx)
		item, err := items.LockByID(ctx, itemID)
		if err != nil {
			return apperr.FromDB(err, "Item not found")
		}
		if err := s.authorize(ctx, accountID, item); err != nil {
			return err
		}
		req.apply(item)
		if err := items.Update(ctx, item); err != nil {
			return apperr.FromDB(err, "Item not found")
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.ItemUpdated, accountID, updated, fmt.Sprintf("Item '%s' updated", updated.Name))
	return updated, nil
}

func (s *itemService) DeleteItem(ctx context.Context, accountID, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return apperr.FromDB(err, "Item not found")
	}
	if err := s.authorize(ctx, accountID, item); err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return apperr.FromDB(err, "Item not found")
	}

	s.publish(ctx, event.ItemDeleted, accountID, item, fmt.Sprintf("Item '%s' deleted", item.Name))
	return nil
}

// AdjustStock moves stock by one unit under a row lock so concurrent
// adjustments serialise and stock never goes negative.
func (s *itemService) AdjustStock(ctx context.Context, accountID, itemID uuid.UUID, action StockAction) (int, error) {
	delta, err := action.delta()
	if err != nil {
		return 0, err
	}

	var adjusted *model.Item
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := s.itemRepo.WithTx(tx)
		item, err := items.LockByID(ctx, itemID)
		if err != nil {
			return apperr.FromDB(err, "Item not found")
		}
		if err := s.authorize(ctx, accountID, item); err != nil {
			return err
		}
		newStock := item.StockQuantity + delta
		if newStock < 0 {
			return apperr.Validation("Stock cannot be less than zero")
		}
		if err := items.UpdateStock(ctx, item.ID, newStock); err != nil {
			return apperr.Internal(err, "update stock")
		}
		item.StockQuantity = newStock
		adjusted = item
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, event.StockUpdated, accountID, adjusted,
		fmt.Sprintf("Stock of '%s' is now %d", adjusted.Name, adjusted.StockQuantity))
	return adjusted.StockQuantity, nil
}

// authorize rejects items that belong to another shop (or to no shop of the caller).
func (s *itemService) authorize(ctx context.Context, accountID uuid.UUID, item *model.Item) error {
	shop, err := s.shopRepo.FindByAccountID(ctx, accountID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal(err, "load shop")
	}
	if shop == nil || shop.ID != item.ShopID {
		return apperr.Authorization("Unauthorized")
	}
	return nil
}

func (s *itemService) publish(ctx context.Context, t event.Type, accountID uuid.UUID, item *model.Item, msg string) {
	_ = s.events.Publish(ctx, event.New(t, item.ShopID, accountID, item.ToCatalogItem(), msg))
}
