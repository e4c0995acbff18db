package repository

import (
	"context"

	"go-shopkeeper/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository interface {
	WithTx(tx *gorm.DB) ItemRepository
	Create(ctx context.Context, item *model.Item) error
	FindAllByShop(ctx context.Context, shopID uuid.UUID) ([]model.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	FindByIDsInShop(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]model.Item, error)
	LockByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) WithTx(tx *gorm.DB) ItemRepository {
	return &itemRepo{tx}
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) FindAllByShop(ctx context.Context, shopID uuid.UUID) ([]model.Item, error) {
	items := []model.Item{}
	err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("name ASC").Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDsInShop returns the live items of shopID among ids, keyed by id
func (r *itemRepo) FindByIDsInShop(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]model.Item, error) {
	found := make(map[uuid.UUID]model.Item, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var items []model.Item
	if err := r.db.WithContext(ctx).Where("shop_id = ? AND id IN ?", shopID, ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		found[item.ID] = item
	}
	return found, nil
}

// LockByID reads the item row FOR UPDATE; only meaningful inside a transaction
func (r *itemRepo) LockByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces every mutable column, including NULLs and zero stock
func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Model(item).
		Select("name", "description", "cost_price", "wholesale_price", "retail_price", "stock_quantity", "si_unit", "updated_at").
		Updates(item).Error
}

func (r *itemRepo) UpdateStock(ctx context.Context, id uuid.UUID, newStock int) error {
	return r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", id).
		Update("stock_quantity", newStock).Error
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
