package repository

import (
	"context"

	"go-shopkeeper/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopRepository interface {
	WithTx(tx *gorm.DB) ShopRepository
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Shop, error)
	ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error)
	Create(ctx context.Context, shop *model.Shop) error
}

type shopRepo struct {
	db *gorm.DB
}

func NewShopRepo(db *gorm.DB) ShopRepository {
	return &shopRepo{db}
}

func (r *shopRepo) WithTx(tx *gorm.DB) ShopRepository {
	return &shopRepo{tx}
}

func (r *shopRepo) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Shop{}).Where("account_id = ?", accountID).Count(&count).Error
	return count > 0, err
}

func (r *shopRepo) Create(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}
