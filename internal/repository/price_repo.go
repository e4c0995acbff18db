package repository

import (
	"context"

	"go-shopkeeper/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceRepository stores customer-specific item prices
type PriceRepository interface {
	WithTx(tx *gorm.DB) PriceRepository
	Upsert(ctx context.Context, price *model.CustomerItemPrice) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.CustomerItemPrice, error)
}

type priceRepo struct {
	db *gorm.DB
}

func NewPriceRepo(db *gorm.DB) PriceRepository {
	return &priceRepo{db}
}

func (r *priceRepo) WithTx(tx *gorm.DB) PriceRepository {
	return &priceRepo{tx}
}

func (r *priceRepo) Upsert(ctx context.Context, price *model.CustomerItemPrice) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"custom_price", "updated_at"}),
	}).Create(price).Error
}

func (r *priceRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.CustomerItemPrice, error) {
	var prices []model.CustomerItemPrice
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&prices).Error
	return prices, err
}
