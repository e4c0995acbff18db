package repository

import (
	"context"

	"go-shopkeeper/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	WithTx(tx *gorm.DB) CustomerRepository
	Create(ctx context.Context, customer *model.Customer) error
	FindAllByShop(ctx context.Context, shopID uuid.UUID) ([]model.Customer, error)
	FindInShop(ctx context.Context, shopID, id uuid.UUID) (*model.Customer, error)
	FindByPhone(ctx context.Context, shopID uuid.UUID, phone string) (*model.Customer, error)
	FindByName(ctx context.Context, shopID uuid.UUID, name string) (*model.Customer, error)
	PhoneTaken(ctx context.Context, shopID uuid.UUID, phone string, exceptID uuid.UUID) (bool, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) WithTx(tx *gorm.DB) CustomerRepository {
	return &customerRepo{tx}
}

func (r *customerRepo) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepo) FindAllByShop(ctx context.Context, shopID uuid.UUID) ([]model.Customer, error) {
	customers := []model.Customer{}
	err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("name ASC NULLS LAST").Order("created_at ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindInShop(ctx context.Context, shopID, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Where("id = ? AND shop_id = ?", id, shopID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByPhone(ctx context.Context, shopID uuid.UUID, phone string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND TRIM(phone_number) = ?", shopID, phone).
		Order("created_at ASC").
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByName(ctx context.Context, shopID uuid.UUID, name string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND name = ?", shopID, name).
		Order("created_at ASC").
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// PhoneTaken reports whether another live customer of the shop uses phone
func (r *customerRepo) PhoneTaken(ctx context.Context, shopID uuid.UUID, phone string, exceptID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("shop_id = ? AND phone_number = ? AND id <> ?", shopID, phone, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *customerRepo) Update(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Model(customer).
		Select("name", "phone_number", "email", "address", "updated_at").
		Updates(customer).Error
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Customer{}, "id = ?", id).Error
}
