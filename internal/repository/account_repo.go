package repository

import (
	"context"

	"go-shopkeeper/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository interface {
	WithTx(tx *gorm.DB) AccountRepository
	FindByPhone(ctx context.Context, phone string) (*model.Account, error)
	LockByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, account *model.Account) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db}
}

func (r *accountRepo) WithTx(tx *gorm.DB) AccountRepository {
	return &accountRepo{tx}
}

func (r *accountRepo) FindByPhone(ctx context.Context, phone string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// LockByID reads the account row FOR UPDATE; only meaningful inside a transaction
func (r *accountRepo) LockByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Account{}).Where("phone_number = ?", phone).Count(&count).Error
	return count > 0, err
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	res := r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Update("password_hash", hashedPassword)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
