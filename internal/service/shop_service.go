package service

import (
	"context"
	"strings"

	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopService interface {
	CreateShop(ctx context.Context, accountID uuid.UUID, req *CreateShopRequest) (*model.Shop, error)
	GetShop(ctx context.Context, accountID uuid.UUID) (*model.Shop, error)
}

type CreateShopRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	GSTIN   *string `json:"gstin" validate:"omitempty,max=20"`
	Address *string `json:"address"`
}

type shopService struct {
	db          *gorm.DB
	accountRepo repository.AccountRepository
	shopRepo    repository.ShopRepository
}

func NewShopService(db *gorm.DB, accountRepo repository.AccountRepository, shopRepo repository.ShopRepository) ShopService {
	return &shopService{db: db, accountRepo: accountRepo, shopRepo: shopRepo}
}

func (s *shopService) CreateShop(ctx context.Context, accountID uuid.UUID, req *CreateShopRequest) (*model.Shop, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperr.Validation("Shop name is required")
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	shop := &model.Shop{
		AccountID: accountID,
		Name:      req.Name,
		GSTIN:     nullIfBlank(req.GSTIN),
		Address:   nullIfBlank(req.Address),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialise shop creation per account
		if _, err := s.accountRepo.WithTx(tx).LockByID(ctx, accountID); err != nil {
			return apperr.FromDB(err, "Account not found")
		}
		shops := s.shopRepo.WithTx(tx)
		exists, err := shops.ExistsForAccount(ctx, accountID)
		if err != nil {
			return apperr.Internal(err, "check shop")
		}
		if exists {
			return apperr.Conflict("A shop is already registered for this account")
		}
		if err := shops.Create(ctx, shop); err != nil {
			return apperr.FromDB(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) GetShop(ctx context.Context, accountID uuid.UUID) (*model.Shop, error) {
	shop, err := s.shopRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperr.FromDB(err, "No shop found for user")
	}
	return shop, nil
}
