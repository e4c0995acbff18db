package service

import (
	"context"
	"strings"

	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/repository"
	"go-shopkeeper/pkg/validator"

	"github.com/google/uuid"
)

const msgNoShop = "No shop associated with this user. Please register your shop."

func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation(validator.Message(errs))
	}
	return nil
}

// shopOf resolves the caller's shop; every tenant-scoped operation starts here.
func shopOf(ctx context.Context, shops repository.ShopRepository, accountID uuid.UUID) (*model.Shop, error) {
	shop, err := shops.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperr.FromDB(err, msgNoShop)
	}
	return shop, nil
}

// nullIfBlank trims s and maps blank to nil.
func nullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
