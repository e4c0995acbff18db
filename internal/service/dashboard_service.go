package service

import (
	"context"
	"time"

	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultSalesDays = 7
	MaxSalesDays     = 365
)

type DashboardService interface {
	GetSales(ctx context.Context, accountID uuid.UUID, days int) ([]repository.SalesData, error)
	GetDashboardStats(ctx context.Context, accountID uuid.UUID) (*repository.DashboardStats, error)
}

type dashboardService struct {
	shopRepo repository.ShopRepository
	billRepo repository.BillRepository
	now      func() time.Time
}

func NewDashboardService(shopRepo repository.ShopRepository, billRepo repository.BillRepository) DashboardService {
	return &dashboardService{shopRepo: shopRepo, billRepo: billRepo, now: time.Now}
}

// ClampDays keeps the sales window within [1, MaxSalesDays]; zero or less means the default.
func ClampDays(days int) int {
	if days <= 0 {
		return DefaultSalesDays
	}
	if days > MaxSalesDays {
		return MaxSalesDays
	}
	return days
}

// salesWindow covers the last days calendar days (UTC) including today: from midnight
// of the first day up to now.
func salesWindow(now time.Time, days int) (time.Time, time.Time) {
	end := now.UTC()
	first := end.AddDate(0, 0, -(ClampDays(days) - 1))
	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
	return start, end
}

func (s *dashboardService) GetSales(ctx context.Context, accountID uuid.UUID, days int) ([]repository.SalesData, error) {
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}
	startDate, endDate := salesWindow(s.now(), days)
	sales, err := s.billRepo.GetSales(ctx, shop.ID, startDate, endDate)
	if err != nil {
		return nil, apperr.Internal(err, "load sales")
	}
	return sales, nil
}

func (s *dashboardService) GetDashboardStats(ctx context.Context, accountID uuid.UUID) (*repository.DashboardStats, error) {
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}
	stats, err := s.billRepo.GetDashboardStats(ctx, shop.ID)
	if err != nil {
		return nil, apperr.Internal(err, "load dashboard stats")
	}
	return stats, nil
}
