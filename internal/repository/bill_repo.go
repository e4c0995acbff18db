package repository

import (
	"context"
	"time"

	"go-shopkeeper/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BillRepository interface {
	WithTx(tx *gorm.DB) BillRepository
	Create(ctx context.Context, bill *model.Bill) error
	CreateItem(ctx context.Context, item *model.BillItem) error
	FindAllByShop(ctx context.Context, shopID uuid.UUID) ([]model.Bill, error)
	FindForAccount(ctx context.Context, billID, accountID uuid.UUID) (*model.Bill, error)
	GetDashboardStats(ctx context.Context, shopID uuid.UUID) (*DashboardStats, error)
	GetSales(ctx context.Context, shopID uuid.UUID, startDate, endDate time.Time) ([]SalesData, error)
}

// SalesData is one day of billing for charts
type SalesData struct {
	Date      string      `json:"date"`
	Bills     int64       `json:"bills"`
	Billed    model.Money `json:"billed"`
	Collected model.Money `json:"collected"`
}

// DashboardStats is the shop overview
type DashboardStats struct {
	TotalItems         int64       `json:"total_items"`
	LowStockCount      int64       `json:"low_stock_count"`
	InventoryValuation model.Money `json:"inventory_valuation"`
	TotalBills         int64       `json:"total_bills"`
	Outstanding        model.Money `json:"outstanding"`
}

type billRepo struct {
	db *gorm.DB
}

func NewBillRepo(db *gorm.DB) BillRepository {
	return &billRepo{db}
}

func (r *billRepo) WithTx(tx *gorm.DB) BillRepository {
	return &billRepo{tx}
}

func (r *billRepo) Create(ctx context.Context, bill *model.Bill) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(bill).Error
}

func (r *billRepo) CreateItem(ctx context.Context, item *model.BillItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

// unscoped keeps soft-deleted customers and items visible on historical bills
func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

func (r *billRepo) FindAllByShop(ctx context.Context, shopID uuid.UUID) ([]model.Bill, error) {
	bills := []model.Bill{}
	err := r.db.WithContext(ctx).
		Preload("Customer", unscoped).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&bills).Error
	return bills, err
}

// FindForAccount returns the bill only when its shop belongs to accountID
func (r *billRepo) FindForAccount(ctx context.Context, billID, accountID uuid.UUID) (*model.Bill, error) {
	var bill model.Bill
	err := r.db.WithContext(ctx).
		Joins("JOIN shops ON shops.id = bills.shop_id").
		Where("bills.id = ? AND shops.account_id = ?", billID, accountID).
		Preload("Customer", unscoped).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_no ASC") }).
		Preload("Items.Item", unscoped).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepo) GetDashboardStats(ctx context.Context, shopID uuid.UUID) (*DashboardStats, error) {
	var stats DashboardStats

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_items,
			COUNT(*) FILTER (WHERE stock_quantity < ?) AS low_stock_count,
			COALESCE(SUM(stock_quantity * retail_price), 0) AS inventory_valuation
		FROM items
		WHERE shop_id = ? AND deleted_at IS NULL`, model.LowStockThreshold, shopID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	var bills struct {
		TotalBills  int64
		Outstanding decimal.Decimal
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_bills,
			COALESCE(SUM(total_amount - amount_paid), 0) AS outstanding
		FROM bills
		WHERE shop_id = ?`, shopID).
		Scan(&bills).Error
	if err != nil {
		return nil, err
	}
	stats.TotalBills = bills.TotalBills
	stats.Outstanding = model.NewMoney(bills.Outstanding)

	return &stats, nil
}

func (r *billRepo) GetSales(ctx context.Context, shopID uuid.UUID, startDate, endDate time.Time) ([]SalesData, error) {
	results := []SalesData{}

	// Aggregate bills per day
	rows, err := r.db.WithContext(ctx).Model(&model.Bill{}).
		Select(`
			TO_CHAR(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS date,
			COUNT(*) AS bills,
			COALESCE(SUM(total_amount), 0) AS billed,
			COALESCE(SUM(amount_paid), 0) AS collected
		`).
		Where("shop_id = ? AND created_at >= ? AND created_at <= ?", shopID, startDate, endDate).
		Group("TO_CHAR(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data SalesData
		if err := rows.Scan(&data.Date, &data.Bills, &data.Billed, &data.Collected); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}
