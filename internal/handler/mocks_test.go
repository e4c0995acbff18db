package handler

import (
	"context"

	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/repository"
	"go-shopkeeper/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) CheckUser(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *mockAuthService) IssueOTP(ctx context.Context, phone string) error {
	return m.Called(ctx, phone).Error(0)
}

func (m *mockAuthService) CreateSession(ctx context.Context, req *service.SessionRequest) (*service.SessionResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*service.SessionResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, phone, newPassword string) error {
	return m.Called(ctx, phone, newPassword).Error(0)
}

type mockShopService struct{ mock.Mock }

func (m *mockShopService) CreateShop(ctx context.Context, accountID uuid.UUID, req *service.CreateShopRequest) (*model.Shop, error) {
	args := m.Called(ctx, accountID, req)
	shop, _ := args.Get(0).(*model.Shop)
	return shop, args.Error(1)
}

func (m *mockShopService) GetShop(ctx context.Context, accountID uuid.UUID) (*model.Shop, error) {
	args := m.Called(ctx, accountID)
	shop, _ := args.Get(0).(*model.Shop)
	return shop, args.Error(1)
}

type mockItemService struct{ mock.Mock }

func (m *mockItemService) ListItems(ctx context.Context, accountID uuid.UUID) ([]model.Item, error) {
	args := m.Called(ctx, accountID)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *mockItemService) CreateItem(ctx context.Context, accountID uuid.UUID, req *service.ItemRequest) (*model.Item, error) {
	args := m.Called(ctx, accountID, req)
	item, _ := args.Get(0).(*model.Item)
	return item, args.Error(1)
}

func (m *mockItemService) UpdateItem(ctx context.Context, accountID, itemID uuid.UUID, req *service.ItemRequest) (*model.Item, error) {
	args := m.Called(ctx, accountID, itemID, req)
	item, _ := args.Get(0).(*model.Item)
	return item, args.Error(1)
}

func (m *mockItemService) DeleteItem(ctx context.Context, accountID, itemID uuid.UUID) error {
	return m.Called(ctx, accountID, itemID).Error(0)
}

func (m *mockItemService) AdjustStock(ctx context.Context, accountID, itemID uuid.UUID, action service.StockAction) (int, error) {
	args := m.Called(ctx, accountID, itemID, action)
	return args.Int(0), args.Error(1)
}

type mockCustomerService struct{ mock.Mock }

func (m *mockCustomerService) ListCustomers(ctx context.Context, accountID uuid.UUID) ([]model.Customer, error) {
	args := m.Called(ctx, accountID)
	customers, _ := args.Get(0).([]model.Customer)
	return customers, args.Error(1)
}

func (m *mockCustomerService) CreateCustomer(ctx context.Context, accountID uuid.UUID, req *service.CustomerRequest) (*model.Customer, error) {
	args := m.Called(ctx, accountID, req)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerService) UpdateCustomer(ctx context.Context, accountID, customerID uuid.UUID, req *service.CustomerRequest) (*model.Customer, error) {
	args := m.Called(ctx, accountID, customerID, req)
	c, _ := args.Get(0).(*model.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerService) DeleteCustomer(ctx context.Context, accountID, customerID uuid.UUID) error {
	return m.Called(ctx, accountID, customerID).Error(0)
}

type mockBillingService struct{ mock.Mock }

func (m *mockBillingService) PrepareBill(ctx context.Context, accountID uuid.UUID) ([]model.CatalogItem, error) {
	args := m.Called(ctx, accountID)
	items, _ := args.Get(0).([]model.CatalogItem)
	return items, args.Error(1)
}

func (m *mockBillingService) CustomerPrices(ctx context.Context, accountID uuid.UUID, phone string) (*service.CustomerPrices, error) {
	args := m.Called(ctx, accountID, phone)
	p, _ := args.Get(0).(*service.CustomerPrices)
	return p, args.Error(1)
}

func (m *mockBillingService) CreateBill(ctx context.Context, accountID uuid.UUID, req *service.CreateBillRequest) (*model.Bill, error) {
	args := m.Called(ctx, accountID, req)
	b, _ := args.Get(0).(*model.Bill)
	return b, args.Error(1)
}

func (m *mockBillingService) ListBills(ctx context.Context, accountID uuid.UUID) ([]model.BillSummary, error) {
	args := m.Called(ctx, accountID)
	b, _ := args.Get(0).([]model.BillSummary)
	return b, args.Error(1)
}

func (m *mockBillingService) GetBill(ctx context.Context, accountID, billID uuid.UUID) (*model.BillDetail, error) {
	args := m.Called(ctx, accountID, billID)
	d, _ := args.Get(0).(*model.BillDetail)
	return d, args.Error(1)
}

type mockDashboardService struct{ mock.Mock }

func (m *mockDashboardService) GetSales(ctx context.Context, accountID uuid.UUID, days int) ([]repository.SalesData, error) {
	args := m.Called(ctx, accountID, days)
	d, _ := args.Get(0).([]repository.SalesData)
	return d, args.Error(1)
}

func (m *mockDashboardService) GetDashboardStats(ctx context.Context, accountID uuid.UUID) (*repository.DashboardStats, error) {
	args := m.Called(ctx, accountID)
	s, _ := args.Get(0).(*repository.DashboardStats)
	return s, args.Error(1)
}
