package service

import (
	"context"
	"fmt"

	"go-shopkeeper/internal/apperr"
	"go-shopkeeper/internal/event"
	"go-shopkeeper/internal/model"
	"go-shopkeeper/internal/repository"
	"go-shopkeeper/pkg/validator"

	"github.com/google/uuid"
)

const (
	msgCustomerNotFound = "Customer not found or access denied"
	msgPhoneTaken       = "A customer with this phone number already exists"
)

type CustomerService interface {
	ListCustomers(ctx context.Context, accountID uuid.UUID) ([]model.Customer, error)
	CreateCustomer(ctx context.Context, accountID uuid.UUID, req *CustomerRequest) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, accountID, customerID uuid.UUID, req *CustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, accountID, customerID uuid.UUID) error
}

type CustomerRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

// check normalises blanks to nil and validates what is left.
func (r *CustomerRequest) check() error {
	r.Name = nullIfBlank(r.Name)
	r.PhoneNumber = nullIfBlank(r.PhoneNumber)
	r.Email = nullIfBlank(r.Email)
	r.Address = nullIfBlank(r.Address)

	if r.Name == nil && r.PhoneNumber == nil && r.Email == nil && r.Address == nil {
		return apperr.Validation("At least one field (name, phone, email, or address) is required.")
	}
	if r.PhoneNumber != nil && !validator.IsPhone(*r.PhoneNumber) {
		return apperr.Validation("Phone number must be 10 digits.")
	}
	if r.Email != nil && !validator.IsEmail(*r.Email) {
		return apperr.Validation("Email address is invalid.")
	}
	return nil
}

func (r *CustomerRequest) apply(c *model.Customer) {
	c.Name = r.Name
	c.PhoneNumber = r.PhoneNumber
	c.Email = r.Email
	c.Address = r.Address
}

type customerService struct {
	customerRepo repository.CustomerRepository
	shopRepo     repository.ShopRepository
	events       event.Publisher
}

func NewCustomerService(customerRepo repository.CustomerRepository, shopRepo repository.ShopRepository, events event.Publisher) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		shopRepo:     shopRepo,
		events:       events,
	}
}

func (s *customerService) ListCustomers(ctx context.Context, accountID uuid.UUID) ([]model.Customer, error) {
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.FindAllByShop(ctx, shop.ID)
	if err != nil {
		return nil, apperr.Internal(err, "list customers")
	}
	return customers, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, accountID uuid.UUID, req *CustomerRequest) (*model.Customer, error) {
	if err := req.check(); err != nil {
		return nil, err
	}
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePhoneFree(ctx, shop.ID, req.PhoneNumber, uuid.Nil); err != nil {
		return nil, err
	}

	customer := &model.Customer{ShopID: shop.ID}
	req.apply(customer)
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, conflictOnPhone(err)
	}

	s.publish(ctx, event.CustomerCreated, accountID, customer, "created")
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, accountID, customerID uuid.UUID, req *CustomerRequest) (*model.Customer, error) {
	if err := req.check(); err != nil {
		return nil, err
	}
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindInShop(ctx, shop.ID, customerID)
	if err != nil {
		return nil, apperr.FromDB(err, msgCustomerNotFound)
	}
	if err := s.ensurePhoneFree(ctx, shop.ID, req.PhoneNumber, customer.ID); err != nil {
		return nil, err
	}

	req.apply(customer)
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, conflictOnPhone(err)
	}

	s.publish(ctx, event.CustomerUpdated, accountID, customer, "updated")
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, accountID, customerID uuid.UUID) error {
	shop, err := shopOf(ctx, s.shopRepo, accountID)
	if err != nil {
		return err
	}
	customer, err := s.customerRepo.FindInShop(ctx, shop.ID, customerID)
	if err != nil {
		return apperr.FromDB(err, msgCustomerNotFound)
	}
	if err := s.customerRepo.Delete(ctx, customer.ID); err != nil {
		return apperr.Internal(err, "delete customer")
	}

	s.publish(ctx, event.CustomerDeleted, accountID, customer, "deleted")
	return nil
}

func (s *customerService) ensurePhoneFree(ctx context.Context, shopID uuid.UUID, phone *string, exceptID uuid.UUID) error {
	if phone == nil {
		return nil
	}
	taken, err := s.customerRepo.PhoneTaken(ctx, shopID, *phone, exceptID)
	if err != nil {
		return apperr.Internal(err, "check phone")
	}
	if taken {
		return apperr.Conflict(msgPhoneTaken)
	}
	return nil
}

// conflictOnPhone covers the race the pre-check cannot: the partial unique index wins.
func conflictOnPhone(err error) error {
	if apperr.IsUniqueViolation(err) {
		return apperr.Conflict(msgPhoneTaken)
	}
	return apperr.FromDB(err, msgCustomerNotFound)
}

func (s *customerService) publish(ctx context.Context, t event.Type, accountID uuid.UUID, c *model.Customer, verb string) {
	msg := "Customer " + verb
	if c.Name != nil {
		msg = fmt.Sprintf("Customer '%s' %s", *c.Name, verb)
	}
	_ = s.events.Publish(ctx, event.New(t, c.ShopID, accountID, c.ToResponse(), msg))
}
