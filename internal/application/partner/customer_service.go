package partner

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/domain/partner"
	"github.com/erp/backoffice/internal/domain/shared"
)

// CustomerService handles customer lifecycle operations
type CustomerService struct {
	customers partner.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customers partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		logger:    logger.Named("customer"),
	}
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(input.Name, input.Code, partner.CustomerType(input.CustomerType))
	if err != nil {
		return nil, err
	}
	if err := customer.Update(input.Name, input.ContactPerson, input.Phone, input.Email, input.Address, customer.CustomerType); err != nil {
		return nil, err
	}

	existing, err := s.customers.FindByCode(ctx, customer.Code)
	if err != nil && !errors.Is(err, partner.ErrCustomerNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, partner.ErrCustomerCodeExists
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created", zap.Uint("id", customer.ID), zap.String("code", customer.Code))
	resp := newCustomerResponse(customer)
	return &resp, nil
}

// GetByID returns one customer
func (s *CustomerService) GetByID(ctx context.Context, id uint) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := newCustomerResponse(customer)
	return &resp, nil
}

// List returns customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) ([]CustomerResponse, error) {
	customers, err := s.customers.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		result = append(result, newCustomerResponse(&customers[i]))
	}
	return result, nil
}

// Update changes a customer's attributes
func (s *CustomerService) Update(ctx context.Context, id uint, input UpdateCustomerInput) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(input.Name, input.ContactPerson, input.Phone, input.Email, input.Address, partner.CustomerType(input.CustomerType)); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := newCustomerResponse(customer)
	return &resp, nil
}

// Deactivate marks a customer inactive without deleting history
func (s *CustomerService) Deactivate(ctx context.Context, id uint) error {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	customer.Deactivate()
	if err := s.customers.Save(ctx, customer); err != nil {
		return err
	}
	s.logger.Info("customer deactivated", zap.Uint("id", id))
	return nil
}
