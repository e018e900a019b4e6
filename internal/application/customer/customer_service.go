package customer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/validation"
)

// CustomerService manages shopper profiles and their saved addresses
type CustomerService struct {
	customerRepo customer.CustomerRepository
	addressRepo  customer.AddressRepository
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo customer.CustomerRepository,
	addressRepo customer.AddressRepository,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create creates a customer profile, optionally linked to a sign-in account
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A customer profile already exists for this email")
	}

	var c *customer.Customer
	if req.UserID != nil {
		c, err = customer.NewCustomerForUser(*req.UserID, req.Email, req.FirstName, req.LastName)
	} else {
		c, err = customer.NewCustomer(req.Email, req.FirstName, req.LastName)
	}
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := c.Update(c.FirstName, c.LastName, req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, c)
	return toCustomerResponse(c), nil
}

// Update updates a customer's contact details and preferences
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Update(req.FirstName, req.LastName, req.Phone); err != nil {
		return nil, err
	}
	if req.AcceptsEmails != nil {
		c.SetMarketingOptIn(*req.AcceptsEmails)
	}
	if req.Notes != nil {
		c.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Get returns a customer profile with saved addresses
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.LoadAddresses(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByUserID returns the profile linked to a sign-in account
func (s *CustomerService) GetByUserID(ctx context.Context, userID uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.LoadAddresses(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// List returns customers matching the filter with a total count
func (s *CustomerService) List(ctx context.Context, req CustomerListFilter) ([]*CustomerResponse, int64, error) {
	filter := req.toFilter()

	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, toCustomerResponse(&customers[i]))
	}
	return responses, total, nil
}

// SetLevel changes a customer's loyalty tier
func (s *CustomerService) SetLevel(ctx context.Context, id uuid.UUID, req SetLevelRequest) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.SetLevel(customer.CustomerLevel(req.Level)); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// AddStoreCredit grants store credit to a customer
func (s *CustomerService) AddStoreCredit(ctx context.Context, id uuid.UUID, req AdjustStoreCreditRequest) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.AddStoreCredit(req.Amount); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("store credit added",
		zap.String("customer_id", id.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("reason", req.Reason))
	return toCustomerResponse(c), nil
}

// SetStatus activates, deactivates or suspends a customer
func (s *CustomerService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*CustomerResponse, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch customer.CustomerStatus(status) {
	case customer.CustomerStatusActive:
		err = c.Activate()
	case customer.CustomerStatusInactive:
		err = c.Deactivate()
	case customer.CustomerStatusSuspended:
		err = c.Suspend()
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown customer status: "+status)
	}
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete removes a customer profile and all saved addresses
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.customerRepo.Delete(ctx, id)
}

// ============================================================================
// Saved addresses
// ============================================================================

// addressRules checks the fields whose shape binding tags cannot
// express. Phone is optional on saved addresses.
func addressRules() validation.RuleSet {
	phone := validation.Phone
	phone.Required = false
	return validation.RuleSet{
		"phone":       phone,
		"postal_code": validation.PostalCode,
	}
}

func validateAddress(req SaveAddressRequest) error {
	result := validation.ValidateForm(map[string]interface{}{
		"phone":       req.Phone,
		"postal_code": strings.ToUpper(req.PostalCode),
	}, addressRules())
	if !result.IsValid {
		return shared.NewValidationError(result.Errors)
	}
	return nil
}

// AddAddress saves a new shipping address for a customer
func (s *CustomerService) AddAddress(ctx context.Context, customerID uuid.UUID, req SaveAddressRequest) (*AddressResponse, error) {
	if err := validateAddress(req); err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	location, err := buildLocation(req)
	if err != nil {
		return nil, err
	}

	addr, err := customer.NewAddress(customerID, req.RecipientName, location)
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := addr.Update(req.RecipientName, req.Phone, location); err != nil {
			return nil, err
		}
	}
	if req.Label != "" {
		if err := addr.SetLabel(req.Label); err != nil {
			return nil, err
		}
	}

	if req.IsDefault {
		if err := s.addressRepo.ClearDefaultForCustomer(ctx, customerID); err != nil {
			return nil, err
		}
		addr.MarkDefault()
	}

	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}
	return toAddressResponse(addr), nil
}

// UpdateAddress replaces a saved address
func (s *CustomerService) UpdateAddress(ctx context.Context, customerID, addressID uuid.UUID, req SaveAddressRequest) (*AddressResponse, error) {
	if err := validateAddress(req); err != nil {
		return nil, err
	}
	addr, err := s.findCustomerAddress(ctx, customerID, addressID)
	if err != nil {
		return nil, err
	}

	location, err := buildLocation(req)
	if err != nil {
		return nil, err
	}
	if err := addr.Update(req.RecipientName, req.Phone, location); err != nil {
		return nil, err
	}
	if err := addr.SetLabel(req.Label); err != nil {
		return nil, err
	}

	if req.IsDefault && !addr.IsDefault {
		if err := s.addressRepo.ClearDefaultForCustomer(ctx, customerID); err != nil {
			return nil, err
		}
		addr.MarkDefault()
	}

	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}
	return toAddressResponse(addr), nil
}

// SetDefaultAddress marks one of the customer's addresses as default
func (s *CustomerService) SetDefaultAddress(ctx context.Context, customerID, addressID uuid.UUID) error {
	addr, err := s.findCustomerAddress(ctx, customerID, addressID)
	if err != nil {
		return err
	}

	if err := s.addressRepo.ClearDefaultForCustomer(ctx, customerID); err != nil {
		return err
	}
	addr.MarkDefault()
	return s.addressRepo.Save(ctx, addr)
}

// ListAddresses returns all saved addresses of a customer
func (s *CustomerService) ListAddresses(ctx context.Context, customerID uuid.UUID) ([]*AddressResponse, error) {
	addresses, err := s.addressRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*AddressResponse, 0, len(addresses))
	for i := range addresses {
		responses = append(responses, toAddressResponse(&addresses[i]))
	}
	return responses, nil
}

// DeleteAddress removes a saved address
func (s *CustomerService) DeleteAddress(ctx context.Context, customerID, addressID uuid.UUID) error {
	if _, err := s.findCustomerAddress(ctx, customerID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, addressID)
}

func (s *CustomerService) findCustomerAddress(ctx context.Context, customerID, addressID uuid.UUID) (*customer.Address, error) {
	addr, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}
	return addr, nil
}

// publishDomainEvents hands the aggregate's events to the bus. Event
// delivery is asynchronous; failures are logged by the bus, not
// propagated to the caller.
func (s *CustomerService) publishDomainEvents(ctx context.Context, c *customer.Customer) {
	if s.eventBus == nil {
		return
	}
	events := c.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	c.ClearDomainEvents()
}

func buildLocation(req SaveAddressRequest) (valueobject.Address, error) {
	opts := make([]valueobject.AddressOption, 0, 2)
	if req.Line2 != "" {
		opts = append(opts, valueobject.WithLine2(req.Line2))
	}
	if req.Region != "" {
		opts = append(opts, valueobject.WithRegion(req.Region))
	}
	return valueobject.NewAddress(req.Line1, req.City, req.PostalCode, strings.ToUpper(req.Country), opts...)
}
