package customer

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer profile
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusInactive  CustomerStatus = "inactive"
	CustomerStatusSuspended CustomerStatus = "suspended" // Suspended for abuse or chargebacks
)

// CustomerLevel represents the customer's loyalty tier
type CustomerLevel string

const (
	CustomerLevelStandard CustomerLevel = "standard"
	CustomerLevelSilver   CustomerLevel = "silver"
	CustomerLevelGold     CustomerLevel = "gold"
	CustomerLevelVIP      CustomerLevel = "vip"
)

// Customer is the storefront profile of a shopper: contact details,
// loyalty tier, store credit, and shipping addresses. A customer may be
// linked to a sign-in account or exist as a guest profile.
type Customer struct {
	shared.BaseAggregateRoot
	UserID         *uuid.UUID      `gorm:"type:uuid;uniqueIndex"` // Nil for guest checkout profiles
	Email          string          `gorm:"type:varchar(200);not null;index"`
	FirstName      string          `gorm:"type:varchar(100)"`
	LastName       string          `gorm:"type:varchar(100)"`
	Phone          string          `gorm:"type:varchar(50)"`
	Level          CustomerLevel   `gorm:"type:varchar(20);not null;default:'standard'"`
	Status         CustomerStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	StoreCredit    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AcceptsEmails  bool            `gorm:"not null;default:false"`
	Notes          string          `gorm:"type:text"`
	Addresses      []Address       `gorm:"-"` // Loaded by repository
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer profile
func NewCustomer(email, firstName, lastName string) (*Customer, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateName(firstName); err != nil {
		return nil, err
	}
	if err := validateName(lastName); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Level:             CustomerLevelStandard,
		Status:            CustomerStatusActive,
		StoreCredit:       decimal.Zero,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// NewCustomerForUser creates a profile linked to a sign-in account
func NewCustomerForUser(userID uuid.UUID, email, firstName, lastName string) (*Customer, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	customer, err := NewCustomer(email, firstName, lastName)
	if err != nil {
		return nil, err
	}

	customer.UserID = &userID
	return customer, nil
}

// Update updates the customer's name and phone
func (c *Customer) Update(firstName, lastName, phone string) error {
	if err := validateName(firstName); err != nil {
		return err
	}
	if err := validateName(lastName); err != nil {
		return err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	c.FirstName = strings.TrimSpace(firstName)
	c.LastName = strings.TrimSpace(lastName)
	c.Phone = strings.TrimSpace(phone)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetEmail changes the customer's contact email
func (c *Customer) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetMarketingOptIn records the customer's email marketing preference
func (c *Customer) SetMarketingOptIn(accepts bool) {
	c.AcceptsEmails = accepts
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetNotes sets internal notes on the profile
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetLevel sets the customer's loyalty tier
func (c *Customer) SetLevel(level CustomerLevel) error {
	switch level {
	case CustomerLevelStandard, CustomerLevelSilver, CustomerLevelGold, CustomerLevelVIP:
	default:
		return shared.NewDomainError("INVALID_LEVEL", "Unknown customer level")
	}

	oldLevel := c.Level
	c.Level = level
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerLevelChangedEvent(c, oldLevel, level))

	return nil
}

// AddStoreCredit grants store credit to the customer
func (c *Customer) AddStoreCredit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}

	oldCredit := c.StoreCredit
	c.StoreCredit = c.StoreCredit.Add(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerCreditChangedEvent(c, oldCredit, c.StoreCredit, "grant"))

	return nil
}

// SpendStoreCredit applies store credit against a purchase
func (c *Customer) SpendStoreCredit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if c.StoreCredit.LessThan(amount) {
		return shared.NewDomainError("INSUFFICIENT_CREDIT", "Insufficient store credit")
	}

	oldCredit := c.StoreCredit
	c.StoreCredit = c.StoreCredit.Sub(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerCreditChangedEvent(c, oldCredit, c.StoreCredit, "spend"))

	return nil
}

// Activate restores an inactive or suspended profile
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	oldStatus := c.Status
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, CustomerStatusActive))

	return nil
}

// Deactivate marks the profile inactive
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	oldStatus := c.Status
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, CustomerStatusInactive))

	return nil
}

// Suspend blocks the customer from placing orders
func (c *Customer) Suspend() error {
	if c.Status == CustomerStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Customer is already suspended")
	}

	oldStatus := c.Status
	c.Status = CustomerStatusSuspended
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, oldStatus, CustomerStatusSuspended))

	return nil
}

// IsActive returns true if the customer can place orders
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// IsGuest returns true if the profile has no sign-in account
func (c *Customer) IsGuest() bool {
	return c.UserID == nil
}

// FullName returns the customer's full name
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DefaultAddress returns the customer's default address, or nil
func (c *Customer) DefaultAddress() *Address {
	for i := range c.Addresses {
		if c.Addresses[i].IsDefault {
			return &c.Addresses[i]
		}
	}
	return nil
}

// Validation functions

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9+\-() ]{10,20}$`)
)

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return shared.NewDomainError("INVALID_PHONE", "Phone must be 10 to 20 digits, spaces, or punctuation")
	}
	return nil
}
