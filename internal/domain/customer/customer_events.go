package customer

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated       = "CustomerCreated"
	EventTypeCustomerUpdated       = "CustomerUpdated"
	EventTypeCustomerLevelChanged  = "CustomerLevelChanged"
	EventTypeCustomerCreditChanged = "CustomerCreditChanged"
	EventTypeCustomerStatusChanged = "CustomerStatusChanged"
)

// CustomerCreatedEvent is published when a new profile is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID  `json:"customer_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Email      string     `json:"email"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, customer.ID, AggregateTypeCustomer),
		CustomerID:      customer.ID,
		UserID:          customer.UserID,
		Email:           customer.Email,
	}
}

// CustomerUpdatedEvent is published when profile details change
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, customer.ID, AggregateTypeCustomer),
		CustomerID:      customer.ID,
		Email:           customer.Email,
		FullName:        customer.FullName(),
	}
}

// CustomerLevelChangedEvent is published when the loyalty tier changes
type CustomerLevelChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID     `json:"customer_id"`
	OldLevel   CustomerLevel `json:"old_level"`
	NewLevel   CustomerLevel `json:"new_level"`
}

// NewCustomerLevelChangedEvent creates a new CustomerLevelChangedEvent
func NewCustomerLevelChangedEvent(customer *Customer, oldLevel, newLevel CustomerLevel) *CustomerLevelChangedEvent {
	return &CustomerLevelChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerLevelChanged, customer.ID, AggregateTypeCustomer),
		CustomerID:      customer.ID,
		OldLevel:        oldLevel,
		NewLevel:        newLevel,
	}
}

// CustomerCreditChangedEvent is published when store credit moves
type CustomerCreditChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID       `json:"customer_id"`
	OldCredit  decimal.Decimal `json:"old_credit"`
	NewCredit  decimal.Decimal `json:"new_credit"`
	Reason     string          `json:"reason"` // "grant" or "spend"
}

// NewCustomerCreditChangedEvent creates a new CustomerCreditChangedEvent
func NewCustomerCreditChangedEvent(customer *Customer, oldCredit, newCredit decimal.Decimal, reason string) *CustomerCreditChangedEvent {
	return &CustomerCreditChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreditChanged, customer.ID, AggregateTypeCustomer),
		CustomerID:      customer.ID,
		OldCredit:       oldCredit,
		NewCredit:       newCredit,
		Reason:          reason,
	}
}

// CustomerStatusChangedEvent is published when a profile's status changes
type CustomerStatusChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID      `json:"customer_id"`
	OldStatus  CustomerStatus `json:"old_status"`
	NewStatus  CustomerStatus `json:"new_status"`
}

// NewCustomerStatusChangedEvent creates a new CustomerStatusChangedEvent
func NewCustomerStatusChangedEvent(customer *Customer, oldStatus, newStatus CustomerStatus) *CustomerStatusChangedEvent {
	return &CustomerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerStatusChanged, customer.ID, AggregateTypeCustomer),
		CustomerID:      customer.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
