package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CreateCustomerRequest represents a request to create a customer profile
type CreateCustomerRequest struct {
	UserID    *uuid.UUID `json:"user_id"`
	Email     string     `json:"email" binding:"required,email"`
	FirstName string     `json:"first_name" binding:"required,max=100"`
	LastName  string     `json:"last_name" binding:"required,max=100"`
	Phone     string     `json:"phone" binding:"max=50"`
}

// UpdateCustomerRequest represents a request to update a customer profile
type UpdateCustomerRequest struct {
	FirstName     string  `json:"first_name" binding:"required,max=100"`
	LastName      string  `json:"last_name" binding:"required,max=100"`
	Phone         string  `json:"phone" binding:"max=50"`
	AcceptsEmails *bool   `json:"accepts_emails"`
	Notes         *string `json:"notes"`
}

// SetLevelRequest changes a customer's loyalty tier
type SetLevelRequest struct {
	Level string `json:"level" binding:"required,oneof=standard silver gold vip"`
}

// AdjustStoreCreditRequest adds or spends store credit
type AdjustStoreCreditRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"max=500"`
}

// SaveAddressRequest represents a request to create or update a saved address
type SaveAddressRequest struct {
	Label         string `json:"label" binding:"max=50"`
	RecipientName string `json:"recipient_name" binding:"required,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Line1         string `json:"line1" binding:"required,max=200"`
	Line2         string `json:"line2" binding:"max=200"`
	City          string `json:"city" binding:"required,max=100"`
	Region        string `json:"region" binding:"max=100"`
	PostalCode    string `json:"postal_code" binding:"required,max=20"`
	Country       string `json:"country" binding:"required,len=2"`
	IsDefault     bool   `json:"is_default"`
}

// CustomerListFilter represents list filter parameters
type CustomerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive suspended"`
	Level    string `form:"level" binding:"omitempty,oneof=standard silver gold vip"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f CustomerListFilter) toFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = f.Search
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.Level != "" {
		filter.Filters["level"] = f.Level
	}
	return filter
}

// ============================================================================
// Response DTOs
// ============================================================================

// CustomerResponse represents a customer profile in API responses
type CustomerResponse struct {
	ID            uuid.UUID         `json:"id"`
	UserID        *uuid.UUID        `json:"user_id,omitempty"`
	Email         string            `json:"email"`
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	Phone         string            `json:"phone,omitempty"`
	Level         string            `json:"level"`
	Status        string            `json:"status"`
	StoreCredit   decimal.Decimal   `json:"store_credit"`
	AcceptsEmails bool              `json:"accepts_emails"`
	Notes         string            `json:"notes,omitempty"`
	Addresses     []AddressResponse `json:"addresses,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// AddressResponse represents a saved address in API responses
type AddressResponse struct {
	ID            uuid.UUID `json:"id"`
	Label         string    `json:"label,omitempty"`
	RecipientName string    `json:"recipient_name"`
	Phone         string    `json:"phone,omitempty"`
	Line1         string    `json:"line1"`
	Line2         string    `json:"line2,omitempty"`
	City          string    `json:"city"`
	Region        string    `json:"region,omitempty"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	IsDefault     bool      `json:"is_default"`
}

// ============================================================================
// Mappers
// ============================================================================

func toCustomerResponse(c *customer.Customer) *CustomerResponse {
	resp := &CustomerResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		Email:         c.Email,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Phone:         c.Phone,
		Level:         string(c.Level),
		Status:        string(c.Status),
		StoreCredit:   c.StoreCredit,
		AcceptsEmails: c.AcceptsEmails,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for i := range c.Addresses {
		resp.Addresses = append(resp.Addresses, *toAddressResponse(&c.Addresses[i]))
	}
	return resp
}

func toAddressResponse(a *customer.Address) *AddressResponse {
	return &AddressResponse{
		ID:            a.ID,
		Label:         a.Label,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Line1:         a.Location.Line1(),
		Line2:         a.Location.Line2(),
		City:          a.Location.City(),
		Region:        a.Location.Region(),
		PostalCode:    a.Location.PostalCode(),
		Country:       a.Location.Country(),
		IsDefault:     a.IsDefault,
	}
}
