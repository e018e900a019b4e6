package shopping

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderFilter captures the admin order list query parameters.
type OrderFilter struct {
	Keyword    string
	Status     OrderStatus
	CustomerID *uuid.UUID
	PlacedFrom *time.Time
	PlacedTo   *time.Time
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// Offset returns the query offset derived from the page number.
func (f OrderFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit()
}

// Limit returns the page size, defaulting to 20 and capped at 100.
func (f OrderFilter) Limit() int {
	if f.PageSize < 1 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// OrderRepository defines the persistence contract for orders.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*Order, int64, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]*Order, int64, error)
	Save(ctx context.Context, order *Order) error
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
}

// CartStore defines the cache contract for carts. Carts expire on
// their own after the configured TTL.
type CartStore interface {
	Get(ctx context.Context, ownerKey string) (*Cart, error)
	Put(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, ownerKey string) error
}
