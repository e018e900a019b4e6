package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
)

// GormOrderRepository implements shopping.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its line items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.Order, error) {
	var order shopping.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its human-readable number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*shopping.Order, error) {
	var order shopping.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("order_number = ?", strings.ToUpper(strings.TrimSpace(orderNumber))).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByCustomer returns a customer's orders, newest first
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*shopping.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&shopping.Order{}).Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var orders []*shopping.Order
	if err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindAll returns orders matching the filter with the total count
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shopping.OrderFilter) ([]*shopping.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&shopping.Order{})

	if filter.Keyword != "" {
		keyword := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where(
			"LOWER(order_number) LIKE ? OR LOWER(customer_email) LIKE ?",
			keyword, keyword,
		)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.PlacedFrom != nil {
		query = query.Where("created_at >= ?", *filter.PlacedFrom)
	}
	if filter.PlacedTo != nil {
		query = query.Where("created_at <= ?", *filter.PlacedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if !columnNameRegex.MatchString(sortBy) {
		sortBy = "created_at"
	}
	order := sortBy + " DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = sortBy + " ASC"
	}

	var orders []*shopping.Order
	if err := query.Preload("Items").
		Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Save persists the order and its line items
func (r *GormOrderRepository) Save(ctx context.Context, order *shopping.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// CountByStatus counts orders in the given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status shopping.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&shopping.Order{}).
		Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ shopping.OrderRepository = (*GormOrderRepository)(nil)
