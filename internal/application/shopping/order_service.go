package shopping

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/shopping"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// OrderService handles checkout and the order lifecycle
type OrderService struct {
	orderRepo    shopping.OrderRepository
	cartStore    shopping.CartStore
	productRepo  catalog.ProductRepository
	customerRepo customer.CustomerRepository
	eventBus     shared.EventBus
	shippingFee  decimal.Decimal
	freeShipOver decimal.Decimal // zero disables free shipping
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo shopping.OrderRepository,
	cartStore shopping.CartStore,
	productRepo catalog.ProductRepository,
	customerRepo customer.CustomerRepository,
	eventBus shared.EventBus,
	checkoutCfg config.CheckoutConfig,
	logger *zap.Logger,
) (*OrderService, error) {
	shippingFee, err := decimal.NewFromString(checkoutCfg.ShippingFlatRate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CONFIG", "Invalid shipping flat rate: "+checkoutCfg.ShippingFlatRate)
	}
	freeShipOver := decimal.Zero
	if checkoutCfg.FreeShippingOver != "" {
		freeShipOver, err = decimal.NewFromString(checkoutCfg.FreeShippingOver)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CONFIG", "Invalid free shipping threshold: "+checkoutCfg.FreeShippingOver)
		}
	}

	return &OrderService{
		orderRepo:    orderRepo,
		cartStore:    cartStore,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		eventBus:     eventBus,
		shippingFee:  shippingFee,
		freeShipOver: freeShipOver,
		logger:       logger,
	}, nil
}

// Checkout places an order from the customer's cart. The cart is
// revalidated against the live catalog, the shipping address is
// snapshotted onto the order, and the cart is cleared on success.
func (s *OrderService) Checkout(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	cust, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !cust.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Customer account cannot place orders")
	}

	cart, err := s.cartStore.Get(ctx, CartOwnerKey(customerID))
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	if err := s.revalidateCart(ctx, cart); err != nil {
		return nil, err
	}

	opts := make([]valueobject.AddressOption, 0, 2)
	if req.Line2 != "" {
		opts = append(opts, valueobject.WithLine2(req.Line2))
	}
	if req.Region != "" {
		opts = append(opts, valueobject.WithRegion(req.Region))
	}
	address, err := valueobject.NewAddress(req.Line1, req.City, req.PostalCode, strings.ToUpper(req.Country), opts...)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}

	order, err := shopping.NewOrder(customerID, cust.Email, cart, address, s.shippingFor(cart))
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		if err := order.SetNotes(req.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if err := s.cartStore.Delete(ctx, CartOwnerKey(customerID)); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("customer_id", customerID.String()), zap.Error(err))
	}

	s.publishDomainEvents(ctx, order)

	s.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("customer_id", customerID.String()),
		zap.String("total", order.Total.String()))
	return toOrderResponse(order), nil
}

// revalidateCart re-checks every cart line against the live catalog so
// a stale cart cannot order discontinued or deactivated products.
func (s *OrderService) revalidateCart(ctx context.Context, cart *shopping.Cart) error {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	active := make(map[uuid.UUID]bool, len(products))
	for i := range products {
		active[products[i].ID] = products[i].IsActive()
	}

	for _, item := range cart.Items {
		if !active[item.ProductID] {
			return shared.NewDomainError("PRODUCT_UNAVAILABLE",
				"Product is no longer available: "+item.Name)
		}
	}
	return nil
}

func (s *OrderService) shippingFor(cart *shopping.Cart) decimal.Decimal {
	if s.freeShipOver.IsPositive() && cart.Subtotal().GreaterThanOrEqual(s.freeShipOver) {
		return decimal.Zero
	}
	return s.shippingFee
}

// Get returns an order by ID
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetForCustomer returns an order only when it belongs to the customer
func (s *OrderService) GetForCustomer(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// GetByNumber returns an order by its human-friendly number
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListForCustomer returns the customer's order history, newest first
func (s *OrderService) ListForCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) ([]*OrderResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	orders, total, err := s.orderRepo.FindByCustomer(ctx, customerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// List returns orders matching the admin filter
func (s *OrderService) List(ctx context.Context, req OrderListFilter) ([]*OrderResponse, int64, error) {
	orders, total, err := s.orderRepo.FindAll(ctx, req.toFilter())
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// Confirm moves a pending order to confirmed
func (s *OrderService) Confirm(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *shopping.Order) error {
		return o.Confirm()
	})
}

// Ship marks a confirmed order as shipped
func (s *OrderService) Ship(ctx context.Context, id uuid.UUID, req ShipOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *shopping.Order) error {
		return o.Ship(req.TrackingNumber)
	})
}

// Deliver marks a shipped order as delivered
func (s *OrderService) Deliver(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *shopping.Order) error {
		return o.Deliver()
	})
}

// Cancel cancels a pending or confirmed order
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *shopping.Order) error {
		return o.Cancel(req.Reason)
	})
}

// CountByStatus returns the number of orders in the given status
func (s *OrderService) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.orderRepo.CountByStatus(ctx, shopping.OrderStatus(status))
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, apply func(*shopping.Order) error) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	s.logger.Info("order status changed",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)))
	return toOrderResponse(order), nil
}

// publishDomainEvents hands the aggregate's events to the bus. Event
// delivery is asynchronous; failures are logged by the bus, not
// propagated to the caller.
func (s *OrderService) publishDomainEvents(ctx context.Context, order *shopping.Order) {
	if s.eventBus == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	order.ClearDomainEvents()
}

func toOrderResponses(orders []*shopping.Order) []*OrderResponse {
	responses := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, toOrderResponse(o))
	}
	return responses
}
