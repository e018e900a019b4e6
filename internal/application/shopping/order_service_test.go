package shopping

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/shopping"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
)

type orderServiceFixture struct {
	svc          *OrderService
	orderRepo    *MockOrderRepository
	productRepo  *MockProductRepository
	customerRepo *MockCustomerRepository
	cartStore    *cache.InMemoryCartStore
	eventBus     *MockEventBus
}

func newOrderService(t *testing.T, cfg config.CheckoutConfig) *orderServiceFixture {
	t.Helper()
	f := &orderServiceFixture{
		orderRepo:    new(MockOrderRepository),
		productRepo:  new(MockProductRepository),
		customerRepo: new(MockCustomerRepository),
		cartStore:    cache.NewInMemoryCartStore(time.Hour),
		eventBus:     NewMockEventBus(),
	}
	svc, err := NewOrderService(f.orderRepo, f.cartStore, f.productRepo, f.customerRepo, f.eventBus, cfg, zap.NewNop())
	require.NoError(t, err)
	f.svc = svc
	return f
}

func newTestCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	cust, err := customer.NewCustomer("jane@example.com", "Jane", "Doe")
	require.NoError(t, err)
	cust.ClearDomainEvents()
	return cust
}

func (f *orderServiceFixture) seedCart(t *testing.T, customerID uuid.UUID, product *catalog.Product, quantity int) {
	t.Helper()
	ctx := context.Background()
	cart, err := f.cartStore.Get(ctx, CartOwnerKey(customerID))
	require.NoError(t, err)
	price := valueobject.NewMoneyUSD(product.Price)
	require.NoError(t, cart.AddItem(product.ID, product.SKU, product.Name, price, product.ImageURL, quantity))
	require.NoError(t, f.cartStore.Put(ctx, cart))
}

func validCheckoutRequest() CheckoutRequest {
	return CheckoutRequest{
		RecipientName: "Jane Doe",
		Line1:         "42 Market Street",
		City:          "Springfield",
		Region:        "IL",
		PostalCode:    "62701",
		Country:       "us",
	}
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("places an order from the cart", func(t *testing.T) {
		f := newOrderService(t, config.CheckoutConfig{ShippingFlatRate: "5.00"})
		cust := newTestCustomer(t)
		product := newTestProduct(t, "TEE-001", "Cotton Tee", "19.99")

		f.seedCart(t, cust.ID, product, 2)
		f.customerRepo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		f.productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*shopping.Order")).Return(nil)

		resp, err := f.svc.Checkout(ctx, cust.ID, validCheckoutRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, resp.OrderNumber)
		assert.Equal(t, "pending", resp.Status)
		assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("39.98")))
		assert.True(t, resp.ShippingFee.Equal(decimal.RequireFromString("5.00")))
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("44.98")))
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)

		// cart is cleared after a successful checkout
		cart, err := f.cartStore.Get(ctx, CartOwnerKey(cust.ID))
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())

		placed := f.eventBus.EventsByType(shopping.EventTypeOrderPlaced)
		require.Len(t, placed, 1)
	})

	t.Run("waives shipping above the free threshold", func(t *testing.T) {
		f := newOrderService(t, config.CheckoutConfig{ShippingFlatRate: "5.00", FreeShippingOver: "50.00"})
		cust := newTestCustomer(t)
		product := newTestProduct(t, "JKT-001", "Rain Jacket", "89.00")

		f.seedCart(t, cust.ID, product, 1)
		f.customerRepo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		f.productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*shopping.Order")).Return(nil)

		resp, err := f.svc.Checkout(ctx, cust.ID, validCheckoutRequest())

		require.NoError(t, err)
		assert.True(t, resp.ShippingFee.IsZero())
		assert.True(t, resp.Total.Equal(decimal.RequireFromString("89.00")))
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		f := newOrderService(t, config.CheckoutConfig{ShippingFlatRate: "5.00"})
		cust := newTestCustomer(t)
		f.customerRepo.On("FindByID", ctx, cust.ID).Return(cust, nil)

		_, err := f.svc.Checkout(ctx, cust.ID, validCheckoutRequest())

		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a suspended customer", func(t *testing.T) {
		f := newOrderService(t, config.CheckoutConfig{ShippingFlatRate: "5.00"})
		cust := newTestCustomer(t)
		require.NoError(t, cust.Suspend())

		f.customerRepo.On("FindByID", ctx, cust.ID).Return(cust, nil)

		_, err := f.svc.Checkout(ctx, cust.ID, validCheckoutRequest())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CUSTOMER_INACTIVE", domainErr.Code)
	})

	t.Run("rejects a cart holding a deactivated product", func(t *testing.T) {
		f := newOrderService(t, config.CheckoutConfig{ShippingFlatRate: "5.00"})
		cust := newTestCustomer(t)
		product := newTestProduct(t, "TEE-002", "Retired Tee", "9.99")

		f.seedCart(t, cust.ID, product, 1)
		require.NoError(t, product.Deactivate())

		f.customerRepo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		f.productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)

		_, err := f.svc.Checkout(ctx, cust.ID, validCheckoutRequest())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an invalid country code", func(t *testing.T) {
		f := newOrderService(t, config.CheckoutConfig{ShippingFlatRate: "5.00"})
		cust := newTestCustomer(t)
		product := newTestProduct(t, "TEE-003", "Plain Tee", "15.00")

		f.seedCart(t, cust.ID, product, 1)
		f.customerRepo.On("FindByID", ctx, cust.ID).Return(cust, nil)
		f.productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)

		req := validCheckoutRequest()
		req.Country = "usa"
		_, err := f.svc.Checkout(ctx, cust.ID, req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ADDRESS", domainErr.Code)
	})
}

func TestOrderService_RejectsBadShippingConfig(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	store := cache.NewInMemoryCartStore(time.Hour)

	_, err := NewOrderService(orderRepo, store, productRepo, customerRepo, nil,
		config.CheckoutConfig{ShippingFlatRate: "not-a-number"}, zap.NewNop())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CONFIG", domainErr.Code)
}

func placeTestOrder(t *testing.T, customerID uuid.UUID) *shopping.Order {
	t.Helper()
	cart, err := shopping.NewCart(CartOwnerKey(customerID))
	require.NoError(t, err)
	price := valueobject.NewMoneyUSD(decimal.RequireFromString("10.00"))
	require.NoError(t, cart.AddItem(uuid.New(), "SKU-1", "Widget", price, "", 1))

	address, err := valueobject.NewAddress("1 Main St", "Springfield", "62701", "US")
	require.NoError(t, err)

	order, err := shopping.NewOrder(customerID, "jane@example.com", cart, address, decimal.RequireFromString("5.00"))
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestOrderService_GetForCustomer(t *testing.T) {
	ctx := context.Background()
	f := newOrderService(t, config.CheckoutConfig{ShippingFlatRate: "5.00"})
	customerID := uuid.New()
	order := placeTestOrder(t, customerID)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	t.Run("returns the customer's own order", func(t *testing.T) {
		resp, err := f.svc.GetForCustomer(ctx, customerID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.OrderNumber, resp.OrderNumber)
	})

	t.Run("hides another customer's order", func(t *testing.T) {
		_, err := f.svc.GetForCustomer(ctx, uuid.New(), order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newOrderService(t, config.CheckoutConfig{ShippingFlatRate: "5.00"})
	order := placeTestOrder(t, uuid.New())

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Save", ctx, order).Return(nil)

	resp, err := f.svc.Confirm(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)

	resp, err = f.svc.Ship(ctx, order.ID, ShipOrderRequest{TrackingNumber: "TRK-123"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", resp.Status)
	assert.Equal(t, "TRK-123", resp.TrackingNumber)

	resp, err = f.svc.Deliver(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "delivered", resp.Status)
	assert.NotNil(t, resp.DeliveredAt)

	t.Run("delivered orders cannot be cancelled", func(t *testing.T) {
		_, err := f.svc.Cancel(ctx, order.ID, CancelOrderRequest{Reason: "changed my mind"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newOrderService(t, config.CheckoutConfig{ShippingFlatRate: "5.00"})
	order := placeTestOrder(t, uuid.New())

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Save", ctx, order).Return(nil)

	resp, err := f.svc.Cancel(ctx, order.ID, CancelOrderRequest{Reason: "ordered by mistake"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "ordered by mistake", resp.CancelReason)

	cancelled := f.eventBus.EventsByType(shopping.EventTypeOrderCancelled)
	require.Len(t, cancelled, 1)
}
