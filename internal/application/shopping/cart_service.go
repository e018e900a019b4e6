package shopping

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/shopping"
)

// CartService manages the shopper's cart. Carts live in the cache
// layer keyed by customer and expire on their own.
type CartService struct {
	cartStore   shopping.CartStore
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartStore shopping.CartStore, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartStore:   cartStore,
		productRepo: productRepo,
	}
}

// CartOwnerKey derives the cache key for a customer's cart
func CartOwnerKey(customerID uuid.UUID) string {
	return "customer:" + customerID.String()
}

// Get returns the customer's cart, empty if none exists
func (s *CartService) Get(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartStore.Get(ctx, CartOwnerKey(customerID))
	if err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// AddItem adds a product to the cart, snapshotting its current price.
// Adding a product already in the cart increases the line quantity.
func (s *CartService) AddItem(ctx context.Context, customerID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available for purchase")
	}

	cart, err := s.cartStore.Get(ctx, CartOwnerKey(customerID))
	if err != nil {
		return nil, err
	}

	price := valueobject.NewMoneyUSD(product.Price)
	if err := cart.AddItem(product.ID, product.SKU, product.Name, price, product.ImageURL, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartStore.Put(ctx, cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// UpdateQuantity changes the quantity of an existing cart line
func (s *CartService) UpdateQuantity(ctx context.Context, customerID, productID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	cart, err := s.cartStore.Get(ctx, CartOwnerKey(customerID))
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartStore.Put(ctx, cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// RemoveItem deletes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartStore.Get(ctx, CartOwnerKey(customerID))
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveItem(productID); err != nil {
		return nil, err
	}

	if err := s.cartStore.Put(ctx, cart); err != nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// Clear empties the customer's cart
func (s *CartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	return s.cartStore.Delete(ctx, CartOwnerKey(customerID))
}
