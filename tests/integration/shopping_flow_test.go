package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
	appshopping "github.com/storefront/backend/internal/application/shopping"
	"github.com/storefront/backend/internal/domain/catalog"
)

// seedCatalog creates a brand, a category and two active products and
// returns the product responses.
func seedCatalog(t *testing.T, env *testEnv) (*appcatalog.ProductResponse, *appcatalog.ProductResponse) {
	t.Helper()
	ctx := context.Background()

	brand, err := env.brands.Create(ctx, appcatalog.CreateBrandRequest{Name: "Acme"})
	require.NoError(t, err)

	category, err := env.categories.Create(ctx, appcatalog.CreateCategoryRequest{Name: "Gadgets"})
	require.NoError(t, err)

	mug, err := env.products.Create(ctx, appcatalog.CreateProductRequest{
		SKU:        "MUG-001",
		Name:       "Coffee Mug",
		BrandID:    &brand.ID,
		CategoryID: &category.ID,
		Price:      decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)

	lamp, err := env.products.Create(ctx, appcatalog.CreateProductRequest{
		SKU:        "LAMP-001",
		Name:       "Desk Lamp",
		BrandID:    &brand.ID,
		CategoryID: &category.ID,
		Price:      decimal.RequireFromString("45.00"),
	})
	require.NoError(t, err)

	return mug, lamp
}

func checkoutAddress() appshopping.CheckoutRequest {
	return appshopping.CheckoutRequest{
		RecipientName: "Test Shopper",
		Line1:         "1 Main Street",
		City:          "Springfield",
		PostalCode:    "12345",
		Country:       "US",
	}
}

func TestShopCatalog(t *testing.T) {
	env := newTestEnv(t)
	mug, lamp := seedCatalog(t, env)

	t.Run("anonymous visitors can browse products", func(t *testing.T) {
		rec, resp := env.request(t, http.MethodGet, "/api/v1/shop/products", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var products []appcatalog.ProductResponse
		decodeData(t, resp, &products)
		assert.Len(t, products, 2)
	})

	t.Run("product detail is served by slug", func(t *testing.T) {
		rec, resp := env.request(t, http.MethodGet, "/api/v1/shop/products/"+mug.Slug, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var product appcatalog.ProductResponse
		decodeData(t, resp, &product)
		assert.Equal(t, "MUG-001", product.SKU)
		assert.True(t, decimal.RequireFromString("12.50").Equal(product.Price))
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		rec, _ := env.request(t, http.MethodGet, "/api/v1/shop/products/no-such-thing", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("categories and brands are browsable", func(t *testing.T) {
		rec, resp := env.request(t, http.MethodGet, "/api/v1/shop/categories", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var categories []*appcatalog.CategoryTreeNode
		decodeData(t, resp, &categories)
		assert.Len(t, categories, 1)

		rec, resp = env.request(t, http.MethodGet, "/api/v1/shop/brands", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var brands []appcatalog.BrandResponse
		decodeData(t, resp, &brands)
		assert.Len(t, brands, 1)
	})

	t.Run("deactivated products disappear from the storefront", func(t *testing.T) {
		_, err := env.products.SetStatus(context.Background(), lamp.ID, catalog.ProductStatusInactive)
		require.NoError(t, err)

		rec, resp := env.request(t, http.MethodGet, "/api/v1/shop/products", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var products []appcatalog.ProductResponse
		decodeData(t, resp, &products)
		require.Len(t, products, 1)
		assert.Equal(t, mug.ID, products[0].ID)

		rec, _ = env.request(t, http.MethodGet, "/api/v1/shop/products/"+lamp.Slug, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestShoppingFlow(t *testing.T) {
	env := newTestEnv(t)
	mug, lamp := seedCatalog(t, env)

	authResp := env.registerShopper(t, "shopper@example.com")
	token := authResp.Tokens.AccessToken

	t.Run("cart requires authentication", func(t *testing.T) {
		rec, _ := env.request(t, http.MethodGet, "/api/v1/cart", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("cart starts empty", func(t *testing.T) {
		rec, resp := env.request(t, http.MethodGet, "/api/v1/cart", nil, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var cart appshopping.CartResponse
		decodeData(t, resp, &cart)
		assert.Empty(t, cart.Items)
		assert.Equal(t, 0, cart.ItemCount)
	})

	t.Run("checkout with an empty cart fails", func(t *testing.T) {
		rec, resp := env.request(t, http.MethodPost, "/api/v1/checkout", checkoutAddress(), bearer(token))
		assert.GreaterOrEqual(t, rec.Code, 400)
		require.NotNil(t, resp.Error)
	})

	t.Run("items accumulate in the cart", func(t *testing.T) {
		rec, _ := env.request(t, http.MethodPost, "/api/v1/cart/items", appshopping.AddCartItemRequest{
			ProductID: mug.ID,
			Quantity:  2,
		}, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec, resp := env.request(t, http.MethodPost, "/api/v1/cart/items", appshopping.AddCartItemRequest{
			ProductID: lamp.ID,
			Quantity:  1,
		}, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var cart appshopping.CartResponse
		decodeData(t, resp, &cart)
		assert.Len(t, cart.Items, 2)
		assert.Equal(t, 3, cart.ItemCount)
		assert.True(t, decimal.RequireFromString("70.00").Equal(cart.Subtotal),
			"subtotal was %s", cart.Subtotal)
	})

	t.Run("line quantity can be changed and removed", func(t *testing.T) {
		rec, resp := env.request(t, http.MethodPut, "/api/v1/cart/items/"+lamp.ID.String(),
			appshopping.UpdateCartItemRequest{Quantity: 2}, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var cart appshopping.CartResponse
		decodeData(t, resp, &cart)
		assert.Equal(t, 4, cart.ItemCount)

		rec, resp = env.request(t, http.MethodDelete, "/api/v1/cart/items/"+lamp.ID.String(), nil, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		decodeData(t, resp, &cart)
		assert.Len(t, cart.Items, 1)

		// Put the lamp back for checkout.
		rec, _ = env.request(t, http.MethodPost, "/api/v1/cart/items", appshopping.AddCartItemRequest{
			ProductID: lamp.ID,
			Quantity:  1,
		}, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown products cannot be added", func(t *testing.T) {
		rec, _ := env.request(t, http.MethodPost, "/api/v1/cart/items", appshopping.AddCartItemRequest{
			ProductID: uuid.New(),
			Quantity:  1,
		}, bearer(token))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	var orderID uuid.UUID
	t.Run("checkout turns the cart into an order", func(t *testing.T) {
		rec, resp := env.request(t, http.MethodPost, "/api/v1/checkout", checkoutAddress(), bearer(token))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var order appshopping.OrderResponse
		decodeData(t, resp, &order)
		orderID = order.ID

		assert.NotEmpty(t, order.OrderNumber)
		assert.Len(t, order.Items, 2)
		assert.True(t, decimal.RequireFromString("70.00").Equal(order.Subtotal))
		assert.True(t, decimal.RequireFromString("5.00").Equal(order.ShippingFee))
		assert.True(t, decimal.RequireFromString("75.00").Equal(order.Total))

		// Checkout drains the cart.
		rec, resp = env.request(t, http.MethodGet, "/api/v1/cart", nil, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code)
		var cart appshopping.CartResponse
		decodeData(t, resp, &cart)
		assert.Empty(t, cart.Items)
	})

	t.Run("shoppers see their own orders", func(t *testing.T) {
		rec, resp := env.request(t, http.MethodGet, "/api/v1/orders", nil, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var orders []appshopping.OrderResponse
		decodeData(t, resp, &orders)
		require.Len(t, orders, 1)
		assert.Equal(t, orderID, orders[0].ID)

		rec, resp = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code)
		var order appshopping.OrderResponse
		decodeData(t, resp, &order)
		assert.Equal(t, orderID, order.ID)
	})

	t.Run("orders of other shoppers stay hidden", func(t *testing.T) {
		other := env.registerShopper(t, "other@example.com")

		rec, resp := env.request(t, http.MethodGet, "/api/v1/orders", nil, bearer(other.Tokens.AccessToken))
		require.Equal(t, http.StatusOK, rec.Code)
		var orders []appshopping.OrderResponse
		decodeData(t, resp, &orders)
		assert.Empty(t, orders)

		rec, _ = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, bearer(other.Tokens.AccessToken))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("free shipping kicks in over the threshold", func(t *testing.T) {
		rec, _ := env.request(t, http.MethodPost, "/api/v1/cart/items", appshopping.AddCartItemRequest{
			ProductID: lamp.ID,
			Quantity:  3,
		}, bearer(token))
		require.Equal(t, http.StatusOK, rec.Code)

		rec, resp := env.request(t, http.MethodPost, "/api/v1/checkout", checkoutAddress(), bearer(token))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var order appshopping.OrderResponse
		decodeData(t, resp, &order)
		assert.True(t, decimal.RequireFromString("135.00").Equal(order.Subtotal))
		assert.True(t, order.ShippingFee.IsZero(), "shipping fee was %s", order.ShippingFee)
		assert.True(t, decimal.RequireFromString("135.00").Equal(order.Total))
	})
}
