package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// MaxCartItemQuantity caps the quantity of a single cart line.
const MaxCartItemQuantity = 99

// CartItem is a single line in a shopping cart. Product details are
// snapshotted at the time the line is added so the cart stays readable
// even when the product changes afterwards.
type CartItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// LineTotal returns the unit price multiplied by quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds the items a customer intends to buy. Carts are keyed by
// owner: the user ID for signed-in customers or an opaque session ID
// for guests. They live in the cache layer and are not an aggregate.
type Cart struct {
	OwnerKey  string     `json:"owner_key"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for the given owner key.
func NewCart(ownerKey string) (*Cart, error) {
	if ownerKey == "" {
		return nil, shared.NewDomainError("INVALID_CART_OWNER", "Cart owner key cannot be empty")
	}
	return &Cart{
		OwnerKey:  ownerKey,
		Items:     make([]CartItem, 0),
		UpdatedAt: time.Now(),
	}, nil
}

// AddItem adds a product to the cart. Adding a product that is already
// in the cart increases its quantity instead of creating a second line.
func (c *Cart) AddItem(productID uuid.UUID, sku, name string, unitPrice valueobject.Money, imageURL string, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			newQty := c.Items[idx].Quantity + quantity
			if newQty > MaxCartItemQuantity {
				return shared.NewDomainError("QUANTITY_LIMIT", "Quantity exceeds the per-item limit")
			}
			c.Items[idx].Quantity = newQty
			c.Items[idx].UnitPrice = unitPrice.Amount()
			c.Items[idx].Currency = string(unitPrice.Currency())
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	if quantity > MaxCartItemQuantity {
		return shared.NewDomainError("QUANTITY_LIMIT", "Quantity exceeds the per-item limit")
	}

	c.Items = append(c.Items, CartItem{
		ProductID: productID,
		SKU:       sku,
		Name:      name,
		UnitPrice: unitPrice.Amount(),
		Currency:  string(unitPrice.Currency()),
		ImageURL:  imageURL,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	})
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity of
// zero removes the line.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if quantity > MaxCartItemQuantity {
		return shared.NewDomainError("QUANTITY_LIMIT", "Quantity exceeds the per-item limit")
	}
	if quantity == 0 {
		return c.RemoveItem(productID)
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity = quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
}

// RemoveItem deletes a line from the cart.
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for idx, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the cart")
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal sums all line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
