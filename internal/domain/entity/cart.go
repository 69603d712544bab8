package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart holds the stored cart state: one record per user, created lazily on the
// first add. Lines merge by product id; a product appears at most once.
type Cart struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"userId"`
	Lines  []CartLine `json:"lines"`
}

// CartLine is a (product reference, quantity) pair within a cart.
type CartLine struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// AddProduct merges a product into the cart: an existing line's quantity is
// incremented, otherwise a new line with quantity 1 is appended.
func (c *Cart) AddProduct(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity++

			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: 1})
}

// RemoveProduct drops the whole line for the product. Removing a product that
// is not in the cart is a no-op.
func (c *Cart) RemoveProduct(productID uuid.UUID) {
	lines := c.Lines[:0]
	for _, line := range c.Lines {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}
	c.Lines = lines
}

// ResolvedCart is the cart with product references expanded to full product
// records. It is the single normalized shape every cart operation returns,
// whether or not a cart record exists yet.
type ResolvedCart struct {
	ID       uuid.UUID          `json:"id"`
	UserID   uuid.UUID          `json:"userId"`
	Lines    []ResolvedCartLine `json:"lines"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// ResolvedCartLine pairs a full product record with the line quantity.
type ResolvedCartLine struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// EmptyResolvedCart is the shape returned when the user has no cart record.
func EmptyResolvedCart(userID uuid.UUID) *ResolvedCart {
	return &ResolvedCart{
		UserID:   userID,
		Lines:    []ResolvedCartLine{},
		Subtotal: decimal.Zero,
	}
}
