// Package cart holds a customer's pending selection before checkout. The
// cart is an explicit state value transformed by pure reducer functions;
// nothing in here touches globals, and totals are always recomputed from
// the items so they cannot drift.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/sweetdelights/backend/internal/models"
)

type Item struct {
	SweetID   string          `json:"sweet_id"`
	SweetName string          `json:"sweet_name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Available int             `json:"available"`
}

type Cart struct {
	Items []Item `json:"items"`
}

// Total is the sum of price x quantity over all items.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalItems is the sum of quantities over all items.
func (c Cart) TotalItems() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Add puts a sweet in the cart or tops up its line, clamping the quantity
// to the stock available at the time of the call. An out-of-stock sweet
// is not added at all: a zero-quantity line would only fail checkout.
func Add(c Cart, sweet models.Sweet, quantity int) Cart {
	if quantity <= 0 || sweet.Quantity <= 0 {
		return c
	}

	items := make([]Item, len(c.Items))
	copy(items, c.Items)

	for i, item := range items {
		if item.SweetID == sweet.ID {
			items[i].Quantity = clamp(item.Quantity+quantity, sweet.Quantity)
			items[i].Price = sweet.Price
			items[i].Available = sweet.Quantity
			return Cart{Items: items}
		}
	}

	items = append(items, Item{
		SweetID:   sweet.ID,
		SweetName: sweet.Name,
		Price:     sweet.Price,
		Quantity:  clamp(quantity, sweet.Quantity),
		Available: sweet.Quantity,
	})
	return Cart{Items: items}
}

// UpdateQuantity sets a line's quantity, clamped to its recorded stock.
// A quantity of zero or less removes the line.
func UpdateQuantity(c Cart, sweetID string, quantity int) Cart {
	if quantity <= 0 {
		return Remove(c, sweetID)
	}

	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	for i, item := range items {
		if item.SweetID == sweetID {
			items[i].Quantity = clamp(quantity, item.Available)
		}
	}
	return Cart{Items: items}
}

// Remove drops a line from the cart.
func Remove(c Cart, sweetID string) Cart {
	items := make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		if item.SweetID != sweetID {
			items = append(items, item)
		}
	}
	return Cart{Items: items}
}

// Clear empties the cart.
func Clear(Cart) Cart {
	return Cart{Items: []Item{}}
}

func clamp(quantity, available int) int {
	if available >= 0 && quantity > available {
		return available
	}
	return quantity
}
