package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerAggregate rolls every order of one customer into the metrics the
// dashboard shows. Like Order it is derived on every read and holds no
// persisted state.
type CustomerAggregate struct {
	UserID            string          `json:"user_id"`
	UserName          string          `json:"user_name"`
	UserEmail         string          `json:"user_email"`
	Orders            []Order         `json:"orders"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	TotalOrders       int             `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	LastOrderDate     time.Time       `json:"last_order_date"`
	FavoriteItems     map[string]int  `json:"favorite_items"`
	TopFavoriteItem   string          `json:"top_favorite_item"`

	// sweet names in first-encountered order, so the top-favorite
	// tie-break does not depend on map iteration order.
	favoriteSeen []string
}

// GroupByCustomer builds one aggregate per distinct user in the input.
// TopFavoriteItem is the sweet with the highest cumulative quantity; on a
// tie the first one encountered in ledger order wins, which keeps repeated
// runs over the same input identical.
func GroupByCustomer(orders []Order) map[string]*CustomerAggregate {
	customers := make(map[string]*CustomerAggregate)

	for _, order := range orders {
		c, ok := customers[order.UserID]
		if !ok {
			c = &CustomerAggregate{
				UserID:        order.UserID,
				UserName:      order.UserName,
				UserEmail:     order.UserEmail,
				TotalSpent:    decimal.Zero,
				FavoriteItems: make(map[string]int),
			}
			customers[order.UserID] = c
		}

		c.Orders = append(c.Orders, order)
		c.TotalSpent = c.TotalSpent.Add(order.TotalAmount)
		c.TotalOrders++
		if order.OrderDate.After(c.LastOrderDate) {
			c.LastOrderDate = order.OrderDate
		}

		for _, item := range order.Items {
			if _, seen := c.FavoriteItems[item.SweetName]; !seen {
				c.favoriteSeen = append(c.favoriteSeen, item.SweetName)
			}
			c.FavoriteItems[item.SweetName] += item.Quantity
		}
	}

	for _, c := range customers {
		// TotalOrders cannot be 0 here for real input, but the guard
		// keeps a partially built aggregate from dividing by zero.
		if c.TotalOrders > 0 {
			c.AverageOrderValue = c.TotalSpent.Div(decimal.NewFromInt(int64(c.TotalOrders)))
		} else {
			c.AverageOrderValue = decimal.Zero
		}

		best := -1
		for _, name := range c.favoriteSeen {
			if qty := c.FavoriteItems[name]; qty > best {
				best = qty
				c.TopFavoriteItem = name
			}
		}
	}

	return customers
}
