package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetdelights/backend/internal/models"
)

// Order is a derived aggregate, never persisted: all purchases by one user
// on one calendar day. It is recomputed from the ledger on every read, so
// TotalAmount and TotalItems cannot drift from the items they summarize.
type Order struct {
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	UserName    string          `json:"user_name"`
	UserEmail   string          `json:"user_email"`
	OrderDate   time.Time       `json:"order_date"`
	Items       []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalItems  int             `json:"total_items"`
}

type OrderItem struct {
	PurchaseID      string          `json:"purchase_id"`
	SweetID         string          `json:"sweet_id"`
	SweetName       string          `json:"sweet_name"`
	SweetCategory   string          `json:"sweet_category"`
	SweetImageURL   string          `json:"sweet_image_url"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	ItemTotal       decimal.Decimal `json:"item_total"`
	PurchasedAt     time.Time       `json:"purchased_at"`
}

// orderDayLayout fixes the calendar-day truncation used for grouping.
// Days are taken in UTC: a purchase at 23:30 UTC and one at 00:30 UTC the
// next day land in different orders regardless of the buyer's local time.
const orderDayLayout = "2006-01-02"

// GroupIntoOrders partitions ledger rows into one Order per
// (user, UTC calendar day). Row order is preserved both across orders and
// within an order's items, and OrderDate is the purchase time of the
// group's first-encountered row; with the ledger read newest-first that is
// the latest purchase of the day. Empty input yields an empty slice.
func GroupIntoOrders(records []models.PurchaseRecord) []Order {
	orders := make([]Order, 0, len(records))
	index := make(map[string]int, len(records))

	for _, rec := range records {
		key := rec.UserID + "/" + rec.PurchasedAt.UTC().Format(orderDayLayout)

		i, ok := index[key]
		if !ok {
			i = len(orders)
			index[key] = i
			orders = append(orders, Order{
				OrderID:     key,
				UserID:      rec.UserID,
				UserName:    rec.UserName,
				UserEmail:   rec.UserEmail,
				OrderDate:   rec.PurchasedAt,
				TotalAmount: decimal.Zero,
			})
		}

		itemTotal := rec.PriceAtPurchase.Mul(decimal.NewFromInt(int64(rec.Quantity)))
		orders[i].Items = append(orders[i].Items, OrderItem{
			PurchaseID:      rec.ID,
			SweetID:         rec.SweetID,
			SweetName:       rec.SweetName,
			SweetCategory:   rec.SweetCategory,
			SweetImageURL:   rec.SweetImageURL,
			Quantity:        rec.Quantity,
			PriceAtPurchase: rec.PriceAtPurchase,
			ItemTotal:       itemTotal,
			PurchasedAt:     rec.PurchasedAt,
		})
		orders[i].TotalAmount = orders[i].TotalAmount.Add(itemTotal)
		orders[i].TotalItems += rec.Quantity
	}

	return orders
}
