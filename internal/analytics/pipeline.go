package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetdelights/backend/internal/models"
)

// recentWindow is how far back a customer's last order may be for them to
// count as recently active, both in the segment filter and in the cohort
// summary.
const recentWindow = 30 * 24 * time.Hour

// FilterRecordsByPeriod keeps ledger rows with purchasedAt inside the
// period window ending at now. It runs on raw records before grouping, so
// a customer whose entire activity is older than the window disappears
// from every downstream aggregate.
func FilterRecordsByPeriod(records []models.PurchaseRecord, period Period, now time.Time) []models.PurchaseRecord {
	days := period.Days()
	if days == 0 {
		return records
	}

	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	filtered := make([]models.PurchaseRecord, 0, len(records))
	for _, rec := range records {
		if !rec.PurchasedAt.Before(cutoff) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// FilterOrdersBySearch keeps orders whose customer name, customer email or
// any item's sweet name contains the query, case-insensitively. Dropping
// every order of a customer removes that customer entirely.
func FilterOrdersBySearch(orders []Order, query string) []Order {
	if query == "" {
		return orders
	}

	q := strings.ToLower(query)
	filtered := make([]Order, 0, len(orders))
	for _, order := range orders {
		if orderMatches(order, q) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

func orderMatches(order Order, q string) bool {
	if strings.Contains(strings.ToLower(order.UserName), q) ||
		strings.Contains(strings.ToLower(order.UserEmail), q) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.SweetName), q) {
			return true
		}
	}
	return false
}

// FilterCustomersBySegment keeps customers matching the segment. The
// highValue and frequent thresholds are 1.5x the mean of the set passed
// in, so they shift whenever the upstream filters change the population.
func FilterCustomersBySegment(customers []*CustomerAggregate, segment Segment, now time.Time) []*CustomerAggregate {
	if segment == SegmentAll || len(customers) == 0 {
		return customers
	}

	count := decimal.NewFromInt(int64(len(customers)))
	sumSpent := decimal.Zero
	sumOrders := decimal.Zero
	for _, c := range customers {
		sumSpent = sumSpent.Add(c.TotalSpent)
		sumOrders = sumOrders.Add(decimal.NewFromInt(int64(c.TotalOrders)))
	}
	threshold := decimal.NewFromFloat(1.5)
	spentCutoff := sumSpent.Div(count).Mul(threshold)
	ordersCutoff := sumOrders.Div(count).Mul(threshold)
	recentCutoff := now.Add(-recentWindow)

	filtered := make([]*CustomerAggregate, 0, len(customers))
	for _, c := range customers {
		keep := false
		switch segment {
		case SegmentHighValue:
			keep = c.TotalSpent.GreaterThan(spentCutoff)
		case SegmentFrequent:
			keep = decimal.NewFromInt(int64(c.TotalOrders)).GreaterThan(ordersCutoff)
		case SegmentRecent:
			keep = !c.LastOrderDate.IsZero() && !c.LastOrderDate.Before(recentCutoff)
		}
		if keep {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// SortCustomers orders customers descending by the chosen field. The sort
// is stable so ties keep their ledger-encounter order and repeated runs
// stay identical.
func SortCustomers(customers []*CustomerAggregate, sortBy SortBy) {
	sort.SliceStable(customers, func(i, j int) bool {
		switch sortBy {
		case SortByTotalOrders:
			return customers[i].TotalOrders > customers[j].TotalOrders
		case SortByRecent:
			return customers[i].LastOrderDate.After(customers[j].LastOrderDate)
		default:
			return customers[i].TotalSpent.GreaterThan(customers[j].TotalSpent)
		}
	})
}

// ProcessCustomers runs the full pipeline over a ledger snapshot: period
// filter, search filter, grouping into orders and customers, segment
// filter, sort. The result is what both the customer list and the cohort
// summary are computed from.
func ProcessCustomers(records []models.PurchaseRecord, filters Filters, now time.Time) []*CustomerAggregate {
	filtered := FilterRecordsByPeriod(records, filters.Period, now)
	orders := GroupIntoOrders(filtered)
	orders = FilterOrdersBySearch(orders, filters.SearchQuery)

	byUser := GroupByCustomer(orders)

	// collect in first-encounter order, never map order
	customers := make([]*CustomerAggregate, 0, len(byUser))
	seen := make(map[string]bool, len(byUser))
	for _, order := range orders {
		if !seen[order.UserID] {
			seen[order.UserID] = true
			customers = append(customers, byUser[order.UserID])
		}
	}

	customers = FilterCustomersBySegment(customers, filters.FilterBy, now)
	SortCustomers(customers, filters.SortBy)
	return customers
}
