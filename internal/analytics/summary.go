package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// CohortAnalytics summarizes a filtered customer list. Every field is zero,
// never NaN or an error, when the list is empty.
type CohortAnalytics struct {
	AvgOrderValue           decimal.Decimal `json:"avg_order_value"`
	AvgCustomerValue        decimal.Decimal `json:"avg_customer_value"`
	TopCustomersCount       int             `json:"top_customers_count"`
	RevenueFromTopCustomers float64         `json:"revenue_from_top_customers"`
	RecentActiveCustomers   int             `json:"recent_active_customers"`
	TotalSpent              decimal.Decimal `json:"total_spent"`
	TotalOrders             int             `json:"total_orders"`
}

// Summarize computes cohort statistics over the customer list produced by
// ProcessCustomers. Callers must pass the filtered set, not the global
// ledger, so the numbers always reflect the filters in effect.
//
// RevenueFromTopCustomers slices the first ceil(20%) entries and therefore
// assumes the list is sorted descending by TotalSpent; an unsorted input
// gives a well-defined but meaningless share. The caller owns that
// ordering, Summarize does not re-sort.
func Summarize(customers []*CustomerAggregate, now time.Time) CohortAnalytics {
	summary := CohortAnalytics{
		AvgOrderValue:    decimal.Zero,
		AvgCustomerValue: decimal.Zero,
		TotalSpent:       decimal.Zero,
	}
	if len(customers) == 0 {
		return summary
	}

	for _, c := range customers {
		summary.TotalSpent = summary.TotalSpent.Add(c.TotalSpent)
		summary.TotalOrders += c.TotalOrders
	}

	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalSpent.Div(decimal.NewFromInt(int64(summary.TotalOrders)))
	}
	summary.AvgCustomerValue = summary.TotalSpent.Div(decimal.NewFromInt(int64(len(customers))))

	// top 20%, rounded up
	summary.TopCustomersCount = (len(customers) + 4) / 5
	if summary.TotalSpent.IsPositive() {
		topRevenue := decimal.Zero
		for _, c := range customers[:summary.TopCustomersCount] {
			topRevenue = topRevenue.Add(c.TotalSpent)
		}
		share, _ := topRevenue.Div(summary.TotalSpent).Mul(decimal.NewFromInt(100)).Float64()
		summary.RevenueFromTopCustomers = share
	}

	recentCutoff := now.Add(-recentWindow)
	for _, c := range customers {
		if !c.LastOrderDate.IsZero() && !c.LastOrderDate.Before(recentCutoff) {
			summary.RecentActiveCustomers++
		}
	}

	return summary
}
