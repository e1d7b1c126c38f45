package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func aggregate(id string, spent int64, orders int, last time.Time) *CustomerAggregate {
	return &CustomerAggregate{
		UserID:        id,
		TotalSpent:    decimal.NewFromInt(spent),
		TotalOrders:   orders,
		LastOrderDate: last,
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, testNow)

	if !s.AvgOrderValue.IsZero() || !s.AvgCustomerValue.IsZero() || !s.TotalSpent.IsZero() {
		t.Errorf("empty cohort must have zero money fields: %+v", s)
	}
	if s.RevenueFromTopCustomers != 0 || s.RecentActiveCustomers != 0 || s.TopCustomersCount != 0 {
		t.Errorf("empty cohort must have zero counts: %+v", s)
	}
}

func TestSummarize_TopCustomerShare(t *testing.T) {
	// five customers sorted descending: top 20% is one customer holding
	// 100 of 300 total
	customers := []*CustomerAggregate{
		aggregate("a", 100, 1, testNow),
		aggregate("b", 80, 1, testNow),
		aggregate("c", 60, 1, testNow),
		aggregate("d", 40, 1, testNow),
		aggregate("e", 20, 1, testNow),
	}

	s := Summarize(customers, testNow)
	if s.TopCustomersCount != 1 {
		t.Errorf("top customers count: got %d, want 1", s.TopCustomersCount)
	}
	want := 100.0 / 300.0 * 100
	if math.Abs(s.RevenueFromTopCustomers-want) > 1e-9 {
		t.Errorf("top customer revenue share: got %f, want %f", s.RevenueFromTopCustomers, want)
	}
}

func TestSummarize_Averages(t *testing.T) {
	customers := []*CustomerAggregate{
		aggregate("a", 100, 4, testNow),
		aggregate("b", 50, 1, testNow),
	}

	s := Summarize(customers, testNow)
	if !s.AvgOrderValue.Equal(decimal.NewFromInt(30)) {
		t.Errorf("avg order value: got %s, want 30", s.AvgOrderValue)
	}
	if !s.AvgCustomerValue.Equal(decimal.NewFromInt(75)) {
		t.Errorf("avg customer value: got %s, want 75", s.AvgCustomerValue)
	}
	if !s.TotalSpent.Equal(decimal.NewFromInt(150)) {
		t.Errorf("total spent: got %s, want 150", s.TotalSpent)
	}
	if s.TotalOrders != 5 {
		t.Errorf("total orders: got %d, want 5", s.TotalOrders)
	}
}

func TestSummarize_RecentActive(t *testing.T) {
	customers := []*CustomerAggregate{
		aggregate("a", 10, 1, testNow.Add(-10*24*time.Hour)),
		aggregate("b", 10, 1, testNow.Add(-40*24*time.Hour)),
		aggregate("c", 10, 1, testNow.Add(-29*24*time.Hour)),
	}

	s := Summarize(customers, testNow)
	if s.RecentActiveCustomers != 2 {
		t.Errorf("recent active: got %d, want 2", s.RecentActiveCustomers)
	}
}

func TestSummarize_TopCountRoundsUp(t *testing.T) {
	cases := []struct{ n, want int }{
		{1, 1}, {4, 1}, {5, 1}, {6, 2}, {10, 2}, {11, 3},
	}
	for _, tc := range cases {
		customers := make([]*CustomerAggregate, tc.n)
		for i := range customers {
			customers[i] = aggregate("x", 10, 1, testNow)
		}
		if s := Summarize(customers, testNow); s.TopCustomersCount != tc.want {
			t.Errorf("n=%d: top count got %d, want %d", tc.n, s.TopCustomersCount, tc.want)
		}
	}
}
