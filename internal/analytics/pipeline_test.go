package analytics

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetdelights/backend/internal/models"
)

func TestFilterRecordsByPeriod_WeekExcludesOldPurchase(t *testing.T) {
	records := []models.PurchaseRecord{
		record("p1", "u1", "Ladoo", 1, "10", testNow.Add(-2*24*time.Hour)),
		record("p2", "u2", "Barfi", 1, "20", testNow.Add(-8*24*time.Hour)),
	}

	filtered := FilterRecordsByPeriod(records, PeriodWeek, testNow)
	if len(filtered) != 1 {
		t.Fatalf("expected 1 record inside the week window, got %d", len(filtered))
	}
	if filtered[0].ID != "p1" {
		t.Errorf("kept record: got %s, want p1", filtered[0].ID)
	}

	// the 8-day-old purchase takes its customer out of all downstream
	// aggregates, not just one order
	customers := ProcessCustomers(records, Filters{Period: PeriodWeek}, testNow)
	if len(customers) != 1 || customers[0].UserID != "u1" {
		t.Fatalf("expected only u1 to survive the week filter, got %d customers", len(customers))
	}
}

func TestFilterRecordsByPeriod_AllIsPassThrough(t *testing.T) {
	records := []models.PurchaseRecord{
		record("p1", "u1", "Ladoo", 1, "10", testNow.Add(-400*24*time.Hour)),
	}
	if got := FilterRecordsByPeriod(records, PeriodAll, testNow); len(got) != 1 {
		t.Fatalf("period all must keep everything, got %d records", len(got))
	}
}

func TestFilterOrdersBySearch(t *testing.T) {
	orders := GroupIntoOrders([]models.PurchaseRecord{
		record("p1", "u1", "Kaju Katli", 1, "50", testNow),
		record("p2", "u2", "Rasgulla", 1, "25", testNow),
	})

	cases := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"kaju", 1},        // sweet name, case-insensitive
		{"User u2", 1},     // customer name
		{"u1@example", 1},  // email
		{"chocolate", 0},
	}
	for _, tc := range cases {
		if got := FilterOrdersBySearch(orders, tc.query); len(got) != tc.want {
			t.Errorf("search %q: got %d orders, want %d", tc.query, len(got), tc.want)
		}
	}
}

func TestFilterCustomersBySegment_HighValue(t *testing.T) {
	// totalSpent [100,10,10,10]: mean 32.5, cutoff 48.75, only the
	// 100-spender qualifies
	records := []models.PurchaseRecord{
		record("p1", "u1", "Ladoo", 10, "10", testNow),
		record("p2", "u2", "Barfi", 1, "10", testNow),
		record("p3", "u3", "Peda", 1, "10", testNow),
		record("p4", "u4", "Jalebi", 1, "10", testNow),
	}

	customers := ProcessCustomers(records, Filters{FilterBy: SegmentHighValue}, testNow)
	if len(customers) != 1 {
		t.Fatalf("expected 1 high-value customer, got %d", len(customers))
	}
	if customers[0].UserID != "u1" {
		t.Errorf("high-value customer: got %s, want u1", customers[0].UserID)
	}
}

func TestFilterCustomersBySegment_Frequent(t *testing.T) {
	// u1 has 3 orders, u2 and u3 have 1: mean 5/3, cutoff 2.5
	records := []models.PurchaseRecord{
		record("p1", "u1", "Ladoo", 1, "10", testNow),
		record("p2", "u1", "Ladoo", 1, "10", testNow.Add(-24*time.Hour)),
		record("p3", "u1", "Ladoo", 1, "10", testNow.Add(-48*time.Hour)),
		record("p4", "u2", "Barfi", 1, "10", testNow),
		record("p5", "u3", "Peda", 1, "10", testNow),
	}

	customers := ProcessCustomers(records, Filters{FilterBy: SegmentFrequent}, testNow)
	if len(customers) != 1 || customers[0].UserID != "u1" {
		t.Fatalf("expected only u1 as frequent, got %d customers", len(customers))
	}
}

func TestFilterCustomersBySegment_Recent(t *testing.T) {
	records := []models.PurchaseRecord{
		record("p1", "u1", "Ladoo", 1, "10", testNow.Add(-5*24*time.Hour)),
		record("p2", "u2", "Barfi", 1, "10", testNow.Add(-45*24*time.Hour)),
	}

	customers := ProcessCustomers(records, Filters{FilterBy: SegmentRecent}, testNow)
	if len(customers) != 1 || customers[0].UserID != "u1" {
		t.Fatalf("expected only u1 within 30 days, got %d customers", len(customers))
	}
}

func TestFilterCustomersBySegment_Empty(t *testing.T) {
	if got := FilterCustomersBySegment(nil, SegmentHighValue, testNow); len(got) != 0 {
		t.Fatalf("empty input must yield empty output, got %d", len(got))
	}
}

func TestSortCustomers(t *testing.T) {
	mk := func(id string, spent int64, orders int, last time.Time) *CustomerAggregate {
		return &CustomerAggregate{
			UserID:        id,
			TotalSpent:    decimal.NewFromInt(spent),
			TotalOrders:   orders,
			LastOrderDate: last,
		}
	}
	customers := []*CustomerAggregate{
		mk("a", 50, 5, testNow.Add(-72*time.Hour)),
		mk("b", 200, 1, testNow.Add(-24*time.Hour)),
		mk("c", 120, 9, testNow.Add(-48*time.Hour)),
	}

	SortCustomers(customers, SortByTotalSpent)
	if customers[0].UserID != "b" || customers[2].UserID != "a" {
		t.Errorf("sort by total spent: got order %s,%s,%s", customers[0].UserID, customers[1].UserID, customers[2].UserID)
	}

	SortCustomers(customers, SortByTotalOrders)
	if customers[0].UserID != "c" || customers[2].UserID != "b" {
		t.Errorf("sort by total orders: got order %s,%s,%s", customers[0].UserID, customers[1].UserID, customers[2].UserID)
	}

	SortCustomers(customers, SortByRecent)
	if customers[0].UserID != "b" || customers[2].UserID != "a" {
		t.Errorf("sort by recency: got order %s,%s,%s", customers[0].UserID, customers[1].UserID, customers[2].UserID)
	}
}

func TestProcessCustomers_Idempotent(t *testing.T) {
	records := []models.PurchaseRecord{
		record("p1", "u1", "Ladoo", 2, "10", testNow),
		record("p2", "u2", "Barfi", 2, "10", testNow.Add(-3*time.Hour)),
		record("p3", "u1", "Peda", 1, "35", testNow.Add(-30*time.Hour)),
		record("p4", "u3", "Jalebi", 4, "5", testNow.Add(-50*time.Hour)),
	}
	filters := Filters{SortBy: SortByTotalSpent, FilterBy: SegmentAll, Period: PeriodMonth}

	first, err := json.Marshal(ProcessCustomers(records, filters, testNow))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := json.Marshal(ProcessCustomers(records, filters, testNow))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d produced different output for identical input", i)
		}
	}
}

func TestProcessCustomers_Empty(t *testing.T) {
	customers := ProcessCustomers(nil, Filters{}, testNow)
	if len(customers) != 0 {
		t.Fatalf("expected no customers from an empty ledger, got %d", len(customers))
	}
}
