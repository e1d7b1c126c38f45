package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetdelights/backend/internal/models"
)

func TestGroupByCustomer_Metrics(t *testing.T) {
	// two orders of 40 and 60 for one user
	records := []models.PurchaseRecord{
		record("p1", "u1", "Ladoo", 4, "10", testNow),
		record("p2", "u1", "Barfi", 3, "20", testNow.Add(-24*time.Hour)),
	}
	customers := GroupByCustomer(GroupIntoOrders(records))

	c, ok := customers["u1"]
	if !ok {
		t.Fatal("expected aggregate for u1")
	}
	if !c.TotalSpent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("total spent: got %s, want 100", c.TotalSpent)
	}
	if c.TotalOrders != 2 {
		t.Errorf("total orders: got %d, want 2", c.TotalOrders)
	}
	if !c.AverageOrderValue.Equal(decimal.NewFromInt(50)) {
		t.Errorf("average order value: got %s, want 50", c.AverageOrderValue)
	}
	if !c.LastOrderDate.Equal(testNow) {
		t.Errorf("last order date: got %v, want %v", c.LastOrderDate, testNow)
	}
}

func TestGroupByCustomer_Empty(t *testing.T) {
	customers := GroupByCustomer(nil)
	if len(customers) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(customers))
	}
}

func TestGroupByCustomer_FavoriteItems(t *testing.T) {
	records := []models.PurchaseRecord{
		record("p1", "u1", "Ladoo", 2, "10", testNow),
		record("p2", "u1", "Barfi", 5, "20", testNow),
		record("p3", "u1", "Ladoo", 1, "10", testNow.Add(-24*time.Hour)),
	}
	c := GroupByCustomer(GroupIntoOrders(records))["u1"]

	if c.FavoriteItems["Ladoo"] != 3 || c.FavoriteItems["Barfi"] != 5 {
		t.Errorf("favorite quantities: got %v", c.FavoriteItems)
	}
	if c.TopFavoriteItem != "Barfi" {
		t.Errorf("top favorite: got %q, want Barfi", c.TopFavoriteItem)
	}
}

func TestGroupByCustomer_TopFavoriteTieBreak(t *testing.T) {
	// equal quantities: first sweet encountered in ledger order wins
	records := []models.PurchaseRecord{
		record("p1", "u1", "Jalebi", 2, "15", testNow),
		record("p2", "u1", "Peda", 2, "15", testNow),
	}

	for i := 0; i < 50; i++ {
		c := GroupByCustomer(GroupIntoOrders(records))["u1"]
		if c.TopFavoriteItem != "Jalebi" {
			t.Fatalf("run %d: top favorite %q, want first-encountered Jalebi", i, c.TopFavoriteItem)
		}
	}
}

func TestGroupByCustomer_MultipleUsers(t *testing.T) {
	records := []models.PurchaseRecord{
		record("p1", "u1", "Ladoo", 1, "10", testNow),
		record("p2", "u2", "Barfi", 1, "20", testNow),
		record("p3", "u1", "Peda", 1, "30", testNow.Add(-24*time.Hour)),
	}
	customers := GroupByCustomer(GroupIntoOrders(records))

	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
	if customers["u1"].TotalOrders != 2 {
		t.Errorf("u1 orders: got %d, want 2", customers["u1"].TotalOrders)
	}
	if customers["u2"].TotalOrders != 1 {
		t.Errorf("u2 orders: got %d, want 1", customers["u2"].TotalOrders)
	}
}
