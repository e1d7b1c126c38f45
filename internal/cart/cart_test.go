package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sweetdelights/backend/internal/models"
)

func sweet(id string, price string, stock int) models.Sweet {
	p, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return models.Sweet{ID: id, Name: "Sweet " + id, Price: p, Quantity: stock}
}

func TestAdd_NewAndExistingLines(t *testing.T) {
	c := Add(Cart{}, sweet("s1", "10", 100), 2)
	c = Add(c, sweet("s2", "20", 100), 1)
	c = Add(c, sweet("s1", "10", 100), 3)

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Errorf("s1 quantity: got %d, want 5", c.Items[0].Quantity)
	}
	if c.TotalItems() != 6 {
		t.Errorf("total items: got %d, want 6", c.TotalItems())
	}
	if !c.Total().Equal(decimal.NewFromInt(70)) {
		t.Errorf("total: got %s, want 70", c.Total())
	}
}

func TestAdd_ClampsToStock(t *testing.T) {
	c := Add(Cart{}, sweet("s1", "10", 3), 5)
	if c.Items[0].Quantity != 3 {
		t.Errorf("quantity: got %d, want stock-clamped 3", c.Items[0].Quantity)
	}
}

func TestAdd_OutOfStockIgnored(t *testing.T) {
	c := Add(Cart{}, sweet("s1", "10", 0), 2)
	if len(c.Items) != 0 {
		t.Fatalf("expected no line for an out-of-stock sweet, got %+v", c.Items)
	}

	// an existing line is left alone as well
	c = Add(Cart{}, sweet("s1", "10", 5), 2)
	c = Add(c, sweet("s1", "10", 0), 3)
	if c.Items[0].Quantity != 2 {
		t.Errorf("quantity: got %d, want unchanged 2", c.Items[0].Quantity)
	}
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	base := Add(Cart{}, sweet("s1", "10", 100), 1)
	_ = Add(base, sweet("s1", "10", 100), 9)
	if base.Items[0].Quantity != 1 {
		t.Errorf("input cart mutated: quantity %d", base.Items[0].Quantity)
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := Add(Cart{}, sweet("s1", "10", 10), 2)

	c = UpdateQuantity(c, "s1", 7)
	if c.Items[0].Quantity != 7 {
		t.Errorf("quantity: got %d, want 7", c.Items[0].Quantity)
	}

	c = UpdateQuantity(c, "s1", 99)
	if c.Items[0].Quantity != 10 {
		t.Errorf("quantity: got %d, want stock-clamped 10", c.Items[0].Quantity)
	}

	// zero removes the line
	c = UpdateQuantity(c, "s1", 0)
	if len(c.Items) != 0 {
		t.Errorf("expected empty cart after zero-quantity update, got %d lines", len(c.Items))
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := Add(Cart{}, sweet("s1", "10", 10), 1)
	c = Add(c, sweet("s2", "20", 10), 1)

	c = Remove(c, "s1")
	if len(c.Items) != 1 || c.Items[0].SweetID != "s2" {
		t.Fatalf("remove left wrong lines: %+v", c.Items)
	}

	c = Clear(c)
	if len(c.Items) != 0 || !c.Total().IsZero() || c.TotalItems() != 0 {
		t.Errorf("clear left state behind: %+v", c)
	}
}
