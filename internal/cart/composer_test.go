package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/menu"
	"github.com/MikeMC777/restaurant-pos/internal/order"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func burger() menu.MenuItem {
	return menu.MenuItem{
		ID:     "burger",
		Name:   "Burger",
		Price:  d("6.00"),
		Sizes:  []menu.Size{{Name: "Small", Price: d("5.00")}, {Name: "Large", Price: d("8.00")}},
		AddOns: []menu.AddOn{{Name: "Cheese", Price: d("1.00")}, {Name: "Bacon", Price: d("2.00")}},
	}
}

func TestAddConfigured_MergesIdenticalSelections(t *testing.T) {
	c := New()
	for i := 0; i < 4; i++ {
		c.AddConfigured(burger(), "Large", []string{"Cheese", "Bacon"})
	}
	// add-on order is irrelevant for merging
	c.AddConfigured(burger(), "Large", []string{"Bacon", "Cheese"})

	if c.Len() != 1 {
		t.Fatalf("len=%d, want 1", c.Len())
	}
	if got := c.Items()[0].Quantity; got != 5 {
		t.Fatalf("qty=%d, want 5", got)
	}
	if !c.Total().Equal(d("55.00")) {
		t.Fatalf("total=%s, want 55.00", c.Total())
	}
}

func TestAddConfigured_KeepsPositionOnMerge(t *testing.T) {
	c := New()
	c.AddConfigured(burger(), "Small", nil)
	c.AddConfigured(burger(), "Large", nil)
	c.AddConfigured(burger(), "Small", nil)

	items := c.Items()
	if len(items) != 2 || items[0].Size != "Small" || items[0].Quantity != 2 || items[1].Size != "Large" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.AddConfigured(burger(), "Small", nil)
	c.AddConfigured(burger(), "Large", nil)

	if err := c.SetQuantity(1, 3); err != nil {
		t.Fatal(err)
	}
	if !c.Total().Equal(d("29.00")) {
		t.Fatalf("total=%s", c.Total())
	}
	if err := c.SetQuantity(0, 0); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 || !c.Total().Equal(d("24.00")) {
		t.Fatalf("len=%d total=%s", c.Len(), c.Total())
	}
	if err := c.SetQuantity(5, 1); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v", err)
	}
}

func TestAddCustomItem(t *testing.T) {
	c := New()
	if _, err := c.AddCustomItem("  Cake ", d("3.5"), 1); err != nil {
		t.Fatal(err)
	}
	li, err := c.AddCustomItem("Cake", d("3.50"), 2)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 || li.Quantity != 3 {
		t.Fatalf("len=%d qty=%d", c.Len(), li.Quantity)
	}
	if li.MenuItemID != "custom:Cake:3.50" {
		t.Fatalf("id=%q", li.MenuItemID)
	}

	bad := []struct {
		name  string
		price string
		qty   int
	}{{"", "1", 1}, {"X", "-1", 1}, {"X", "1", 0}}
	for _, b := range bad {
		if _, err := c.AddCustomItem(b.name, d(b.price), b.qty); !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("%+v: err=%v", b, err)
		}
	}
	if c.Len() != 1 {
		t.Fatalf("rejected items must not change the cart")
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.AddConfigured(burger(), "Small", nil)
	c.Clear()
	if !c.Empty() || !c.Total().IsZero() {
		t.Fatalf("cart not cleared")
	}
}

type menuStub map[string]menu.MenuItem

func (m menuStub) GetByID(_ context.Context, id string) (*menu.MenuItem, error) {
	it, ok := m[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	return &it, nil
}

func TestService_FailedUpdateLeavesCartUnchanged(t *testing.T) {
	svc := NewService(NewStore(), menuStub{"burger": burger()}, nil)
	v := svc.Open()

	v, err := svc.AddItem(context.Background(), v.ID, order.AddItemRequest{MenuItemID: "burger"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Items[0].Size != "Small" {
		t.Fatalf("default size=%q, want Small", v.Items[0].Size)
	}

	if _, err := svc.SetQuantity(v.ID, 0, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddCustomItem(v.ID, order.CustomItemRequest{Name: "", Price: d("1"), Quantity: 1}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := svc.AddItem(context.Background(), v.ID, order.AddItemRequest{MenuItemID: "nope"}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err=%v", err)
	}

	got, _ := svc.Get(v.ID)
	if len(got.Items) != 1 || !got.Total.Equal(d("20.00")) {
		t.Fatalf("cart changed by failed ops: %+v", got)
	}
}
