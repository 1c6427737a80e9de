package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/restaurant-pos/internal/order"
)

func sample() *order.Order {
	tid := "t1"
	return &order.Order{
		ID:   "0f8c2a4e-1111-2222-3333-444455556666",
		Type: order.TypeDineIn,
		Items: []order.LineItem{
			{Name: "Burger", Price: decimal.RequireFromString("8.00"), Quantity: 2, Size: "Large", AddOns: []string{"Cheese"}},
			{Name: "Soda", Price: decimal.RequireFromString("1.50"), Quantity: 1},
		},
		Total:     decimal.RequireFromString("17.50"),
		Status:    order.StatusPending,
		TableID:   &tid,
		CreatedAt: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestRenderReceipt(t *testing.T) {
	h := DefaultHeader()
	h.Location = time.UTC
	out := RenderReceipt(sample(), 4, h)

	for _, want := range []string{
		"My Restaurant", "123 Main St", "Phone: (000) 000-0000",
		"Order: 0f8c2a4e", "Date: 2024-03-01 12:30", "Table: 4",
		"Burger x2", "$16.00", "Size: Large / Add-ons: Cheese", "Soda x1", "$1.50", "$17.50",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("receipt missing %q:\n%s", want, out)
		}
	}
}

func TestRenderKitchen_NoPrices(t *testing.T) {
	out := RenderKitchen(sample(), 4, DefaultHeader())

	if strings.Contains(out, "$") {
		t.Fatalf("kitchen ticket shows prices:\n%s", out)
	}
	for _, want := range []string{"KITCHEN COPY", "Burger", "x2", "Size: Large", "Add-ons: Cheese", "Soda"} {
		if !strings.Contains(out, want) {
			t.Fatalf("kitchen ticket missing %q:\n%s", want, out)
		}
	}
}

func TestRender_NoTable(t *testing.T) {
	o := sample()
	o.Type, o.TableID = order.TypeTakeaway, nil
	tk := Render(KindReceipt, o, 0, DefaultHeader())

	if strings.Contains(tk.Text, "Table:") {
		t.Fatalf("takeaway receipt shows a table:\n%s", tk.Text)
	}
	if tk.Kind != KindReceipt || tk.OrderID != o.ID {
		t.Fatalf("ticket=%+v", tk)
	}
}
