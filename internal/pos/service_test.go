package pos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/auth"
	"github.com/MikeMC777/restaurant-pos/internal/memstore"
	"github.com/MikeMC777/restaurant-pos/internal/menu"
	"github.com/MikeMC777/restaurant-pos/internal/order"
	"github.com/MikeMC777/restaurant-pos/internal/table"
	"github.com/MikeMC777/restaurant-pos/internal/ticket"
	"github.com/MikeMC777/restaurant-pos/internal/user"
)

var (
	admin = auth.Session{UserID: "admin-1", Email: "admin@example.com", Role: user.RoleAdmin}
	staff = auth.Session{UserID: "staff-1", Email: "staff@example.com", Role: user.RoleStaff}
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store   *memstore.Store
	printer *ticket.Recorder
	svc     *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()

	burger := menu.MenuItem{
		ID: "burger", Name: "Burger", Category: "Mains", Price: d("6.00"),
		Sizes:  []menu.Size{{Name: "Small", Price: d("5.00")}, {Name: "Large", Price: d("8.00")}},
		AddOns: []menu.AddOn{{Name: "Cheese", Price: d("1.00")}},
	}
	if err := st.Menu().Create(ctx, &burger); err != nil {
		t.Fatal(err)
	}
	for _, tb := range []table.Table{
		{ID: "t1", Number: 1, Capacity: 4, Status: table.StatusAvailable},
		{ID: "t2", Number: 2, Capacity: 2, Status: table.StatusOccupied},
	} {
		tb := tb
		if err := st.Tables().Create(ctx, &tb); err != nil {
			t.Fatal(err)
		}
	}

	rec := &ticket.Recorder{}
	svc := NewService(st.Orders(), st.Tables(), st.Menu(), rec, ticket.DefaultHeader(), nil)
	return &fixture{store: st, printer: rec, svc: svc}
}

func items() []order.LineItem {
	return []order.LineItem{
		{MenuItemID: "burger", Name: "Burger", Price: d("8.00"), Quantity: 2, Size: "Large"},
	}
}

func (f *fixture) tableStatus(t *testing.T, id string) table.Status {
	t.Helper()
	tb, err := f.store.Tables().GetByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return tb.Status
}

func TestPlace_DineInOccupiesTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Place(ctx, staff, PlaceInput{Type: order.TypeDineIn, TableID: "t1", Items: items()})
	if err != nil {
		t.Fatal(err)
	}
	if res.Order.Status != order.StatusPending || !res.Order.Total.Equal(d("16.00")) {
		t.Fatalf("order=%+v", res.Order)
	}
	if res.Order.CreatedBy != staff.UserID {
		t.Fatalf("created_by=%q", res.Order.CreatedBy)
	}
	if !res.Effects.OccupyTable || res.Effects.Ticket != "" {
		t.Fatalf("effects=%+v", res.Effects)
	}
	if got := f.tableStatus(t, "t1"); got != table.StatusOccupied {
		t.Fatalf("table status=%s", got)
	}
	if len(f.printer.Tickets()) != 0 {
		t.Fatalf("placing must not print")
	}
}

func TestPlace_RejectsUnavailableTableWithoutWriting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Place(ctx, staff, PlaceInput{Type: order.TypeDineIn, TableID: "t2", Items: items()})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v, want validation", err)
	}
	orders, _ := f.store.Orders().ListCreatedSince(ctx, time.Time{})
	if len(orders) != 0 {
		t.Fatalf("persisted %d orders", len(orders))
	}
	if got := f.tableStatus(t, "t2"); got != table.StatusOccupied {
		t.Fatalf("table mutated: %s", got)
	}
}

func TestPlace_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   PlaceInput
		kind apperr.Kind
	}{
		{"empty cart", PlaceInput{Type: order.TypeTakeaway}, apperr.KindValidation},
		{"dine-in without table", PlaceInput{Type: order.TypeDineIn, Items: items()}, apperr.KindValidation},
		{"unknown type", PlaceInput{Type: "Drive-thru", Items: items()}, apperr.KindValidation},
		{"missing table", PlaceInput{Type: order.TypeDineIn, TableID: "nope", Items: items()}, apperr.KindNotFound},
		{"zero quantity", PlaceInput{Type: order.TypeTakeaway, Items: []order.LineItem{{Name: "X", Price: d("1"), Quantity: 0}}}, apperr.KindValidation},
	}
	for _, tc := range cases {
		if _, err := f.svc.Place(ctx, staff, tc.in); !apperr.Is(err, tc.kind) {
			t.Fatalf("%s: err=%v, want %v", tc.name, err, tc.kind)
		}
	}
}

func TestPlace_TakeawayIgnoresTable(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Place(context.Background(), staff, PlaceInput{Type: order.TypeTakeaway, TableID: "t1", Items: items()})
	if err != nil {
		t.Fatal(err)
	}
	if res.Order.HasTable() {
		t.Fatalf("takeaway order references a table")
	}
	if got := f.tableStatus(t, "t1"); got != table.StatusAvailable {
		t.Fatalf("table status=%s", got)
	}
}

func TestComplete_FreesTableAndPrintsReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	placed, err := f.svc.Place(ctx, staff, PlaceInput{Type: order.TypeDineIn, TableID: "t1", Items: items()})
	if err != nil {
		t.Fatal(err)
	}
	res, err := f.svc.Complete(ctx, staff, placed.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	o := res.Order
	if o.Status != order.StatusCompleted || o.CompletedAt == nil || o.CompletedAt.Before(o.CreatedAt) {
		t.Fatalf("order=%+v", o)
	}
	if got := f.tableStatus(t, "t1"); got != table.StatusAvailable {
		t.Fatalf("table status=%s", got)
	}
	tk := f.printer.Tickets()
	if len(tk) != 1 || tk[0].Kind != ticket.KindReceipt || tk[0].TableNumber != 1 {
		t.Fatalf("tickets=%+v", tk)
	}
	if len(res.Printed) != 1 || !res.Effects.FreeTable {
		t.Fatalf("result=%+v", res)
	}

	if _, err := f.svc.Complete(ctx, staff, placed.Order.ID); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("second complete err=%v", err)
	}
}

func TestComplete_FailedWriteNeitherFreesNorPrints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	placed, err := f.svc.Place(ctx, staff, PlaceInput{Type: order.TypeDineIn, TableID: "t1", Items: items()})
	if err != nil {
		t.Fatal(err)
	}
	f.store.FailOn("orders.Complete", errors.New("permission denied"))

	if _, err := f.svc.Complete(ctx, staff, placed.Order.ID); !apperr.Is(err, apperr.KindPersistence) {
		t.Fatalf("err=%v", err)
	}
	if got := f.tableStatus(t, "t1"); got != table.StatusOccupied {
		t.Fatalf("table freed on failed complete: %s", got)
	}
	if len(f.printer.Tickets()) != 0 {
		t.Fatalf("printed after failed write")
	}
	o, _ := f.svc.Get(ctx, placed.Order.ID)
	if o.Status != order.StatusPending {
		t.Fatalf("status=%s", o.Status)
	}
}

func TestComplete_PrintFailureKeepsWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	placed, _ := f.svc.Place(ctx, staff, PlaceInput{Type: order.TypeTakeaway, Items: items()})

	f.printer.Err = errors.New("printer offline")
	res, err := f.svc.Complete(ctx, staff, placed.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.PrintError == "" || len(res.Printed) != 0 {
		t.Fatalf("result=%+v", res)
	}
	if res.Order.Status != order.StatusCompleted {
		t.Fatalf("status=%s", res.Order.Status)
	}
}

func TestKitchenTickets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dine, _ := f.svc.Place(ctx, staff, PlaceInput{Type: order.TypeDineIn, TableID: "t1", Items: items()})
	if _, err := f.svc.SendToKitchen(ctx, staff, dine.Order.ID); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("dine-in send-to-kitchen err=%v", err)
	}
	if _, err := f.svc.TableKitchenTicket(ctx, staff, "t1"); err != nil {
		t.Fatal(err)
	}

	res, err := f.svc.PlaceForKitchen(ctx, staff, PlaceInput{Type: order.TypeDelivery, Items: items()})
	if err != nil {
		t.Fatal(err)
	}
	if res.Order.Status != order.StatusPending {
		t.Fatalf("kitchen action changed status to %s", res.Order.Status)
	}

	tk := f.printer.Tickets()
	if len(tk) != 2 || tk[0].Kind != ticket.KindKitchen || tk[1].Kind != ticket.KindKitchen {
		t.Fatalf("tickets=%+v", tk)
	}
	if _, err := f.svc.PlaceForKitchen(ctx, staff, PlaceInput{Type: order.TypeDineIn, TableID: "t1", Items: items()}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("dine-in place-for-kitchen err=%v", err)
	}
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Checkout(context.Background(), staff, PlaceInput{Type: order.TypeTakeaway, Items: items()})
	if err != nil {
		t.Fatal(err)
	}
	if res.Order.Status != order.StatusCompleted || len(res.Printed) != 1 || res.Printed[0] != ticket.KindReceipt {
		t.Fatalf("result=%+v", res)
	}
}

func TestCheckout_FailedWriteStoresNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.FailOn("orders.CreateCompleted", errors.New("disk full"))

	if _, err := f.svc.Checkout(ctx, staff, PlaceInput{Type: order.TypeTakeaway, Items: items()}); !apperr.Is(err, apperr.KindPersistence) {
		t.Fatalf("err=%v", err)
	}
	stored, err := f.store.Orders().ListCreatedSince(ctx, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 0 {
		t.Fatalf("failed checkout left %d order(s): %+v", len(stored), stored)
	}
	if len(f.printer.Tickets()) != 0 {
		t.Fatalf("printed after failed write")
	}

	f.store.FailOn("orders.CreateCompleted", nil)
	res, err := f.svc.Checkout(ctx, staff, PlaceInput{Type: order.TypeTakeaway, Items: items()})
	if err != nil {
		t.Fatal(err)
	}
	stored, _ = f.store.Orders().ListCreatedSince(ctx, time.Time{})
	if len(stored) != 1 || stored[0].ID != res.Order.ID || stored[0].Status != order.StatusCompleted {
		t.Fatalf("stored=%+v", stored)
	}
	if stored[0].CompletedAt == nil {
		t.Fatalf("completed_at not set")
	}
}

func TestAppendItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	placed, _ := f.svc.Place(ctx, staff, PlaceInput{Type: order.TypeDineIn, TableID: "t1", Items: items()})
	id := placed.Order.ID

	if _, err := f.svc.AppendItem(ctx, staff, id, order.AddItemRequest{MenuItemID: "burger"}); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("staff append err=%v", err)
	}

	// merges with the existing Large entry
	res, err := f.svc.AppendItem(ctx, admin, id, order.AddItemRequest{MenuItemID: "burger", Size: "Large"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Order.Items) != 1 || res.Order.Items[0].Quantity != 3 || !res.Order.Total.Equal(d("24.00")) {
		t.Fatalf("order=%+v", res.Order)
	}

	res, err = f.svc.AppendCustomItem(ctx, admin, id, order.CustomItemRequest{Name: "Cake", Price: d("3.50"), Quantity: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Order.Items) != 2 || !res.Order.Total.Equal(d("31.00")) {
		t.Fatalf("order=%+v", res.Order)
	}

	stored, _ := f.svc.Get(ctx, id)
	if !stored.Total.Equal(order.SumTotal(stored.Items)) {
		t.Fatalf("stored total %s drifted from items", stored.Total)
	}

	if _, err := f.svc.AppendCustomItem(ctx, admin, id, order.CustomItemRequest{Name: "", Price: d("1"), Quantity: 1}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v", err)
	}

	if _, err := f.svc.Complete(ctx, staff, id); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.AppendItem(ctx, admin, id, order.AddItemRequest{MenuItemID: "burger"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("append to completed order err=%v", err)
	}
}

func TestCancel_DoesNotFreeTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	placed, _ := f.svc.Place(ctx, staff, PlaceInput{Type: order.TypeDineIn, TableID: "t1", Items: items()})

	res, err := f.svc.Cancel(ctx, staff, placed.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Order.Status != order.StatusCancelled {
		t.Fatalf("status=%s", res.Order.Status)
	}
	if got := f.tableStatus(t, "t1"); got != table.StatusOccupied {
		t.Fatalf("table status=%s", got)
	}
	if _, err := f.svc.Cancel(ctx, staff, placed.Order.ID); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("second cancel err=%v", err)
	}
}

func TestDeleteAndReprint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	placed, _ := f.svc.Checkout(ctx, staff, PlaceInput{Type: order.TypeTakeaway, Items: items()})
	id := placed.Order.ID

	res, err := f.svc.Reprint(ctx, staff, id, ticket.KindKitchen)
	if err != nil || len(res.Printed) != 1 {
		t.Fatalf("reprint res=%+v err=%v", res, err)
	}
	if _, err := f.svc.Reprint(ctx, staff, id, "menu"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v", err)
	}

	if err := f.svc.Delete(ctx, staff, id); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("staff delete err=%v", err)
	}
	if err := f.svc.Delete(ctx, admin, id); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Delete(ctx, admin, id); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestEffectsOf(t *testing.T) {
	tid := "t1"
	seated := &order.Order{Type: order.TypeDineIn, TableID: &tid}
	takeaway := &order.Order{Type: order.TypeTakeaway}

	if e := EffectsOf(TransitionPlace, seated); !e.OccupyTable || e.Ticket != "" {
		t.Fatalf("place dine-in: %+v", e)
	}
	if e := EffectsOf(TransitionPlace, takeaway); e.OccupyTable {
		t.Fatalf("place takeaway: %+v", e)
	}
	if e := EffectsOf(TransitionComplete, takeaway); e.FreeTable || e.Ticket != ticket.KindReceipt {
		t.Fatalf("complete takeaway: %+v", e)
	}
	if e := EffectsOf(TransitionCancel, seated); e != (Effects{}) {
		t.Fatalf("cancel: %+v", e)
	}
}
