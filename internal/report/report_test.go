package report

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/auth"
	"github.com/MikeMC777/restaurant-pos/internal/order"
	"github.com/MikeMC777/restaurant-pos/internal/table"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var day = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func at(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

func line(name, size, price string, qty int) order.LineItem {
	return order.LineItem{Name: name, Size: size, Price: d(price), Quantity: qty}
}

func mk(id string, st order.Status, created time.Time, tableID string, items ...order.LineItem) order.Order {
	o := order.Order{ID: id, Status: st, Type: order.TypeTakeaway, CreatedAt: created, Items: items, Total: order.SumTotal(items)}
	if tableID != "" {
		tid := tableID
		o.TableID, o.Type = &tid, order.TypeDineIn
	}
	if st == order.StatusCompleted {
		done := created.Add(30 * time.Minute)
		o.CompletedAt = &done
	}
	return o
}

func TestDayRange(t *testing.T) {
	loc := time.FixedZone("X", -3*3600)
	r := DayRange(time.Date(2024, 5, 10, 15, 0, 0, 0, loc), time.Date(2024, 5, 11, 1, 0, 0, 0, loc), loc)

	if !r.From.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, loc)) {
		t.Fatalf("from=%v", r.From)
	}
	if !r.Contains(time.Date(2024, 5, 11, 23, 59, 59, 999999999, loc)) || r.Contains(time.Date(2024, 5, 12, 0, 0, 0, 0, loc)) {
		t.Fatalf("to=%v", r.To)
	}
}

func TestSales_BurgerExample(t *testing.T) {
	orders := []order.Order{
		mk("a", order.StatusCompleted, at(10), "", line("Burger", "Large", "8.00", 2)),
		mk("b", order.StatusCompleted, at(11), "", line("Burger", "Small", "5.00", 1)),
	}
	rep := Sales(orders, DayRange(day, day, time.UTC), "")

	if len(rep.Items) != 1 {
		t.Fatalf("items=%+v", rep.Items)
	}
	b := rep.Items[0]
	if b.Name != "Burger" || b.Quantity != 3 || !b.Amount.Equal(d("21.00")) {
		t.Fatalf("burger=%+v", b)
	}
	want := []SizeSales{{Size: "Large", Quantity: 2, Amount: d("16.00")}, {Size: "Small", Quantity: 1, Amount: d("5.00")}}
	if len(b.Sizes) != 2 {
		t.Fatalf("sizes=%+v", b.Sizes)
	}
	for i := range want {
		if b.Sizes[i].Size != want[i].Size || b.Sizes[i].Quantity != want[i].Quantity || !b.Sizes[i].Amount.Equal(want[i].Amount) {
			t.Fatalf("size %d = %+v, want %+v", i, b.Sizes[i], want[i])
		}
	}
	if !rep.GrandTotal.Equal(d("21.00")) {
		t.Fatalf("grand=%s", rep.GrandTotal)
	}
}

func TestSales_FiltersAndTotals(t *testing.T) {
	orders := []order.Order{
		mk("a", order.StatusCompleted, at(9), "", line("Soda", "", "1.50", 4), line("Pizza", "M", "9.00", 1)),
		mk("b", order.StatusCompleted, at(12), "", line("", "", "2.00", 1)),
		mk("c", order.StatusPending, at(12), "", line("Pizza", "M", "9.00", 5)),
		mk("d", order.StatusCancelled, at(13), "", line("Pizza", "M", "9.00", 5)),
		mk("e", order.StatusCompleted, day.AddDate(0, 0, 1), "", line("Pizza", "M", "9.00", 5)),
	}
	rep := Sales(orders, DayRange(day, day, time.UTC), "")

	if rep.Orders != 2 || !rep.GrandTotal.Equal(d("17.00")) {
		t.Fatalf("orders=%d grand=%s", rep.Orders, rep.GrandTotal)
	}
	sum := decimal.Zero
	for _, it := range rep.Items {
		sum = sum.Add(it.Amount)
	}
	if !sum.Equal(rep.GrandTotal) {
		t.Fatalf("items sum %s != grand %s", sum, rep.GrandTotal)
	}
	if rep.Items[0].Name != "Pizza" || rep.Items[1].Name != "Soda" || rep.Items[2].Name != "Unknown" {
		t.Fatalf("order=%+v", rep.Items)
	}
	if rep.Items[1].Sizes[0].Size != DefaultSize {
		t.Fatalf("size label=%q", rep.Items[1].Sizes[0].Size)
	}

	searched := Sales(orders, DayRange(day, day, time.UTC), "  sOd ")
	if len(searched.Items) != 1 || searched.Items[0].Name != "Soda" || !searched.GrandTotal.Equal(d("17.00")) {
		t.Fatalf("searched=%+v", searched)
	}
}

func TestListing(t *testing.T) {
	numbers := map[string]int{"t1": 1, "t12": 12}
	orders := []order.Order{
		mk("a", order.StatusCompleted, at(9), "t1", line("X", "", "10.00", 2)),
		mk("b", order.StatusPending, at(10), "t12", line("X", "", "10.00", 1)),
		mk("c", order.StatusCompleted, at(11), "", line("X", "", "5.00", 3)),
		mk("d", order.StatusCompleted, at(12), "t12", line("X", "", "1.00", 1)),
	}
	rng := DayRange(day, day, time.UTC)

	l := Listing(orders, numbers, rng, ListingFilter{})
	if l.Status != "Completed" || len(l.Rows) != 3 {
		t.Fatalf("listing=%+v", l)
	}
	if l.Rows[0].OrderID != "d" || l.Rows[2].OrderID != "a" || l.Rows[0].Seq != 1 {
		t.Fatalf("rows not newest first: %+v", l.Rows)
	}
	if l.Rows[1].TableNumber != NoTable || l.Rows[1].ItemCount != 3 {
		t.Fatalf("row=%+v", l.Rows[1])
	}
	if !l.GrandTotal.Equal(d("36.00")) {
		t.Fatalf("grand=%s", l.GrandTotal)
	}

	all := Listing(orders, numbers, rng, ListingFilter{Status: StatusAll})
	if len(all.Rows) != 4 {
		t.Fatalf("all rows=%d", len(all.Rows))
	}

	pending := Listing(orders, numbers, rng, ListingFilter{Status: "Pending"})
	if len(pending.Rows) != 1 || pending.Rows[0].OrderID != "b" {
		t.Fatalf("pending=%+v", pending.Rows)
	}

	byTable := Listing(orders, numbers, rng, ListingFilter{Status: StatusAll, Search: "table 1"})
	if len(byTable.Rows) != 3 {
		t.Fatalf("search 'table 1' rows=%d", len(byTable.Rows))
	}
	byNum := Listing(orders, numbers, rng, ListingFilter{Status: StatusAll, Search: "12"})
	if len(byNum.Rows) != 2 {
		t.Fatalf("search '12' rows=%d", len(byNum.Rows))
	}
}

func TestListing_DisplayDateFallback(t *testing.T) {
	o := mk("p", order.StatusPending, at(8), "")
	l := Listing([]order.Order{o}, nil, DayRange(day, day, time.UTC), ListingFilter{Status: StatusAll})
	if !l.Rows[0].Date.Equal(at(8)) {
		t.Fatalf("date=%v", l.Rows[0].Date)
	}
}

func TestListing_Remove(t *testing.T) {
	orders := []order.Order{
		mk("a", order.StatusCompleted, at(9), "", line("X", "", "10.00", 1)),
		mk("b", order.StatusCompleted, at(10), "", line("X", "", "4.00", 1)),
	}
	l := Listing(orders, nil, DayRange(day, day, time.UTC), ListingFilter{})
	if !l.Remove("b") || l.Remove("zzz") {
		t.Fatalf("remove result wrong")
	}
	if len(l.Rows) != 1 || l.Rows[0].Seq != 1 || !l.GrandTotal.Equal(d("10.00")) {
		t.Fatalf("after remove: %+v", l)
	}
}

func TestReports_Idempotent(t *testing.T) {
	orders := []order.Order{
		mk("a", order.StatusCompleted, at(9), "t1", line("A", "S", "1.00", 1), line("B", "", "2.00", 2)),
		mk("b", order.StatusCompleted, at(9), "", line("B", "", "2.00", 1), line("A", "L", "3.00", 1)),
	}
	rng := DayRange(day, day, time.UTC)
	if !reflect.DeepEqual(Sales(orders, rng, ""), Sales(orders, rng, "")) {
		t.Fatalf("sales not idempotent")
	}
	nums := map[string]int{"t1": 1}
	if !reflect.DeepEqual(Listing(orders, nums, rng, ListingFilter{}), Listing(orders, nums, rng, ListingFilter{})) {
		t.Fatalf("listing not idempotent")
	}
}

func TestDashboard(t *testing.T) {
	orders := []order.Order{
		mk("a", order.StatusCompleted, at(9), "", line("X", "", "10.00", 1)),
		mk("b", order.StatusPending, at(10), "", line("X", "", "4.00", 1)),
	}
	tables := []table.Table{{Status: table.StatusOccupied}, {Status: table.StatusAvailable}, {Status: table.StatusReserved}}
	st := Dashboard(orders, tables, DayRange(day, day, time.UTC))

	if st.OrdersToday != 2 || !st.RevenueToday.Equal(d("10.00")) {
		t.Fatalf("stats=%+v", st)
	}
	if st.OccupancyPercent == nil || *st.OccupancyPercent != 33 {
		t.Fatalf("occupancy=%v", st.OccupancyPercent)
	}
	if Dashboard(nil, nil, DayRange(day, day, time.UTC)).OccupancyPercent != nil {
		t.Fatalf("occupancy without tables should be nil")
	}
}

type ordersStub []order.Order

func (o ordersStub) ListCreatedSince(_ context.Context, since time.Time) ([]order.Order, error) {
	var out []order.Order
	for _, x := range o {
		if !x.CreatedAt.Before(since) {
			out = append(out, x)
		}
	}
	return out, nil
}

type tablesStub []table.Table

func (t tablesStub) List(context.Context) ([]table.Table, error) { return t, nil }

type deleterStub struct{ deleted []string }

func (d *deleterStub) Delete(_ context.Context, _ auth.Session, id string) error {
	d.deleted = append(d.deleted, id)
	return nil
}

func TestService(t *testing.T) {
	orders := ordersStub{
		mk("old", order.StatusCompleted, day.AddDate(0, 0, -1), "", line("X", "", "99.00", 1)),
		mk("a", order.StatusCompleted, at(9), "t1", line("X", "", "10.00", 1)),
		mk("b", order.StatusCompleted, at(10), "", line("X", "", "4.00", 1)),
	}
	del := &deleterStub{}
	svc := NewService(orders, tablesStub{{ID: "t1", Number: 7}}, del, time.UTC, nil)
	ctx := context.Background()

	sales, err := svc.Sales(ctx, day, day, "")
	if err != nil || !sales.GrandTotal.Equal(d("14.00")) {
		t.Fatalf("sales=%+v err=%v", sales, err)
	}

	l, err := svc.Orders(ctx, day, day, ListingFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if l.Rows[1].TableNumber != "7" {
		t.Fatalf("rows=%+v", l.Rows)
	}
	if err := svc.DeleteRow(ctx, auth.Session{}, &l, "a"); err != nil {
		t.Fatal(err)
	}
	if len(del.deleted) != 1 || len(l.Rows) != 1 || !l.GrandTotal.Equal(d("4.00")) {
		t.Fatalf("after delete: %+v", l)
	}

	if _, err := svc.Orders(ctx, day, day, ListingFilter{Status: "Lost"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v", err)
	}
	if _, err := svc.Sales(ctx, day, day.AddDate(0, 0, -2), ""); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v", err)
	}
}
