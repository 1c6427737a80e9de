// Package report aggregates orders into sales, order-listing and dashboard views.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/restaurant-pos/internal/order"
	"github.com/MikeMC777/restaurant-pos/internal/table"
)

const (
	// DefaultSize labels line items sold without a size.
	DefaultSize = "Regular"
	unknownName = "Unknown"
	// NoTable is shown for orders without a table.
	NoTable = "-"
	// StatusAll disables the listing status filter.
	StatusAll = "All"
)

// Range is an inclusive time range.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DayRange spans from the start of from's day to the last instant of to's day in loc.
func DayRange(from, to time.Time, loc *time.Location) Range {
	if loc == nil {
		loc = time.Local
	}
	f := from.In(loc)
	t := to.In(loc)
	start := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, loc)
	end := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
	return Range{From: start, To: end}
}

func (r Range) Contains(ts time.Time) bool { return !ts.Before(r.From) && !ts.After(r.To) }

type SizeSales struct {
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

type ItemSales struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Sizes    []SizeSales     `json:"sizes"`
}

// SalesReport groups sold line items by name and size.
// swagger:model SalesReport
type SalesReport struct {
	Range      Range           `json:"range"`
	Search     string          `json:"search,omitempty"`
	Orders     int             `json:"orders"`
	Items      []ItemSales     `json:"items"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Sales aggregates the line items of Completed orders created within rng.
// Amounts use the price captured on each line item. search narrows the
// listed items by name; the grand total always covers every included order.
func Sales(orders []order.Order, rng Range, search string) SalesReport {
	rep := SalesReport{Range: rng, Search: strings.TrimSpace(search), Items: []ItemSales{}, GrandTotal: decimal.Zero}

	type acc struct {
		item  ItemSales
		sizes map[string]*SizeSales
	}
	groups := map[string]*acc{}

	for _, o := range orders {
		if o.Status != order.StatusCompleted || !rng.Contains(o.CreatedAt) {
			continue
		}
		rep.Orders++
		for _, it := range o.Items {
			name := it.Name
			if name == "" {
				name = unknownName
			}
			size := it.Size
			if size == "" {
				size = DefaultSize
			}
			amt := it.Amount()
			rep.GrandTotal = rep.GrandTotal.Add(amt)

			g, ok := groups[name]
			if !ok {
				g = &acc{item: ItemSales{Name: name, Amount: decimal.Zero}, sizes: map[string]*SizeSales{}}
				groups[name] = g
			}
			g.item.Quantity += it.Quantity
			g.item.Amount = g.item.Amount.Add(amt)
			s, ok := g.sizes[size]
			if !ok {
				s = &SizeSales{Size: size, Amount: decimal.Zero}
				g.sizes[size] = s
			}
			s.Quantity += it.Quantity
			s.Amount = s.Amount.Add(amt)
		}
	}

	term := strings.ToLower(rep.Search)
	for _, g := range groups {
		if term != "" && !strings.Contains(strings.ToLower(g.item.Name), term) {
			continue
		}
		for _, s := range g.sizes {
			g.item.Sizes = append(g.item.Sizes, *s)
		}
		sort.Slice(g.item.Sizes, func(i, j int) bool {
			a, b := g.item.Sizes[i], g.item.Sizes[j]
			if a.Quantity != b.Quantity {
				return a.Quantity > b.Quantity
			}
			return a.Size < b.Size
		})
		rep.Items = append(rep.Items, g.item)
	}
	sort.Slice(rep.Items, func(i, j int) bool {
		a, b := rep.Items[i], rep.Items[j]
		if c := a.Amount.Cmp(b.Amount); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})
	return rep
}

type OrderRow struct {
	Seq         int             `json:"seq"`
	OrderID     string          `json:"order_id"`
	Date        time.Time       `json:"date"`
	Type        order.Type      `json:"type"`
	TableNumber string          `json:"table_number"`
	ItemCount   int             `json:"item_count"`
	Total       decimal.Decimal `json:"total"`
	Status      order.Status    `json:"status"`
}

// OrderListing is one row per matching order, newest first.
// swagger:model OrderListing
type OrderListing struct {
	Range      Range           `json:"range"`
	Status     string          `json:"status"`
	Search     string          `json:"search,omitempty"`
	Rows       []OrderRow      `json:"rows"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ListingFilter narrows the order listing. An empty Status means Completed;
// StatusAll disables status filtering. Search matches the table number or
// its "Table N" label, case-insensitively.
type ListingFilter struct {
	Status string
	Search string
}

func Listing(orders []order.Order, tableNumbers map[string]int, rng Range, f ListingFilter) OrderListing {
	status := f.Status
	if status == "" {
		status = string(order.StatusCompleted)
	}
	rep := OrderListing{Range: rng, Status: status, Search: strings.TrimSpace(f.Search), Rows: []OrderRow{}}
	term := strings.ToLower(rep.Search)

	for _, o := range orders {
		if !rng.Contains(o.CreatedAt) {
			continue
		}
		if status != StatusAll && string(o.Status) != status {
			continue
		}
		num, label := NoTable, ""
		if o.HasTable() {
			if n, ok := tableNumbers[*o.TableID]; ok {
				num, label = strconv.Itoa(n), table.Label(n)
			}
		}
		if term != "" && (label == "" || !(strings.Contains(strings.ToLower(label), term) || strings.Contains(num, term))) {
			continue
		}
		rep.Rows = append(rep.Rows, OrderRow{
			OrderID:     o.ID,
			Date:        o.DisplayDate(),
			Type:        o.Type,
			TableNumber: num,
			ItemCount:   o.ItemCount(),
			Total:       o.Total,
			Status:      o.Status,
		})
	}
	sort.SliceStable(rep.Rows, func(i, j int) bool {
		a, b := rep.Rows[i], rep.Rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.OrderID < b.OrderID
	})
	rep.renumber()
	return rep
}

// Remove drops the row of orderID and recomputes the grand total from the
// remaining rows. It reports whether a row was removed.
func (l *OrderListing) Remove(orderID string) bool {
	for i, r := range l.Rows {
		if r.OrderID == orderID {
			l.Rows = append(l.Rows[:i], l.Rows[i+1:]...)
			l.renumber()
			return true
		}
	}
	return false
}

func (l *OrderListing) renumber() {
	l.GrandTotal = decimal.Zero
	for i := range l.Rows {
		l.Rows[i].Seq = i + 1
		l.GrandTotal = l.GrandTotal.Add(l.Rows[i].Total)
	}
}

// DashboardStats are the KPIs shown on the home screen.
// swagger:model DashboardStats
type DashboardStats struct {
	Day          Range           `json:"day"`
	OrdersToday  int             `json:"orders_today"`
	RevenueToday decimal.Decimal `json:"revenue_today"`
	// nil when no tables exist
	OccupancyPercent *int `json:"occupancy_percent"`
}

// Dashboard counts every order created during day and the revenue of the
// Completed ones, plus the share of occupied tables.
func Dashboard(orders []order.Order, tables []table.Table, day Range) DashboardStats {
	st := DashboardStats{Day: day, RevenueToday: decimal.Zero}
	for _, o := range orders {
		if !day.Contains(o.CreatedAt) {
			continue
		}
		st.OrdersToday++
		if o.Status == order.StatusCompleted {
			st.RevenueToday = st.RevenueToday.Add(o.Total)
		}
	}
	if len(tables) > 0 {
		occupied := 0
		for _, t := range tables {
			if t.Status == table.StatusOccupied {
				occupied++
			}
		}
		pct := int(decimal.NewFromInt(int64(occupied * 100)).
			Div(decimal.NewFromInt(int64(len(tables)))).Round(0).IntPart())
		st.OccupancyPercent = &pct
	}
	return st
}
