package order

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool { return s == StatusCompleted || s == StatusCancelled }

type Type string

const (
	TypeDineIn   Type = "Dine-in"
	TypeTakeaway Type = "Takeaway"
	TypeDelivery Type = "Delivery"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDineIn, TypeTakeaway, TypeDelivery:
		return true
	}
	return false
}

// LineItem is one cart or order entry. Price is the unit price captured when
// the item was added and is never re-read from the menu.
type LineItem struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Size       string          `json:"size,omitempty"`
	AddOns     []string        `json:"add_ons,omitempty"`
}

// Amount is Price × Quantity.
func (li LineItem) Amount() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// MergeKey identifies entries that accumulate quantity instead of duplicating.
// Add-on order does not matter.
func (li LineItem) MergeKey() string {
	addOns := append([]string(nil), li.AddOns...)
	sort.Strings(addOns)
	return li.MenuItemID + "\x00" + li.Size + "\x00" + strings.Join(addOns, "\x1f")
}

// Order is a persisted order. TableID is set iff Type is Dine-in.
type Order struct {
	ID          string          `json:"id"`
	Items       []LineItem      `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Status      Status          `json:"status"`
	Type        Type            `json:"type"`
	TableID     *string         `json:"table_id,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DisplayDate is the completion time when known, else the creation time.
func (o *Order) DisplayDate() time.Time {
	if o.CompletedAt != nil {
		return *o.CompletedAt
	}
	return o.CreatedAt
}

func (o *Order) HasTable() bool { return o.TableID != nil && *o.TableID != "" }

// ItemCount is the sum of quantities.
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// SumTotal is the only way an order or cart total is derived.
func SumTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount())
	}
	return total
}
