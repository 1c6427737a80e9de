// Package ticket renders customer receipts and kitchen tickets and hands them
// to a printer queue.
package ticket

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MikeMC777/restaurant-pos/internal/order"
)

type Kind string

const (
	KindReceipt Kind = "receipt"
	KindKitchen Kind = "kitchen"
)

func (k Kind) Valid() bool { return k == KindReceipt || k == KindKitchen }

// width of an 80mm thermal roll in monospace characters
const width = 40

// Header identifies the restaurant on printed tickets.
type Header struct {
	Name     string
	Address1 string
	Address2 string
	Phone    string
	Location *time.Location
}

func DefaultHeader() Header {
	return Header{
		Name:     "My Restaurant",
		Address1: "123 Main St",
		Address2: "City, Country",
		Phone:    "(000) 000-0000",
		Location: time.Local,
	}
}

// Ticket is a rendered document ready for a printer.
type Ticket struct {
	Kind        Kind         `json:"kind"`
	OrderID     string       `json:"order_id"`
	TableNumber int          `json:"table_number,omitempty"`
	Text        string       `json:"text"`
	Order       *order.Order `json:"order"`
	RenderedAt  time.Time    `json:"rendered_at"`
}

// Render builds a ticket of kind k for o. tableNumber is 0 when the order has
// no table.
func Render(k Kind, o *order.Order, tableNumber int, h Header) Ticket {
	var text string
	if k == KindKitchen {
		text = RenderKitchen(o, tableNumber, h)
	} else {
		text = RenderReceipt(o, tableNumber, h)
	}
	return Ticket{Kind: k, OrderID: o.ID, TableNumber: tableNumber, Text: text, Order: o, RenderedAt: time.Now()}
}

// RenderReceipt is the customer copy: items with line amounts and the total.
func RenderReceipt(o *order.Order, tableNumber int, h Header) string {
	lines := heading(h, "")
	lines = append(lines, orderInfo(o, tableNumber, h)...)
	lines = append(lines, strings.Repeat("-", width))
	for _, it := range o.Items {
		lines = append(lines, row(fmt.Sprintf("%s x%d", it.Name, it.Quantity), money(it.Amount().StringFixed(2))))
		if d := detail(it); d != "" {
			lines = append(lines, "  "+d)
		}
	}
	lines = append(lines, strings.Repeat("-", width))
	lines = append(lines, row("TOTAL", money(o.Total.StringFixed(2))))
	lines = append(lines, strings.Repeat("=", width))
	lines = append(lines, center("Thank you for dining with us!"))
	return strings.Join(lines, "\n")
}

// RenderKitchen is the kitchen copy: quantities, sizes and add-ons, no prices.
func RenderKitchen(o *order.Order, tableNumber int, h Header) string {
	lines := heading(h, "KITCHEN COPY")
	lines = append(lines, orderInfo(o, tableNumber, h)...)
	lines = append(lines, strings.Repeat("-", width))
	for _, it := range o.Items {
		lines = append(lines, row(it.Name, "x"+strconv.Itoa(it.Quantity)))
		if it.Size != "" {
			lines = append(lines, "  Size: "+it.Size)
		}
		if len(it.AddOns) > 0 {
			lines = append(lines, "  Add-ons: "+strings.Join(it.AddOns, ", "))
		}
	}
	lines = append(lines, strings.Repeat("=", width))
	lines = append(lines, center("No prices on kitchen copy."))
	return strings.Join(lines, "\n")
}

func heading(h Header, banner string) []string {
	lines := []string{strings.Repeat("=", width), center(h.Name)}
	if banner != "" {
		lines = append(lines, center(banner))
	} else {
		for _, s := range []string{h.Address1, h.Address2} {
			if s != "" {
				lines = append(lines, center(s))
			}
		}
		if h.Phone != "" {
			lines = append(lines, center("Phone: "+h.Phone))
		}
	}
	return append(lines, strings.Repeat("=", width))
}

func orderInfo(o *order.Order, tableNumber int, h Header) []string {
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}
	typ := string(o.Type)
	if typ == "" {
		typ = "-"
	}
	lines := []string{
		"Order: " + shortID(o.ID),
		"Date: " + o.CreatedAt.In(loc).Format("2006-01-02 15:04"),
	}
	if tableNumber > 0 {
		lines = append(lines, row("Type: "+typ, "Table: "+strconv.Itoa(tableNumber)))
	} else {
		lines = append(lines, "Type: "+typ)
	}
	return lines
}

func detail(it order.LineItem) string {
	var parts []string
	if it.Size != "" {
		parts = append(parts, "Size: "+it.Size)
	}
	if len(it.AddOns) > 0 {
		parts = append(parts, "Add-ons: "+strings.Join(it.AddOns, ", "))
	}
	return strings.Join(parts, " / ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func money(s string) string { return "$" + s }

func row(left, right string) string {
	pad := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}
