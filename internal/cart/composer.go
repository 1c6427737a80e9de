// Package cart composes line items before they become an order.
package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/menu"
	"github.com/MikeMC777/restaurant-pos/internal/order"
)

// Composer is an ordered list of line items. Its total is always derived
// from the items.
type Composer struct {
	items []order.LineItem
}

func New() *Composer { return &Composer{} }

// FromItems builds a composer over a copy of items.
func FromItems(items []order.LineItem) *Composer {
	c := &Composer{}
	for _, it := range items {
		c.items = append(c.items, cloneItem(it))
	}
	return c
}

// AddConfigured prices item with the given size and add-ons and adds one unit.
// An entry with the same merge key has its quantity incremented in place.
func (c *Composer) AddConfigured(item menu.MenuItem, size string, addOns []string) order.LineItem {
	li := order.LineItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      menu.Price(item, size, addOns),
		Quantity:   1,
		Size:       size,
	}
	if len(addOns) > 0 {
		li.AddOns = append([]string(nil), addOns...)
	}
	return c.merge(li)
}

// AddCustomItem adds an entry with no menu backing. Entries with the same
// name and price accumulate quantity.
func (c *Composer) AddCustomItem(name string, price decimal.Decimal, quantity int) (order.LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return order.LineItem{}, apperr.Validation("custom item name is required")
	}
	if price.IsNegative() {
		return order.LineItem{}, apperr.Validation("custom item price must be >= 0")
	}
	if quantity < 1 {
		return order.LineItem{}, apperr.Validation("quantity must be >= 1")
	}
	li := order.LineItem{
		MenuItemID: CustomID(name, price),
		Name:       name,
		Price:      price,
		Quantity:   quantity,
	}
	return c.merge(li), nil
}

// CustomID is the synthetic menu item id of a custom entry.
func CustomID(name string, price decimal.Decimal) string {
	return fmt.Sprintf("custom:%s:%s", name, price.StringFixed(2))
}

func (c *Composer) merge(li order.LineItem) order.LineItem {
	key := li.MergeKey()
	for i := range c.items {
		if c.items[i].MergeKey() == key {
			c.items[i].Quantity += li.Quantity
			return cloneItem(c.items[i])
		}
	}
	c.items = append(c.items, li)
	return cloneItem(li)
}

// SetQuantity sets the quantity of entry i; q <= 0 removes it.
func (c *Composer) SetQuantity(i, q int) error {
	if i < 0 || i >= len(c.items) {
		return apperr.Validation("no cart entry at index %d", i)
	}
	if q <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return nil
	}
	c.items[i].Quantity = q
	return nil
}

func (c *Composer) Clear() { c.items = nil }

func (c *Composer) Total() decimal.Decimal { return order.SumTotal(c.items) }

func (c *Composer) Len() int { return len(c.items) }

func (c *Composer) Empty() bool { return len(c.items) == 0 }

// Items returns a copy of the entries in order.
func (c *Composer) Items() []order.LineItem {
	out := make([]order.LineItem, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, cloneItem(it))
	}
	return out
}

func (c *Composer) Clone() *Composer { return FromItems(c.items) }

func cloneItem(li order.LineItem) order.LineItem {
	if li.AddOns != nil {
		li.AddOns = append([]string(nil), li.AddOns...)
	}
	return li
}
