package menu

import "github.com/shopspring/decimal"

// Price returns the unit price of item for the given size and add-on selection.
//
// A sized item uses the price of the matching size; an unknown size falls back
// to the base price. Selected add-on names that the item does not offer count
// as zero.
func Price(item MenuItem, size string, addOns []string) decimal.Decimal {
	base := item.Price
	if len(item.Sizes) > 0 {
		for _, s := range item.Sizes {
			if s.Name == size {
				base = s.Price
				break
			}
		}
	}

	extra := decimal.Zero
	for _, a := range item.AddOns {
		if selected(addOns, a.Name) {
			extra = extra.Add(a.Price)
		}
	}
	return base.Add(extra)
}

func selected(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// DefaultSize is the size preselected when the item is added at the POS.
func DefaultSize(item MenuItem) string {
	if len(item.Sizes) == 0 {
		return ""
	}
	return item.Sizes[0].Name
}

// FromPrice is the lowest price a customer can pay for item, ignoring add-ons.
func FromPrice(item MenuItem) decimal.Decimal {
	if len(item.Sizes) == 0 {
		return item.Price
	}
	low := item.Sizes[0].Price
	for _, s := range item.Sizes[1:] {
		if s.Price.LessThan(low) {
			low = s.Price
		}
	}
	return low
}
