package menu

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
)

// Size is a priced variant of a menu item. Its price replaces the base price.
type Size struct {
	Name  string          `json:"name"  example:"Large"`
	Price decimal.Decimal `json:"price" example:"8.00"`
}

// AddOn is an optional extra whose price is added to the unit price.
type AddOn struct {
	Name  string          `json:"name"  example:"Cheese"`
	Price decimal.Decimal `json:"price" example:"1.50"`
}

// MenuItem is a catalog entry. Price is NUMERIC in Postgres.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	ImageHint   string          `json:"image_hint,omitempty"`
	Sizes       []Size          `json:"sizes,omitempty"`
	AddOns      []AddOn         `json:"add_ons,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Validate enforces the catalog rules applied on create and edit.
func (m *MenuItem) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Category = strings.TrimSpace(m.Category)
	if m.Name == "" {
		return apperr.Validation("name is required")
	}
	if m.Category == "" {
		return apperr.Validation("category is required")
	}
	if m.Price.IsNegative() {
		return apperr.Validation("price must be >= 0")
	}
	hasPricedSize := false
	for i, s := range m.Sizes {
		if strings.TrimSpace(s.Name) == "" {
			return apperr.Validation("size %d: name is required", i+1)
		}
		if !s.Price.IsPositive() {
			return apperr.Validation("size %q: price must be > 0", s.Name)
		}
		hasPricedSize = true
	}
	for i, a := range m.AddOns {
		if strings.TrimSpace(a.Name) == "" {
			return apperr.Validation("add-on %d: name is required", i+1)
		}
		if !a.Price.IsPositive() {
			return apperr.Validation("add-on %q: price must be > 0", a.Name)
		}
	}
	if !m.Price.IsPositive() && !hasPricedSize {
		return apperr.Validation("either a base price or at least one size price is required")
	}
	return nil
}

// CreateMenuItemRequest payload of creation and full update.
// swagger:model CreateMenuItemRequest
type CreateMenuItemRequest struct {
	Name        string          `json:"name"        example:"Burger"`
	Category    string          `json:"category"    example:"Mains"`
	Price       decimal.Decimal `json:"price"       example:"6.00"`
	Description string          `json:"description" example:"Beef patty, brioche bun"`
	ImageURL    string          `json:"image_url"`
	ImageHint   string          `json:"image_hint"`
	Sizes       []Size          `json:"sizes"`
	AddOns      []AddOn         `json:"add_ons"`
}

func (r CreateMenuItemRequest) ToItem() MenuItem {
	return MenuItem{
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		ImageHint:   r.ImageHint,
		Sizes:       r.Sizes,
		AddOns:      r.AddOns,
	}
}

// ListResponse represents the menu listing.
// swagger:model
type ListResponse struct {
	// category filter applied
	Category string     `json:"category,omitempty"`
	Items    []MenuItem `json:"items"`
}
