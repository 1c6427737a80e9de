package order

import "github.com/shopspring/decimal"

// Place actions.
const (
	ActionPlace    = "place"
	ActionKitchen  = "kitchen"
	ActionCheckout = "checkout"
)

// PlaceOrderRequest turns an open cart into an order.
// swagger:model PlaceOrderRequest
type PlaceOrderRequest struct {
	CartID  string `json:"cart_id"  example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Type    Type   `json:"type"     example:"Dine-in"`
	TableID string `json:"table_id" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	// place (default), kitchen or checkout
	Action string `json:"action" example:"place"`
}

// AddItemRequest selects a configured menu item.
// swagger:model AddItemRequest
type AddItemRequest struct {
	MenuItemID string   `json:"menu_item_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Size       string   `json:"size"         example:"Large"`
	AddOns     []string `json:"add_ons"`
}

// CustomItemRequest adds an item with no menu backing.
// swagger:model CustomItemRequest
type CustomItemRequest struct {
	Name     string          `json:"name"     example:"Birthday cake slice"`
	Price    decimal.Decimal `json:"price"    example:"3.50"`
	Quantity int             `json:"quantity" example:"1"`
}

// SetQuantityRequest sets the quantity of a cart entry; 0 removes it.
// swagger:model SetQuantityRequest
type SetQuantityRequest struct {
	Quantity int `json:"quantity" example:"2"`
}
