// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/pos-service/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create a staff account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/user.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/user.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/user.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/menu-items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["menu"],
                "summary": "List menu items",
                "parameters": [{"type": "string", "description": "category; All or empty lists everything", "name": "category", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/menu.ListResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["menu"],
                "summary": "Create a menu item",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/menu.CreateMenuItemRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/menu.MenuItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/carts/{id}/items": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["carts"],
                "summary": "Add one unit of a menu item to a cart",
                "parameters": [
                    {"type": "string", "description": "cart id", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/order.AddItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.View"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Place an order from a cart",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/order.PlaceOrderRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pos.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders/{id}/complete": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Bill a pending order",
                "parameters": [{"type": "string", "description": "order id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pos.Result"}},
                    "400": {"description": "order is not Pending", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/tables/{id}/order": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tables"],
                "summary": "Pending order seated at a table",
                "parameters": [{"type": "string", "description": "table id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/reports/sales": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Sales by item and size",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD, defaults to today", "name": "from", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD, defaults to from", "name": "to", "in": "query"},
                    {"type": "string", "description": "item name filter", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/report.SalesReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/reports/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Order listing",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD, defaults to today", "name": "from", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD, defaults to from", "name": "to", "in": "query"},
                    {"type": "string", "description": "Completed (default), Pending, Cancelled or All", "name": "status", "in": "query"},
                    {"type": "string", "description": "table number filter", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/report.OrderListing"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "httpx.HTTPError": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "order 42 not found"}, "kind": {"type": "string", "example": "not_found"}}
        },
        "user.RegisterRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "display_name": {"type": "string"}}
        },
        "user.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "user.User": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "display_name": {"type": "string"}, "photo_url": {"type": "string"}, "role": {"type": "string", "enum": ["Admin", "Staff"]}}
        },
        "main.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "expires_at": {"type": "string"}, "user": {"$ref": "#/definitions/user.User"}}
        },
        "menu.Size": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "price": {"type": "string", "example": "8.00"}}
        },
        "menu.AddOn": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "price": {"type": "string", "example": "1.50"}}
        },
        "menu.CreateMenuItemRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Burger"},
                "category": {"type": "string", "example": "Mains"},
                "price": {"type": "string", "example": "6.00"},
                "description": {"type": "string"},
                "image_url": {"type": "string"},
                "image_hint": {"type": "string"},
                "sizes": {"type": "array", "items": {"$ref": "#/definitions/menu.Size"}},
                "add_ons": {"type": "array", "items": {"$ref": "#/definitions/menu.AddOn"}}
            }
        },
        "menu.MenuItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "category": {"type": "string"},
                "price": {"type": "string"},
                "sizes": {"type": "array", "items": {"$ref": "#/definitions/menu.Size"}},
                "add_ons": {"type": "array", "items": {"$ref": "#/definitions/menu.AddOn"}}
            }
        },
        "menu.ListResponse": {
            "type": "object",
            "properties": {"category": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/menu.MenuItem"}}}
        },
        "order.LineItem": {
            "type": "object",
            "properties": {
                "menu_item_id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "quantity": {"type": "integer"},
                "size": {"type": "string"},
                "add_ons": {"type": "array", "items": {"type": "string"}}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.LineItem"}},
                "total": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "Completed", "Cancelled"]},
                "type": {"type": "string", "enum": ["Dine-in", "Takeaway", "Delivery"]},
                "table_id": {"type": "string"},
                "created_at": {"type": "string"},
                "completed_at": {"type": "string"}
            }
        },
        "order.AddItemRequest": {
            "type": "object",
            "properties": {"menu_item_id": {"type": "string"}, "size": {"type": "string"}, "add_ons": {"type": "array", "items": {"type": "string"}}}
        },
        "order.PlaceOrderRequest": {
            "type": "object",
            "properties": {"cart_id": {"type": "string"}, "type": {"type": "string"}, "table_id": {"type": "string"}, "action": {"type": "string", "enum": ["place", "kitchen", "checkout"]}}
        },
        "cart.View": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/order.LineItem"}}, "total": {"type": "string"}}
        },
        "pos.Result": {
            "type": "object",
            "properties": {
                "order": {"$ref": "#/definitions/order.Order"},
                "effects": {"type": "object"},
                "printed": {"type": "array", "items": {"type": "string"}},
                "print_error": {"type": "string"}
            }
        },
        "report.SalesReport": {"type": "object"},
        "report.OrderListing": {"type": "object"}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Restaurant POS API",
	Description:      "Menu, tables, carts, orders, tickets and reports of a restaurant POS.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
