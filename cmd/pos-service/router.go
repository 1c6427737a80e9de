package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/restaurant-pos/docs"
	"github.com/MikeMC777/restaurant-pos/internal/httpx"
	"github.com/MikeMC777/restaurant-pos/internal/ticket"
	"github.com/MikeMC777/restaurant-pos/internal/user"
)

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(a.log), httpx.CORS(a.origins))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/readyz", readyHandler(a.printer))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/auth/register", registerHandler(a.users))
	r.POST("/auth/login", loginHandler(a.users, a.tokens))

	api := r.Group("/", httpx.Authenticate(a.tokens))
	admin := api.Group("/", httpx.RequireRole(user.RoleAdmin))

	api.GET("/me", meHandler(a.users))
	api.PUT("/me", updateMeHandler(a.users))
	admin.DELETE("/users/:id", deleteUserHandler(a.users))

	api.GET("/menu-items", listMenuHandler(a.menu))
	api.GET("/menu-items/:id", getMenuItemHandler(a.menu))
	api.GET("/menu-categories", categoriesHandler(a.menu))
	admin.POST("/menu-items", createMenuItemHandler(a.menu))
	admin.PUT("/menu-items/:id", updateMenuItemHandler(a.menu))
	admin.DELETE("/menu-items/:id", deleteMenuItemHandler(a.menu))

	api.GET("/tables", listTablesHandler(a.tables))
	api.GET("/tables/:id", getTableHandler(a.tables))
	api.GET("/tables/:id/order", tableOrderHandler(a.pos))
	api.POST("/tables/:id/kitchen-ticket", tableKitchenHandler(a.pos))
	admin.POST("/tables", createTableHandler(a.tables))
	admin.PUT("/tables/:id/status", setTableStatusHandler(a.tables))
	admin.DELETE("/tables/:id", deleteTableHandler(a.tables))

	api.POST("/carts", openCartHandler(a.carts))
	api.GET("/carts/:id", getCartHandler(a.carts))
	api.POST("/carts/:id/items", addCartItemHandler(a.carts))
	api.POST("/carts/:id/custom-items", addCartCustomItemHandler(a.carts))
	api.PUT("/carts/:id/items/:index", setCartQuantityHandler(a.carts))
	api.DELETE("/carts/:id/items", clearCartHandler(a.carts))
	api.DELETE("/carts/:id", discardCartHandler(a.carts))

	api.POST("/orders", placeOrderHandler(a.carts, a.pos))
	api.GET("/orders/:id", getOrderHandler(a.pos))
	admin.POST("/orders/:id/items", appendOrderItemHandler(a.pos))
	admin.POST("/orders/:id/custom-items", appendOrderCustomItemHandler(a.pos))
	api.POST("/orders/:id/kitchen", sendToKitchenHandler(a.pos))
	api.POST("/orders/:id/complete", completeOrderHandler(a.pos))
	api.POST("/orders/:id/cancel", cancelOrderHandler(a.pos))
	api.POST("/orders/:id/print", reprintHandler(a.pos))
	admin.DELETE("/orders/:id", deleteOrderHandler(a.pos))

	api.GET("/receipts/:id/print", renderTicketHandler(a.pos, ticket.KindReceipt))
	api.GET("/receipts/:id/kitchen", renderTicketHandler(a.pos, ticket.KindKitchen))

	admin.GET("/reports/sales", salesReportHandler(a.reports))
	admin.GET("/reports/orders", ordersReportHandler(a.reports))
	admin.DELETE("/reports/orders/:id", deleteReportRowHandler(a.reports))
	admin.GET("/reports/dashboard", dashboardHandler(a.reports))
	return r
}

type pinger interface{ Ping() error }

// readyHandler reports 503 while the ticket broker connection is down.
func readyHandler(printer ticket.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := printer.(pinger); ok {
			if err := p.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpx.HTTPError{Error: err.Error()})
				return
			}
		}
		c.String(http.StatusOK, "ok")
	}
}
