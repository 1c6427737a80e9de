package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/cart"
	"github.com/MikeMC777/restaurant-pos/internal/httpx"
	"github.com/MikeMC777/restaurant-pos/internal/order"
)

func openCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusCreated, svc.Open())
	}
}

func getCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := svc.Get(c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// addCartItemHandler godoc
//
//	@Summary	Add one unit of a menu item to a cart
//	@Tags		carts
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"cart id"
//	@Param		body	body		order.AddItemRequest	true	"selection; empty size picks the default"
//	@Success	200		{object}	cart.View
//	@Failure	404		{object}	httpx.HTTPError
//	@Security	BearerAuth
//	@Router		/carts/{id}/items [post]
func addCartItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		v, err := svc.AddItem(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func addCartCustomItemHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CustomItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		v, err := svc.AddCustomItem(c.Param("id"), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func setCartQuantityHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			httpx.Fail(c, apperr.Validation("index must be an integer"))
			return
		}
		var req order.SetQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		v, err := svc.SetQuantity(c.Param("id"), idx, req.Quantity)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func clearCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := svc.Clear(c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func discardCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Discard(c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
