package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/cart"
	"github.com/MikeMC777/restaurant-pos/internal/httpx"
	"github.com/MikeMC777/restaurant-pos/internal/order"
	"github.com/MikeMC777/restaurant-pos/internal/pos"
	"github.com/MikeMC777/restaurant-pos/internal/ticket"
)

// placeOrderHandler godoc
//
//	@Summary		Place an order from a cart
//	@Description	action=place leaves the order Pending, kitchen also prints the kitchen ticket,
//	@Description	checkout completes it and prints the receipt. The cart is discarded on success.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			body	body		order.PlaceOrderRequest	true	"order"
//	@Success		201		{object}	pos.Result
//	@Failure		400		{object}	httpx.HTTPError
//	@Failure		404		{object}	httpx.HTTPError
//	@Security		BearerAuth
//	@Router			/orders [post]
func placeOrderHandler(carts *cart.Service, svc *pos.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		v, err := carts.Get(req.CartID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		in := pos.PlaceInput{Type: req.Type, TableID: req.TableID, Items: v.Items}
		sess := httpx.Session(c)
		ctx := c.Request.Context()

		var res *pos.Result
		switch req.Action {
		case "", order.ActionPlace:
			res, err = svc.Place(ctx, sess, in)
		case order.ActionKitchen:
			res, err = svc.PlaceForKitchen(ctx, sess, in)
		case order.ActionCheckout:
			res, err = svc.Checkout(ctx, sess, in)
		default:
			err = apperr.Validation("unknown action %q", req.Action)
		}
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		// the order is stored; a cart closed concurrently is not an error here
		_ = carts.Discard(req.CartID)
		c.JSON(http.StatusCreated, res)
	}
}

func getOrderHandler(svc *pos.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func appendOrderItemHandler(svc *pos.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		res, err := svc.AppendItem(c.Request.Context(), httpx.Session(c), c.Param("id"), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func appendOrderCustomItemHandler(svc *pos.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CustomItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		res, err := svc.AppendCustomItem(c.Request.Context(), httpx.Session(c), c.Param("id"), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// transitionHandler runs a lifecycle transition addressed by order id.
func transitionHandler(fn func(c *gin.Context, id string) (*pos.Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := fn(c, c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func sendToKitchenHandler(svc *pos.Service) gin.HandlerFunc {
	return transitionHandler(func(c *gin.Context, id string) (*pos.Result, error) {
		return svc.SendToKitchen(c.Request.Context(), httpx.Session(c), id)
	})
}

// completeOrderHandler godoc
//
//	@Summary	Bill a pending order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"order id"
//	@Success	200	{object}	pos.Result
//	@Failure	400	{object}	httpx.HTTPError	"order is not Pending"
//	@Failure	404	{object}	httpx.HTTPError
//	@Security	BearerAuth
//	@Router		/orders/{id}/complete [post]
func completeOrderHandler(svc *pos.Service) gin.HandlerFunc {
	return transitionHandler(func(c *gin.Context, id string) (*pos.Result, error) {
		return svc.Complete(c.Request.Context(), httpx.Session(c), id)
	})
}

func cancelOrderHandler(svc *pos.Service) gin.HandlerFunc {
	return transitionHandler(func(c *gin.Context, id string) (*pos.Result, error) {
		return svc.Cancel(c.Request.Context(), httpx.Session(c), id)
	})
}

func reprintHandler(svc *pos.Service) gin.HandlerFunc {
	return transitionHandler(func(c *gin.Context, id string) (*pos.Result, error) {
		k := ticket.Kind(c.DefaultQuery("kind", string(ticket.KindReceipt)))
		return svc.Reprint(c.Request.Context(), httpx.Session(c), id, k)
	})
}

func deleteOrderHandler(svc *pos.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), httpx.Session(c), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// renderTicketHandler returns the plain-text ticket for re-printing in the browser.
func renderTicketHandler(svc *pos.Service, k ticket.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := svc.Render(c.Request.Context(), c.Param("id"), k)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.String(http.StatusOK, t.Text)
	}
}
