package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/restaurant-pos/internal/httpx"
	"github.com/MikeMC777/restaurant-pos/internal/pos"
	"github.com/MikeMC777/restaurant-pos/internal/table"
)

func listTablesHandler(svc *table.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ts, err := svc.List(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": ts})
	}
}

func getTableHandler(svc *table.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// tableOrderHandler godoc
//
//	@Summary	Pending order seated at a table
//	@Tags		tables
//	@Produce	json
//	@Param		id	path		string	true	"table id"
//	@Success	200	{object}	order.Order
//	@Failure	404	{object}	httpx.HTTPError
//	@Security	BearerAuth
//	@Router		/tables/{id}/order [get]
func tableOrderHandler(svc *pos.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.CurrentOrderForTable(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func tableKitchenHandler(svc *pos.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.TableKitchenTicket(c.Request.Context(), httpx.Session(c), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func createTableHandler(svc *table.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req table.CreateTableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		t, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

func setTableStatusHandler(svc *table.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req table.SetStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		t, err := svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

func deleteTableHandler(svc *table.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
