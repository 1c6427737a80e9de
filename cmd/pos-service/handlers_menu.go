package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/restaurant-pos/internal/httpx"
	"github.com/MikeMC777/restaurant-pos/internal/menu"
)

// listMenuHandler godoc
//
//	@Summary	List menu items
//	@Tags		menu
//	@Produce	json
//	@Param		category	query		string	false	"category; All or empty lists everything"
//	@Success	200			{object}	menu.ListResponse
//	@Security	BearerAuth
//	@Router		/menu-items [get]
func listMenuHandler(svc *menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")
		items, err := svc.List(c.Request.Context(), category)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, menu.ListResponse{Category: category, Items: items})
	}
}

func getMenuItemHandler(svc *menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func categoriesHandler(svc *menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svc.Categories(c.Request.Context())
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

// createMenuItemHandler godoc
//
//	@Summary	Create a menu item
//	@Tags		menu
//	@Accept		json
//	@Produce	json
//	@Param		body	body		menu.CreateMenuItemRequest	true	"item"
//	@Success	201		{object}	menu.MenuItem
//	@Failure	400		{object}	httpx.HTTPError
//	@Security	BearerAuth
//	@Router		/menu-items [post]
func createMenuItemHandler(svc *menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req menu.CreateMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		m, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

func updateMenuItemHandler(svc *menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req menu.CreateMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		m, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func deleteMenuItemHandler(svc *menu.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
