package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/restaurant-pos/internal/auth"
	"github.com/MikeMC777/restaurant-pos/internal/httpx"
	"github.com/MikeMC777/restaurant-pos/internal/user"
)

// LoginResponse carries the bearer token for later calls.
// swagger:model LoginResponse
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

// registerHandler godoc
//
//	@Summary	Create a staff account
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		user.RegisterRequest	true	"account"
//	@Success	201		{object}	user.User
//	@Failure	400		{object}	httpx.HTTPError
//	@Router		/auth/register [post]
func registerHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		u, err := users.Register(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// loginHandler godoc
//
//	@Summary	Sign in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		user.LoginRequest	true	"credentials"
//	@Success	200		{object}	LoginResponse
//	@Failure	401		{object}	httpx.HTTPError
//	@Router		/auth/login [post]
func loginHandler(users *user.Service, tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		u, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		tok, exp, err := tokens.Issue(auth.SessionOf(u))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, LoginResponse{Token: tok, ExpiresAt: exp, User: u})
	}
}

func meHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.Get(c.Request.Context(), httpx.Session(c).UserID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func updateMeHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		u, err := users.UpdateProfile(c.Request.Context(), httpx.Session(c).UserID, req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func deleteUserHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := users.Delete(c.Request.Context(), c.Param("id")); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
