package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
)

type HTTPError struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Fail aborts the request with err mapped to a status code. Persistence and
// internal errors are not echoed to the client.
func Fail(c *gin.Context, err error) {
	code := StatusOf(err)
	kind := apperr.KindOf(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(code, HTTPError{Error: msg, Kind: kind.String()})
}

// BadRequest aborts with 400 for bind failures.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, HTTPError{Error: err.Error(), Kind: apperr.KindValidation.String()})
}
