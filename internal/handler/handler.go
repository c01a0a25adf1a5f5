package handler

import (
	"errors"
	"net/http"

	"clothing-mall/internal/middleware"
	"clothing-mall/internal/service"
	"clothing-mall/pkg/response"

	"github.com/gin-gonic/gin"
)

// renderError maps domain failures onto HTTP statuses. Anything not in
// the domain set is an infrastructure failure and surfaces as a generic
// 500 without leaking details.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidLine):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAccountSuspended),
		errors.Is(err, service.ErrPendingApproval),
		errors.Is(err, service.ErrUnauthorized):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrInsufficientInventory):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnavailable),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRating):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "internal error")
	}
}

func principalID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func principalRole(c *gin.Context) string {
	return c.GetString(middleware.ContextRole)
}
