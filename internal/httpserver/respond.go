package httpserver

import (
	"errors"
	"net/http"

	"marketplace-api/internal/domain"
	ordersvc "marketplace-api/internal/service/order"
	usersvc "marketplace-api/internal/service/user"

	"github.com/gin-gonic/gin"
)

// respondError translates domain errors into HTTP statuses. Anything
// unrecognized is logged and reported as a bare 500.
func (h *handlers) respondError(c *gin.Context, err error) {
	var inv *domain.InsufficientInventoryError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, usersvc.ErrInvalidCredentials), errors.Is(err, usersvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &inv):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "insufficient inventory",
			"productId": inv.ProductID,
			"requested": inv.Requested,
		})
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, ordersvc.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPaymentFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	default:
		h.deps.Logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
