package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type markReadRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *handlers) listNotifications(c *gin.Context) {
	notes, err := h.deps.Notifications.List(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notes})
}

func (h *handlers) markNotificationsRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	updated, err := h.deps.Notifications.MarkRead(c.Request.Context(), currentUser(c), req.IDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
