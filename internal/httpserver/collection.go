package httpserver

import (
	"net/http"

	collectionsvc "marketplace-api/internal/service/collection"

	"github.com/gin-gonic/gin"
)

func (h *handlers) createCollection(c *gin.Context) {
	var req collectionsvc.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	col, err := h.deps.Collections.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, col)
}

func (h *handlers) getCollection(c *gin.Context) {
	col, err := h.deps.Collections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}

func (h *handlers) listCollections(c *gin.Context) {
	sellerID := c.Query("sellerId")
	if sellerID == "" {
		sellerID = currentUser(c)
	}

	cols, err := h.deps.Collections.ListBySeller(c.Request.Context(), sellerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": cols})
}

func (h *handlers) addCollectionProduct(c *gin.Context) {
	col, err := h.deps.Collections.AddProduct(c.Request.Context(), currentUser(c), c.Param("id"), c.Param("productID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}

func (h *handlers) removeCollectionProduct(c *gin.Context) {
	col, err := h.deps.Collections.RemoveProduct(c.Request.Context(), currentUser(c), c.Param("id"), c.Param("productID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}

func (h *handlers) deleteCollection(c *gin.Context) {
	if err := h.deps.Collections.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
