package httpserver

import (
	"net/http"

	"marketplace-api/internal/domain"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
}

type payRequest struct {
	MethodToken string `json:"methodToken" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	order, err := h.deps.Orders.Create(ctx, currentUser(c), req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.notifySellers(c, order)
	c.JSON(http.StatusCreated, order)
}

// notifySellers publishes one productBought per distinct seller of the order.
// The order is already committed, so a failed seller lookup only loses a
// notification.
func (h *handlers) notifySellers(c *gin.Context, order *domain.Order) {
	ctx := c.Request.Context()
	seen := make(map[string]bool, len(order.Items))
	for _, item := range order.Items {
		p, err := h.deps.Products.Get(ctx, item.ProductID)
		if err != nil {
			h.deps.Logger.WarnContext(ctx, "seller lookup for purchase notification failed",
				"order_id", order.ID, "product_id", item.ProductID, "error", err)
			continue
		}
		if seen[p.SellerID] {
			continue
		}
		seen[p.SellerID] = true
		h.deps.Bus.Publish(ctx, domain.ProductBought{
			SellerID:        p.SellerID,
			DeliveryAddress: order.DeliveryAddress,
		})
	}
}

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.deps.Orders.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) listOrders(c *gin.Context) {
	orders, err := h.deps.Orders.ListByBuyer(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) payOrder(c *gin.Context) {
	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	conf, err := h.deps.Payments.Process(c.Request.Context(), currentUser(c), c.Param("id"), req.MethodToken)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	order, err := h.deps.Orders.UpdateStatus(c.Request.Context(), currentUser(c), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
