package handler

import (
	"net/http"

	"clothing-mall/internal/middleware"
	"clothing-mall/internal/model"
	"clothing-mall/internal/service"
	"clothing-mall/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders *service.OrderService
	carts  *service.CartService
}

func NewOrderHandler(orders *service.OrderService, carts *service.CartService) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts}
}

// Checkout converts the customer's active cart into an order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	ok := false
	defer func() {
		middleware.RecordCheckoutOperation("create", ok)
	}()

	cart, err := h.carts.GetOrCreateActiveCart(principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}

	order, err := h.orders.CreateFromCart(c.Request.Context(), principalID(c), cart.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	ok = true
	response.Success(c, order)
}

// ListMine returns the authenticated customer's orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.orders.ListForCustomer(c.Request.Context(), principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, orders)
}

// Get returns one order, visible to its owner or an admin.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	if principalRole(c) != model.RoleAdmin && order.CustomerID != principalID(c) {
		response.Error(c, http.StatusForbidden, "order belongs to another customer")
		return
	}
	response.Success(c, order)
}

type attachPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Method        string  `json:"method" binding:"required"`
	TransactionID string  `json:"transaction_id"`
}

// AttachPayment records the payment stub against the customer's own order.
func (h *OrderHandler) AttachPayment(c *gin.Context) {
	ok := false
	defer func() {
		middleware.RecordCheckoutOperation("payment", ok)
	}()

	var req attachPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	if order.CustomerID != principalID(c) {
		response.Error(c, http.StatusForbidden, "order belongs to another customer")
		return
	}

	record, err := h.orders.AttachPayment(c.Request.Context(), order.ID, req.Amount, req.Method, req.TransactionID)
	if err != nil {
		renderError(c, err)
		return
	}

	ok = true
	response.Success(c, record)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an order along the fulfillment states. Admin only.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}
