package handler

import (
	"strconv"

	"clothing-mall/internal/service"
	"clothing-mall/pkg/response"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin  *service.AdminService
	orders *service.OrderService
}

func NewAdminHandler(admin *service.AdminService, orders *service.OrderService) *AdminHandler {
	return &AdminHandler{admin: admin, orders: orders}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers()
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, users)
}

// ListVendors lists vendor accounts; ?pending=true restricts to those
// awaiting approval.
func (h *AdminHandler) ListVendors(c *gin.Context) {
	pendingOnly := false
	if v := c.Query("pending"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			pendingOnly = parsed
		}
	}

	vendors, err := h.admin.ListVendors(pendingOnly)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, vendors)
}

func (h *AdminHandler) ApproveVendor(c *gin.Context) {
	vendor, err := h.admin.ApproveVendor(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, vendor)
}

func (h *AdminHandler) SuspendAccount(c *gin.Context) {
	user, err := h.admin.SuspendAccount(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *AdminHandler) ReactivateAccount(c *gin.Context) {
	user, err := h.admin.ReactivateAccount(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, orders)
}
