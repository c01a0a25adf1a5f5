package handler

import (
	"clothing-mall/internal/service"
	"clothing-mall/pkg/response"

	"github.com/gin-gonic/gin"
)

// VendorHandler exposes the vendor dashboard reads: own profile and the
// orders containing the vendor's products.
type VendorHandler struct {
	customers *service.CustomerService
	orders    *service.OrderService
}

func NewVendorHandler(customers *service.CustomerService, orders *service.OrderService) *VendorHandler {
	return &VendorHandler{customers: customers, orders: orders}
}

func (h *VendorHandler) GetProfile(c *gin.Context) {
	profile, err := h.customers.GetVendorProfile(principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *VendorHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListForVendor(c.Request.Context(), principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, orders)
}
