package handler

import (
	"net/http"

	"clothing-mall/internal/model"
	"clothing-mall/internal/service"
	"clothing-mall/pkg/response"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customers *service.CustomerService
}

func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.customers.UpdateProfile(principalID(c), req.Name, req.Email)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

type addAddressRequest struct {
	Name    string `json:"name" binding:"required"`
	Line1   string `json:"line1" binding:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
	Country string `json:"country" binding:"required"`
}

func (h *CustomerHandler) AddAddress(c *gin.Context) {
	var req addAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	address, err := h.customers.AddAddress(principalID(c), model.Address{
		Name:    req.Name,
		Line1:   req.Line1,
		Line2:   req.Line2,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
		Country: req.Country,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, address)
}

func (h *CustomerHandler) ListAddresses(c *gin.Context) {
	addresses, err := h.customers.ListAddresses(principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, addresses)
}

func (h *CustomerHandler) DeleteAddress(c *gin.Context) {
	if err := h.customers.DeleteAddress(principalID(c), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}
