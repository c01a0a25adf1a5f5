package handler

import (
	"net/http"

	"clothing-mall/internal/service"
	"clothing-mall/pkg/response"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetCart returns the customer's active cart with its running total.
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.carts.GetOrCreateActiveCart(principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}

	total, err := h.carts.TotalPrice(cart.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, gin.H{
		"cart":  cart,
		"total": total,
	})
}

type addItemRequest struct {
	SkuID    string `json:"sku_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gte=1"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.carts.GetOrCreateActiveCart(principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}

	item, err := h.carts.AddItem(cart.ID, req.SkuID, req.Quantity)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, item)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.carts.GetOrCreateActiveCart(principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.carts.UpdateQuantity(cart.ID, c.Param("skuId"), req.Quantity); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.carts.GetOrCreateActiveCart(principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.carts.RemoveItem(cart.ID, c.Param("skuId")); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.carts.GetOrCreateActiveCart(principalID(c))
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.carts.Clear(cart.ID); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}
