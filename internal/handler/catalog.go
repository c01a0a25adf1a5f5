package handler

import (
	"net/http"
	"strconv"

	"clothing-mall/internal/cache"
	"clothing-mall/internal/model"
	"clothing-mall/internal/service"
	"clothing-mall/pkg/response"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public catalog and the vendor listing
// endpoints. The cache is optional; nil means every read hits the DB.
type CatalogHandler struct {
	catalog *service.CatalogService
	reviews *service.ReviewService
	cache   *cache.CatalogCache
}

func NewCatalogHandler(catalog *service.CatalogService, reviews *service.ReviewService, cc *cache.CatalogCache) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, reviews: reviews, cache: cc}
}

// ListAvailable is the storefront view: available products with stock.
func (h *CatalogHandler) ListAvailable(c *gin.Context) {
	var products []model.Product
	var err error
	if h.cache != nil {
		products, err = h.cache.ListAvailableWithStock(c.Request.Context())
	} else {
		products, err = h.catalog.ListAvailableWithStock()
	}
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, products)
}

// ListByCategory filters the catalog by category.
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	onlyAvailable := true
	if v := c.Query("only_available"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			onlyAvailable = parsed
		}
	}

	var products []model.Product
	var err error
	if h.cache != nil {
		products, err = h.cache.ListByCategory(c.Request.Context(), category, onlyAvailable)
	} else {
		products, err = h.catalog.ListByCategory(category, onlyAvailable)
	}
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct returns one product with its variants and average rating.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}

	avg, err := h.reviews.AverageRating(product.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, gin.H{
		"product":        product,
		"average_rating": avg,
	})
}

type createProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	BasePrice   float64 `json:"base_price" binding:"required,gte=0"`
	Available   *bool   `json:"available"`
	ImageURL    string  `json:"image_url"`
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	product, err := h.catalog.CreateProduct(principalID(c), req.Name, req.Description, req.Category, req.BasePrice, available, req.ImageURL)
	if err != nil {
		renderError(c, err)
		return
	}

	h.invalidate(c, product.Category)
	response.Success(c, product)
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	BasePrice   *float64 `json:"base_price"`
	Available   *bool    `json:"available"`
	ImageURL    *string  `json:"image_url"`
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.catalog.UpdateProduct(product.ID, service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		Available:   req.Available,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	h.invalidate(c, product.Category)
	if req.Category != nil {
		h.invalidate(c, *req.Category)
	}
	response.Success(c, updated)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(product.ID); err != nil {
		renderError(c, err)
		return
	}

	h.invalidate(c, product.Category)
	response.Success(c, nil)
}

type addSkuRequest struct {
	Size            string  `json:"size" binding:"required"`
	Color           string  `json:"color" binding:"required"`
	Inventory       int     `json:"inventory" binding:"gte=0"`
	PriceAdjustment float64 `json:"price_adjustment"`
}

func (h *CatalogHandler) AddSku(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	var req addSkuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	sku, err := h.catalog.AddSku(product.ID, req.Size, req.Color, req.Inventory, req.PriceAdjustment)
	if err != nil {
		renderError(c, err)
		return
	}

	h.invalidate(c, product.Category)
	response.Success(c, sku)
}

type updateSkuRequest struct {
	Size            *string  `json:"size"`
	Color           *string  `json:"color"`
	Inventory       *int     `json:"inventory"`
	PriceAdjustment *float64 `json:"price_adjustment"`
}

func (h *CatalogHandler) UpdateSku(c *gin.Context) {
	sku, product, ok := h.ownedSku(c)
	if !ok {
		return
	}

	var req updateSkuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.catalog.UpdateSku(sku.ID, service.SkuUpdate{
		Size:            req.Size,
		Color:           req.Color,
		Inventory:       req.Inventory,
		PriceAdjustment: req.PriceAdjustment,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	h.invalidate(c, product.Category)
	response.Success(c, updated)
}

func (h *CatalogHandler) DeleteSku(c *gin.Context) {
	sku, product, ok := h.ownedSku(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteSku(sku.ID); err != nil {
		renderError(c, err)
		return
	}

	h.invalidate(c, product.Category)
	response.Success(c, nil)
}

// ListMine lists the authenticated vendor's products, available or not.
func (h *CatalogHandler) ListMine(c *gin.Context) {
	products, err := h.catalog.ListVendorProducts(principalID(c), false)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, products)
}

// ownedProduct loads the product from the path and rejects the request
// unless the principal is the owning vendor or an admin.
func (h *CatalogHandler) ownedProduct(c *gin.Context) (*model.Product, bool) {
	product, err := h.catalog.GetProduct(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return nil, false
	}
	if principalRole(c) != model.RoleAdmin && product.VendorID != principalID(c) {
		response.Error(c, http.StatusForbidden, "product belongs to another vendor")
		return nil, false
	}
	return product, true
}

func (h *CatalogHandler) ownedSku(c *gin.Context) (*model.Sku, *model.Product, bool) {
	sku, err := h.catalog.GetSku(c.Param("skuId"))
	if err != nil {
		renderError(c, err)
		return nil, nil, false
	}
	product, err := h.catalog.GetProduct(sku.ProductID)
	if err != nil {
		renderError(c, err)
		return nil, nil, false
	}
	if principalRole(c) != model.RoleAdmin && product.VendorID != principalID(c) {
		response.Error(c, http.StatusForbidden, "product belongs to another vendor")
		return nil, nil, false
	}
	return sku, product, true
}

func (h *CatalogHandler) invalidate(c *gin.Context, category string) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), category)
	}
}
