package handler

import (
	"net/http"

	"clothing-mall/internal/model"
	"clothing-mall/internal/service"
	"clothing-mall/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type addReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Add(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.reviews.AddReview(principalID(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, review)
}

// ListForProduct returns the product's reviews plus the average rating.
func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	productID := c.Param("id")

	reviews, err := h.reviews.ListForProduct(productID)
	if err != nil {
		renderError(c, err)
		return
	}
	avg, err := h.reviews.AverageRating(productID)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Success(c, gin.H{
		"reviews":        reviews,
		"average_rating": avg,
	})
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (h *ReviewHandler) Update(c *gin.Context) {
	review, ok := h.ownedReview(c)
	if !ok {
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.reviews.UpdateReview(review.ID, req.Rating, req.Comment)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, updated)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	review, ok := h.ownedReview(c)
	if !ok {
		return
	}

	if err := h.reviews.DeleteReview(review.ID); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *ReviewHandler) ownedReview(c *gin.Context) (*model.Review, bool) {
	review, err := h.reviews.GetReview(c.Param("reviewId"))
	if err != nil {
		renderError(c, err)
		return nil, false
	}
	if principalRole(c) != model.RoleAdmin && review.CustomerID != principalID(c) {
		response.Error(c, http.StatusForbidden, "review belongs to another customer")
		return nil, false
	}
	return review, true
}
