package service

import (
	"errors"
	"fmt"
	"math"

	"clothing-mall/internal/model"

	"gorm.io/gorm"
)

// ReviewService manages product ratings. One review per customer per
// product; no purchase requirement.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// AddReview creates a rating+comment for a product.
func (s *ReviewService) AddReview(customerID, productID string, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var review *model.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup product: %w", err)
		}

		var cnt int64
		err := tx.Model(&model.Review{}).
			Where("customer_id = ? AND product_id = ?", customerID, productID).
			Count(&cnt).Error
		if err != nil {
			return fmt.Errorf("check existing review: %w", err)
		}
		if cnt > 0 {
			return ErrDuplicateReview
		}

		review = &model.Review{
			CustomerID: customerID,
			ProductID:  productID,
			Rating:     rating,
			Comment:    comment,
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// GetReview loads one review.
func (s *ReviewService) GetReview(reviewID string) (*model.Review, error) {
	var review model.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup review: %w", err)
	}
	return &review, nil
}

// UpdateReview changes the rating and/or comment of an existing review.
func (s *ReviewService) UpdateReview(reviewID string, rating *int, comment *string) (*model.Review, error) {
	var review model.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup review: %w", err)
	}

	updates := make(map[string]interface{})
	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, ErrInvalidRating
		}
		updates["rating"] = *rating
	}
	if comment != nil {
		updates["comment"] = *comment
	}
	if len(updates) == 0 {
		return &review, nil
	}

	if err := s.db.Model(&review).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return &review, nil
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(reviewID string) error {
	res := s.db.Delete(&model.Review{}, "id = ?", reviewID)
	if res.Error != nil {
		return fmt.Errorf("delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForProduct returns a product's reviews, newest first.
func (s *ReviewService) ListForProduct(productID string) ([]model.Review, error) {
	var reviews []model.Review
	err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// AverageRating returns the arithmetic mean rounded to two decimals, or
// exactly 0.0 when the product has no reviews.
func (s *ReviewService) AverageRating(productID string) (float64, error) {
	var ratings []int
	err := s.db.Model(&model.Review{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return 0, fmt.Errorf("load ratings: %w", err)
	}
	if len(ratings) == 0 {
		return 0.0, nil
	}

	var total int
	for _, r := range ratings {
		total += r
	}
	avg := float64(total) / float64(len(ratings))
	return math.Round(avg*100) / 100, nil
}
