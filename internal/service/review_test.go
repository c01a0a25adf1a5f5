package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReview(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	customer := createCustomer(t, db, "alice@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	product, _ := createProductWithSku(t, db, vendor.ID, 40.0, 0, 5)

	review, err := svc.AddReview(customer.ID, product.ID, 4, "fits well")
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 4, review.Rating)

	_, err = svc.AddReview(customer.ID, product.ID, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.AddReview(customer.ID, product.ID, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.AddReview(customer.ID, "no-such-product", 3, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddReviewDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	customer := createCustomer(t, db, "alice@example.com")
	other := createCustomer(t, db, "dave@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	product, _ := createProductWithSku(t, db, vendor.ID, 40.0, 0, 5)

	_, err := svc.AddReview(customer.ID, product.ID, 4, "fits well")
	require.NoError(t, err)

	_, err = svc.AddReview(customer.ID, product.ID, 5, "changed my mind")
	assert.ErrorIs(t, err, ErrDuplicateReview)

	// a different customer may still review
	_, err = svc.AddReview(other.ID, product.ID, 2, "runs small")
	assert.NoError(t, err)
}

func TestUpdateAndDeleteReview(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	customer := createCustomer(t, db, "alice@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	product, _ := createProductWithSku(t, db, vendor.ID, 40.0, 0, 5)

	review, err := svc.AddReview(customer.ID, product.ID, 4, "fits well")
	require.NoError(t, err)

	newRating := 2
	newComment := "shrunk in the wash"
	updated, err := svc.UpdateReview(review.ID, &newRating, &newComment)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, "shrunk in the wash", updated.Comment)

	bad := 9
	_, err = svc.UpdateReview(review.ID, &bad, nil)
	assert.ErrorIs(t, err, ErrInvalidRating)

	require.NoError(t, svc.DeleteReview(review.ID))
	assert.ErrorIs(t, svc.DeleteReview(review.ID), ErrNotFound)
	_, err = svc.GetReview(review.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAverageRating(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	vendor := createApprovedVendor(t, db, "bob@example.com")
	product, _ := createProductWithSku(t, db, vendor.ID, 40.0, 0, 5)

	avg, err := svc.AverageRating(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	for i, rating := range []int{5, 4, 4} {
		customer := createCustomer(t, db, string(rune('a'+i))+"@example.com")
		_, err := svc.AddReview(customer.ID, product.ID, rating, "")
		require.NoError(t, err)
	}

	// mean of 5,4,4 rounded to two decimals
	avg, err = svc.AverageRating(product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.33, avg, 1e-9)

	reviews, err := svc.ListForProduct(product.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
}
