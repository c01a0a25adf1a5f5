package service

import "errors"

// Domain validation failures, returned as typed results and shown to the
// end user. Infrastructure failures are wrapped storage errors and roll
// back the current unit of work.
var (
	ErrNotFound              = errors.New("not found")
	ErrDuplicateEmail        = errors.New("email address already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountSuspended      = errors.New("account has been suspended")
	ErrPendingApproval       = errors.New("vendor account pending approval")
	ErrUnavailable           = errors.New("sku is not available or out of stock")
	ErrProductUnavailable    = errors.New("product is no longer available")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrEmptyCart             = errors.New("cannot create order from empty cart")
	ErrInvalidLine           = errors.New("cart line references a missing sku or product")
	ErrAmountMismatch        = errors.New("payment amount does not match order total")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrDuplicateReview       = errors.New("customer has already reviewed this product")
	ErrUnauthorized          = errors.New("operation not permitted for this account")
)
