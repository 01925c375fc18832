package services

import "errors"

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient product stock")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPaymentNotFound   = errors.New("payment record not found")
	ErrAddressRequired   = errors.New("shipping address is required")
	ErrAlreadyReviewed   = errors.New("payment verification already reviewed")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrInvalidSignature  = errors.New("webhook signature mismatch")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidLogin      = errors.New("invalid email or password")
	ErrDuplicateCategory = errors.New("category name already exists")
)
