package service

import "errors"

// Shared service errors. Handlers map these to HTTP responses with
// errors.Is, so services never reach for HTTP status codes directly.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCartItem    = errors.New("invalid cart item")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductInvalid     = errors.New("invalid product")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCouponInvalid      = errors.New("invalid coupon code")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStatusInvalid = errors.New("invalid order status transition")
	ErrShippingRequired   = errors.New("shipping details required")

	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrAccountDeleted     = errors.New("account is deleted")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrResetCodeInvalid   = errors.New("invalid or expired reset code")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("recipient address rejected")

	ErrUploadInvalid = errors.New("invalid upload payload")
)
