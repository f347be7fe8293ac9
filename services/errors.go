package services

import "errors"

// Business errors surfaced by the services. Controllers map these to
// HTTP status codes; anything not in this list is treated as a
// storage or internal failure.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")

	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrOrderNotFound   = errors.New("order not found")
	ErrAddressNotFound = errors.New("address not found")

	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrQuantityExceeded  = errors.New("maximum quantity of 20 reached")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("order status cannot change this way")

	ErrInvalidMobile  = errors.New("invalid mobile number format")
	ErrInvalidPincode = errors.New("invalid pincode")

	ErrOTPNotFound     = errors.New("no pending verification code")
	ErrOTPExpired      = errors.New("verification code expired")
	ErrTooManyAttempts = errors.New("too many attempts, request a new code")
	ErrInvalidOTP      = errors.New("invalid verification code")
)
