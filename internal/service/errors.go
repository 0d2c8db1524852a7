package service

import "errors"

var (
	ErrCartTokenRequired  = errors.New("cart token required")
	ErrInvalidCartItem    = errors.New("invalid cart item")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCheckoutFailed     = errors.New("checkout failed")
	ErrPaymentNotSettled  = errors.New("payment not settled")
	ErrInvalidSubmission  = errors.New("invalid submission")
)
