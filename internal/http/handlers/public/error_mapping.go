package public

import (
	"errors"

	"github.com/cyfa-store/api/internal/http/response"
	"github.com/cyfa-store/api/internal/pricing"
	"github.com/cyfa-store/api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error onto an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrCartTokenRequired, code: response.CodeBadRequest, msg: "cart token is required"},
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "cart item is invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrCatalogUnavailable, code: response.CodeUpstreamFailed, msg: "catalog is unavailable"},
	{target: pricing.ErrPromoInvalid, code: response.CodeBadRequest, msg: "promo code is invalid"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartTokenRequired, code: response.CodeBadRequest, msg: "cart token is required"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: pricing.ErrPromoInvalid, code: response.CodeBadRequest, msg: "promo code is invalid"},
	{target: service.ErrCheckoutFailed, code: response.CodeUpstreamFailed, msg: "checkout could not be started"},
	{target: service.ErrPaymentNotSettled, code: response.CodeBadRequest, msg: "payment has not settled"},
}

var formErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidSubmission, code: response.CodeBadRequest, msg: "submission is invalid"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart operation failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
}

func respondFormError(c *gin.Context, err error) {
	respondWithMappedError(c, err, formErrorRules, response.CodeInternal, "submission failed")
}
