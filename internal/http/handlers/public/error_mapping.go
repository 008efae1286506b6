package public

import (
	"errors"

	handlershared "github.com/botanical-decor/shop-api/internal/http/handlers/shared"
	"github.com/botanical-decor/shop-api/internal/http/response"
	"github.com/botanical-decor/shop-api/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError pairs a service sentinel with its API response.
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
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "invalid cart item"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrShippingRequired, code: response.CodeBadRequest, msg: "shipping details required"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "invalid coupon code"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, msg: "insufficient stock"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: "email already registered"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet policy"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrAccountBlocked, code: response.CodeForbidden, msg: "account is blocked"},
	{target: service.ErrAccountDeleted, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrResetCodeInvalid, code: response.CodeBadRequest, msg: "invalid or expired reset code"},
	{target: service.ErrEmailServiceNotConfigured, code: response.CodeInternal, msg: "email service not configured"},
	{target: service.ErrEmailServiceDisabled, code: response.CodeInternal, msg: "email service disabled"},
}

var emailErrorRules = []mappedHandlerError{
	{target: service.ErrEmailServiceDisabled, code: response.CodeBadRequest, msg: "email service disabled"},
	{target: service.ErrEmailServiceNotConfigured, code: response.CodeBadRequest, msg: "email service not configured"},
	{target: service.ErrEmailRecipientRejected, code: response.CodeBadRequest, msg: "recipient address rejected"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
}
