package public

import (
	"strconv"

	handlershared "github.com/botanical-decor/shop-api/internal/http/handlers/shared"
	"github.com/botanical-decor/shop-api/internal/http/response"
	"github.com/botanical-decor/shop-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest is the place-order payload.
type CheckoutRequest struct {
	CouponCode      string `json:"coupon_code"`
	ShippingName    string `json:"shipping_name" binding:"required"`
	ShippingEmail   string `json:"shipping_email" binding:"required"`
	ShippingPhone   string `json:"shipping_phone"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// CreateOrder checks out the caller's cart. Pricing is recomputed
// server-side; the client never submits amounts.
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	// Reject unknown coupon codes before touching stock so the client
	// gets a specific error instead of a silently uncredited discount.
	if req.CouponCode != "" {
		quote, err := h.CartService.QuoteByUser(uid, req.CouponCode)
		if err != nil {
			respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to place order")
			return
		}
		if !quote.CouponValid {
			respondError(c, response.CodeBadRequest, "invalid coupon code", nil)
			return
		}
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:          uid,
		CouponCode:      req.CouponCode,
		ShippingName:    req.ShippingName,
		ShippingEmail:   req.ShippingEmail,
		ShippingPhone:   req.ShippingPhone,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to place order")
		return
	}
	response.Success(c, order)
}

// ListOrders returns the caller's orders newest-first.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load orders", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder returns one of the caller's orders with its items.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByIDAndUser(id, uid)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
		}, response.CodeInternal, "failed to load order")
		return
	}
	response.Success(c, order)
}
