package public

import (
	"strconv"

	"github.com/botanical-decor/shop-api/internal/http/response"
	"github.com/botanical-decor/shop-api/internal/models"
	"github.com/botanical-decor/shop-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest is the add-to-cart payload.
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest sets a cart line's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineProduct is the product summary joined onto a cart line.
type CartLineProduct struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	Price         models.Money  `json:"price"`
	DiscountPrice *models.Money `json:"discount_price,omitempty"`
	ImageURL      string        `json:"image_url"`
	Stock         int           `json:"stock"`
}

// CartLineResponse is one cart line with its priced product.
type CartLineResponse struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	Product   CartLineProduct `json:"product"`
}

// GetCart returns the reconciled cart plus a pricing quote. An optional
// coupon query parameter is applied to the quote; an unknown code is
// rejected outright so the storefront can surface it inline.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to load cart")
		return
	}

	couponCode := c.Query("coupon")
	quote, err := h.CartService.QuoteByUser(uid, couponCode)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to price cart")
		return
	}
	if couponCode != "" && !quote.CouponValid {
		respondError(c, response.CodeBadRequest, "invalid coupon code", nil)
		return
	}

	lines := make([]CartLineResponse, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		lines = append(lines, CartLineResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.EffectivePrice(),
			Product: CartLineProduct{
				ID:            item.Product.ID,
				Name:          item.Product.Name,
				Category:      item.Product.Category,
				Price:         item.Product.Price,
				DiscountPrice: item.Product.DiscountPrice,
				ImageURL:      item.Product.ImageURL,
				Stock:         item.Product.Stock,
			},
		})
	}

	response.Success(c, gin.H{
		"items": lines,
		"quote": quote,
	})
}

// AddCartItem adds a product to the cart. Repeated adds of the same product
// accumulate into a single line.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}
	response.Success(c, gin.H{"added": true})
}

// UpdateCartItem sets a cart line's quantity. A quantity below 1 leaves the
// line unchanged.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.CartService.UpdateQuantity(uid, itemID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem removes a cart line owned by the caller.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(uid, itemID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func parsePathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}
