package service

import (
	"strings"

	"github.com/botanical-decor/shop-api/internal/config"
	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/models"

	"github.com/shopspring/decimal"
)

// QuoteLine is one priced cart line inside a quote.
type QuoteLine struct {
	ProductID   uint         `json:"product_id"`
	ProductName string       `json:"product_name"`
	ImageURL    string       `json:"image_url"`
	UnitPrice   models.Money `json:"unit_price"`
	ListPrice   models.Money `json:"list_price"`
	Quantity    int          `json:"quantity"`
	LineTotal   models.Money `json:"line_total"`
}

// Quote is the server-side pricing projection for a cart: subtotal from
// effective unit prices, coupon discount, shipping, and the final total.
type Quote struct {
	Lines       []QuoteLine  `json:"lines"`
	Subtotal    models.Money `json:"subtotal"`
	Discount    models.Money `json:"discount"`
	ShippingFee models.Money `json:"shipping_fee"`
	Total       models.Money `json:"total"`
	CouponCode  string       `json:"coupon_code,omitempty"`
	CouponValid bool         `json:"coupon_valid"`
}

// PricingService owns every money computation so handlers and the order
// flow cannot disagree about totals.
type PricingService struct {
	shop config.ShopConfig
}

// NewPricingService creates a pricing service.
func NewPricingService(shop config.ShopConfig) *PricingService {
	return &PricingService{shop: shop}
}

// QuoteCart prices the given cart lines. Lines whose product is missing are
// skipped; an unknown coupon code yields zero discount and CouponValid=false
// rather than an error, matching the storefront's inline coupon feedback.
func (s *PricingService) QuoteCart(items []models.CartItem, couponCode string) Quote {
	quote := Quote{Lines: make([]QuoteLine, 0, len(items))}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.Product == nil || item.Quantity <= 0 {
			continue
		}
		unit := item.Product.EffectivePrice()
		lineTotal := unit.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		quote.Lines = append(quote.Lines, QuoteLine{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			ImageURL:    item.Product.ImageURL,
			UnitPrice:   unit,
			ListPrice:   item.Product.Price,
			Quantity:    item.Quantity,
			LineTotal:   models.NewMoneyFromDecimal(lineTotal),
		})
	}
	quote.Subtotal = models.NewMoneyFromDecimal(subtotal)

	discount := decimal.Zero
	code := strings.ToUpper(strings.TrimSpace(couponCode))
	if code != "" {
		quote.CouponCode = code
		if code == constants.CouponWelcome {
			quote.CouponValid = true
			percent := decimal.NewFromInt(constants.CouponWelcomePercentOff).Div(decimal.NewFromInt(100))
			discount = subtotal.Mul(percent).Round(2)
		}
	}
	quote.Discount = models.NewMoneyFromDecimal(discount)

	quote.ShippingFee = s.shippingFee(subtotal, len(quote.Lines))
	total := subtotal.Sub(discount).Add(quote.ShippingFee.Decimal)
	if total.IsNegative() {
		total = decimal.Zero
	}
	quote.Total = models.NewMoneyFromDecimal(total)
	return quote
}

// shippingFee is a flat fee waived strictly above the free-shipping
// threshold. An empty cart ships nothing and costs nothing.
func (s *PricingService) shippingFee(subtotal decimal.Decimal, lineCount int) models.Money {
	if lineCount == 0 || subtotal.IsZero() {
		return models.Money{}
	}
	threshold := decimal.NewFromFloat(s.shop.FreeShippingThreshold)
	if subtotal.GreaterThan(threshold) {
		return models.Money{}
	}
	return models.NewMoneyFromFloat(s.shop.ShippingFlatFee)
}
