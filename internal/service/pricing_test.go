package service

import (
	"testing"

	"github.com/botanical-decor/shop-api/internal/config"
	"github.com/botanical-decor/shop-api/internal/models"
)

func newTestPricing() *PricingService {
	return NewPricingService(config.ShopConfig{
		FreeShippingThreshold: 100,
		ShippingFlatFee:       15,
	})
}

func cartLine(productID uint, price float64, discount *float64, quantity int) models.CartItem {
	product := &models.Product{
		ID:    productID,
		Name:  "Test Bouquet",
		Price: models.NewMoneyFromFloat(price),
	}
	if discount != nil {
		m := models.NewMoneyFromFloat(*discount)
		product.DiscountPrice = &m
	}
	return models.CartItem{
		ProductID: productID,
		Product:   product,
		Quantity:  quantity,
	}
}

func TestQuoteCartUsesDiscountPriceWhenPresent(t *testing.T) {
	pricing := newTestPricing()
	sale := 29.50
	quote := pricing.QuoteCart([]models.CartItem{
		cartLine(1, 45.99, &sale, 2),
	}, "")

	if got := quote.Subtotal.StringFixed(2); got != "59.00" {
		t.Fatalf("subtotal = %s, want 59.00", got)
	}
	if got := quote.ShippingFee.StringFixed(2); got != "15.00" {
		t.Fatalf("shipping = %s, want 15.00", got)
	}
	if got := quote.Total.StringFixed(2); got != "74.00" {
		t.Fatalf("total = %s, want 74.00", got)
	}
}

func TestQuoteCartWelcomeCouponTakesTenPercent(t *testing.T) {
	pricing := newTestPricing()
	quote := pricing.QuoteCart([]models.CartItem{
		cartLine(1, 50, nil, 1),
	}, "  welcome10 ")

	if !quote.CouponValid {
		t.Fatalf("expected WELCOME10 to be accepted after normalization")
	}
	if got := quote.Discount.StringFixed(2); got != "5.00" {
		t.Fatalf("discount = %s, want 5.00", got)
	}
	if got := quote.Total.StringFixed(2); got != "60.00" {
		t.Fatalf("total = %s, want 60.00 (50 - 5 + 15 shipping)", got)
	}
}

func TestQuoteCartUnknownCouponYieldsZeroDiscountNotError(t *testing.T) {
	pricing := newTestPricing()
	quote := pricing.QuoteCart([]models.CartItem{
		cartLine(1, 50, nil, 1),
	}, "SPRING20")

	if quote.CouponValid {
		t.Fatalf("unknown coupon must not validate")
	}
	if !quote.Discount.IsZero() {
		t.Fatalf("discount = %s, want 0", quote.Discount.StringFixed(2))
	}
	if got := quote.Total.StringFixed(2); got != "65.00" {
		t.Fatalf("total = %s, want 65.00", got)
	}
}

func TestQuoteCartShippingWaivedStrictlyAboveThreshold(t *testing.T) {
	pricing := newTestPricing()

	// Exactly at the threshold still pays shipping.
	atThreshold := pricing.QuoteCart([]models.CartItem{
		cartLine(1, 100, nil, 1),
	}, "")
	if got := atThreshold.ShippingFee.StringFixed(2); got != "15.00" {
		t.Fatalf("shipping at threshold = %s, want 15.00", got)
	}

	aboveThreshold := pricing.QuoteCart([]models.CartItem{
		cartLine(1, 100.01, nil, 1),
	}, "")
	if !aboveThreshold.ShippingFee.IsZero() {
		t.Fatalf("shipping above threshold = %s, want 0", aboveThreshold.ShippingFee.StringFixed(2))
	}
}

func TestQuoteCartShippingChecksSubtotalBeforeDiscount(t *testing.T) {
	pricing := newTestPricing()
	quote := pricing.QuoteCart([]models.CartItem{
		cartLine(1, 105, nil, 1),
	}, "WELCOME10")

	// Discount drops the payable amount below 100 but free shipping is
	// decided on the subtotal.
	if !quote.ShippingFee.IsZero() {
		t.Fatalf("shipping = %s, want 0", quote.ShippingFee.StringFixed(2))
	}
	if got := quote.Total.StringFixed(2); got != "94.50" {
		t.Fatalf("total = %s, want 94.50", got)
	}
}

func TestQuoteCartEmptyCartShipsNothing(t *testing.T) {
	pricing := newTestPricing()
	quote := pricing.QuoteCart(nil, "WELCOME10")

	if !quote.Subtotal.IsZero() || !quote.ShippingFee.IsZero() || !quote.Total.IsZero() {
		t.Fatalf("empty cart quote should be all zeros, got subtotal=%s shipping=%s total=%s",
			quote.Subtotal.StringFixed(2), quote.ShippingFee.StringFixed(2), quote.Total.StringFixed(2))
	}
}

func TestQuoteCartSkipsOrphanLines(t *testing.T) {
	pricing := newTestPricing()
	quote := pricing.QuoteCart([]models.CartItem{
		{ProductID: 9, Product: nil, Quantity: 3},
		cartLine(1, 20, nil, 1),
	}, "")

	if len(quote.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(quote.Lines))
	}
	if got := quote.Subtotal.StringFixed(2); got != "20.00" {
		t.Fatalf("subtotal = %s, want 20.00", got)
	}
}
