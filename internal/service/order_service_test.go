package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/botanical-decor/shop-api/internal/config"
	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/models"
	"github.com/botanical-decor/shop-api/internal/queue"
	"github.com/botanical-decor/shop-api/internal/repository"

	"gorm.io/gorm"
)

type orderTestEnv struct {
	db          *gorm.DB
	orders      *OrderService
	cart        *CartService
	productRepo repository.ProductRepository
}

func newOrderTestEnv(t *testing.T) orderTestEnv {
	t.Helper()
	db := newShopTestDB(t)

	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	pricing := NewPricingService(config.ShopConfig{FreeShippingThreshold: 100, ShippingFlatFee: 15})

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	t.Cleanup(func() { _ = queueClient.Close() })

	return orderTestEnv{
		db:          db,
		orders:      NewOrderService(orderRepo, productRepo, cartRepo, pricing, queueClient),
		cart:        NewCartService(cartRepo, productRepo, pricing),
		productRepo: productRepo,
	}
}

func validShipping(userID uint) CheckoutInput {
	return CheckoutInput{
		UserID:          userID,
		ShippingName:    "Rosa Lindqvist",
		ShippingEmail:   "rosa@example.com",
		ShippingPhone:   "+46 70 123 45 67",
		ShippingAddress: "Kungsgatan 12, Stockholm",
	}
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	env := newOrderTestEnv(t)
	product := seedProduct(t, env.productRepo, "Crimson Dozen", 45.99, 10)

	if err := env.cart.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	input := validShipping(1)
	input.CouponCode = "WELCOME10"
	order, err := env.orders.Checkout(input)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if !strings.HasPrefix(order.OrderNo, "BD") {
		t.Fatalf("order no = %q, want BD prefix", order.OrderNo)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status = %q, want %q", order.Status, constants.OrderStatusPending)
	}
	if got := order.Subtotal.StringFixed(2); got != "91.98" {
		t.Fatalf("subtotal = %s, want 91.98", got)
	}
	if got := order.DiscountAmount.StringFixed(2); got != "9.20" {
		t.Fatalf("discount = %s, want 9.20", got)
	}
	if got := order.ShippingFee.StringFixed(2); got != "15.00" {
		t.Fatalf("shipping = %s, want 15.00", got)
	}
	if got := order.TotalAmount.StringFixed(2); got != "97.78" {
		t.Fatalf("total = %s, want 97.78", got)
	}
	if order.CouponCode != "WELCOME10" {
		t.Fatalf("coupon = %q, want WELCOME10", order.CouponCode)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}
	if order.Items[0].ProductName != "Crimson Dozen" {
		t.Fatalf("item name snapshot = %q", order.Items[0].ProductName)
	}

	reloaded, err := env.productRepo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 8 {
		t.Fatalf("stock = %d, want 8 after checkout", reloaded.Stock)
	}

	remaining, err := env.cart.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("cart lines = %d, want 0 after checkout", len(remaining))
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.orders.Checkout(validShipping(2))
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("err = %v, want ErrCartEmpty", err)
	}
}

func TestCheckoutRequiresShippingDetails(t *testing.T) {
	env := newOrderTestEnv(t)
	product := seedProduct(t, env.productRepo, "Lily Whites", 25, 5)
	if err := env.cart.AddItem(AddCartItemInput{UserID: 3, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	input := validShipping(3)
	input.ShippingAddress = "   "
	if _, err := env.orders.Checkout(input); !errors.Is(err, ErrShippingRequired) {
		t.Fatalf("err = %v, want ErrShippingRequired", err)
	}

	input = validShipping(3)
	input.ShippingEmail = "not-an-address"
	if _, err := env.orders.Checkout(input); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("err = %v, want ErrInvalidEmail", err)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	env := newOrderTestEnv(t)
	product := seedProduct(t, env.productRepo, "Peony Bundle", 30, 1)
	if err := env.cart.AddItem(AddCartItemInput{UserID: 4, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	_, err := env.orders.Checkout(validShipping(4))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	reloaded, err := env.productRepo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 1 {
		t.Fatalf("stock = %d, want untouched 1", reloaded.Stock)
	}

	var orderCount int64
	if err := env.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("orders = %d, want 0 after rollback", orderCount)
	}

	items, err := env.cart.ListByUser(4)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart lines = %d, want the cart kept on failure", len(items))
	}
}

func placeTestOrder(t *testing.T, env orderTestEnv, userID uint) *models.Order {
	t.Helper()
	product := seedProduct(t, env.productRepo, "Garden Mix", 55, 50)
	if err := env.cart.AddItem(AddCartItemInput{UserID: userID, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := env.orders.Checkout(validShipping(userID))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return order
}

func TestUpdateOrderStatusForwardOnly(t *testing.T) {
	env := newOrderTestEnv(t)
	order := placeTestOrder(t, env, 5)

	updated, err := env.orders.UpdateOrderStatus(order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("pending -> shipped failed: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("status = %q, want Shipped", updated.Status)
	}

	if _, err := env.orders.UpdateOrderStatus(order.ID, constants.OrderStatusPending); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("shipped -> pending err = %v, want ErrOrderStatusInvalid", err)
	}

	updated, err = env.orders.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("shipped -> delivered failed: %v", err)
	}
	if updated.Status != constants.OrderStatusDelivered {
		t.Fatalf("status = %q, want Delivered", updated.Status)
	}

	// Delivered is terminal.
	for _, target := range []string{constants.OrderStatusPending, constants.OrderStatusShipped, constants.OrderStatusDelivered} {
		if _, err := env.orders.UpdateOrderStatus(order.ID, target); !errors.Is(err, ErrOrderStatusInvalid) {
			t.Fatalf("delivered -> %s err = %v, want ErrOrderStatusInvalid", target, err)
		}
	}
}

func TestUpdateOrderStatusRejectsSkippingShipped(t *testing.T) {
	env := newOrderTestEnv(t)
	order := placeTestOrder(t, env, 6)

	if _, err := env.orders.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("pending -> delivered err = %v, want ErrOrderStatusInvalid", err)
	}
}

func TestUpdateOrderStatusIsCaseSensitive(t *testing.T) {
	env := newOrderTestEnv(t)
	order := placeTestOrder(t, env, 7)

	if _, err := env.orders.UpdateOrderStatus(order.ID, "shipped"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("lowercase status err = %v, want ErrOrderStatusInvalid", err)
	}
	if _, err := env.orders.UpdateOrderStatus(order.ID, "Returned"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("unknown status err = %v, want ErrOrderStatusInvalid", err)
	}
}

func TestGetByIDAndUserScopesOwnership(t *testing.T) {
	env := newOrderTestEnv(t)
	order := placeTestOrder(t, env, 8)

	if _, err := env.orders.GetByIDAndUser(order.ID, 999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign user err = %v, want ErrOrderNotFound", err)
	}
	got, err := env.orders.GetByIDAndUser(order.ID, 8)
	if err != nil {
		t.Fatalf("owner fetch failed: %v", err)
	}
	if got.OrderNo != order.OrderNo {
		t.Fatalf("order no = %q, want %q", got.OrderNo, order.OrderNo)
	}
}
