package service

import (
	"errors"
	"testing"

	"github.com/botanical-decor/shop-api/internal/config"
	"github.com/botanical-decor/shop-api/internal/models"
	"github.com/botanical-decor/shop-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newShopTestDB opens the shared in-memory database and leaves the shop
// tables empty for the calling test.
func newShopTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Profile{}, &models.Product{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cleanup := func() {
		for _, table := range []string{"order_items", "orders", "cart_items", "products", "profiles"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				t.Fatalf("cleanup %s failed: %v", table, err)
			}
		}
	}
	cleanup()
	t.Cleanup(cleanup)
	return db
}

func newTestCartService(t *testing.T) (*CartService, repository.ProductRepository, *gorm.DB) {
	t.Helper()
	db := newShopTestDB(t)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	pricing := NewPricingService(config.ShopConfig{FreeShippingThreshold: 100, ShippingFlatFee: 15})
	return NewCartService(cartRepo, productRepo, pricing), productRepo, db
}

func seedProduct(t *testing.T, repo repository.ProductRepository, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Category: "Roses",
		Price:    models.NewMoneyFromFloat(price),
		Stock:    stock,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func TestCartAddItemRejectsUnknownProduct(t *testing.T) {
	svc, _, _ := newTestCartService(t)

	err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: 9999, Quantity: 1})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestCartAddItemAccumulatesQuantity(t *testing.T) {
	svc, productRepo, _ := newTestCartService(t)
	product := seedProduct(t, productRepo, "Crimson Dozen", 45.99, 10)

	for _, qty := range []int{2, 3} {
		if err := svc.AddItem(AddCartItemInput{UserID: 7, ProductID: product.ID, Quantity: qty}); err != nil {
			t.Fatalf("add item failed: %v", err)
		}
	}

	items, err := svc.ListByUser(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("lines = %d, want 1", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", items[0].Quantity)
	}
}

func TestCartListDropsLinesWithoutProduct(t *testing.T) {
	svc, productRepo, db := newTestCartService(t)
	product := seedProduct(t, productRepo, "Sunset Tulips", 29.50, 10)

	if err := svc.AddItem(AddCartItemInput{UserID: 3, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	// A line whose product has since left the catalog.
	if err := db.Exec("INSERT INTO cart_items (user_id, product_id, quantity) VALUES (3, 123456, 2)").Error; err != nil {
		t.Fatalf("insert orphan line failed: %v", err)
	}

	items, err := svc.ListByUser(3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("lines = %d, want 1 after reconciliation", len(items))
	}
	if items[0].ProductID != product.ID {
		t.Fatalf("kept line product = %d, want %d", items[0].ProductID, product.ID)
	}

	var orphanCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ? AND product_id = ?", 3, 123456).Count(&orphanCount).Error; err != nil {
		t.Fatalf("count orphan failed: %v", err)
	}
	if orphanCount != 0 {
		t.Fatalf("orphan line still stored, want it removed")
	}
}

func TestCartUpdateQuantityBelowOneIsNoOp(t *testing.T) {
	svc, productRepo, _ := newTestCartService(t)
	product := seedProduct(t, productRepo, "Peony Bundle", 35, 10)

	if err := svc.AddItem(AddCartItemInput{UserID: 4, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	items, err := svc.ListByUser(4)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if err := svc.UpdateQuantity(4, items[0].ID, 0); err != nil {
		t.Fatalf("zero quantity should be ignored, got %v", err)
	}

	items, err = svc.ListByUser(4)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want unchanged 2", items[0].Quantity)
	}
}

func TestCartUpdateQuantityMissingLine(t *testing.T) {
	svc, _, _ := newTestCartService(t)

	err := svc.UpdateQuantity(4, 987654, 3)
	if !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("err = %v, want ErrCartItemNotFound", err)
	}
}

func TestCartQuoteByUser(t *testing.T) {
	svc, productRepo, _ := newTestCartService(t)
	product := seedProduct(t, productRepo, "Orchid Trio", 40, 10)

	if err := svc.AddItem(AddCartItemInput{UserID: 5, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	quote, err := svc.QuoteByUser(5, "WELCOME10")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if got := quote.Subtotal.StringFixed(2); got != "80.00" {
		t.Fatalf("subtotal = %s, want 80.00", got)
	}
	if got := quote.Discount.StringFixed(2); got != "8.00" {
		t.Fatalf("discount = %s, want 8.00", got)
	}
	if got := quote.Total.StringFixed(2); got != "87.00" {
		t.Fatalf("total = %s, want 87.00", got)
	}
}
