package repository

import (
	"testing"

	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *GormProductRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Exec("DELETE FROM cart_items").Error; err != nil {
		t.Fatalf("clean cart_items failed: %v", err)
	}
	if err := db.Exec("DELETE FROM products").Error; err != nil {
		t.Fatalf("clean products failed: %v", err)
	}
	return NewCartRepository(db), NewProductRepository(db)
}

func createCartTestProduct(t *testing.T, products *GormProductRepository) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     "Crimson Rose Bouquet",
		Category: constants.CategoryRoses,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(45.99)),
		Stock:    10,
	}
	if err := products.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestAddQuantityCreatesThenIncrements(t *testing.T) {
	carts, products := setupCartRepositoryTest(t)
	product := createCartTestProduct(t, products)

	if err := carts.AddQuantity(1, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := carts.AddQuantity(1, product.ID, 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items, err := carts.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("adds for the same product should merge into one line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", items[0].Quantity)
	}
}

func TestAddQuantitySeparateUsers(t *testing.T) {
	carts, products := setupCartRepositoryTest(t)
	product := createCartTestProduct(t, products)

	if err := carts.AddQuantity(1, product.ID, 2); err != nil {
		t.Fatalf("user 1 add failed: %v", err)
	}
	if err := carts.AddQuantity(2, product.ID, 1); err != nil {
		t.Fatalf("user 2 add failed: %v", err)
	}

	items, err := carts.ListByUser(2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("user 2 cart should hold one line of quantity 1")
	}
}

func TestAddQuantityRejectsInvalidParams(t *testing.T) {
	carts, _ := setupCartRepositoryTest(t)
	if err := carts.AddQuantity(0, 1, 1); err == nil {
		t.Fatalf("zero user should be rejected")
	}
	if err := carts.AddQuantity(1, 0, 1); err == nil {
		t.Fatalf("zero product should be rejected")
	}
	if err := carts.AddQuantity(1, 1, 0); err == nil {
		t.Fatalf("zero quantity should be rejected")
	}
}

func TestDeleteByIDAndUserReportsRows(t *testing.T) {
	carts, products := setupCartRepositoryTest(t)
	product := createCartTestProduct(t, products)

	if err := carts.AddQuantity(1, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	items, err := carts.ListByUser(1)
	if err != nil || len(items) != 1 {
		t.Fatalf("list failed: %v", err)
	}

	// Wrong owner: no rows touched.
	rows, err := carts.DeleteByIDAndUser(items[0].ID, 99)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("foreign delete should touch 0 rows, got %d", rows)
	}

	rows, err = carts.DeleteByIDAndUser(items[0].ID, 1)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("owner delete should touch 1 row, got %d", rows)
	}

	// Hard delete keeps the unique index usable for a fresh add.
	if err := carts.AddQuantity(1, product.ID, 1); err != nil {
		t.Fatalf("re-add after delete failed: %v", err)
	}
	items, err = carts.ListByUser(1)
	if err != nil || len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("re-added line should start at quantity 1")
	}
}

func TestUpdateQuantityScopedToOwner(t *testing.T) {
	carts, products := setupCartRepositoryTest(t)
	product := createCartTestProduct(t, products)

	if err := carts.AddQuantity(1, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	items, _ := carts.ListByUser(1)

	rows, err := carts.UpdateQuantity(items[0].ID, 99, 7)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("foreign update should touch 0 rows")
	}

	rows, err = carts.UpdateQuantity(items[0].ID, 1, 7)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("owner update should touch 1 row")
	}

	items, _ = carts.ListByUser(1)
	if items[0].Quantity != 7 {
		t.Fatalf("quantity want 7 got %d", items[0].Quantity)
	}
}

func TestClearByUser(t *testing.T) {
	carts, products := setupCartRepositoryTest(t)
	product := createCartTestProduct(t, products)

	if err := carts.AddQuantity(1, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := carts.ClearByUser(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, err := carts.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be empty after clear, got %d lines", len(items))
	}
}
