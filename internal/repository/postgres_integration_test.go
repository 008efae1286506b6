//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB prepares a PostgreSQL database for dialect
// integration tests. Skipped unless TEST_POSTGRES_DSN is set.
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.CartItem{},
		&models.Product{},
		&models.Profile{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresCaseInsensitiveSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)

	product := &models.Product{
		Name:     "Crimson Rose Bouquet",
		Category: constants.CategoryRoses,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(45.99)),
		Stock:    10,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, err := repo.SearchByName("CRIMSON", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ILIKE search want 1 row got %d", len(rows))
	}
}

func TestPostgresColorContainment(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewProductRepository(db)

	product := &models.Product{
		Name:     "Crimson Rose Bouquet",
		Category: constants.CategoryRoses,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(45.99)),
		Stock:    10,
		Colors:   models.StringArray{"Red", "Burgundy"},
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := repo.List(CatalogFilter{Color: "Red", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("jsonb containment want 1 row got total=%d len=%d", total, len(rows))
	}

	_, total, err = repo.List(CatalogFilter{Color: "Yellow", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("jsonb containment want 0 rows got %d", total)
	}
}

func TestPostgresCartUpsert(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	products := NewProductRepository(db)
	carts := NewCartRepository(db)

	product := &models.Product{
		Name:     "White Orchid Stem",
		Category: constants.CategoryOrchids,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(29.50)),
		Stock:    10,
	}
	if err := products.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

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
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("ON CONFLICT upsert should merge lines, got len=%d", len(items))
	}
}
