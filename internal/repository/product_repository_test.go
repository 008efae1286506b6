package repository

import (
	"testing"
	"time"

	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	if err := db.Exec("DELETE FROM products").Error; err != nil {
		t.Fatalf("clean products failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createCatalogProduct(t *testing.T, repo *GormProductRepository, name, category string, price float64, colors []string, featured bool, rating float64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:             name,
		Category:         category,
		Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Stock:            10,
		Colors:           colors,
		BunchesAvailable: models.IntArray{1, 3, 5},
		Rating:           rating,
		IsFeatured:       featured,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestListFiltersByCategory(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createCatalogProduct(t, repo, "Crimson Rose Bouquet", constants.CategoryRoses, 45.99, []string{"Red"}, true, 4.8)
	createCatalogProduct(t, repo, "White Orchid Stem", constants.CategoryOrchids, 29.50, []string{"White"}, false, 4.2)

	products, total, err := repo.List(CatalogFilter{Category: constants.CategoryRoses, PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("want 1 rose product, got total=%d len=%d", total, len(products))
	}
	if products[0].Name != "Crimson Rose Bouquet" {
		t.Fatalf("unexpected product: %s", products[0].Name)
	}
}

func TestListCategoryAllMatchesEverything(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createCatalogProduct(t, repo, "Crimson Rose Bouquet", constants.CategoryRoses, 45.99, []string{"Red"}, true, 4.8)
	createCatalogProduct(t, repo, "White Orchid Stem", constants.CategoryOrchids, 29.50, []string{"White"}, false, 4.2)

	_, allTotal, err := repo.List(CatalogFilter{Category: constants.CategoryAll, PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	_, emptyTotal, err := repo.List(CatalogFilter{PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list unfiltered failed: %v", err)
	}
	if allTotal != emptyTotal {
		t.Fatalf("category All should match no filter: all=%d empty=%d", allTotal, emptyTotal)
	}
	if allTotal != 2 {
		t.Fatalf("want 2 products, got %d", allTotal)
	}
}

func TestListFiltersByPriceRangeInclusive(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createCatalogProduct(t, repo, "Budget Daisies", constants.CategoryDaisies, 12.00, nil, false, 3.9)
	createCatalogProduct(t, repo, "Crimson Rose Bouquet", constants.CategoryRoses, 45.99, []string{"Red"}, true, 4.8)
	createCatalogProduct(t, repo, "Peony Premium", constants.CategoryPeonies, 89.00, []string{"Pink"}, false, 4.9)

	min := 12.00
	max := 45.99
	products, total, err := repo.List(CatalogFilter{MinPrice: &min, MaxPrice: &max, PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("price range should be inclusive on both ends, want 2 got %d", total)
	}
	for _, p := range products {
		if p.Name == "Peony Premium" {
			t.Fatalf("peony should be excluded by max price")
		}
	}
}

func TestListFiltersByColor(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createCatalogProduct(t, repo, "Crimson Rose Bouquet", constants.CategoryRoses, 45.99, []string{"Red", "Burgundy"}, true, 4.8)
	createCatalogProduct(t, repo, "White Orchid Stem", constants.CategoryOrchids, 29.50, []string{"White"}, false, 4.2)

	products, total, err := repo.List(CatalogFilter{Color: "Red", PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("want 1 red product, got total=%d len=%d", total, len(products))
	}
	if products[0].Name != "Crimson Rose Bouquet" {
		t.Fatalf("unexpected product: %s", products[0].Name)
	}
}

func TestListFiltersByFeatured(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createCatalogProduct(t, repo, "Crimson Rose Bouquet", constants.CategoryRoses, 45.99, []string{"Red"}, true, 4.8)
	createCatalogProduct(t, repo, "White Orchid Stem", constants.CategoryOrchids, 29.50, []string{"White"}, false, 4.2)

	featured := true
	products, total, err := repo.List(CatalogFilter{Featured: &featured, PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || products[0].Name != "Crimson Rose Bouquet" {
		t.Fatalf("featured filter failed: total=%d", total)
	}
}

func TestListSortOrders(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	cheap := createCatalogProduct(t, repo, "Budget Daisies", constants.CategoryDaisies, 12.00, nil, false, 3.9)
	pricey := createCatalogProduct(t, repo, "Peony Premium", constants.CategoryPeonies, 89.00, []string{"Pink"}, false, 4.9)
	// Make the cheap product clearly newer.
	if err := db.Model(&models.Product{}).Where("id = ?", cheap.ID).
		Update("created_at", time.Now().Add(time.Hour)).Error; err != nil {
		t.Fatalf("bump created_at failed: %v", err)
	}

	asc, _, err := repo.List(CatalogFilter{SortBy: constants.SortPriceAsc, PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list price-asc failed: %v", err)
	}
	if asc[0].ID != cheap.ID {
		t.Fatalf("price-asc should start with cheapest")
	}

	desc, _, err := repo.List(CatalogFilter{SortBy: constants.SortPriceDesc, PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list price-desc failed: %v", err)
	}
	if desc[0].ID != pricey.ID {
		t.Fatalf("price-desc should start with priciest")
	}

	byRating, _, err := repo.List(CatalogFilter{SortBy: constants.SortRating, PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list rating failed: %v", err)
	}
	if byRating[0].ID != pricey.ID {
		t.Fatalf("rating sort should start with highest rated")
	}

	newest, _, err := repo.List(CatalogFilter{PageSize: 20, Page: 1})
	if err != nil {
		t.Fatalf("list newest failed: %v", err)
	}
	if newest[0].ID != cheap.ID {
		t.Fatalf("default sort should start with newest")
	}
}

func TestSearchByNameCapsResults(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	for i := 0; i < 15; i++ {
		createCatalogProduct(t, repo, "Rose Mix", constants.CategoryRoses, 20.00, nil, false, 4.0)
	}

	products, err := repo.SearchByName("rose", constants.SearchResultLimit)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != constants.SearchResultLimit {
		t.Fatalf("search should cap at %d, got %d", constants.SearchResultLimit, len(products))
	}
}

func TestSearchByNameEmptyKeyword(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createCatalogProduct(t, repo, "Crimson Rose Bouquet", constants.CategoryRoses, 45.99, []string{"Red"}, true, 4.8)

	products, err := repo.SearchByName("   ", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("blank keyword should return no rows, got %d", len(products))
	}
}

func TestAdjustStockRefusesNegative(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createCatalogProduct(t, repo, "Crimson Rose Bouquet", constants.CategoryRoses, 45.99, []string{"Red"}, true, 4.8)

	rows, err := repo.AdjustStock(product.ID, -5)
	if err != nil {
		t.Fatalf("adjust stock failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("adjust within stock should update 1 row, got %d", rows)
	}

	rows, err = repo.AdjustStock(product.ID, -100)
	if err != nil {
		t.Fatalf("adjust stock failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("overdraw should update 0 rows, got %d", rows)
	}
}
