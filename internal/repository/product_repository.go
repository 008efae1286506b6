package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the catalog data access interface.
type ProductRepository interface {
	List(filter CatalogFilter) ([]models.Product, int64, error)
	SearchByName(keyword string, limit int) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	AdjustStock(productID uint, delta int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository is the GORM implementation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction runs fn inside a transaction.
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List returns a filtered, sorted, paginated slice of the catalog plus the
// total row count before pagination.
func (r *GormProductRepository) List(filter CatalogFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})

	if category := strings.TrimSpace(filter.Category); category != "" && category != constants.CategoryAll {
		query = query.Where("category = ?", category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if color := strings.TrimSpace(filter.Color); color != "" {
		condition, arg := jsonArrayContainsCondition(r.db, "colors", color)
		query = query.Where(condition, arg)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order(catalogOrderClause(filter.SortBy)).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func catalogOrderClause(sortBy string) string {
	switch strings.TrimSpace(sortBy) {
	case constants.SortPriceAsc:
		return "price ASC, id ASC"
	case constants.SortPriceDesc:
		return "price DESC, id ASC"
	case constants.SortRating:
		return "rating DESC, id ASC"
	default: // newest
		return "created_at DESC, id DESC"
	}
}

// SearchByName finds products whose name contains the keyword,
// case-insensitively, capped at limit rows.
func (r *GormProductRepository) SearchByName(keyword string, limit int) ([]models.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.Product{}, nil
	}
	if limit <= 0 {
		limit = constants.SearchResultLimit
	}
	var products []models.Product
	condition := fmt.Sprintf("name %s ?", likeOperator(r.db))
	if err := r.db.Where(condition, "%"+keyword+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID fetches one product, returning nil when absent.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs fetches products in bulk.
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a product.
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update saves a product.
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete soft-deletes a product.
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// AdjustStock atomically changes stock by delta, refusing to go negative.
// Returns the number of rows updated (0 means insufficient stock or no row).
func (r *GormProductRepository) AdjustStock(productID uint, delta int) (int64, error) {
	if productID == 0 || delta == 0 {
		return 0, errors.New("invalid stock adjust params")
	}
	query := r.db.Model(&models.Product{}).Where("id = ?", productID)
	if delta < 0 {
		query = query.Where("stock >= ?", -delta)
	}
	result := query.Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
