package service

import (
	"strings"

	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/models"
	"github.com/botanical-decor/shop-api/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService owns catalog reads and admin catalog writes.
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a product service.
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// CatalogQuery is the public catalog list request after parsing.
type CatalogQuery struct {
	Page     int
	PageSize int
	Category string
	MinPrice *float64
	MaxPrice *float64
	Color    string
	Featured *bool
	SortBy   string
}

// UpsertProductInput is the admin create/update request.
type UpsertProductInput struct {
	Name             string
	Category         string
	Price            decimal.Decimal
	DiscountPrice    *decimal.Decimal
	Stock            int
	Description      string
	Colors           []string
	BunchesAvailable []int
	AdditionalInfo   map[string]interface{}
	ImageURL         string
	Rating           float64
	IsFeatured       bool
}

// List returns the filtered catalog page plus the pre-pagination total.
func (s *ProductService) List(query CatalogQuery) ([]models.Product, int64, error) {
	filter := repository.CatalogFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Category: query.Category,
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
		Color:    query.Color,
		Featured: query.Featured,
		SortBy:   normalizeSortBy(query.SortBy),
	}
	return s.repo.List(filter)
}

// Search returns at most the typeahead cap of name matches.
func (s *ProductService) Search(keyword string) ([]models.Product, error) {
	return s.repo.SearchByName(keyword, constants.SearchResultLimit)
}

// GetByID returns one product or ErrNotFound.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create adds a product to the catalog.
func (s *ProductService) Create(input UpsertProductInput) (*models.Product, error) {
	normalized, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}
	product := normalized
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces a product's fields.
func (s *ProductService) Update(id uint, input UpsertProductInput) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	normalized, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}
	normalized.ID = existing.ID
	normalized.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// Delete removes a product from the catalog.
func (s *ProductService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *ProductService) validateInput(input UpsertProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductInvalid
	}
	if !isAssignableCategory(input.Category) {
		return nil, ErrProductInvalid
	}
	price := input.Price.Round(2)
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductInvalid
	}
	if input.Stock < 0 {
		return nil, ErrProductInvalid
	}
	if input.Rating < 0 || input.Rating > 5 {
		return nil, ErrProductInvalid
	}

	product := &models.Product{
		Name:             name,
		Category:         input.Category,
		Price:            models.NewMoneyFromDecimal(price),
		Stock:            input.Stock,
		Description:      strings.TrimSpace(input.Description),
		Colors:           models.StringArray(input.Colors),
		BunchesAvailable: models.IntArray(input.BunchesAvailable),
		AdditionalInfo:   models.JSON(input.AdditionalInfo),
		ImageURL:         strings.TrimSpace(input.ImageURL),
		Rating:           input.Rating,
		IsFeatured:       input.IsFeatured,
	}

	if input.DiscountPrice != nil {
		discount := input.DiscountPrice.Round(2)
		// A sale price must actually be a sale.
		if discount.LessThanOrEqual(decimal.Zero) || discount.GreaterThanOrEqual(price) {
			return nil, ErrProductInvalid
		}
		m := models.NewMoneyFromDecimal(discount)
		product.DiscountPrice = &m
	}

	return product, nil
}

func isAssignableCategory(category string) bool {
	for _, c := range constants.ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

func normalizeSortBy(raw string) string {
	switch strings.TrimSpace(raw) {
	case constants.SortPriceAsc, constants.SortPriceDesc, constants.SortRating, constants.SortNewest:
		return strings.TrimSpace(raw)
	default:
		return constants.SortNewest
	}
}
