package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/botanical-decor/shop-api/internal/http/handlers/shared"
	"github.com/botanical-decor/shop-api/internal/http/response"
	"github.com/botanical-decor/shop-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name             string                 `json:"name" binding:"required"`
	Category         string                 `json:"category" binding:"required"`
	Price            decimal.Decimal        `json:"price"`
	DiscountPrice    *decimal.Decimal       `json:"discount_price"`
	Stock            int                    `json:"stock"`
	Description      string                 `json:"description"`
	Colors           []string               `json:"colors"`
	BunchesAvailable []int                  `json:"bunches_available"`
	AdditionalInfo   map[string]interface{} `json:"additional_info"`
	ImageURL         string                 `json:"image_url"`
	Rating           float64                `json:"rating"`
	IsFeatured       bool                   `json:"is_featured"`
}

func (r ProductRequest) toInput() service.UpsertProductInput {
	return service.UpsertProductInput{
		Name:             r.Name,
		Category:         r.Category,
		Price:            r.Price,
		DiscountPrice:    r.DiscountPrice,
		Stock:            r.Stock,
		Description:      r.Description,
		Colors:           r.Colors,
		BunchesAvailable: r.BunchesAvailable,
		AdditionalInfo:   r.AdditionalInfo,
		ImageURL:         r.ImageURL,
		Rating:           r.Rating,
		IsFeatured:       r.IsFeatured,
	}
}

// ListProducts returns catalog pages for the management UI. The same
// filters as the storefront list apply.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	query := service.CatalogQuery{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		SortBy:   strings.TrimSpace(c.Query("sort_by")),
	}
	products, total, err := h.ProductService.List(query)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct returns one catalog item.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondProductError(c, err, "failed to load product")
		return
	}
	response.Success(c, product)
}

// CreateProduct adds a catalog item.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err, "failed to create product")
		return
	}
	response.Success(c, product)
}

// UpdateProduct replaces a catalog item's attributes.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondProductError(c, err, "failed to update product")
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a catalog item. Existing order snapshots keep the
// product's name and prices.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondProductError(c, err, "failed to delete product")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondProductError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}
