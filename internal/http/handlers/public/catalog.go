package public

import (
	"strconv"
	"strings"

	handlershared "github.com/botanical-decor/shop-api/internal/http/handlers/shared"
	"github.com/botanical-decor/shop-api/internal/http/response"
	"github.com/botanical-decor/shop-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts returns a filtered, sorted catalog page.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	query := service.CatalogQuery{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Color:    strings.TrimSpace(c.Query("color")),
		SortBy:   strings.TrimSpace(c.Query("sort_by")),
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			query.MinPrice = &v
		} else {
			respondError(c, response.CodeBadRequest, "invalid min_price", nil)
			return
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			query.MaxPrice = &v
		} else {
			respondError(c, response.CodeBadRequest, "invalid max_price", nil)
			return
		}
	}
	if raw := c.Query("featured"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			query.Featured = &v
		} else {
			respondError(c, response.CodeBadRequest, "invalid featured", nil)
			return
		}
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
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrNotFound, code: response.CodeNotFound, msg: "product not found"},
		}, response.CodeInternal, "failed to load product")
		return
	}
	response.Success(c, product)
}

// SearchProducts matches product names case-insensitively. Results are
// capped, no ranking.
func (h *Handler) SearchProducts(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("query"))
	if keyword == "" {
		respondError(c, response.CodeBadRequest, "query is required", nil)
		return
	}
	products, err := h.ProductService.Search(keyword)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to search products", err)
		return
	}
	response.Success(c, gin.H{"items": products})
}
