package product

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"freshsip_back_end/internal/database"
	"freshsip_back_end/internal/models"
	"freshsip_back_end/internal/services"
	"freshsip_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 12
	listCacheTTL    = 10 * time.Minute
	storeTimeout    = 10 * time.Second
)

type Handler struct {
	products store.ProductStore
}

func NewHandler(products store.ProductStore) *Handler {
	return &Handler{products: products}
}

// Pagination is the envelope accompanying every catalog page.
type Pagination struct {
	CurrentPage   int64 `json:"currentPage"`
	TotalPages    int64 `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
	HasNext       bool  `json:"hasNext"`
	HasPrev       bool  `json:"hasPrev"`
}

type listResponse struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// ListProducts returns a filtered, sorted page of the catalog. Read-only;
// responses are cached briefly in Redis keyed by the query string.
func (h *Handler) ListProducts(c *gin.Context) {
	query := parseQuery(c)

	cacheKey := "products:" + c.Request.URL.RawQuery
	if database.Redis != nil {
		if cached, err := database.Redis.Get(c.Request.Context(), cacheKey).Result(); err == nil && cached != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	products, total, err := h.products.Find(ctx, query)
	if err != nil {
		serverError(c, "Server error", err)
		return
	}

	resp := listResponse{
		Products:   products,
		Pagination: BuildPagination(query.Page, query.Limit, total),
	}

	if database.Redis != nil {
		if data, err := json.Marshal(resp); err == nil {
			database.Redis.Set(c.Request.Context(), cacheKey, data, listCacheTTL)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetProduct returns a single catalog entry by id.
func (h *Handler) GetProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	product, err := h.products.FindByID(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	if err != nil {
		serverError(c, "Server error", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// SearchProducts searches the catalog, Elasticsearch first with a MongoDB
// regex scan as fallback.
func (h *Handler) SearchProducts(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing query parameter 'q'"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	if results, err := services.SearchProducts(ctx, q); err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	products, _, err := h.products.Find(ctx, store.ProductQuery{
		Search: q,
		Page:   1,
		Limit:  defaultPageSize,
	})
	if err != nil {
		serverError(c, "Server error", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// BuildPagination computes the envelope for a page of total matches.
func BuildPagination(page, limit, total int64) Pagination {
	totalPages := int64(math.Ceil(float64(total) / float64(limit)))
	return Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: total,
		HasNext:       page < totalPages,
		HasPrev:       page > 1,
	}
}

func parseQuery(c *gin.Context) store.ProductQuery {
	q := store.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.DefaultQuery("sort", store.SortFeatured),
		Page:     1,
		Limit:    defaultPageSize,
	}

	if page, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && limit > 0 {
		q.Limit = limit
	}
	if min, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		q.MinPrice = &min
	}
	if max, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		q.MaxPrice = &max
	}

	return q
}

func serverError(c *gin.Context, message string, err error) {
	body := gin.H{"message": message}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
