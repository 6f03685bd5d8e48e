package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"olshop/internal/domain"
	"olshop/internal/middleware"
	"olshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// storefrontStripLimit caps the featured and best-seller strips.
const storefrontStripLimit = 4

// ProductHandler serves the storefront catalog endpoints.
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers all storefront routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/featured", h.FeaturedProducts)
		r.Get("/best-sellers", h.BestSellerProducts)
		r.Get("/{id}", h.ProductDetail)
	})
	r.Get("/api/categories/{category}/products", h.ProductsByCategory)
}

// ListProducts handles the filtered, sorted, paginated catalog listing
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, page)
}

// ProductDetail handles the product detail view with related products
func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	detail, err := h.catalog.ProductDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product detail", zap.Int64("product_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

// FeaturedProducts handles the featured products strip
func (h *ProductHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.FeaturedProducts(r.Context(), storefrontStripLimit)
	if err != nil {
		h.logger.Error("Failed to get featured products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get featured products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// BestSellerProducts handles the best sellers strip
func (h *ProductHandler) BestSellerProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.BestSellerProducts(r.Context(), storefrontStripLimit)
	if err != nil {
		h.logger.Error("Failed to get best seller products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get best seller products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ProductsByCategory handles category listings
func (h *ProductHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	products, err := h.catalog.ProductsByCategory(r.Context(), category)
	if err != nil {
		h.logger.Error("Failed to get products by category", zap.String("category", category), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// parseFilter reads storefront filter parameters from the query string.
func parseFilter(r *http.Request) (domain.ProductFilter, error) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Search: q.Get("search"),
		SortBy: q.Get("sort"),
		Status: domain.ProductStatus(q.Get("status")),
	}

	if raw := q.Get("categories"); raw != "" {
		filter.Categories = strings.Split(raw, ",")
	}
	if raw := q.Get("colors"); raw != "" {
		filter.Colors = strings.Split(raw, ",")
	}

	if raw := q.Get("price_min"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid price_min")
		}
		filter.PriceMin = &min
	}
	if raw := q.Get("price_max"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, errors.New("invalid price_max")
		}
		filter.PriceMax = &max
	}

	if raw := q.Get("min_rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid min_rating")
		}
		filter.MinRating = &rating
	}

	for param, dest := range map[string]**bool{
		"featured":    &filter.IsFeatured,
		"best_seller": &filter.IsBestSeller,
	} {
		if raw := q.Get(param); raw != "" {
			value, err := strconv.ParseBool(raw)
			if err != nil {
				return filter, errors.New("invalid " + param)
			}
			*dest = &value
		}
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid page")
		}
		filter.Page = page
	}
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid page_size")
		}
		filter.PageSize = size
	}

	return filter, nil
}
