package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"olshop/internal/domain"
	"olshop/internal/repository"
)

var ErrProductNotFound = errors.New("product not found")

// relatedLimit caps the related-products strip on the detail page.
const relatedLimit = 4

// ProductPage is one page of a filtered catalog listing.
type ProductPage struct {
	Products   []*domain.Product `json:"products"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// ProductDetail is a product plus its related-products strip.
type ProductDetail struct {
	Product *domain.Product   `json:"product"`
	Related []*domain.Product `json:"related"`
}

// CatalogService serves storefront reads: filtered listings, product detail
// with related products, and the featured/best-seller strips.
type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) (*ProductPage, error)
	ProductDetail(ctx context.Context, id int64) (*ProductDetail, error)
	FeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error)
	BestSellerProducts(ctx context.Context, limit int) ([]*domain.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error)
}

type catalogService struct {
	products repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(products repository.ProductRepository) CatalogService {
	return &catalogService{products: products}
}

// ListProducts applies the storefront filter, sort, and pagination over the
// full hydrated catalog. Filtering happens in memory: the catalog is small
// and the child collections (colors) take part in the predicate.
func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) (*ProductPage, error) {
	filter.Normalize()

	all, err := s.products.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Product, 0, len(all))
	for _, p := range all {
		if matchesFilter(p, &filter) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, filter.SortBy)

	total := len(matched)
	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}

	return &ProductPage{
		Products:   matched[start:end],
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

// ProductDetail returns the product and up to four others from the same
// category.
func (s *catalogService) ProductDetail(ctx context.Context, id int64) (*ProductDetail, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	sameCategory, err := s.products.GetProductsByCategory(ctx, product.Category)
	if err != nil {
		return nil, err
	}

	related := make([]*domain.Product, 0, relatedLimit)
	for _, p := range sameCategory {
		if p.ID == id {
			continue
		}
		related = append(related, p)
		if len(related) == relatedLimit {
			break
		}
	}

	return &ProductDetail{Product: product, Related: related}, nil
}

// FeaturedProducts returns up to limit featured products; limit <= 0 means no
// cap.
func (s *catalogService) FeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	products, err := s.products.GetFeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}
	return capProducts(products, limit), nil
}

// BestSellerProducts returns up to limit best sellers; limit <= 0 means no
// cap.
func (s *catalogService) BestSellerProducts(ctx context.Context, limit int) ([]*domain.Product, error) {
	products, err := s.products.GetBestSellerProducts(ctx)
	if err != nil {
		return nil, err
	}
	return capProducts(products, limit), nil
}

func (s *catalogService) ProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.products.GetProductsByCategory(ctx, category)
}

func capProducts(products []*domain.Product, limit int) []*domain.Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}

func matchesFilter(p *domain.Product, f *domain.ProductFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}

	if len(f.Categories) > 0 && !containsFold(f.Categories, p.Category) {
		return false
	}

	if f.PriceMin != nil && p.Price.LessThan(*f.PriceMin) {
		return false
	}
	if f.PriceMax != nil && p.Price.GreaterThan(*f.PriceMax) {
		return false
	}

	if len(f.Colors) > 0 {
		found := false
		for _, want := range f.Colors {
			if containsFold(p.Colors, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.MinRating != nil && p.Rating < float64(*f.MinRating) {
		return false
	}

	if f.Status != "" && p.Status != f.Status {
		return false
	}

	if f.IsFeatured != nil && p.IsFeatured != *f.IsFeatured {
		return false
	}
	if f.IsBestSeller != nil && p.IsBestSeller != *f.IsBestSeller {
		return false
	}

	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, v := range haystack {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}

// sortProducts orders the listing in place. Unknown sort keys fall back to
// newest-first.
func sortProducts(products []*domain.Product, sortBy string) {
	switch sortBy {
	case domain.SortPriceLowHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case domain.SortPriceHighLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case domain.SortBestSelling:
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].IsBestSeller != products[j].IsBestSeller {
				return products[i].IsBestSeller
			}
			return products[i].ReviewCount > products[j].ReviewCount
		})
	case domain.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	}
}
