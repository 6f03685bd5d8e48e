package domain

import "github.com/shopspring/decimal"

// Sort keys accepted by the catalog listing.
const (
	SortNewest       = "newest"
	SortPriceLowHigh = "price-low-high"
	SortPriceHighLow = "price-high-low"
	SortBestSelling  = "best-selling"
	SortRating       = "rating"
)

// ValidPageSizes are the page sizes the catalog listing accepts; anything
// else is normalized to the first entry.
var ValidPageSizes = []int{10, 25, 50, 100}

// ProductFilter carries storefront filtering, sorting, and pagination
// parameters. Zero values mean "no constraint".
type ProductFilter struct {
	Search       string           `json:"search"`
	Categories   []string         `json:"categories"`
	PriceMin     *decimal.Decimal `json:"price_min"`
	PriceMax     *decimal.Decimal `json:"price_max"`
	Colors       []string         `json:"colors"`
	MinRating    *int             `json:"min_rating"`
	Status       ProductStatus    `json:"status"`
	IsFeatured   *bool            `json:"is_featured"`
	IsBestSeller *bool            `json:"is_best_seller"`
	SortBy       string           `json:"sort_by"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
}

// Normalize clamps the page to 1-based and the page size to one of
// ValidPageSizes.
func (f *ProductFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}

	for _, size := range ValidPageSizes {
		if f.PageSize == size {
			return
		}
	}
	f.PageSize = ValidPageSizes[0]
}
