package domain

import (
	"github.com/shopspring/decimal"
)

// ProductStatus is the stock status shown in the catalog.
type ProductStatus string

const (
	StatusInStock    ProductStatus = "In Stock"
	StatusLowStock   ProductStatus = "Low Stock"
	StatusOutOfStock ProductStatus = "Out of Stock"
)

// Product is the catalog aggregate root. The database assigns ID on insert;
// the four child collections are owned entirely by the product and are
// replaced wholesale on update, never patched row by row.
type Product struct {
	ID            int64               `json:"id" db:"Id"`
	Name          string              `json:"name" db:"Name"`
	Category      string              `json:"category" db:"Category"`
	Price         decimal.Decimal     `json:"price" db:"Price"`
	OldPrice      decimal.NullDecimal `json:"old_price" db:"OldPrice"`
	Description   string              `json:"description" db:"Description"`
	Material      string              `json:"material" db:"Material"`
	Dimensions    string              `json:"dimensions" db:"Dimensions"`
	Weight        int                 `json:"weight" db:"Weight"`
	Rating        float64             `json:"rating" db:"Rating"`
	ReviewCount   int                 `json:"review_count" db:"ReviewCount"`
	ImageURL      string              `json:"image_url" db:"ImageUrl"`
	GalleryImages []string            `json:"gallery_images"`
	Colors        []string            `json:"colors"`
	Tags          []string            `json:"tags"`
	Features      []string            `json:"features"`
	IsFeatured    bool                `json:"is_featured" db:"IsFeatured"`
	IsBestSeller  bool                `json:"is_best_seller" db:"IsBestSeller"`
	Status        ProductStatus       `json:"status" db:"Status"`
}

// NewProduct returns a product with empty, non-nil child collections so
// callers never need nil checks before ranging or appending.
func NewProduct() *Product {
	return &Product{
		GalleryImages: []string{},
		Colors:        []string{},
		Tags:          []string{},
		Features:      []string{},
	}
}
