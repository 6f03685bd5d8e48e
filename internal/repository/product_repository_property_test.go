package repository

import (
	"context"
	"testing"

	"olshop/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func TestProperty_AddProductPreservesAggregate(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("adding and retrieving a product preserves scalars and collections", prop.ForAll(
		func(name string, category string, price float64, rating float64, colors []string, tags []string) bool {
			p := domain.NewProduct()
			p.Name = name
			p.Category = category
			p.Price = decimal.NewFromFloat(price)
			p.Rating = rating
			p.Status = domain.StatusInStock
			p.Colors = colors
			p.Tags = tags

			id, err := repo.AddProduct(ctx, p)
			if err != nil {
				t.Logf("FAIL: add: %v", err)
				return false
			}

			got, err := repo.GetProductByID(ctx, id)
			if err != nil || got == nil {
				t.Logf("FAIL: read back: %v", err)
				return false
			}

			if got.Name != name || got.Category != category {
				return false
			}
			if !got.Price.Equal(p.Price) {
				t.Logf("FAIL: price %s != %s", got.Price, p.Price)
				return false
			}
			if got.Rating != rating {
				return false
			}
			if !sameMultiset(colors, got.Colors) || !sameMultiset(tags, got.Tags) {
				t.Logf("FAIL: collections differ")
				return false
			}
			if len(got.GalleryImages) != 0 || len(got.Features) != 0 {
				return false
			}
			return true
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Float64Range(0, 100000),
		gen.Float64Range(0, 5),
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("updating twice with the same payload leaves one copy of each child row", prop.ForAll(
		func(colors []string) bool {
			p := domain.NewProduct()
			p.Name = "Update Target"
			p.Category = "Bags"
			p.Price = decimal.NewFromInt(10)
			p.Status = domain.StatusInStock

			id, err := repo.AddProduct(ctx, p)
			if err != nil {
				return false
			}

			p.ID = id
			p.Colors = colors
			if err := repo.UpdateProduct(ctx, p); err != nil {
				return false
			}
			if err := repo.UpdateProduct(ctx, p); err != nil {
				return false
			}

			got, err := repo.GetProductByID(ctx, id)
			if err != nil || got == nil {
				return false
			}
			return sameMultiset(colors, got.Colors)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// sameMultiset compares two string slices ignoring order but counting
// duplicates; the repository must persist duplicates as supplied.
func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}
