package service

import (
	"context"
	"testing"

	"olshop/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	repo := newMockRepo()
	svc := NewAdminService(repo)

	for i := 0; i < 7; i++ {
		addProduct(t, repo, "Bag", "Bags", float64(10+i), nil)
	}

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, stats.TotalProducts)
	require.True(t, decimal.NewFromFloat(12456.00).Equal(stats.TotalSales))
	require.Equal(t, 43, stats.NewOrders)
	require.Equal(t, 1258, stats.Customers)

	// Five most recent, newest first.
	require.Len(t, stats.RecentProducts, 5)
	require.Equal(t, int64(7), stats.RecentProducts[0].ID)
	require.Equal(t, int64(3), stats.RecentProducts[4].ID)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewAdminService(newMockRepo())
	ctx := context.Background()

	p := domain.NewProduct()
	p.Category = "Bags"
	p.Price = decimal.NewFromInt(10)
	_, err := svc.CreateProduct(ctx, p)
	require.ErrorIs(t, err, ErrInvalidProduct)

	p.Name = "Elegant Tote Bag"
	p.Price = decimal.NewFromInt(-1)
	_, err = svc.CreateProduct(ctx, p)
	require.ErrorIs(t, err, ErrInvalidProduct)

	p.Price = decimal.NewFromInt(10)
	p.Status = "Discontinued"
	_, err = svc.CreateProduct(ctx, p)
	require.ErrorIs(t, err, ErrInvalidProduct)
}

func TestCreateProductDefaultsStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewAdminService(repo)

	p := domain.NewProduct()
	p.Name = "Elegant Tote Bag"
	p.Category = "Bags"
	p.Price = decimal.NewFromInt(10)

	id, err := svc.CreateProduct(context.Background(), p)
	require.NoError(t, err)

	stored, err := svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusInStock, stored.Status)
}

func TestUpdateProductForcesID(t *testing.T) {
	repo := newMockRepo()
	svc := NewAdminService(repo)

	id := addProduct(t, repo, "Elegant Tote Bag", "Bags", 49.90, nil)

	p := domain.NewProduct()
	p.ID = 9001 // ignored; the route id wins
	p.Name = "Elegant Tote Bag v2"
	p.Category = "Bags"
	p.Price = decimal.NewFromInt(45)
	require.NoError(t, svc.UpdateProduct(context.Background(), id, p))

	stored, err := svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Elegant Tote Bag v2", stored.Name)
}

func TestGetProductNotFound(t *testing.T) {
	svc := NewAdminService(newMockRepo())

	_, err := svc.GetProduct(context.Background(), 404)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductsPageNormalizesArguments(t *testing.T) {
	repo := newMockRepo()
	svc := NewAdminService(repo)

	for i := 0; i < 3; i++ {
		addProduct(t, repo, "Bag", "Bags", 10, nil)
	}

	page, err := svc.ProductsPage(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)
}

func TestDeleteProductPassesThrough(t *testing.T) {
	repo := newMockRepo()
	svc := NewAdminService(repo)

	id := addProduct(t, repo, "Bag", "Bags", 10, nil)
	require.NoError(t, svc.DeleteProduct(context.Background(), id))

	_, err := svc.GetProduct(context.Background(), id)
	require.ErrorIs(t, err, ErrProductNotFound)
}
