package repository

import (
	"context"
	"testing"
	"time"

	"olshop/internal/config"
	"olshop/internal/database"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS Products (
		Id SERIAL PRIMARY KEY,
		Name VARCHAR(255) NOT NULL,
		Category VARCHAR(100) NOT NULL,
		Price DECIMAL(10, 2) NOT NULL,
		OldPrice DECIMAL(10, 2),
		Description TEXT NOT NULL DEFAULT '',
		Material VARCHAR(100) NOT NULL DEFAULT '',
		Dimensions VARCHAR(100) NOT NULL DEFAULT '',
		Weight INTEGER NOT NULL DEFAULT 0,
		Rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		ReviewCount INTEGER NOT NULL DEFAULT 0,
		ImageUrl VARCHAR(500) NOT NULL DEFAULT '',
		IsFeatured BOOLEAN NOT NULL DEFAULT FALSE,
		IsBestSeller BOOLEAN NOT NULL DEFAULT FALSE,
		Status VARCHAR(50) NOT NULL DEFAULT 'In Stock'
	)`,
	`CREATE TABLE IF NOT EXISTS GalleryImages (ProductId INTEGER NOT NULL, ImageUrl VARCHAR(500) NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS ProductColors (ProductId INTEGER NOT NULL, Color VARCHAR(100) NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS ProductTags (ProductId INTEGER NOT NULL, Tag VARCHAR(100) NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS ProductFeatures (ProductId INTEGER NOT NULL, Feature VARCHAR(255) NOT NULL)`,
}

// TestPostgresRoundTrip exercises the RETURNING-based insert path against a
// real Postgres. It skips when no container runtime is available.
func TestPostgresRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	dbContainer, err := postgres.Run(
		ctx,
		"postgres:15",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		dbContainer.Terminate(context.Background())
	})

	host, err := dbContainer.Host(ctx)
	require.NoError(t, err)
	port, err := dbContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := "postgres://user:password@" + host + ":" + port.Port() + "/testdb?sslmode=disable"
	factory := database.NewConnectionFactory(config.DatabaseConfig{
		Driver:            "postgresql",
		ConnectionStrings: map[string]string{"postgresql": dsn},
	})

	db, err := factory.CreateConnection()
	require.NoError(t, err)
	for _, stmt := range postgresSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	db.Close()

	repo := NewProductRepository(factory, zap.NewNop())

	p := sampleProduct()
	id, err := repo.AddProduct(ctx, p)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, p.Name, got.Name)
	require.True(t, p.Price.Equal(got.Price))
	require.ElementsMatch(t, p.Colors, got.Colors)
	require.ElementsMatch(t, p.Tags, got.Tags)

	// Update replaces children on Postgres the same way.
	got.Colors = []string{"Olive"}
	require.NoError(t, repo.UpdateProduct(ctx, got))

	updated, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"Olive"}, updated.Colors)

	// Category filter and pagination both run through the shared dialect.
	byCategory, err := repo.GetProductsByCategory(ctx, p.Category)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	page, err := repo.GetProductsPage(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)

	require.NoError(t, repo.DeleteProduct(ctx, id))
	gone, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, gone)
}
