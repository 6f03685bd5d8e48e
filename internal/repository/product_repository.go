package repository

import (
	"context"
	"database/sql"
	"fmt"

	"olshop/internal/database"
	"olshop/internal/dialect"
	"olshop/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRepository defines the interface for product data access. Every
// operation opens its own connection through the factory and releases it on
// completion, so implementations carry no cross-call state.
type ProductRepository interface {
	// GetAllProducts returns every product, fully hydrated with its four
	// child collections.
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	// GetProductByID returns the product with the given id, or nil when no
	// such product exists. Absence is not an error.
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetFeaturedProducts(ctx context.Context) ([]*domain.Product, error)
	GetBestSellerProducts(ctx context.Context) ([]*domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	// GetProductsPage returns one page of products ordered by id. Page is
	// 1-based.
	GetProductsPage(ctx context.Context, page, pageSize int) ([]*domain.Product, error)
	// AddProduct inserts the product and its child collections in one
	// transaction and returns the database-assigned id. Any id on the
	// incoming product is ignored.
	AddProduct(ctx context.Context, product *domain.Product) (int64, error)
	// UpdateProduct rewrites the root row and replaces all four child
	// collections in one transaction. Updating an id that does not exist
	// succeeds with no visible change.
	UpdateProduct(ctx context.Context, product *domain.Product) error
	// DeleteProduct removes the child rows and then the root row in one
	// transaction. Deleting an id that does not exist is not an error.
	DeleteProduct(ctx context.Context, id int64) error
	GetTotalProductCount(ctx context.Context) (int, error)

	// Dashboard stand-ins for a future orders/customers subsystem. These
	// return fixed figures and carry no real business logic.
	GetTotalSales(ctx context.Context) (decimal.Decimal, error)
	GetNewOrdersCount(ctx context.Context) (int, error)
	GetCustomersCount(ctx context.Context) (int, error)
}

// querier is satisfied by both *sql.DB and *sql.Tx so reads can run inside or
// outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const productColumns = "Id, Name, Category, Price, OldPrice, Description, Material, " +
	"Dimensions, Weight, Rating, ReviewCount, ImageUrl, IsFeatured, IsBestSeller, Status"

var productInsertColumns = []string{
	"Name", "Category", "Price", "OldPrice", "Description", "Material",
	"Dimensions", "Weight", "Rating", "ReviewCount", "ImageUrl",
	"IsFeatured", "IsBestSeller", "Status",
}

// childCollections maps each child table to its value column and a selector
// for the owning product's slice.
var childCollections = []struct {
	table  string
	column string
	slice  func(*domain.Product) *[]string
}{
	{"GalleryImages", "ImageUrl", func(p *domain.Product) *[]string { return &p.GalleryImages }},
	{"ProductColors", "Color", func(p *domain.Product) *[]string { return &p.Colors }},
	{"ProductTags", "Tag", func(p *domain.Product) *[]string { return &p.Tags }},
	{"ProductFeatures", "Feature", func(p *domain.Product) *[]string { return &p.Features }},
}

type productRepository struct {
	factory *database.ConnectionFactory
	logger  *zap.Logger
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(factory *database.ConnectionFactory, logger *zap.Logger) ProductRepository {
	return &productRepository{factory: factory, logger: logger}
}

// GetAllProducts returns all products with their child collections loaded.
func (r *productRepository) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	db, driver, err := r.connect()
	if err != nil {
		r.logger.Error("Failed to retrieve all products", zap.Error(err))
		return nil, err
	}
	defer db.Close()

	products, err := r.queryProducts(ctx, db, driver, "SELECT "+productColumns+" FROM Products")
	if err != nil {
		r.logger.Error("Failed to retrieve all products", zap.Error(err))
		return nil, err
	}

	return products, nil
}

// GetProductByID returns the product with the given id, or nil when absent.
func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	db, driver, err := r.connect()
	if err != nil {
		r.logger.Error("Failed to retrieve product", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}
	defer db.Close()

	query := driver.Rebind("SELECT " + productColumns + " FROM Products WHERE Id = ?")
	product, err := scanProduct(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to retrieve product", zap.Int64("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to query product %d: %w", id, err)
	}

	if err := r.loadCollections(ctx, db, driver, product); err != nil {
		r.logger.Error("Failed to load product collections", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}

	return product, nil
}

// GetFeaturedProducts returns products flagged as featured.
func (r *productRepository) GetFeaturedProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.getProductsByFlag(ctx, "IsFeatured", "featured")
}

// GetBestSellerProducts returns products flagged as best sellers.
func (r *productRepository) GetBestSellerProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.getProductsByFlag(ctx, "IsBestSeller", "best seller")
}

func (r *productRepository) getProductsByFlag(ctx context.Context, column, label string) ([]*domain.Product, error) {
	db, driver, err := r.connect()
	if err != nil {
		r.logger.Error("Failed to retrieve "+label+" products", zap.Error(err))
		return nil, err
	}
	defer db.Close()

	query := driver.Rebind("SELECT " + productColumns + " FROM Products WHERE " + column + " = ?")
	products, err := r.queryProducts(ctx, db, driver, query, true)
	if err != nil {
		r.logger.Error("Failed to retrieve "+label+" products", zap.Error(err))
		return nil, err
	}

	return products, nil
}

// GetProductsByCategory returns products whose category matches. Case
// sensitivity is whatever the underlying database enforces for equality.
func (r *productRepository) GetProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	db, driver, err := r.connect()
	if err != nil {
		r.logger.Error("Failed to retrieve products by category", zap.String("category", category), zap.Error(err))
		return nil, err
	}
	defer db.Close()

	query := driver.Rebind("SELECT " + productColumns + " FROM Products WHERE Category = ?")
	products, err := r.queryProducts(ctx, db, driver, query, category)
	if err != nil {
		r.logger.Error("Failed to retrieve products by category", zap.String("category", category), zap.Error(err))
		return nil, err
	}

	return products, nil
}

// GetProductsPage returns one page of products ordered by id.
func (r *productRepository) GetProductsPage(ctx context.Context, page, pageSize int) ([]*domain.Product, error) {
	db, driver, err := r.connect()
	if err != nil {
		r.logger.Error("Failed to retrieve product page", zap.Int("page", page), zap.Error(err))
		return nil, err
	}
	defer db.Close()

	query, err := driver.PaginationQuery("SELECT "+productColumns+" FROM Products ORDER BY Id", page, pageSize)
	if err != nil {
		return nil, err
	}

	products, err := r.queryProducts(ctx, db, driver, query)
	if err != nil {
		r.logger.Error("Failed to retrieve product page", zap.Int("page", page), zap.Error(err))
		return nil, err
	}

	return products, nil
}

// AddProduct inserts the product aggregate in one transaction and returns
// the database-assigned id.
func (r *productRepository) AddProduct(ctx context.Context, product *domain.Product) (int64, error) {
	db, driver, err := r.connect()
	if err != nil {
		r.logger.Error("Failed to add product", zap.String("name", product.Name), zap.Error(err))
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to add product", zap.String("name", product.Name), zap.Error(err))
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := r.insertProductRow(ctx, tx, driver, product)
	if err != nil {
		r.logger.Error("Failed to add product", zap.String("name", product.Name), zap.Error(err))
		return 0, err
	}

	if err := insertCollections(ctx, tx, driver, id, product); err != nil {
		r.logger.Error("Failed to add product", zap.String("name", product.Name), zap.Error(err))
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to add product", zap.String("name", product.Name), zap.Error(err))
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// UpdateProduct rewrites the root row and replaces all child collections in
// one transaction.
func (r *productRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	db, driver, err := r.connect()
	if err != nil {
		r.logger.Error("Failed to update product", zap.Int64("product_id", product.ID), zap.Error(err))
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Int64("product_id", product.ID), zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := driver.Rebind(`UPDATE Products
		SET Name = ?, Category = ?, Price = ?, OldPrice = ?, Description = ?,
		    Material = ?, Dimensions = ?, Weight = ?, Rating = ?, ReviewCount = ?,
		    ImageUrl = ?, IsFeatured = ?, IsBestSeller = ?, Status = ?
		WHERE Id = ?`)

	args := append(productArgs(product), product.ID)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to update product", zap.Int64("product_id", product.ID), zap.Error(err))
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}

	if err := deleteCollections(ctx, tx, driver, product.ID); err != nil {
		r.logger.Error("Failed to update product", zap.Int64("product_id", product.ID), zap.Error(err))
		return err
	}

	if err := insertCollections(ctx, tx, driver, product.ID, product); err != nil {
		r.logger.Error("Failed to update product", zap.Int64("product_id", product.ID), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to update product", zap.Int64("product_id", product.ID), zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteProduct removes the product and its child rows in one transaction.
func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	db, driver, err := r.connect()
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Child rows go first so the root row never orphans them.
	if err := deleteCollections(ctx, tx, driver, id); err != nil {
		r.logger.Error("Failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return err
	}

	query := driver.Rebind("DELETE FROM Products WHERE Id = ?")
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("Failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTotalProductCount returns the number of products.
func (r *productRepository) GetTotalProductCount(ctx context.Context) (int, error) {
	db, _, err := r.connect()
	if err != nil {
		r.logger.Error("Failed to count products", zap.Error(err))
		return 0, err
	}
	defer db.Close()

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Products").Scan(&count); err != nil {
		r.logger.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// GetTotalSales returns a fixed demo figure until an orders subsystem exists.
func (r *productRepository) GetTotalSales(ctx context.Context) (decimal.Decimal, error) {
	return decimal.NewFromFloat(12456.00), nil
}

// GetNewOrdersCount returns a fixed demo figure until an orders subsystem exists.
func (r *productRepository) GetNewOrdersCount(ctx context.Context) (int, error) {
	return 43, nil
}

// GetCustomersCount returns a fixed demo figure until a customers subsystem exists.
func (r *productRepository) GetCustomersCount(ctx context.Context) (int, error) {
	return 1258, nil
}

// connect scopes a fresh connection handle and the matching dialect to one
// repository call.
func (r *productRepository) connect() (*sql.DB, dialect.Driver, error) {
	driver, err := r.factory.Driver()
	if err != nil {
		return nil, 0, err
	}

	db, err := r.factory.CreateConnection()
	if err != nil {
		return nil, 0, err
	}

	return db, driver, nil
}

// queryProducts runs a multi-row product query and hydrates every result's
// child collections with four supplementary queries per product.
func (r *productRepository) queryProducts(ctx context.Context, q querier, driver dialect.Driver, query string, args ...any) ([]*domain.Product, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	for _, product := range products {
		if err := r.loadCollections(ctx, q, driver, product); err != nil {
			return nil, err
		}
	}

	return products, nil
}

// loadCollections hydrates the four child collections of a product, always
// issuing one query per collection.
func (r *productRepository) loadCollections(ctx context.Context, q querier, driver dialect.Driver, product *domain.Product) error {
	for _, c := range childCollections {
		query := driver.Rebind("SELECT " + c.column + " FROM " + c.table + " WHERE ProductId = ?")

		rows, err := q.QueryContext(ctx, query, product.ID)
		if err != nil {
			return fmt.Errorf("failed to load %s for product %d: %w", c.table, product.ID, err)
		}

		values := []string{}
		for rows.Next() {
			var value string
			if err := rows.Scan(&value); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan %s row: %w", c.table, err)
			}
			values = append(values, value)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("error iterating %s rows: %w", c.table, err)
		}
		rows.Close()

		*c.slice(product) = values
	}

	return nil
}

// insertProductRow inserts the root row and returns the database-assigned id
// using the dialect's native mechanism: RETURNING where the insert yields the
// id directly, otherwise the insert followed by the dialect's last-insert-id
// query on the same transaction.
func (r *productRepository) insertProductRow(ctx context.Context, tx *sql.Tx, driver dialect.Driver, product *domain.Product) (int64, error) {
	args := productArgs(product)

	if driver.ReturnsInsertedID() {
		query, err := driver.InsertQuery("Products", productInsertColumns)
		if err != nil {
			return 0, err
		}

		var id int64
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert product: %w", err)
		}
		return id, nil
	}

	stmt, err := driver.InsertStatement("Products", productInsertColumns)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	lastID, err := driver.LastInsertIDQuery()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := tx.QueryRowContext(ctx, lastID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to fetch inserted product id: %w", err)
	}
	return id, nil
}

// insertCollections writes one row per child-collection element, skipping
// empty collections.
func insertCollections(ctx context.Context, tx *sql.Tx, driver dialect.Driver, productID int64, product *domain.Product) error {
	for _, c := range childCollections {
		values := *c.slice(product)
		if len(values) == 0 {
			continue
		}

		stmt, err := driver.InsertStatement(c.table, []string{"ProductId", c.column})
		if err != nil {
			return err
		}

		for _, value := range values {
			if _, err := tx.ExecContext(ctx, stmt, productID, value); err != nil {
				return fmt.Errorf("failed to insert %s row for product %d: %w", c.table, productID, err)
			}
		}
	}

	return nil
}

// deleteCollections removes every child row belonging to the product.
func deleteCollections(ctx context.Context, tx *sql.Tx, driver dialect.Driver, productID int64) error {
	for _, c := range childCollections {
		query := driver.Rebind("DELETE FROM " + c.table + " WHERE ProductId = ?")
		if _, err := tx.ExecContext(ctx, query, productID); err != nil {
			return fmt.Errorf("failed to delete %s rows for product %d: %w", c.table, productID, err)
		}
	}

	return nil
}

// productArgs lists the root-row values in productInsertColumns order.
func productArgs(product *domain.Product) []any {
	return []any{
		product.Name,
		product.Category,
		product.Price,
		product.OldPrice,
		product.Description,
		product.Material,
		product.Dimensions,
		product.Weight,
		product.Rating,
		product.ReviewCount,
		product.ImageURL,
		product.IsFeatured,
		product.IsBestSeller,
		string(product.Status),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one root row into a product with empty, non-nil child
// collections.
func scanProduct(row rowScanner) (*domain.Product, error) {
	product := domain.NewProduct()
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Price,
		&product.OldPrice,
		&product.Description,
		&product.Material,
		&product.Dimensions,
		&product.Weight,
		&product.Rating,
		&product.ReviewCount,
		&product.ImageURL,
		&product.IsFeatured,
		&product.IsBestSeller,
		&product.Status,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}
