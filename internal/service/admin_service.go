package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"olshop/internal/domain"
	"olshop/internal/repository"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("invalid product")

// recentProductCount is how many products the dashboard shows.
const recentProductCount = 5

// DashboardStats backs the admin dashboard. Sales, orders, and customers are
// placeholder figures until those subsystems exist.
type DashboardStats struct {
	TotalProducts  int               `json:"total_products"`
	TotalSales     decimal.Decimal   `json:"total_sales"`
	NewOrders      int               `json:"new_orders"`
	Customers      int               `json:"customers"`
	RecentProducts []*domain.Product `json:"recent_products"`
}

// AdminService serves the back-office: product CRUD and the dashboard.
type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	ProductsPage(ctx context.Context, page, pageSize int) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (int64, error)
	UpdateProduct(ctx context.Context, id int64, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type adminService struct {
	products repository.ProductRepository
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(products repository.ProductRepository) AdminService {
	return &adminService{products: products}
}

func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	total, err := s.products.GetTotalProductCount(ctx)
	if err != nil {
		return nil, err
	}

	sales, err := s.products.GetTotalSales(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.products.GetNewOrdersCount(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := s.products.GetCustomersCount(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.products.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > recentProductCount {
		all = all[:recentProductCount]
	}

	return &DashboardStats{
		TotalProducts:  total,
		TotalSales:     sales,
		NewOrders:      orders,
		Customers:      customers,
		RecentProducts: all,
	}, nil
}

func (s *adminService) ProductsPage(ctx context.Context, page, pageSize int) ([]*domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.ValidPageSizes[0]
	}
	return s.products.GetProductsPage(ctx, page, pageSize)
}

func (s *adminService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *adminService) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	if err := validateProduct(product); err != nil {
		return 0, err
	}
	return s.products.AddProduct(ctx, product)
}

func (s *adminService) UpdateProduct(ctx context.Context, id int64, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	product.ID = id
	return s.products.UpdateProduct(ctx, product)
}

func (s *adminService) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.DeleteProduct(ctx, id)
}

func validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if product.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}

	switch product.Status {
	case domain.StatusInStock, domain.StatusLowStock, domain.StatusOutOfStock:
		return nil
	case "":
		product.Status = domain.StatusInStock
		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidProduct, product.Status)
	}
}
