package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"inventory-tracker/internal/repository"
)

type DashboardStats struct {
	TotalProducts       int64  `json:"total_products"`
	TotalCategories     int64  `json:"total_categories"`
	TotalSuppliers      int64  `json:"total_suppliers"`
	LowStockProducts    int64  `json:"low_stock_products"`
	TotalIssuances      int64  `json:"total_issuances"`
	TotalInventoryValue string `json:"total_inventory_value"`
}

// StatsCache holds the last computed stats. Implementations live in the
// cache package.
type StatsCache interface {
	Get(ctx context.Context) (DashboardStats, bool, error)
	Set(ctx context.Context, stats DashboardStats) error
}

// StatsInvalidator drops the cached dashboard figures.
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	issuances  repository.IssuanceRepository
	cache      StatsCache
	log        *slog.Logger
}

func NewDashboardService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	issuances repository.IssuanceRepository,
	cache StatsCache,
	log *slog.Logger,
) DashboardService {
	return &dashboardService{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		issuances:  issuances,
		cache:      cache,
		log:        log,
	}
}

// GetDashboardStats serves from cache when possible. Cache failures are
// logged and the stats recomputed.
func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Read dashboard stats cache", slog.Any("error", err))
	}
	if ok {
		return &cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, *stats); err != nil {
		s.log.WarnContext(ctx, "Write dashboard stats cache", slog.Any("error", err))
	}
	return stats, nil
}

func (s *dashboardService) compute(ctx context.Context) (*DashboardStats, error) {
	var (
		stats DashboardStats
		err   error
	)
	if stats.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if stats.TotalSuppliers, err = s.suppliers.Count(ctx); err != nil {
		return nil, fmt.Errorf("count suppliers: %w", err)
	}
	if stats.LowStockProducts, err = s.products.CountLowStock(ctx); err != nil {
		return nil, fmt.Errorf("count low stock: %w", err)
	}
	if stats.TotalIssuances, err = s.issuances.Count(ctx); err != nil {
		return nil, fmt.Errorf("count issuances: %w", err)
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	total := decimal.Zero
	for i := range products {
		total = total.Add(products[i].StockValue())
	}
	stats.TotalProducts = int64(len(products))
	stats.TotalInventoryValue = total.StringFixed(2)
	return &stats, nil
}
