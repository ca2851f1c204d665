package services

import (
	"context"
	"time"

	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/pkg/logging"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecentWindow is how far back a product still counts as recent.
const RecentWindow = 30 * 24 * time.Hour

// DashboardService computes the dashboard statistics.
type DashboardService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	now        func() time.Time
	log        *zap.SugaredLogger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(products repositories.ProductRepository, categories repositories.CategoryRepository, log *zap.SugaredLogger) *DashboardService {
	return &DashboardService{
		products:   products,
		categories: categories,
		now:        time.Now,
		log:        logging.OrNop(log),
	}
}

// WithClock replaces the time source. Used by tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Stats fetches both collections concurrently and aggregates them. Any
// fetch error is logged and zero-valued stats are returned.
func (s *DashboardService) Stats(ctx context.Context) models.DashboardStats {
	var (
		products   []models.Product
		categories []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Errorf("Error fetching dashboard data: %v", err)
		return ZeroStats()
	}

	return ComputeStats(products, categories, s.now())
}

// ZeroStats is what the dashboard shows when nothing could be fetched.
func ZeroStats() models.DashboardStats {
	return models.DashboardStats{CategoryCounts: []models.CategoryCount{}}
}

// ComputeStats aggregates a snapshot of the catalog as of now.
func ComputeStats(products []models.Product, categories []models.Category, now time.Time) models.DashboardStats {
	cutoff := now.Add(-RecentWindow)

	stats := models.DashboardStats{
		TotalProducts:    len(products),
		TotalCategories:  len(categories),
		LowStockProducts: 0, // no inventory source
		CategoryCounts:   CountByCategory(products),
	}
	for _, p := range products {
		if p.CreatedAt.After(cutoff) {
			stats.RecentProducts++
		}
	}
	return stats
}

// CountByCategory groups products by category reference in first-encounter
// order. Products without a category land in the Uncategorized bucket.
func CountByCategory(products []models.Product) []models.CategoryCount {
	counts := make([]models.CategoryCount, 0)
	index := make(map[string]int)
	for _, p := range products {
		label := p.CategoryID
		if label == "" {
			label = models.UncategorizedLabel
		}
		if i, ok := index[label]; ok {
			counts[i].Count++
			continue
		}
		index[label] = len(counts)
		counts = append(counts, models.CategoryCount{Label: label, Count: 1})
	}
	return counts
}
