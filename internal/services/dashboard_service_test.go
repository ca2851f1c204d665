package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tokoadmin/internal/models"
	"tokoadmin/internal/services"

	"github.com/stretchr/testify/assert"
)

var dashboardNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func TestComputeStats_RecentWindowIsStrict(t *testing.T) {
	products := []models.Product{
		{ID: "1", CreatedAt: dashboardNow.Add(-time.Hour)},
		{ID: "2", CreatedAt: dashboardNow.Add(-services.RecentWindow)},
		{ID: "3", CreatedAt: dashboardNow.Add(-services.RecentWindow + time.Second)},
		{ID: "4", CreatedAt: dashboardNow.Add(-90 * 24 * time.Hour)},
		{ID: "5"},
	}

	stats := services.ComputeStats(products, []models.Category{{ID: "a"}, {ID: "b"}}, dashboardNow)
	assert.Equal(t, 5, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, 2, stats.RecentProducts)
	assert.Equal(t, 0, stats.LowStockProducts)
}

func TestCountByCategory(t *testing.T) {
	products := []models.Product{
		{Name: "Mug", CategoryID: "kitchen"},
		{Name: "Loose"},
		{Name: "Rake", CategoryID: "garden"},
		{Name: "Cup", CategoryID: "kitchen"},
		{Name: "Another loose", CategoryID: ""},
	}

	counts := services.CountByCategory(products)
	assert.Equal(t, []models.CategoryCount{
		{Label: "kitchen", Count: 2},
		{Label: "Uncategorized", Count: 2},
		{Label: "garden", Count: 1},
	}, counts)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, len(products), total)
}

func TestCountByCategory_Empty(t *testing.T) {
	counts := services.CountByCategory(nil)
	assert.NotNil(t, counts)
	assert.Empty(t, counts)
}

func TestDashboardService_Stats(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := services.NewDashboardService(products, categories, nil).WithClock(func() time.Time { return dashboardNow })

	products.On("GetAll").Return([]models.Product{
		{ID: "1", CategoryID: "kitchen", CreatedAt: dashboardNow.Add(-24 * time.Hour)},
		{ID: "2", CreatedAt: dashboardNow.Add(-60 * 24 * time.Hour)},
	}, nil).Once()
	categories.On("GetAll").Return([]models.Category{{ID: "kitchen"}}, nil).Once()

	stats := service.Stats(context.Background())
	assert.Equal(t, models.DashboardStats{
		TotalProducts:   2,
		TotalCategories: 1,
		RecentProducts:  1,
		CategoryCounts: []models.CategoryCount{
			{Label: "kitchen", Count: 1},
			{Label: "Uncategorized", Count: 1},
		},
	}, stats)
	products.AssertExpectations(t)
	categories.AssertExpectations(t)
}

func TestDashboardService_StatsDegradesToZero(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	service := services.NewDashboardService(products, categories, nil)

	products.On("GetAll").Return([]models.Product{{ID: "1"}}, nil).Maybe()
	categories.On("GetAll").Return(nil, fmt.Errorf("categories unavailable")).Once()

	stats := service.Stats(context.Background())
	assert.Equal(t, services.ZeroStats(), stats)
	categories.AssertExpectations(t)
}
