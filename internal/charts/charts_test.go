package charts_test

import (
	"testing"

	"tokoadmin/internal/charts"
	"tokoadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryBar(t *testing.T) {
	html, err := charts.NewRenderer().CategoryBar([]models.CategoryCount{
		{Label: "kitchen", Count: 2},
		{Label: "Uncategorized", Count: 1},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Products by Category")
	assert.Contains(t, html, "kitchen")
	assert.Contains(t, html, "Uncategorized")
}

func TestOverview(t *testing.T) {
	html, err := charts.NewRenderer().Overview(models.DashboardStats{TotalProducts: 4, TotalCategories: 2, RecentProducts: 1})
	require.NoError(t, err)
	assert.Contains(t, html, "Catalog Overview")
	assert.Contains(t, html, "Recent (30 days)")
}

func TestCategoryBar_Empty(t *testing.T) {
	html, err := charts.NewRenderer().CategoryBar(nil)
	require.NoError(t, err)
	assert.Contains(t, html, "echarts")
}
