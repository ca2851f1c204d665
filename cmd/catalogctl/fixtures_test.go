package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixtures = `
categories:
  - id: cat-kitchen
    name: kitchen
    display_name: Kitchen
  - id: cat-office
    name: office
products:
  - id: prod-1
    name: Red Mug
    price: 9.5
    category: cat-kitchen
    main_image: https://cdn.example.com/mug.png
    images:
      - https://cdn.example.com/mug-side.png
      - https://cdn.example.com/mug-top.png
    created_at: 2024-01-02T15:04:05Z
  - name: Loose Screw
`

func TestParseFixtures(t *testing.T) {
	f, err := parseFixtures([]byte(sampleFixtures))
	require.NoError(t, err)

	require.Len(t, f.Categories, 2)
	assert.Equal(t, "Kitchen", f.Categories[0].DisplayName)
	require.Len(t, f.Products, 2)
	require.NotNil(t, f.Products[0].Price)
	assert.Equal(t, 9.5, *f.Products[0].Price)
	assert.Nil(t, f.Products[1].Price)
}

func TestParseFixtures_RequiresProductName(t *testing.T) {
	_, err := parseFixtures([]byte("products:\n  - price: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "products[0]: name is required")
}

func TestParseFixtures_InvalidYAML(t *testing.T) {
	_, err := parseFixtures([]byte("categories: ["))
	assert.Error(t, err)
}

func TestFixturesApply(t *testing.T) {
	f, err := parseFixtures([]byte(sampleFixtures))
	require.NoError(t, err)

	ctx := context.Background()
	categories := repositories.NewMockCategoryRepository()
	products := repositories.NewMockProductRepository()

	res, err := f.Apply(ctx, categories, products)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Categories: 2, Products: 2}, res)

	mug, err := products.GetByID(ctx, "prod-1")
	require.NoError(t, err)
	require.NotNil(t, mug.MainMedia)
	assert.Equal(t, "https://cdn.example.com/mug.png", mug.MainMedia.Image)
	assert.Equal(t, []models.MediaItem{
		{Image: "https://cdn.example.com/mug-side.png"},
		{Image: "https://cdn.example.com/mug-top.png"},
	}, mug.MediaItems)
	assert.True(t, mug.CreatedAt.Equal(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)))

	all, err := products.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEmpty(t, all[1].ID)
	assert.Nil(t, all[1].Price)

	// Re-applying hits the duplicate category ID.
	_, err = f.Apply(ctx, categories, products)
	assert.Error(t, err)
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, models.DashboardStats{
		TotalProducts:  2,
		CategoryCounts: []models.CategoryCount{{Label: "cat-kitchen", Count: 2}},
	}))

	var decoded models.DashboardStats
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.TotalProducts)
	assert.Equal(t, "cat-kitchen", decoded.CategoryCounts[0].Label)
}
