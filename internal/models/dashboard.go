package models

// UncategorizedLabel is the bucket used for products without a category.
const UncategorizedLabel = "Uncategorized"

// CategoryCount is one bar of the products-per-category chart.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardStats is the aggregate shown on the dashboard. It is recomputed
// from a fresh snapshot on every request and never persisted.
type DashboardStats struct {
	TotalProducts    int             `json:"total_products"`
	TotalCategories  int             `json:"total_categories"`
	RecentProducts   int             `json:"recent_products"`
	LowStockProducts int             `json:"low_stock_products"`
	CategoryCounts   []CategoryCount `json:"category_counts"`
}
