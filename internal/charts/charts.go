// Package charts renders the dashboard charts as embeddable HTML.
package charts

import (
	"bytes"
	"io"

	"tokoadmin/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultHeight = "360px"

// Renderer holds the presentation options shared by every chart.
type Renderer struct {
	Theme      string
	AssetsHost string
}

// NewRenderer returns a renderer using the Westeros theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: types.ThemeWesteros}
}

// CategoryBar renders products per category as a bar chart, keeping the
// order of counts.
func (r *Renderer) CategoryBar(counts []models.CategoryCount) (string, error) {
	labels := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
		data[i] = opts.BarData{Name: c.Label, Value: c.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOptions("Products by Category")...)
	bar.SetXAxis(labels)
	bar.AddSeries("Products", data)
	return render(bar)
}

// Overview renders the summary cards as a pie chart.
func (r *Renderer) Overview(stats models.DashboardStats) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalOptions("Catalog Overview")...)
	pie.AddSeries("Catalog", []opts.PieData{
		{Name: "Products", Value: stats.TotalProducts},
		{Name: "Categories", Value: stats.TotalCategories},
		{Name: "Recent (30 days)", Value: stats.RecentProducts},
		{Name: "Low stock", Value: stats.LowStockProducts},
	})
	return render(pie)
}

func (r *Renderer) globalOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.Theme,
		Width:  "100%",
		Height: defaultHeight,
	}
	if r.AssetsHost != "" {
		initOpts.AssetsHost = r.AssetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func render(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
