package render

import "github.com/couchcryptid/storm-impact-report/internal/domain"

// ChartWriter renders aggregation tables to PNG files at a fixed geometry.
// It implements pipeline.Renderer.
type ChartWriter struct {
	Width  int
	Height int
}

// NewChartWriter creates a ChartWriter with the given pixel dimensions.
func NewChartWriter(width, height int) *ChartWriter {
	return &ChartWriter{Width: width, Height: height}
}

// RenderHealth draws the population-impact chart and writes it to path.
func (w *ChartWriter) RenderHealth(rows []domain.HealthImpact, path string) error {
	img, err := HealthChart(rows, w.Width, w.Height)
	if err != nil {
		return err
	}
	return WritePNG(path, img)
}

// RenderEconomic draws the economic-impact chart and writes it to path.
func (w *ChartWriter) RenderEconomic(rows []domain.EconomicImpact, path string) error {
	img, err := EconomicChart(rows, w.Width, w.Height)
	if err != nil {
		return err
	}
	return WritePNG(path, img)
}
