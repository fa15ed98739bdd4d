// Package render draws the report's horizontal bar charts and writes them
// out as PNG files.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// Fixed chart text. The titles match the reference report verbatim.
const (
	HealthTitle   = "Population Impact of Storm Events By Type, 1996-2011"
	EconomicTitle = "Economic Impact of Storm Events By Type, 1996-2011"

	healthAxisLabel   = "Total Fatalities and Injuries"
	economicAxisLabel = "Total Property and Crop Damage (USD)"

	legendFatalities = "Total Fatalities"
	legendInjuries   = "Total Injuries"
)

// Chart colors. Firebrick for fatalities, steel blue for injuries, matching
// the reference report's legend.
var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorAxis       = color.RGBA{60, 60, 60, 255}
	colorText       = color.RGBA{20, 20, 20, 255}
	colorFatalities = color.RGBA{178, 34, 34, 255}
	colorInjuries   = color.RGBA{70, 130, 180, 255}
	colorEconomic   = color.RGBA{46, 119, 62, 255}
)

const (
	marginTop    = 60
	marginBottom = 50
	marginRight  = 90
	labelPad     = 8
	barGap       = 2
)

var face = basicfont.Face7x13

// HealthChart draws a grouped horizontal bar chart of fatalities and
// injuries per event type. Rows are drawn top to bottom in input order, so
// callers pass an already-sorted aggregation.
func HealthChart(rows []domain.HealthImpact, width, height int) (*image.RGBA, error) {
	if len(rows) == 0 {
		return nil, errors.New("health chart: no rows to draw")
	}

	labels := make([]string, len(rows))
	maxValue := 0
	for i, r := range rows {
		labels[i] = r.EventType
		maxValue = max(maxValue, r.Injuries, r.Fatalities)
	}
	if maxValue == 0 {
		return nil, errors.New("health chart: all values are zero")
	}

	c := newCanvas(width, height, HealthTitle, healthAxisLabel, labels)

	for i, r := range rows {
		top, bottom := c.rowBounds(i)
		mid := (top + bottom) / 2
		scale := float64(c.plotWidth()) / float64(maxValue)

		// Injuries above, fatalities below, matching the legend order.
		c.bar(top, mid-barGap/2, int(float64(r.Injuries)*scale), colorInjuries)
		c.bar(mid+barGap/2, bottom, int(float64(r.Fatalities)*scale), colorFatalities)
		c.valueLabel(mid-barGap/2, int(float64(r.Injuries)*scale), FormatCount(r.Injuries))
	}

	c.legend([]legendEntry{
		{label: legendFatalities, color: colorFatalities},
		{label: legendInjuries, color: colorInjuries},
	})
	return c.img, nil
}

// EconomicChart draws a horizontal bar chart of combined economic damage per
// event type, one bar per row, labeled as currency.
func EconomicChart(rows []domain.EconomicImpact, width, height int) (*image.RGBA, error) {
	if len(rows) == 0 {
		return nil, errors.New("economic chart: no rows to draw")
	}

	labels := make([]string, len(rows))
	var maxValue float64
	for i, r := range rows {
		labels[i] = r.EventType
		maxValue = max(maxValue, r.Total)
	}
	if maxValue == 0 {
		return nil, errors.New("economic chart: all values are zero")
	}

	c := newCanvas(width, height, EconomicTitle, economicAxisLabel, labels)

	for i, r := range rows {
		top, bottom := c.rowBounds(i)
		length := int(r.Total / maxValue * float64(c.plotWidth()))
		c.bar(top, bottom, length, colorEconomic)
		c.valueLabel((top+bottom)/2, length, FormatCurrency(r.Total))
	}
	return c.img, nil
}

// WritePNG encodes img to path, creating parent directories as needed.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode chart: %w", err)
	}
	return f.Close()
}

// canvas is a bar chart surface with a title band, a left label gutter sized
// to the longest category label, and an x-axis caption.
type canvas struct {
	img        *image.RGBA
	width      int
	height     int
	marginLeft int
	rows       int
}

func newCanvas(width, height int, title, axisLabel string, labels []string) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	marginLeft := 0
	for _, l := range labels {
		marginLeft = max(marginLeft, textWidth(l))
	}
	marginLeft += 2 * labelPad

	c := &canvas{
		img:        img,
		width:      width,
		height:     height,
		marginLeft: marginLeft,
		rows:       len(labels),
	}

	// Title, centered.
	drawText(img, (width-textWidth(title))/2, marginTop/2, title, colorText)

	// Axis caption, centered under the plot area.
	axisX := marginLeft + (c.plotWidth()-textWidth(axisLabel))/2
	drawText(img, axisX, height-marginBottom/2, axisLabel, colorText)

	// Y axis line and category labels.
	fillRect(img, image.Rect(marginLeft-1, marginTop, marginLeft, height-marginBottom), colorAxis)
	for i, l := range labels {
		top, bottom := c.rowBounds(i)
		drawText(img, marginLeft-labelPad-textWidth(l), (top+bottom)/2+face.Height/2-2, l, colorText)
	}
	return c
}

// rowBounds returns the vertical pixel extent of row i inside the plot area,
// leaving a small gap between rows.
func (c *canvas) rowBounds(i int) (top, bottom int) {
	plotH := c.height - marginTop - marginBottom
	rowH := plotH / c.rows
	top = marginTop + i*rowH + rowH/8
	bottom = marginTop + (i+1)*rowH - rowH/8
	return top, bottom
}

func (c *canvas) plotWidth() int {
	return c.width - c.marginLeft - marginRight
}

// bar fills a horizontal bar from the axis rightward.
func (c *canvas) bar(top, bottom, length int, col color.Color) {
	if length < 1 {
		length = 1 // nonzero values stay visible at any scale
	}
	fillRect(c.img, image.Rect(c.marginLeft, top, c.marginLeft+length, bottom), col)
}

// valueLabel draws a value string just past the end of a bar.
func (c *canvas) valueLabel(midY, barLength int, s string) {
	drawText(c.img, c.marginLeft+barLength+labelPad, midY+face.Height/2-2, s, colorText)
}

type legendEntry struct {
	label string
	color color.Color
}

// legend draws color swatches with labels in the top-right corner.
func (c *canvas) legend(entries []legendEntry) {
	const swatch = 12
	y := marginTop + 4
	for _, e := range entries {
		x := c.width - marginRight - textWidth(e.label) - swatch - 2*labelPad
		fillRect(c.img, image.Rect(x, y, x+swatch, y+swatch), e.color)
		drawText(c.img, x+swatch+labelPad, y+swatch-2, e.label, colorText)
		y += swatch + 8
	}
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}
