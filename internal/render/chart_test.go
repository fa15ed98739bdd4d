package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

var healthRows = []domain.HealthImpact{
	{EventType: "TORNADO", Fatalities: 1511, Injuries: 20667},
	{EventType: "FLOOD", Fatalities: 414, Injuries: 6758},
	{EventType: "EXCESSIVE HEAT", Fatalities: 1797, Injuries: 6391},
}

var economicRows = []domain.EconomicImpact{
	{EventType: "FLOOD", PropertyDamage: 143944e6, CropDamage: 4974e6, Total: 148918e6},
	{EventType: "HURRICANE (TYPHOON)", PropertyDamage: 69305e6, CropDamage: 2607e6, Total: 71912e6},
}

func TestHealthChart(t *testing.T) {
	img, err := HealthChart(healthRows, 1200, 800)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 1200, bounds.Dx())
	assert.Equal(t, 800, bounds.Dy())

	// Both series colors must appear somewhere in the plot.
	assert.True(t, containsColor(img, colorInjuries), "injuries bars missing")
	assert.True(t, containsColor(img, colorFatalities), "fatalities bars missing")
}

func TestHealthChart_Empty(t *testing.T) {
	_, err := HealthChart(nil, 1200, 800)
	require.Error(t, err)
}

func TestHealthChart_AllZero(t *testing.T) {
	rows := []domain.HealthImpact{{EventType: "FOG"}}
	_, err := HealthChart(rows, 1200, 800)
	require.Error(t, err)
}

func TestEconomicChart(t *testing.T) {
	img, err := EconomicChart(economicRows, 1200, 800)
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.True(t, containsColor(img, colorEconomic), "damage bars missing")
}

func TestEconomicChart_Empty(t *testing.T) {
	_, err := EconomicChart(nil, 1200, 800)
	require.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	img, err := EconomicChart(economicRows, 600, 400)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "charts", "economic.png")
	require.NoError(t, WritePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 600, decoded.Bounds().Dx())
	assert.Equal(t, 400, decoded.Bounds().Dy())
}

func containsColor(img *image.RGBA, c color.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				return true
			}
		}
	}
	return false
}
