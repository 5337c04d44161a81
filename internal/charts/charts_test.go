package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalax124/arthaai/internal/finance"
	"github.com/lalax124/arthaai/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderGrowthChart(t *testing.T) {
	points := finance.GrowthProjection(10000, 500, 10, 0.07)

	png, err := RenderGrowthChart(points)
	require.NoError(t, err)
	require.Greater(t, len(png), 4)
	assert.Equal(t, pngMagic, png[:4])
}

func TestRenderGrowthChartTooFewPoints(t *testing.T) {
	_, err := RenderGrowthChart(finance.GrowthProjection(1000, 0, 0, 0.05))
	assert.Error(t, err)
}

func TestRenderAmortizationChart(t *testing.T) {
	schedule := finance.AmortizationSchedule(200000, 0.06, 30)

	png, err := RenderAmortizationChart(schedule)
	require.NoError(t, err)
	require.Greater(t, len(png), 4)
	assert.Equal(t, pngMagic, png[:4])
}

func TestRenderExpensePie(t *testing.T) {
	expenses := models.NewCategoryMap()
	expenses.Set("Rent", 1500)
	expenses.Set("Food", 500)
	expenses.Set("Transport", 200)

	png, err := RenderExpensePie(expenses)
	require.NoError(t, err)
	require.Greater(t, len(png), 4)
	assert.Equal(t, pngMagic, png[:4])
}

func TestRenderExpensePieEmpty(t *testing.T) {
	_, err := RenderExpensePie(nil)
	assert.Error(t, err)

	zeroOnly := models.NewCategoryMap()
	zeroOnly.Set("Nothing", 0)
	_, err = RenderExpensePie(zeroOnly)
	assert.Error(t, err)
}
