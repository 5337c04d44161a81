package finance

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalax124/arthaai/internal/models"
)

// bars generates n daily bars with linearly increasing closes starting at 100
func bars(n int) []models.PriceBar {
	out := make([]models.PriceBar, n)
	for i := range out {
		close := 100 + float64(i)
		out[i] = models.PriceBar{
			Date:  fmt.Sprintf("2025-%03d", i),
			Open:  close - 0.5,
			High:  close + 1,
			Low:   close - 1,
			Close: close,
		}
	}
	return out
}

func TestStockMetricsFromHistoryEmpty(t *testing.T) {
	_, err := StockMetricsFromHistory("NOPE", nil, nil)
	require.Error(t, err)
	assert.Equal(t, ErrNoData, KindOf(err))
}

func TestStockMetricsFromHistoryFullYear(t *testing.T) {
	history := bars(252)
	m, err := StockMetricsFromHistory("ACME", history, nil)
	require.NoError(t, err)

	assert.Equal(t, "ACME", m.Name)
	assert.Equal(t, 351.0, m.CurrentPrice)
	assert.Equal(t, 352.0, m.Price52WkHigh)
	assert.Equal(t, 99.0, m.Price52WkLow)

	require.NotNil(t, m.Return1Mo)
	assert.InDelta(t, (351.0/history[252-21].Close-1)*100, *m.Return1Mo, 1e-9)
	require.NotNil(t, m.Return3Mo)
	assert.InDelta(t, (351.0/history[252-63].Close-1)*100, *m.Return3Mo, 1e-9)
	require.NotNil(t, m.Return1Yr)
	assert.InDelta(t, (351.0/100.0-1)*100, *m.Return1Yr, 1e-9)
}

func TestStockMetricsShortHistoryOmitsWindows(t *testing.T) {
	m, err := StockMetricsFromHistory("NEW", bars(30), nil)
	require.NoError(t, err)
	assert.NotNil(t, m.Return1Mo)
	assert.Nil(t, m.Return3Mo)
	assert.Nil(t, m.Return1Yr)

	m, err = StockMetricsFromHistory("NEWER", bars(10), nil)
	require.NoError(t, err)
	assert.Nil(t, m.Return1Mo)
	assert.Nil(t, m.Return3Mo)
	assert.Nil(t, m.Return1Yr)
}

func TestStockMetricsUsesInfo(t *testing.T) {
	pe := 24.5
	yield := 0.012
	m, err := StockMetricsFromHistory("ACME", bars(252), &models.TickerInfo{
		Name:          "Acme Corporation",
		PERatio:       &pe,
		DividendYield: &yield,
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corporation", m.Name)
	require.NotNil(t, m.PERatio)
	assert.Equal(t, 24.5, *m.PERatio)
	require.NotNil(t, m.DividendYield)
	assert.InDelta(t, 1.2, *m.DividendYield, 1e-9)
}
