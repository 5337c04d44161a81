package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalax124/arthaai/internal/models"
)

func TestCalculatePortfolioMetricsEmpty(t *testing.T) {
	m := CalculatePortfolioMetrics(nil, nil)
	assert.Equal(t, 0.0, m.TotalValue)
	assert.Equal(t, 0.0, m.TotalCost)
	assert.Equal(t, 0.0, m.TotalGainLoss)
	assert.Equal(t, 0.0, m.TotalGainLossPct)
	assert.NotNil(t, m.Holdings)
	assert.Empty(t, m.Holdings)
}

func TestCalculatePortfolioMetrics(t *testing.T) {
	holdings := []models.Holding{
		{Ticker: "AAPL", Shares: 10, CostBasis: 150},
		{Ticker: "MSFT", Shares: 5, CostBasis: 300},
	}
	prices := map[string]float64{"AAPL": 180, "MSFT": 280}

	m := CalculatePortfolioMetrics(holdings, prices)
	require.Len(t, m.Holdings, 2)

	assert.Equal(t, 10*180.0+5*280.0, m.TotalValue)
	assert.Equal(t, 10*150.0+5*300.0, m.TotalCost)
	assert.Equal(t, m.TotalValue-m.TotalCost, m.TotalGainLoss)
	assert.InDelta(t, m.TotalGainLoss/m.TotalCost*100, m.TotalGainLossPct, 1e-9)

	aapl := m.Holdings[0]
	assert.Equal(t, "AAPL", aapl.Ticker)
	assert.Equal(t, 1800.0, aapl.CurrentValue)
	assert.Equal(t, 300.0, aapl.GainLoss)
	assert.InDelta(t, 20.0, aapl.GainLossPct, 1e-9)
}

func TestCalculatePortfolioMetricsSkipsMissingPrices(t *testing.T) {
	holdings := []models.Holding{
		{Ticker: "AAPL", Shares: 10, CostBasis: 150},
		{Ticker: "DELISTED", Shares: 100, CostBasis: 50},
	}
	prices := map[string]float64{"AAPL": 180}

	m := CalculatePortfolioMetrics(holdings, prices)
	require.Len(t, m.Holdings, 1)
	assert.Equal(t, "AAPL", m.Holdings[0].Ticker)
	assert.Equal(t, 1800.0, m.TotalValue)
	assert.Equal(t, 1500.0, m.TotalCost)
}

func TestCalculatePortfolioMetricsZeroCostBasis(t *testing.T) {
	holdings := []models.Holding{{Ticker: "GIFT", Shares: 10, CostBasis: 0}}
	prices := map[string]float64{"GIFT": 5}

	m := CalculatePortfolioMetrics(holdings, prices)
	require.Len(t, m.Holdings, 1)
	assert.Equal(t, 0.0, m.Holdings[0].GainLossPct)
	assert.Equal(t, 50.0, m.Holdings[0].GainLoss)
}
