package finance

import "github.com/lalax124/arthaai/internal/models"

// HoldingMetrics is the valued breakdown of a single portfolio holding
type HoldingMetrics struct {
	Ticker       string  `json:"ticker"`
	Shares       float64 `json:"shares"`
	CostBasis    float64 `json:"cost_basis"`
	LatestPrice  float64 `json:"latest_price"`
	CurrentValue float64 `json:"current_value"`
	GainLoss     float64 `json:"gain_loss"`
	GainLossPct  float64 `json:"gain_loss_pct"`
}

// PortfolioMetrics aggregates holding values into portfolio totals
type PortfolioMetrics struct {
	TotalValue       float64          `json:"total_value"`
	TotalCost        float64          `json:"total_cost"`
	TotalGainLoss    float64          `json:"total_gain_loss"`
	TotalGainLossPct float64          `json:"total_gain_loss_pct"`
	Holdings         []HoldingMetrics `json:"holdings"`
}

// CalculatePortfolioMetrics values each holding at its latest price and
// aggregates the totals. Holdings whose ticker is missing from prices
// are skipped rather than treated as fatal. An empty holdings list gives
// an explicit zero-valued result.
func CalculatePortfolioMetrics(holdings []models.Holding, prices map[string]float64) PortfolioMetrics {
	metrics := PortfolioMetrics{Holdings: []HoldingMetrics{}}

	for _, h := range holdings {
		latestPrice, ok := prices[h.Ticker]
		if !ok {
			continue
		}

		currentValue := h.Shares * latestPrice
		totalCostBasis := h.Shares * h.CostBasis
		gainLoss := currentValue - totalCostBasis
		gainLossPct := 0.0
		if totalCostBasis > 0 {
			gainLossPct = (gainLoss / totalCostBasis) * 100
		}

		metrics.Holdings = append(metrics.Holdings, HoldingMetrics{
			Ticker:       h.Ticker,
			Shares:       h.Shares,
			CostBasis:    h.CostBasis,
			LatestPrice:  latestPrice,
			CurrentValue: currentValue,
			GainLoss:     gainLoss,
			GainLossPct:  gainLossPct,
		})

		metrics.TotalValue += currentValue
		metrics.TotalCost += totalCostBasis
	}

	metrics.TotalGainLoss = metrics.TotalValue - metrics.TotalCost
	if metrics.TotalCost > 0 {
		metrics.TotalGainLossPct = (metrics.TotalGainLoss / metrics.TotalCost) * 100
	}

	return metrics
}
