package finance

import "github.com/lalax124/arthaai/internal/models"

// Trading-day offsets for trailing return windows
const (
	tradingDays1Mo = 21
	tradingDays3Mo = 63
	tradingDays1Yr = 252
)

// StockMetrics holds derived metrics for a single ticker. Return windows
// are nil when the history is too short to compute them.
type StockMetrics struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	CurrentPrice  float64  `json:"current_price"`
	Price52WkHigh float64  `json:"price_52wk_high"`
	Price52WkLow  float64  `json:"price_52wk_low"`
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield"`
	Return1Mo     *float64 `json:"return_1mo"`
	Return3Mo     *float64 `json:"return_3mo"`
	Return1Yr     *float64 `json:"return_1yr"`
}

// StockMetricsFromHistory derives stock metrics from a year of daily
// bars plus optional descriptive info. Trailing returns use trading-day
// offsets of 21, 63 and 252 for the 1-month, 3-month and 1-year windows
// and are omitted when fewer bars exist. An empty history is an *Error
// of kind ErrNoData.
func StockMetricsFromHistory(ticker string, bars []models.PriceBar, info *models.TickerInfo) (*StockMetrics, error) {
	if len(bars) == 0 {
		return nil, errorf(ErrNoData, "no historical data for ticker %s", ticker)
	}

	currentPrice := bars[len(bars)-1].Close

	high := bars[0].High
	low := bars[0].Low
	for _, b := range bars[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}

	m := &StockMetrics{
		Ticker:        ticker,
		Name:          ticker,
		CurrentPrice:  currentPrice,
		Price52WkHigh: high,
		Price52WkLow:  low,
	}

	if len(bars) >= tradingDays1Mo {
		m.Return1Mo = trailingReturn(currentPrice, bars[len(bars)-tradingDays1Mo].Close)
	}
	if len(bars) >= tradingDays3Mo {
		m.Return3Mo = trailingReturn(currentPrice, bars[len(bars)-tradingDays3Mo].Close)
	}
	if len(bars) >= tradingDays1Yr {
		m.Return1Yr = trailingReturn(currentPrice, bars[0].Close)
	}

	if info != nil {
		if info.Name != "" {
			m.Name = info.Name
		}
		m.PERatio = info.PERatio
		if info.DividendYield != nil {
			yield := *info.DividendYield * 100
			m.DividendYield = &yield
		}
	}

	return m, nil
}

func trailingReturn(current, past float64) *float64 {
	if past == 0 {
		return nil
	}
	r := (current/past - 1) * 100
	return &r
}
