package models

// PriceBar is a single day of trading data for a ticker
type PriceBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// TickerInfo holds descriptive metadata for a ticker.
// PERatio and DividendYield may be absent from the provider.
type TickerInfo struct {
	Name          string   `json:"name"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
}
