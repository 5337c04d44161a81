package models

// Holding represents a position in the investment portfolio
type Holding struct {
	Ticker       string  `json:"ticker"`
	Shares       float64 `json:"shares"`
	CostBasis    float64 `json:"cost_basis"`
	PurchaseDate string  `json:"purchase_date,omitempty"`
}
