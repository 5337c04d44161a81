package models

// FinancialSnapshot is the latest stored state of a user's finances,
// assembled fresh from the store for each computation or advisory call.
type FinancialSnapshot struct {
	UserID      int64        `json:"user_id"`
	Income      float64      `json:"income"`
	Expenses    *CategoryMap `json:"expenses"`
	Assets      *CategoryMap `json:"assets"`
	Liabilities *CategoryMap `json:"liabilities"`
	Goals       []Goal       `json:"goals"`
	Portfolio   []Holding    `json:"portfolio"`
}
