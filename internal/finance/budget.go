// Package finance implements the financial computation engine: budget
// summaries, loan amortization, investment growth, net worth and ratio
// analysis, retirement and mortgage affordability analysis, and portfolio
// and stock metrics. Every function is a pure transformation of its
// inputs; nothing here performs I/O or caches results between calls.
package finance

import "github.com/lalax124/arthaai/internal/models"

// BudgetSummary holds the derived statistics for a monthly budget
type BudgetSummary struct {
	Income        float64 `json:"income"`
	TotalExpenses float64 `json:"total_expenses"`
	Remaining     float64 `json:"remaining"`
	SavingsRate   float64 `json:"savings_rate"`
}

// SummarizeBudget computes the budget summary for a monthly income and a
// category map of expenses. With no expenses at all the savings rate is
// 100 for a positive income and 0 otherwise; a nil map counts as empty.
func SummarizeBudget(income float64, expenses *models.CategoryMap) BudgetSummary {
	if expenses.Len() == 0 {
		rate := 0.0
		if income > 0 {
			rate = 100
		}
		return BudgetSummary{
			Income:      income,
			Remaining:   income,
			SavingsRate: rate,
		}
	}

	totalExpenses := expenses.Sum()
	remaining := income - totalExpenses
	rate := 0.0
	if income > 0 {
		rate = (remaining / income) * 100
	}

	return BudgetSummary{
		Income:        income,
		TotalExpenses: totalExpenses,
		Remaining:     remaining,
		SavingsRate:   rate,
	}
}
