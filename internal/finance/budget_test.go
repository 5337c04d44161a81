package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lalax124/arthaai/internal/models"
)

func TestSummarizeBudgetNoExpenses(t *testing.T) {
	s := SummarizeBudget(5000, nil)
	assert.Equal(t, 5000.0, s.Income)
	assert.Equal(t, 0.0, s.TotalExpenses)
	assert.Equal(t, 5000.0, s.Remaining)
	assert.Equal(t, 100.0, s.SavingsRate)

	s = SummarizeBudget(5000, models.NewCategoryMap())
	assert.Equal(t, 5000.0, s.Remaining)
	assert.Equal(t, 100.0, s.SavingsRate)
}

func TestSummarizeBudgetZeroIncomeNoExpenses(t *testing.T) {
	s := SummarizeBudget(0, nil)
	assert.Equal(t, 0.0, s.Remaining)
	assert.Equal(t, 0.0, s.SavingsRate)
}

func TestSummarizeBudget(t *testing.T) {
	expenses := models.NewCategoryMap()
	expenses.Set("Rent", 1500)
	expenses.Set("Food", 500)

	s := SummarizeBudget(4000, expenses)
	assert.Equal(t, 2000.0, s.TotalExpenses)
	assert.Equal(t, 2000.0, s.Remaining)
	assert.InDelta(t, 50.0, s.SavingsRate, 1e-9)
}

func TestSummarizeBudgetZeroIncomeWithExpenses(t *testing.T) {
	expenses := models.NewCategoryMap()
	expenses.Set("Rent", 1500)

	s := SummarizeBudget(0, expenses)
	assert.Equal(t, -1500.0, s.Remaining)
	assert.Equal(t, 0.0, s.SavingsRate)
}

func TestSummarizeBudgetDuplicateCategoryCollapses(t *testing.T) {
	expenses := models.NewCategoryMap()
	expenses.Set("Rent", 1500)
	expenses.Set("Rent", 1600)

	s := SummarizeBudget(4000, expenses)
	assert.Equal(t, 1600.0, s.TotalExpenses)
}
