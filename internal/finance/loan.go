package finance

import "math"

// AmortizationRow is one month of a loan amortization schedule
type AmortizationRow struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// MonthlyPayment computes the fixed monthly payment for a loan using the
// standard annuity formula. A zero rate degenerates to principal/n.
func MonthlyPayment(principal, annualRate float64, years int) float64 {
	monthlyRate := annualRate / 12
	n := float64(years * 12)

	if monthlyRate == 0 {
		return principal / n
	}

	return principal * (monthlyRate * math.Pow(1+monthlyRate, n)) / (math.Pow(1+monthlyRate, n) - 1)
}

// AmortizationSchedule generates the full month-by-month schedule for a
// fixed-rate loan. Interest is recomputed each month from the remaining
// balance, and the balance is clamped at zero so floating-point drift
// cannot leave the final row slightly negative.
func AmortizationSchedule(principal, annualRate float64, years int) []AmortizationRow {
	payment := MonthlyPayment(principal, annualRate, years)
	monthlyRate := annualRate / 12
	n := years * 12

	schedule := make([]AmortizationRow, 0, n)
	balance := principal

	for month := 1; month <= n; month++ {
		interest := balance * monthlyRate
		principalPortion := payment - interest
		balance -= principalPortion

		schedule = append(schedule, AmortizationRow{
			Month:            month,
			Payment:          payment,
			Principal:        principalPortion,
			Interest:         interest,
			RemainingBalance: math.Max(0, balance),
		})
	}

	return schedule
}
