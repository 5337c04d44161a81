package finance

import "math"

// ProjectionPoint is one year of a simulated investment growth projection
type ProjectionPoint struct {
	Year          int     `json:"year"`
	Value         float64 `json:"value"`
	Contributions float64 `json:"contributions"`
	Earnings      float64 `json:"earnings"`
}

// InvestmentReturns computes the closed-form future value of an initial
// investment plus a monthly contribution compounded monthly at the given
// annual rate. Returns the final amount, total contributions, and total
// earnings. A non-positive rate uses the linear contribution sum.
func InvestmentReturns(initial, monthlyContribution float64, years int, annualRate float64) (finalAmount, totalContributions, totalEarnings float64) {
	monthlyRate := annualRate / 12
	months := float64(years * 12)

	finalAmount = initial * math.Pow(1+monthlyRate, months)

	if monthlyRate > 0 {
		finalAmount += monthlyContribution * ((math.Pow(1+monthlyRate, months) - 1) / monthlyRate)
	} else {
		finalAmount += monthlyContribution * months
	}

	totalContributions = initial + monthlyContribution*months
	totalEarnings = finalAmount - totalContributions
	return finalAmount, totalContributions, totalEarnings
}

// GrowthProjection simulates investment growth year by year from year 0
// to years, compounding monthly inside each year. At every integer year
// the simulated value matches InvestmentReturns for the same horizon up
// to floating-point tolerance.
func GrowthProjection(initial, monthlyContribution float64, years int, annualRate float64) []ProjectionPoint {
	monthlyRate := annualRate / 12

	points := make([]ProjectionPoint, 0, years+1)
	value := initial
	contributions := initial

	points = append(points, ProjectionPoint{
		Year:          0,
		Value:         value,
		Contributions: contributions,
	})

	for year := 1; year <= years; year++ {
		for m := 0; m < 12; m++ {
			value = value*(1+monthlyRate) + monthlyContribution
			contributions += monthlyContribution
		}

		points = append(points, ProjectionPoint{
			Year:          year,
			Value:         value,
			Contributions: contributions,
			Earnings:      value - contributions,
		})
	}

	return points
}
