package finance

import "math"

// Fixed 4% sustainable-withdrawal assumption
const sustainableWithdrawalRate = 0.04

// RetirementInput holds the inputs for a retirement readiness analysis
type RetirementInput struct {
	CurrentAge              int     `json:"current_age"`
	RetirementAge           int     `json:"retirement_age"`
	LifeExpectancy          int     `json:"life_expectancy"`
	CurrentSavings          float64 `json:"current_savings"`
	MonthlyContribution     float64 `json:"monthly_contribution"`
	ExpectedReturn          float64 `json:"expected_return"`
	DesiredRetirementIncome float64 `json:"desired_retirement_income"`
}

// RetirementAnalysis is the result of a retirement readiness analysis
type RetirementAnalysis struct {
	YearsUntilRetirement    int     `json:"years_until_retirement"`
	RetirementYears         int     `json:"retirement_years"`
	ProjectedSavings        float64 `json:"projected_savings"`
	SustainableAnnualIncome float64 `json:"sustainable_annual_income"`
	IncomeGap               float64 `json:"income_gap"`
	IncomeGapPercentage     float64 `json:"income_gap_percentage"`
	OnTrack                 bool    `json:"on_track"`
}

// AnalyzeRetirement projects savings at retirement from current savings
// plus a monthly contribution annuity, then applies the 4% withdrawal
// rule to derive sustainable income and the gap to the desired income.
// Invalid input surfaces as an *Error of kind ErrInvalidInput.
func AnalyzeRetirement(in RetirementInput) (*RetirementAnalysis, error) {
	if in.RetirementAge <= in.CurrentAge {
		return nil, errorf(ErrInvalidInput, "retirement age %d must be greater than current age %d", in.RetirementAge, in.CurrentAge)
	}
	if in.LifeExpectancy < in.RetirementAge {
		return nil, errorf(ErrInvalidInput, "life expectancy %d must not be less than retirement age %d", in.LifeExpectancy, in.RetirementAge)
	}
	if in.CurrentSavings < 0 || in.MonthlyContribution < 0 || in.DesiredRetirementIncome < 0 {
		return nil, errorf(ErrInvalidInput, "savings, contribution and desired income must not be negative")
	}

	yearsUntilRetirement := in.RetirementAge - in.CurrentAge
	retirementYears := in.LifeExpectancy - in.RetirementAge

	futureValueSavings := in.CurrentSavings * math.Pow(1+in.ExpectedReturn, float64(yearsUntilRetirement))

	monthlyReturn := in.ExpectedReturn / 12
	months := float64(yearsUntilRetirement * 12)

	var futureValueContributions float64
	if monthlyReturn > 0 {
		futureValueContributions = in.MonthlyContribution * ((math.Pow(1+monthlyReturn, months) - 1) / monthlyReturn)
	} else {
		futureValueContributions = in.MonthlyContribution * months
	}

	projectedSavings := futureValueSavings + futureValueContributions
	sustainableAnnualIncome := projectedSavings * sustainableWithdrawalRate

	incomeGap := in.DesiredRetirementIncome - sustainableAnnualIncome
	incomeGapPercentage := 0.0
	if in.DesiredRetirementIncome > 0 {
		incomeGapPercentage = (incomeGap / in.DesiredRetirementIncome) * 100
	}

	return &RetirementAnalysis{
		YearsUntilRetirement:    yearsUntilRetirement,
		RetirementYears:         retirementYears,
		ProjectedSavings:        projectedSavings,
		SustainableAnnualIncome: sustainableAnnualIncome,
		IncomeGap:               incomeGap,
		IncomeGapPercentage:     incomeGapPercentage,
		OnTrack:                 sustainableAnnualIncome >= in.DesiredRetirementIncome,
	}, nil
}
