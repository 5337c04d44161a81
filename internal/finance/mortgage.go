package finance

import "math"

// Defaults for the optional mortgage analysis inputs
const (
	DefaultPropertyTaxRate  = 0.01
	DefaultMonthlyInsurance = 100.0
	DefaultPMIRate          = 0.005
)

// Home prices are sampled at fixed $50,000 increments from 1x to 15x
const (
	priceStep    = 50000.0
	priceSamples = 15
)

// MortgageInput holds the inputs for a mortgage affordability analysis
type MortgageInput struct {
	AnnualIncome     float64 `json:"annual_income"`
	MonthlyDebt      float64 `json:"monthly_debt"`
	DownPayment      float64 `json:"down_payment"`
	InterestRate     float64 `json:"interest_rate"`
	TermYears        int     `json:"term_years"`
	PropertyTaxRate  float64 `json:"property_tax_rate"`
	MonthlyInsurance float64 `json:"monthly_insurance"`
	PMIRate          float64 `json:"pmi_rate"`
}

// PaymentBreakdown itemizes a monthly housing payment
type PaymentBreakdown struct {
	Mortgage    float64 `json:"mortgage"`
	PropertyTax float64 `json:"property_tax"`
	Insurance   float64 `json:"insurance"`
	PMI         float64 `json:"pmi"`
}

// PricePoint is one sampled home price with its monthly cost
type PricePoint struct {
	HomePrice      float64          `json:"home_price"`
	MonthlyPayment float64          `json:"monthly_payment"`
	Affordable     bool             `json:"affordable"`
	Breakdown      PaymentBreakdown `json:"breakdown"`
}

// MortgageAffordability is the result of a mortgage affordability analysis
type MortgageAffordability struct {
	MaxHousingPayment  float64      `json:"max_housing_payment"`
	MaxAffordablePrice float64      `json:"max_affordable_price"`
	PriceRanges        []PricePoint `json:"price_ranges"`
}

// AnalyzeMortgage sweeps home prices in $50k steps and flags which are
// affordable under the 28/36 rule: housing below 28% of gross monthly
// income and total debt service below 36%, whichever bound is smaller.
// PMI applies when the down payment is under 20% of the home price.
// Invalid input surfaces as an *Error of kind ErrInvalidInput.
func AnalyzeMortgage(in MortgageInput) (*MortgageAffordability, error) {
	if in.AnnualIncome <= 0 {
		return nil, errorf(ErrInvalidInput, "annual income must be positive")
	}
	if in.TermYears <= 0 {
		return nil, errorf(ErrInvalidInput, "term must be at least one year")
	}
	if in.DownPayment < 0 || in.MonthlyDebt < 0 {
		return nil, errorf(ErrInvalidInput, "down payment and monthly debt must not be negative")
	}

	monthlyIncome := in.AnnualIncome / 12
	frontEndMax := monthlyIncome * 0.28
	backEndMax := monthlyIncome*0.36 - in.MonthlyDebt
	maxHousingPayment := math.Min(frontEndMax, backEndMax)

	monthlyRate := in.InterestRate / 12
	totalPayments := float64(in.TermYears * 12)

	priceRanges := make([]PricePoint, 0, priceSamples)
	maxPrice := 0.0

	for multiple := 1; multiple <= priceSamples; multiple++ {
		homePrice := float64(multiple) * priceStep
		loanAmount := homePrice - in.DownPayment
		if loanAmount <= 0 {
			continue
		}

		monthlyPMI := 0.0
		if in.DownPayment/homePrice < 0.2 {
			monthlyPMI = loanAmount * in.PMIRate / 12
		}

		var monthlyMortgage float64
		if monthlyRate == 0 {
			monthlyMortgage = loanAmount / totalPayments
		} else {
			monthlyMortgage = loanAmount * (monthlyRate * math.Pow(1+monthlyRate, totalPayments)) / (math.Pow(1+monthlyRate, totalPayments) - 1)
		}

		monthlyTax := (homePrice * in.PropertyTaxRate) / 12
		monthlyTotal := monthlyMortgage + monthlyTax + in.MonthlyInsurance + monthlyPMI

		affordable := monthlyTotal <= maxHousingPayment
		if affordable {
			maxPrice = homePrice
		}

		priceRanges = append(priceRanges, PricePoint{
			HomePrice:      homePrice,
			MonthlyPayment: monthlyTotal,
			Affordable:     affordable,
			Breakdown: PaymentBreakdown{
				Mortgage:    monthlyMortgage,
				PropertyTax: monthlyTax,
				Insurance:   in.MonthlyInsurance,
				PMI:         monthlyPMI,
			},
		})
	}

	return &MortgageAffordability{
		MaxHousingPayment:  maxHousingPayment,
		MaxAffordablePrice: maxPrice,
		PriceRanges:        priceRanges,
	}, nil
}
