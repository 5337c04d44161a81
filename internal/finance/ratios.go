package finance

import "github.com/lalax124/arthaai/internal/models"

// NetWorthResult holds a net worth computation
type NetWorthResult struct {
	NetWorth         float64 `json:"net_worth"`
	AssetsTotal      float64 `json:"assets_total"`
	LiabilitiesTotal float64 `json:"liabilities_total"`
}

// NetWorth computes net worth from asset and liability category maps.
// Nil or empty maps contribute a zero total.
func NetWorth(assets, liabilities *models.CategoryMap) NetWorthResult {
	assetsTotal := assets.Sum()
	liabilitiesTotal := liabilities.Sum()
	return NetWorthResult{
		NetWorth:         assetsTotal - liabilitiesTotal,
		AssetsTotal:      assetsTotal,
		LiabilitiesTotal: liabilitiesTotal,
	}
}

// DebtToIncomeRatio returns monthly debt payments divided by monthly
// income. The ratio is undefined (ok=false) when income is not positive.
func DebtToIncomeRatio(monthlyDebtPayments, monthlyIncome float64) (float64, bool) {
	if monthlyIncome <= 0 {
		return 0, false
	}
	return monthlyDebtPayments / monthlyIncome, true
}

// EmergencyFundRatio returns the number of months of expenses covered by
// the emergency fund. Undefined (ok=false) when expenses are not positive.
func EmergencyFundRatio(emergencyFund, monthlyExpenses float64) (float64, bool) {
	if monthlyExpenses <= 0 {
		return 0, false
	}
	return emergencyFund / monthlyExpenses, true
}
