package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lalax124/arthaai/internal/models"
)

func TestNetWorth(t *testing.T) {
	assets := models.NewCategoryMap()
	assets.Set("cash", 1000)
	liabilities := models.NewCategoryMap()
	liabilities.Set("loan", 400)

	r := NetWorth(assets, liabilities)
	assert.Equal(t, 600.0, r.NetWorth)
	assert.Equal(t, 1000.0, r.AssetsTotal)
	assert.Equal(t, 400.0, r.LiabilitiesTotal)
}

func TestNetWorthNilMaps(t *testing.T) {
	r := NetWorth(nil, nil)
	assert.Equal(t, 0.0, r.NetWorth)
	assert.Equal(t, 0.0, r.AssetsTotal)
	assert.Equal(t, 0.0, r.LiabilitiesTotal)
}

func TestDebtToIncomeRatio(t *testing.T) {
	ratio, ok := DebtToIncomeRatio(1500, 5000)
	assert.True(t, ok)
	assert.InDelta(t, 0.3, ratio, 1e-9)
}

func TestDebtToIncomeRatioUndefined(t *testing.T) {
	for _, debt := range []float64{0, 100, 1e9} {
		_, ok := DebtToIncomeRatio(debt, 0)
		assert.False(t, ok)
		_, ok = DebtToIncomeRatio(debt, -1)
		assert.False(t, ok)
	}
}

func TestEmergencyFundRatio(t *testing.T) {
	months, ok := EmergencyFundRatio(9000, 3000)
	assert.True(t, ok)
	assert.Equal(t, 3.0, months)

	_, ok = EmergencyFundRatio(9000, 0)
	assert.False(t, ok)
}
