package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRetirement(t *testing.T) {
	analysis, err := AnalyzeRetirement(RetirementInput{
		CurrentAge:              30,
		RetirementAge:           65,
		LifeExpectancy:          90,
		CurrentSavings:          50000,
		MonthlyContribution:     1000,
		ExpectedReturn:          0.07,
		DesiredRetirementIncome: 80000,
	})
	require.NoError(t, err)

	assert.Equal(t, 35, analysis.YearsUntilRetirement)
	assert.Equal(t, 25, analysis.RetirementYears)

	expectedSavings := 50000*math.Pow(1.07, 35) +
		1000*((math.Pow(1+0.07/12, 420)-1)/(0.07/12))
	assert.InDelta(t, expectedSavings, analysis.ProjectedSavings, 1e-6)
	assert.InDelta(t, expectedSavings*0.04, analysis.SustainableAnnualIncome, 1e-6)
	assert.Equal(t, analysis.SustainableAnnualIncome >= 80000, analysis.OnTrack)
	assert.InDelta(t, 80000-analysis.SustainableAnnualIncome, analysis.IncomeGap, 1e-9)
}

func TestAnalyzeRetirementZeroReturn(t *testing.T) {
	analysis, err := AnalyzeRetirement(RetirementInput{
		CurrentAge:          40,
		RetirementAge:       60,
		LifeExpectancy:      85,
		CurrentSavings:      10000,
		MonthlyContribution: 500,
	})
	require.NoError(t, err)

	// No growth: savings stay flat, contributions accumulate linearly
	assert.InDelta(t, 10000+500*240, analysis.ProjectedSavings, 1e-9)
}

func TestAnalyzeRetirementZeroDesiredIncome(t *testing.T) {
	analysis, err := AnalyzeRetirement(RetirementInput{
		CurrentAge:          30,
		RetirementAge:       65,
		LifeExpectancy:      90,
		MonthlyContribution: 100,
		ExpectedReturn:      0.05,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, analysis.IncomeGapPercentage)
	assert.False(t, math.IsNaN(analysis.IncomeGapPercentage))
	assert.True(t, analysis.OnTrack)
}

func TestAnalyzeRetirementInvalidInput(t *testing.T) {
	_, err := AnalyzeRetirement(RetirementInput{CurrentAge: 65, RetirementAge: 65})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidInput, KindOf(err))

	_, err = AnalyzeRetirement(RetirementInput{CurrentAge: 30, RetirementAge: 65, LifeExpectancy: 60})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidInput, KindOf(err))

	_, err = AnalyzeRetirement(RetirementInput{CurrentAge: 30, RetirementAge: 65, LifeExpectancy: 90, CurrentSavings: -1})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidInput, KindOf(err))
}
