package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPaymentZeroRate(t *testing.T) {
	// Zero rate must be exactly principal over number of payments
	assert.Equal(t, 36000.0/360, MonthlyPayment(36000, 0, 30))
	assert.Equal(t, 1200.0/12, MonthlyPayment(1200, 0, 1))
}

func TestMonthlyPayment(t *testing.T) {
	// 200k at 6% over 30 years is a well-known ~1199.10/month
	payment := MonthlyPayment(200000, 0.06, 30)
	assert.InDelta(t, 1199.10, payment, 0.01)
}

func TestAmortizationSchedule(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		years     int
	}{
		{"typical mortgage", 200000, 0.06, 30},
		{"short loan", 10000, 0.08, 3},
		{"zero rate", 12000, 0, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			schedule := AmortizationSchedule(tc.principal, tc.rate, tc.years)
			require.Len(t, schedule, tc.years*12)

			// Final balance amortizes to zero
			last := schedule[len(schedule)-1]
			assert.InDelta(t, 0, last.RemainingBalance, 1e-6)

			// Principal portions sum back to the principal
			var principalSum float64
			for _, row := range schedule {
				principalSum += row.Principal
				assert.InDelta(t, row.Payment, row.Principal+row.Interest, 1e-9)
				assert.GreaterOrEqual(t, row.RemainingBalance, 0.0)
			}
			assert.InDelta(t, tc.principal, principalSum, 1e-6)
		})
	}
}

func TestAmortizationScheduleMonthsOrdered(t *testing.T) {
	schedule := AmortizationSchedule(5000, 0.05, 2)
	for i, row := range schedule {
		assert.Equal(t, i+1, row.Month)
	}
}
