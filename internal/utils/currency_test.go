package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "Rs 0.00", FormatCurrency(0))
	assert.Equal(t, "Rs 999.99", FormatCurrency(999.99))
	assert.Equal(t, "Rs 1,000.00", FormatCurrency(1000))
	assert.Equal(t, "Rs 1,234,567.89", FormatCurrency(1234567.89))
	assert.Equal(t, "-Rs 1,234.56", FormatCurrency(-1234.56))
	assert.Equal(t, "Rs 100,000.00", FormatCurrency(100000))
}
