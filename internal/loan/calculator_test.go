package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatedAmount(t *testing.T) {
	t.Run("floors the LTV product", func(t *testing.T) {
		p := Property{AppraisalValue: 333, ItemLTV: 70}
		// 333 * 70 / 100 = 233.1
		assert.Equal(t, 233.0, CalculatedAmount(p))
	})

	t.Run("zero appraisal yields zero", func(t *testing.T) {
		p := Property{AppraisalValue: 0, ItemLTV: 70}
		assert.Equal(t, 0.0, CalculatedAmount(p))
	})

	t.Run("ltv above 100 is not clamped", func(t *testing.T) {
		p := Property{AppraisalValue: 100, ItemLTV: 120}
		assert.Equal(t, 120.0, CalculatedAmount(p))
	})
}

func TestFinalAmount(t *testing.T) {
	t.Run("subtracts senior deduction", func(t *testing.T) {
		p := Property{AppraisalValue: 1000, ItemLTV: 70, SeniorDeduction: 200}
		assert.Equal(t, 500.0, FinalAmount(p))
	})

	t.Run("clamps at zero when deduction exceeds calculated", func(t *testing.T) {
		p := Property{AppraisalValue: 100, ItemLTV: 70, SeniorDeduction: 500}
		assert.Equal(t, 0.0, FinalAmount(p))
	})
}

func TestTotalLimit(t *testing.T) {
	properties := []Property{
		{AppraisalValue: 1000, ItemLTV: 70},                       // 700
		{AppraisalValue: 500, ItemLTV: 60, SeniorDeduction: 100},  // 200
		{AppraisalValue: 100, ItemLTV: 50, SeniorDeduction: 9999}, // clamped to 0
	}
	assert.Equal(t, 900.0, TotalLimit(properties))

	t.Run("empty registry totals zero", func(t *testing.T) {
		assert.Equal(t, 0.0, TotalLimit(nil))
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "700", FormatAmount(700))
	assert.Equal(t, "1,000", FormatAmount(1000))
	assert.Equal(t, "12,345,678", FormatAmount(12345678))
	assert.Equal(t, "-1,234", FormatAmount(-1234))
}
