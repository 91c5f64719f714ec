package loan

import (
	"math"
	"strconv"
	"strings"
)

// CalculatedAmount is the raw LTV-derived limit for one collateral item:
// floor(appraisal × ltv / 100).
func CalculatedAmount(p Property) float64 {
	return math.Floor(p.AppraisalValue * p.ItemLTV / 100)
}

// FinalAmount is the per-item limit after senior deduction, clamped at zero.
func FinalAmount(p Property) float64 {
	final := CalculatedAmount(p) - p.SeniorDeduction
	if final < 0 {
		return 0
	}
	return final
}

// TotalLimit sums the final amounts of all collateral items. Always computed
// fresh from the current registry, never cached.
func TotalLimit(properties []Property) float64 {
	var total float64
	for _, p := range properties {
		total += FinalAmount(p)
	}
	return total
}

// FormatAmount renders a monetary value with thousands grouping for display.
// Formatting is presentation only and never feeds back into a derivation.
func FormatAmount(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := strconv.FormatFloat(math.Floor(amount), 'f', 0, 64)

	var sb strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteRune(',')
		}
		sb.WriteRune(digit)
	}

	out := sb.String()
	if negative {
		out = "-" + out
	}
	return out
}
