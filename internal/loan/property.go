// Package loan implements the collateral loan-limit core: the location
// selector state machine, the collateral registry, the limit calculator and
// the per-session aggregate that ties them together.
package loan

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"loandesk/internal/catalog"
)

// Property is a single collateral item held in the registry. Monetary values
// are in 천원 (thousand KRW) units.
type Property struct {
	ID              string  `json:"id"`
	LotNumber       string  `json:"lotNumber"`
	Usage           string  `json:"usage"`
	MajorCategory   string  `json:"majorCategory"`
	MinorCategory   string  `json:"minorCategory"`
	AppraisalValue  float64 `json:"appraisalValue"`
	ItemLTV         float64 `json:"itemLtv"`
	SeniorDeduction float64 `json:"seniorDeduction"`
}

// RentalUnit is a tenancy record attached to the session. It is carried and
// persisted but not consumed by the limit derivation.
type RentalUnit struct {
	ID          string  `json:"id"`
	Floor       string  `json:"floor"`
	Unit        string  `json:"unit"`
	Deposit     float64 `json:"deposit"`
	MonthlyRent float64 `json:"monthlyRent"`
}

const defaultItemLTV = 70

// NewProperty returns a collateral item with a fresh id, the standard
// category pair and the given usage. A non-positive LTV falls back to the
// standard item LTV. The seed property of a fresh session carries usage 대지;
// rows added afterwards start with an empty usage.
func NewProperty(usage string, ltv float64) Property {
	if ltv <= 0 {
		ltv = defaultItemLTV
	}
	return Property{
		ID:            uuid.NewString(),
		LotNumber:     "",
		Usage:         usage,
		MajorCategory: "주택",
		MinorCategory: "아파트",
		ItemLTV:       ltv,
	}
}

// coerceNumber converts a patch value into a float64. Malformed or missing
// numeric text coerces to 0 rather than failing the edit.
func coerceNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// applyPatch applies a field-level patch to a property. Changing the major
// category resets the minor category to the first entry of the new list.
// Unknown fields are ignored.
func applyPatch(p *Property, patch map[string]interface{}) {
	for field, value := range patch {
		switch field {
		case "lotNumber":
			if s, ok := value.(string); ok {
				p.LotNumber = s
			}
		case "usage":
			if s, ok := value.(string); ok {
				p.Usage = s
			}
		case "majorCategory":
			if s, ok := value.(string); ok {
				p.MajorCategory = s
				p.MinorCategory = catalog.DefaultMinorFor(s)
			}
		case "minorCategory":
			if s, ok := value.(string); ok {
				p.MinorCategory = s
			}
		case "appraisalValue":
			p.AppraisalValue = coerceNumber(value)
		case "itemLtv":
			p.ItemLTV = coerceNumber(value)
		case "seniorDeduction":
			p.SeniorDeduction = coerceNumber(value)
		}
	}
}
