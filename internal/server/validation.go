package server

import (
	stderrors "loandesk/internal/common/errors"
	"loandesk/internal/common/validation"
)

// Request body schemas. Structural checks live here; semantic checks (does
// the district belong to the city, does the property exist) stay in the
// domain layer.

const locationEditSchema = `{
	"type": "object",
	"properties": {
		"field": {"type": "string", "minLength": 1},
		"value": {"type": "string"}
	},
	"required": ["field"]
}`

const rentalUnitSchema = `{
	"type": "object",
	"properties": {
		"floor": {"type": "string"},
		"unit": {"type": "string"},
		"deposit": {"type": "number", "minimum": 0},
		"monthlyRent": {"type": "number", "minimum": 0}
	}
}`

// validateBody checks a decoded request body against its schema and wraps
// the failure as a validation error.
func validateBody(doc interface{}, schema string) error {
	if err := validation.ValidateDocument(doc, schema); err != nil {
		return stderrors.NewValidationFailedError(err.Error())
	}
	return nil
}
