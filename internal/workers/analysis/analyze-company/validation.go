// internal/workers/analysis/analyze-company/validation.go
package analyzecompany

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// inputSchema rejects malformed payloads before they reach the engine's own
// field validation.
var inputSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"company_name"},
	"properties": map[string]interface{}{
		"company_name":     map[string]interface{}{"type": "string", "minLength": 1},
		"domain":           map[string]interface{}{"type": "string"},
		"jurisdiction":     map[string]interface{}{"type": "string"},
		"registration_id":  map[string]interface{}{"type": "string"},
		"description":      map[string]interface{}{"type": "string"},
		"promised_returns": map[string]interface{}{"type": "number", "minimum": 0},
		"payment_methods": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
	},
}

func validateInput(input *Input) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(inputSchema),
		gojsonschema.NewGoLoader(input),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("input validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
