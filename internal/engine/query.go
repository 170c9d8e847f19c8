// internal/engine/query.go
package engine

import (
	"strings"

	"fraudscan-workers/internal/common/errors"
)

// CompanyQuery is the normalized description of the company under analysis.
// Everything except the name is optional; scorers treat missing fields as
// absent signals, not as errors.
type CompanyQuery struct {
	CompanyName     string   `json:"company_name"`
	Domain          string   `json:"domain,omitempty"`
	Jurisdiction    string   `json:"jurisdiction,omitempty"`
	RegistrationID  string   `json:"registration_id,omitempty"`
	Description     string   `json:"description,omitempty"`
	PromisedReturns *float64 `json:"promised_returns,omitempty"`
	PaymentMethods  []string `json:"payment_methods,omitempty"`
}

// Validate rejects queries the pipeline cannot act on. The jurisdiction
// default is applied by Normalize, not here.
func (q CompanyQuery) Validate() error {
	if strings.TrimSpace(q.CompanyName) == "" {
		return errors.NewInvalidCompanyQueryError("company_name is required")
	}
	if q.PromisedReturns != nil && *q.PromisedReturns < 0 {
		return errors.NewInvalidCompanyQueryError("promised_returns must not be negative")
	}
	return nil
}

// Normalize returns a copy with defaults applied: whitespace-trimmed name,
// lowercased domain and a "US" jurisdiction when none was given.
func (q CompanyQuery) Normalize() CompanyQuery {
	out := q
	out.CompanyName = strings.TrimSpace(q.CompanyName)
	out.Domain = strings.ToLower(strings.TrimSpace(q.Domain))
	out.Jurisdiction = strings.ToUpper(strings.TrimSpace(q.Jurisdiction))
	if out.Jurisdiction == "" {
		out.Jurisdiction = "US"
	}
	return out
}
