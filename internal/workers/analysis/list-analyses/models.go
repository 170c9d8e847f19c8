// internal/workers/analysis/list-analyses/models.go
package listanalyses

import "fraudscan-workers/internal/store"

// Input mirrors the store's listing filter; all fields are optional.
type Input struct {
	RiskLevel   string `json:"risk_level,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

type Output struct {
	Analyses []store.StoredAnalysis `json:"analyses"`
	Count    int                    `json:"count"`
}
