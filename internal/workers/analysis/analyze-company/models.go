// internal/workers/analysis/analyze-company/models.go
package analyzecompany

import (
	"fraudscan-workers/internal/engine"
	"fraudscan-workers/internal/store"
)

// Input is the job payload: the company under analysis as process variables.
type Input struct {
	CompanyName     string   `json:"company_name"`
	Domain          string   `json:"domain,omitempty"`
	Jurisdiction    string   `json:"jurisdiction,omitempty"`
	RegistrationID  string   `json:"registration_id,omitempty"`
	Description     string   `json:"description,omitempty"`
	PromisedReturns *float64 `json:"promised_returns,omitempty"`
	PaymentMethods  []string `json:"payment_methods,omitempty"`
}

func (in *Input) toQuery() engine.CompanyQuery {
	return engine.CompanyQuery{
		CompanyName:     in.CompanyName,
		Domain:          in.Domain,
		Jurisdiction:    in.Jurisdiction,
		RegistrationID:  in.RegistrationID,
		Description:     in.Description,
		PromisedReturns: in.PromisedReturns,
		PaymentMethods:  in.PaymentMethods,
	}
}

// Output carries the stored verdict back into the process. AlertRequired
// drives the BPMN gateway toward the alert-critical task.
type Output struct {
	AnalysisID       string                `json:"analysisId"`
	RiskLevel        string                `json:"riskLevel"`
	OverallRiskScore float64               `json:"overallRiskScore"`
	DataComplete     bool                  `json:"dataComplete"`
	AlertRequired    bool                  `json:"alertRequired"`
	Analysis         *store.StoredAnalysis `json:"analysis"`
}
