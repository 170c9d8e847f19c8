// internal/workers/notification/alert-critical/models.go
package alertcritical

import "fraudscan-workers/internal/engine"

// Input is the alert payload produced by the analyze-company task.
type Input struct {
	AnalysisID       string        `json:"analysisId"`
	CompanyName      string        `json:"company_name"`
	RiskLevel        string        `json:"riskLevel"`
	OverallRiskScore float64       `json:"overallRiskScore"`
	RedFlags         []engine.Flag `json:"redFlags,omitempty"`
}

type Output struct {
	SNSMessageID string `json:"snsMessageId,omitempty"`
	EmailSent    bool   `json:"emailSent"`
	Delivered    bool   `json:"delivered"`
}
