// internal/engine/types.go
package engine

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category is one of the six independent risk dimensions.
type Category string

const (
	CategoryRegistration  Category = "registration"
	CategoryFinancial     Category = "financial"
	CategoryDomain        Category = "domain"
	CategoryRegulatory    Category = "regulatory"
	CategoryReputation    Category = "reputation"
	CategoryBusinessModel Category = "business_model"
)

// Categories is the fixed declaration order. Scorer registration, green-flag
// ordering and the unavailable-categories list all follow it.
var Categories = []Category{
	CategoryRegistration,
	CategoryFinancial,
	CategoryDomain,
	CategoryRegulatory,
	CategoryReputation,
	CategoryBusinessModel,
}

// Severity is an ordered enumeration; the red-flag sort is a single comparator
// over this order.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return ""
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "low":
		*s = SeverityLow
	case "medium":
		*s = SeverityMedium
	case "high":
		*s = SeverityHigh
	case "critical":
		*s = SeverityCritical
	case "":
		*s = SeverityNone
	default:
		return fmt.Errorf("unknown severity %q", str)
	}
	return nil
}

// FlagKind distinguishes risk indicators from reassuring indicators.
type FlagKind int

const (
	FlagRed FlagKind = iota
	FlagGreen
)

// Flag is a discrete human-readable signal attached to a category. Red flags
// always carry a severity; green flags never do.
type Flag struct {
	Category Category `json:"category"`
	Kind     FlagKind `json:"-"`
	Severity Severity `json:"severity,omitempty"`
	Message  string   `json:"message"`
}

// RedFlag builds a red flag with the given severity.
func RedFlag(category Category, severity Severity, message string) Flag {
	return Flag{Category: category, Kind: FlagRed, Severity: severity, Message: message}
}

// GreenFlag builds a green flag. Green flags carry no severity.
func GreenFlag(category Category, message string) Flag {
	return Flag{Category: category, Kind: FlagGreen, Message: message}
}

// RiskLevel is the four-bucket classification derived from the overall score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevelFor maps an overall score to its level. Intervals are half-open;
// boundary values belong to the upper bucket (0.3 is medium, 0.8 is critical).
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 0.3:
		return RiskLow
	case score < 0.6:
		return RiskMedium
	case score < 0.8:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Weights is the immutable category weighting table passed to the aggregator.
type Weights struct {
	Registration  float64
	Financial     float64
	Domain        float64
	Regulatory    float64
	Reputation    float64
	BusinessModel float64
}

// DefaultWeights returns the documented fixed weighting.
func DefaultWeights() Weights {
	return Weights{
		Registration:  0.15,
		Financial:     0.25,
		Domain:        0.15,
		Regulatory:    0.20,
		Reputation:    0.15,
		BusinessModel: 0.10,
	}
}

// For returns the weight for a category.
func (w Weights) For(c Category) float64 {
	switch c {
	case CategoryRegistration:
		return w.Registration
	case CategoryFinancial:
		return w.Financial
	case CategoryDomain:
		return w.Domain
	case CategoryRegulatory:
		return w.Regulatory
	case CategoryReputation:
		return w.Reputation
	case CategoryBusinessModel:
		return w.BusinessModel
	default:
		return 0
	}
}

// Validate checks the weight-sum invariant.
func (w Weights) Validate() error {
	sum := w.Registration + w.Financial + w.Domain + w.Regulatory + w.Reputation + w.BusinessModel
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		return fmt.Errorf("category weights must sum to 1.0, got %f", sum)
	}
	return nil
}

// NeutralScore is assigned to a category whose underlying data could not be
// collected; it keeps the category in the aggregate without biasing the
// verdict toward either extreme.
const NeutralScore = 0.5

// Analysis is the immutable verdict returned to the caller. It is assembled
// once per request and never recomputed; callers needing a refreshed verdict
// construct a new query.
type Analysis struct {
	CompanyName           string               `json:"company_name"`
	Domain                string               `json:"domain,omitempty"`
	Jurisdiction          string               `json:"jurisdiction"`
	CategoryScores        map[Category]float64 `json:"category_scores"`
	OverallRiskScore      float64              `json:"overall_risk_score"`
	RiskLevel             RiskLevel            `json:"risk_level"`
	RedFlags              []Flag               `json:"red_flags"`
	GreenFlags            []Flag               `json:"green_flags"`
	Recommendations       []string             `json:"recommendations"`
	DataComplete          bool                 `json:"data_complete"`
	UnavailableCategories []Category           `json:"unavailable_categories"`
	AnalysisDate          time.Time            `json:"analysis_date"`
}
