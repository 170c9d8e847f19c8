// internal/engine/finding.go
package engine

// Findings carries the raw per-category evidence collected by the fetch
// coordinator. Each category finding has an Unavailable marker; when set, the
// rest of the struct is meaningless and the category scores NeutralScore with
// no flags.
type Findings struct {
	Registration  RegistrationFinding
	Financial     FinancialFinding
	Domain        DomainFinding
	Regulatory    RegulatoryFinding
	Reputation    ReputationFinding
	BusinessModel BusinessModelFinding
}

// Unavailable lists the categories whose fetch failed, in declaration order.
func (f Findings) Unavailable() []Category {
	out := []Category{}
	for _, c := range Categories {
		if f.unavailable(c) {
			out = append(out, c)
		}
	}
	return out
}

func (f Findings) unavailable(c Category) bool {
	switch c {
	case CategoryRegistration:
		return f.Registration.Unavailable
	case CategoryFinancial:
		return f.Financial.Unavailable
	case CategoryDomain:
		return f.Domain.Unavailable
	case CategoryRegulatory:
		return f.Regulatory.Unavailable
	case CategoryReputation:
		return f.Reputation.Unavailable
	case CategoryBusinessModel:
		return f.BusinessModel.Unavailable
	default:
		return false
	}
}

// RegistrationFinding is corporate-registry evidence.
type RegistrationFinding struct {
	Unavailable bool

	// Verified is false when the registry had no record of the company at
	// all, which is itself a strong signal and distinct from Unavailable.
	Verified          bool
	Status            string
	AgeDays           int
	AgeKnown          bool
	RegisteredAddress string
	OfficerCount      int
}

// Registration status values as reported by the registry, lowercased.
const (
	RegistrationStatusActive    = "active"
	RegistrationStatusDissolved = "dissolved"
	RegistrationStatusInactive  = "inactive"
	RegistrationStatusSuspended = "suspended"
)

// FinancialFinding is filing-history evidence.
type FinancialFinding struct {
	Unavailable bool

	MissingStatements bool
	LateFilings       bool
	AuditorChanges    bool
	FilingStatus      string
}

// Filing status values.
const (
	FilingStatusCurrent    = "current"
	FilingStatusDelinquent = "delinquent"
)

// DomainFinding is WHOIS and certificate evidence.
type DomainFinding struct {
	Unavailable bool

	AgeDays          int
	AgeKnown         bool
	PrivacyProtected bool
	SSLValid         bool
}

// RegulatorySourceFinding is the enforcement-action count from one regulator.
type RegulatorySourceFinding struct {
	Source      string
	ActionCount int
}

// RegulatoryFinding is enforcement-database evidence across regulators.
type RegulatoryFinding struct {
	Unavailable bool

	Sources []RegulatorySourceFinding
}

// TotalActions sums action counts across all sources.
func (f RegulatoryFinding) TotalActions() int {
	total := 0
	for _, s := range f.Sources {
		total += s.ActionCount
	}
	return total
}

// ReputationFinding is consumer-rating evidence.
type ReputationFinding struct {
	Unavailable bool

	BBBRating          string
	BBBComplaints      int
	TrustpilotScore    float64
	TrustpilotKnown    bool
	SuspiciousPatterns []string
}

// BusinessModelFinding is derived from the query itself rather than an
// external source; its fetch only fails when the coordinator is cancelled.
type BusinessModelFinding struct {
	Unavailable bool

	PromisedReturns    float64
	HasPromisedReturns bool
	PaymentMethods     []string
	Description        string
}
