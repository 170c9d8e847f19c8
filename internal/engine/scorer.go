// internal/engine/scorer.go
package engine

// CategoryScorer evaluates one category's findings into a score in [0,1] and
// the flags that justify it. Scorers are pure: same findings, same result.
type CategoryScorer interface {
	Category() Category
	Score(f *Findings) (float64, []Flag)
}

// Thresholds holds the tunable rule constants shared by the scorers. Defaults
// mirror the documented rule set; deployments can tighten them via config.
type Thresholds struct {
	YoungCompanyDays      int
	EstablishedDays       int
	YoungDomainDays       int
	EstablishedDomainDays int
	ComplaintLimit        int
	LowTrustpilot         float64
	GoodTrustpilot        float64
	HighYieldPct          float64
	ElevatedYieldPct      float64
	MLMKeywordMin         int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		YoungCompanyDays:      365,
		EstablishedDays:       1825,
		YoungDomainDays:       365,
		EstablishedDomainDays: 1825,
		ComplaintLimit:        50,
		LowTrustpilot:         2.5,
		GoodTrustpilot:        4.0,
		HighYieldPct:          20.0,
		ElevatedYieldPct:      10.0,
		MLMKeywordMin:         3,
	}
}

// scorers returns the full scorer set in category declaration order.
func scorers(t Thresholds) []CategoryScorer {
	return []CategoryScorer{
		registrationScorer{t},
		financialScorer{t},
		domainScorer{t},
		regulatoryScorer{t},
		reputationScorer{t},
		businessModelScorer{t},
	}
}

// clip01 bounds a rule sum to the score contract.
func clip01(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	if score < 0.0 {
		return 0.0
	}
	return score
}
