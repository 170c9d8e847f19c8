// internal/engine/scorer_domain.go
package engine

import "fmt"

type domainScorer struct {
	t Thresholds
}

func (domainScorer) Category() Category { return CategoryDomain }

func (s domainScorer) Score(f *Findings) (float64, []Flag) {
	dom := f.Domain
	if dom.Unavailable {
		return NeutralScore, nil
	}

	score := 0.0
	var flags []Flag

	young := dom.AgeKnown && dom.AgeDays < s.t.YoungDomainDays
	if young {
		score += 0.5
		flags = append(flags, RedFlag(CategoryDomain, SeverityHigh,
			"Domain is less than 1 year old"))
	} else if dom.AgeKnown && dom.AgeDays > s.t.EstablishedDomainDays {
		flags = append(flags, GreenFlag(CategoryDomain,
			fmt.Sprintf("Established domain (%d years old)", dom.AgeDays/365)))
	}

	// Privacy protection alone is common and only weakly suspicious; it is
	// weighted fully when it coincides with another domain risk signal.
	if dom.PrivacyProtected {
		if young || !dom.SSLValid {
			score += 0.3
			flags = append(flags, RedFlag(CategoryDomain, SeverityMedium,
				"Domain registration uses privacy protection"))
		} else {
			score += 0.15
		}
	}

	if !dom.SSLValid {
		score += 0.4
		flags = append(flags, RedFlag(CategoryDomain, SeverityHigh,
			"No valid SSL certificate found"))
	} else {
		flags = append(flags, GreenFlag(CategoryDomain,
			"Valid SSL certificate"))
	}

	return clip01(score), flags
}
