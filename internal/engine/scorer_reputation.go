// internal/engine/scorer_reputation.go
package engine

import (
	"fmt"
	"strings"
)

type reputationScorer struct {
	t Thresholds
}

func (reputationScorer) Category() Category { return CategoryReputation }

func (s reputationScorer) Score(f *Findings) (float64, []Flag) {
	rep := f.Reputation
	if rep.Unavailable {
		return NeutralScore, nil
	}

	score := 0.0
	var flags []Flag

	if rating := strings.ToUpper(strings.TrimSpace(rep.BBBRating)); rating != "" {
		switch {
		case strings.HasPrefix(rating, "F"), strings.HasPrefix(rating, "D"):
			score += 0.6
			flags = append(flags, RedFlag(CategoryReputation, SeverityHigh,
				fmt.Sprintf("Poor BBB rating: %s", rating)))
		case strings.HasPrefix(rating, "A"):
			flags = append(flags, GreenFlag(CategoryReputation,
				fmt.Sprintf("Good BBB rating: %s", rating)))
		}
	}

	if rep.BBBComplaints > s.t.ComplaintLimit {
		score += 0.4
		flags = append(flags, RedFlag(CategoryReputation, SeverityHigh,
			fmt.Sprintf("%d BBB complaints filed", rep.BBBComplaints)))
	}

	if rep.TrustpilotKnown {
		if rep.TrustpilotScore < s.t.LowTrustpilot {
			score += 0.5
			flags = append(flags, RedFlag(CategoryReputation, SeverityHigh,
				fmt.Sprintf("Low Trustpilot score: %.1f/5", rep.TrustpilotScore)))
		} else if rep.TrustpilotScore > s.t.GoodTrustpilot {
			flags = append(flags, GreenFlag(CategoryReputation,
				fmt.Sprintf("Good Trustpilot score: %.1f/5", rep.TrustpilotScore)))
		}
	}

	if len(rep.SuspiciousPatterns) > 0 {
		score += 0.3
		flags = append(flags, RedFlag(CategoryReputation, SeverityMedium,
			fmt.Sprintf("Suspicious review patterns detected: %s",
				strings.Join(rep.SuspiciousPatterns, ", "))))
	}

	return clip01(score), flags
}
