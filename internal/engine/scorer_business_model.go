// internal/engine/scorer_business_model.go
package engine

import (
	"fmt"
	"strings"
)

type businessModelScorer struct {
	t Thresholds
}

func (businessModelScorer) Category() Category { return CategoryBusinessModel }

// riskyPaymentMethods are payment channels with no recourse for the buyer.
var riskyPaymentMethods = map[string]bool{
	"cryptocurrency": true,
	"wire_transfer":  true,
	"gift_cards":     true,
	"cash":           true,
}

// mlmKeywords are phrases characteristic of multi-level marketing pitches.
var mlmKeywords = []string{
	"recruit", "downline", "upline", "multi-level", "network marketing",
	"unlimited income", "passive income", "financial freedom",
}

func (s businessModelScorer) Score(f *Findings) (float64, []Flag) {
	bm := f.BusinessModel
	if bm.Unavailable {
		return NeutralScore, nil
	}

	score := 0.0
	var flags []Flag

	if bm.HasPromisedReturns {
		if bm.PromisedReturns > s.t.HighYieldPct {
			score += 0.7
			flags = append(flags, RedFlag(CategoryBusinessModel, SeverityCritical,
				fmt.Sprintf("Unrealistic return promises: %g%% annually", bm.PromisedReturns)))
		} else if bm.PromisedReturns > s.t.ElevatedYieldPct {
			score += 0.3
			flags = append(flags, RedFlag(CategoryBusinessModel, SeverityMedium,
				fmt.Sprintf("High return promises: %g%% annually", bm.PromisedReturns)))
		}
	}

	var risky []string
	for _, pm := range bm.PaymentMethods {
		normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(pm)), " ", "_")
		if riskyPaymentMethods[normalized] {
			risky = append(risky, normalized)
		}
	}
	if len(risky) > 0 {
		score += 0.4 * float64(len(risky))
		flags = append(flags, RedFlag(CategoryBusinessModel, SeverityHigh,
			fmt.Sprintf("Risky payment methods: %s", strings.Join(risky, ", "))))
	}

	if desc := strings.ToLower(bm.Description); desc != "" {
		matched := 0
		for _, kw := range mlmKeywords {
			if strings.Contains(desc, kw) {
				matched++
			}
		}
		if matched >= s.t.MLMKeywordMin {
			score += 0.6
			flags = append(flags, RedFlag(CategoryBusinessModel, SeverityHigh,
				"MLM/pyramid scheme indicators detected"))
		}
	}

	return clip01(score), flags
}
