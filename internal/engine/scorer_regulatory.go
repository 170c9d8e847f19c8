// internal/engine/scorer_regulatory.go
package engine

import "fmt"

type regulatoryScorer struct {
	t Thresholds
}

func (regulatoryScorer) Category() Category { return CategoryRegulatory }

// Score steps to 0.9 as soon as any enforcement action exists, then grows with
// the total action count so that more actions never score lower than fewer.
func (s regulatoryScorer) Score(f *Findings) (float64, []Flag) {
	reg := f.Regulatory
	if reg.Unavailable {
		return NeutralScore, nil
	}

	total := reg.TotalActions()
	if total == 0 {
		return 0.0, nil
	}

	var flags []Flag
	for _, src := range reg.Sources {
		if src.ActionCount == 0 {
			continue
		}
		flags = append(flags, RedFlag(CategoryRegulatory, SeverityCritical,
			fmt.Sprintf("%d regulatory action(s) found from %s", src.ActionCount, src.Source)))
	}

	return clip01(0.9 + 0.02*float64(total)), flags
}
