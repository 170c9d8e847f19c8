// internal/engine/scorer_financial.go
package engine

type financialScorer struct {
	t Thresholds
}

func (financialScorer) Category() Category { return CategoryFinancial }

func (s financialScorer) Score(f *Findings) (float64, []Flag) {
	fin := f.Financial
	if fin.Unavailable {
		return NeutralScore, nil
	}

	score := 0.0
	var flags []Flag

	if fin.LateFilings {
		score += 0.4
		flags = append(flags, RedFlag(CategoryFinancial, SeverityHigh,
			"Company has history of late filings"))
	}

	if fin.AuditorChanges {
		score += 0.3
		flags = append(flags, RedFlag(CategoryFinancial, SeverityMedium,
			"Frequent auditor changes detected"))
	}

	switch fin.FilingStatus {
	case FilingStatusDelinquent:
		score += 0.5
		flags = append(flags, RedFlag(CategoryFinancial, SeverityHigh,
			"Delinquent financial filings"))
	case FilingStatusCurrent:
		flags = append(flags, GreenFlag(CategoryFinancial,
			"Financial filings are current"))
	}

	if fin.MissingStatements {
		score += 0.5
		flags = append(flags, RedFlag(CategoryFinancial, SeverityHigh,
			"No financial statements on file"))
	}

	return clip01(score), flags
}
