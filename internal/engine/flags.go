// internal/engine/flags.go
package engine

import (
	"sort"
	"strings"
)

// splitFlags separates scorer output into the two reported lists. Red flags
// are ordered by severity (most severe first) with category name breaking
// ties; green flags keep the order the scorers emitted them, which is the
// category declaration order.
func splitFlags(all []Flag) (red, green []Flag) {
	red = []Flag{}
	green = []Flag{}
	for _, f := range all {
		if f.Kind == FlagGreen {
			green = append(green, f)
		} else {
			red = append(red, f)
		}
	}
	sort.SliceStable(red, func(i, j int) bool {
		if red[i].Severity != red[j].Severity {
			return red[i].Severity > red[j].Severity
		}
		return red[i].Category < red[j].Category
	})
	return red, green
}

// buildRecommendations produces the ordered advice list: level-based items
// first, then items triggered by specific red flags, deduplicated while
// keeping first occurrence order.
func buildRecommendations(level RiskLevel, redFlags []Flag) []string {
	var recs []string

	switch level {
	case RiskCritical:
		recs = append(recs,
			"AVOID: This company shows critical scam indicators",
			"DO NOT invest or provide personal/financial information",
			"Report to appropriate regulatory authorities (SEC, FTC, etc.)",
		)
	case RiskHigh:
		recs = append(recs,
			"HIGH RISK: Exercise extreme caution",
			"Conduct thorough due diligence before any engagement",
			"Consult with a financial advisor or attorney",
		)
	case RiskMedium:
		recs = append(recs,
			"MODERATE RISK: Proceed with caution",
			"Verify company credentials independently",
			"Research thoroughly before making decisions",
		)
	default:
		recs = append(recs,
			"LOW RISK: Standard due diligence recommended",
			"Still verify key claims independently",
		)
	}

	for _, flag := range redFlags {
		msg := strings.ToLower(flag.Message)

		if flag.Category == CategoryRegulatory && flag.Severity == SeverityCritical {
			recs = append(recs, "Review regulatory enforcement actions in detail")
		}
		if flag.Category == CategoryBusinessModel && strings.Contains(msg, "unrealistic return") {
			recs = append(recs, "Unrealistic returns are a major red flag - extremely high risk")
		}
		if flag.Category == CategoryDomain && strings.Contains(msg, "ssl") {
			recs = append(recs, "Never enter sensitive information on sites without valid SSL")
		}
	}

	return dedupe(recs)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
