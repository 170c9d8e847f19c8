// internal/connectors/regulatory.go
package connectors

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/engine"
)

// enforcementRecord is one regulator's search result for a company.
type enforcementRecord struct {
	Source       string   `json:"source"`
	ActionsFound []string `json:"actions_found"`
}

// FetchRegulatory searches the enforcement gateway across regulators (SEC
// litigation releases, FTC cases).
func (s *Set) FetchRegulatory(ctx context.Context, q engine.CompanyQuery) (engine.RegulatoryFinding, error) {
	cacheKey := fmt.Sprintf("source:regulatory:%s", strings.ToLower(q.CompanyName))

	var records []enforcementRecord
	if !s.cache.lookup(ctx, cacheKey, &records) {
		endpoint := fmt.Sprintf("%s/enforcement?company=%s",
			s.cfg.SECBaseURL, url.QueryEscape(q.CompanyName))

		body, err := s.http.GetBody(ctx, endpoint)
		if err != nil {
			return engine.RegulatoryFinding{}, errors.NewSourceUnavailableError("regulatory", err)
		}
		if err := decode(body, &records); err != nil {
			return engine.RegulatoryFinding{}, errors.NewSourceUnavailableError("regulatory", err)
		}
		s.cache.store(ctx, cacheKey, records)
	}

	finding := engine.RegulatoryFinding{}
	for _, r := range records {
		finding.Sources = append(finding.Sources, engine.RegulatorySourceFinding{
			Source:      r.Source,
			ActionCount: len(r.ActionsFound),
		})
	}
	return finding, nil
}
