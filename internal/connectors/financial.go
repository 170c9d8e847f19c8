// internal/connectors/financial.go
package connectors

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/engine"
)

// filingsRecord is the filings gateway's summary of a company's statement
// history.
type filingsRecord struct {
	FilingsFound     bool   `json:"filings_found"`
	LatestFilingDate string `json:"latest_filing_date"`
	FilingStatus     string `json:"filing_status"`
	AuditorChanges   bool   `json:"auditor_changes"`
	LateFilings      bool   `json:"late_filings"`
}

// FetchFinancial pulls the filing history, keyed by the registration
// identifier when the caller supplied one and by name otherwise.
func (s *Set) FetchFinancial(ctx context.Context, q engine.CompanyQuery) (engine.FinancialFinding, error) {
	identifier := q.RegistrationID
	param := "cik"
	if identifier == "" {
		identifier = q.CompanyName
		param = "company"
	}
	cacheKey := fmt.Sprintf("source:financial:%s", strings.ToLower(identifier))

	var record filingsRecord
	if !s.cache.lookup(ctx, cacheKey, &record) {
		endpoint := fmt.Sprintf("%s/filings?%s=%s&type=10-K",
			s.cfg.EdgarBaseURL, param, url.QueryEscape(identifier))

		body, err := s.http.GetBody(ctx, endpoint)
		if err != nil {
			return engine.FinancialFinding{}, errors.NewSourceUnavailableError("financial", err)
		}
		if err := decode(body, &record); err != nil {
			return engine.FinancialFinding{}, errors.NewSourceUnavailableError("financial", err)
		}
		s.cache.store(ctx, cacheKey, record)
	}

	return engine.FinancialFinding{
		MissingStatements: !record.FilingsFound,
		LateFilings:       record.LateFilings,
		AuditorChanges:    record.AuditorChanges,
		FilingStatus:      strings.ToLower(record.FilingStatus),
	}, nil
}
