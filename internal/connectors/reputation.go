// internal/connectors/reputation.go
package connectors

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/engine"
)

// bbbRecord is the BBB gateway's profile for a company.
type bbbRecord struct {
	Rating     string `json:"rating"`
	Complaints int    `json:"complaints"`
}

// trustpilotRecord is the review gateway's summary for a domain.
type trustpilotRecord struct {
	Score              float64  `json:"score"`
	ReviewCount        int      `json:"review_count"`
	SuspiciousPatterns []string `json:"suspicious_patterns"`
}

// FetchReputation combines BBB and Trustpilot data. Either source may be down
// on its own; the category only becomes unavailable when nothing at all could
// be collected.
func (s *Set) FetchReputation(ctx context.Context, q engine.CompanyQuery) (engine.ReputationFinding, error) {
	finding := engine.ReputationFinding{}

	bbb, bbbErr := s.fetchBBB(ctx, q.CompanyName)
	if bbbErr == nil {
		finding.BBBRating = bbb.Rating
		finding.BBBComplaints = bbb.Complaints
	}

	var trustErr error
	if q.Domain != "" {
		var trust trustpilotRecord
		trust, trustErr = s.fetchTrustpilot(ctx, q.Domain)
		if trustErr == nil {
			finding.TrustpilotScore = trust.Score
			finding.TrustpilotKnown = trust.ReviewCount > 0
			finding.SuspiciousPatterns = trust.SuspiciousPatterns
		}
	}

	if bbbErr != nil && (q.Domain == "" || trustErr != nil) {
		return engine.ReputationFinding{}, errors.NewSourceUnavailableError("reputation", bbbErr)
	}
	return finding, nil
}

func (s *Set) fetchBBB(ctx context.Context, companyName string) (bbbRecord, error) {
	cacheKey := fmt.Sprintf("source:reputation:bbb:%s", strings.ToLower(companyName))

	var record bbbRecord
	if s.cache.lookup(ctx, cacheKey, &record) {
		return record, nil
	}

	endpoint := fmt.Sprintf("%s/search?find_text=%s", s.cfg.BBBBaseURL, url.QueryEscape(companyName))
	body, err := s.http.GetBody(ctx, endpoint)
	if err != nil {
		return bbbRecord{}, err
	}
	if err := decode(body, &record); err != nil {
		return bbbRecord{}, err
	}
	s.cache.store(ctx, cacheKey, record)
	return record, nil
}

func (s *Set) fetchTrustpilot(ctx context.Context, domain string) (trustpilotRecord, error) {
	cacheKey := fmt.Sprintf("source:reputation:trustpilot:%s", domain)

	var record trustpilotRecord
	if s.cache.lookup(ctx, cacheKey, &record) {
		return record, nil
	}

	endpoint := fmt.Sprintf("%s/review/%s", s.cfg.TrustBaseURL, domain)
	body, err := s.http.GetBody(ctx, endpoint)
	if err != nil {
		return trustpilotRecord{}, err
	}
	if err := decode(body, &record); err != nil {
		return trustpilotRecord{}, err
	}
	s.cache.store(ctx, cacheKey, record)
	return record, nil
}
