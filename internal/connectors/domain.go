// internal/connectors/domain.go
package connectors

import (
	"context"
	"fmt"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/engine"
)

// whoisRecord is the WHOIS gateway's record for one domain.
type whoisRecord struct {
	RegistrationDate string `json:"registration_date"`
	Registrar        string `json:"registrar"`
	PrivacyProtected bool   `json:"privacy_protected"`
	SSLValid         bool   `json:"ssl_valid"`
}

// FetchDomain pulls WHOIS and certificate data. A query with no domain has
// nothing to look up, which counts as an unavailable category rather than a
// validation error.
func (s *Set) FetchDomain(ctx context.Context, q engine.CompanyQuery) (engine.DomainFinding, error) {
	if q.Domain == "" {
		return engine.DomainFinding{}, errors.NewSourceUnavailableError("domain",
			fmt.Errorf("no domain in query"))
	}
	cacheKey := fmt.Sprintf("source:domain:%s", q.Domain)

	var record whoisRecord
	if !s.cache.lookup(ctx, cacheKey, &record) {
		endpoint := fmt.Sprintf("%s/whois/%s", s.cfg.WhoisBaseURL, q.Domain)

		body, err := s.http.GetBody(ctx, endpoint)
		if err != nil {
			return engine.DomainFinding{}, errors.NewSourceUnavailableError("domain", err)
		}
		if err := decode(body, &record); err != nil {
			return engine.DomainFinding{}, errors.NewSourceUnavailableError("domain", err)
		}
		s.cache.store(ctx, cacheKey, record)
	}

	age, ageKnown := s.ageDays(record.RegistrationDate)
	return engine.DomainFinding{
		AgeDays:          age,
		AgeKnown:         ageKnown,
		PrivacyProtected: record.PrivacyProtected,
		SSLValid:         record.SSLValid,
	}, nil
}
