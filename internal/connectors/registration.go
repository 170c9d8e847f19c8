// internal/connectors/registration.go
package connectors

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/engine"
)

// registrationRecord is the registry gateway's company record.
type registrationRecord struct {
	Found             bool     `json:"found"`
	CIK               string   `json:"cik"`
	Status            string   `json:"status"`
	IncorporationDate string   `json:"incorporation_date"`
	RegisteredAddress string   `json:"registered_address"`
	Officers          []string `json:"officers"`
}

// FetchRegistration looks the company up in the corporate registry gateway
// (EDGAR for US filers).
func (s *Set) FetchRegistration(ctx context.Context, q engine.CompanyQuery) (engine.RegistrationFinding, error) {
	cacheKey := fmt.Sprintf("source:registration:%s:%s", q.Jurisdiction, strings.ToLower(q.CompanyName))

	var record registrationRecord
	if !s.cache.lookup(ctx, cacheKey, &record) {
		endpoint := fmt.Sprintf("%s/companies?name=%s&jurisdiction=%s",
			s.cfg.EdgarBaseURL, url.QueryEscape(q.CompanyName), url.QueryEscape(q.Jurisdiction))

		body, err := s.http.GetBody(ctx, endpoint)
		if err != nil {
			return engine.RegistrationFinding{}, errors.NewSourceUnavailableError("registration", err)
		}
		if err := decode(body, &record); err != nil {
			return engine.RegistrationFinding{}, errors.NewSourceUnavailableError("registration", err)
		}
		s.cache.store(ctx, cacheKey, record)
	}

	age, ageKnown := s.ageDays(record.IncorporationDate)
	return engine.RegistrationFinding{
		Verified:          record.Found && record.CIK != "",
		Status:            strings.ToLower(record.Status),
		AgeDays:           age,
		AgeKnown:          ageKnown,
		RegisteredAddress: record.RegisteredAddress,
		OfficerCount:      len(record.Officers),
	}, nil
}
