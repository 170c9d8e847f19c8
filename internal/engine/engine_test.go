// internal/engine/engine_test.go
package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudscan-workers/internal/common/errors"
	"fraudscan-workers/internal/common/logger"
)

// stubSource serves canned findings, optionally failing or stalling per
// category.
type stubSource struct {
	findings Findings
	errs     map[Category]error
	stall    map[Category]time.Duration
}

func (s *stubSource) wait(ctx context.Context, c Category) error {
	if d, ok := s.stall[c]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.errs[c]
}

func (s *stubSource) FetchRegistration(ctx context.Context, q CompanyQuery) (RegistrationFinding, error) {
	return s.findings.Registration, s.wait(ctx, CategoryRegistration)
}

func (s *stubSource) FetchFinancial(ctx context.Context, q CompanyQuery) (FinancialFinding, error) {
	return s.findings.Financial, s.wait(ctx, CategoryFinancial)
}

func (s *stubSource) FetchDomain(ctx context.Context, q CompanyQuery) (DomainFinding, error) {
	return s.findings.Domain, s.wait(ctx, CategoryDomain)
}

func (s *stubSource) FetchRegulatory(ctx context.Context, q CompanyQuery) (RegulatoryFinding, error) {
	return s.findings.Regulatory, s.wait(ctx, CategoryRegulatory)
}

func (s *stubSource) FetchReputation(ctx context.Context, q CompanyQuery) (ReputationFinding, error) {
	return s.findings.Reputation, s.wait(ctx, CategoryReputation)
}

func (s *stubSource) FetchBusinessModel(ctx context.Context, q CompanyQuery) (BusinessModelFinding, error) {
	return s.findings.BusinessModel, s.wait(ctx, CategoryBusinessModel)
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

func newTestEngine(t *testing.T, source Source, cfg Config) *Engine {
	t.Helper()
	if cfg.Now == nil {
		cfg.Now = fixedNow
	}
	eng, err := New(cfg, source, logger.NewTestLogger(t))
	require.NoError(t, err)
	return eng
}

func healthyFindings() Findings {
	return Findings{
		Registration: RegistrationFinding{
			Verified: true, Status: "active", AgeDays: 4000, AgeKnown: true,
			RegisteredAddress: "100 Market Street, Suite 400, Denver CO",
			OfficerCount:      3,
		},
		Financial: FinancialFinding{FilingStatus: FilingStatusCurrent},
		Domain:    DomainFinding{AgeDays: 4000, AgeKnown: true, SSLValid: true},
		Regulatory: RegulatoryFinding{Sources: []RegulatorySourceFinding{
			{Source: "SEC", ActionCount: 0}, {Source: "FTC", ActionCount: 0},
		}},
		Reputation: ReputationFinding{
			BBBRating: "A+", BBBComplaints: 2,
			TrustpilotScore: 4.6, TrustpilotKnown: true,
		},
		BusinessModel: BusinessModelFinding{PaymentMethods: []string{"credit_card"}},
	}
}

func TestAnalyzeRejectsInvalidQuery(t *testing.T) {
	eng := newTestEngine(t, &stubSource{findings: healthyFindings()}, Config{})

	tests := []struct {
		name  string
		query CompanyQuery
	}{
		{name: "missing company name", query: CompanyQuery{}},
		{name: "blank company name", query: CompanyQuery{CompanyName: "   "}},
		{name: "negative promised returns", query: CompanyQuery{CompanyName: "Acme", PromisedReturns: floatPtr(-5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := eng.Analyze(context.Background(), tt.query)
			assert.Nil(t, analysis)
			require.Error(t, err)

			var stdErr *errors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, errors.ErrCodeInvalidCompanyQuery, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

func TestAnalyzeLegitimateCompany(t *testing.T) {
	eng := newTestEngine(t, &stubSource{findings: healthyFindings()}, Config{})

	analysis, err := eng.Analyze(context.Background(), CompanyQuery{
		CompanyName: "Granite Ridge Capital",
		Domain:      "graniteridge.example.com",
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, analysis.OverallRiskScore, 0.3)
	assert.Equal(t, RiskLow, analysis.RiskLevel)
	assert.Empty(t, analysis.RedFlags)
	assert.GreaterOrEqual(t, len(analysis.GreenFlags), 4)
	assert.True(t, analysis.DataComplete)
	assert.Empty(t, analysis.UnavailableCategories)
	assert.Equal(t, "US", analysis.Jurisdiction)
	require.NotEmpty(t, analysis.Recommendations)
	assert.Equal(t, "LOW RISK: Standard due diligence recommended", analysis.Recommendations[0])

	// Every category is present and inside the score contract.
	require.Len(t, analysis.CategoryScores, len(Categories))
	for c, score := range analysis.CategoryScores {
		assert.GreaterOrEqual(t, score, 0.0, string(c))
		assert.LessOrEqual(t, score, 1.0, string(c))
	}
}

func TestAnalyzeClassicScheme(t *testing.T) {
	scheme := Findings{
		Registration: RegistrationFinding{},
		Financial:    FinancialFinding{MissingStatements: true, FilingStatus: FilingStatusDelinquent},
		Domain:       DomainFinding{AgeDays: 120, AgeKnown: true, PrivacyProtected: true, SSLValid: false},
		Regulatory: RegulatoryFinding{Sources: []RegulatorySourceFinding{
			{Source: "SEC", ActionCount: 2},
		}},
		Reputation: ReputationFinding{
			BBBRating: "F", BBBComplaints: 80,
			TrustpilotScore: 1.8, TrustpilotKnown: true,
		},
		BusinessModel: BusinessModelFinding{
			PromisedReturns: 35, HasPromisedReturns: true,
			PaymentMethods: []string{"cryptocurrency", "gift_cards"},
			Description:    "Recruit new members into your downline and earn passive income for life",
		},
	}

	eng := newTestEngine(t, &stubSource{findings: scheme}, Config{})

	analysis, err := eng.Analyze(context.Background(), CompanyQuery{
		CompanyName:     "Quantum Wealth Builders",
		Domain:          "quantumwealth.example.com",
		PromisedReturns: floatPtr(35),
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, analysis.OverallRiskScore, 0.8)
	assert.Equal(t, RiskCritical, analysis.RiskLevel)

	var criticalBusinessModel, highDomainAge bool
	for _, f := range analysis.RedFlags {
		if f.Category == CategoryBusinessModel && f.Severity == SeverityCritical {
			criticalBusinessModel = true
		}
		if f.Category == CategoryDomain && f.Severity == SeverityHigh && f.Message == "Domain is less than 1 year old" {
			highDomainAge = true
		}
	}
	assert.True(t, criticalBusinessModel, "expected a critical business_model flag")
	assert.True(t, highDomainAge, "expected a high domain-age flag")

	require.NotEmpty(t, analysis.Recommendations)
	assert.Equal(t, "AVOID: This company shows critical scam indicators", analysis.Recommendations[0])
	assert.Contains(t, analysis.Recommendations, "Unrealistic returns are a major red flag - extremely high risk")

	// Red flags come most severe first.
	for i := 1; i < len(analysis.RedFlags); i++ {
		assert.GreaterOrEqual(t, analysis.RedFlags[i-1].Severity, analysis.RedFlags[i].Severity)
	}
}

func TestAnalyzeRegulatoryUnavailable(t *testing.T) {
	source := &stubSource{
		findings: healthyFindings(),
		stall:    map[Category]time.Duration{CategoryRegulatory: time.Second},
	}
	eng := newTestEngine(t, source, Config{FetchTimeout: 50 * time.Millisecond})

	analysis, err := eng.Analyze(context.Background(), CompanyQuery{CompanyName: "Granite Ridge Capital"})
	require.NoError(t, err, "a single slow source must not fail the analysis")

	assert.Equal(t, NeutralScore, analysis.CategoryScores[CategoryRegulatory])
	assert.False(t, analysis.DataComplete)
	assert.Equal(t, []Category{CategoryRegulatory}, analysis.UnavailableCategories)
	for _, f := range append(analysis.RedFlags, analysis.GreenFlags...) {
		assert.NotEqual(t, CategoryRegulatory, f.Category)
	}
}

func TestAnalyzeAllSourcesDown(t *testing.T) {
	errs := map[Category]error{}
	for _, c := range Categories {
		errs[c] = errors.NewSourceUnavailableError(string(c), assert.AnError)
	}
	eng := newTestEngine(t, &stubSource{errs: errs}, Config{})

	analysis, err := eng.Analyze(context.Background(), CompanyQuery{CompanyName: "Granite Ridge Capital"})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, analysis.OverallRiskScore, 1e-9)
	assert.Equal(t, RiskMedium, analysis.RiskLevel)
	assert.False(t, analysis.DataComplete)
	assert.Equal(t, Categories, analysis.UnavailableCategories)
	assert.Empty(t, analysis.RedFlags)
	assert.Empty(t, analysis.GreenFlags)
}

func TestAnalyzeDeterministic(t *testing.T) {
	eng := newTestEngine(t, &stubSource{findings: healthyFindings()}, Config{})
	query := CompanyQuery{CompanyName: "Granite Ridge Capital", Domain: "graniteridge.example.com"}

	first, err := eng.Analyze(context.Background(), query)
	require.NoError(t, err)
	second, err := eng.Analyze(context.Background(), query)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
}

func TestAnalyzeCancelledContext(t *testing.T) {
	source := &stubSource{
		findings: healthyFindings(),
		stall: map[Category]time.Duration{
			CategoryRegistration: time.Second,
		},
	}
	eng := newTestEngine(t, source, Config{FetchTimeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	analysis, err := eng.Analyze(ctx, CompanyQuery{CompanyName: "Granite Ridge Capital"})
	assert.Nil(t, analysis)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRejectsBadWeights(t *testing.T) {
	bad := DefaultWeights()
	bad.Regulatory = 0.5

	eng, err := New(Config{Weights: bad}, &stubSource{}, logger.NewNoOpLogger())
	assert.Nil(t, eng)
	assert.Error(t, err)
}

func TestAnalyzeNormalizesQuery(t *testing.T) {
	eng := newTestEngine(t, &stubSource{findings: healthyFindings()}, Config{})

	analysis, err := eng.Analyze(context.Background(), CompanyQuery{
		CompanyName:  "  Granite Ridge Capital  ",
		Domain:       "GraniteRidge.Example.COM",
		Jurisdiction: "uk",
	})
	require.NoError(t, err)

	assert.Equal(t, "Granite Ridge Capital", analysis.CompanyName)
	assert.Equal(t, "graniteridge.example.com", analysis.Domain)
	assert.Equal(t, "UK", analysis.Jurisdiction)
}
