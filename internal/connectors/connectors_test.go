// internal/connectors/connectors_test.go
package connectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudscan-workers/internal/common/config"
	"fraudscan-workers/internal/common/database"
	"fraudscan-workers/internal/common/logger"
	"fraudscan-workers/internal/engine"
)

func testNow() time.Time {
	return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
}

func newTestSet(t *testing.T, baseURL string, redis *database.RedisClient) *Set {
	t.Helper()
	cfg := config.SourcesConfig{
		FetchTimeout: 5000,
		CacheTTL:     3600,
		EdgarBaseURL: baseURL,
		WhoisBaseURL: baseURL,
		SECBaseURL:   baseURL,
		BBBBaseURL:   baseURL,
		TrustBaseURL: baseURL,
		UserAgent:    "fraudscan-test/1.0",
	}
	set := New(cfg, redis, logger.NewTestLogger(t))
	set.now = testNow
	return set
}

func newCachedSet(t *testing.T, baseURL string) *Set {
	t.Helper()
	mr := miniredis.RunT(t)
	redis, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { redis.Close() })
	return newTestSet(t, baseURL, redis)
}

func TestFetchRegistration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Granite Ridge Capital", r.URL.Query().Get("name"))
		assert.Equal(t, "US", r.URL.Query().Get("jurisdiction"))
		w.Write([]byte(`{
			"found": true,
			"cik": "0000320193",
			"status": "Active",
			"incorporation_date": "2015-06-01",
			"registered_address": "100 Market Street, Suite 400, Denver CO",
			"officers": ["J. Doe", "M. Roe"]
		}`))
	}))
	defer server.Close()

	set := newTestSet(t, server.URL, nil)
	finding, err := set.FetchRegistration(context.Background(), engine.CompanyQuery{
		CompanyName: "Granite Ridge Capital", Jurisdiction: "US",
	})
	require.NoError(t, err)

	assert.True(t, finding.Verified)
	assert.Equal(t, "active", finding.Status)
	assert.True(t, finding.AgeKnown)
	assert.Equal(t, 4018, finding.AgeDays)
	assert.Equal(t, 2, finding.OfficerCount)
}

func TestFetchRegistrationUnknownCompany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"found": false}`))
	}))
	defer server.Close()

	set := newTestSet(t, server.URL, nil)
	finding, err := set.FetchRegistration(context.Background(), engine.CompanyQuery{
		CompanyName: "Ghost Holdings", Jurisdiction: "US",
	})
	require.NoError(t, err)

	assert.False(t, finding.Verified)
	assert.False(t, finding.AgeKnown)
	assert.Zero(t, finding.OfficerCount)
}

func TestFetchRegistrationSourceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	set := newTestSet(t, server.URL, nil)
	_, err := set.FetchRegistration(context.Background(), engine.CompanyQuery{CompanyName: "Acme"})
	assert.Error(t, err)
}

func TestFetchRegistrationServedFromCache(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write([]byte(`{"found": true, "cik": "123", "status": "active"}`))
	}))
	defer server.Close()

	set := newCachedSet(t, server.URL)
	query := engine.CompanyQuery{CompanyName: "Granite Ridge Capital", Jurisdiction: "US"}

	first, err := set.FetchRegistration(context.Background(), query)
	require.NoError(t, err)
	second, err := set.FetchRegistration(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits), "second fetch must come from cache")
}

func TestFetchFinancial(t *testing.T) {
	tests := []struct {
		name      string
		query     engine.CompanyQuery
		wantParam string
		wantValue string
	}{
		{
			name:      "uses registration id when present",
			query:     engine.CompanyQuery{CompanyName: "Acme", RegistrationID: "0000320193"},
			wantParam: "cik",
			wantValue: "0000320193",
		},
		{
			name:      "falls back to company name",
			query:     engine.CompanyQuery{CompanyName: "Acme"},
			wantParam: "company",
			wantValue: "Acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantValue, r.URL.Query().Get(tt.wantParam))
				w.Write([]byte(`{"filings_found": true, "filing_status": "Current", "late_filings": true}`))
			}))
			defer server.Close()

			set := newTestSet(t, server.URL, nil)
			finding, err := set.FetchFinancial(context.Background(), tt.query)
			require.NoError(t, err)

			assert.False(t, finding.MissingStatements)
			assert.Equal(t, "current", finding.FilingStatus)
			assert.True(t, finding.LateFilings)
		})
	}
}

func TestFetchDomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/whois/graniteridge.example.com", r.URL.Path)
		w.Write([]byte(`{
			"registration_date": "2025-12-01",
			"registrar": "Example Registrar",
			"privacy_protected": true,
			"ssl_valid": true
		}`))
	}))
	defer server.Close()

	set := newTestSet(t, server.URL, nil)
	finding, err := set.FetchDomain(context.Background(), engine.CompanyQuery{
		CompanyName: "Granite Ridge Capital", Domain: "graniteridge.example.com",
	})
	require.NoError(t, err)

	assert.True(t, finding.AgeKnown)
	assert.Equal(t, 182, finding.AgeDays)
	assert.True(t, finding.PrivacyProtected)
	assert.True(t, finding.SSLValid)
}

func TestFetchDomainWithoutDomain(t *testing.T) {
	set := newTestSet(t, "http://unused.invalid", nil)
	_, err := set.FetchDomain(context.Background(), engine.CompanyQuery{CompanyName: "Acme"})
	assert.Error(t, err)
}

func TestFetchRegulatory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Quantum Wealth Builders", r.URL.Query().Get("company"))
		w.Write([]byte(`[
			{"source": "SEC", "actions_found": ["LR-26001", "LR-26017"]},
			{"source": "FTC", "actions_found": []}
		]`))
	}))
	defer server.Close()

	set := newTestSet(t, server.URL, nil)
	finding, err := set.FetchRegulatory(context.Background(), engine.CompanyQuery{
		CompanyName: "Quantum Wealth Builders",
	})
	require.NoError(t, err)

	require.Len(t, finding.Sources, 2)
	assert.Equal(t, "SEC", finding.Sources[0].Source)
	assert.Equal(t, 2, finding.Sources[0].ActionCount)
	assert.Equal(t, 0, finding.Sources[1].ActionCount)
	assert.Equal(t, 2, finding.TotalActions())
}

func TestFetchReputation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search":
			w.Write([]byte(`{"rating": "A+", "complaints": 3}`))
		default:
			w.Write([]byte(`{"score": 4.6, "review_count": 210, "suspicious_patterns": []}`))
		}
	}))
	defer server.Close()

	set := newTestSet(t, server.URL, nil)
	finding, err := set.FetchReputation(context.Background(), engine.CompanyQuery{
		CompanyName: "Granite Ridge Capital", Domain: "graniteridge.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "A+", finding.BBBRating)
	assert.Equal(t, 3, finding.BBBComplaints)
	assert.True(t, finding.TrustpilotKnown)
	assert.InDelta(t, 4.6, finding.TrustpilotScore, 1e-9)
}

func TestFetchReputationToleratesOneSourceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"score": 1.9, "review_count": 40, "suspicious_patterns": ["review burst"]}`))
	}))
	defer server.Close()

	set := newTestSet(t, server.URL, nil)
	finding, err := set.FetchReputation(context.Background(), engine.CompanyQuery{
		CompanyName: "Quantum Wealth Builders", Domain: "quantumwealth.example.com",
	})
	require.NoError(t, err, "one reachable source is enough")

	assert.Empty(t, finding.BBBRating)
	assert.True(t, finding.TrustpilotKnown)
	assert.InDelta(t, 1.9, finding.TrustpilotScore, 1e-9)
	assert.Equal(t, []string{"review burst"}, finding.SuspiciousPatterns)
}

func TestFetchReputationAllSourcesDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	set := newTestSet(t, server.URL, nil)
	_, err := set.FetchReputation(context.Background(), engine.CompanyQuery{
		CompanyName: "Quantum Wealth Builders", Domain: "quantumwealth.example.com",
	})
	assert.Error(t, err)
}

func TestFetchBusinessModel(t *testing.T) {
	set := newTestSet(t, "http://unused.invalid", nil)
	returns := 35.0

	finding, err := set.FetchBusinessModel(context.Background(), engine.CompanyQuery{
		CompanyName:     "Quantum Wealth Builders",
		PromisedReturns: &returns,
		PaymentMethods:  []string{"cryptocurrency"},
		Description:     "recruit your downline",
	})
	require.NoError(t, err)

	assert.True(t, finding.HasPromisedReturns)
	assert.InDelta(t, 35.0, finding.PromisedReturns, 1e-9)
	assert.Equal(t, []string{"cryptocurrency"}, finding.PaymentMethods)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = set.FetchBusinessModel(ctx, engine.CompanyQuery{CompanyName: "Acme"})
	assert.ErrorIs(t, err, context.Canceled)
}
