// internal/connectors/cache_test.go
package connectors

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudscan-workers/internal/common/database"
	"fraudscan-workers/internal/common/logger"
)

func newMockedCache(t *testing.T, ttl time.Duration) (*responseCache, redismock.ClientMock) {
	client, mock := redismock.NewClientMock()
	cache := newResponseCache(&database.RedisClient{Client: client}, ttl, logger.NewTestLogger(t))
	return cache, mock
}

func TestCacheLookupMiss(t *testing.T) {
	cache, mock := newMockedCache(t, time.Minute)
	mock.ExpectGet("source:registration:US:acme").RedisNil()

	var out registrationRecord
	assert.False(t, cache.lookup(context.Background(), "source:registration:US:acme", &out))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheLookupToleratesRedisErrors(t *testing.T) {
	cache, mock := newMockedCache(t, time.Minute)
	mock.ExpectGet("source:registration:US:acme").SetErr(fmt.Errorf("connection refused"))

	// A broken cache must read as a miss, never as a failure.
	var out registrationRecord
	assert.False(t, cache.lookup(context.Background(), "source:registration:US:acme", &out))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheLookupDropsUndecodableEntry(t *testing.T) {
	cache, mock := newMockedCache(t, time.Minute)
	mock.ExpectGet("source:whois:acme.com").SetVal("{not json")

	var out whoisRecord
	assert.False(t, cache.lookup(context.Background(), "source:whois:acme.com", &out))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheStoreUsesConfiguredTTL(t *testing.T) {
	cache, mock := newMockedCache(t, 30*time.Minute)
	record := whoisRecord{RegistrationDate: "2019-04-02", SSLValid: true}
	mock.ExpectSet("source:whois:acme.com", `{"registration_date":"2019-04-02","registrar":"","privacy_protected":false,"ssl_valid":true}`, 30*time.Minute).SetVal("OK")

	cache.store(context.Background(), "source:whois:acme.com", record)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheNilRedisPassesThrough(t *testing.T) {
	cache := newResponseCache(nil, time.Minute, logger.NewNoOpLogger())

	var out registrationRecord
	assert.False(t, cache.lookup(context.Background(), "source:registration:US:acme", &out))
	cache.store(context.Background(), "source:registration:US:acme", registrationRecord{})
}
