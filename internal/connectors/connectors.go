// internal/connectors/connectors.go
package connectors

import (
	"encoding/json"
	"fmt"
	"time"

	"fraudscan-workers/internal/common/config"
	"fraudscan-workers/internal/common/database"
	httpclient "fraudscan-workers/internal/common/http"
	"fraudscan-workers/internal/common/logger"
)

// Set bundles the per-category source fetchers behind the engine's Source
// interface. All fetchers share one HTTP client and one response cache.
type Set struct {
	http   *httpclient.Client
	cache  *responseCache
	cfg    config.SourcesConfig
	logger logger.Logger
	now    func() time.Time
}

// New builds the connector set. redis may be nil, in which case every fetch
// goes to the source directly.
func New(cfg config.SourcesConfig, redis *database.RedisClient, log logger.Logger) *Set {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Set{
		http:   httpclient.NewClient(cfg.FetchTimeoutDuration(), cfg.UserAgent),
		cache:  newResponseCache(redis, time.Duration(cfg.CacheTTL)*time.Second, log),
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

// ageDays converts an ISO date string into whole days before now. The second
// return value reports whether the date was present and parseable.
func (s *Set) ageDays(isoDate string) (int, bool) {
	if isoDate == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return 0, false
	}
	return int(s.now().Sub(t).Hours() / 24), true
}

func decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding source response: %w", err)
	}
	return nil
}
