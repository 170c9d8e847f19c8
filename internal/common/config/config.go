// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Sources       SourcesConfig           `mapstructure:"sources"`
	Engine        EngineConfig            `mapstructure:"engine"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	Index      string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Connector / Engine Configuration ---

// SourcesConfig holds endpoints and limits for the external data sources the
// connectors query. Credentials and retry policy live with the connectors, not
// the engine.
type SourcesConfig struct {
	FetchTimeout int    `mapstructure:"fetch_timeout"` // milliseconds, per category
	CacheTTL     int    `mapstructure:"cache_ttl"`     // seconds, raw source responses
	EdgarBaseURL string `mapstructure:"edgar_base_url"`
	WhoisBaseURL string `mapstructure:"whois_base_url"`
	SECBaseURL   string `mapstructure:"sec_base_url"`
	BBBBaseURL   string `mapstructure:"bbb_base_url"`
	TrustBaseURL string `mapstructure:"trustpilot_base_url"`
	UserAgent    string `mapstructure:"user_agent"`
}

// FetchTimeoutDuration returns the per-category fetch timeout.
func (s SourcesConfig) FetchTimeoutDuration() time.Duration {
	return time.Duration(s.FetchTimeout) * time.Millisecond
}

// EngineConfig carries tunable scoring parameters. Weights must sum to 1.0;
// the engine validates this at construction.
type EngineConfig struct {
	WeightRegistration  float64 `mapstructure:"weight_registration"`
	WeightFinancial     float64 `mapstructure:"weight_financial"`
	WeightDomain        float64 `mapstructure:"weight_domain"`
	WeightRegulatory    float64 `mapstructure:"weight_regulatory"`
	WeightReputation    float64 `mapstructure:"weight_reputation"`
	WeightBusinessModel float64 `mapstructure:"weight_business_model"`

	HighYieldThreshold float64 `mapstructure:"high_yield_threshold"` // percent per year
	YoungDomainDays    int     `mapstructure:"young_domain_days"`
	EstablishedDays    int     `mapstructure:"established_days"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Notifications ---

type NotificationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
			ReportTo  string `mapstructure:"report_to"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled  bool   `mapstructure:"enabled"`
			TopicARN string `mapstructure:"topic_arn"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
