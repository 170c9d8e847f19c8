// internal/workers/notification/alert-critical/config.go
package alertcritical

import "time"

type Config struct {
	Timeout time.Duration

	SNSEnabled bool
	TopicARN   string

	SESEnabled bool
	FromEmail  string
	ReportTo   string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
