// internal/workers/analysis/analyze-company/config.go
package analyzecompany

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}
