// internal/workers/catalog/filter-levers/config.go
package filterlevers

import "time"

// Filtering is in-memory; the timeout only bounds job completion calls.
type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
