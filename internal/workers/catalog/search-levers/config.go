// internal/workers/catalog/search-levers/config.go
package searchlevers

import "time"

type Config struct {
	IndexName  string
	Timeout    time.Duration
	MaxResults int
}

func DefaultConfig() *Config {
	return &Config{
		IndexName:  "levers",
		Timeout:    5 * time.Second,
		MaxResults: 50,
	}
}
