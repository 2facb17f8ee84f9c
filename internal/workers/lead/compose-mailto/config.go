// internal/workers/lead/compose-mailto/config.go
package composemailto

import (
	"fmt"
	"time"
)

type Config struct {
	Timeout time.Duration
	Address string // destination inbox for the degraded capture path
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}
