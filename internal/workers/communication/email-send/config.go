// internal/workers/communication/email-send/config.go
package emailsend

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	AWSRegion     string        `mapstructure:"aws_region"`
	FromAddress   string        `mapstructure:"from_address"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
		AWSRegion:     "us-east-1",
		FromAddress:   "noreply@example.com",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.FromAddress == "" {
		return fmt.Errorf("from_address is required")
	}
	return nil
}
