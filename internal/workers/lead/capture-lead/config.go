// internal/workers/lead/capture-lead/config.go
package capturelead

import (
	"fmt"
	"time"
)

type Config struct {
	Timeout       time.Duration
	ArtifactURL   string // primary conversion artifact served on every valid submission
	MailtoAddress string // degraded-path address surfaced when intake rejects
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.ArtifactURL == "" {
		return fmt.Errorf("artifact_url is required")
	}
	return nil
}
