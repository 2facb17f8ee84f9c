// internal/workers/notification/send-notification/config.go
package sendnotification

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	AWSRegion     string        `mapstructure:"aws_region"`
	TopicARN      string        `mapstructure:"topic_arn"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       15 * time.Second,
		AWSRegion:     "us-east-1",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TopicARN == "" {
		return fmt.Errorf("topic_arn is required")
	}
	return nil
}
