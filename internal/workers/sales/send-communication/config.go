package sendcommunication

import (
	"fmt"
	"time"

	"dealership-workers/internal/common/config"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	FromEmail     string        `mapstructure:"from_email"`
	SMSSenderID   string        `mapstructure:"sms_sender_id"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig != nil {
		if workerCfg, exists := appConfig.Workers["send-communication"]; exists {
			cfg.Enabled = workerCfg.Enabled
			if workerCfg.MaxJobsActive > 0 {
				cfg.MaxJobsActive = workerCfg.MaxJobsActive
			}
			if workerCfg.Timeout > 0 {
				cfg.Timeout = time.Duration(workerCfg.Timeout) * time.Millisecond
			}
		}
		if appConfig.Notifications.Email.FromEmail != "" {
			cfg.FromEmail = appConfig.Notifications.Email.FromEmail
		} else if appConfig.Integrations.AWS.SES.FromEmail != "" {
			cfg.FromEmail = appConfig.Integrations.AWS.SES.FromEmail
		}
		if appConfig.Integrations.AWS.SNS.DefaultSMSSenderID != "" {
			cfg.SMSSenderID = appConfig.Integrations.AWS.SNS.DefaultSMSSenderID
		}
	}
	return cfg
}
