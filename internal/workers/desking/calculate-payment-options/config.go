package calculatepayment

import (
	"fmt"
	"time"

	"dealership-workers/internal/common/config"
)

type Config struct {
	Enabled             bool          `mapstructure:"enabled"`
	MaxJobsActive       int           `mapstructure:"max_jobs_active"`
	Timeout             time.Duration `mapstructure:"timeout"`
	DefaultInterestRate float64       `mapstructure:"default_interest_rate"` // annual percent
	DefaultLoanTerm     int           `mapstructure:"default_loan_term"`     // months
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:             true,
		MaxJobsActive:       5,
		Timeout:             10 * time.Second,
		DefaultInterestRate: 6.9,
		DefaultLoanTerm:     60,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.DefaultInterestRate < 0 {
		return fmt.Errorf("default_interest_rate must not be negative")
	}
	if c.DefaultLoanTerm <= 0 {
		return fmt.Errorf("default_loan_term must be positive")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig != nil {
		if workerCfg, exists := appConfig.Workers["calculate-payment-options"]; exists {
			cfg.Enabled = workerCfg.Enabled
			if workerCfg.MaxJobsActive > 0 {
				cfg.MaxJobsActive = workerCfg.MaxJobsActive
			}
			if workerCfg.Timeout > 0 {
				cfg.Timeout = time.Duration(workerCfg.Timeout) * time.Millisecond
			}
		}
		if appConfig.Desking.DefaultInterestRate > 0 {
			cfg.DefaultInterestRate = appConfig.Desking.DefaultInterestRate
		}
		if appConfig.Desking.DefaultLoanTerm > 0 {
			cfg.DefaultLoanTerm = appConfig.Desking.DefaultLoanTerm
		}
	}
	return cfg
}
