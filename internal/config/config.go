// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Jira  JiraConfig
	Retry RetryConfig
}

// JiraConfig holds the Jira server connection settings.
type JiraConfig struct {
	URL      string
	Username string
	Token    string
}

// RetryConfig controls the search retry policy. Every Jira query is
// retried with a fixed delay between attempts until it succeeds or
// MaxAttempts is reached.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

const (
	// DefaultRetryAttempts is generous because the tool runs unattended;
	// it still terminates rather than hanging forever on a dead server.
	DefaultRetryAttempts = 60

	// DefaultRetryDelay is the pause between failed attempts.
	DefaultRetryDelay = 5 * time.Second
)

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	// Initialize Viper for environment variables
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.username", "JIRA_USERNAME")
	v.BindEnv("jira.token", "JIRA_TOKEN")
	v.BindEnv("retry.max_attempts", "JIRA_RETRY_ATTEMPTS")
	v.BindEnv("retry.delay", "JIRA_RETRY_DELAY")

	v.SetDefault("retry.max_attempts", DefaultRetryAttempts)
	v.SetDefault("retry.delay", DefaultRetryDelay)

	// Create config structure
	config := &Config{
		Jira: JiraConfig{
			URL:      v.GetString("jira.url"),
			Username: v.GetString("jira.username"),
			Token:    v.GetString("jira.token"),
		},
		Retry: RetryConfig{
			MaxAttempts: v.GetInt("retry.max_attempts"),
			Delay:       v.GetDuration("retry.delay"),
		},
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig ensures that all required configuration values are provided.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Username == "" {
		missingVars = append(missingVars, "JIRA_USERNAME")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	if config.Retry.MaxAttempts < 1 {
		return fmt.Errorf("JIRA_RETRY_ATTEMPTS must be at least 1, got %d", config.Retry.MaxAttempts)
	}
	if config.Retry.Delay < 0 {
		return fmt.Errorf("JIRA_RETRY_DELAY must not be negative, got %s", config.Retry.Delay)
	}

	return nil
}
