package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		username string
		token    string
		wantErr  string
	}{
		{
			name:     "All fields present",
			url:      "https://jira.example.com",
			username: "test-user",
			token:    "test-token",
		},
		{
			name:     "Missing URL",
			url:      "",
			username: "test-user",
			token:    "test-token",
			wantErr:  "JIRA_URL",
		},
		{
			name:     "Missing username",
			url:      "https://jira.example.com",
			username: "",
			token:    "test-token",
			wantErr:  "JIRA_USERNAME",
		},
		{
			name:     "Missing token",
			url:      "https://jira.example.com",
			username: "test-user",
			token:    "",
			wantErr:  "JIRA_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, "JIRA_URL", tt.url)
			setEnv(t, "JIRA_USERNAME", tt.username)
			setEnv(t, "JIRA_TOKEN", tt.token)
			setEnv(t, "JIRA_RETRY_ATTEMPTS", "")
			setEnv(t, "JIRA_RETRY_DELAY", "")

			config, err := LoadConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, config)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, config)
			assert.Equal(t, tt.url, config.Jira.URL)
			assert.Equal(t, tt.username, config.Jira.Username)
			assert.Equal(t, tt.token, config.Jira.Token)
			assert.Equal(t, DefaultRetryAttempts, config.Retry.MaxAttempts)
			assert.Equal(t, DefaultRetryDelay, config.Retry.Delay)
		})
	}
}

func TestLoadConfigRetryOverrides(t *testing.T) {
	setEnv(t, "JIRA_URL", "https://jira.example.com")
	setEnv(t, "JIRA_USERNAME", "test-user")
	setEnv(t, "JIRA_TOKEN", "test-token")
	setEnv(t, "JIRA_RETRY_ATTEMPTS", "3")
	setEnv(t, "JIRA_RETRY_DELAY", "250ms")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, config.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, config.Retry.Delay)
}

func TestLoadConfigInvalidRetryAttempts(t *testing.T) {
	setEnv(t, "JIRA_URL", "https://jira.example.com")
	setEnv(t, "JIRA_USERNAME", "test-user")
	setEnv(t, "JIRA_TOKEN", "test-token")
	setEnv(t, "JIRA_RETRY_ATTEMPTS", "0")
	setEnv(t, "JIRA_RETRY_DELAY", "")

	config, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JIRA_RETRY_ATTEMPTS")
	assert.Nil(t, config)
}

// setEnv sets an environment variable for the test and restores the
// original value during cleanup.
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	orig := os.Getenv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		os.Setenv(key, orig)
	})
}
