package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			"development defaults accepted",
			Config{APIBaseURL: "http://localhost:8000/api", Port: "8000",
				JWTSecret: "your-secret-key-change-in-production", Env: "development"},
			false,
		},
		{
			"production rejects default secret",
			Config{APIBaseURL: "http://localhost:8000/api", Port: "8000",
				JWTSecret: "your-secret-key-change-in-production", Env: "production"},
			true,
		},
		{
			"production rejects short secret",
			Config{APIBaseURL: "http://localhost:8000/api", Port: "8000",
				JWTSecret: "short", Env: "prod"},
			true,
		},
		{
			"production accepts strong secret",
			Config{APIBaseURL: "https://gatorblog.app/api", Port: "8000",
				JWTSecret: "secure-secret-at-least-32-chars-long", Env: "production"},
			false,
		},
		{
			"missing base URL rejected",
			Config{Port: "8000", JWTSecret: "secure-secret-at-least-32-chars-long"},
			true,
		},
		{
			"missing port rejected",
			Config{APIBaseURL: "http://localhost:8000/api",
				JWTSecret: "secure-secret-at-least-32-chars-long"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	defer os.Unsetenv("API_BASE_URL")
	defer viper.Reset()

	os.Setenv("API_BASE_URL", "http://api.example.test/api")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "http://api.example.test/api", c.APIBaseURL)
	assert.NotEmpty(t, c.SessionFile)
}
