package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:          "8080",
			SecretKey:     "secure-secret-at-least-32-chars-long",
			DBPassword:    "secure-password",
			DBSSLMode:     "require",
			PostsPerPage:  25,
			ResetTokenTTL: 10 * time.Minute,
			Env:           "test",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid test config", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing secret", func(c *Config) { c.SecretKey = "" }, true},
		{"non-positive page size", func(c *Config) { c.PostsPerPage = 0 }, true},
		{"production default secret", func(c *Config) {
			c.Env = "production"
			c.SecretKey = "you-will-never-guess"
		}, true},
		{"production short secret", func(c *Config) {
			c.Env = "production"
			c.SecretKey = "short"
		}, true},
		{"production default db password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"production strong settings", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
