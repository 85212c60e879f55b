package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name          string
		auth          AuthConfig
		expectedHours int
		wantErr       string
	}{
		{"defaults expiration", AuthConfig{JWTSecret: "0123456789abcdef"}, 24, ""},
		{"custom expiration", AuthConfig{JWTSecret: "0123456789abcdef", ExpirationHours: 2}, 2, ""},
		{"missing secret", AuthConfig{}, 0, "required"},
		{"short secret", AuthConfig{JWTSecret: "short"}, 0, "16 characters"},
		{"negative expiration", AuthConfig{JWTSecret: "0123456789abcdef", ExpirationHours: -1}, 0, "at least 1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewJWTConfig(tt.auth)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.auth.JWTSecret, cfg.Secret)
			assert.Equal(t, tt.expectedHours, cfg.ExpirationHours)
		})
	}
}
