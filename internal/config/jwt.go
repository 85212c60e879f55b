package config

import "fmt"

// JWTConfig holds the settings for signing and validating access tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig builds a JWTConfig from the auth section. The secret is required
// and tokens must live at least one hour.
func NewJWTConfig(auth AuthConfig) (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          auth.JWTSecret,
		ExpirationHours: auth.ExpirationHours,
	}
	if cfg.ExpirationHours == 0 {
		cfg.ExpirationHours = 24
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("auth.jwtSecret (JWT_SECRET) is required")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("auth.jwtSecret must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("auth.expirationHours must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
