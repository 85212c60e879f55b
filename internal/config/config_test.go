package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks variables that a developer shell might export.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "DATABASE_URL", "JWT_SECRET", "REDIS_ADDR",
		"ATS_LLM_PROVIDER", "ATS_LLM_APIKEY", "ATS_STORAGE_DRIVER", "ATS_SERVER_PORT",
	} {
		t.Setenv(key, "")
	}
	// keep ats.yaml in the caller's directory out of the picture
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "standard", cfg.LLM.Tier)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 24, cfg.Auth.ExpirationHours)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.GenerativeEnabled())
	assert.Equal(t, ":8080", cfg.Server.Addr())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 9090
llm:
  provider: openai
  timeout: 5s
storage:
  driver: sqlite
  sqlitePath: /tmp/ats-test.db
rateLimit:
  whitelist: ["10.0.0.1"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/ats-test.db", cfg.Storage.SQLitePath)
	assert.Equal(t, []string{"10.0.0.1"}, cfg.RateLimit.Whitelist)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("ATS_SERVER_PORT", "7070")
	t.Setenv("ATS_LLM_TIMEOUT", "45s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
}

func TestLoad_LegacyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/ats")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("ATS_STORAGE_DRIVER", "postgres")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/ats", cfg.Storage.DatabaseURL)
	assert.Equal(t, "0123456789abcdef", cfg.Auth.JWTSecret)
	assert.Equal(t, "gemini-key", cfg.LLM.APIKey, "key follows the configured provider")
	assert.True(t, cfg.GenerativeEnabled())

	t.Setenv("ATS_LLM_PROVIDER", "openai")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai-key", cfg.LLM.APIKey)
}

func TestLoad_Options(t *testing.T) {
	clearEnv(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	require.NoError(t, flags.Parse([]string{"--port", "6060"}))

	cfg, err := Load("",
		WithFlag("server.port", flags.Lookup("port")),
		WithFlag("server.host", nil),
		WithValue("logging.debug", true),
	)
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
	assert.True(t, cfg.Logging.Debug)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "storage:\n  driver: postgres\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "databaseURL")
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad provider", func(c *Config) { c.LLM.Provider = "anthropic" }, "llm.provider"},
		{"bad tier", func(c *Config) { c.LLM.Tier = "huge" }, "llm.tier"},
		{"zero llm timeout", func(c *Config) { c.LLM.Timeout = 0 }, "llm.timeout"},
		{"bad driver", func(c *Config) { c.Storage.Driver = "mongo" }, "storage.driver"},
		{"sqlite without path", func(c *Config) { c.Storage.Driver = StorageSQLite; c.Storage.SQLitePath = "" }, "sqlitePath"},
		{"redis without ttl", func(c *Config) { c.Redis.Addr = "localhost:6379"; c.Redis.TTL = 0 }, "redis.ttl"},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, "tracing.exporter"},
		{"bad ratio", func(c *Config) { c.Tracing.SampleRatio = 1.5 }, "sampleRatio"},
		{"bad rate limit", func(c *Config) { c.RateLimit.DefaultLimit = 0 }, "rateLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, base.Validate())
}
