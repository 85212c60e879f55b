// Package config loads service and CLI configuration from a YAML file,
// ATS_-prefixed environment variables, and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ATS_SERVER_PORT.
const EnvPrefix = "ATS"

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config is the full configuration tree.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// LLMConfig selects the generative provider. An empty APIKey disables the
// generative path and every analysis uses the heuristic scorer.
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	Tier     string        `mapstructure:"tier"`
	APIKey   string        `mapstructure:"apiKey"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	DatabaseURL string `mapstructure:"databaseURL"`
	SQLitePath  string `mapstructure:"sqlitePath"`
}

// RedisConfig configures the generative result cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type FetchConfig struct {
	UseBrowser bool          `mapstructure:"useBrowser"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwtSecret"`
	ExpirationHours int    `mapstructure:"expirationHours"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Exporter    string  `mapstructure:"exporter"`
	ServiceName string  `mapstructure:"serviceName"`
	SampleRatio float64 `mapstructure:"sampleRatio"`
}

type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"defaultLimit"`
	DefaultWindow   time.Duration `mapstructure:"defaultWindow"`
	AnalyzeLimit    int           `mapstructure:"analyzeLimit"`
	AnalyzeWindow   time.Duration `mapstructure:"analyzeWindow"`
	CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// Option customizes loading.
type Option func(*viper.Viper) error

// WithFlag lets a command line flag override key when the flag was set.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(v *viper.Viper) error {
		if flag == nil {
			return nil
		}
		return v.BindPFlag(key, flag)
	}
}

// WithValue overrides key unconditionally.
func WithValue(key string, value any) Option {
	return func(v *viper.Viper) error {
		v.Set(key, value)
		return nil
	}
}

// Load reads configuration. When path is empty, ats.yaml is looked up in the
// working directory and ./config and its absence is not an error.
func Load(path string, opts ...Option) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("ats")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("failed to apply config option: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyProviderKey()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 60*time.Second)
	v.SetDefault("server.shutdownTimeout", 30*time.Second)

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.tier", "standard")
	v.SetDefault("llm.apiKey", "")
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.databaseURL", "")
	v.SetDefault("storage.sqlitePath", "ats.db")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("fetch.useBrowser", false)
	v.SetDefault("fetch.timeout", 30*time.Second)

	v.SetDefault("logging.json", false)
	v.SetDefault("logging.debug", false)

	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.expirationHours", 24)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.serviceName", "resume-ats")
	v.SetDefault("tracing.sampleRatio", 1.0)

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.defaultLimit", 1000)
	v.SetDefault("rateLimit.defaultWindow", time.Minute)
	v.SetDefault("rateLimit.analyzeLimit", 30)
	v.SetDefault("rateLimit.analyzeWindow", time.Minute)
	v.SetDefault("rateLimit.cleanupInterval", 5*time.Minute)
	v.SetDefault("rateLimit.whitelist", []string{})
	v.SetDefault("rateLimit.blacklist", []string{})
}

// bindLegacyEnv keeps the unprefixed variables used by local .env files working.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"storage.databaseURL": {"ATS_STORAGE_DATABASEURL", "DATABASE_URL"},
		"auth.jwtSecret":      {"ATS_AUTH_JWTSECRET", "JWT_SECRET"},
		"redis.addr":          {"ATS_REDIS_ADDR", "REDIS_ADDR"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// applyProviderKey falls back to the provider's conventional key variable.
func (c *Config) applyProviderKey() {
	if c.LLM.APIKey != "" {
		return
	}
	switch strings.ToLower(c.LLM.Provider) {
	case "gemini":
		c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	case "openai":
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// Validate checks enums and ranges.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: server.port must be between 0 and 65535, got %d", c.Server.Port)
	}

	switch strings.ToLower(c.LLM.Provider) {
	case "gemini", "openai":
	default:
		return fmt.Errorf("config error: llm.provider must be gemini or openai, got %q", c.LLM.Provider)
	}
	switch c.LLM.Tier {
	case "lite", "standard", "advanced":
	default:
		return fmt.Errorf("config error: llm.tier must be lite, standard or advanced, got %q", c.LLM.Tier)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("config error: llm.timeout must be positive")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("config error: storage.databaseURL is required for the postgres driver")
		}
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("config error: storage.sqlitePath is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config error: storage.driver must be memory, postgres or sqlite, got %q", c.Storage.Driver)
	}

	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("config error: redis.ttl must be positive")
	}

	switch c.Tracing.Exporter {
	case "stdout", "otlp":
	default:
		return fmt.Errorf("config error: tracing.exporter must be stdout or otlp, got %q", c.Tracing.Exporter)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("config error: tracing.sampleRatio must be within [0, 1]")
	}

	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit < 1 || c.RateLimit.DefaultWindow <= 0) {
		return fmt.Errorf("config error: rateLimit.defaultLimit and rateLimit.defaultWindow must be positive")
	}
	return nil
}

// GenerativeEnabled reports whether an API key is available for the provider.
func (c *Config) GenerativeEnabled() bool {
	return c.LLM.APIKey != ""
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
