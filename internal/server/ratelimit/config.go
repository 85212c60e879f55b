package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-ats/internal/config"
)

// EndpointConfig is the limit for requests matching Path and Method. A Path
// ending in "/" matches every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// FromSettings builds a Config from the rateLimit section of the service configuration.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       ipSet(s.Whitelist),
		Blacklist:       ipSet(s.Blacklist),
		EndpointConfigs: EndpointConfigs(s.AnalyzeLimit, s.AnalyzeWindow),
	}
}

// EndpointConfigs returns the per-route limits. Analysis may call a paid
// generative API, so it gets the strictest limit; history writes are moderate
// and reads fall through to the default.
func EndpointConfigs(analyzeLimit int, analyzeWindow time.Duration) []EndpointConfig {
	if analyzeLimit <= 0 {
		analyzeLimit = 30
	}
	if analyzeWindow <= 0 {
		analyzeWindow = time.Minute
	}
	burst := max(1, analyzeLimit/5)
	return []EndpointConfig{
		{Path: "/analyze", Method: http.MethodPost, Limit: analyzeLimit, Window: analyzeWindow, Burst: burst},
		{Path: "/analyses", Method: http.MethodPost, Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/analyses/", Method: http.MethodDelete, Limit: 100, Window: time.Minute, Burst: 10},
	}
}

func ipSet(list []string) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip = strings.TrimSpace(ip); ip != "" {
			out[ip] = true
		}
	}
	return out
}
