// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of search workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the number of searches waiting for a worker.
	QueueSize int `koanf:"queue_size"`

	// CatalogDir holds champions.json, traits.json and their builtDifferent
	// counterparts.
	CatalogDir string `koanf:"catalog_dir"`

	// Iterations is the number of ILS rounds per search.
	Iterations int `koanf:"iterations"`

	// SearchTimeoutMS bounds how long a request waits for its search.
	SearchTimeoutMS int `koanf:"search_timeout_ms"`

	// DefaultMode is used when a request names no augment.
	DefaultMode string `koanf:"default_mode"`

	// CORSOrigins is a comma-separated list of allowed origins.
	CORSOrigins string `koanf:"cors_origins"`

	// RateLimitRequests requests are admitted per RateLimitWindowMS.
	// Zero disables rate limiting.
	RateLimitRequests int `koanf:"rate_limit_requests"`
	RateLimitWindowMS int `koanf:"rate_limit_window_ms"`

	// MetricsNamespace and MetricsSubsystem prefix every exported metric.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsLabels is a comma-separated list of key=value pairs attached
	// to every metric, e.g. "region=euw,env=prod".
	MetricsLabels string `koanf:"metrics_labels"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		WorkerCount:       runtime.NumCPU(),
		QueueSize:         1024,
		CatalogDir:        "data",
		Iterations:        500,
		SearchTimeoutMS:   30_000,
		DefaultMode:       "standUnited",
		CORSOrigins:       "http://localhost:3000",
		RateLimitRequests: 10,
		RateLimitWindowMS: 5_000,
		MetricsNamespace:  "synergy",
		MetricsSubsystem:  "optimizer",
	}
}

// SearchTimeout returns SearchTimeoutMS as a duration.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.SearchTimeoutMS) * time.Millisecond
}

// RateLimitWindow returns RateLimitWindowMS as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMS) * time.Millisecond
}

// Origins splits CORSOrigins into its trimmed, non-empty entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ConstLabels parses MetricsLabels. Blank entries are skipped.
func (c *Config) ConstLabels() (map[string]string, error) {
	var out map[string]string
	for _, pair := range strings.Split(c.MetricsLabels, ",") {
		if pair = strings.TrimSpace(pair); pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: metrics_labels entry %q is not key=value", ErrInvalidConfig, pair)
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[k] = v
	}
	return out, nil
}
