// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig    `envconfig:"SERVER"`
	Upload   UploadConfig    `envconfig:"UPLOAD"`
	Pipeline PipelineConfig  `envconfig:"PIPELINE"`
	Session  SessionConfig   `envconfig:"SESSION"`
	Rate     RateLimitConfig `envconfig:"RATE_LIMIT"`
	Security SecurityConfig  `envconfig:"SECURITY"`
	Logging  LoggingConfig   `envconfig:"LOG"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `split_words:"true" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `split_words:"true" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `split_words:"true" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `split_words:"true" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `split_words:"true" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `split_words:"true" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `split_words:"true" default:"60s"`
}

// UploadConfig holds file upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed size of one uploaded file in bytes (default: 50MB)
	MaxFileSize int64 `split_words:"true" default:"52428800"`

	// MaxFiles is the maximum number of files a workspace can hold (default: 10)
	MaxFiles int `split_words:"true" default:"10"`
}

// PipelineConfig holds settings for the load/clean/select/chart/export pipeline.
type PipelineConfig struct {
	// MaxConcurrent is the maximum number of pipeline runs in parallel (default: 4)
	MaxConcurrent int `split_words:"true" default:"4"`

	// MaxWaitTime is how long to wait for a pipeline slot (default: 15s)
	MaxWaitTime time.Duration `split_words:"true" default:"15s"`

	// PreviewRows is the number of rows rendered in the table preview (default: 200)
	PreviewRows int `split_words:"true" default:"200"`

	// ChartMaxRows is the number of rows plotted by the bar chart (default: 100)
	ChartMaxRows int `split_words:"true" default:"100"`
}

// SessionConfig holds workspace session settings.
type SessionConfig struct {
	// Secret signs the session cookie. A random key is generated when empty,
	// which invalidates sessions on restart.
	Secret string `split_words:"true"`

	// CookieName is the name of the session cookie (default: sweeper_session)
	CookieName string `split_words:"true" default:"sweeper_session"`

	// TTL is how long an idle workspace is kept in memory (default: 1h)
	TTL time.Duration `split_words:"true" default:"1h"`

	// SweepInterval is how often idle workspaces are evicted (default: 5m)
	SweepInterval time.Duration `split_words:"true" default:"5m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `split_words:"true" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 120)
	RequestsPerMinute int `split_words:"true" default:"120"`

	// UploadLimit is requests per minute for the upload endpoint (default: 20)
	UploadLimit int `split_words:"true" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `split_words:"true"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `split_words:"true" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `split_words:"true" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `split_words:"true" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
