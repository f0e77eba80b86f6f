package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/nsdom/pkg/render"
)

// Config configures a Server.
type Config struct {
	// Address is the listen address.
	// Default: "localhost:7357".
	Address string

	// AllowedOrigins are origins, besides the server's own, allowed to
	// open mutation streams. "*" allows any origin.
	AllowedOrigins []string

	// CheckOrigin overrides the origin check built from AllowedOrigins.
	CheckOrigin func(r *http.Request) bool

	// Middleware wraps every render.
	Middleware []render.Middleware

	// MetricsHandler is served at MetricsPath when set.
	MetricsHandler http.Handler

	// MetricsPath is where MetricsHandler is mounted.
	// Default: "/metrics".
	MetricsPath string

	// MaxBodyBytes limits render request bodies.
	// Default: 1MB.
	MaxBodyBytes int64

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout is passed to http.Server.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Address:           "localhost:7357",
		MetricsPath:       "/metrics",
		MaxBodyBytes:      1 << 20,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		c = defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.MetricsPath == "" {
		out.MetricsPath = defaults.MetricsPath
	}
	if out.MaxBodyBytes == 0 {
		out.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = AllowOrigins(out.AllowedOrigins...)
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host matches the Host header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}

// AllowOrigins returns an origin check that passes same-origin requests
// and the listed origins.
func AllowOrigins(origins ...string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		if allowed["*"] || SameOriginCheck(r) {
			return true
		}
		return allowed[r.Header.Get("Origin")]
	}
}
