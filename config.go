package posv2

import "time"

// Config holds the configuration for a Validator instance.
type Config struct {
	// RequestTimeout is the HTTP timeout per image fetch during the
	// dimension validation pass.
	RequestTimeout time.Duration

	// UserAgent is sent on every image fetch.
	UserAgent string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RequestTimeout: 30 * time.Second,
		UserAgent:      "POSV2/1.0",
	}
}
