package datahub

import "time"

// Config holds the record source connection settings.
type Config struct {
	// BaseURL is the root of the record source, e.g. https://datahub.example.com:8443/.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8443/"`
	// RequestURI is the employee resource path relative to BaseURL.
	RequestURI string `mapstructure:"request_uri" default:"hrdatahub/v1/employee"`
	// Username for basic authentication.
	Username string `mapstructure:"username" default:""`
	// Password for basic authentication.
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// MaxRetries is the number of retries after a transient failure.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryBackoffMS is the first retry delay; it doubles per attempt.
	RetryBackoffMS int `mapstructure:"retry_backoff_ms" default:"500"`
}

// Timeout returns the request timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Backoff returns the delay before retry number attempt (starting at 0).
func (c Config) Backoff(attempt int) time.Duration {
	base := time.Duration(c.RetryBackoffMS) * time.Millisecond
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	return base << attempt
}
