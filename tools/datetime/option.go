package datetime

import "time"

type Option func(*Config)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.now = now
	}
}
