package weather

import "net/http"

type Option func(*Config)

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

// WithCountryCode sets the country suffix every location is qualified with.
func WithCountryCode(code string) Option {
	return func(c *Config) {
		c.countryCode = code
	}
}

// WithDefaultDays sets the forecast length used when the planner omits one.
// Catalog versions have shipped with 3, 7 and 14.
func WithDefaultDays(n int) Option {
	return func(c *Config) {
		c.defaultDays = n
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
