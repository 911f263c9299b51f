package holiday

import (
	"net/http"
)

type Option func(*Config)

// WithBaseURL changes the provider endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

// WithCountry changes the default country code.
func WithCountry(country string) Option {
	return func(c *Config) {
		c.country = country
	}
}

// WithHttpClient changes http client
func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
