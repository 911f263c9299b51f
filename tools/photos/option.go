package photos

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

// WithHttpClient changes http client
func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
