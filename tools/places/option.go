package places

import (
	"net/http"

	"github.com/thinkmate-ai/thinkmate/components"
)

type Option func(*Config)

// WithGeocodeBaseURL changes the geocoder endpoint.
func WithGeocodeBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.geocodeBaseURL = baseURL
	}
}

// WithPlacesBaseURL changes the places provider endpoint.
func WithPlacesBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.placesBaseURL = baseURL
	}
}

// WithSession records search results on the session for follow-up turns.
func WithSession(session *components.Session) Option {
	return func(c *Config) {
		c.session = session
	}
}

// WithHttpClient changes http client
func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
