package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
)

const (
	// DefaultGeocodeBaseURL is the OpenStreetMap Nominatim endpoint.
	DefaultGeocodeBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultPlacesBaseURL is the Foursquare Places endpoint.
	DefaultPlacesBaseURL = "https://places-api.foursquare.com"

	// apiVersion is the Foursquare Places API version header value.
	apiVersion = "2025-06-17"

	userAgent = "ThinkMate-Agent"

	defaultQuery   = "restaurants"
	defaultRadiusM = 2000
	defaultLimit   = 10
)

// Input is the schema for a keyword place search around a city center.
type Input struct {
	schema.Base
	// City is the city to search in.
	City string `json:"city" jsonschema:"title=city,description=City name to search places in." validate:"required"`
	// Query is a one-word place type.
	Query string `json:"query,omitempty" jsonschema:"title=query,default=restaurants,description=One-word place type such as restaurants or tourist."`
	// RadiusM is the search radius in meters.
	RadiusM int `json:"radius_m,omitempty" jsonschema:"title=radius_m,default=2000,description=Search radius in meters." validate:"omitempty,min=1,max=100000"`
	// Limit is the number of results to return.
	Limit int `json:"limit,omitempty" jsonschema:"title=limit,default=10,description=Number of results." validate:"omitempty,min=1,max=50"`
}

func NewInput(city string, query string) *Input {
	return &Input{
		City:  city,
		Query: query,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Coords is the geocoded city center.
type Coords struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Output is the place search result. An unresolvable city populates Error
// and leaves the rest zero.
type Output struct {
	schema.Base
	City         string                   `json:"city,omitempty"`
	Coords       Coords                   `json:"coords,omitempty"`
	ResultsCount int                      `json:"results_count,omitempty"`
	Results      []components.PlaceRecord `json:"results,omitempty"`
	Error        string                   `json:"error,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// geocodeCandidate is one Nominatim match.
type geocodeCandidate struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// searchResponse is the subset of the Foursquare payload the tool consumes.
type searchResponse struct {
	Results []struct {
		Name     string `json:"name"`
		Distance int    `json:"distance"`
		Location struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"location"`
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
		FsqPlaceID string `json:"fsq_place_id"`
	} `json:"results"`
}

type Config struct {
	tools.Config
	serviceKey     string
	geocodeBaseURL string
	placesBaseURL  string
	httpClient     *http.Client
	session        *components.Session
}

// Tool geocodes a city through Nominatim and searches Foursquare around the
// resulting coordinates. Results are recorded on the session so follow-up
// turns can refer to places by list position.
type Tool struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

func New(serviceKey string, opts ...Option) *Tool {
	ret := new(Tool)
	ret.serviceKey = serviceKey
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("foursquare_places")
	}
	if ret.Description() == "" {
		ret.SetDescription("Searches Foursquare for places in a given city using a simple category keyword such as restaurants, cafes or tourist.")
	}
	if ret.geocodeBaseURL == "" {
		ret.geocodeBaseURL = DefaultGeocodeBaseURL
	}
	if ret.placesBaseURL == "" {
		ret.placesBaseURL = DefaultPlacesBaseURL
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run geocodes first. When no candidate matches the city the places
// provider is never contacted and the miss is reported as a value.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	coords, found, err := t.geocode(ctx, input.City)
	if err != nil {
		return err
	}
	if !found {
		output.Error = fmt.Sprintf("city '%s' not found", input.City)
		return nil
	}
	query := input.Query
	if query == "" {
		query = defaultQuery
	}
	radius := input.RadiusM
	if radius <= 0 {
		radius = defaultRadiusM
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	records, err := t.searchPlaces(ctx, coords, query, radius, limit)
	if err != nil {
		return err
	}
	if t.session != nil {
		t.session.SetLastPlaces(records)
	}
	output.City = input.City
	output.Coords = coords
	output.ResultsCount = len(records)
	output.Results = records
	return nil
}

func (t *Tool) geocode(ctx context.Context, city string) (Coords, bool, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("format", "json")
	values.Set("limit", "1")
	geocodeURL := fmt.Sprintf("%s/search?%s", t.geocodeBaseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, geocodeURL, nil)
	if err != nil {
		return Coords{}, false, err
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return Coords{}, false, fmt.Errorf("error querying geocoder: %w", err)
	}
	defer httpResp.Body.Close()
	var candidates []geocodeCandidate
	if err := json.NewDecoder(httpResp.Body).Decode(&candidates); err != nil {
		return Coords{}, false, fmt.Errorf("malformed geocoder response: %w", err)
	}
	if len(candidates) == 0 {
		return Coords{}, false, nil
	}
	return Coords{Lat: candidates[0].Lat, Lon: candidates[0].Lon}, true, nil
}

func (t *Tool) searchPlaces(ctx context.Context, coords Coords, query string, radius, limit int) ([]components.PlaceRecord, error) {
	values := url.Values{}
	values.Set("ll", fmt.Sprintf("%s,%s", coords.Lat, coords.Lon))
	values.Set("query", query)
	values.Set("radius", fmt.Sprintf("%d", radius))
	values.Set("limit", fmt.Sprintf("%d", limit))
	searchURL := fmt.Sprintf("%s/places/search?%s", t.placesBaseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", t.serviceKey))
	httpReq.Header.Set("X-Places-Api-Version", apiVersion)
	httpReq.Header.Set("Accept", "application/json")
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying places provider: %w", err)
	}
	defer httpResp.Body.Close()
	var data searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("malformed places provider response: %w", err)
	}
	records := make([]components.PlaceRecord, 0, len(data.Results))
	for _, place := range data.Results {
		categories := make([]string, 0, len(place.Categories))
		for _, cat := range place.Categories {
			categories = append(categories, cat.Name)
		}
		records = append(records, components.PlaceRecord{
			Name:       place.Name,
			Address:    place.Location.FormattedAddress,
			DistanceM:  place.Distance,
			Categories: categories,
			PlaceID:    place.FsqPlaceID,
		})
	}
	return records, nil
}
