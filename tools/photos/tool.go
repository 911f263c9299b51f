package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
)

const (
	// DefaultBaseURL is the Unsplash API endpoint.
	DefaultBaseURL = "https://api.unsplash.com"

	defaultCount = 5
)

// Input is the schema for a city photo lookup.
type Input struct {
	schema.Base
	// City is the city to fetch photos of.
	City string `json:"city" jsonschema:"title=city,description=City name such as Delhi or Mumbai." validate:"required"`
	// Count is the number of images to return.
	Count int `json:"count,omitempty" jsonschema:"title=count,default=5,description=Number of images to return." validate:"omitempty,min=1,max=30"`
}

func NewInput(city string, count int) *Input {
	return &Input{
		City:  city,
		Count: count,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is a tagged photo list so downstream display logic can recognize
// it among arbitrary tool results without guessing at shapes.
type Output struct {
	schema.Base
	Type string   `json:"type"`
	URLs []string `json:"urls"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// PhotoURLs returns the image URLs in provider order.
func (s Output) PhotoURLs() []string {
	return s.URLs
}

var _ tools.PhotoResult = (*Output)(nil)

// searchResponse is the subset of the Unsplash payload the tool consumes.
type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

type Config struct {
	tools.Config
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

// Tool fetches city images from Unsplash.
type Tool struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

func New(accessKey string, opts ...Option) *Tool {
	ret := new(Tool)
	ret.accessKey = accessKey
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("city_photos")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetches high-quality city images. Call this whenever the user asks for photos of a city, destination or place.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run searches the provider and keeps the regular-size URL of each hit.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	count := input.Count
	if count <= 0 {
		count = defaultCount
	}
	values := url.Values{}
	values.Set("query", input.City)
	values.Set("per_page", fmt.Sprintf("%d", count))
	values.Set("client_id", t.accessKey)
	searchURL := fmt.Sprintf("%s/search/photos?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error querying photo provider: %w", err)
	}
	defer httpResp.Body.Close()
	var data searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&data); err != nil {
		return fmt.Errorf("malformed photo provider response: %w", err)
	}
	urls := make([]string, 0, len(data.Results))
	for _, photo := range data.Results {
		urls = append(urls, photo.URLs.Regular)
	}
	output.Type = tools.PhotoDiscriminator
	output.URLs = urls
	return nil
}
