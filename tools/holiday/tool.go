package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
)

const (
	// DefaultBaseURL is the abstractapi.com holidays endpoint.
	DefaultBaseURL = "https://holidays.abstractapi.com"

	defaultCountry = "IN"

	dateLayout = "2006-01-02"
)

// Input is the schema for a single-day holiday lookup.
type Input struct {
	schema.Base
	// Date is the day to check, formatted YYYY-MM-DD.
	Date string `json:"date" jsonschema:"title=date,description=Date to check for a holiday in YYYY-MM-DD format." validate:"required,datetime=2006-01-02"`
	// Country is the ISO 3166 country code.
	Country string `json:"country,omitempty" jsonschema:"title=country,default=IN,description=Two-letter country code." validate:"omitempty,len=2,alpha"`
}

func NewInput(date string, country string) *Input {
	return &Input{
		Date:    date,
		Country: country,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Holiday is one holiday record.
type Holiday struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Location string `json:"location,omitempty"`
}

// Output carries the first holiday on the requested day, a no-holiday
// message, or an upstream error. Exactly one of the three is populated.
type Output struct {
	schema.Base
	Holiday *Holiday `json:"holiday,omitempty"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	country    string
	httpClient *http.Client
}

// Tool checks whether a given date is a holiday in a given country.
type Tool struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

func New(apiKey string, opts ...Option) *Tool {
	ret := new(Tool)
	ret.apiKey = apiKey
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("get_holiday")
	}
	if ret.Description() == "" {
		ret.SetDescription("Checks if a given date (YYYY-MM-DD) is a public holiday in a country (default: India).")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.country == "" {
		ret.country = defaultCountry
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run queries the provider for the exact day. Non-200 statuses and empty
// result sets are reported as values so the conversation can continue. The
// date is parsed before splitting, never split blindly.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	day, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", input.Date, err)
	}
	country := input.Country
	if country == "" {
		country = t.country
	}
	values := url.Values{}
	values.Set("api_key", t.apiKey)
	values.Set("country", country)
	values.Set("year", fmt.Sprintf("%d", day.Year()))
	values.Set("month", fmt.Sprintf("%d", int(day.Month())))
	values.Set("day", fmt.Sprintf("%d", day.Day()))
	holidaysURL := fmt.Sprintf("%s/v1/?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, holidaysURL, nil)
	if err != nil {
		return err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error querying holiday provider: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		output.Error = fmt.Sprintf("HTTP %d", httpResp.StatusCode)
		return nil
	}
	var records []Holiday
	if err := json.NewDecoder(httpResp.Body).Decode(&records); err != nil {
		return fmt.Errorf("malformed holiday provider response: %w", err)
	}
	if len(records) == 0 {
		output.Message = fmt.Sprintf("No holiday on %s in %s", input.Date, country)
		return nil
	}
	first := records[0]
	output.Holiday = &first
	return nil
}
