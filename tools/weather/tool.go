package weather

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
	// DefaultBaseURL is the weatherapi.com endpoint.
	DefaultBaseURL = "http://api.weatherapi.com"

	defaultCountryCode = "IN"
	defaultDays        = 7
)

// Input is the schema for a weather forecast lookup.
type Input struct {
	schema.Base
	// Location is the city to fetch the forecast for.
	Location string `json:"location,omitempty" jsonschema:"title=location,default=India,description=City name to fetch the weather forecast for."`
	// Days is the number of forecast days.
	Days int `json:"days,omitempty" jsonschema:"title=days,default=7,description=Number of forecast days." validate:"omitempty,min=1,max=14"`
}

func NewInput(location string, days int) *Input {
	return &Input{
		Location: location,
		Days:     days,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ForecastDay is one day of the forecast.
type ForecastDay struct {
	Date       string  `json:"date"`
	MaxTempC   float64 `json:"max_temp_c"`
	MinTempC   float64 `json:"min_temp_c"`
	Condition  string  `json:"condition"`
	RainChance int     `json:"rain_chance"`
}

// Output is the pruned forecast: current conditions plus a day-indexed
// summary. An upstream error payload lands in Error instead of failing the
// call.
type Output struct {
	schema.Base
	Location     string        `json:"location,omitempty"`
	Region       string        `json:"region,omitempty"`
	Country      string        `json:"country,omitempty"`
	CurrentTempC float64       `json:"current_temp_c,omitempty"`
	Condition    string        `json:"condition,omitempty"`
	Forecast     []ForecastDay `json:"forecast_summary,omitempty"`
	Error        string        `json:"error,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// forecastResponse is the subset of the provider payload the tool consumes.
type forecastResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC  float64 `json:"maxtemp_c"`
				MinTempC  float64 `json:"mintemp_c"`
				Condition struct {
					Text string `json:"text"`
				} `json:"condition"`
				DailyChanceOfRain int `json:"daily_chance_of_rain"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type Config struct {
	tools.Config
	apiKey      string
	baseURL     string
	countryCode string
	defaultDays int
	httpClient  *http.Client
}

// Tool fetches a multi-day weather forecast. The location is always
// qualified with the configured country code before lookup.
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
		ret.SetTitle("weather_forecast")
	}
	if ret.Description() == "" {
		ret.SetDescription(fmt.Sprintf("Fetches the weather forecast for a given city in India (default: %d-day forecast). The user must provide the city name.", defaultDaysOr(ret.defaultDays)))
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.countryCode == "" {
		ret.countryCode = defaultCountryCode
	}
	if ret.defaultDays == 0 {
		ret.defaultDays = defaultDays
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

func defaultDaysOr(n int) int {
	if n > 0 {
		return n
	}
	return defaultDays
}

// Run fetches the forecast. Provider error payloads populate Output.Error;
// only transport faults return a non-nil error.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	location := input.Location
	if location == "" {
		location = "India"
	}
	days := input.Days
	if days <= 0 {
		days = t.defaultDays
	}
	values := url.Values{}
	values.Set("key", t.apiKey)
	values.Set("q", fmt.Sprintf("%s,%s", location, t.countryCode))
	values.Set("days", fmt.Sprintf("%d", days))
	values.Set("aqi", "yes")
	values.Set("alerts", "yes")
	forecastURL := fmt.Sprintf("%s/v1/forecast.json?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, forecastURL, nil)
	if err != nil {
		return err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error querying weather provider: %w", err)
	}
	defer httpResp.Body.Close()

	var data forecastResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&data); err != nil {
		return fmt.Errorf("malformed weather provider response: %w", err)
	}
	if data.Error != nil {
		output.Error = data.Error.Message
		return nil
	}
	output.Location = data.Location.Name
	output.Region = data.Location.Region
	output.Country = data.Location.Country
	output.CurrentTempC = data.Current.TempC
	output.Condition = data.Current.Condition.Text
	output.Forecast = make([]ForecastDay, 0, len(data.Forecast.ForecastDay))
	for _, day := range data.Forecast.ForecastDay {
		output.Forecast = append(output.Forecast, ForecastDay{
			Date:       day.Date,
			MaxTempC:   day.Day.MaxTempC,
			MinTempC:   day.Day.MinTempC,
			Condition:  day.Day.Condition.Text,
			RainChance: day.Day.DailyChanceOfRain,
		})
	}
	return nil
}
