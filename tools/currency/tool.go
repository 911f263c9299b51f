package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
)

// DefaultBaseURL is the exchangerate-api.com endpoint.
const DefaultBaseURL = "https://v6.exchangerate-api.com"

// Input is the schema for a currency conversion.
type Input struct {
	schema.Base
	// Amount is the quantity of the source currency to convert.
	Amount float64 `json:"amount" jsonschema:"title=amount,description=Amount of money to convert." validate:"required,gt=0"`
	// FromCurrency is the ISO 4217 source currency code.
	FromCurrency string `json:"from_currency" jsonschema:"title=from_currency,description=Source currency code such as USD." validate:"required,len=3,alpha"`
	// ToCurrency is the ISO 4217 target currency code.
	ToCurrency string `json:"to_currency" jsonschema:"title=to_currency,description=Target currency code such as INR." validate:"required,len=3,alpha"`
}

func NewInput(amount float64, from string, to string) *Input {
	return &Input{
		Amount:       amount,
		FromCurrency: from,
		ToCurrency:   to,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output carries either a converted amount or a provider rejection detail,
// never both.
type Output struct {
	schema.Base
	ConvertedAmount *float64 `json:"converted_amount,omitempty"`
	FromCurrency    string   `json:"from_currency,omitempty"`
	ToCurrency      string   `json:"to_currency,omitempty"`
	Rate            float64  `json:"rate,omitempty"`
	Detail          string   `json:"detail,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// pairResponse is the provider payload for a pair conversion.
type pairResponse struct {
	Result         string   `json:"result"`
	ErrorType      string   `json:"error-type"`
	ConversionRate *float64 `json:"conversion_rate"`
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Tool converts an amount between two currencies at the live pair rate.
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
		ret.SetTitle("convert_currency")
	}
	if ret.Description() == "" {
		ret.SetDescription("Converts an amount from one currency to another using live exchange rates. Currency codes are ISO 4217, e.g. USD, INR, EUR.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run looks up the pair rate and converts. Currency codes are upper-cased
// before the lookup so casing never affects the result. Provider rejections
// land in Output.Detail; only transport faults return a non-nil error.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	from := strings.ToUpper(input.FromCurrency)
	to := strings.ToUpper(input.ToCurrency)
	pairURL := fmt.Sprintf("%s/v6/%s/pair/%s/%s", t.baseURL, t.apiKey, from, to)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pairURL, nil)
	if err != nil {
		return err
	}
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error querying exchange rate provider: %w", err)
	}
	defer httpResp.Body.Close()

	var data pairResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&data); err != nil {
		return fmt.Errorf("malformed exchange rate provider response: %w", err)
	}
	if data.Result != "success" {
		output.Detail = fmt.Sprintf("conversion from %s to %s failed: %s", from, to, data.ErrorType)
		return nil
	}
	if data.ConversionRate == nil {
		output.Detail = fmt.Sprintf("Could not find conversion rate for %s to %s.", from, to)
		return nil
	}
	converted := math.Round(input.Amount**data.ConversionRate*100) / 100
	output.ConvertedAmount = &converted
	output.FromCurrency = from
	output.ToCurrency = to
	output.Rate = *data.ConversionRate
	return nil
}
