package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
)

const (
	// DefaultBaseURL is the DuckDuckGo Instant Answer endpoint.
	DefaultBaseURL = "https://api.duckduckgo.com"

	defaultMaxTopics = 5
)

// Input is the schema for a real-time web search.
type Input struct {
	schema.Base
	// Query is the search query or topic to look up.
	Query string `json:"query" jsonschema:"title=query,description=The search query or topic to look up." validate:"required"`
}

func NewInput(query string) *Input {
	return &Input{
		Query: query,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is the summarized search result text. An empty summary means "no
// result", never an error.
type Output struct {
	schema.Base
	// Summary is the summarized search result text.
	Summary string `json:"summary,omitempty" jsonschema:"title=summary,description=The summarized search result text."`
}

func (s Output) String() string {
	return s.Summary
}

// instantAnswer is the subset of the DuckDuckGo Instant Answer response the
// tool consumes.
type instantAnswer struct {
	AbstractText  string `json:"AbstractText"`
	Answer        string `json:"Answer"`
	RelatedTopics []struct {
		Text   string `json:"Text"`
		Topics []struct {
			Text string `json:"Text"`
		} `json:"Topics"`
	} `json:"RelatedTopics"`
}

type Config struct {
	tools.Config
	baseURL    string
	maxTopics  int
	httpClient *http.Client
}

// Tool performs a real-time web search and returns a short textual summary.
// A failed or empty lookup yields an empty summary: the planning model is
// expected to treat that as "no result", not as a fault to propagate.
type Tool struct {
	Config
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("search")
	}
	if ret.Description() == "" {
		ret.SetDescription("Perform a real-time web search. Use this tool to fetch live information such as current events, prices, or news. Returns the summarized search result text; an empty result means nothing was found.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.maxTopics == 0 {
		ret.maxTopics = defaultMaxTopics
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Run queries the search provider. Transport faults and non-200 responses
// degrade to an empty summary.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	summary, err := t.fetchSummary(ctx, input.Query)
	if err != nil {
		output.Summary = ""
		return nil
	}
	output.Summary = summary
	return nil
}

func (t *Tool) fetchSummary(ctx context.Context, query string) (string, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "json")
	values.Set("no_html", "1")
	values.Set("skip_disambig", "1")
	searchURL := fmt.Sprintf("%s/?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", err
	}

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error querying search engine: %v", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-200 response from search engine: %d", httpResp.StatusCode)
	}

	var answer instantAnswer
	if err := json.NewDecoder(httpResp.Body).Decode(&answer); err != nil {
		return "", err
	}
	if answer.AbstractText != "" {
		return answer.AbstractText, nil
	}
	if answer.Answer != "" {
		return answer.Answer, nil
	}
	texts := make([]string, 0, t.maxTopics)
	for _, topic := range answer.RelatedTopics {
		if len(texts) >= t.maxTopics {
			break
		}
		if topic.Text != "" {
			texts = append(texts, topic.Text)
			continue
		}
		for _, sub := range topic.Topics {
			if len(texts) >= t.maxTopics {
				break
			}
			if sub.Text != "" {
				texts = append(texts, sub.Text)
			}
		}
	}
	return strings.Join(texts, " "), nil
}
