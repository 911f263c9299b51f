package budget

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
	"github.com/thinkmate-ai/thinkmate/tools/websearch"
)

const defaultCategory = "daily budget per person"

// Input is the schema for a cost-of-living lookup.
type Input struct {
	schema.Base
	// City is the city to analyze.
	City string `json:"city" jsonschema:"title=city,description=The city to analyze, e.g. Agra or Mumbai." validate:"required"`
	// Category is the type of expense to check.
	Category string `json:"category,omitempty" jsonschema:"title=category,default=daily budget per person,description=The type of expense to check, e.g. daily budget per person or local meal price."`
}

func NewInput(city string, category string) *Input {
	return &Input{
		City:     city,
		Category: category,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is a free-text cost summary with framing text around the raw
// search result.
type Output struct {
	schema.Base
	Context string `json:"context,omitempty"`
}

func (s Output) String() string {
	return s.Context
}

// Tool fetches cost-of-living context for a city. It has no data source of
// its own and composes a derived query over the search tool.
type Tool struct {
	tools.Config
	search *websearch.Tool
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

func New(search *websearch.Tool) *Tool {
	ret := new(Tool)
	ret.search = search
	ret.SetTitle("budget_context")
	ret.SetDescription("Fetches cost-of-living or travel budget insights in Indian rupees for a given city and expense category.")
	if ret.search == nil {
		ret.search = websearch.New()
	}
	return ret
}

// Run issues the derived query and wraps its summary. Search degradation
// surfaces as an empty context body, never as an error.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	category := input.Category
	if category == "" {
		category = defaultCategory
	}
	query := fmt.Sprintf("Average cost of %s in %s in Indian rupees", category, input.City)
	searchOutput := new(websearch.Output)
	if err := t.search.Run(ctx, websearch.NewInput(query), searchOutput); err != nil {
		return err
	}
	output.Context = fmt.Sprintf("Cost context for %s (%s): %s", input.City, category, searchOutput.Summary)
	return nil
}
