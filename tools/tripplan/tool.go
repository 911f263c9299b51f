package tripplan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
)

const defaultBudget = 50000

// FullInput is the schema for a complete trip plan request.
type FullInput struct {
	schema.Base
	// City is the destination city.
	City string `json:"city" jsonschema:"title=city,description=Destination city for the trip." validate:"required"`
	// StartDate is the trip start, formatted YYYY-MM-DD.
	StartDate string `json:"start_date" jsonschema:"title=start_date,description=Trip start date in YYYY-MM-DD format." validate:"required,datetime=2006-01-02"`
	// EndDate is the trip end, formatted YYYY-MM-DD.
	EndDate string `json:"end_date" jsonschema:"title=end_date,description=Trip end date in YYYY-MM-DD format." validate:"required,datetime=2006-01-02"`
	// Budget is the total trip budget in rupees.
	Budget int `json:"budget,omitempty" jsonschema:"title=budget,default=50000,description=Total trip budget in Indian rupees." validate:"omitempty,gt=0"`
}

func NewFullInput(city, startDate, endDate string, budget int) *FullInput {
	return &FullInput{
		City:      city,
		StartDate: startDate,
		EndDate:   endDate,
		Budget:    budget,
	}
}

func (s FullInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is an executable plan. Steps is the ordered call list the
// orchestrator runs verbatim; Instruction is the same plan rendered as text
// for the planning model and the transcript.
type Output struct {
	schema.Base
	Instruction string           `json:"instruction"`
	Steps       []tools.PlanStep `json:"steps"`
}

func (s Output) String() string {
	return s.Instruction
}

// PlanSteps returns the ordered call list.
func (s Output) PlanSteps() []tools.PlanStep {
	return s.Steps
}

var _ tools.Plan = (*Output)(nil)

// FullTool plans a complete trip. It performs no external I/O of its own:
// the output is a directed call plan over the other catalog tools covering
// weather, holidays, safety, budget, places and photos.
type FullTool struct {
	tools.Config
}

var _ tools.Tool[FullInput, Output] = (*FullTool)(nil)

func NewFull() *FullTool {
	ret := new(FullTool)
	ret.SetTitle("full_trip_planner")
	ret.SetDescription("Use this when the user requests a COMPLETE trip plan covering weather, holidays, safety, budget, places to visit and photos. Returns the ordered work plan to execute.")
	return ret
}

// Run builds the six-step plan with the city bound throughout.
func (t *FullTool) Run(ctx context.Context, input *FullInput, output *Output) error {
	budget := input.Budget
	if budget <= 0 {
		budget = defaultBudget
	}
	output.Steps = []tools.PlanStep{
		{Tool: "weather_forecast", Arguments: map[string]any{"location": input.City}},
		{Tool: "get_holiday", Arguments: map[string]any{"date": input.StartDate}},
		{Tool: "safety_risk_radar", Arguments: map[string]any{"city": input.City}},
		{Tool: "budget_context", Arguments: map[string]any{"city": input.City}},
		{Tool: "foursquare_places", Arguments: map[string]any{"city": input.City, "query": "tourist"}},
		{Tool: "city_photos", Arguments: map[string]any{"city": input.City}},
	}
	header := fmt.Sprintf("Start full trip planning for:\nCity: %s\nDates: %s to %s\nBudget: %d\n\nNow perform these steps in order:\n", input.City, input.StartDate, input.EndDate, budget)
	output.Instruction = header + renderSteps(output.Steps) + "\nThen summarize all tool results beautifully."
	return nil
}

// QuickInput is the schema for a lightweight single-date plan.
type QuickInput struct {
	schema.Base
	// DestinationCity is the city to check.
	DestinationCity string `json:"destination_city" jsonschema:"title=destination_city,description=City to build a quick travel snapshot for." validate:"required"`
	// Date is the travel date, formatted YYYY-MM-DD.
	Date string `json:"date" jsonschema:"title=date,description=Travel date in YYYY-MM-DD format." validate:"required,datetime=2006-01-02"`
}

func NewQuickInput(city, date string) *QuickInput {
	return &QuickInput{
		DestinationCity: city,
		Date:            date,
	}
}

func (s QuickInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// QuickTool plans a quick single-date travel snapshot: weather, holiday
// check and photos. Like FullTool it performs no external I/O.
type QuickTool struct {
	tools.Config
}

var _ tools.Tool[QuickInput, Output] = (*QuickTool)(nil)

func NewQuick() *QuickTool {
	ret := new(QuickTool)
	ret.SetTitle("travel_quick_planner")
	ret.SetDescription("Use this for a quick single-date travel check: weather, holiday status and photos of the destination. Returns the ordered work plan to execute.")
	return ret
}

func (t *QuickTool) Run(ctx context.Context, input *QuickInput, output *Output) error {
	output.Steps = []tools.PlanStep{
		{Tool: "weather_forecast", Arguments: map[string]any{"location": input.DestinationCity}},
		{Tool: "get_holiday", Arguments: map[string]any{"date": input.Date}},
		{Tool: "city_photos", Arguments: map[string]any{"city": input.DestinationCity}},
	}
	header := fmt.Sprintf("Quick travel check for %s on %s.\n\nNow perform these steps in order:\n", input.DestinationCity, input.Date)
	output.Instruction = header + renderSteps(output.Steps) + "\nThen summarize the results for the user."
	return nil
}

func renderSteps(steps []tools.PlanStep) string {
	var b strings.Builder
	for i, step := range steps {
		args, _ := json.Marshal(step.Arguments)
		fmt.Fprintf(&b, "%d. Call %s with %s\n", i+1, step.Tool, string(args))
	}
	return b.String()
}
