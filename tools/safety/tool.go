package safety

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
	"github.com/thinkmate-ai/thinkmate/tools/websearch"
)

// Input is the schema for a city risk assessment.
type Input struct {
	schema.Base
	// City is the city to assess.
	City string `json:"city" jsonschema:"title=city,description=The city to assess for safety and terrain risks." validate:"required"`
}

func NewInput(city string) *Input {
	return &Input{City: city}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is the consolidated risk picture. Both fields are raw search
// summaries, no structured risk score is computed.
type Output struct {
	schema.Base
	City        string `json:"city"`
	CrimeTrends string `json:"crime_trends,omitempty"`
	TerrainRisk string `json:"terrain_risk,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Tool assembles a safety and risk assessment for an Indian city from two
// independent search calls, one for crime trends and one for flood and
// landslide exposure.
type Tool struct {
	tools.Config
	search *websearch.Tool
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

func New(search *websearch.Tool) *Tool {
	ret := new(Tool)
	ret.search = search
	ret.SetTitle("safety_risk_radar")
	ret.SetDescription("Provides a consolidated safety and risk assessment for an Indian city: crime trend summary plus flood and landslide warnings.")
	if ret.search == nil {
		ret.search = websearch.New()
	}
	return ret
}

// Run populates each field from its own search call. A degraded search
// leaves the field empty rather than failing the assessment.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	output.City = input.City

	crimeOutput := new(websearch.Output)
	crimeQuery := fmt.Sprintf("latest crime trends and safety situation in %s India", input.City)
	if err := t.search.Run(ctx, websearch.NewInput(crimeQuery), crimeOutput); err != nil {
		return err
	}
	output.CrimeTrends = crimeOutput.Summary

	terrainOutput := new(websearch.Output)
	terrainQuery := fmt.Sprintf("flood and landslide risk level in %s India", input.City)
	if err := t.search.Run(ctx, websearch.NewInput(terrainQuery), terrainOutput); err != nil {
		return err
	}
	output.TerrainRisk = terrainOutput.Summary
	return nil
}
