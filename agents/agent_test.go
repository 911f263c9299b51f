package agents

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
	"github.com/thinkmate-ai/thinkmate/tools/tripplan"
)

// scriptedPlanner replays a fixed decision sequence and records what it was
// asked, so tests can drive the loop without a live model.
type scriptedPlanner struct {
	decisions []*Decision
	requests  []PlanRequest
}

func (p *scriptedPlanner) Next(ctx context.Context, req *PlanRequest, apiResp *components.ApiResponse) (*Decision, error) {
	p.requests = append(p.requests, *req)
	idx := len(p.requests) - 1
	if idx >= len(p.decisions) {
		return nil, errors.New("script exhausted")
	}
	return p.decisions[idx], nil
}

type echoInput struct {
	schema.Base
	City     string `json:"city,omitempty"`
	Location string `json:"location,omitempty"`
	Date     string `json:"date,omitempty"`
}

func (s echoInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type echoOutput struct {
	schema.Base
	Note string `json:"note"`
}

func (s echoOutput) String() string {
	return s.Note
}

type echoTool struct {
	tools.Config
	calls int
}

func newEchoTool(name string) *echoTool {
	ret := new(echoTool)
	ret.SetTitle(name)
	ret.SetDescription(name + " stub")
	return ret
}

func (t *echoTool) Run(ctx context.Context, input *echoInput, output *echoOutput) error {
	t.calls++
	output.Note = t.Title() + " done"
	return nil
}

type photoOutput struct {
	schema.Base
	Type string   `json:"type"`
	URLs []string `json:"urls"`
}

func (s photoOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

func (s photoOutput) PhotoURLs() []string {
	return s.URLs
}

type photoTool struct {
	tools.Config
	urls []string
}

func newPhotoTool(urls []string) *photoTool {
	ret := &photoTool{urls: urls}
	ret.SetTitle("city_photos")
	ret.SetDescription("photo stub")
	return ret
}

func (t *photoTool) Run(ctx context.Context, input *echoInput, output *photoOutput) error {
	output.Type = tools.PhotoDiscriminator
	output.URLs = t.urls
	return nil
}

func newTestCatalog(t *testing.T, urls []string) (*tools.Catalog, map[string]*echoTool) {
	t.Helper()
	catalog := tools.NewCatalog()
	echoes := make(map[string]*echoTool)
	for _, name := range []string{"weather_forecast", "get_holiday", "safety_risk_radar", "budget_context", "foursquare_places"} {
		tool := newEchoTool(name)
		echoes[name] = tool
		if err := tools.Register[echoInput, echoOutput](catalog, tool); err != nil {
			t.Fatal(err)
		}
	}
	if err := tools.Register[echoInput, photoOutput](catalog, newPhotoTool(urls)); err != nil {
		t.Fatal(err)
	}
	if err := tools.Register[tripplan.QuickInput, tripplan.Output](catalog, tripplan.NewQuick()); err != nil {
		t.Fatal(err)
	}
	return catalog, echoes
}

func TestRunFinalAnswerAppendsToMemory(t *testing.T) {
	catalog, _ := newTestCatalog(t, nil)
	planner := &scriptedPlanner{decisions: []*Decision{
		{FinalAnswer: "Jaipur is lovely in winter."},
	}}
	agent := New(planner, catalog)
	result, err := agent.Run(context.Background(), "tell me about Jaipur")
	if err != nil {
		t.Fatal(err)
	}
	if result.Output != "Jaipur is lovely in winter." {
		t.Errorf("unexpected output %q", result.Output)
	}
	if result.RunID == "" {
		t.Error("expecting a run id")
	}
	history := agent.Session().Memory().History()
	if len(history) != 2 {
		t.Fatalf("expecting user and assistant turns, got %d messages", len(history))
	}
	if history[0].Role() != components.UserRole || history[1].Role() != components.AssistantRole {
		t.Errorf("unexpected roles %s, %s", history[0].Role(), history[1].Role())
	}
	if history[1].StringifiedContent() == "" {
		t.Error("assistant turn must carry the answer")
	}
}

func TestRunExecutesToolsThenAnswers(t *testing.T) {
	catalog, echoes := newTestCatalog(t, nil)
	planner := &scriptedPlanner{decisions: []*Decision{
		{ToolCalls: []ToolCall{{Name: "weather_forecast", Arguments: json.RawMessage(`{"location":"Agra"}`)}}},
		{FinalAnswer: "Expect clear skies."},
	}}
	agent := New(planner, catalog)
	result, err := agent.Run(context.Background(), "weather in Agra?")
	if err != nil {
		t.Fatal(err)
	}
	if echoes["weather_forecast"].calls != 1 {
		t.Errorf("expecting one weather call, got %d", echoes["weather_forecast"].calls)
	}
	if len(result.Invocations) != 1 || result.Invocations[0].Tool != "weather_forecast" {
		t.Errorf("unexpected invocations %+v", result.Invocations)
	}
	// the second planner request must see the executed step
	second := planner.requests[1]
	if len(second.Steps) != 1 || second.Steps[0].Call.Name != "weather_forecast" {
		t.Errorf("planner must see executed steps, got %+v", second.Steps)
	}
}

func TestRunExpandsPlansDeterministically(t *testing.T) {
	catalog, _ := newTestCatalog(t, []string{"https://images.example/goa.jpg"})
	planner := &scriptedPlanner{decisions: []*Decision{
		{ToolCalls: []ToolCall{{Name: "travel_quick_planner", Arguments: json.RawMessage(`{"destination_city":"Goa","date":"2026-02-14"}`)}}},
		{FinalAnswer: "Here is your quick plan."},
	}}
	agent := New(planner, catalog)
	result, err := agent.Run(context.Background(), "quick check for Goa on 2026-02-14")
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []string{"travel_quick_planner", "weather_forecast", "get_holiday", "city_photos"}
	if len(result.Invocations) != len(wantOrder) {
		t.Fatalf("expecting %d invocations, got %d", len(wantOrder), len(result.Invocations))
	}
	for i, name := range wantOrder {
		if result.Invocations[i].Tool != name {
			t.Errorf("invocation %d: expecting %s, got %s", i, name, result.Invocations[i].Tool)
		}
		if result.Invocations[i].Position != i {
			t.Errorf("invocation %d: position %d", i, result.Invocations[i].Position)
		}
	}
	if len(result.Photos) != 1 || result.Photos[0] != "https://images.example/goa.jpg" {
		t.Errorf("unexpected photos %v", result.Photos)
	}
}

func TestRunStepBudget(t *testing.T) {
	catalog, echoes := newTestCatalog(t, nil)
	loop := &Decision{ToolCalls: []ToolCall{{Name: "budget_context", Arguments: json.RawMessage(`{"city":"Agra"}`)}}}
	planner := &scriptedPlanner{decisions: []*Decision{loop, loop, loop, loop}}
	agent := New(planner, catalog, WithMaxSteps(3))
	result, err := agent.Run(context.Background(), "loop forever")
	if err == nil {
		t.Fatal("expecting an error once the step budget is spent")
	}
	if echoes["budget_context"].calls != 3 {
		t.Errorf("expecting exactly 3 tool calls, got %d", echoes["budget_context"].calls)
	}
	if result == nil {
		t.Fatal("expecting a result alongside the error")
	}
	if !strings.Contains(result.Output, "no final answer") {
		t.Errorf("output must carry the error text, got %q", result.Output)
	}
	history := agent.Session().Memory().History()
	last := history[len(history)-1]
	if last.Role() != components.AssistantRole {
		t.Fatalf("memory must not end on a dangling user turn, last role %s", last.Role())
	}
	if !strings.Contains(last.StringifiedContent(), "no final answer") {
		t.Errorf("assistant turn must carry the error text, got %q", last.StringifiedContent())
	}
}

func TestRunRejectsConcurrentRuns(t *testing.T) {
	catalog, _ := newTestCatalog(t, nil)
	session := components.NewSession(nil)
	planner := &scriptedPlanner{decisions: []*Decision{{FinalAnswer: "ok"}}}
	agent := New(planner, catalog, WithSession(session))
	if err := session.BeginRun(); err != nil {
		t.Fatal(err)
	}
	defer session.EndRun()
	if _, err := agent.Run(context.Background(), "hello"); err == nil {
		t.Fatal("expecting the busy session to reject the run")
	}
}

func TestRunHistoryRoundTrip(t *testing.T) {
	catalog, _ := newTestCatalog(t, nil)
	planner := &scriptedPlanner{decisions: []*Decision{
		{FinalAnswer: "first answer"},
		{FinalAnswer: "second answer"},
	}}
	agent := New(planner, catalog)
	if _, err := agent.Run(context.Background(), "first question"); err != nil {
		t.Fatal(err)
	}
	if _, err := agent.Run(context.Background(), "second question"); err != nil {
		t.Fatal(err)
	}
	// the second run must replay the first exchange unchanged
	second := planner.requests[1]
	if len(second.History) != 2 {
		t.Fatalf("expecting 2 history messages, got %d", len(second.History))
	}
	if second.History[0].StringifiedContent() == "" || second.History[1].StringifiedContent() == "" {
		t.Error("history content must survive the round trip")
	}
	if second.History[0].Role() != components.UserRole || second.History[1].Role() != components.AssistantRole {
		t.Errorf("unexpected history roles %s, %s", second.History[0].Role(), second.History[1].Role())
	}
}
