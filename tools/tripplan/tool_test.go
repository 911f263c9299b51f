package tripplan

import (
	"context"
	"strings"
	"testing"
)

func TestFullPlanHasSixOrderedSteps(t *testing.T) {
	tool := NewFull()
	output := new(Output)
	if err := tool.Run(context.Background(), NewFullInput("Agra", "2025-12-20", "2025-12-22", 30000), output); err != nil {
		t.Fatal(err)
	}
	wantOrder := []string{
		"weather_forecast",
		"get_holiday",
		"safety_risk_radar",
		"budget_context",
		"foursquare_places",
		"city_photos",
	}
	steps := output.PlanSteps()
	if len(steps) != len(wantOrder) {
		t.Fatalf("expecting %d steps, got %d", len(wantOrder), len(steps))
	}
	for i, name := range wantOrder {
		if steps[i].Tool != name {
			t.Errorf("step %d: expecting %s, got %s", i+1, name, steps[i].Tool)
		}
	}
	if steps[0].Arguments["location"] != "Agra" {
		t.Errorf("weather step must bind the city, got %v", steps[0].Arguments)
	}
	if steps[1].Arguments["date"] != "2025-12-20" {
		t.Errorf("holiday step must bind the start date, got %v", steps[1].Arguments)
	}
	for _, step := range steps[2:] {
		if step.Arguments["city"] != "Agra" {
			t.Errorf("%s must bind city=Agra, got %v", step.Tool, step.Arguments)
		}
	}
	if steps[4].Arguments["query"] != "tourist" {
		t.Errorf("places step must search tourist spots, got %v", steps[4].Arguments)
	}
}

func TestFullPlanInstructionNamesEveryStep(t *testing.T) {
	tool := NewFull()
	output := new(Output)
	if err := tool.Run(context.Background(), NewFullInput("Agra", "2025-12-20", "2025-12-22", 30000), output); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"weather_forecast", "get_holiday", "safety_risk_radar", "budget_context", "foursquare_places", "city_photos"} {
		if !strings.Contains(output.Instruction, name) {
			t.Errorf("instruction text missing %s:\n%s", name, output.Instruction)
		}
	}
	if !strings.Contains(output.Instruction, "Budget: 30000") {
		t.Errorf("instruction text missing the budget:\n%s", output.Instruction)
	}
}

func TestFullPlanDefaultBudget(t *testing.T) {
	tool := NewFull()
	output := new(Output)
	if err := tool.Run(context.Background(), NewFullInput("Jaipur", "2026-01-10", "2026-01-12", 0), output); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(output.Instruction, "Budget: 50000") {
		t.Errorf("expecting the default budget in the instruction:\n%s", output.Instruction)
	}
}

func TestQuickPlanSteps(t *testing.T) {
	tool := NewQuick()
	output := new(Output)
	if err := tool.Run(context.Background(), NewQuickInput("Goa", "2026-02-14"), output); err != nil {
		t.Fatal(err)
	}
	steps := output.PlanSteps()
	if len(steps) != 3 {
		t.Fatalf("expecting 3 steps, got %d", len(steps))
	}
	if steps[0].Tool != "weather_forecast" || steps[1].Tool != "get_holiday" || steps[2].Tool != "city_photos" {
		t.Errorf("unexpected step order %v", steps)
	}
	if steps[0].Arguments["location"] != "Goa" || steps[1].Arguments["date"] != "2026-02-14" {
		t.Errorf("unexpected bindings %v", steps)
	}
}
