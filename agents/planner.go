package agents

import (
	"context"
	"encoding/json"

	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/tools"
)

// ToolCall is one tool invocation requested by the planning model.
type ToolCall struct {
	// ID correlates the result with the request for providers that track it.
	ID string `json:"id,omitempty"`
	// Name is the catalog name of the tool.
	Name string `json:"name"`
	// Arguments is the raw JSON argument object.
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Decision is one step of planner output: either a final textual answer or
// a batch of tool calls to execute, never both.
type Decision struct {
	FinalAnswer string
	ToolCalls   []ToolCall
}

// StepRecord is an executed tool call paired with its result, fed back to
// the planner on the next step.
type StepRecord struct {
	Call   ToolCall
	Result string
}

// PlanRequest is everything a Planner needs to produce the next Decision.
type PlanRequest struct {
	// System is the rendered system prompt.
	System string
	// History is the conversation before the current run.
	History []components.Message
	// UserInput is the utterance that started the run.
	UserInput string
	// Steps are the tool calls already executed this run, in order.
	Steps []StepRecord
	// Tools are the catalog descriptors the planner may call.
	Tools []tools.Descriptor
}

// Planner asks a planning model for the next Decision. Implementations
// accumulate token usage on apiResp when the provider reports it.
type Planner interface {
	Next(ctx context.Context, req *PlanRequest, apiResp *components.ApiResponse) (*Decision, error)
}
