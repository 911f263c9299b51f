package agents

import (
	"time"

	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/schema"
)

// Invocation is one executed tool call within a run, in execution order.
type Invocation struct {
	// Position is the 0-based execution index within the run.
	Position int `json:"position"`
	// Tool is the catalog name that was executed.
	Tool string `json:"tool"`
	// Arguments is the raw JSON argument object the planner supplied.
	Arguments string `json:"arguments,omitempty"`
	// Result is the tool output.
	Result schema.Schema `json:"result"`
	// At is when the call completed.
	At time.Time `json:"at"`
}

// RunResult is the outcome of one orchestration run: the final answer, the
// ordered tool invocations that produced it, and the photo URLs extracted
// from those invocations.
type RunResult struct {
	// RunID identifies the run.
	RunID string `json:"run_id"`
	// Output is the final textual answer.
	Output string `json:"output"`
	// Invocations are the executed tool calls in order.
	Invocations []Invocation `json:"invocations,omitempty"`
	// Photos are the image URLs of the first photo result, in order.
	Photos []string `json:"photos,omitempty"`

	usage components.ApiResponse
}

// Usage returns the accumulated provider usage for the run.
func (r *RunResult) Usage() *components.ApiResponse {
	return &r.usage
}
