package tools

import (
	"encoding/json"
	"fmt"

	"github.com/thinkmate-ai/thinkmate/schema"
)

// PhotoDiscriminator is the wire value of the "type" field that marks a
// tool result as a photo set.
const PhotoDiscriminator = "photos"

// PhotoResult is the tagged variant for tool outputs carrying destination
// images. The post-processor matches on this interface instead of probing
// for discriminator fields in raw maps; the discriminator stays on the wire
// for the planning model.
type PhotoResult interface {
	schema.Schema
	PhotoURLs() []string
}

// PlanStep is one step of a directed call plan: the tool to invoke and its
// argument bindings.
type PlanStep struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Plan is the tagged variant for planner-tool outputs. The orchestration
// loop executes the steps deterministically, in order, instead of relying
// on the model honoring instruction text.
type Plan interface {
	schema.Schema
	PlanSteps() []PlanStep
}

// ErrorOutput is the catalog's uniform error value: validation failures,
// transport faults and timeouts all surface through it so the planning
// model can read the failure and react, and a failing tool never aborts the
// run.
type ErrorOutput struct {
	schema.Base
	Error string `json:"error"`
}

func NewError(format string, args ...any) *ErrorOutput {
	return &ErrorOutput{
		Error: fmt.Sprintf(format, args...),
	}
}

func (e ErrorOutput) String() string {
	bs, _ := json.Marshal(e)
	return string(bs)
}
