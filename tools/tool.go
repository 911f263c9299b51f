package tools

import (
	"context"

	"github.com/thinkmate-ai/thinkmate/schema"
)

// ITool is the configuration surface every tool shares: a unique name
// (title), the natural-language purpose text the planning model reads, and
// observation hooks. Implementations embed Config.
type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
	SetStartHook(fn func(context.Context, string, any))
	SetEndHook(fn func(context.Context, string, any, any))
	SetErrorHook(fn func(context.Context, string, any, error))
	hooks() hookSet
}

// Tool is a typed, independently invocable operation. Run maps a typed
// input to a typed output; provider-level failures are reported inside the
// output value, transport faults through the returned error.
type Tool[I schema.Schema, O schema.Schema] interface {
	ITool
	Run(context.Context, *I, *O) error
}
