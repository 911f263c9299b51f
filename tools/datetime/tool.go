// Package datetime exposes the current system date and time as a tool, so
// the planning model can anchor relative dates ("this weekend", "tomorrow")
// before calling date-sensitive tools.
package datetime

import (
	"context"
	"time"

	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
)

// Layout is the presentation format of the timestamp.
const Layout = "Monday, January 02, 2006 - 03:04 PM"

// Input takes no parameters.
type Input struct {
	schema.Base
}

// Output is the formatted local timestamp.
type Output struct {
	schema.Base
	// Datetime is the formatted current date and time.
	Datetime string `json:"datetime" jsonschema:"title=datetime,description=The formatted current date and time."`
}

func (s Output) String() string {
	return s.Datetime
}

type Config struct {
	tools.Config
	now func() time.Time
}

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
		ret.SetTitle("current_datetime")
	}
	if ret.Description() == "" {
		ret.SetDescription("Returns the current system date and time. Use this tool when the user asks for today's date, time, or current timestamp.")
	}
	if ret.now == nil {
		ret.now = time.Now
	}
	return ret
}

func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	output.Datetime = t.now().Format(Layout)
	return nil
}
