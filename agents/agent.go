package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/components/systemprompt"
	"github.com/thinkmate-ai/thinkmate/components/systemprompt/cot"
	"github.com/thinkmate-ai/thinkmate/schema"
	"github.com/thinkmate-ai/thinkmate/tools"
)

const (
	// DefaultMaxSteps bounds planner round-trips per run.
	DefaultMaxSteps = 12
	// DefaultRunTimeout bounds one whole run including tool calls.
	DefaultRunTimeout = 2 * time.Minute
)

// Config represents general agent configuration
type Config struct {
	// planner asks the language model for the next decision
	planner Planner
	// catalog holds the executable tools
	catalog *tools.Catalog
	// session holds conversation memory and run-scoped shared state
	session *components.Session
	// systemPromptGenerator Component for generating system prompts.
	systemPromptGenerator systemprompt.Generator
	// maxSteps is the planner round-trip budget per run
	maxSteps int
	// runTimeout bounds one run end to end
	runTimeout time.Duration
	// name is Agent name presentation
	name string
}

// Agent drives the planning model through tool calls until it yields a
// final textual answer. One Agent serves one Session; concurrent runs on
// the same session are rejected, not queued.
type Agent struct {
	Config
	startHook func(context.Context, *Agent, string)
	endHook   func(context.Context, *Agent, string, *RunResult)
	errorHook func(context.Context, *Agent, string, error)
}

// New initializes the Agent
func New(planner Planner, catalog *tools.Catalog, options ...Option) *Agent {
	ret := new(Agent)
	ret.planner = planner
	ret.catalog = catalog
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.session == nil {
		ret.session = components.NewSession(nil)
	}
	if ret.systemPromptGenerator == nil {
		ret.systemPromptGenerator = cot.New()
	}
	if ret.maxSteps <= 0 {
		ret.maxSteps = DefaultMaxSteps
	}
	if ret.runTimeout <= 0 {
		ret.runTimeout = DefaultRunTimeout
	}
	return ret
}

func (a Agent) Name() string {
	return a.name
}

// Session returns the agent session.
func (a *Agent) Session() *components.Session {
	return a.session
}

func (a *Agent) SetStartHook(fn func(context.Context, *Agent, string)) {
	a.startHook = fn
}

func (a *Agent) SetEndHook(fn func(context.Context, *Agent, string, *RunResult)) {
	a.endHook = fn
}

func (a *Agent) SetErrorHook(fn func(context.Context, *Agent, string, error)) {
	a.errorHook = fn
}

// SystemPrompt returns the system prompt
func (a *Agent) SystemPrompt() string {
	return a.systemPromptGenerator.Generate()
}

// RegisterSystemPromptContextProvider registers a new context provider
func (a *Agent) RegisterSystemPromptContextProvider(provider systemprompt.ContextProvider) {
	a.systemPromptGenerator.AddContextProviders(provider)
}

// UnregisterSystemPromptContextProvider unregisters an existing context provider.
func (a *Agent) UnregisterSystemPromptContextProvider(title string) {
	a.systemPromptGenerator.RemoveContextProviders(title)
}

// Run drives one orchestration run for the given user utterance. The run
// is bounded by the configured step budget and timeout, and every tool
// failure comes back as a value the planner can read.
func (a *Agent) Run(ctx context.Context, userInput string) (*RunResult, error) {
	if fn := a.startHook; fn != nil {
		fn(ctx, a, userInput)
	}
	if err := a.session.BeginRun(); err != nil {
		return nil, a.fail(ctx, userInput, err)
	}
	defer a.session.EndRun()
	ctx, cancel := context.WithTimeout(ctx, a.runTimeout)
	defer cancel()

	memory := a.session.Memory()
	history := memory.History()
	memory.NewTurn()
	memory.NewMessage(components.UserRole, schema.NewInput(userInput))

	result := &RunResult{
		RunID: uuid.NewString(),
	}
	req := &PlanRequest{
		System:    a.systemPromptGenerator.Generate(),
		History:   history,
		UserInput: userInput,
		Tools:     a.catalog.Descriptors(),
	}
	for step := 0; step < a.maxSteps; step++ {
		stepUsage := new(components.ApiResponse)
		decision, err := a.planner.Next(ctx, req, stepUsage)
		if err != nil {
			return a.abort(ctx, userInput, result, fmt.Errorf("planner step %d: %w", step+1, err))
		}
		result.usage.Add(stepUsage)
		if len(decision.ToolCalls) == 0 {
			result.Output = decision.FinalAnswer
			result.Photos = ExtractPhotos(result.Invocations)
			answer := schema.NewOutput(decision.FinalAnswer)
			if len(result.Photos) > 0 {
				answer.SetAttachement(&schema.Attachement{ImageURLs: result.Photos})
			}
			memory.NewMessage(components.AssistantRole, answer)
			if fn := a.endHook; fn != nil {
				fn(ctx, a, userInput, result)
			}
			return result, nil
		}
		for _, call := range decision.ToolCalls {
			a.execute(ctx, call, result, req)
		}
	}
	return a.abort(ctx, userInput, result, fmt.Errorf("no final answer after %d planner steps", a.maxSteps))
}

// abort closes a run that already opened a turn. The error text becomes the
// assistant answer so memory never ends on a dangling user message, and the
// partially filled result is returned alongside the error.
func (a *Agent) abort(ctx context.Context, userInput string, result *RunResult, err error) (*RunResult, error) {
	result.Output = err.Error()
	a.session.Memory().NewMessage(components.AssistantRole, schema.NewOutput(result.Output))
	return result, a.fail(ctx, userInput, err)
}

// execute runs one tool call, records it, and expands any returned plan
// into immediate follow-up calls executed in plan order.
func (a *Agent) execute(ctx context.Context, call ToolCall, result *RunResult, req *PlanRequest) {
	output := a.catalog.Execute(ctx, call.Name, call.Arguments)
	a.record(call, output, result, req)
	plan, ok := output.(tools.Plan)
	if !ok {
		return
	}
	for _, planned := range plan.PlanSteps() {
		args, err := json.Marshal(planned.Arguments)
		if err != nil {
			args = nil
		}
		plannedCall := ToolCall{Name: planned.Tool, Arguments: args}
		a.record(plannedCall, a.catalog.Execute(ctx, planned.Tool, args), result, req)
	}
}

func (a *Agent) record(call ToolCall, output schema.Schema, result *RunResult, req *PlanRequest) {
	result.Invocations = append(result.Invocations, Invocation{
		Position:  len(result.Invocations),
		Tool:      call.Name,
		Arguments: string(call.Arguments),
		Result:    output,
		At:        time.Now(),
	})
	req.Steps = append(req.Steps, StepRecord{
		Call:   call,
		Result: schema.Stringify(output),
	})
	a.session.Memory().NewMessage(components.ToolRole, output)
}

func (a *Agent) fail(ctx context.Context, userInput string, err error) error {
	if fn := a.errorHook; fn != nil {
		fn(ctx, a, userInput, err)
	}
	return err
}
