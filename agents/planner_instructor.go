package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bububa/instructor-go/pkg/instructor"
	cohere "github.com/cohere-ai/cohere-go/v2"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/schema"
)

// SelectedCall is one tool call chosen by the planning model.
type SelectedCall struct {
	// Tool is the catalog name of the tool to call.
	Tool string `json:"tool" jsonschema:"title=tool,description=Name of the tool to call." validate:"required"`
	// Arguments are the tool arguments keyed by parameter name.
	Arguments map[string]any `json:"arguments,omitempty" jsonschema:"title=arguments,description=Arguments for the tool keyed by parameter name."`
}

// ToolSelection is the structured planner decision for providers without
// native tool calling. Either Calls or FinalAnswer is populated.
type ToolSelection struct {
	schema.Base
	// Thought is the model's reasoning for the decision.
	Thought string `json:"thought,omitempty" jsonschema:"title=thought,description=Short reasoning behind the decision."`
	// Calls are the tool calls to execute next, empty when answering.
	Calls []SelectedCall `json:"calls,omitempty" jsonschema:"title=calls,description=Tool calls to execute next. Leave empty when giving the final answer."`
	// FinalAnswer is the answer for the user, empty when calling tools.
	FinalAnswer string `json:"final_answer,omitempty" jsonschema:"title=final_answer,description=Final answer for the user. Leave empty when calling tools."`
}

func (s ToolSelection) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// InstructorPlanner drives providers through structured output instead of
// native tool calling: the model fills a ToolSelection, the loop executes
// it. Works with any instructor-wrapped client.
type InstructorPlanner struct {
	client      instructor.Instructor
	model       string
	temperature float32
	maxTokens   int
}

var _ Planner = (*InstructorPlanner)(nil)

type InstructorPlannerOption func(p *InstructorPlanner)

func WithInstructorTemperature(temperature float32) InstructorPlannerOption {
	return func(p *InstructorPlanner) {
		p.temperature = temperature
	}
}

func WithInstructorMaxTokens(maxTokens int) InstructorPlannerOption {
	return func(p *InstructorPlanner) {
		p.maxTokens = maxTokens
	}
}

func NewInstructorPlanner(client instructor.Instructor, model string, opts ...InstructorPlannerOption) *InstructorPlanner {
	ret := &InstructorPlanner{
		client:    client,
		model:     model,
		maxTokens: 4096,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (p *InstructorPlanner) Next(ctx context.Context, req *PlanRequest, apiResp *components.ApiResponse) (*Decision, error) {
	messages := p.messages(req)
	selection := new(ToolSelection)
	switch clt := p.client.(type) {
	case *instructor.InstructorOpenAI:
		chatReq := openai.ChatCompletionRequest{
			Model:               p.model,
			Temperature:         p.temperature,
			MaxCompletionTokens: p.maxTokens,
		}
		for _, msg := range messages {
			v := new(openai.ChatCompletionMessage)
			msg.ToOpenAI(v)
			chatReq.Messages = append(chatReq.Messages, *v)
		}
		if res, err := clt.CreateChatCompletion(ctx, chatReq, selection); err != nil {
			return nil, err
		} else if apiResp != nil {
			apiResp.FromOpenAI(&res)
		}
	case *instructor.InstructorAnthropic:
		chatReq := anthropic.MessagesRequest{
			Model:       anthropic.Model(p.model),
			Temperature: &p.temperature,
			MaxTokens:   p.maxTokens,
		}
		for _, msg := range messages {
			if msg.Role() == components.SystemRole {
				chatReq.System = msg.StringifiedContent()
				continue
			}
			v := new(anthropic.Message)
			msg.ToAnthropic(v)
			chatReq.Messages = append(chatReq.Messages, *v)
		}
		if res, err := clt.CreateMessages(ctx, chatReq, selection); err != nil {
			return nil, err
		} else if apiResp != nil {
			apiResp.FromAnthropic(&res)
		}
	case *instructor.InstructorCohere:
		lastIdx := len(messages) - 1
		temperature := float64(p.temperature)
		chatReq := cohere.ChatRequest{
			Model:       &p.model,
			Temperature: &temperature,
			MaxTokens:   &p.maxTokens,
			Message:     messages[lastIdx].StringifiedContent(),
		}
		for idx, msg := range messages {
			if idx >= lastIdx {
				break
			}
			v := new(cohere.Message)
			msg.ToCohere(v)
			chatReq.ChatHistory = append(chatReq.ChatHistory, v)
		}
		if res, err := clt.Chat(ctx, &chatReq, selection); err != nil {
			return nil, err
		} else if apiResp != nil {
			apiResp.FromCohere(res)
		}
	default:
		return nil, fmt.Errorf("unsupported instructor client %T", p.client)
	}
	return selectionDecision(selection)
}

func selectionDecision(selection *ToolSelection) (*Decision, error) {
	decision := new(Decision)
	if len(selection.Calls) == 0 {
		decision.FinalAnswer = selection.FinalAnswer
		return decision, nil
	}
	for _, call := range selection.Calls {
		args, err := json.Marshal(call.Arguments)
		if err != nil {
			return nil, fmt.Errorf("encode %s arguments: %w", call.Tool, err)
		}
		decision.ToolCalls = append(decision.ToolCalls, ToolCall{
			Name:      call.Tool,
			Arguments: args,
		})
	}
	return decision, nil
}

// messages renders the catalog into the system prompt and executed steps
// into the transcript, since these providers see no native tool channel.
func (p *InstructorPlanner) messages(req *PlanRequest) []components.Message {
	messages := make([]components.Message, 0, len(req.History)+len(req.Steps)+2)
	messages = append(messages, *components.NewMessage(components.SystemRole, schema.String(p.systemPrompt(req))))
	for _, msg := range req.History {
		if msg.Role() == components.ToolRole {
			continue
		}
		messages = append(messages, msg)
	}
	messages = append(messages, *components.NewMessage(components.UserRole, schema.String(req.UserInput)))
	for _, step := range req.Steps {
		text := fmt.Sprintf("Tool %s was called with %s and returned: %s", step.Call.Name, string(step.Call.Arguments), step.Result)
		messages = append(messages, *components.NewMessage(components.UserRole, schema.String(text)))
	}
	return messages
}

func (p *InstructorPlanner) systemPrompt(req *PlanRequest) string {
	var b strings.Builder
	b.WriteString(req.System)
	b.WriteString("\n\n# AVAILABLE TOOLS\n")
	for _, desc := range req.Tools {
		fmt.Fprintf(&b, "- %s: %s\n  parameters: %s\n", desc.Name, desc.Description, string(desc.ParametersJSON()))
	}
	b.WriteString("\nDecide the next action. To call tools, fill `calls` with tool names and arguments. To answer the user, fill `final_answer` and leave `calls` empty.")
	return b.String()
}
