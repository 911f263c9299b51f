package agents

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/tools"
)

// OpenAIPlanner drives an OpenAI chat model through native tool calling.
type OpenAIPlanner struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

var _ Planner = (*OpenAIPlanner)(nil)

type OpenAIPlannerOption func(p *OpenAIPlanner)

func WithOpenAITemperature(temperature float32) OpenAIPlannerOption {
	return func(p *OpenAIPlanner) {
		p.temperature = temperature
	}
}

func WithOpenAIMaxTokens(maxTokens int) OpenAIPlannerOption {
	return func(p *OpenAIPlanner) {
		p.maxTokens = maxTokens
	}
}

func NewOpenAIPlanner(client *openai.Client, model string, opts ...OpenAIPlannerOption) *OpenAIPlanner {
	ret := &OpenAIPlanner{
		client: client,
		model:  model,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (p *OpenAIPlanner) Next(ctx context.Context, req *PlanRequest, apiResp *components.ApiResponse) (*Decision, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Temperature:         p.temperature,
		MaxCompletionTokens: p.maxTokens,
		Messages:            openaiMessages(req),
		Tools:               openaiTools(req.Tools),
	}
	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}
	if apiResp != nil {
		apiResp.FromOpenAI(&resp)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	choice := resp.Choices[0].Message
	decision := new(Decision)
	if len(choice.ToolCalls) == 0 {
		decision.FinalAnswer = choice.Content
		return decision, nil
	}
	for _, call := range choice.ToolCalls {
		decision.ToolCalls = append(decision.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}
	return decision, nil
}

func openaiMessages(req *PlanRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2*len(req.Steps)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.System,
	})
	for _, msg := range req.History {
		if msg.Role() == components.ToolRole {
			continue
		}
		v := new(openai.ChatCompletionMessage)
		msg.ToOpenAI(v)
		messages = append(messages, *v)
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserInput,
	})
	for _, step := range req.Steps {
		callID := step.Call.ID
		if callID == "" {
			callID = step.Call.Name
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleAssistant,
			ToolCalls: []openai.ToolCall{
				{
					ID:   callID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      step.Call.Name,
						Arguments: string(step.Call.Arguments),
					},
				},
			},
		})
		messages = append(messages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			ToolCallID: callID,
			Content:    step.Result,
		})
	}
	return messages
}

func openaiTools(descs []tools.Descriptor) []openai.Tool {
	out := make([]openai.Tool, 0, len(descs))
	for _, desc := range descs {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        desc.Name,
				Description: desc.Description,
				Parameters:  desc.Parameters,
			},
		})
	}
	return out
}
