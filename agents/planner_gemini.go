package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/invopop/jsonschema"

	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/tools"
)

// GeminiPlanner drives a Gemini model through native function calling.
type GeminiPlanner struct {
	client *genai.Client
	model  string
}

var _ Planner = (*GeminiPlanner)(nil)

func NewGeminiPlanner(client *genai.Client, model string) *GeminiPlanner {
	return &GeminiPlanner{
		client: client,
		model:  model,
	}
}

func (p *GeminiPlanner) Next(ctx context.Context, req *PlanRequest, apiResp *components.ApiResponse) (*Decision, error) {
	model := p.client.GenerativeModel(p.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.System)},
	}
	if decls := geminiDeclarations(req.Tools); len(decls) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}
	contents := geminiContents(req)
	last := contents[len(contents)-1]
	session := model.StartChat()
	session.History = contents[:len(contents)-1]
	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini chat: %w", err)
	}
	if apiResp != nil {
		apiResp.FromGemini(resp)
		apiResp.Model = p.model
	}
	return geminiDecision(resp)
}

// geminiContents renders the conversation for the provider: prior history,
// the user utterance, then one call/response pair per executed step.
func geminiContents(req *PlanRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+2*len(req.Steps)+1)
	for _, msg := range req.History {
		role := "user"
		if msg.Role() == components.AssistantRole {
			role = "model"
		} else if msg.Role() == components.ToolRole {
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.StringifiedContent())},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []genai.Part{genai.Text(req.UserInput)},
	})
	for _, step := range req.Steps {
		args := map[string]any{}
		if len(step.Call.Arguments) > 0 {
			json.Unmarshal(step.Call.Arguments, &args)
		}
		contents = append(contents, &genai.Content{
			Role:  "model",
			Parts: []genai.Part{genai.FunctionCall{Name: step.Call.Name, Args: args}},
		})
		response := map[string]any{}
		if err := json.Unmarshal([]byte(step.Result), &response); err != nil {
			response = map[string]any{"content": step.Result}
		}
		contents = append(contents, &genai.Content{
			Role:  "function",
			Parts: []genai.Part{genai.FunctionResponse{Name: step.Call.Name, Response: response}},
		})
	}
	return contents
}

func geminiDecision(resp *genai.GenerateContentResponse) (*Decision, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	decision := new(Decision)
	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			decision.FinalAnswer += string(v)
		case genai.FunctionCall:
			args, err := json.Marshal(v.Args)
			if err != nil {
				return nil, fmt.Errorf("encode %s arguments: %w", v.Name, err)
			}
			decision.ToolCalls = append(decision.ToolCalls, ToolCall{
				Name:      v.Name,
				Arguments: args,
			})
		}
	}
	if len(decision.ToolCalls) > 0 {
		decision.FinalAnswer = ""
	}
	return decision, nil
}

func geminiDeclarations(descs []tools.Descriptor) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(descs))
	for _, desc := range descs {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        desc.Name,
			Description: desc.Description,
			Parameters:  geminiSchema(desc.Parameters),
		})
	}
	return decls
}

// geminiSchema converts a reflected JSON schema to the provider's subset.
func geminiSchema(src *jsonschema.Schema) *genai.Schema {
	if src == nil {
		return nil
	}
	dst := &genai.Schema{
		Type:        geminiType(src.Type),
		Description: src.Description,
		Required:    src.Required,
	}
	for _, raw := range src.Enum {
		dst.Enum = append(dst.Enum, fmt.Sprintf("%v", raw))
	}
	if src.Items != nil {
		dst.Items = geminiSchema(src.Items)
	}
	if src.Properties != nil {
		dst.Properties = make(map[string]*genai.Schema, src.Properties.Len())
		for pair := src.Properties.Oldest(); pair != nil; pair = pair.Next() {
			dst.Properties[pair.Key] = geminiSchema(pair.Value)
		}
	}
	return dst
}

func geminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	}
	return genai.TypeUnspecified
}
