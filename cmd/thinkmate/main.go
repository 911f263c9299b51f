package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bububa/instructor-go/pkg/instructor"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"
	cohereOption "github.com/cohere-ai/cohere-go/v2/option"
	"github.com/google/generative-ai-go/genai"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/thinkmate-ai/thinkmate/agents"
	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/components/systemprompt/cot"
	"github.com/thinkmate-ai/thinkmate/config"
	"github.com/thinkmate-ai/thinkmate/tools"
	"github.com/thinkmate-ai/thinkmate/tools/budget"
	"github.com/thinkmate-ai/thinkmate/tools/currency"
	"github.com/thinkmate-ai/thinkmate/tools/datetime"
	"github.com/thinkmate-ai/thinkmate/tools/holiday"
	"github.com/thinkmate-ai/thinkmate/tools/photos"
	"github.com/thinkmate-ai/thinkmate/tools/places"
	"github.com/thinkmate-ai/thinkmate/tools/safety"
	"github.com/thinkmate-ai/thinkmate/tools/tripplan"
	"github.com/thinkmate-ai/thinkmate/tools/weather"
	"github.com/thinkmate-ai/thinkmate/tools/websearch"
)

func main() {
	configPath := flag.String("config", "thinkmate.yaml", "path to the configuration file")
	flag.Parse()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	session := components.NewSession(components.NewMemory(cfg.MemoryLimit))
	catalog, err := buildCatalog(cfg, session, logger)
	if err != nil {
		logger.Error("build catalog", "error", err)
		os.Exit(1)
	}
	planner, err := buildPlanner(ctx, cfg)
	if err != nil {
		logger.Error("build planner", "error", err)
		os.Exit(1)
	}

	opts := []agents.Option{
		agents.WithName("ThinkMate"),
		agents.WithSession(session),
		agents.WithSystemPromptGenerator(systemPrompt()),
	}
	if cfg.MaxSteps > 0 {
		opts = append(opts, agents.WithMaxSteps(cfg.MaxSteps))
	}
	if cfg.RunTimeout > 0 {
		opts = append(opts, agents.WithRunTimeout(cfg.RunTimeout))
	}
	agent := agents.New(planner, catalog, opts...)
	agent.SetErrorHook(func(ctx context.Context, _ *agents.Agent, input string, err error) {
		logger.Error("run failed", "input", input, "error", err)
	})

	fmt.Println("ThinkMate travel assistant. Ask about weather, holidays, places, budgets or full trip plans. Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		result, err := agent.Run(ctx, input)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		for _, url := range result.Photos {
			fmt.Printf("[photo] %s\n", url)
		}
		fmt.Println(result.Output)
		attrs := []any{"run_id", result.RunID, "tool_calls", len(result.Invocations)}
		if usage := result.Usage().Usage; usage != nil {
			attrs = append(attrs, "input_tokens", usage.InputTokens, "output_tokens", usage.OutputTokens)
		}
		logger.Info("run finished", attrs...)
	}
}

func buildCatalog(cfg *config.Config, session *components.Session, logger *slog.Logger) (*tools.Catalog, error) {
	search := websearch.New()
	catalog := tools.NewCatalog()
	register := func(fn func() error, t tools.ITool) error {
		// hooks must be set before registration, the catalog captures
		// them at register time
		instrument(t, logger)
		return fn()
	}
	weatherTool := weather.New(cfg.Keys.Weather)
	currencyTool := currency.New(cfg.Keys.Currency)
	holidayTool := holiday.New(cfg.Keys.Holiday)
	budgetTool := budget.New(search)
	safetyTool := safety.New(search)
	placesTool := places.New(cfg.Keys.Foursquare, places.WithSession(session))
	photosTool := photos.New(cfg.Keys.Unsplash)
	datetimeTool := datetime.New()
	fullPlanTool := tripplan.NewFull()
	quickPlanTool := tripplan.NewQuick()
	registrations := []struct {
		tool tools.ITool
		fn   func() error
	}{
		{datetimeTool, func() error { return tools.Register[datetime.Input, datetime.Output](catalog, datetimeTool) }},
		{search, func() error { return tools.Register[websearch.Input, websearch.Output](catalog, search) }},
		{weatherTool, func() error { return tools.Register[weather.Input, weather.Output](catalog, weatherTool) }},
		{currencyTool, func() error { return tools.Register[currency.Input, currency.Output](catalog, currencyTool) }},
		{holidayTool, func() error { return tools.Register[holiday.Input, holiday.Output](catalog, holidayTool) }},
		{budgetTool, func() error { return tools.Register[budget.Input, budget.Output](catalog, budgetTool) }},
		{safetyTool, func() error { return tools.Register[safety.Input, safety.Output](catalog, safetyTool) }},
		{placesTool, func() error { return tools.Register[places.Input, places.Output](catalog, placesTool) }},
		{photosTool, func() error { return tools.Register[photos.Input, photos.Output](catalog, photosTool) }},
		{fullPlanTool, func() error { return tools.Register[tripplan.FullInput, tripplan.Output](catalog, fullPlanTool) }},
		{quickPlanTool, func() error { return tools.Register[tripplan.QuickInput, tripplan.Output](catalog, quickPlanTool) }},
	}
	for _, reg := range registrations {
		if err := register(reg.fn, reg.tool); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func instrument(t tools.ITool, logger *slog.Logger) {
	t.SetStartHook(func(ctx context.Context, name string, input any) {
		logger.Info("tool start", "tool", name)
	})
	t.SetEndHook(func(ctx context.Context, name string, input, output any) {
		logger.Info("tool done", "tool", name)
	})
	t.SetErrorHook(func(ctx context.Context, name string, input any, err error) {
		logger.Warn("tool failed", "tool", name, "error", err)
	})
}

func buildPlanner(ctx context.Context, cfg *config.Config) (agents.Planner, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.LLM.APIKey))
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return agents.NewGeminiPlanner(client, cfg.LLM.Model), nil
	case config.ProviderOpenAI:
		opts := []agents.OpenAIPlannerOption{}
		if cfg.LLM.Temperature > 0 {
			opts = append(opts, agents.WithOpenAITemperature(cfg.LLM.Temperature))
		}
		if cfg.LLM.MaxTokens > 0 {
			opts = append(opts, agents.WithOpenAIMaxTokens(cfg.LLM.MaxTokens))
		}
		return agents.NewOpenAIPlanner(openai.NewClient(cfg.LLM.APIKey), cfg.LLM.Model, opts...), nil
	case config.ProviderAnthropic:
		clt := anthropic.NewClient(cfg.LLM.APIKey)
		inst := instructor.FromAnthropic(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation())
		return newInstructorPlanner(inst, cfg), nil
	case config.ProviderCohere:
		clt := cohereClient.NewClient(cohereOption.WithToken(cfg.LLM.APIKey))
		inst := instructor.FromCohere(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3), instructor.WithValidation())
		return newInstructorPlanner(inst, cfg), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
}

func newInstructorPlanner(inst instructor.Instructor, cfg *config.Config) agents.Planner {
	opts := []agents.InstructorPlannerOption{}
	if cfg.LLM.Temperature > 0 {
		opts = append(opts, agents.WithInstructorTemperature(cfg.LLM.Temperature))
	}
	if cfg.LLM.MaxTokens > 0 {
		opts = append(opts, agents.WithInstructorMaxTokens(cfg.LLM.MaxTokens))
	}
	return agents.NewInstructorPlanner(inst, cfg.LLM.Model, opts...)
}

func systemPrompt() *cot.Generator {
	return cot.New(
		cot.WithBackground([]string{
			"You are ThinkMate, a smart travel assistant for trips in India.",
			"You answer questions about weather, holidays, currency, safety, budgets, places and destination photos.",
		}),
		cot.WithSteps([]string{
			"Decide which tools can answer the question and call them with precise arguments.",
			"When a tool returns a work plan, its steps are executed for you; read their results before answering.",
			"Read every tool result, including error values, before composing the answer.",
		}),
		cot.WithOutputInstructs([]string{
			"Summarize tool results clearly and mention when a lookup failed.",
			"Never invent weather, prices or holidays that no tool reported.",
		}),
	)
}
