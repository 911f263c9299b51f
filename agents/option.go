package agents

import (
	"time"

	"github.com/thinkmate-ai/thinkmate/components"
	"github.com/thinkmate-ai/thinkmate/components/systemprompt"
)

type Option func(a *Config)

func WithSession(session *components.Session) Option {
	return func(c *Config) {
		c.session = session
	}
}

func WithSystemPromptGenerator(g systemprompt.Generator) Option {
	return func(c *Config) {
		c.systemPromptGenerator = g
	}
}

// WithMaxSteps bounds planner round-trips per run.
func WithMaxSteps(maxSteps int) Option {
	return func(c *Config) {
		c.maxSteps = maxSteps
	}
}

// WithRunTimeout bounds one whole run including tool calls.
func WithRunTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.runTimeout = d
	}
}

func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}
