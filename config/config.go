package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in the llm section.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderCohere    = "cohere"
)

const (
	defaultProvider = ProviderGemini
	defaultModel    = "gemini-2.5-flash"
)

// LLM selects and authenticates the planning model.
type LLM struct {
	// Provider is one of gemini, openai, anthropic, cohere.
	Provider string `yaml:"provider"`
	// Model is the provider model name.
	Model string `yaml:"model"`
	// APIKey authenticates against the provider.
	APIKey string `yaml:"api_key"`
	// Temperature for response generation, typically ranging from 0 to 1.
	Temperature float32 `yaml:"temperature"`
	// MaxTokens caps the response length.
	MaxTokens int `yaml:"max_tokens"`
}

// Keys holds the tool provider credentials.
type Keys struct {
	Weather    string `yaml:"weather"`
	Currency   string `yaml:"currency"`
	Holiday    string `yaml:"holiday"`
	Foursquare string `yaml:"foursquare"`
	Unsplash   string `yaml:"unsplash"`
}

// Config is the full application configuration. Values load from YAML and
// environment variables override the file.
type Config struct {
	LLM  LLM  `yaml:"llm"`
	Keys Keys `yaml:"keys"`
	// MaxSteps bounds planner round-trips per run. Zero keeps the default.
	MaxSteps int `yaml:"max_steps"`
	// RunTimeout bounds one run end to end. Zero keeps the default.
	RunTimeout time.Duration `yaml:"run_timeout"`
	// MemoryLimit trims conversation history to this many messages. Zero
	// keeps it unbounded.
	MemoryLimit int `yaml:"memory_limit"`
}

// Load reads the YAML file at path, then applies environment overrides and
// defaults. A missing file is fine when the environment carries the keys;
// an unreadable or malformed file is not.
func Load(path string) (*Config, error) {
	cfg := new(Config)
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(bs, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrideEnv(&c.Keys.Weather, "WEATHER_API_KEY")
	overrideEnv(&c.Keys.Currency, "CURRENCY_API_KEY")
	overrideEnv(&c.Keys.Holiday, "HOLIDAY_API_KEY")
	overrideEnv(&c.Keys.Foursquare, "FOURSQUARE_SERVICE_KEY")
	overrideEnv(&c.Keys.Unsplash, "UNSPLASH_ACCESS_KEY")
	overrideEnv(&c.LLM.Provider, "LLM_PROVIDER")
	overrideEnv(&c.LLM.Model, "LLM_MODEL")
	switch c.LLM.Provider {
	case ProviderOpenAI:
		overrideEnv(&c.LLM.APIKey, "OPENAI_API_KEY")
	case ProviderAnthropic:
		overrideEnv(&c.LLM.APIKey, "ANTHROPIC_API_KEY")
	case ProviderCohere:
		overrideEnv(&c.LLM.APIKey, "COHERE_API_KEY")
	default:
		overrideEnv(&c.LLM.APIKey, "GOOGLE_API_KEY")
	}
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultProvider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
}

// Validate reports every missing credential at once so a misconfigured
// deployment fails fast with the full list.
func (c *Config) Validate() error {
	var errs []error
	if c.LLM.APIKey == "" {
		errs = append(errs, fmt.Errorf("missing %s api key", c.LLM.Provider))
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderCohere:
	default:
		errs = append(errs, fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
	}
	required := []struct {
		name  string
		value string
	}{
		{"keys.weather (WEATHER_API_KEY)", c.Keys.Weather},
		{"keys.currency (CURRENCY_API_KEY)", c.Keys.Currency},
		{"keys.holiday (HOLIDAY_API_KEY)", c.Keys.Holiday},
		{"keys.foursquare (FOURSQUARE_SERVICE_KEY)", c.Keys.Foursquare},
		{"keys.unsplash (UNSPLASH_ACCESS_KEY)", c.Keys.Unsplash},
	}
	for _, item := range required {
		if item.value == "" {
			errs = append(errs, fmt.Errorf("missing %s", item.name))
		}
	}
	return errors.Join(errs...)
}

func overrideEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
