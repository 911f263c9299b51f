package tools

import "context"

type hookSet struct {
	start func(context.Context, string, any)
	end   func(context.Context, string, any, any)
	fail  func(context.Context, string, any, error)
}

// Config class for tools within the catalog
type Config struct {
	// title the default title of the tool
	title string
	// description the default description of the tool
	description string
	// hk observation hooks invoked by the catalog around dispatch
	hk hookSet
}

func (c *Config) SetTitle(v string) {
	c.title = v
}

func (c Config) Title() string {
	return c.title
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}

func (c *Config) SetStartHook(fn func(context.Context, string, any)) {
	c.hk.start = fn
}

func (c *Config) SetEndHook(fn func(context.Context, string, any, any)) {
	c.hk.end = fn
}

func (c *Config) SetErrorHook(fn func(context.Context, string, any, error)) {
	c.hk.fail = fn
}

func (c Config) hooks() hookSet {
	return c.hk
}
