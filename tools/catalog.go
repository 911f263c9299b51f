package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/thinkmate-ai/thinkmate/schema"
)

const defaultCallTimeout = 15 * time.Second

type entry struct {
	desc Descriptor
	hk   hookSet
	run  func(context.Context, json.RawMessage) (schema.Schema, error)
}

// Catalog is the immutable set of tools bound to one orchestration session.
// Tool names are unique within a catalog; registration happens at process
// start and the catalog is read-only afterwards.
type Catalog struct {
	entries     map[string]*entry
	names       []string
	validate    *validator.Validate
	callTimeout time.Duration
}

type CatalogOption func(c *Catalog)

// WithCallTimeout bounds every tool call. Zero disables the bound.
func WithCallTimeout(d time.Duration) CatalogOption {
	return func(c *Catalog) {
		c.callTimeout = d
	}
}

// NewCatalog returns an empty catalog with a default per-call timeout.
func NewCatalog(opts ...CatalogOption) *Catalog {
	ret := &Catalog{
		entries:     make(map[string]*entry),
		validate:    validator.New(),
		callTimeout: defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Register adds a tool under its title. The input struct's jsonschema tags
// become the planner-facing parameter schema, its validate tags guard
// dispatch. Duplicate names are rejected.
func Register[I schema.Schema, O schema.Schema](c *Catalog, t Tool[I, O]) error {
	name := t.Title()
	if name == "" {
		return errors.New("tool has no title")
	}
	if _, found := c.entries[name]; found {
		return fmt.Errorf("tool %q already registered", name)
	}
	ent := &entry{
		desc: Descriptor{
			Name:        name,
			Description: t.Description(),
			Parameters:  reflectParameters(new(I)),
		},
		hk: t.hooks(),
		run: func(ctx context.Context, args json.RawMessage) (schema.Schema, error) {
			input := new(I)
			if len(args) > 0 {
				if err := json.Unmarshal(args, input); err != nil {
					return nil, fmt.Errorf("invalid arguments: %w", err)
				}
			}
			if err := c.validate.StructCtx(ctx, input); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			output := new(O)
			if err := t.Run(ctx, input, output); err != nil {
				return nil, err
			}
			// a pointer to a type parameter has no method set
			return any(output).(schema.Schema), nil
		},
	}
	c.entries[name] = ent
	c.names = append(c.names, name)
	return nil
}

// Descriptors returns the tool descriptors in registration order.
func (c *Catalog) Descriptors() []Descriptor {
	ret := make([]Descriptor, 0, len(c.names))
	for _, name := range c.names {
		ret = append(ret, c.entries[name].desc)
	}
	return ret
}

// Describe returns the descriptor of a single tool.
func (c *Catalog) Describe(name string) (Descriptor, bool) {
	ent, found := c.entries[name]
	if !found {
		return Descriptor{}, false
	}
	return ent.desc, true
}

// Len returns the number of registered tools.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Execute dispatches one tool call. Every failure mode (unknown tool,
// malformed or invalid arguments, transport fault, timeout) comes back as
// an ErrorOutput value so the planning model can narrate it; Execute never
// panics the run.
func (c *Catalog) Execute(ctx context.Context, name string, args json.RawMessage) schema.Schema {
	ent, found := c.entries[name]
	if !found {
		return NewError("unknown tool %q", name)
	}
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}
	if fn := ent.hk.start; fn != nil {
		fn(ctx, name, args)
	}
	out, err := ent.run(ctx, args)
	if err != nil {
		if fn := ent.hk.fail; fn != nil {
			fn(ctx, name, args, err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return NewError("%s timed out: %v", name, err)
		}
		return NewError("%s failed: %v", name, err)
	}
	if fn := ent.hk.end; fn != nil {
		fn(ctx, name, args, out)
	}
	return out
}
