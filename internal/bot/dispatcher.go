package bot

import (
	"context"

	"github.com/vthunder/wabot/internal/command"
	"github.com/vthunder/wabot/internal/effectors"
)

// Transport identifies where a command came from
type Transport string

const (
	TransportPrivate Transport = "private"
	TransportConsole Transport = "console"
)

// Handler runs a command whose arguments already passed validation
type Handler func(ctx context.Context, args command.Args) effectors.Result

type entry struct {
	spec command.Spec
	run  Handler
}

// Catalogue is the command vocabulary of one transport
type Catalogue struct {
	entries  map[string]entry
	order    []string
	fallback *entry
	phrases  *phrasebook
}

func newCatalogue(p *phrasebook) *Catalogue {
	return &Catalogue{
		entries: make(map[string]entry),
		phrases: p,
	}
}

// Add registers a command
func (c *Catalogue) Add(spec command.Spec, run Handler) {
	if _, exists := c.entries[spec.Name]; !exists {
		c.order = append(c.order, spec.Name)
	}
	c.entries[spec.Name] = entry{spec: spec, run: run}
}

// SetFallback registers a positional form used when the first pipe-separated
// token is not a command name; every token, the first included, is bound.
func (c *Catalogue) SetFallback(spec command.Spec, run Handler) {
	c.fallback = &entry{spec: spec, run: run}
}

// Specs returns the registered specs in registration order
func (c *Catalogue) Specs() []command.Spec {
	specs := make([]command.Spec, 0, len(c.order))
	for _, name := range c.order {
		specs = append(specs, c.entries[name].spec)
	}
	return specs
}

// Has reports whether name is in the vocabulary
func (c *Catalogue) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Execute validates a command against its spec and runs it
func (c *Catalogue) Execute(ctx context.Context, cmd command.Command) effectors.Result {
	e, ok := c.entries[cmd.Name]
	if !ok {
		if c.fallback != nil && cmd.Sep == command.SepPipe {
			if args, err := c.fallback.spec.BindFields(cmd); err == nil {
				return c.fallback.run(ctx, args)
			}
		}
		return c.unknown(cmd)
	}

	args, err := e.spec.Bind(cmd)
	if err != nil {
		return effectors.Fail(effectors.NewError(effectors.KindUsage, e.spec.Name, err), "%s", c.phrases.usage(e.spec))
	}
	return e.run(ctx, args)
}

func (c *Catalogue) unknown(cmd command.Command) effectors.Result {
	return effectors.Fail(effectors.NewError(effectors.KindUnknown, cmd.Name, nil), "%s", c.phrases.unknown)
}
