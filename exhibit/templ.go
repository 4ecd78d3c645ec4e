package exhibit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// ErrUnknownPartial is returned when a partial has no registered component.
var ErrUnknownPartial = errors.New("exhibit: unknown partial")

// PartialFunc builds the component for a partial from its locals.
type PartialFunc func(locals Locals) templ.Component

// Partials maps partial names to components.
type Partials map[string]PartialFunc

// TemplContext is a Context rendering templ components. Create one per
// request so rendering runs under the request's context.
type TemplContext struct {
	ctx      context.Context
	partials Partials
}

// NewTemplContext returns a Context rendering partials under ctx.
func NewTemplContext(ctx context.Context, partials Partials) *TemplContext {
	return &TemplContext{ctx: ctx, partials: partials}
}

// Render renders the named partial to a string.
func (c *TemplContext) Render(partial string, locals Locals) (string, error) {
	fn, ok := c.partials[partial]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPartial, partial)
	}
	var sb strings.Builder
	if err := fn(locals).Render(c.ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
