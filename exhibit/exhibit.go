// Package exhibit decorates content objects with presentation behavior.
//
// A Selector walks an ordered list of variants and wraps an object in every
// variant that applies to it. Each variant sees the value produced by the
// variants before it, so a wrapped object can make later variants skip it.
// Objects no variant applies to come back unchanged.
package exhibit

import "reflect"

// Locals are the values handed to a partial.
type Locals map[string]any

// Context is the rendering collaborator an exhibit draws itself with.
type Context interface {
	Render(partial string, locals Locals) (string, error)
}

// Variant pairs an applicability test with a wrapping constructor.
type Variant interface {
	ApplicableTo(obj any) bool
	Wrap(obj any, ctx Context) any
}

// Rule is a Variant built from two functions.
type Rule struct {
	Applies func(obj any) bool
	Build   func(obj any, ctx Context) any
}

// ApplicableTo calls r.Applies.
func (r Rule) ApplicableTo(obj any) bool { return r.Applies(obj) }

// Wrap calls r.Build.
func (r Rule) Wrap(obj any, ctx Context) any { return r.Build(obj, ctx) }

// Selector holds the ordered variants. The zero value has none and returns
// every object unchanged.
type Selector struct {
	variants []Variant
}

// NewSelector creates a Selector evaluating variants in the given order.
func NewSelector(variants ...Variant) *Selector {
	return &Selector{variants: append([]Variant(nil), variants...)}
}

// Default returns the built-in picture and text variants, in that order.
func Default() *Selector {
	return NewSelector(PictureVariant{}, TextVariant{})
}

// With returns a copy of s with variants appended after the existing ones.
func (s *Selector) With(variants ...Variant) *Selector {
	all := make([]Variant, 0, len(s.variants)+len(variants))
	all = append(all, s.variants...)
	all = append(all, variants...)
	return &Selector{variants: all}
}

// Exhibit folds the variants over obj.
func (s *Selector) Exhibit(obj any, ctx Context) any {
	for _, v := range s.variants {
		if v.ApplicableTo(obj) {
			obj = v.Wrap(obj, ctx)
		}
	}
	return obj
}

// All exhibits each element of objs.
func All[T any](s *Selector, objs []T, ctx Context) []any {
	out := make([]any, len(objs))
	for i, obj := range objs {
		out[i] = s.Exhibit(obj, ctx)
	}
	return out
}

// Wrapper is implemented by every exhibit.
type Wrapper interface {
	Model() any
}

// Base carries the wrapped object and the rendering context. Concrete
// exhibits embed it.
type Base struct {
	model any
	ctx   Context
}

// NewBase wraps model for rendering with ctx.
func NewBase(model any, ctx Context) Base {
	return Base{model: model, ctx: ctx}
}

// Model returns the wrapped object unchanged.
func (b Base) Model() any { return b.model }

// ModelType returns the type of the innermost wrapped object.
func (b Base) ModelType() reflect.Type { return reflect.TypeOf(Unwrap(b.model)) }

// Context returns the rendering context.
func (b Base) Context() Context { return b.ctx }

// Unwrap peels every exhibit layer off obj.
func Unwrap(obj any) any {
	for {
		w, ok := obj.(Wrapper)
		if !ok {
			return obj
		}
		obj = w.Model()
	}
}

// As finds the first value of type T in obj or the objects it wraps,
// outermost first.
func As[T any](obj any) (T, bool) {
	for {
		if t, ok := obj.(T); ok {
			return t, true
		}
		w, ok := obj.(Wrapper)
		if !ok {
			var zero T
			return zero, false
		}
		obj = w.Model()
	}
}
