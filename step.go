package promesso

import (
	"github.com/augustoroman/promesso/chain"
)

// Step describes one element of a chain together with its metadata. A bare
// HandlerFunc passed to Compile is equivalent to Step{Handler: fn}.
//
// Exactly one of Handler and Raw must be set.
type Step struct {
	// Handler is adapted: its result becomes the response if it is the last
	// step, otherwise it just advances the chain.
	Handler HandlerFunc
	// Raw is inserted into the chain unchanged. Use it for native middleware
	// that must call next itself, such as compression or authentication
	// libraries.
	Raw chain.Middleware
	// Schema, if set, validates the request before this step runs. At most
	// one step of a chain may carry a schema.
	Schema Schema
	// Before handlers run ahead of the validation and of the step itself.
	// They always advance the chain on success.
	Before []HandlerFunc

	label string
}

// Raw marks a native middleware to be passed through uncompiled.
func Raw(m chain.Middleware) Step { return Step{Raw: m} }

// Validate attaches a validation schema to h.
func Validate(schema Schema, h HandlerFunc) Step {
	return Step{Handler: h, Schema: schema}
}

// Before runs the before handlers ahead of h.
func Before(h HandlerFunc, before ...HandlerFunc) Step {
	return Step{Handler: h, Before: before}
}

// WithSchema returns a copy of the step validated by schema.
func (s Step) WithSchema(schema Schema) Step {
	s.Schema = schema
	return s
}

// WithBefore returns a copy of the step with additional before handlers.
func (s Step) WithBefore(before ...HandlerFunc) Step {
	s.Before = append(append([]HandlerFunc(nil), s.Before...), before...)
	return s
}

func (s Step) name() string {
	if s.label != "" {
		return s.label
	}
	if s.Raw != nil {
		return chain.NameOf(s.Raw)
	}
	return chain.NameOf(s.Handler)
}
