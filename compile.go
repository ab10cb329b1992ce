package promesso

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/augustoroman/promesso/chain"
)

// Errors reported by Compile. They are wrapped with the position of the
// offending element, so test them with errors.Is.
var (
	ErrNotCallable        = errors.New("handler must be a function or an array of functions")
	ErrMultipleValidators = errors.New("only one validator per chain")
	ErrNoHandlers         = errors.New("step has neither a handler nor a raw middleware")
	ErrAmbiguousStep      = errors.New("step has both a handler and a raw middleware")
)

// Compiler turns handlers into chains. The zero value is not usable, create
// one with New. A Compiler is safe for concurrent use and may be shared by
// any number of chains.
type Compiler struct {
	logs     *Loggers
	observer Observer
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLoggers sets the log sinks used by the chains of this compiler. By
// default the process-wide registry configured with Logger is used.
func WithLoggers(l *Loggers) Option { return func(c *Compiler) { c.logs = l } }

// WithObserver registers an observer of every response concluded by an
// adapted handler, see the metrics package.
func WithObserver(o Observer) Option { return func(c *Compiler) { c.observer = o } }

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) loggers() *Loggers {
	if c.logs != nil {
		return c.logs
	}
	return defaultLoggers
}

// Loggers returns the log sinks this compiler's chains use.
func (c *Compiler) Loggers() *Loggers { return c.loggers() }

var defaultCompiler = New()

// Compile compiles handlers with a compiler that uses the process-wide
// loggers.
func Compile(handlers ...any) (chain.Chain, error) { return defaultCompiler.Compile(handlers...) }

// MustCompile is like Compile but panics on error. It is intended for use at
// route registration.
func MustCompile(handlers ...any) chain.Chain { return defaultCompiler.MustCompile(handlers...) }

// Compile converts handlers into an ordered chain. Each handler may be:
//
//   - a HandlerFunc or func(*Request) (any, error), a plain step
//   - a Step, possibly carrying a Schema, Before handlers, or a Raw middleware
//   - a chain.Middleware or func(http.ResponseWriter, *http.Request, chain.Next),
//     inserted unchanged
//   - a chain.ErrorMiddleware or chain.Entry, inserted unchanged
//   - an http.Handler or func(http.ResponseWriter, *http.Request), inserted
//     as a native middleware that concludes the response
//   - a []any, []HandlerFunc or []Step, flattened in place
//
// Every plain step but the last advances the chain on success; the last one
// responds with its result, even if raw or error middleware follows it. Declaration order is preserved exactly.
//
// Compile fails if an element has any other type, if a step is empty or
// ambiguous, or if more than one step carries a Schema.
func (c *Compiler) Compile(handlers ...any) (chain.Chain, error) {
	elems, err := flatten(nil, handlers)
	if err != nil {
		return nil, err
	}

	// Only the last adapted step responds; raw and error entries after it
	// do not change that.
	last := -1
	for i, elem := range elems {
		if step, isStep := elem.(Step); isStep && step.Handler != nil && step.Raw == nil {
			last = i
		}
	}

	var out chain.Chain
	validators := 0
	for i, elem := range elems {
		if e, isEntry := elem.(chain.Entry); isEntry {
			out = append(out, e)
			continue
		}
		step := elem.(Step)
		switch {
		case step.Handler == nil && step.Raw == nil:
			return nil, fmt.Errorf("%s handler of Compile(...): %w", chain.Ordinal(i+1), ErrNoHandlers)
		case step.Handler != nil && step.Raw != nil:
			return nil, fmt.Errorf("%s handler of Compile(...): %w", chain.Ordinal(i+1), ErrAmbiguousStep)
		}

		for _, before := range step.Before {
			if before == nil {
				return nil, fmt.Errorf("%s handler of Compile(...): nil before handler: %w",
					chain.Ordinal(i+1), ErrNotCallable)
			}
			out = append(out, chain.Entry{Name: chain.NameOf(before), Serve: c.Adapt(before, true)})
		}

		if step.Schema != nil {
			validators++
			if validators > 1 {
				return nil, fmt.Errorf("%s handler of Compile(...): %w", chain.Ordinal(i+1), ErrMultipleValidators)
			}
			out = append(out,
				chain.Entry{Name: fmt.Sprintf("validate(%T)", step.Schema), Serve: validateWith(step.Schema)},
				chain.Entry{Name: "TranslateValidationError", OnErr: c.translateValidationError},
			)
		}

		if step.Raw != nil {
			out = append(out, chain.Entry{Name: step.name(), Serve: step.Raw})
			continue
		}
		usesNext := i != last
		out = append(out, chain.Entry{Name: step.name(), Serve: c.Adapt(step.Handler, usesNext)})
	}
	return out, nil
}

// MustCompile is like Compile but panics on error.
func (c *Compiler) MustCompile(handlers ...any) chain.Chain {
	ch, err := c.Compile(handlers...)
	if err != nil {
		panic(err)
	}
	return ch
}

// flatten normalizes handlers into a list of Step and chain.Entry values.
func flatten(out []any, handlers []any) ([]any, error) {
	for _, h := range handlers {
		var err error
		switch v := h.(type) {
		case []any:
			out, err = flatten(out, v)
		case []HandlerFunc:
			for _, fn := range v {
				out, err = flatten(out, []any{fn})
				if err != nil {
					break
				}
			}
		case []Step:
			for _, s := range v {
				out = append(out, s)
			}
		default:
			var elem any
			elem, err = normalize(h)
			if err != nil {
				err = fmt.Errorf("%s handler of Compile(...): %w (got %T)", chain.Ordinal(len(out)+1), err, h)
			}
			out = append(out, elem)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func normalize(h any) (any, error) {
	switch v := h.(type) {
	case Step:
		return v, nil
	case *Step:
		if v != nil {
			return *v, nil
		}
	case HandlerFunc:
		if v != nil {
			return Step{Handler: v}, nil
		}
	case func(*Request) (any, error):
		if v != nil {
			return Step{Handler: v}, nil
		}
	case chain.Middleware:
		if v != nil {
			return Step{Raw: v}, nil
		}
	case func(http.ResponseWriter, *http.Request, chain.Next):
		if v != nil {
			return Step{Raw: v}, nil
		}
	case chain.ErrorMiddleware:
		if v != nil {
			return chain.Entry{Name: chain.NameOf(v), OnErr: v}, nil
		}
	case func(error, http.ResponseWriter, *http.Request, chain.Next):
		if v != nil {
			return chain.Entry{Name: chain.NameOf(v), OnErr: v}, nil
		}
	case chain.Entry:
		if (v.Serve == nil) != (v.OnErr == nil) {
			return v, nil
		}
	case func(http.ResponseWriter, *http.Request):
		if v != nil {
			return Step{Raw: terminal(http.HandlerFunc(v)), label: chain.NameOf(v)}, nil
		}
	case http.Handler:
		if v != nil {
			return Step{Raw: terminal(v), label: fmt.Sprintf("%T", v)}, nil
		}
	}
	return nil, ErrNotCallable
}

// terminal wraps a native handler. It concludes the response and never
// advances the chain.
func terminal(h http.Handler) chain.Middleware {
	return func(w http.ResponseWriter, r *http.Request, next chain.Next) {
		h.ServeHTTP(w, r)
	}
}
