// Package chain is the ordered middleware sequence that promesso compiles
// handlers into, along with a small driver that runs such a sequence for a
// single request.
//
// An entry is either a normal middleware, which receives the request and a
// continuation, or an error middleware, which additionally receives the error
// that an earlier entry passed to its continuation. Calling next(nil) moves to
// the following normal entry; calling next(err) skips ahead to the following
// error entry.
package chain

import (
	"errors"
	"net/http"
)

// Next is the continuation handed to every entry. Passing nil advances to the
// next normal entry, passing an error advances to the next error entry.
type Next func(err error)

// Middleware is the three-argument callback form of a chain entry.
type Middleware func(w http.ResponseWriter, r *http.Request, next Next)

// ErrorMiddleware handles an error forwarded by an earlier entry. It may
// respond, or forward the same or a different error with next.
type ErrorMiddleware func(err error, w http.ResponseWriter, r *http.Request, next Next)

// Entry is a single step of a compiled chain. Exactly one of Serve and OnErr
// is set.
type Entry struct {
	// Name identifies the entry in panics and logs, typically the
	// fully-qualified name of the wrapped function.
	Name  string
	Serve Middleware
	OnErr ErrorMiddleware
}

// IsErrorHandler reports whether the entry only runs for forwarded errors.
func (e Entry) IsErrorHandler() bool { return e.OnErr != nil }

// Chain is an ordered sequence of entries. Order is significant and is
// preserved exactly as compiled.
type Chain []Entry

// ErrFellThrough is returned by Run when the last entry advanced the chain
// without an error, so no entry concluded the response.
var ErrFellThrough = errors.New("chain: no entry concluded the response")

// Run executes the chain for one request. It returns nil if some entry
// concluded the response, ErrFellThrough if every normal entry advanced, or
// the error that was forwarded past the last error entry.
//
// A panic in an entry that has not yet called its continuation is recovered
// and forwarded as a PanicError. http.ErrAbortHandler is re-raised.
func (c Chain) Run(w http.ResponseWriter, r *http.Request) error {
	var unhandled error
	var run func(i int, err error)
	run = func(i int, err error) {
		for ; i < len(c); i++ {
			e := c[i]
			if err == nil && e.Serve != nil {
				c.invoke(i, err, w, r, run)
				return
			}
			if err != nil && e.OnErr != nil {
				c.invoke(i, err, w, r, run)
				return
			}
		}
		if err == nil {
			err = ErrFellThrough
		}
		unhandled = err
	}
	run(0, nil)
	return unhandled
}

func (c Chain) invoke(i int, err error, w http.ResponseWriter, r *http.Request, run func(int, error)) {
	called := false
	next := func(err error) {
		if called {
			return
		}
		called = true
		run(i+1, err)
	}
	defer func() {
		x := recover()
		if x == nil {
			return
		}
		if x == http.ErrAbortHandler {
			panic(x)
		}
		perr, isPanicErr := x.(PanicError)
		if !isPanicErr {
			perr = NewPanicError(x, c[i].Name)
		}
		if called {
			// The rest of the chain already ran; there is nobody left to
			// hand the panic to.
			panic(perr)
		}
		next(perr)
	}()
	e := c[i]
	if err == nil {
		e.Serve(w, r, next)
	} else {
		e.OnErr(err, w, r, next)
	}
}

// ServeHTTP runs the chain, responding 404 when it falls through and 500 when
// an error is left unhandled. Callers that want logging or custom fallbacks
// should call Run directly.
func (c Chain) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch err := c.Run(w, r); {
	case err == nil:
	case errors.Is(err, ErrFellThrough):
		http.NotFound(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Names lists the entry names in order, mostly for debugging and tests.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, e := range c {
		names[i] = e.Name
	}
	return names
}
