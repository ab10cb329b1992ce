package promesso

import (
	"fmt"
	"net/http"

	"github.com/augustoroman/promesso/chain"
)

// HandlerFunc is the signature of a plain step. The result, if the handler is
// the last step of its chain, becomes the response body; a returned error or
// a panic is handed to the error responder.
type HandlerFunc func(req *Request) (any, error)

// Observer is notified of the outcome of every response concluded by an
// adapted handler.
type Observer interface {
	Observe(req *Request, kind Kind, status int)
}

// ErrorCodeObserver may additionally be implemented by an Observer to be
// told the code of every DomainError answered.
type ErrorCodeObserver interface {
	ObserveDomainError(code string)
}

// Adapt converts h into a chain middleware. If usesNext is set, a successful
// h advances the chain instead of responding.
//
// h is called exactly once per invocation. Errors never reach the chain's
// error entries: they are answered directly by the error responder.
func (c *Compiler) Adapt(h HandlerFunc, usesNext bool) chain.Middleware {
	name := chain.NameOf(h)
	return func(w http.ResponseWriter, r *http.Request, next chain.Next) {
		req := RequestOf(r)
		rw := WrapResponse(w)
		val, caught := call(h, req, name)
		if caught != nil {
			c.respond(rw, req, caught)
			return
		}
		c.interpret(rw, req, next, usesNext, val)
	}
}

// call runs h and converts a panic into a chain.PanicError. The returned
// caught value is either nil, the handler's error, or the PanicError.
func call(h HandlerFunc, req *Request, name string) (val any, caught any) {
	defer func() {
		if x := recover(); x != nil {
			if x == http.ErrAbortHandler {
				panic(x)
			}
			val, caught = nil, chain.NewPanicError(x, name)
		}
	}()
	var err error
	val, err = h(req)
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (c *Compiler) observe(req *Request, kind Kind, status int) {
	if c.observer != nil {
		c.observer.Observe(req, kind, status)
	}
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
