package promesso

import (
	"errors"
	"net/http"

	"github.com/augustoroman/promesso/chain"
)

// Endpoint is a compiled chain ready to serve requests. It is what routers
// and the router adapter packages register.
type Endpoint struct {
	c     *Compiler
	chain chain.Chain
}

// Endpoint compiles handlers into an Endpoint.
func (c *Compiler) Endpoint(handlers ...any) (*Endpoint, error) {
	ch, err := c.Compile(handlers...)
	if err != nil {
		return nil, err
	}
	return &Endpoint{c, ch}, nil
}

// MustEndpoint is like Endpoint but panics on error.
func (c *Compiler) MustEndpoint(handlers ...any) *Endpoint {
	e, err := c.Endpoint(handlers...)
	if err != nil {
		panic(err)
	}
	return e
}

// Handle compiles handlers with the default compiler into an Endpoint,
// panicking on error:
//
//	http.Handle("/hello", promesso.Handle(sayHello))
func Handle(handlers ...any) *Endpoint { return defaultCompiler.MustEndpoint(handlers...) }

// Chain returns the compiled entries.
func (e *Endpoint) Chain() chain.Chain { return e.chain }

func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) { e.Serve(w, r, nil) }

// Serve runs the chain with the given path parameters. If the chain falls
// through without responding the client gets a 404; an error that no entry
// handled is logged to the error sink and answered with a 500.
func (e *Endpoint) Serve(w http.ResponseWriter, r *http.Request, p Params) {
	rw := WrapResponse(w)
	req, ok := r.Context().Value(requestKey{}).(*Request)
	if ok {
		for k, v := range p {
			req.Params[k] = v
		}
	} else {
		req, r = NewRequest(r, p)
	}

	err := e.chain.Run(rw, r)
	switch {
	case err == nil:
	case errors.Is(err, chain.ErrFellThrough):
		if !rw.Written() {
			rw.SendStatus(http.StatusNotFound)
		}
	default:
		e.c.loggers().Error("unhandled error",
			"err", err,
			"method", r.Method,
			"uri", r.RequestURI,
			"request_id", req.ID,
		)
		if !rw.Written() {
			rw.SendStatus(http.StatusInternalServerError)
		}
	}
}
