// Package httprouter_promesso is a httprouter-adapter for promesso that
// provides the httprouter path parameters to the handlers.
package httprouter_promesso

import (
	"net/http"

	"github.com/augustoroman/promesso"
	"github.com/julienschmidt/httprouter"
)

// H converts an endpoint into a httprouter handle. For example:
//
//	c := promesso.New()
//	m := httprouter.New()
//	m.GET("/user/:id", httprouter_promesso.H(c.MustEndpoint(getUser)))
//
//	func getUser(req *promesso.Request) (any, error) {
//	    return udb.Lookup(req.Param("id"))
//	}
func H(e *promesso.Endpoint) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		e.Serve(w, r, Params(ps))
	}
}

// Handle compiles handlers with the default compiler into a httprouter
// handle, panicking on error.
func Handle(handlers ...any) httprouter.Handle {
	return H(promesso.Handle(handlers...))
}

// Params converts httprouter params.
func Params(ps httprouter.Params) promesso.Params {
	p := make(promesso.Params, len(ps))
	for _, param := range ps {
		p[param.Key] = param.Value
	}
	return p
}
