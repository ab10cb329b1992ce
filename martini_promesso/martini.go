// Package martini_promesso is a martini-adapter for promesso that provides
// the martini request parameters to the handlers.
package martini_promesso

import (
	"net/http"

	"github.com/augustoroman/promesso"
	"github.com/go-martini/martini"
)

// H converts an endpoint into a martini handler:
//
//	m := martini.Classic()
//	m.Get("/say/:greeting/:name", martini_promesso.H(c.MustEndpoint(greet)))
func H(e *promesso.Endpoint) func(http.ResponseWriter, *http.Request, martini.Params) {
	return func(w http.ResponseWriter, r *http.Request, p martini.Params) {
		e.Serve(w, r, promesso.Params(p))
	}
}

// Handle compiles handlers with the default compiler into a martini handler,
// panicking on error.
func Handle(handlers ...any) func(http.ResponseWriter, *http.Request, martini.Params) {
	return H(promesso.Handle(handlers...))
}
