// Package gorillamux_promesso is a gorilla/mux adapter for promesso that
// provides the mux route variables to the handlers.
package gorillamux_promesso

import (
	"net/http"

	"github.com/augustoroman/promesso"
	"github.com/gorilla/mux"
)

// H converts an endpoint into an http.Handler that reads mux.Vars:
//
//	r := mux.NewRouter()
//	r.Handle("/users/{id}", gorillamux_promesso.H(c.MustEndpoint(getUser))).Methods("GET")
func H(e *promesso.Endpoint) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.Serve(w, r, mux.Vars(r))
	})
}

// Handle compiles handlers with the default compiler, panicking on error.
func Handle(handlers ...any) http.Handler {
	return H(promesso.Handle(handlers...))
}

// Route registers handlers compiled with c on r for the given methods and
// path template.
func Route(r *mux.Router, c *promesso.Compiler, path string, methods []string, handlers ...any) *mux.Route {
	return r.Handle(path, H(c.MustEndpoint(handlers...))).Methods(methods...)
}
