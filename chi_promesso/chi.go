// Package chi_promesso is a chi adapter for promesso that provides the chi
// URL parameters to the handlers.
package chi_promesso

import (
	"net/http"

	"github.com/augustoroman/promesso"
	"github.com/go-chi/chi/v5"
)

// H converts an endpoint into an http.HandlerFunc that reads the chi route
// context:
//
//	r := chi.NewRouter()
//	r.Get("/users/{id}", chi_promesso.H(c.MustEndpoint(getUser)))
func H(e *promesso.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e.Serve(w, r, Params(r))
	}
}

// Handle compiles handlers with the default compiler, panicking on error.
func Handle(handlers ...any) http.HandlerFunc {
	return H(promesso.Handle(handlers...))
}

// Method registers handlers compiled with c on r.
func Method(r chi.Router, c *promesso.Compiler, method, pattern string, handlers ...any) {
	r.Method(method, pattern, H(c.MustEndpoint(handlers...)))
}

// Params extracts the chi URL parameters of r.
func Params(r *http.Request) promesso.Params {
	p := promesso.Params{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return p
	}
	for i, k := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			p[k] = rctx.URLParams.Values[i]
		}
	}
	return p
}
