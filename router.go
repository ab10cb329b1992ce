package promesso

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// Router registers compiled chains by method and path. Path matching is
// delegated to httprouter, so patterns use its syntax: `/users/:id` for a
// named segment and `/static/*path` for a catch-all.
type Router interface {
	// Use adds handlers that run ahead of every route registered afterwards on
	// this router and its sub-routers. Previously registered routes are not
	// affected.
	Use(handlers ...any)

	// On registers handlers for the given method and path. It panics if the
	// handlers do not compile or the route conflicts with an existing one.
	On(method, path string, handlers ...any)

	// Get is shorthand for `On("GET", ...)`.
	Get(path string, handlers ...any)
	// Put is shorthand for `On("PUT", ...)`.
	Put(path string, handlers ...any)
	// Post is shorthand for `On("POST", ...)`.
	Post(path string, handlers ...any)
	// Patch is shorthand for `On("PATCH", ...)`.
	Patch(path string, handlers ...any)
	// Delete is shorthand for `On("DELETE", ...)`.
	Delete(path string, handlers ...any)
	// Any registers handlers for the specified path for any HTTP method. This
	// will always be superseded by dedicated method handlers. For example, if
	// the path '/users/:id' is registered for Get, Put and Any, GET and PUT
	// requests will be handled by the Get(...) and Put(...) registrations, but
	// DELETE would be handled by the Any(...) registration.
	Any(path string, handlers ...any)

	// SubRouter derives a router whose routes are all prefixed with
	// pathPrefix and which starts with the middleware of this router.
	SubRouter(pathPrefix string) Router

	// ServeHTTP implements the http.Handler interface for the router.
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// BuildYourOwn returns a minimal router that has no initial middleware.
func BuildYourOwn(opts ...Option) Router {
	return NewRouter(New(opts...))
}

// TheUsual returns a router initialized with useful middleware: request
// logging to the compiler's log sink.
func TheUsual(opts ...Option) Router {
	c := New(opts...)
	r := NewRouter(c)
	r.Use(c.LogRequests())
	return r
}

// NewRouter creates a router whose routes are compiled with c.
func NewRouter(c *Compiler) Router {
	mux := &routes{hr: httprouter.New(), any: httprouter.New()}
	mux.hr.NotFound = http.HandlerFunc(mux.fallback)
	mux.hr.MethodNotAllowed = http.HandlerFunc(mux.fallback)
	mux.hr.HandleOPTIONS = false
	return &router{c: c, mux: mux}
}

const anyMethod = "*"

// routes is shared by a router and all of its sub-routers.
type routes struct {
	hr  *httprouter.Router
	any *httprouter.Router
}

// fallback serves requests with no dedicated method handler from the Any
// registrations.
func (m *routes) fallback(w http.ResponseWriter, r *http.Request) {
	if h, ps, _ := m.any.Lookup(anyMethod, r.URL.Path); h != nil {
		h(w, r, ps)
		return
	}
	m.notFound(w, r)
}

func (m *routes) notFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not found", http.StatusNotFound)
}

type router struct {
	c      *Compiler
	mux    *routes
	prefix string
	base   []any
}

func (r *router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.hr.ServeHTTP(w, req)
}

func (r *router) Use(handlers ...any) {
	r.base = append(r.base, handlers...)
}

func (r *router) SubRouter(prefix string) Router {
	sub := &router{
		c:      r.c,
		mux:    r.mux,
		prefix: r.prefix,
		base:   append([]any(nil), r.base...),
	}
	if p := strings.Trim(prefix, "/"); p != "" {
		sub.prefix += "/" + p
	}
	return sub
}

func (r *router) On(method, path string, handlers ...any) {
	method = strings.ToUpper(method)
	all := append(append([]any(nil), r.base...), handlers...)
	e, err := r.c.Endpoint(all...)
	if err != nil {
		panic(fmt.Errorf("Cannot register route %s %s: %w", method, r.prefix+path, err))
	}
	handle := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		e.Serve(w, req, toParams(ps))
	}
	if method == anyMethod {
		r.mux.any.Handle(anyMethod, r.prefix+path, handle)
	} else {
		r.mux.hr.Handle(method, r.prefix+path, handle)
	}
}

func (r *router) Any(path string, handlers ...any)    { r.On(anyMethod, path, handlers...) }
func (r *router) Get(path string, handlers ...any)    { r.On("GET", path, handlers...) }
func (r *router) Put(path string, handlers ...any)    { r.On("PUT", path, handlers...) }
func (r *router) Post(path string, handlers ...any)   { r.On("POST", path, handlers...) }
func (r *router) Patch(path string, handlers ...any)  { r.On("PATCH", path, handlers...) }
func (r *router) Delete(path string, handlers ...any) { r.On("DELETE", path, handlers...) }

func toParams(ps httprouter.Params) Params {
	p := make(Params, len(ps))
	for _, param := range ps {
		p[param.Key] = param.Value
	}
	return p
}
