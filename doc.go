// Package promesso compiles request handlers that return a value or an error
// into ordered net/http middleware chains, with uniform request validation
// and uniform translation of failures into responses.
//
// Handlers are plain functions that are easy to test:
//   - Receive the request, return the response body or an error.
//   - Avoid writing error responses by hand: return a DomainError and the
//     client gets its code, status and message.
//   - Catch bugs: any other error or panic becomes a logged 500.
//
// # Example
//
// Here's a simple complete program using promesso:
//
//	package main
//
//	import (
//	    "log"
//	    "net/http"
//
//	    "github.com/augustoroman/promesso"
//	)
//
//	func main() {
//	    mux := promesso.TheUsual()
//	    mux.Get("/", func(req *promesso.Request) (any, error) {
//	        return "Hello world!", nil
//	    })
//	    if err := http.ListenAndServe(":6060", mux); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Chains
//
// A route may list several handlers. Every handler but the last advances the
// chain when it succeeds; the value returned by the last one becomes the
// response:
//
//	mux.Get("/users/:id", loadUser, requireAdmin, showUser)
//
//	func loadUser(req *promesso.Request) (any, error) {
//	    u, err := db.Get(req.Param("id"))
//	    if err != nil {
//	        return nil, promesso.ErrNotFound.WithHTTPResponse("no such user")
//	    }
//	    req.Set(userKey{}, u)
//	    return nil, nil
//	}
//
// Chains are compiled when they are registered. A handler of the wrong type
// or two validators in one chain panic at startup instead of failing requests.
//
// # Errors
//
// A failing handler is answered according to what it failed with:
//   - A DomainError (such as Error) is logged as "Error: <code> (<status>) - <message>"
//     and the client receives its HTTPCode (500 by default) with either its
//     structured HTTPResponse or {"code": ..., "message": ...}.
//   - Any other error, returned or panic'd, is a coding error: it is logged
//     with its stack and the request details and the client gets a bare 500.
//   - A panic with a value that is not an error, typically a string, is
//     logged to the error sink and answered with a bare 500.
//
// The two sinks are set with Logger, or per compiler with WithLoggers, and
// may be swapped at any time. See the sinks package for slog, zap and
// console implementations.
//
// # Validation
//
// A Step may carry a Schema that runs before its handler. A rejected request
// is answered with the schema's status and {"errors": [...]}:
//
//	mux.Post("/users", promesso.Validate(newUserSchema, createUser))
//
// # Raw middleware
//
// Native net/http middleware can be mixed into chains as chain.Middleware
// values, http.Handlers, or with Raw. These are inserted unchanged and must
// call next themselves:
//
//	mux.Use(promesso.Gzip)
package promesso
