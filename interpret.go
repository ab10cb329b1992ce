package promesso

import (
	"net/http"

	"github.com/augustoroman/promesso/chain"
)

// ResponderFunc is a value a handler may return to take over the response
// itself, for instance to stream, redirect or set cookies:
//
//	return promesso.ResponderFunc(func(w *promesso.Response) {
//		http.Redirect(w, req.Request, "/login", http.StatusFound)
//	}), nil
type ResponderFunc func(w *Response)

// interpret converts a handler's successful result into an action. A handler
// that is not last in its chain always advances, whatever it returned.
func (c *Compiler) interpret(w *Response, req *Request, next chain.Next, usesNext bool, val any) {
	if usesNext {
		next(nil)
		return
	}
	switch fn := val.(type) {
	case ResponderFunc:
		fn(w)
	case func(*Response):
		fn(w)
	case func(http.ResponseWriter):
		fn(w)
	default:
		if err := w.Status(http.StatusOK).Send(val); err != nil {
			c.loggers().Log("cannot send response",
				"err", err, "type", typeName(val), "request_id", req.ID)
		}
	}
	c.observe(req, KindNone, w.Code)
}
