package promesso

import (
	"fmt"
	"net/http"

	"github.com/augustoroman/promesso/chain"
)

// respond turns a caught failure into exactly one log call and one response.
func (c *Compiler) respond(w *Response, req *Request, caught any) {
	kind := Classify(caught)
	status := http.StatusInternalServerError
	switch kind {
	case KindNone:
		return
	case KindDomain:
		derr, _ := asDomainError(caught)
		status = c.respondDomain(w, derr)
	case KindGeneric:
		c.respondGeneric(w, req, caught)
	case KindUnclassified:
		c.respondUnclassified(w, caught)
	}
	c.observe(req, kind, status)
}

func (c *Compiler) respondDomain(w *Response, derr DomainError) int {
	status := http.StatusInternalServerError
	if hc, ok := derr.(httpCoder); ok && hc.HTTPCode() != 0 {
		status = hc.HTTPCode()
	}
	var response any
	if hr, ok := derr.(httpResponder); ok {
		response = hr.HTTPResponse()
	}
	code := derr.ErrorCode()
	if o, ok := c.observer.(ErrorCodeObserver); ok {
		o.ObserveDomainError(code)
	}
	message := derr.Error()
	if e, ok := derr.(Error); ok {
		message = e.Message
	} else if e, ok := derr.(*Error); ok {
		message = e.Message
	}

	c.loggers().Log(fmt.Sprintf("Error: %s (%d) - %s", code, status, message),
		"code", code,
		"message", message,
		"status", status,
		"response", response,
	)

	var body any
	switch r := response.(type) {
	case nil:
		body = map[string]string{"code": code}
	case string:
		body = map[string]string{"code": code, "message": r}
	default:
		body = r
	}
	if err := w.Status(status).Send(body); err != nil {
		c.loggers().Error("cannot send error response", "code", code, "err", err)
	}
	return status
}

func (c *Compiler) respondGeneric(w *Response, req *Request, caught any) {
	var err error
	var stack string
	if p, ok := caught.(chain.PanicError); ok {
		err = p.Val.(error)
		stack = p.Stack()
	} else {
		err = caught.(error)
		if _, ok := err.(fmt.Formatter); ok {
			stack = fmt.Sprintf("%+v", err)
		} else {
			stack = chain.CurrentStack()
		}
	}
	c.loggers().Log("coding error",
		"err", err,
		"stack", stack,
		"body", string(req.Body),
		"query", req.Query,
		"params", req.Params,
		"ip", req.IP,
		"request_id", req.ID,
		"status", http.StatusInternalServerError,
	)
	w.SendStatus(http.StatusInternalServerError)
}

func (c *Compiler) respondUnclassified(w *Response, caught any) {
	val := caught
	if p, ok := caught.(chain.PanicError); ok {
		val = p.Val
	}
	c.loggers().Error("Non-Error value raised, probably a string",
		"value", val,
		"type", fmt.Sprintf("%T", val),
	)
	w.SendStatus(http.StatusInternalServerError)
}
