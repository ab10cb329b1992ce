package promesso

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/augustoroman/promesso/chain"
)

// Schema validates a request before the handler it is attached to runs. It
// returns nil to let the request through, a *ValidationError to reject it
// with a structured 4xx response, or any other error which is forwarded down
// the chain untouched.
//
// promesso does not implement any schema language; plug in whatever
// validation library the application uses.
type Schema interface {
	Validate(req *Request) error
}

// SchemaFunc adapts a function to the Schema interface.
type SchemaFunc func(req *Request) error

func (f SchemaFunc) Validate(req *Request) error { return f(req) }

// FieldError describes one rejected field.
type FieldError struct {
	Field    string   `json:"field"`
	Location string   `json:"location,omitempty"`
	Messages []string `json:"messages"`
	Types    []string `json:"types,omitempty"`
}

// ValidationError is the error a Schema returns to reject a request.
type ValidationError struct {
	// Status is the response status. Zero means 400.
	Status int
	Errors []FieldError
}

// NewValidationError creates a 400 validation error.
func NewValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Status: http.StatusBadRequest, Errors: errs}
}

// Add appends a field error and returns the receiver.
func (e *ValidationError) Add(field, location, message string) *ValidationError {
	e.Errors = append(e.Errors, FieldError{Field: field, Location: location, Messages: []string{message}})
	return e
}

// Err returns e if it holds any field errors and nil otherwise, so schema
// implementations can end with `return verr.Err()`.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Errors))
	for i, f := range e.Errors {
		fields[i] = f.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// validateWith returns the middleware that runs schema and forwards its
// verdict.
func validateWith(schema Schema) chain.Middleware {
	return func(w http.ResponseWriter, r *http.Request, next chain.Next) {
		next(schema.Validate(RequestOf(r)))
	}
}

// TranslateValidationError is the error middleware placed right after every
// validation entry. A *ValidationError is answered with its status and
// {"errors": [...]}, any other error continues down the chain unchanged.
// Write failures go to the process-wide error sink.
func TranslateValidationError(err error, w http.ResponseWriter, r *http.Request, next chain.Next) {
	defaultCompiler.translateValidationError(err, w, r, next)
}

func (c *Compiler) translateValidationError(err error, w http.ResponseWriter, r *http.Request, next chain.Next) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		next(err)
		return
	}
	status := verr.Status
	if status == 0 {
		status = http.StatusBadRequest
	}
	errs := verr.Errors
	if errs == nil {
		errs = []FieldError{}
	}
	if err := WrapResponse(w).Status(status).Send(map[string]any{"errors": errs}); err != nil {
		c.loggers().Error("cannot send validation response",
			"err", err, "status", status, "request_id", RequestOf(r).ID)
	}
}
