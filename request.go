package promesso

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// MaxBodySize bounds how much of a request body is buffered into
// Request.Body.
const MaxBodySize = 1 << 20 // 1MiB

// Params holds the path parameters extracted by the router.
type Params map[string]string

// Request is what handlers receive. It embeds the underlying *http.Request
// and adds the pieces of the request that handlers and error logs commonly
// need.
//
// One Request is created per incoming request and shared by every entry of
// the chain, so values attached by an earlier handler (via Set) are visible
// to later ones.
type Request struct {
	*http.Request
	// ID is a unique id generated for this request, included in logs.
	ID string
	// Params are the router path parameters, never nil.
	Params Params
	// Query is the parsed URL query.
	Query url.Values
	// Body is the buffered request body, at most MaxBodySize bytes. The
	// underlying http.Request body is replaced so it can be read again in
	// full, including anything past MaxBodySize.
	Body []byte
	// BodyErr is ErrBodyTooLarge if Body holds only a prefix of the request
	// body, or the error that interrupted reading it.
	BodyErr error
	// IP is the client address, honoring X-Real-IP and X-Forwarded-For.
	IP string

	values map[any]any
}

// ErrBodyTooLarge is reported in Request.BodyErr when the request body is
// longer than MaxBodySize.
var ErrBodyTooLarge = errors.New("request body exceeds MaxBodySize")

type requestKey struct{}

// NewRequest builds the Request for r and returns it together with a copy of
// r whose context carries it.
func NewRequest(r *http.Request, p Params) (*Request, *http.Request) {
	if p == nil {
		p = Params{}
	}
	req := &Request{
		ID:     uuid.NewString(),
		Params: p,
		Query:  r.URL.Query(),
		IP:     remoteIp(r),
	}
	if r.Body != nil && r.Body != http.NoBody {
		read, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
		req.Body, req.BodyErr = read, err
		if len(read) > MaxBodySize {
			req.Body, req.BodyErr = read[:MaxBodySize], ErrBodyTooLarge
		}
		r.Body = readCloser{io.MultiReader(bytes.NewReader(read), r.Body), r.Body}
	}
	r = r.WithContext(context.WithValue(r.Context(), requestKey{}, req))
	req.Request = r
	return req, r
}

// readCloser replays the buffered prefix of a body before the unread rest.
type readCloser struct {
	io.Reader
	io.Closer
}

// RequestOf returns the Request attached to r. If r did not go through
// NewRequest, as when a compiled chain is served directly, a Request is
// created and attached to r in place so that the following entries of the
// chain, which receive the same *http.Request, share it.
func RequestOf(r *http.Request) *Request {
	if req, ok := r.Context().Value(requestKey{}).(*Request); ok {
		return req
	}
	req, attached := NewRequest(r, nil)
	*r = *attached
	return req
}

// Param returns the named path parameter, or "".
func (r *Request) Param(name string) string { return r.Params[name] }

// Set attaches a value to the request for later handlers in the same chain.
func (r *Request) Set(key, val any) {
	if r.values == nil {
		r.values = map[any]any{}
	}
	r.values[key] = val
}

// Get returns a value attached with Set.
func (r *Request) Get(key any) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Bind decodes the JSON body into v. Unknown fields and trailing data are
// rejected. Failures are reported as a 400 DomainError so handlers can return
// them directly.
func (r *Request) Bind(v any) error {
	if r.BodyErr != nil {
		return ErrBadRequest.
			WithHTTPResponse("cannot read body").
			WithCause(r.BodyErr)
	}
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ErrBadRequest.
			WithHTTPResponse("invalid JSON body").
			WithCause(fmt.Errorf("json decode: %w", err))
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return ErrBadRequest.
			WithHTTPResponse("invalid JSON body").
			WithCause(fmt.Errorf("json trailing content"))
	}
	return nil
}

// remoteIp extracts the remote IP from the request.  Adapted from code in
// Martini:
//
//	https://github.com/go-martini/martini/blob/1d33529c15f19/logger.go#L14..L20
func remoteIp(r *http.Request) string {
	if addr := r.Header.Get("X-Real-IP"); addr != "" {
		return addr
	} else if addr := r.Header.Get("X-Forwarded-For"); addr != "" {
		return addr
	}
	return r.RemoteAddr
}
