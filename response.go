package promesso

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
)

// WrapResponse returns w as a *Response. If w already is one it is returned
// unchanged so that every entry of a chain shares the same status tracking.
func WrapResponse(w http.ResponseWriter) *Response {
	if rw, ok := w.(*Response); ok {
		return rw
	}
	return &Response{ResponseWriter: w}
}

// Response wraps http.ResponseWriter to add tracking of the response size
// and response code, and a small chainable API for handlers that respond
// themselves:
//
//	res.Status(http.StatusCreated).Send(user)
type Response struct {
	http.ResponseWriter
	Size int // The size of the response written so far, in bytes.
	Code int // The status code of the response, or 0 if not written yet.

	status int // pending status set by Status, used by the next Send
}

// Status sets the status code used by the next Send. It does not write
// anything.
func (w *Response) Status(code int) *Response {
	w.status = code
	return w
}

// Send writes body with the pending status (200 if Status was not called).
//
//   - nil writes only the status line.
//   - string is sent as text/plain.
//   - []byte is sent as application/octet-stream.
//   - json.RawMessage is sent verbatim as application/json.
//   - anything else is encoded as JSON.
//
// Content-Type is only set if the handler did not set one already.
func (w *Response) Send(body any) error {
	code := w.status
	if code == 0 {
		code = http.StatusOK
	}
	var data []byte
	var contentType string
	switch b := body.(type) {
	case nil:
		w.WriteHeader(code)
		return nil
	case string:
		data, contentType = []byte(b), "text/plain; charset=utf-8"
	case json.RawMessage:
		data, contentType = b, "application/json"
	case []byte:
		data, contentType = b, "application/octet-stream"
	default:
		var err error
		if data, err = json.Marshal(body); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return fmt.Errorf("cannot encode %T response: %w", body, err)
		}
		contentType = "application/json"
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(code)
	_, err := w.Write(data)
	return err
}

// SendStatus writes only the status line, with no body.
func (w *Response) SendStatus(code int) {
	w.WriteHeader(code)
}

// Written reports whether the status line has been sent.
func (w *Response) Written() bool { return w.Code != 0 }

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *Response) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *Response) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("the ResponseWriter doesn't support the Hijacker interface")
	}
	return hijacker.Hijack()
}

func (w *Response) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *Response) WriteHeader(code int) {
	if w.Code != 0 {
		return
	}
	w.Code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *Response) Write(p []byte) (int, error) {
	if w.Code == 0 {
		w.Code = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.Size += n
	return n, err
}
