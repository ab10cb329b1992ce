package promesso

import (
	"net/http"
	"sort"
	"time"

	"github.com/augustoroman/promesso/chain"
)

// Injected for testing
var time_Now = time.Now

// LogEntry is the information tracked on a per-request basis by the access
// log. All fields other than Note are automatically filled in. Note is a
// generic key-value map for adding per-request metadata to the log line;
// handlers reach it with LogEntryOf.
//
// For example:
//
//	func loadUser(req *promesso.Request) (any, error) {
//	    user, err := decodeAuthCookie(req)
//	    if user != nil {
//	        promesso.LogEntryOf(req).Note["user"] = user.Id
//	    }
//	    return user, err
//	}
type LogEntry struct {
	RemoteIp     string
	Start        time.Time
	Request      *http.Request
	RequestID    string
	StatusCode   int
	ResponseSize int
	Elapsed      time.Duration
	Note         map[string]string
	// set to true to suppress logging this request
	Quiet bool
}

type logEntryKey struct{}

// LogEntryOf returns the access log entry of the request, or a detached
// entry if the chain does not log requests.
func LogEntryOf(req *Request) *LogEntry {
	if e, ok := req.Get(logEntryKey{}); ok {
		return e.(*LogEntry)
	}
	return &LogEntry{Note: map[string]string{}}
}

// NoLog is a handler that suppresses the access log line for this request.
// For example:
//
//	// suppress logging of the favicon request to reduce log spam.
//	router.Get("/favicon.ico", promesso.NoLog, staticHandler)
func NoLog(req *Request) (any, error) {
	LogEntryOf(req).Quiet = true
	return nil, nil
}

// LogRequests returns a raw middleware that writes one line per request to
// the log sink once the rest of the chain has finished.
func (c *Compiler) LogRequests() chain.Middleware {
	return func(w http.ResponseWriter, r *http.Request, next chain.Next) {
		req := RequestOf(r)
		rw := WrapResponse(w)
		entry := &LogEntry{
			RemoteIp:  req.IP,
			Start:     time_Now(),
			Request:   r,
			RequestID: req.ID,
			Note:      map[string]string{},
		}
		req.Set(logEntryKey{}, entry)
		defer func() {
			entry.Elapsed = time_Now().Sub(entry.Start)
			entry.ResponseSize = rw.Size
			entry.StatusCode = rw.Code
			c.writeLog(entry)
		}()
		next(nil)
	}
}

func (c *Compiler) writeLog(e *LogEntry) {
	if e.Quiet {
		return
	}
	args := []any{
		"method", e.Request.Method,
		"uri", e.Request.RequestURI,
		"status", e.StatusCode,
		"bytes", e.ResponseSize,
		"elapsed", e.Elapsed,
		"ip", e.RemoteIp,
		"request_id", e.RequestID,
	}
	keys := make([]string, 0, len(e.Note))
	for k := range e.Note {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k, e.Note[k])
	}
	c.loggers().Log("request", args...)
}
