package promesso

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// logRecorder captures what is written to each sink.
type logRecorder struct {
	mu       sync.Mutex
	log, err []string
}

func (l *logRecorder) Log(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log = append(l.log, fmt.Sprintln(append([]any{msg}, args...)...))
}

func (l *logRecorder) Error(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = append(l.err, fmt.Sprintln(append([]any{msg}, args...)...))
}

func (l *logRecorder) Logs() string   { return strings.Join(l.log, "") }
func (l *logRecorder) Errors() string { return strings.Join(l.err, "") }

func (l *logRecorder) Loggers() *Loggers { return NewLoggers(l.Log, l.Error) }

func testCompiler() (*Compiler, *logRecorder) {
	logs := &logRecorder{}
	return New(WithLoggers(logs.Loggers())), logs
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func say(s string) HandlerFunc {
	return func(req *Request) (any, error) { return s, nil }
}
