package promesso

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/augustoroman/promesso/chain"
)

const (
	headerAcceptEncoding  = "Accept-Encoding"
	headerContentEncoding = "Content-Encoding"
	headerContentLength   = "Content-Length"
	headerContentType     = "Content-Type"
	headerVary            = "Vary"
)

// Gzip is a raw middleware that adds gzip compression to the output of all
// subsequent handlers when the client accepts it.
//
// For example, to gzip everything you could use:
//
//	router.Use(promesso.Gzip)
//	...use as normal...
//
// Or, to gzip just a particular route you could do:
//
//	router.Get("/foo/bar", promesso.Gzip, handleFooBar)
//
// Note that this does NOT auto-detect the content and disable compression for
// already-compressed data (e.g. jpg images).
func Gzip(w http.ResponseWriter, r *http.Request, next chain.Next) {
	rw, ok := w.(*Response)
	if !ok || !strings.Contains(r.Header.Get(headerAcceptEncoding), "gzip") {
		next(nil)
		return
	}
	headers := rw.Header()
	headers.Set(headerContentEncoding, "gzip")
	headers.Set(headerVary, headerAcceptEncoding)

	orig := rw.ResponseWriter
	gz := &gZipWriter{orig, gzip.NewWriter(orig)}
	rw.ResponseWriter = gz
	defer func() {
		gz.Close()
		rw.ResponseWriter = orig
	}()
	next(nil)
}

type gZipWriter struct {
	http.ResponseWriter
	w *gzip.Writer
}

func (g *gZipWriter) WriteHeader(code int) {
	g.Header().Del(headerContentLength)
	g.ResponseWriter.WriteHeader(code)
}

func (g *gZipWriter) Write(p []byte) (int, error) {
	if len(g.Header().Get(headerContentType)) == 0 {
		g.Header().Set(headerContentType, http.DetectContentType(p))
	}
	return g.w.Write(p)
}

func (g *gZipWriter) Flush() {
	g.w.Flush()
	if f, ok := g.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (g *gZipWriter) Close() {
	g.Header().Del(headerContentLength)
	g.w.Close()
}
