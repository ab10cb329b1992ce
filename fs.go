package promesso

import (
	"io/fs"
	"net/http"

	"github.com/augustoroman/promesso/chain"
)

// ServeFS is a simple helper that will serve static files from an fs.FS
// filesystem. It allows serving files identified by a path parameter out of a
// subdirectory of the filesystem. This is especially useful when embedding
// static files:
//
//	//go:embed server_files
//	var all_files embed.FS
//
//	mux.Get("/css/*path", promesso.ServeFS(all_files, "static/css", "path"))
//	mux.Get("/js/*path", promesso.ServeFS(all_files, "dist/js", "path"))
//	mux.Get("/i/*path", promesso.ServeFS(all_files, "static/images", "path"))
//
// The returned middleware concludes the response.
func ServeFS(f fs.FS, fsRoot string, pathParam string) chain.Middleware {
	sub, err := fs.Sub(f, fsRoot)
	if err != nil {
		panic(err)
	}
	return ServeFiles(http.FS(sub), pathParam)
}

// ServeFiles is like ServeFS for an http.FileSystem, such as a go.rice box.
func ServeFiles(files http.FileSystem, pathParam string) chain.Middleware {
	handler := http.FileServer(files)
	return func(w http.ResponseWriter, r *http.Request, next chain.Next) {
		u := *r.URL
		u.Path = RequestOf(r).Param(pathParam)
		r2 := *r
		r2.URL = &u
		handler.ServeHTTP(w, &r2)
	}
}
