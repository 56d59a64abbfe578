// Package site serves the embedded front-end.
package site

import (
	"bytes"
	"io/fs"
	"net/http"
	"time"
)

// IndexPath is where GET / sends browsers.
const IndexPath = "/static/index.html"

// Register attaches the root redirect and the /static/ file server to mux.
func Register(mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
	// http.FileServer answers .../index.html with a redirect to the directory.
	mux.HandleFunc("GET "+IndexPath, serveIndex)
	mux.HandleFunc("GET /{$}", NewRootHandler().HandleRoot)
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests with a temporary redirect to the front-end.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// serveIndex writes index.html directly so IndexPath is served as-is.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(staticFS, "static/index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(data))
}
