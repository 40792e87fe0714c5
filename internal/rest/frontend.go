package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the compiled single-page frontend from a directory.
// Unknown paths fall back to the index document so client-side routing works.
type FrontendHandler struct {
	dir       string
	indexFile string
	fs        http.Handler
}

func NewFrontendHandler(dir string, indexFile string) *FrontendHandler {
	return &FrontendHandler{
		dir:       dir,
		indexFile: indexFile,
		fs:        http.FileServer(http.Dir(dir)),
	}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, h.indexFile))
		return
	}

	h.fs.ServeHTTP(w, r)
}
