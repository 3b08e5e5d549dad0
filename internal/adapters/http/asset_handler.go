package http

import (
	"bytes"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/3-lines-studio/stitch/internal/core"
	"github.com/3-lines-studio/stitch/internal/usecase"
)

// AssetHandler serves files from the first of dirs that holds the request
// path. Paths are cleaned so a request cannot escape its directory.
type AssetHandler struct {
	fs   usecase.FileSystem
	dirs []string
}

func NewAssetHandler(fs usecase.FileSystem, dirs ...string) *AssetHandler {
	return &AssetHandler{fs: fs, dirs: dirs}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	rel := strings.TrimPrefix(path.Clean("/"+req.URL.Path), "/")
	if rel == "" {
		http.NotFound(w, req)
		return
	}

	for _, dir := range h.dirs {
		if dir == "" {
			continue
		}
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if !h.fs.FileExists(full) {
			continue
		}

		data, err := h.fs.ReadFile(full)
		if err != nil {
			http.NotFound(w, req)
			return
		}

		w.Header().Set("Content-Type", core.GetContentType(rel))
		http.ServeContent(w, req, path.Base(rel), time.Time{}, bytes.NewReader(data))
		return
	}

	http.NotFound(w, req)
}
