package http

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"

	"github.com/3-lines-studio/stitch/internal/core"
	"github.com/3-lines-studio/stitch/internal/usecase"
)

type PageCompiler interface {
	Transform(ctx context.Context, html string, roots usecase.Roots) string
}

// PageHandler compiles the page matching the request path on every request.
// Requests that match no page go to next.
type PageHandler struct {
	compiler PageCompiler
	fs       usecase.FileSystem
	roots    usecase.Roots
	next     http.Handler
	logger   *slog.Logger
	isDev    bool
}

func NewPageHandler(
	compiler PageCompiler,
	fs usecase.FileSystem,
	roots usecase.Roots,
	next http.Handler,
	logger *slog.Logger,
	isDev bool,
) *PageHandler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PageHandler{
		compiler: compiler,
		fs:       fs,
		roots:    roots,
		next:     next,
		logger:   logger,
		isDev:    isDev,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		h.next.ServeHTTP(w, req)
		return
	}

	for _, candidate := range core.PageCandidates(path.Clean("/" + req.URL.Path)) {
		pagePath := filepath.Join(h.roots.RootDir, filepath.FromSlash(candidate))
		if !h.fs.FileExists(pagePath) {
			continue
		}

		data, err := h.fs.ReadFile(pagePath)
		if err != nil {
			h.serveError(w, req.URL.Path, fmt.Errorf("failed to read page %s: %w", pagePath, err))
			return
		}

		out := h.compiler.Transform(req.Context(), string(data), h.roots)
		if h.isDev {
			out = AppendReloadScript(out)
		}

		h.logger.Debug("page served", "path", req.URL.Path, "file", pagePath)
		h.serveHTML(w, out)
		return
	}

	h.next.ServeHTTP(w, req)
}

func (h *PageHandler) serveHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (h *PageHandler) serveError(w http.ResponseWriter, path string, err error) {
	h.logger.Error("page failed", "path", path, "error", err)

	data := core.ErrorData{
		Path:    path,
		Message: err.Error(),
		IsDev:   h.isDev,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)

	var buf bytes.Buffer
	if err := core.ErrorTemplate.Execute(&buf, data); err != nil {
		_, _ = w.Write([]byte("<!doctype html><html><body><pre>" + html.EscapeString(data.Message) + "</pre></body></html>"))
		return
	}
	_, _ = w.Write(buf.Bytes())
}
