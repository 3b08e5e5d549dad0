package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/klauspost/compress/gzip"
)

const compressionMinSize = 1024

// NewRouter mounts the reload stream and the site. The stream is never
// compressed so events reach the browser as they are flushed.
func NewRouter(site http.Handler, hub *ReloadHub, compression bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	if hub != nil {
		r.Get(ReloadPath, hub.ServeHTTP)
	}

	if compression {
		site = NewCompressionHandler(site, gzip.DefaultCompression)
	}
	r.Handle("/*", site)

	return r
}

func NewCompressionHandler(h http.Handler, level int) http.Handler {
	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(compressionMinSize),
		gzhttp.CompressionLevel(level),
	)
	if err != nil {
		slog.Warn("compression disabled", "error", err)
		return h
	}
	return wrapper(h)
}
