package http

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/3-lines-studio/stitch/internal/adapters/fs"
	"github.com/3-lines-studio/stitch/internal/usecase"
)

type compilerFunc func(ctx context.Context, html string, roots usecase.Roots) string

func (f compilerFunc) Transform(ctx context.Context, html string, roots usecase.Roots) string {
	return f(ctx, html, roots)
}

var upper = compilerFunc(func(_ context.Context, html string, _ usecase.Roots) string {
	return strings.ReplaceAll(html, "<Component />", "<b>compiled</b>")
})

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newSite(t *testing.T) (string, http.Handler) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.html"), "<html><body><Component /></body></html>")
	writeFile(t, filepath.Join(root, "about", "index.html"), "<p>about</p>")
	writeFile(t, filepath.Join(root, "docs.html"), "<p>docs</p>")
	writeFile(t, filepath.Join(root, "css", "site.css"), "body{}")
	writeFile(t, filepath.Join(root, "public", "robots.txt"), "User-agent: *")

	osfs := fs.NewOSFileSystem()
	assets := NewAssetHandler(osfs, root, filepath.Join(root, "public"))
	pages := NewPageHandler(upper, osfs, usecase.Roots{RootDir: root}, assets, quietLogger(), true)
	return root, pages
}

func TestPageHandler(t *testing.T) {
	_, h := newSite(t)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/", wantStatus: http.StatusOK, wantBody: "<b>compiled</b>"},
		{path: "/about", wantStatus: http.StatusOK, wantBody: "<p>about</p>"},
		{path: "/docs", wantStatus: http.StatusOK, wantBody: "<p>docs</p>"},
		{path: "/css/site.css", wantStatus: http.StatusOK, wantBody: "body{}"},
		{path: "/robots.txt", wantStatus: http.StatusOK, wantBody: "User-agent"},
		{path: "/missing", wantStatus: http.StatusNotFound},
		{path: "/../../etc/passwd", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("Expected body to contain %q, got %q", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestPageHandlerInjectsReloadScript(t *testing.T) {
	_, h := newSite(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	if !strings.Contains(body, ReloadPath) {
		t.Error("Expected reload client in dev page")
	}
	if strings.Index(body, reloadMarker) > strings.Index(body, "</body>") {
		t.Error("Expected reload client before </body>")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Expected html content type, got %s", ct)
	}
	if ct := func() string {
		r := httptest.NewRecorder()
		h.ServeHTTP(r, httptest.NewRequest(http.MethodGet, "/css/site.css", nil))
		return r.Header().Get("Content-Type")
	}(); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Expected css content type, got %s", ct)
	}
}

func TestAppendReloadScriptOnce(t *testing.T) {
	once := AppendReloadScript("<body></body>")
	twice := AppendReloadScript(once)
	if once != twice {
		t.Errorf("Expected a single reload script, got %q", twice)
	}
	if !strings.HasSuffix(AppendReloadScript("<p>fragment</p>"), "</script>") {
		t.Error("Expected script appended to documents without a body")
	}
}

func TestReloadStream(t *testing.T) {
	hub := NewReloadHub()
	_, site := newSite(t)
	srv := httptest.NewServer(NewRouter(site, hub, true))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+ReloadPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Expected event stream, got %s", ct)
	}
	if enc := resp.Header.Get("Content-Encoding"); enc != "" {
		t.Fatalf("Expected uncompressed stream, got %s", enc)
	}

	events := make(chan string, 4)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			if line := scanner.Text(); strings.HasPrefix(line, "event: ") {
				events <- strings.TrimPrefix(line, "event: ")
			}
		}
	}()

	expectEvent(t, events, "ready")
	hub.Notify()
	expectEvent(t, events, "reload")
}

func expectEvent(t *testing.T, events <-chan string, want string) {
	t.Helper()
	select {
	case got := <-events:
		if got != want {
			t.Errorf("Expected event %q, got %q", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Timed out waiting for %q", want)
	}
}

func TestRouterCompressesPages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.html"), "<p>"+strings.Repeat("stitch ", 500)+"</p>")

	osfs := fs.NewOSFileSystem()
	pages := NewPageHandler(upper, osfs, usecase.Roots{RootDir: root}, nil, quietLogger(), false)
	router := NewRouter(pages, nil, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if enc := rec.Header().Get("Content-Encoding"); enc != "gzip" {
		t.Errorf("Expected gzip encoding, got %q", enc)
	}
	if strings.Contains(rec.Body.String(), reloadMarker) {
		t.Error("Expected no reload client outside dev")
	}
}
