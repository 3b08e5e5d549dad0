package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/3-lines-studio/stitch/internal/adapters/fs"
)

func writeAsset(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestInlineStylesheets(t *testing.T) {
	project := t.TempDir()
	root := filepath.Join(project, "src")
	writeAsset(t, filepath.Join(root, "css", "main.css"), "body{margin:0}")
	writeAsset(t, filepath.Join(project, "public", "theme.css"), ".dark{}")
	writeAsset(t, filepath.Join(root, "css", "tricky.css"), `a::after{content:"</style>"}`)

	s := NewInlineService(fs.NewOSFileSystem(), discardLogger(), nil)
	roots := Roots{RootDir: root, ProjectRoot: project}

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "local stylesheet under root",
			html: `<head><link rel="stylesheet" href="/css/main.css"></head>`,
			want: `<head><style>body{margin:0}</style></head>`,
		},
		{
			name: "public dir fallback and attribute order",
			html: `<link href="theme.css" rel="stylesheet" />`,
			want: `<style>.dark{}</style>`,
		},
		{
			name: "external URL is preserved",
			html: `<link rel="stylesheet" href="https://cdn.example.com/x.css">`,
			want: `<link rel="stylesheet" href="https://cdn.example.com/x.css">`,
		},
		{
			name: "plain http URL is preserved",
			html: `<link rel="stylesheet" href="http://cdn.example.com/x.css">`,
			want: `<link rel="stylesheet" href="http://cdn.example.com/x.css">`,
		},
		{
			name: "non-stylesheet link untouched",
			html: `<link rel="icon" href="/css/main.css">`,
			want: `<link rel="icon" href="/css/main.css">`,
		},
		{
			name: "media attribute is kept",
			html: `<link rel="stylesheet" href="/css/main.css" media="print and (min-width: 40em)">`,
			want: `<style media="print and (min-width: 40em)">body{margin:0}</style>`,
		},
		{
			name: "closing style tag in content is escaped",
			html: `<link rel="stylesheet" href="/css/tricky.css">`,
			want: `<style>a::after{content:"<\/style>"}</style>`,
		},
		{
			name: "missing file leaves tag",
			html: `<link rel="stylesheet" href="/nope.css">`,
			want: `<link rel="stylesheet" href="/nope.css">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.InlineStylesheets(tt.html, roots); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestInlineScripts(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, filepath.Join(root, "js", "app.js"), "console.log(1)")
	writeAsset(t, filepath.Join(root, "js", "tricky.js"), `document.write("</script>")`)

	s := NewInlineService(fs.NewOSFileSystem(), discardLogger(), nil)
	roots := Roots{RootDir: root}

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "module script keeps type",
			html: `<script type="module" src="/js/app.js"></script>`,
			want: `<script type="module">console.log(1)</script>`,
		},
		{
			name: "classic script",
			html: `<script src="js/app.js"></script>`,
			want: `<script>console.log(1)</script>`,
		},
		{
			name: "closing tag inside script is escaped",
			html: `<script src="/js/tricky.js"></script>`,
			want: `<script>document.write("<\/script>")</script>`,
		},
		{
			name: "dev client is skipped",
			html: `<script type="module" src="/@vite/client"></script>`,
			want: `<script type="module" src="/@vite/client"></script>`,
		},
		{
			name: "external script is preserved",
			html: `<script src="https://cdn.example.com/lib.js"></script>`,
			want: `<script src="https://cdn.example.com/lib.js"></script>`,
		},
		{
			name: "inline script untouched",
			html: `<script>let a = 1</script>`,
			want: `<script>let a = 1</script>`,
		},
		{
			name: "missing file leaves tag",
			html: `<script src="/missing.js"></script>`,
			want: `<script src="/missing.js"></script>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.InlineScripts(tt.html, roots); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestInlineCustomDevClientPatterns(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, filepath.Join(root, "hmr.js"), "hmr()")

	s := NewInlineService(fs.NewOSFileSystem(), discardLogger(), []string{"hmr"})
	html := `<script src="/hmr.js"></script>`
	if got := s.InlineScripts(html, Roots{RootDir: root}); got != html {
		t.Errorf("Expected custom dev client pattern to skip inlining, got %q", got)
	}

	if !strings.Contains(DefaultDevClientPatterns[0], "vite") {
		t.Errorf("Unexpected default patterns %v", DefaultDevClientPatterns)
	}
}
