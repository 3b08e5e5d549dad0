package stitch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gkampitakis/go-snaps/snaps"
)

const siteDir = "testdata/site"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readPage(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(siteDir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestBuildSite(t *testing.T) {
	e := New(DefaultConfig(), WithLogger(quietLogger()), WithMode(ModeProd))
	out := e.Build(context.Background(), readPage(t), Roots{RootDir: siteDir})

	snaps.WithConfig(snaps.Ext(".html")).MatchStandaloneSnapshot(t, out)

	for _, want := range []string{
		`<h1>Home</h1>`,
		`<button class="btn btn-primary">Get started</button>`,
		`<button class="btn btn-ghost">Docs</button>`,
		`<em>markdown</em>`,
		`<!-- Component "Missing" not found -->`,
		`<style>body{margin:0}`,
		`<script type="module">document.querySelector`,
		`href="https://cdn.example.com/reset.css"`,
		`<footer></footer>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}

	if strings.Contains(out, "<Component") {
		t.Error("Expected every component tag to be resolved")
	}
	if strings.Contains(out, "variants:") {
		t.Error("Expected variant directive to be stripped")
	}
}

func TestTransformByMode(t *testing.T) {
	page := readPage(t)
	roots := Roots{RootDir: siteDir}

	dev := New(DefaultConfig(), WithLogger(quietLogger()), WithMode(ModeDev))
	if dev.Mode() != ModeDev {
		t.Fatalf("Expected dev mode, got %s", dev.Mode())
	}
	out := dev.Transform(context.Background(), page, roots)
	if !strings.Contains(out, `<link rel="stylesheet" href="/css/site.css">`) {
		t.Error("Expected dev transform to leave stylesheets linked")
	}
	if strings.Contains(out, "<Component") {
		t.Error("Expected dev transform to compile components")
	}

	prod := New(DefaultConfig(), WithLogger(quietLogger()), WithMode(ModeProd))
	out = prod.Transform(context.Background(), page, roots)
	if strings.Contains(out, `href="/css/site.css"`) {
		t.Error("Expected prod transform to inline stylesheets")
	}
}

func TestBuildRespectsInlineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InlineJS = false

	e := New(cfg, WithLogger(quietLogger()))
	out := e.Build(context.Background(), readPage(t), Roots{RootDir: siteDir})

	if !strings.Contains(out, `<script type="module" src="/js/app.js"></script>`) {
		t.Error("Expected script to stay external when InlineJS is off")
	}
	if !strings.Contains(out, "<style>") {
		t.Error("Expected stylesheet to be inlined")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	got := Compile(`<Component src="Button" variant="ghost" text="x" />`, siteDir, "")
	if strings.TrimSpace(got) != `<button class="btn btn-ghost">x</button>` {
		t.Errorf("Unexpected compile output %q", got)
	}

	got = InlineStylesheets(`<link rel="stylesheet" href="css/site.css">`, siteDir, "")
	if got != "<style>body{margin:0}\n</style>" {
		t.Errorf("Unexpected stylesheet output %q", got)
	}

	got = InlineScripts(`<script src="/js/app.js"></script>`, siteDir, "")
	if !strings.HasPrefix(got, "<script>document.querySelector") {
		t.Errorf("Unexpected script output %q", got)
	}
}

func TestRegisterProducer(t *testing.T) {
	e := New(DefaultConfig(), WithLogger(quietLogger()))
	e.Register("Year", Static("<span>2026</span>"))
	e.Register("Greet", ProducerFunc(func(ctx context.Context, props map[string]string) (string, error) {
		return "<p>Hi " + props["who"] + "</p>", nil
	}))

	got := e.Compile(context.Background(), `<Component src="Greet" who="Ada" /><Component src="Year" />`, Roots{RootDir: t.TempDir()})
	if got != "<p>Hi Ada</p><span>2026</span>" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestFilesWinOverProducers(t *testing.T) {
	e := New(DefaultConfig(), WithLogger(quietLogger()))
	e.Register("Button", Static("<b>producer</b>"))

	got := e.Compile(context.Background(), `<Component src="Button" text="file" />`, Roots{RootDir: siteDir})
	if strings.Contains(got, "producer") {
		t.Errorf("Expected the file component to win, got %q", got)
	}
}

func TestWithProvider(t *testing.T) {
	custom := ProviderFunc(func(ctx context.Context, req ProviderRequest) (string, error) {
		if req.Identifier == "Remote" {
			return "<div>remote</div>", nil
		}
		return "", ErrNotFound
	})

	e := New(DefaultConfig(), WithLogger(quietLogger()), WithProvider(custom))
	e.Register("Remote", Static("<div>registry</div>"))

	got := e.Compile(context.Background(), `<Component src="Remote" />`, Roots{RootDir: t.TempDir()})
	if got != "<div>remote</div>" {
		t.Errorf("Expected custom provider before registry, got %q", got)
	}
}

func TestWithFS(t *testing.T) {
	fsys := fstest.MapFS{
		"components/Card.html": {Data: []byte(`<article>{{ children }}</article>`)},
		"css/a.css":            {Data: []byte(`a{}`)},
	}

	e := New(DefaultConfig(), WithLogger(quietLogger()), WithFS(fsys), WithMode(ModeProd))
	html := `<link rel="stylesheet" href="/css/a.css"><Component name="Card">hi</Component>`

	got := e.Build(context.Background(), html, Roots{RootDir: "."})
	if got != `<style>a{}</style><article>hi</article>` {
		t.Errorf("Unexpected output %q", got)
	}
}
