package stitch

import (
	"context"
	iofs "io/fs"
	"log/slog"

	"github.com/3-lines-studio/stitch/internal/adapters/env"
	"github.com/3-lines-studio/stitch/internal/adapters/fs"
	"github.com/3-lines-studio/stitch/internal/core"
	"github.com/3-lines-studio/stitch/internal/provider"
	"github.com/3-lines-studio/stitch/internal/usecase"
)

type Roots = usecase.Roots

type Mode = core.Mode

const (
	ModeDev  = core.ModeDev
	ModeProd = core.ModeProd
)

type FileSystem = fs.FileSystem

type Provider = provider.Provider

type ProviderRequest = provider.Request

type ProviderFunc = provider.Func

type Producer = provider.Producer

type ProducerFunc = provider.ProducerFunc

func Static(content string) Producer {
	return provider.Static(content)
}

var ErrNotFound = core.ErrNotFound

type Config struct {
	ComponentsDir     string
	MaxDepth          int
	InlineCSS         bool
	InlineJS          bool
	DevClientPatterns []string
}

func DefaultConfig() Config {
	return Config{
		ComponentsDir:     core.DefaultComponentsDir,
		MaxDepth:          usecase.DefaultMaxDepth,
		InlineCSS:         true,
		InlineJS:          true,
		DevClientPatterns: usecase.DefaultDevClientPatterns,
	}
}

type Option func(*options)

type options struct {
	logger    *slog.Logger
	fs        FileSystem
	providers []Provider
	mode      *Mode
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithFileSystem(fsys FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithFS reads components, pages and assets from fsys, typically an embed.FS.
func WithFS(fsys iofs.FS) Option {
	return WithFileSystem(fs.NewEmbedFileSystem(fsys))
}

// WithProvider adds a provider consulted after the file system and before
// registered producers.
func WithProvider(p Provider) Option {
	return func(o *options) {
		o.providers = append(o.providers, p)
	}
}

func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = &mode
	}
}

type Engine struct {
	cfg      Config
	mode     Mode
	registry *provider.Registry
	compiler *usecase.CompileService
	inliner  *usecase.InlineService
}

func New(cfg Config, opts ...Option) *Engine {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.fs == nil {
		o.fs = fs.NewOSFileSystem()
	}

	mode := env.DetectMode()
	if o.mode != nil {
		mode = *o.mode
	}

	registry := provider.NewRegistry()
	chain := provider.Chain{provider.NewFileProvider(o.fs)}
	chain = append(chain, o.providers...)
	chain = append(chain, registry)

	return &Engine{
		cfg:      cfg,
		mode:     mode,
		registry: registry,
		compiler: usecase.NewCompileService(chain, o.logger, usecase.CompileOptions{
			ComponentsDir: cfg.ComponentsDir,
			MaxDepth:      cfg.MaxDepth,
		}),
		inliner: usecase.NewInlineService(o.fs, o.logger, cfg.DevClientPatterns),
	}
}

func (e *Engine) Mode() Mode {
	return e.mode
}

// Register makes p answer for the component identifier id when no file
// provides it.
func (e *Engine) Register(id string, p Producer) {
	e.registry.Register(id, p)
}

func (e *Engine) Compile(ctx context.Context, html string, roots Roots) string {
	return e.compiler.Compile(ctx, html, roots)
}

func (e *Engine) InlineStylesheets(html string, roots Roots) string {
	return e.inliner.InlineStylesheets(html, roots)
}

func (e *Engine) InlineScripts(html string, roots Roots) string {
	return e.inliner.InlineScripts(html, roots)
}

// Build compiles html and applies the inlining passes enabled in the config.
func (e *Engine) Build(ctx context.Context, html string, roots Roots) string {
	out := e.Compile(ctx, html, roots)
	if e.cfg.InlineCSS {
		out = e.InlineStylesheets(out, roots)
	}
	if e.cfg.InlineJS {
		out = e.InlineScripts(out, roots)
	}
	return out
}

// Transform is what a host tool calls per page: a plain compile in dev mode,
// a full Build otherwise.
func (e *Engine) Transform(ctx context.Context, html string, roots Roots) string {
	if e.mode == ModeDev {
		return e.Compile(ctx, html, roots)
	}
	return e.Build(ctx, html, roots)
}

func Compile(html, rootDir, projectRoot string) string {
	return New(DefaultConfig()).Compile(context.Background(), html, Roots{RootDir: rootDir, ProjectRoot: projectRoot})
}

func InlineStylesheets(html, rootDir, projectRoot string) string {
	return New(DefaultConfig()).InlineStylesheets(html, Roots{RootDir: rootDir, ProjectRoot: projectRoot})
}

func InlineScripts(html, rootDir, projectRoot string) string {
	return New(DefaultConfig()).InlineScripts(html, Roots{RootDir: rootDir, ProjectRoot: projectRoot})
}
