package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/3-lines-studio/stitch/internal/core"
	"github.com/3-lines-studio/stitch/internal/provider"
)

const DefaultMaxDepth = 64

type CompileOptions struct {
	ComponentsDir string
	MaxDepth      int
}

// CompileService expands component tags to a fixed point. It holds no state
// between calls and is safe for concurrent use.
type CompileService struct {
	provider      provider.Provider
	logger        *slog.Logger
	componentsDir string
	maxDepth      int
}

func NewCompileService(p provider.Provider, logger *slog.Logger, opts CompileOptions) *CompileService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ComponentsDir == "" {
		opts.ComponentsDir = core.DefaultComponentsDir
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &CompileService{
		provider:      p,
		logger:        logger,
		componentsDir: opts.ComponentsDir,
		maxDepth:      opts.MaxDepth,
	}
}

// Compile resolves every component reference in html and then removes
// placeholders nothing bound. It never fails: missing or broken components
// become marker comments.
func (s *CompileService) Compile(ctx context.Context, html string, roots Roots) string {
	return core.StripUnbound(s.compile(ctx, html, roots, 0))
}

func (s *CompileService) compile(ctx context.Context, html string, roots Roots, depth int) string {
	if !core.HasReferences(html) {
		return html
	}

	html = s.expandChildBearing(ctx, html, roots, depth)
	return s.expandSelfClosing(ctx, html, roots, depth)
}

func (s *CompileService) expandChildBearing(ctx context.Context, html string, roots Roots, depth int) string {
	refs := core.ScanChildBearing(html)
	if len(refs) == 0 {
		return html
	}

	var b strings.Builder
	last := 0
	for _, ref := range refs {
		b.WriteString(html[last:ref.Start])
		b.WriteString(s.expand(ctx, ref, roots, depth))
		last = ref.End
	}
	b.WriteString(html[last:])
	return b.String()
}

func (s *CompileService) expandSelfClosing(ctx context.Context, html string, roots Roots, depth int) string {
	matches := core.ScanSelfClosing(html)
	if len(matches) == 0 {
		return html
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(html[last:m.Start])
		last = m.End

		ref, ok := core.ParseSelfClosingMatch(m)
		if !ok {
			s.logger.Debug("skipping malformed component tag", "tag", m.Tag)
			b.WriteString(m.Tag)
			continue
		}
		b.WriteString(s.expand(ctx, ref, roots, depth))
	}
	b.WriteString(html[last:])
	return b.String()
}

func (s *CompileService) expand(ctx context.Context, ref core.Reference, roots Roots, depth int) string {
	if depth >= s.maxDepth {
		s.logger.Error("component nesting too deep",
			"component", ref.Identifier,
			"max_depth", s.maxDepth,
			"error", core.ErrMaxDepth,
		)
		return core.MaxDepthMarker(ref.Identifier, s.maxDepth)
	}

	content, err := s.resolve(ctx, ref, roots)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.logger.Warn("compile cancelled",
				"component", ref.Identifier,
				"error", ctxErr,
			)
		} else if errors.Is(err, core.ErrNotFound) {
			s.logger.Warn("component not found",
				"component", ref.Identifier,
				"kind", ref.Kind.String(),
				"root", roots.RootDir,
			)
		} else {
			s.logger.Error("producer failed",
				"component", ref.Identifier,
				"error", err,
			)
		}
		return core.NotFoundMarker(ref.Identifier)
	}

	var bound string
	switch ref.Kind {
	case core.ChildBearing:
		bound = core.BindChildren(core.StripVariantDirective(content), ref.Children, ref.Props)
	default:
		variants := core.ExtractVariants(content)
		bound = core.BindSelfClosing(core.StripVariantDirective(content), ref.Props, variants)
	}

	return s.compile(ctx, bound, roots, depth+1)
}

func (s *CompileService) resolve(ctx context.Context, ref core.Reference, roots Roots) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.provider == nil {
		return "", core.ErrNotFound
	}

	return s.provider.Resolve(ctx, provider.Request{
		Identifier:    ref.Identifier,
		RootDir:       roots.RootDir,
		ProjectRoot:   roots.Project(),
		ComponentsDir: s.componentsDir,
		Props:         ref.Props,
	})
}
