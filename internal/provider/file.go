package provider

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/3-lines-studio/stitch/internal/core"
)

const (
	MarkupExt   = ".html"
	MarkdownExt = ".md"
)

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	FileExists(path string) bool
}

// FileProvider looks a component up across core.SearchPaths. At each stem a
// .html file wins over a .md file; markdown is rendered to HTML with raw HTML
// and placeholders passed through.
type FileProvider struct {
	fs       FileSystem
	markdown goldmark.Markdown
}

func NewFileProvider(fs FileSystem) *FileProvider {
	return &FileProvider{
		fs: fs,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func (p *FileProvider) Resolve(ctx context.Context, req Request) (string, error) {
	if err := core.ValidateIdentifier(req.Identifier); err != nil {
		return "", fmt.Errorf("%w: %q: %v", core.ErrNotFound, req.Identifier, err)
	}

	for _, stem := range core.SearchPaths(req.RootDir, req.ProjectRoot, req.ComponentsDir, req.Identifier) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if markup := stem + MarkupExt; p.fs.FileExists(markup) {
			data, err := p.fs.ReadFile(markup)
			if err != nil {
				return "", fmt.Errorf("failed to read %s: %w", markup, err)
			}
			return string(data), nil
		}

		if md := stem + MarkdownExt; p.fs.FileExists(md) {
			data, err := p.fs.ReadFile(md)
			if err != nil {
				return "", fmt.Errorf("failed to read %s: %w", md, err)
			}
			return p.renderMarkdown(data)
		}
	}

	return "", notFound(req.Identifier)
}

func (p *FileProvider) renderMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := p.markdown.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
