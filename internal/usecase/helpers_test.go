package usecase

import (
	"context"
	"fmt"

	"github.com/3-lines-studio/stitch/internal/adapters/fs"
	"github.com/3-lines-studio/stitch/internal/provider"
)

type recordingCLI struct {
	lines []string
}

func (c *recordingCLI) Green(text string) string  { return text }
func (c *recordingCLI) Yellow(text string) string { return text }
func (c *recordingCLI) Red(text string) string    { return text }
func (c *recordingCLI) Gray(text string) string   { return text }

func (c *recordingCLI) Printf(format string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}
func (c *recordingCLI) Eprintf(format string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func (c *recordingCLI) PrintHeader(msg string) { c.lines = append(c.lines, msg) }
func (c *recordingCLI) PrintStep(emoji, msg string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(msg, args...))
}
func (c *recordingCLI) PrintSuccess(msg string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(msg, args...))
}
func (c *recordingCLI) PrintWarning(msg string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(msg, args...))
}
func (c *recordingCLI) PrintError(msg string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(msg, args...))
}
func (c *recordingCLI) PrintFile(path string) { c.lines = append(c.lines, path) }
func (c *recordingCLI) PrintDone(msg string)  { c.lines = append(c.lines, msg) }

type pipeline struct {
	compiler *CompileService
	inliner  *InlineService
}

func newPipeline() pipeline {
	osfs := fs.NewOSFileSystem()
	return pipeline{
		compiler: NewCompileService(provider.NewFileProvider(osfs), discardLogger(), CompileOptions{}),
		inliner:  NewInlineService(osfs, discardLogger(), nil),
	}
}

func (p pipeline) Compile(ctx context.Context, html string, roots Roots) string {
	return p.compiler.Compile(ctx, html, roots)
}

func (p pipeline) Build(ctx context.Context, html string, roots Roots) string {
	out := p.compiler.Compile(ctx, html, roots)
	out = p.inliner.InlineStylesheets(out, roots)
	return p.inliner.InlineScripts(out, roots)
}
