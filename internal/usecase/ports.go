package usecase

import (
	"context"

	"github.com/3-lines-studio/stitch/internal/adapters/fs"
)

type CLIOutput interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Printf(format string, args ...any)
	Eprintf(format string, args ...any)
	PrintHeader(msg string)
	PrintStep(emoji, msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)
}

type FileSystem = fs.FileSystem

// Roots locates a page: RootDir holds the page and its local components dir,
// ProjectRoot the shared src/components and components dirs. An empty
// ProjectRoot means RootDir.
type Roots struct {
	RootDir     string
	ProjectRoot string
}

func (r Roots) Project() string {
	if r.ProjectRoot == "" {
		return r.RootDir
	}
	return r.ProjectRoot
}

type PageCompiler interface {
	Compile(ctx context.Context, html string, roots Roots) string
}

// PageBuilder produces the final emitted document: compiled and, where
// configured, with local assets inlined.
type PageBuilder interface {
	Build(ctx context.Context, html string, roots Roots) string
}
