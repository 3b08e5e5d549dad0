// Package app wires configuration into the engine and services shared by the
// stitch commands.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/stitch"
	"github.com/3-lines-studio/stitch/internal/config"
	"github.com/3-lines-studio/stitch/internal/usecase"
)

type Args struct {
	ConfigPath string
	Verbose    bool
	Rest       []string
}

// ParseArgs reads --config <path> and --verbose; everything else is returned
// in Rest in order.
func ParseArgs(args []string) (Args, error) {
	var out Args
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				return out, fmt.Errorf("%s requires a value", args[i])
			}
			out.ConfigPath = args[i+1]
			i++
		case "--verbose", "-v":
			out.Verbose = true
		default:
			out.Rest = append(out.Rest, args[i])
		}
	}
	return out, nil
}

func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func LoadConfig(path string) (*config.Config, error) {
	return config.Load(path, os.Getenv)
}

func Layout(cfg *config.Config) usecase.SiteLayout {
	return usecase.SiteLayout{
		Roots: usecase.Roots{
			RootDir:     cfg.Root,
			ProjectRoot: cfg.Project(),
		},
		ComponentsDir: cfg.ComponentsDir,
		OutDir:        cfg.OutDir,
		PublicDir:     cfg.PublicDir,
	}
}

func EngineConfig(cfg *config.Config) stitch.Config {
	return stitch.Config{
		ComponentsDir:     cfg.ComponentsDir,
		MaxDepth:          cfg.MaxDepth,
		InlineCSS:         cfg.Inline.CSS,
		InlineJS:          cfg.Inline.JS,
		DevClientPatterns: cfg.Inline.DevClientPatterns,
	}
}

func NewEngine(cfg *config.Config, logger *slog.Logger, mode stitch.Mode) *stitch.Engine {
	return stitch.New(EngineConfig(cfg), stitch.WithLogger(logger), stitch.WithMode(mode))
}

// WatchDirs lists the directories whose changes affect compiled pages.
func WatchDirs(cfg *config.Config) []string {
	dirs := []string{cfg.Root}
	project := cfg.Project()
	for _, dir := range []string{
		filepath.Join(project, "src", "components"),
		filepath.Join(project, "components"),
		cfg.PublicDir,
	} {
		if dir != "" && !within(dir, cfg.Root) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
