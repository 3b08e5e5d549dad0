package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/3-lines-studio/stitch/internal/adapters/cli"
	"github.com/3-lines-studio/stitch/internal/core"
)

var ErrNoPages = errors.New("no pages found")

type BuildInput struct {
	Layout SiteLayout
	Gzip   bool
}

type BuildOutput struct {
	Success bool
	Pages   []string
	Error   error
}

type BuildService struct {
	builder PageBuilder
	fs      FileSystem
	cli     CLIOutput
	logger  *slog.Logger
}

func NewBuildService(builder PageBuilder, fs FileSystem, cli CLIOutput, logger *slog.Logger) *BuildService {
	if logger == nil {
		logger = slog.Default()
	}

	return &BuildService{
		builder: builder,
		fs:      fs,
		cli:     cli,
		logger:  logger,
	}
}

func (s *BuildService) BuildSite(ctx context.Context, input BuildInput) BuildOutput {
	s.cli.PrintHeader("Stitch Build")

	layout := input.Layout
	if layout.OutDir == "" {
		return BuildOutput{Success: false, Error: fmt.Errorf("output directory is required")}
	}

	files, err := scanSite(s.fs, layout)
	if err != nil {
		return BuildOutput{Success: false, Error: fmt.Errorf("failed to scan pages: %w", err)}
	}
	pages := files.Pages
	if len(pages) == 0 {
		return BuildOutput{Success: false, Error: fmt.Errorf("%w in %s", ErrNoPages, layout.RootDir)}
	}

	report := cli.NewBuildReport(s.cli, layout.OutDir)
	report.SetPageCount(len(pages))

	stepDirs := report.StartStep("Creating output directory")
	if err := s.fs.MkdirAll(layout.OutDir, 0755); err != nil {
		report.EndStep(stepDirs, false, err.Error())
		return BuildOutput{Success: false, Error: fmt.Errorf("failed to create output dir: %w", err)}
	}
	report.EndStep(stepDirs, true, "")

	stepPages := report.StartStep("Compiling pages")
	built := make([]string, 0, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			report.EndStep(stepPages, false, err.Error())
			return BuildOutput{Success: false, Pages: built, Error: err}
		}

		unresolved, err := s.buildPage(ctx, layout, page, input.Gzip)
		if err != nil {
			report.AddError(page, "Failed to build page", []string{err.Error()})
			continue
		}

		for _, u := range unresolved {
			report.AddUnresolved(page, u.Identifier, u.Reason)
		}

		built = append(built, page)
	}
	report.EndStep(stepPages, len(built) == len(pages), "")

	if len(files.Assets) > 0 {
		stepAssets := report.StartStep("Copying assets")
		if err := s.copyAssets(layout, files.Assets); err != nil {
			report.AddWarning("Assets", "Failed to copy assets", []string{err.Error()})
			report.EndStep(stepAssets, false, err.Error())
		} else {
			report.EndStep(stepAssets, true, "")
		}
	}

	if layout.PublicDir != "" {
		stepPublic := report.StartStep("Copying public assets")
		if err := s.copyPublicDir(layout.PublicDir, layout.OutDir); err != nil {
			report.AddWarning("Public assets", "Failed to copy public assets", []string{err.Error()})
			report.EndStep(stepPublic, false, err.Error())
		} else {
			report.EndStep(stepPublic, true, "")
		}
	}

	report.Render()

	if report.HasFailures() {
		return BuildOutput{Success: false, Pages: built, Error: fmt.Errorf("build failed")}
	}

	return BuildOutput{Success: true, Pages: built}
}

func (s *BuildService) buildPage(ctx context.Context, layout SiteLayout, page string, gz bool) ([]core.Unresolved, error) {
	src := filepath.Join(layout.RootDir, page)
	data, err := s.fs.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}

	out := s.builder.Build(ctx, string(data), layout.Roots)

	dst := filepath.Join(layout.OutDir, page)
	if err := s.writeFile(dst, []byte(out), gz); err != nil {
		return nil, err
	}

	s.logger.Debug("page built", "page", page, "out", dst, "bytes", len(out))
	return core.FindUnresolved(out), nil
}

func (s *BuildService) writeFile(dst string, data []byte, gz bool) error {
	if err := s.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(dst), err)
	}
	if err := s.fs.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", dst, err)
	}
	if !gz {
		return nil
	}

	compressed, err := gzipBytes(data)
	if err != nil {
		return fmt.Errorf("failed to compress %s: %w", dst, err)
	}
	if err := s.fs.WriteFile(dst+".gz", compressed, 0644); err != nil {
		return fmt.Errorf("failed to write file %s.gz: %w", dst, err)
	}
	return nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *BuildService) copyAssets(layout SiteLayout, assets []string) error {
	for _, rel := range assets {
		src := filepath.Join(layout.RootDir, rel)
		data, err := s.fs.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", src, err)
		}
		if err := s.writeFile(filepath.Join(layout.OutDir, rel), data, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *BuildService) copyPublicDir(src, dst string) error {
	if _, err := s.fs.ReadDir(src); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", src, err)
	}

	return s.fs.WalkDir(src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if err := s.fs.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			return nil
		}

		data, err := s.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if err := s.fs.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", target, err)
		}
		return nil
	})
}
