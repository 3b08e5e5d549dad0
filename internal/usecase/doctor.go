package usecase

import (
	"context"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/stitch/internal/core"
)

type Problem struct {
	File    string
	Message string
}

type DoctorInput struct {
	Layout SiteLayout
}

type DoctorOutput struct {
	Pages      int
	Components int
	Problems   []Problem
	Error      error
}

func (o DoctorOutput) Healthy() bool {
	return o.Error == nil && len(o.Problems) == 0
}

// DoctorService compiles every page without writing anything and reports
// references that resolve nowhere and component tags that cannot be parsed.
type DoctorService struct {
	compiler PageCompiler
	fs       FileSystem
	cli      CLIOutput
}

func NewDoctorService(compiler PageCompiler, fs FileSystem, cli CLIOutput) *DoctorService {
	return &DoctorService{
		compiler: compiler,
		fs:       fs,
		cli:      cli,
	}
}

func (s *DoctorService) Check(ctx context.Context, input DoctorInput) DoctorOutput {
	s.cli.PrintHeader("Stitch Doctor")

	layout := input.Layout
	pages, err := findPages(s.fs, layout)
	if err != nil {
		return DoctorOutput{Error: fmt.Errorf("failed to scan pages: %w", err)}
	}

	out := DoctorOutput{Pages: len(pages)}

	for _, page := range pages {
		path := filepath.Join(layout.RootDir, page)
		data, err := s.fs.ReadFile(path)
		if err != nil {
			out.Problems = append(out.Problems, Problem{File: page, Message: err.Error()})
			continue
		}

		out.Problems = append(out.Problems, malformedTags(page, string(data))...)

		compiled := s.compiler.Compile(ctx, string(data), layout.Roots)
		for _, u := range core.FindUnresolved(compiled) {
			out.Problems = append(out.Problems, Problem{
				File:    page,
				Message: fmt.Sprintf("component %q %s", u.Identifier, u.Reason),
			})
		}
	}

	components, problems := s.checkComponents(layout)
	out.Components = components
	out.Problems = append(out.Problems, problems...)

	s.report(out)
	return out
}

func (s *DoctorService) checkComponents(layout SiteLayout) (int, []Problem) {
	count := 0
	var problems []Problem
	for _, dir := range core.ComponentBases(layout.RootDir, layout.Project(), layout.ComponentsDir) {
		if _, err := s.fs.ReadDir(dir); err != nil {
			continue
		}

		_ = s.fs.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".html" && ext != ".md" {
				return nil
			}
			count++

			data, err := s.fs.ReadFile(path)
			if err != nil {
				problems = append(problems, Problem{File: path, Message: err.Error()})
				return nil
			}

			rel, err := filepath.Rel(layout.Project(), path)
			if err != nil {
				rel = path
			}
			problems = append(problems, malformedTags(rel, string(data))...)
			return nil
		})
	}

	return count, problems
}

func malformedTags(file, html string) []Problem {
	var problems []Problem
	for _, m := range core.ScanSelfClosing(html) {
		if _, ok := core.ParseSelfClosingMatch(m); !ok {
			problems = append(problems, Problem{
				File:    file,
				Message: fmt.Sprintf("component tag without src: %s", m.Tag),
			})
		}
	}
	return problems
}

func (s *DoctorService) report(out DoctorOutput) {
	s.cli.PrintSuccess("%d pages, %d components", out.Pages, out.Components)

	if len(out.Problems) == 0 {
		s.cli.PrintDone("No problems found")
		return
	}

	for _, p := range out.Problems {
		s.cli.PrintError("%s: %s", p.File, p.Message)
	}
	s.cli.PrintDone(fmt.Sprintf("%d problems found", len(out.Problems)))
}
