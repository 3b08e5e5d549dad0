package usecase

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/3-lines-studio/stitch/internal/templates"
)

var ErrDirNotEmpty = errors.New("directory is not empty")

type InitInput struct {
	ProjectDir string
	Template   string
}

type InitOutput struct {
	Success bool
	Files   []string
	Error   error
}

type InitService struct {
	fs  FileSystem
	cli CLIOutput
}

func NewInitService(fs FileSystem, cli CLIOutput) *InitService {
	return &InitService{
		fs:  fs,
		cli: cli,
	}
}

func (s *InitService) InitProject(input InitInput) InitOutput {
	s.cli.PrintHeader("Stitch Init")

	entries, err := s.fs.ReadDir(input.ProjectDir)
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return InitOutput{Success: false, Error: fmt.Errorf("failed to read directory: %w", err)}
	}
	if len(entries) > 0 {
		return InitOutput{Success: false, Error: fmt.Errorf("%w: %s", ErrDirNotEmpty, input.ProjectDir)}
	}

	templateName := input.Template
	if templateName == "" {
		templateName = "minimal"
	}

	templateFS, err := templates.GetTemplate(templateName)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidTemplate) {
			return InitOutput{Success: false, Error: fmt.Errorf("invalid template '%s' (available: %v)", templateName, templates.ValidTemplates)}
		}
		return InitOutput{Success: false, Error: err}
	}

	if err := s.fs.MkdirAll(input.ProjectDir, 0755); err != nil {
		return InitOutput{Success: false, Error: fmt.Errorf("failed to create project directory: %w", err)}
	}

	data := templates.TemplateData{
		Project: templates.DeriveProjectName(input.ProjectDir),
	}

	var created []string
	err = iofs.WalkDir(templateFS, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			targetDir := filepath.Join(input.ProjectDir, filepath.FromSlash(path))
			if err := s.fs.MkdirAll(targetDir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetDir, err)
			}
			return nil
		}

		content, err := iofs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		name, isTemplate := templates.ProcessFilename(path)
		targetPath := filepath.Join(input.ProjectDir, filepath.FromSlash(name))

		if err := s.fs.WriteFile(targetPath, templates.ProcessContent(content, isTemplate, data), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		if isTemplate {
			s.cli.PrintFile(targetPath + " (generated)")
		} else {
			s.cli.PrintFile(targetPath)
		}
		created = append(created, name)
		return nil
	})
	if err != nil {
		return InitOutput{Success: false, Files: created, Error: err}
	}

	s.cli.PrintSuccess("Created %d files using '%s' template", len(created), templateName)
	return InitOutput{Success: true, Files: created}
}
