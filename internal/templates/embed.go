package templates

import (
	"embed"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed all:minimal
var minimalFS embed.FS

//go:embed all:landing
var landingFS embed.FS

var ValidTemplates = []string{"minimal", "landing"}

var ErrInvalidTemplate = errors.New("invalid template name")

func GetTemplate(name string) (fs.FS, error) {
	switch name {
	case "minimal":
		return fs.Sub(minimalFS, "minimal")
	case "landing":
		return fs.Sub(landingFS, "landing")
	default:
		return nil, ErrInvalidTemplate
	}
}

type TemplateData struct {
	Project string
}

func ProcessFilename(filename string) (string, bool) {
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

// ProcessContent substitutes {{.Project}} in template files. Component
// placeholders such as {{ title }} are left for the compiler.
func ProcessContent(content []byte, isTemplate bool, data TemplateData) []byte {
	if !isTemplate {
		return content
	}
	return []byte(strings.ReplaceAll(string(content), "{{.Project}}", data.Project))
}

func DeriveProjectName(projectDir string) string {
	base := filepath.Base(projectDir)
	if base == "." || base == "/" || base == "" {
		return "mysite"
	}
	return base
}
