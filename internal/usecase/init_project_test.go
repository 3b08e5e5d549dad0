package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/3-lines-studio/stitch/internal/adapters/fs"
)

func TestInitProject(t *testing.T) {
	for _, tmpl := range []string{"minimal", "landing"} {
		t.Run(tmpl, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "acme")

			out := NewInitService(fs.NewOSFileSystem(), &recordingCLI{}).InitProject(InitInput{ProjectDir: dir, Template: tmpl})
			if !out.Success {
				t.Fatalf("Expected success, got %v", out.Error)
			}

			index, err := os.ReadFile(filepath.Join(dir, "src", "index.html"))
			if err != nil {
				t.Fatalf("Expected generated index: %v", err)
			}
			if !strings.Contains(string(index), "<title>acme</title>") {
				t.Errorf("Expected project name substituted, got %s", index)
			}
			if _, err := os.Stat(filepath.Join(dir, "stitch.yaml")); err != nil {
				t.Errorf("Expected stitch.yaml: %v", err)
			}
			if _, err := os.Stat(filepath.Join(dir, "stitch.yaml.tmpl")); !os.IsNotExist(err) {
				t.Error("Expected .tmpl suffix stripped")
			}
		})
	}
}

func TestInitProjectScaffoldBuilds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	if out := NewInitService(fs.NewOSFileSystem(), &recordingCLI{}).InitProject(InitInput{ProjectDir: dir, Template: "landing"}); !out.Success {
		t.Fatalf("init failed: %v", out.Error)
	}

	layout := SiteLayout{
		Roots:     Roots{RootDir: filepath.Join(dir, "src"), ProjectRoot: dir},
		OutDir:    filepath.Join(dir, "dist"),
		PublicDir: filepath.Join(dir, "public"),
	}
	doctor := NewDoctorService(newPipeline(), fs.NewOSFileSystem(), &recordingCLI{})
	if out := doctor.Check(t.Context(), DoctorInput{Layout: layout}); !out.Healthy() {
		t.Errorf("Expected scaffold to be healthy, got %+v", out.Problems)
	}
}

func TestInitProjectRefusesNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, filepath.Join(dir, "existing.txt"), "x")

	out := NewInitService(fs.NewOSFileSystem(), &recordingCLI{}).InitProject(InitInput{ProjectDir: dir})
	if out.Success || !errors.Is(out.Error, ErrDirNotEmpty) {
		t.Errorf("Expected ErrDirNotEmpty, got %v", out.Error)
	}
}

func TestInitProjectInvalidTemplate(t *testing.T) {
	out := NewInitService(fs.NewOSFileSystem(), &recordingCLI{}).InitProject(InitInput{
		ProjectDir: filepath.Join(t.TempDir(), "x"),
		Template:   "nope",
	})
	if out.Success || !strings.Contains(out.Error.Error(), "invalid template") {
		t.Errorf("Expected invalid template error, got %v", out.Error)
	}
}
