package usecase

import (
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/stitch/internal/core"
)

// SiteLayout names the directories a site is laid out in. OutDir and
// PublicDir are never scanned for pages even when they sit under RootDir.
type SiteLayout struct {
	Roots
	ComponentsDir string
	OutDir        string
	PublicDir     string
}

type siteFiles struct {
	Pages  []string
	Assets []string
}

// findPages lists *.html files under the root, relative to it, in lexical
// order. Every component search directory is skipped, as are output, public
// and hidden directories.
func findPages(fsys FileSystem, layout SiteLayout) ([]string, error) {
	files, err := scanSite(fsys, layout)
	if err != nil {
		return nil, err
	}
	return files.Pages, nil
}

// scanSite splits the files under the root into pages and the other files
// emitted next to them.
func scanSite(fsys FileSystem, layout SiteLayout) (siteFiles, error) {
	skip := map[string]bool{}
	for _, base := range core.ComponentBases(layout.RootDir, layout.Project(), layout.ComponentsDir) {
		skip[filepath.Clean(base)] = true
	}
	skip[filepath.Clean(filepath.Join(layout.RootDir, "public"))] = true
	if layout.OutDir != "" {
		skip[filepath.Clean(layout.OutDir)] = true
	}
	if layout.PublicDir != "" {
		skip[filepath.Clean(layout.PublicDir)] = true
	}

	var files siteFiles
	err := fsys.WalkDir(layout.RootDir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if filepath.Clean(path) == filepath.Clean(layout.RootDir) {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules" || skip[filepath.Clean(path)] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(layout.RootDir, path)
		if err != nil {
			return err
		}
		if strings.EqualFold(filepath.Ext(path), ".html") {
			files.Pages = append(files.Pages, rel)
		} else if !strings.HasPrefix(d.Name(), ".") {
			files.Assets = append(files.Assets, rel)
		}
		return nil
	})
	if err != nil {
		return siteFiles{}, err
	}

	return files, nil
}
