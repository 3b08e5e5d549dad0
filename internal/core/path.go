package core

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

const DefaultComponentsDir = "components"

func NormalizePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p != "/" && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// NormalizeIdentifier converts a component identifier to forward slashes
// without a leading "./" or "/".
func NormalizeIdentifier(id string) string {
	id = strings.ReplaceAll(id, `\`, "/")
	id = strings.TrimPrefix(id, "./")
	id = strings.TrimLeft(id, "/")
	return path.Clean(id)
}

func ValidateIdentifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("identifier cannot be empty")
	}

	for _, part := range strings.Split(NormalizeIdentifier(id), "/") {
		if part == ".." {
			return fmt.Errorf("identifier cannot contain parent directory references")
		}
	}

	return nil
}

// ComponentBases lists the directories components are searched in, in
// precedence order:
//
//	<root>/<componentsDir>
//	<projectRoot>/src/components
//	<projectRoot>/components
//
// An empty projectRoot falls back to root. Duplicate directories are dropped.
func ComponentBases(root, projectRoot, componentsDir string) []string {
	if componentsDir == "" {
		componentsDir = DefaultComponentsDir
	}
	if projectRoot == "" {
		projectRoot = root
	}

	candidates := []string{
		filepath.Join(root, componentsDir),
		filepath.Join(projectRoot, "src", "components"),
		filepath.Join(projectRoot, "components"),
	}

	seen := make(map[string]bool, len(candidates))
	bases := make([]string, 0, len(candidates))
	for _, base := range candidates {
		if seen[base] {
			continue
		}
		seen[base] = true
		bases = append(bases, base)
	}
	return bases
}

// SearchPaths lists the file stems (no extension) a component identifier may
// live at, one per ComponentBases entry.
func SearchPaths(root, projectRoot, componentsDir, id string) []string {
	rel := filepath.FromSlash(NormalizeIdentifier(id))

	bases := ComponentBases(root, projectRoot, componentsDir)
	stems := make([]string, 0, len(bases))
	for _, base := range bases {
		stems = append(stems, filepath.Join(base, rel))
	}
	return stems
}

// PageCandidates maps a request path to the page files that may serve it,
// relative to the pages root.
func PageCandidates(requestPath string) []string {
	p := NormalizePath(requestPath)
	if p == "/" {
		return []string{"index.html"}
	}

	rel := strings.TrimPrefix(p, "/")
	if strings.HasSuffix(rel, ".html") {
		return []string{rel}
	}
	return []string{rel + ".html", path.Join(rel, "index.html")}
}

func IsExternalURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "//")
}

// AssetCandidates lists where a local stylesheet or script reference may be
// found on disk, in lookup order. Query strings and fragments are ignored.
func AssetCandidates(root, projectRoot, ref string) []string {
	if projectRoot == "" {
		projectRoot = root
	}

	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	rel := filepath.FromSlash(strings.TrimLeft(ref, "/"))

	return []string{
		filepath.Join(root, rel),
		filepath.Join(projectRoot, rel),
		filepath.Join(projectRoot, "public", rel),
		filepath.Join(projectRoot, "src", rel),
	}
}

// IsDevClientScript reports whether src points at a dev-tool client bootstrap
// that must never be inlined.
func IsDevClientScript(src string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(src, p) {
			return true
		}
	}
	return false
}
