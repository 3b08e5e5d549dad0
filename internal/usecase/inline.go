package usecase

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/3-lines-studio/stitch/internal/core"
)

var (
	linkTagRe   = regexp.MustCompile(`(?i)<link\b[^>]*>`)
	scriptTagRe = regexp.MustCompile(`(?is)<script\b[^>]*\bsrc\s*=[^>]*>\s*</script\s*>`)
	scriptEndRe = regexp.MustCompile(`(?i)</script`)
	styleEndRe  = regexp.MustCompile(`(?i)</style`)
)

var DefaultDevClientPatterns = []string{"/@vite/client", "/__stitch/"}

// InlineService replaces local stylesheet and script references with their
// file contents. A tag that cannot be inlined is left exactly as written.
type InlineService struct {
	fs                FileSystem
	logger            *slog.Logger
	devClientPatterns []string
}

func NewInlineService(fs FileSystem, logger *slog.Logger, devClientPatterns []string) *InlineService {
	if logger == nil {
		logger = slog.Default()
	}
	if devClientPatterns == nil {
		devClientPatterns = DefaultDevClientPatterns
	}

	return &InlineService{
		fs:                fs,
		logger:            logger,
		devClientPatterns: devClientPatterns,
	}
}

func (s *InlineService) InlineStylesheets(doc string, roots Roots) string {
	return linkTagRe.ReplaceAllStringFunc(doc, func(tag string) string {
		attrs := tagAttributes(tag, atom.Link)
		if !isStylesheet(attrs["rel"]) {
			return tag
		}

		href := strings.TrimSpace(attrs["href"])
		if href == "" || core.IsExternalURL(href) {
			return tag
		}

		content, err := s.readAsset(href, roots)
		if err != nil {
			s.logger.Warn("stylesheet not inlined", "href", href, "error", err)
			return tag
		}

		content = styleEndRe.ReplaceAllString(content, `<\/style`)

		open := "<style>"
		if media := strings.TrimSpace(attrs["media"]); media != "" {
			open = fmt.Sprintf(`<style media="%s">`, html.EscapeString(media))
		}
		return open + content + "</style>"
	})
}

func (s *InlineService) InlineScripts(doc string, roots Roots) string {
	return scriptTagRe.ReplaceAllStringFunc(doc, func(tag string) string {
		attrs := tagAttributes(tag, atom.Script)

		src := strings.TrimSpace(attrs["src"])
		if src == "" || core.IsExternalURL(src) {
			return tag
		}
		if core.IsDevClientScript(src, s.devClientPatterns) {
			return tag
		}

		content, err := s.readAsset(src, roots)
		if err != nil {
			s.logger.Warn("script not inlined", "src", src, "error", err)
			return tag
		}

		content = scriptEndRe.ReplaceAllString(content, `<\/script`)

		open := "<script>"
		if t := attrs["type"]; t != "" {
			open = fmt.Sprintf(`<script type="%s">`, html.EscapeString(t))
		}
		return open + content + "</script>"
	})
}

func (s *InlineService) readAsset(ref string, roots Roots) (string, error) {
	for _, candidate := range core.AssetCandidates(roots.RootDir, roots.Project(), ref) {
		if !s.fs.FileExists(candidate) {
			continue
		}
		data, err := s.fs.ReadFile(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", candidate, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("asset %q not found", ref)
}

func isStylesheet(rel string) bool {
	for _, v := range strings.Fields(strings.ToLower(rel)) {
		if v == "stylesheet" {
			return true
		}
	}
	return false
}

// tagAttributes reads the attributes of the first start tag in tag when it is
// the expected element. Keys are lower-cased and values entity-decoded by the
// tokenizer.
func tagAttributes(tag string, want atom.Atom) map[string]string {
	z := html.NewTokenizer(strings.NewReader(tag))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return map[string]string{}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != want {
				return map[string]string{}
			}
			attrs := make(map[string]string, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs[a.Key] = a.Val
			}
			return attrs
		}
	}
}
