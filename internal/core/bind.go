package core

import (
	"regexp"
	"strings"
)

var unboundPlaceholderRe = regexp.MustCompile(`\{\{\s*[\w-]+\s*\}\}`)

func placeholderRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(name) + `\s*\}\}`)
}

// ReplacePlaceholder substitutes every `{{ name }}` in content with value,
// taken literally.
func ReplacePlaceholder(content, name, value string) string {
	if !strings.Contains(content, "{{") {
		return content
	}
	return placeholderRe(name).ReplaceAllLiteralString(content, value)
}

// BindChildren fills a child-bearing component. Children go in before props
// so a prop value is never read as a children slot.
func BindChildren(content, children string, props Props) string {
	out := ReplacePlaceholder(content, ChildrenPlaceholder, children)
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		out = ReplacePlaceholder(out, key, value)
	}
	return out
}

// BindSelfClosing fills a self-closing component. The selected variant's
// classes go in first, then props except src and variant, then any remaining
// variantClasses slot is emptied.
func BindSelfClosing(content string, props Props, variants Variants) string {
	out := content

	if name, ok := props.Get(PropVariant); ok {
		if classes, ok := variants[name]; ok {
			out = ReplacePlaceholder(out, VariantPlaceholder, classes)
		}
	}

	for _, key := range props.Keys() {
		if key == PropSrc || key == PropVariant {
			continue
		}
		value, _ := props.Get(key)
		out = ReplacePlaceholder(out, key, value)
	}

	return ReplacePlaceholder(out, VariantPlaceholder, "")
}

// StripUnbound removes every placeholder still present in html.
func StripUnbound(html string) string {
	if !strings.Contains(html, "{{") {
		return html
	}
	return unboundPlaceholderRe.ReplaceAllString(html, "")
}
