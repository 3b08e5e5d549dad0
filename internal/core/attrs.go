package core

import "regexp"

var (
	wordAttrRe       = regexp.MustCompile(`(\w+)="([^"]*)"`)
	hyphenAttrRe     = regexp.MustCompile(`([\w-]+)="([^"]*)"`)
	selfClosingTagRe = regexp.MustCompile(`^<Component\s+([\s\S]*?)\s*/>$`)
)

// ParseAttributes reads name="value" pairs from a tag's attribute region.
// With hyphenated set, names may contain '-' (data-test="x"); otherwise only
// word characters are accepted. Values are returned verbatim.
func ParseAttributes(region string, hyphenated bool) Props {
	re := wordAttrRe
	if hyphenated {
		re = hyphenAttrRe
	}

	var props Props
	for _, m := range re.FindAllStringSubmatch(region, -1) {
		props.Set(m[1], m[2])
	}
	return props
}

// ParseSelfClosing parses a whole `<Component ... />` tag. It reports false
// when the tag does not have that shape.
func ParseSelfClosing(tag string) (Props, bool) {
	m := selfClosingTagRe.FindStringSubmatch(tag)
	if m == nil {
		return Props{}, false
	}
	return ParseAttributes(m[1], true), true
}
