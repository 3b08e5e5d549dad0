package core

import (
	"regexp"
	"strings"
)

var variantDirectiveRe = regexp.MustCompile(`<!--\s*variants:\s*([\s\S]*?)\s*-->`)

// Variants maps a variant name to its space-joined class list.
type Variants map[string]string

// ExtractVariants reads the first `<!-- variants: a=x y, b=z -->` directive in
// content. Later directives are ignored.
func ExtractVariants(content string) Variants {
	variants := Variants{}

	m := variantDirectiveRe.FindStringSubmatch(content)
	if m == nil {
		return variants
	}

	for _, pair := range strings.Split(m[1], ",") {
		name, classes, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		classes = strings.TrimSpace(classes)
		if name == "" || classes == "" {
			continue
		}
		variants[name] = classes
	}

	return variants
}

// StripVariantDirective removes the directive ExtractVariants reads.
func StripVariantDirective(content string) string {
	loc := variantDirectiveRe.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[0]] + content[loc[1]:]
}
