package core

import (
	"errors"
	"fmt"
	"regexp"
)

type Kind int

const (
	ChildBearing Kind = iota
	SelfClosing
)

func (k Kind) String() string {
	if k == SelfClosing {
		return "self-closing"
	}
	return "child-bearing"
}

const (
	PropSrc     = "src"
	PropName    = "name"
	PropVariant = "variant"

	ChildrenPlaceholder = "children"
	VariantPlaceholder  = "variantClasses"
)

var (
	ErrNotFound = errors.New("component not found")
	ErrMaxDepth = errors.New("maximum component depth exceeded")
)

// Reference is one component tag occurrence. Start and End are byte offsets
// of the whole tag (including children and closing tag) in the scanned text.
type Reference struct {
	Kind       Kind
	Identifier string
	Props      Props
	Children   string
	Start      int
	End        int
}

func (r Reference) Span(html string) string {
	return html[r.Start:r.End]
}

// ProducerProps is the props view handed to dynamic content producers.
func (r Reference) ProducerProps() Props {
	return r.Props.Without(PropSrc, PropName)
}

func NotFoundMarker(identifier string) string {
	return fmt.Sprintf(`<!-- Component "%s" not found -->`, identifier)
}

func MaxDepthMarker(identifier string, maxDepth int) string {
	return fmt.Sprintf(`<!-- Component "%s" exceeds max depth %d -->`, identifier, maxDepth)
}

var markerRe = regexp.MustCompile(`<!-- Component "([^"]*)" (not found|exceeds max depth \d+) -->`)

// Unresolved is a marker comment left in compiled output.
type Unresolved struct {
	Identifier string
	Reason     string
}

// FindUnresolved lists the markers in compiled html in document order.
func FindUnresolved(html string) []Unresolved {
	var out []Unresolved
	for _, m := range markerRe.FindAllStringSubmatch(html, -1) {
		out = append(out, Unresolved{Identifier: m[1], Reason: m[2]})
	}
	return out
}
