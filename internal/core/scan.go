package core

import (
	"regexp"
	"sort"
	"strings"
)

var (
	componentTokenRe = regexp.MustCompile(`<Component(?:\s[^>]*)?>|</Component\s*>`)
	childOpenRe      = regexp.MustCompile(`^<Component\s+name="([^"]+)"([^>]*)>$`)
	selfClosingRe    = regexp.MustCompile(`<Component(?:\s[^>]*?)?/>`)
)

// Match is a raw tag occurrence located by a scan, not yet parsed.
type Match struct {
	Start int
	End   int
	Tag   string
}

type frame struct {
	parent   int
	start    int
	end      int
	tag      string
	closedAt int
	closeEnd int
	valid    bool
}

// ScanChildBearing returns the outermost `<Component name="...">...</Component>`
// references of html in document order.
//
// Open and close tags are paired with a depth counter, so a component nested
// in another component's children (same name or not) closes on its own tag.
// Nested references are left inside Children; they are expanded when the
// parent's content is compiled. Unclosed open tags are ignored.
func ScanChildBearing(html string) []Reference {
	locs := componentTokenRe.FindAllStringIndex(html, -1)
	if len(locs) == 0 {
		return nil
	}

	var frames []frame
	var stack []int

	for _, loc := range locs {
		tok := html[loc[0]:loc[1]]

		if strings.HasPrefix(tok, "</") {
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			frames[top].closedAt = loc[0]
			frames[top].closeEnd = loc[1]
			continue
		}

		if strings.HasSuffix(tok, "/>") {
			continue
		}

		parent := -1
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}
		frames = append(frames, frame{
			parent:   parent,
			start:    loc[0],
			end:      loc[1],
			tag:      tok,
			closedAt: -1,
			valid:    childOpenRe.MatchString(tok),
		})
		stack = append(stack, len(frames)-1)
	}

	var refs []Reference
	for i, f := range frames {
		if !f.valid || f.closedAt < 0 || hasReferenceAncestor(frames, i) {
			continue
		}

		m := childOpenRe.FindStringSubmatch(f.tag)
		refs = append(refs, Reference{
			Kind:       ChildBearing,
			Identifier: m[1],
			Props:      ParseAttributes(m[2], false),
			Children:   strings.TrimSpace(html[f.end:f.closedAt]),
			Start:      f.start,
			End:        f.closeEnd,
		})
	}

	sort.Slice(refs, func(a, b int) bool { return refs[a].Start < refs[b].Start })
	return refs
}

func hasReferenceAncestor(frames []frame, i int) bool {
	for p := frames[i].parent; p >= 0; p = frames[p].parent {
		if frames[p].valid && frames[p].closedAt >= 0 {
			return true
		}
	}
	return false
}

// ScanSelfClosing returns every `<Component ... />` occurrence of html in
// document order. Tags are not validated here; see ParseSelfClosing.
func ScanSelfClosing(html string) []Match {
	locs := selfClosingRe.FindAllStringIndex(html, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match{Start: loc[0], End: loc[1], Tag: html[loc[0]:loc[1]]})
	}
	return matches
}

// ParseSelfClosingMatch turns a scanned match into a reference. It reports
// false for malformed tags and for tags without a src attribute.
func ParseSelfClosingMatch(m Match) (Reference, bool) {
	props, ok := ParseSelfClosing(m.Tag)
	if !ok {
		return Reference{}, false
	}

	src, ok := props.Get(PropSrc)
	if !ok || src == "" {
		return Reference{}, false
	}

	return Reference{
		Kind:       SelfClosing,
		Identifier: src,
		Props:      props,
		Start:      m.Start,
		End:        m.End,
	}, true
}

// HasReferences reports whether html still contains a component tag.
func HasReferences(html string) bool {
	return strings.Contains(html, "<Component")
}
