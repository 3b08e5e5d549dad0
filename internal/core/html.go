package core

import (
	"regexp"
	"strings"
)

var bodyCloseRe = regexp.MustCompile(`(?i)</body>`)

// InjectBeforeBodyEnd inserts snippet before the last </body>, or appends it
// when the document has none.
func InjectBeforeBodyEnd(html, snippet string) string {
	locs := bodyCloseRe.FindAllStringIndex(html, -1)
	if len(locs) == 0 {
		return html + snippet
	}

	at := locs[len(locs)-1][0]
	var b strings.Builder
	b.Grow(len(html) + len(snippet))
	b.WriteString(html[:at])
	b.WriteString(snippet)
	b.WriteString(html[at:])
	return b.String()
}
