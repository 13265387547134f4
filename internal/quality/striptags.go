// internal/quality/striptags.go
package quality

import "strings"

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// StripMarkup reduces HTML or markdown content to plain text for analysis.
// Tags are dropped, common entities decoded, markdown emphasis markers
// removed. Block tags are replaced with a space so adjacent words do not
// fuse together.
func StripMarkup(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case inTag:
			// skip
		case r == '*' || r == '_' || r == '#' || r == '`':
			// markdown emphasis and heading markers
		default:
			b.WriteRune(r)
		}
	}

	text := entityReplacer.Replace(b.String())
	return strings.Join(strings.Fields(text), " ")
}
