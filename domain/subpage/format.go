package subpage

import (
	"strings"

	"github.com/helixml/splist/domain/page"
)

// MaxEntries caps the number of list entries, the parent entry included.
const MaxEntries = 200

// Formatter renders a Listing as wikitext.
type Formatter struct {
	opts Options
}

// NewFormatter creates a Formatter for the given options.
func NewFormatter(opts Options) Formatter {
	return Formatter{opts: opts}
}

// Format returns the listing as list markup, or "" when nothing is listed.
// Entries are indented by their depth below the parent; with ListBar they
// are joined on a single line instead.
func (f Formatter) Format(listing Listing) string {
	parent := listing.Parent()
	style := f.opts.ListStyle()
	token := style.Token()

	entries := make([]string, 0, min(listing.Len()+1, MaxEntries))

	if f.opts.ShowParent() {
		entry := "[[" + parent.PrefixedText() + "|" + parent.Text() + "]]"
		if style != ListBar {
			entry = token + entry
		}
		entries = append(entries, strings.TrimSpace(entry))
	}

	parentDepth := parent.Depth()
	for _, title := range listing.titles {
		if len(entries) >= MaxEntries {
			break
		}

		depth := title.Depth() - parentDepth
		if f.opts.KidsOnly() && depth >= 2 {
			continue
		}
		if f.opts.ShowParent() {
			depth++
		}

		var b strings.Builder
		if style == ListBar {
			if len(entries) > 0 {
				b.WriteString(token)
			}
		} else {
			b.WriteString(strings.Repeat(token, max(depth, 0)))
		}
		b.WriteString(" [[")
		b.WriteString(title.PrefixedText())
		b.WriteString("|")
		b.WriteString(f.linkText(parent, title))
		b.WriteString("]]")

		// Leading whitespace would turn the line into preformatted text.
		entries = append(entries, strings.TrimSpace(b.String()))
	}

	if len(entries) == 0 {
		return ""
	}

	sep := "\n"
	if style == ListBar {
		sep = ""
	}
	// The leading newline keeps the first list marker at the start of a line.
	return "\n" + strings.Join(entries, sep)
}

func (f Formatter) linkText(parent, title page.Title) string {
	text := title.Text()
	switch f.opts.PathStyle() {
	case PathFull:
		return text
	case PathNotParent:
		return strings.TrimPrefix(text, parent.Text()+page.Separator)
	default:
		if i := strings.LastIndex(text, page.Separator); i >= 0 {
			return text[i+1:]
		}
		return text
	}
}
