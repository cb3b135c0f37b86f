package markup

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultArticlePath maps a page to its URL; $1 is replaced by the page key.
const DefaultArticlePath = "/wiki/$1"

var charRef = regexp.MustCompile(`^&(#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)

// ListRenderer renders listing wikitext as HTML. It understands list lines
// starting with * or #, [[target|label]] links, ''italic'' runs, and
// character references. Anything else is emitted as escaped text.
type ListRenderer struct {
	articlePath string
}

// NewListRenderer creates a ListRenderer linking pages through articlePath.
func NewListRenderer(articlePath string) ListRenderer {
	if articlePath == "" {
		articlePath = DefaultArticlePath
	}
	return ListRenderer{articlePath: articlePath}
}

type listLevel struct {
	marker byte
	list   *html.Node
	item   *html.Node
}

// Expand renders wikitext as an HTML fragment.
func (r ListRenderer) Expand(ctx context.Context, wikitext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var roots []*html.Node
	var stack []listLevel

	for _, line := range strings.Split(wikitext, "\n") {
		prefix := listPrefix(line)
		if prefix == "" {
			stack = nil
			if strings.TrimSpace(line) == "" {
				continue
			}
			p := element(atom.P)
			r.inline(p, strings.TrimSpace(line))
			roots = append(roots, p)
			continue
		}

		common := 0
		for common < len(stack) && common < len(prefix) && stack[common].marker == prefix[common] {
			common++
		}
		stack = stack[:common]

		for i := common; i < len(prefix); i++ {
			list := element(listAtom(prefix[i]))
			if i == 0 {
				roots = append(roots, list)
			} else {
				if stack[i-1].item == nil {
					stack[i-1].item = element(atom.Li)
					stack[i-1].list.AppendChild(stack[i-1].item)
				}
				stack[i-1].item.AppendChild(list)
			}
			stack = append(stack, listLevel{marker: prefix[i], list: list})
		}

		top := &stack[len(stack)-1]
		top.item = element(atom.Li)
		top.list.AppendChild(top.item)
		r.inline(top.item, strings.TrimSpace(line[len(prefix):]))
	}

	var b strings.Builder
	for i, node := range roots {
		if i > 0 {
			b.WriteByte('\n')
		}
		if err := html.Render(&b, node); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return b.String(), nil
}

func (r ListRenderer) inline(parent *html.Node, text string) {
	cur := parent
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			cur.AppendChild(&html.Node{Type: html.TextNode, Data: buf.String()})
			buf.Reset()
		}
	}

	for i := 0; i < len(text); {
		rest := text[i:]
		switch {
		case strings.HasPrefix(rest, "[["):
			end := strings.Index(rest[2:], "]]")
			if end < 0 {
				buf.WriteString(rest)
				i = len(text)
				continue
			}
			flush()
			cur.AppendChild(r.link(rest[2 : 2+end]))
			i += end + 4
		case strings.HasPrefix(rest, "''"):
			flush()
			if cur == parent {
				italic := element(atom.I)
				cur.AppendChild(italic)
				cur = italic
			} else {
				cur = parent
			}
			i += 2
		case rest[0] == '&':
			ref := charRef.FindString(rest)
			if ref == "" || html.UnescapeString(ref) == ref {
				buf.WriteByte('&')
				i++
				continue
			}
			flush()
			cur.AppendChild(&html.Node{Type: html.RawNode, Data: ref})
			i += len(ref)
		default:
			buf.WriteByte(rest[0])
			i++
		}
	}
	flush()
}

func (r ListRenderer) link(inner string) *html.Node {
	target, label, found := strings.Cut(inner, "|")
	target = strings.TrimPrefix(strings.TrimSpace(target), ":")
	if !found {
		label = target
	}

	a := element(atom.A)
	a.Attr = []html.Attribute{
		{Key: "href", Val: r.href(target)},
		{Key: "title", Val: target},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: label})
	return a
}

func (r ListRenderer) href(target string) string {
	key := url.PathEscape(strings.ReplaceAll(target, " ", "_"))
	key = strings.ReplaceAll(key, "%2F", "/")
	return strings.ReplaceAll(r.articlePath, "$1", key)
}

func listPrefix(line string) string {
	n := 0
	for n < len(line) && (line[n] == '*' || line[n] == '#') {
		n++
	}
	return line[:n]
}

func listAtom(marker byte) atom.Atom {
	if marker == '#' {
		return atom.Ol
	}
	return atom.Ul
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}
