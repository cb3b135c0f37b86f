// Package page models wiki page titles and the page index they are stored in.
package page

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator divides a title into its subpage path segments.
const Separator = "/"

// ErrInvalidTitle indicates text that cannot name a page.
var ErrInvalidTitle = errors.New("invalid title")

const illegalTitleChars = "#<>[]|{}"

// Title identifies a page by namespace and DB key.
// The DB key stores spaces as underscores, the same way the page index does.
type Title struct {
	namespace Namespace
	nsText    string
	dbKey     string
}

// Parse turns user-supplied text such as "Help:Getting started/Install"
// into a Title.
func (n Namespaces) Parse(text string) (Title, error) {
	normalized := normalizeText(text)
	normalized = strings.TrimPrefix(normalized, ":")

	ns := NamespaceMain
	rest := normalized
	if prefix, after, found := strings.Cut(normalized, ":"); found {
		if id, ok := n.Lookup(prefix); ok && strings.TrimSpace(prefix) != "" {
			ns = id
			rest = strings.TrimSpace(after)
		}
	}

	if rest == "" {
		return Title{}, fmt.Errorf("%w: %q is empty", ErrInvalidTitle, text)
	}
	if strings.ContainsAny(rest, illegalTitleChars) {
		return Title{}, fmt.Errorf("%w: %q contains an illegal character", ErrInvalidTitle, text)
	}

	return n.Title(ns, upperFirst(rest))
}

// Title builds a Title from a namespace id and a DB key or display text.
func (n Namespaces) Title(ns Namespace, key string) (Title, error) {
	name, ok := n.Name(ns)
	if !ok {
		return Title{}, fmt.Errorf("%w: unknown namespace %d", ErrInvalidTitle, ns)
	}
	key = strings.ReplaceAll(strings.TrimSpace(key), " ", "_")
	if key == "" {
		return Title{}, fmt.Errorf("%w: empty key", ErrInvalidTitle)
	}
	return Title{namespace: ns, nsText: name, dbKey: key}, nil
}

// Namespace returns the namespace id.
func (t Title) Namespace() Namespace { return t.namespace }

// NamespaceText returns the namespace name, empty for the main namespace.
func (t Title) NamespaceText() string { return t.nsText }

// DBKey returns the title as stored in the page index.
func (t Title) DBKey() string { return t.dbKey }

// Text returns the title without namespace, with spaces.
func (t Title) Text() string { return strings.ReplaceAll(t.dbKey, "_", " ") }

// PrefixedText returns the title with its namespace prefix, with spaces.
func (t Title) PrefixedText() string {
	if t.nsText == "" {
		return t.Text()
	}
	return t.nsText + ":" + t.Text()
}

// PrefixedDBKey returns the namespace-prefixed DB key.
func (t Title) PrefixedDBKey() string {
	return strings.ReplaceAll(t.PrefixedText(), " ", "_")
}

// Depth returns the number of separators in the prefixed title.
func (t Title) Depth() int {
	return strings.Count(t.PrefixedText(), Separator)
}

// IsZero reports whether the title is unset.
func (t Title) IsZero() bool { return t.dbKey == "" }

// Equal reports whether both titles name the same page.
func (t Title) Equal(other Title) bool {
	return t.namespace == other.namespace && t.dbKey == other.dbKey
}

// IsSubpageOf reports whether t lies below parent in the same namespace.
func (t Title) IsSubpageOf(parent Title) bool {
	return t.namespace == parent.namespace &&
		strings.HasPrefix(t.dbKey, parent.dbKey+Separator)
}

// String returns the prefixed text.
func (t Title) String() string { return t.PrefixedText() }

func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "_", " ")
	return strings.Join(strings.FieldsFunc(text, unicode.IsSpace), " ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
