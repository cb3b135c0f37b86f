// Package subpage parses listing options and formats subpage listings as
// wikitext.
package subpage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/helixml/splist/domain/page"
)

// Option keys recognised by ParseOptions.
const (
	KeyDebug      = "debug"
	KeySort       = "sort"
	KeySortBy     = "sortby"
	KeyListStyle  = "liststyle"
	KeyParent     = "parent"
	KeyShowPath   = "showpath"
	KeyKidsOnly   = "kidsonly"
	KeyShowParent = "showparent"
	KeyNoSubpages = "nosubpages"
)

// Keys lists the option keys in the order they are validated.
var Keys = []string{
	KeyDebug,
	KeySort,
	KeySortBy,
	KeyListStyle,
	KeyParent,
	KeyShowPath,
	KeyKidsOnly,
	KeyShowParent,
	KeyNoSubpages,
}

// currentPage is the parent value that selects the page being rendered.
const currentPage = -1

// ListStyle selects how entries are marked up.
type ListStyle int

// ListStyle values.
const (
	ListUnordered ListStyle = iota
	ListOrdered
	ListBar
)

// Token returns the markup repeated per depth level, or placed between
// entries for ListBar.
func (s ListStyle) Token() string {
	switch s {
	case ListOrdered:
		return "#"
	case ListBar:
		return "&#160;· "
	default:
		return "*"
	}
}

// String returns the option value naming the style.
func (s ListStyle) String() string {
	switch s {
	case ListOrdered:
		return "ordered"
	case ListBar:
		return "bar"
	default:
		return "unordered"
	}
}

// PathStyle selects how much of each title is shown as link text.
type PathStyle int

// PathStyle values.
const (
	// PathLeaf shows only the last segment, e.g. "Sub".
	PathLeaf PathStyle = iota
	// PathNotParent shows the path below the parent, e.g. "Entry/Sub".
	// The whole parent title is removed, not just the first segment, so
	// below parent "A/B" the page "A/B/C/D" shows as "C/D".
	PathNotParent
	// PathFull shows the whole title, e.g. "Mainpage/Entry/Sub".
	PathFull
)

// String returns the option value naming the style.
func (s PathStyle) String() string {
	switch s {
	case PathNotParent:
		return "notparent"
	case PathFull:
		return "full"
	default:
		return "no"
	}
}

// Diagnostic records an option whose value was rejected.
type Diagnostic struct {
	key   string
	value string
}

// NewDiagnostic creates a Diagnostic for key.
func NewDiagnostic(key, value string) Diagnostic {
	return Diagnostic{key: key, value: value}
}

// Key returns the offending option key.
func (d Diagnostic) Key() string { return d.key }

// Value returns the rejected value.
func (d Diagnostic) Value() string { return d.value }

// Error implements error.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("invalid value %q for %s", d.value, d.key)
}

// Options holds the validated listing options.
type Options struct {
	debug       bool
	descending  bool
	sortField   page.SortField
	listStyle   ListStyle
	parent      string
	hasParent   bool
	pathStyle   PathStyle
	kidsOnly    bool
	showParent  bool
	noSubpages  string
	hasFallback bool
}

// DefaultOptions returns the options used when no keys are given.
func DefaultOptions() Options {
	return Options{
		sortField: page.SortByTitle,
		listStyle: ListUnordered,
		pathStyle: PathLeaf,
	}
}

// ParseOptions validates user-supplied arguments. Invalid values keep their
// default and produce a Diagnostic; unknown keys are ignored.
func ParseOptions(args map[string]string) (Options, []Diagnostic) {
	opts := DefaultOptions()
	var diags []Diagnostic

	for _, key := range Keys {
		value, ok := args[key]
		if !ok {
			continue
		}
		if !opts.apply(key, value) {
			diags = append(diags, NewDiagnostic(key, value))
		}
	}

	return opts, diags
}

func (o *Options) apply(key, value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))

	switch key {
	case KeyDebug:
		switch value {
		case "true", "1":
			o.debug = true
		case "false", "0":
			o.debug = false
		default:
			return false
		}
	case KeySort:
		switch lower {
		case "asc":
			o.descending = false
		case "desc":
			o.descending = true
		default:
			return false
		}
	case KeySortBy:
		switch lower {
		case "title":
			o.sortField = page.SortByTitle
		case "lastedit":
			o.sortField = page.SortByLastEdit
		default:
			return false
		}
	case KeyListStyle:
		switch lower {
		case "ordered":
			o.listStyle = ListOrdered
		case "unordered":
			o.listStyle = ListUnordered
		case "bar":
			o.listStyle = ListBar
		default:
			return false
		}
	case KeyParent:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n == currentPage {
			o.parent, o.hasParent = "", false
			return true
		}
		o.parent, o.hasParent = strings.TrimSpace(value), true
	case KeyShowPath:
		switch lower {
		case "no", "0", "false":
			o.pathStyle = PathLeaf
		case "notparent":
			o.pathStyle = PathNotParent
		case "full", "yes", "1", "true":
			o.pathStyle = PathFull
		default:
			return false
		}
	case KeyKidsOnly:
		flag, ok := parseFlag(lower)
		if !ok {
			return false
		}
		o.kidsOnly = flag
	case KeyShowParent:
		flag, ok := parseFlag(lower)
		if !ok {
			return false
		}
		o.showParent = flag
	case KeyNoSubpages:
		o.noSubpages, o.hasFallback = value, true
	}
	return true
}

// parseFlag reads a yes/no option. Matching ignores case, and text that is
// neither a keyword nor the integer 0 or 1 is rejected rather than read as
// false, so "abc" produces a diagnostic and leaves the default.
func parseFlag(lower string) (bool, bool) {
	switch lower {
	case "true", "yes":
		return true, true
	case "false", "no", "":
		return false, true
	}
	n, err := strconv.Atoi(lower)
	if err != nil {
		return false, false
	}
	switch n {
	case 1:
		return true, true
	case 0:
		return false, true
	default:
		return false, false
	}
}

// Debug reports whether diagnostics are shown.
func (o Options) Debug() bool { return o.debug }

// Descending reports whether the listing is in reverse order.
func (o Options) Descending() bool { return o.descending }

// SortField returns the ordering column.
func (o Options) SortField() page.SortField { return o.sortField }

// ListStyle returns the list markup style.
func (o Options) ListStyle() ListStyle { return o.listStyle }

// Parent returns the explicit parent title text, and false when the page
// being rendered is the parent.
func (o Options) Parent() (string, bool) { return o.parent, o.hasParent }

// PathStyle returns the link text style.
func (o Options) PathStyle() PathStyle { return o.pathStyle }

// KidsOnly reports whether only direct children are listed.
func (o Options) KidsOnly() bool { return o.kidsOnly }

// ShowParent reports whether the parent is listed as the first entry.
func (o Options) ShowParent() bool { return o.showParent }

// NoSubpages returns the replacement text for an empty listing, and false
// when the localized default message should be used.
func (o Options) NoSubpages() (string, bool) { return o.noSubpages, o.hasFallback }
