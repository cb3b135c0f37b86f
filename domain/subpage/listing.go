package subpage

import (
	"slices"

	"github.com/helixml/splist/domain/page"
)

// Listing is the ordered set of subpages found below a parent.
type Listing struct {
	parent page.Title
	titles []page.Title
}

// NewListing creates a new Listing.
func NewListing(parent page.Title, titles []page.Title) Listing {
	if titles == nil {
		titles = []page.Title{}
	}
	return Listing{parent: parent, titles: titles}
}

// Parent returns the resolved parent title.
func (l Listing) Parent() page.Title { return l.parent }

// Titles returns a copy of the subpage titles in query order.
func (l Listing) Titles() []page.Title { return slices.Clone(l.titles) }

// Len returns the number of subpages.
func (l Listing) Len() int { return len(l.titles) }

// Empty reports whether no subpages were found.
func (l Listing) Empty() bool { return len(l.titles) == 0 }
