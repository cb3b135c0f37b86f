package page

import "context"

// SortField selects the column subpages are ordered by.
type SortField int

// SortField values.
const (
	SortByTitle SortField = iota
	SortByLastEdit
)

// SubpageQuery describes a lookup of every non-redirect page below a parent.
type SubpageQuery struct {
	parent     Title
	sortField  SortField
	descending bool
}

// NewSubpageQuery creates a query for the subpages of parent.
func NewSubpageQuery(parent Title, field SortField, descending bool) SubpageQuery {
	return SubpageQuery{parent: parent, sortField: field, descending: descending}
}

// Parent returns the title whose subpages are requested.
func (q SubpageQuery) Parent() Title { return q.parent }

// SortField returns the ordering column.
func (q SubpageQuery) SortField() SortField { return q.sortField }

// Descending reports whether the order is reversed.
func (q SubpageQuery) Descending() bool { return q.descending }

// Store defines read and write access to the page index.
type Store interface {
	// Exists reports whether a page with this title is present.
	Exists(ctx context.Context, title Title) (bool, error)

	// Subpages returns the rows below the query's parent, in query order.
	Subpages(ctx context.Context, query SubpageQuery) ([]Row, error)

	// Save inserts or updates rows keyed by namespace and title.
	Save(ctx context.Context, rows []Row) error
}
