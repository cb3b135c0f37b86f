package persistence

import "github.com/helixml/splist/domain/page"

// PageMapper maps between domain page.Row and persistence PageModel.
type PageMapper struct{}

// ToDomain converts a PageModel to a page.Row.
func (m PageMapper) ToDomain(e PageModel) page.Row {
	return page.NewRow(page.Namespace(e.Namespace), e.Title, e.IsRedirect, e.Touched)
}

// ToModel converts a page.Row to a PageModel.
func (m PageMapper) ToModel(r page.Row) PageModel {
	return PageModel{
		Namespace:  int(r.Namespace()),
		Title:      r.DBKey(),
		IsRedirect: r.IsRedirect(),
		Touched:    r.Touched().UTC(),
	}
}
