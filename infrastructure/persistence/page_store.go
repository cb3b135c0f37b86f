package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/helixml/splist/domain/page"
	"github.com/helixml/splist/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column names of the page table.
const (
	columnNamespace  = "page_namespace"
	columnTitle      = "page_title"
	columnIsRedirect = "page_is_redirect"
	columnTouched    = "page_touched"
)

// saveBatchSize bounds the rows sent per INSERT statement.
const saveBatchSize = 500

// PageStore implements page.Store using GORM.
type PageStore struct {
	database.Repository[page.Row, PageModel]
}

// NewPageStore creates a new PageStore.
func NewPageStore(db database.Database) PageStore {
	return PageStore{
		Repository: database.NewRepository[page.Row, PageModel](db, PageMapper{}, "page"),
	}
}

// Exists reports whether title is present in the page index.
func (s PageStore) Exists(ctx context.Context, title page.Title) (bool, error) {
	q := database.NewQuery().
		Equal(columnNamespace, int(title.Namespace())).
		Equal(columnTitle, title.DBKey())
	return s.Repository.Exists(ctx, q)
}

// Subpages returns the non-redirect pages whose title starts with the
// parent's title and a separator, restricted to the parent's namespace.
func (s PageStore) Subpages(ctx context.Context, query page.SubpageQuery) ([]page.Row, error) {
	parent := query.Parent()
	prefix := parent.DBKey() + page.Separator

	direction := database.SortAsc
	if query.Descending() {
		direction = database.SortDesc
	}

	q := database.NewQuery().
		Equal(columnNamespace, int(parent.Namespace())).
		Equal(columnIsRedirect, false).
		HasPrefix(columnTitle, prefix)

	switch query.SortField() {
	case page.SortByLastEdit:
		q = q.Order(columnTouched, direction).OrderAsc(columnTitle)
	default:
		q = q.Order(columnTitle, direction)
	}

	rows, err := s.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find subpages of %s: %w", parent.PrefixedText(), err)
	}

	// LIKE ignores case on some engines; titles are case-sensitive.
	matched := rows[:0]
	for _, row := range rows {
		if strings.HasPrefix(row.DBKey(), prefix) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// Save inserts rows, updating the redirect flag and touched time of pages
// that already exist.
func (s PageStore) Save(ctx context.Context, rows []page.Row) error {
	if len(rows) == 0 {
		return nil
	}

	models := make([]PageModel, len(rows))
	for i, row := range rows {
		models[i] = s.Mapper().ToModel(row)
	}

	return database.WithTransaction(ctx, s.Database(), func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: columnNamespace}, {Name: columnTitle}},
			DoUpdates: clause.AssignmentColumns([]string{columnIsRedirect, columnTouched}),
		}).CreateInBatches(&models, saveBatchSize)
		if result.Error != nil {
			return fmt.Errorf("save pages: %w", result.Error)
		}
		return nil
	})
}
