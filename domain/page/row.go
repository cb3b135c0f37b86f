package page

import "time"

// Row is a single entry of the page index.
type Row struct {
	namespace  Namespace
	dbKey      string
	isRedirect bool
	touched    time.Time
}

// NewRow creates a new Row.
func NewRow(namespace Namespace, dbKey string, isRedirect bool, touched time.Time) Row {
	return Row{
		namespace:  namespace,
		dbKey:      dbKey,
		isRedirect: isRedirect,
		touched:    touched,
	}
}

// Namespace returns the namespace id.
func (r Row) Namespace() Namespace { return r.namespace }

// DBKey returns the stored title.
func (r Row) DBKey() string { return r.dbKey }

// IsRedirect reports whether the page is a redirect.
func (r Row) IsRedirect() bool { return r.isRedirect }

// Touched returns the last-modified time.
func (r Row) Touched() time.Time { return r.touched }
