package subpage

import "errors"

// Errors returned when a listing cannot be produced. Both differ from a
// listing that simply has no entries.
var (
	ErrParentMissing = errors.New("parent page does not exist")
	ErrReadDenied    = errors.New("parent page is not readable")
)
