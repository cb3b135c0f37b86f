package service

// Message keys used by the listing.
const (
	// MessageNoSubpages takes the parent link as its argument.
	MessageNoSubpages = "spl3_nosubpages"
	// MessageNoSubpagesPlain is used when there is no parent to link to.
	MessageNoSubpagesPlain = "spl3_nosubpages_plain"
	// MessageDebug takes the rejected option key as its argument.
	MessageDebug = "spl3_debug"
)

// Messages looks up localized interface text.
type Messages interface {
	// Text returns the message for key with args substituted.
	Text(key string, args ...any) string
}
