package jsonapi

import (
	"strings"

	"github.com/helixml/splist/domain/page"
	"github.com/helixml/splist/domain/subpage"
)

// Resource types.
const (
	TypePage      = "page"
	TypeRendering = "rendering"
)

// PageAttributes describes a listed page.
type PageAttributes struct {
	Title     string `json:"title"`
	Namespace int    `json:"namespace"`
	Text      string `json:"text"`
	Leaf      string `json:"leaf"`
	Depth     int    `json:"depth"`
}

// DiagnosticAttributes describes an option that was rejected.
type DiagnosticAttributes struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RenderingAttributes describes a rendered listing.
type RenderingAttributes struct {
	HTML        string                 `json:"html"`
	Empty       bool                   `json:"empty"`
	Count       int                    `json:"count"`
	Diagnostics []DiagnosticAttributes `json:"diagnostics"`
}

// Serializer converts domain objects to JSON:API resources.
type Serializer struct{}

// NewSerializer creates a new Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// PageResource converts a title to a JSON:API resource. Depth is relative
// to parent.
func (s *Serializer) PageResource(title, parent page.Title) *Resource {
	text := title.Text()
	leaf := text
	if i := strings.LastIndex(text, page.Separator); i >= 0 {
		leaf = text[i+1:]
	}
	return NewResource(TypePage, title.PrefixedDBKey(), &PageAttributes{
		Title:     title.PrefixedText(),
		Namespace: int(title.Namespace()),
		Text:      text,
		Leaf:      leaf,
		Depth:     title.Depth() - parent.Depth(),
	})
}

// ListingResources converts the titles of a listing to JSON:API resources.
func (s *Serializer) ListingResources(listing subpage.Listing) []*Resource {
	titles := listing.Titles()
	result := make([]*Resource, len(titles))
	for i, t := range titles {
		result[i] = s.PageResource(t, listing.Parent())
	}
	return result
}

// Diagnostics converts option diagnostics to attributes.
func (s *Serializer) Diagnostics(diags []subpage.Diagnostic) []DiagnosticAttributes {
	result := make([]DiagnosticAttributes, len(diags))
	for i, d := range diags {
		result[i] = DiagnosticAttributes{Key: d.Key(), Value: d.Value()}
	}
	return result
}

// RenderingResource converts a rendered listing to a JSON:API resource
// identified by the page it was rendered for.
func (s *Serializer) RenderingResource(current page.Title, html string, empty bool, listing subpage.Listing, diags []subpage.Diagnostic) *Resource {
	return NewResource(TypeRendering, current.PrefixedDBKey(), &RenderingAttributes{
		HTML:        html,
		Empty:       empty,
		Count:       listing.Len(),
		Diagnostics: s.Diagnostics(diags),
	})
}
