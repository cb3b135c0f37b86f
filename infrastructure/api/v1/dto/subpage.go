package dto

import "github.com/helixml/splist/infrastructure/api/jsonapi"

// RenderAttributes represents render request attributes in JSON:API format.
type RenderAttributes struct {
	Page    string            `json:"page"`
	Options map[string]string `json:"options,omitempty"`
}

// RenderData represents render request data in JSON:API format.
type RenderData struct {
	Type       string           `json:"type"`
	Attributes RenderAttributes `json:"attributes"`
}

// RenderRequest represents a JSON:API render request.
type RenderRequest struct {
	Data RenderData `json:"data"`
}

// PageAttributes represents a page to be added to the index.
type PageAttributes struct {
	Title    string            `json:"title"`
	Redirect bool              `json:"redirect,omitempty"`
	Touched  *jsonapi.DateTime `json:"touched,omitempty"`
}

// PageData represents page data in JSON:API format.
type PageData struct {
	Type       string         `json:"type"`
	Attributes PageAttributes `json:"attributes"`
}

// PageImportRequest represents a JSON:API request adding pages to the index.
type PageImportRequest struct {
	Data []PageData `json:"data"`
}
