package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/splist"
	"github.com/helixml/splist/application/service"
	"github.com/helixml/splist/domain/page"
	"github.com/helixml/splist/domain/subpage"
	"github.com/helixml/splist/infrastructure/api/jsonapi"
	"github.com/helixml/splist/infrastructure/api/middleware"
	"github.com/helixml/splist/infrastructure/api/v1/dto"
)

// SubpagesRouter handles subpage listing endpoints.
type SubpagesRouter struct {
	client     *splist.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewSubpagesRouter creates a new SubpagesRouter.
func NewSubpagesRouter(client *splist.Client) *SubpagesRouter {
	return &SubpagesRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for subpage endpoints.
func (r *SubpagesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)

	return router
}

// List handles GET /api/v1/subpages.
//
// The page query parameter names the current page. Every other parameter
// is read as a listing option (sort, sortby, parent, ...). The response
// lists the subpages as page resources; meta carries the resolved parent,
// the generated wikitext, and any rejected options.
func (r *SubpagesRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	current, err := r.currentPage(req.URL.Query().Get("page"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	opts, diags := subpage.ParseOptions(queryArgs(req))

	listing, err := r.client.Subpages.Query(ctx, current, middleware.UserFrom(ctx), opts)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	wikitext := ""
	if !listing.Empty() {
		wikitext = subpage.NewFormatter(opts).Format(listing)
	}

	doc := jsonapi.NewListResponse(r.serializer.ListingResources(listing)).WithMeta(jsonapi.Meta{
		"parent":      listing.Parent().PrefixedText(),
		"count":       listing.Len(),
		"wikitext":    wikitext,
		"diagnostics": r.serializer.Diagnostics(diags),
	})
	middleware.WriteJSON(w, http.StatusOK, doc)
}

func (r *SubpagesRouter) currentPage(text string) (page.Title, error) {
	if strings.TrimSpace(text) == "" {
		return page.Title{}, middleware.NewAPIError(http.StatusBadRequest, "page is required", nil)
	}
	return r.client.Namespaces().Parse(text)
}

// queryArgs returns the first value of every query parameter.
func queryArgs(req *http.Request) map[string]string {
	query := req.URL.Query()
	args := make(map[string]string, len(query))
	for key, values := range query {
		if key == "page" || len(values) == 0 {
			continue
		}
		args[key] = values[0]
	}
	return args
}

// RenderRouter handles listing rendering endpoints.
type RenderRouter struct {
	client     *splist.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewRenderRouter creates a new RenderRouter.
func NewRenderRouter(client *splist.Client) *RenderRouter {
	return &RenderRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for render endpoints.
func (r *RenderRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Render)

	return router
}

// Render handles POST /api/v1/render.
//
// An unusable parent is not an error here: the rendering falls back to
// the "no subpages" text, the same as an empty listing.
func (r *RenderRouter) Render(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.RenderRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}

	attrs := body.Data.Attributes
	if strings.TrimSpace(attrs.Page) == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "page is required", nil), r.logger)
		return
	}

	current, err := r.client.Namespaces().Parse(attrs.Page)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	out, err := r.client.Subpages.Render(ctx, service.NewRenderRequest(current, middleware.UserFrom(ctx), attrs.Options))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resource := r.serializer.RenderingResource(current, out.HTML(), out.Empty(), out.Listing(), out.Diagnostics())
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(resource))
}

// PagesRouter handles page index endpoints.
type PagesRouter struct {
	client *splist.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewPagesRouter creates a new PagesRouter.
func NewPagesRouter(client *splist.Client) *PagesRouter {
	return &PagesRouter{
		client: client,
		logger: client.Logger(),
		now:    time.Now,
	}
}

// Routes returns the chi router for page endpoints.
func (r *PagesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Import)

	return router
}

// Import handles POST /api/v1/pages. Pages are inserted or updated in a
// single transaction.
func (r *PagesRouter) Import(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.PageImportRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}

	now := r.now()
	rows := make([]page.Row, 0, len(body.Data))
	for i, d := range body.Data {
		title, err := r.client.Namespaces().Parse(d.Attributes.Title)
		if err != nil {
			middleware.WriteError(w, req, fmt.Errorf("page %d: %w", i+1, err), r.logger)
			return
		}
		touched := now
		if d.Attributes.Touched != nil && !d.Attributes.Touched.Time().IsZero() {
			touched = d.Attributes.Touched.Time()
		}
		rows = append(rows, page.NewRow(title.Namespace(), title.DBKey(), d.Attributes.Redirect, touched))
	}

	if err := r.client.Pages.Save(ctx, rows); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	r.logger.InfoContext(ctx, "pages imported", slog.Int("count", len(rows)))
	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewListResponse(nil).WithMeta(jsonapi.Meta{"saved": len(rows)}))
}
