package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/helixml/splist"
	apimiddleware "github.com/helixml/splist/infrastructure/api/middleware"
	v1 "github.com/helixml/splist/infrastructure/api/v1"
	mcpinternal "github.com/helixml/splist/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestTimeout bounds the handling time of /api/v1 requests.
const RequestTimeout = 60 * time.Second

// APIServer provides an HTTP API backed by a splist Client.
type APIServer struct {
	client       *splist.Client
	corsOrigins  []string
	metrics      bool
	mcpVersion   string
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// APIServerOption configures an APIServer.
type APIServerOption func(*APIServer)

// WithCORSOrigins allows cross-origin requests from the given origins.
// No CORS headers are sent when the list is empty.
func WithCORSOrigins(origins []string) APIServerOption {
	return func(a *APIServer) {
		a.corsOrigins = origins
	}
}

// WithMetrics exposes Prometheus metrics on /metrics.
func WithMetrics(enabled bool) APIServerOption {
	return func(a *APIServer) {
		a.metrics = enabled
	}
}

// WithMCP serves the Model Context Protocol on /mcp, reporting version
// to clients.
func WithMCP(version string) APIServerOption {
	return func(a *APIServer) {
		a.mcpVersion = version
	}
}

// NewAPIServer creates a new APIServer wired to the given splist Client.
func NewAPIServer(client *splist.Client, opts ...APIServerOption) *APIServer {
	a := &APIServer{
		client: client,
		logger: client.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
// If not called, ListenAndServe creates a default router with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	if len(a.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: a.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", apimiddleware.CorrelationIDHeader, apimiddleware.UserHeader, apimiddleware.GroupsHeader},
			ExposedHeaders: []string{apimiddleware.CorrelationIDHeader},
			MaxAge:         300,
		}))
	}

	router.Get("/healthz", a.health)

	if a.metrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(RequestTimeout))
		r.Use(apimiddleware.CorrelationID)
		r.Use(apimiddleware.Logging(a.logger))
		r.Use(apimiddleware.User)

		r.Mount("/subpages", v1.NewSubpagesRouter(c).Routes())
		r.Mount("/render", v1.NewRenderRouter(c).Routes())
		r.Mount("/pages", v1.NewPagesRouter(c).Routes())
	})

	// MCP streams its responses, so it stays outside the Timeout group.
	if a.mcpVersion != "" {
		mcpSrv := mcpinternal.NewServer(c.Subpages, c.Namespaces(), a.mcpVersion, a.logger)
		router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
	}
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	if a.client.Closed() {
		apimiddleware.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "closed"})
		return
	}
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	if a.routerCalled && a.router != nil {
		server.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(server.Router())
	}

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}
