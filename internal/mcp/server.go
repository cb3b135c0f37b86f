// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/helixml/splist/application/service"
	"github.com/helixml/splist/domain/access"
	"github.com/helixml/splist/domain/page"
	"github.com/helixml/splist/domain/subpage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Lister provides subpage listing operations for MCP tools.
type Lister interface {
	Query(ctx context.Context, current page.Title, user access.User, opts subpage.Options) (subpage.Listing, error)
	Render(ctx context.Context, req service.RenderRequest) (service.Rendered, error)
}

// optionDescriptions documents the listing options accepted by both tools.
var optionDescriptions = map[string]string{
	subpage.KeySort:       "asc or desc (default: asc)",
	subpage.KeySortBy:     "title or lastedit (default: title)",
	subpage.KeyListStyle:  "unordered, ordered or bar (default: unordered)",
	subpage.KeyParent:     "Page whose subpages are listed instead of page; -1 for page itself",
	subpage.KeyShowPath:   "no, notparent or full (default: no)",
	subpage.KeyKidsOnly:   "yes to list direct children only",
	subpage.KeyShowParent: "yes to include the parent as the first entry",
	subpage.KeyNoSubpages: "Text shown when there is nothing to list",
	subpage.KeyDebug:      "1 to report rejected option values",
}

// Server wraps the MCP server with subpage tools.
type Server struct {
	mcpServer  *server.MCPServer
	lister     Lister
	namespaces page.Namespaces
	logger     *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
// Tools run as the anonymous user.
func NewServer(lister Lister, namespaces page.Namespaces, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		lister:     lister,
		namespaces: namespaces,
		logger:     logger,
	}

	mcpServer := server.NewMCPServer(
		"splist",
		version,
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	listTool := mcp.NewTool("list_subpages", toolOptions(
		"List the subpages of a wiki page as JSON, with the wikitext list they render to",
	)...)
	mcpServer.AddTool(listTool, s.handleList)

	renderTool := mcp.NewTool("render_subpages", toolOptions(
		"Render the subpages of a wiki page as an HTML list",
	)...)
	mcpServer.AddTool(renderTool, s.handleRender)
}

func toolOptions(description string) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("page",
			mcp.Required(),
			mcp.Description("Title of the current page, e.g. Help:Guide"),
		),
	}
	for _, key := range subpage.Keys {
		opts = append(opts, mcp.WithString(key, mcp.Description(optionDescriptions[key])))
	}
	return opts
}

// arguments returns the page title and the listing options of a call.
func (s *Server) arguments(request mcp.CallToolRequest) (page.Title, map[string]string, error) {
	text, err := request.RequireString("page")
	if err != nil {
		return page.Title{}, nil, errors.New("page is required")
	}
	current, err := s.namespaces.Parse(text)
	if err != nil {
		return page.Title{}, nil, err
	}

	args := make(map[string]string)
	for _, key := range subpage.Keys {
		if v := request.GetString(key, ""); v != "" {
			args[key] = v
		}
	}
	return current, args, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current, args, err := s.arguments(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts, diags := subpage.ParseOptions(args)
	listing, err := s.lister.Query(ctx, current, access.Anonymous(), opts)
	if err != nil {
		s.logger.WarnContext(ctx, "list subpages failed", slog.String("page", current.PrefixedText()), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("list subpages: %v", err)), nil
	}

	type listResult struct {
		Parent      string   `json:"parent"`
		Subpages    []string `json:"subpages"`
		Wikitext    string   `json:"wikitext"`
		Diagnostics []string `json:"diagnostics"`
	}

	result := listResult{
		Parent:      listing.Parent().PrefixedText(),
		Subpages:    make([]string, 0, listing.Len()),
		Diagnostics: make([]string, 0, len(diags)),
	}
	for _, t := range listing.Titles() {
		result.Subpages = append(result.Subpages, t.PrefixedText())
	}
	for _, d := range diags {
		result.Diagnostics = append(result.Diagnostics, d.Error())
	}
	if !listing.Empty() {
		result.Wikitext = subpage.NewFormatter(opts).Format(listing)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current, args, err := s.arguments(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := s.lister.Render(ctx, service.NewRenderRequest(current, access.Anonymous(), args))
	if err != nil {
		s.logger.ErrorContext(ctx, "render subpages failed", slog.String("page", current.PrefixedText()), slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("render subpages: %v", err)), nil
	}

	return mcp.NewToolResultText(out.HTML()), nil
}

// MCPServer returns the underlying MCP server for stdio serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
