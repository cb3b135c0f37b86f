package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/helixml/splist/application/service"
	"github.com/helixml/splist/domain/page"
	"github.com/helixml/splist/infrastructure/authz"
	"github.com/helixml/splist/infrastructure/i18n"
	"github.com/helixml/splist/infrastructure/markup"
	"github.com/helixml/splist/infrastructure/persistence"
	"github.com/helixml/splist/internal/testdb"
	"github.com/mark3labs/mcp-go/mcp"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	namespaces := page.DefaultNamespaces()
	store := persistence.NewPageStore(testdb.New(t))
	touched := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []page.Row{
		page.NewRow(page.NamespaceHelp, "Guide", false, touched),
		page.NewRow(page.NamespaceHelp, "Guide/Install", false, touched),
		page.NewRow(page.NamespaceHelp, "Guide/Usage", false, touched),
	}
	if err := store.Save(context.Background(), rows); err != nil {
		t.Fatalf("seed pages: %v", err)
	}

	messages, err := i18n.New("en")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}

	subpages := service.NewSubpages(store, namespaces, authz.AllowAll{}, markup.Passthrough{}, messages, nil)
	return NewServer(subpages, namespaces, "0.1.0", nil)
}

// sendMessage marshals a JSON-RPC request, sends it through HandleMessage,
// and returns the JSONRPCResponse.
func sendMessage(t *testing.T, srv *Server, method string, id int, params map[string]any) mcp.JSONRPCResponse {
	t.Helper()

	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	result := srv.MCPServer().HandleMessage(context.Background(), raw)

	resp, ok := result.(mcp.JSONRPCResponse)
	if !ok {
		t.Fatalf("expected JSONRPCResponse, got %T: %+v", result, result)
	}
	return resp
}

// resultJSON re-marshals the Result field through JSON into dst.
func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	b, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		t.Fatalf("unmarshal result into %T: %v", dst, err)
	}
}

func initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "0.0.1",
		},
	}
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) mcp.CallToolResult {
	t.Helper()
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/call", 2, map[string]any{
		"name":      name,
		"arguments": args,
	})

	var result mcp.CallToolResult
	resultJSON(t, resp, &result)
	return result
}

// textFromContent extracts the text of the first content item. It
// round-trips through JSON because in-process responses may hold the
// content as a map rather than a typed struct.
func textFromContent(t *testing.T, result mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	b, err := json.Marshal(result.Content[0])
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	var tc struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &tc); err != nil {
		t.Fatalf("unmarshal text content: %v", err)
	}
	return tc.Text
}

func TestServer_Initialize(t *testing.T) {
	srv := testServer(t)
	resp := sendMessage(t, srv, "initialize", 1, initializeParams())

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)

	if result.ServerInfo.Name != "splist" {
		t.Errorf("expected server name splist, got %s", result.ServerInfo.Name)
	}
	if result.ServerInfo.Version != "0.1.0" {
		t.Errorf("expected version 0.1.0, got %s", result.ServerInfo.Version)
	}
	if result.Capabilities.Tools == nil {
		t.Error("expected tools capability to be present")
	}
}

func TestServer_ListTools(t *testing.T) {
	srv := testServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/list", 2, nil)

	var result mcp.ListToolsResult
	resultJSON(t, resp, &result)

	if len(result.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result.Tools))
	}
	for _, tool := range result.Tools {
		props := tool.InputSchema.Properties
		for _, param := range []string{"page", "sort", "showpath", "parent"} {
			if _, ok := props[param]; !ok {
				t.Errorf("%s missing %s parameter", tool.Name, param)
			}
		}
		if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "page" {
			t.Errorf("%s required = %v, want [page]", tool.Name, tool.InputSchema.Required)
		}
	}
}

func TestServer_ListSubpages(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "list_subpages", map[string]any{
		"page":      "Help:Guide",
		"sort":      "desc",
		"liststyle": "sideways",
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", textFromContent(t, result))
	}

	var got struct {
		Parent      string   `json:"parent"`
		Subpages    []string `json:"subpages"`
		Wikitext    string   `json:"wikitext"`
		Diagnostics []string `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(textFromContent(t, result)), &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}

	if got.Parent != "Help:Guide" {
		t.Errorf("parent = %q", got.Parent)
	}
	want := []string{"Help:Guide/Usage", "Help:Guide/Install"}
	if strings.Join(got.Subpages, ",") != strings.Join(want, ",") {
		t.Errorf("subpages = %v, want %v", got.Subpages, want)
	}
	if got.Wikitext != "\n* [[Help:Guide/Usage|Usage]]\n* [[Help:Guide/Install|Install]]" {
		t.Errorf("wikitext = %q", got.Wikitext)
	}
	if len(got.Diagnostics) != 1 {
		t.Errorf("diagnostics = %v, want one", got.Diagnostics)
	}
}

func TestServer_ListSubpages_UnknownParent(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "list_subpages", map[string]any{
		"page":   "Help:Guide",
		"parent": "Nowhere",
	})
	if !result.IsError {
		t.Fatal("expected an error result")
	}
}

func TestServer_RenderSubpages(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "render_subpages", map[string]any{
		"page":       "Help:Guide",
		"showparent": "yes",
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", textFromContent(t, result))
	}

	text := textFromContent(t, result)
	if !strings.HasPrefix(text, `<div class="subpagelist">`) {
		t.Errorf("unexpected html: %s", text)
	}
	if !strings.Contains(text, "*[[Help:Guide|Guide]]\n** [[Help:Guide/Install|Install]]") {
		t.Errorf("missing parent entry: %s", text)
	}
}

func TestServer_MissingPage(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, "render_subpages", map[string]any{})
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if text := textFromContent(t, result); text != "page is required" {
		t.Errorf("text = %q", text)
	}
}
