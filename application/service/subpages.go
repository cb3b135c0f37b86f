package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/helixml/splist/domain/access"
	"github.com/helixml/splist/domain/page"
	domainservice "github.com/helixml/splist/domain/service"
	"github.com/helixml/splist/domain/subpage"
	"github.com/helixml/splist/internal/metrics"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Listing CSS classes.
const (
	ClassList  = "subpagelist"
	ClassEmpty = "subpagelist-empty"
)

const diagnosticPrefix = "<strong>Error [Subpage List 3]:</strong> "

// RenderRequest describes a single listing invocation.
type RenderRequest struct {
	current page.Title
	user    access.User
	args    map[string]string
}

// NewRenderRequest creates a RenderRequest for the page being rendered.
func NewRenderRequest(current page.Title, user access.User, args map[string]string) RenderRequest {
	copied := make(map[string]string, len(args))
	for k, v := range args {
		copied[k] = v
	}
	return RenderRequest{current: current, user: user, args: copied}
}

// Current returns the page being rendered.
func (r RenderRequest) Current() page.Title { return r.current }

// User returns the reader.
func (r RenderRequest) User() access.User { return r.user }

// Args returns the raw option arguments.
func (r RenderRequest) Args() map[string]string { return r.args }

// Rendered is the output of a listing.
type Rendered struct {
	html        string
	empty       bool
	listing     subpage.Listing
	diagnostics []subpage.Diagnostic
}

// HTML returns the wrapped output.
func (r Rendered) HTML() string { return r.html }

// Empty reports whether the fallback text was rendered instead of a list.
func (r Rendered) Empty() bool { return r.empty }

// Listing returns the subpages that were listed.
func (r Rendered) Listing() subpage.Listing { return r.listing }

// Diagnostics returns every rejected option, whether or not debug output
// was enabled.
func (r Rendered) Diagnostics() []subpage.Diagnostic { return r.diagnostics }

// Subpages lists and renders the subpages of a page.
type Subpages struct {
	store      page.Store
	namespaces page.Namespaces
	authorizer domainservice.Authorizer
	expander   domainservice.MarkupExpander
	messages   domainservice.Messages
	logger     *slog.Logger
}

// NewSubpages creates a new Subpages service.
func NewSubpages(
	store page.Store,
	namespaces page.Namespaces,
	authorizer domainservice.Authorizer,
	expander domainservice.MarkupExpander,
	messages domainservice.Messages,
	logger *slog.Logger,
) *Subpages {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subpages{
		store:      store,
		namespaces: namespaces,
		authorizer: authorizer,
		expander:   expander,
		messages:   messages,
		logger:     logger,
	}
}

// Query resolves the parent selected by opts and returns its subpages in
// the requested order. It returns subpage.ErrParentMissing or
// subpage.ErrReadDenied when an explicit parent cannot be used.
func (s *Subpages) Query(ctx context.Context, current page.Title, user access.User, opts subpage.Options) (subpage.Listing, error) {
	parent, err := s.resolveParent(ctx, current, user, opts)
	if err != nil {
		return subpage.Listing{}, err
	}

	start := time.Now()
	rows, err := s.store.Subpages(ctx, page.NewSubpageQuery(parent, opts.SortField(), opts.Descending()))
	if err != nil {
		return subpage.Listing{}, fmt.Errorf("query subpages of %s: %w", parent, err)
	}

	titles := make([]page.Title, 0, len(rows))
	for _, row := range rows {
		title, err := s.namespaces.Title(row.Namespace(), row.DBKey())
		if err != nil {
			s.logger.WarnContext(ctx, "skipping page row",
				slog.Int("namespace", int(row.Namespace())),
				slog.String("title", row.DBKey()),
				slog.String("error", err.Error()),
			)
			continue
		}
		titles = append(titles, title)
	}
	metrics.RecordQuery(len(titles), time.Since(start).Seconds())

	return subpage.NewListing(parent, titles), nil
}

func (s *Subpages) resolveParent(ctx context.Context, current page.Title, user access.User, opts subpage.Options) (page.Title, error) {
	text, explicit := opts.Parent()
	if !explicit {
		if current.IsZero() {
			return page.Title{}, fmt.Errorf("%w: no current page", subpage.ErrParentMissing)
		}
		return current, nil
	}

	parent, err := s.namespaces.Parse(text)
	if err != nil {
		return page.Title{}, fmt.Errorf("%w: %w", subpage.ErrParentMissing, err)
	}

	exists, err := s.store.Exists(ctx, parent)
	if err != nil {
		return page.Title{}, fmt.Errorf("check parent %s: %w", parent, err)
	}
	if !exists {
		return page.Title{}, fmt.Errorf("%w: %s", subpage.ErrParentMissing, parent)
	}

	allowed, err := s.authorizer.CanRead(ctx, user, parent)
	if err != nil {
		return page.Title{}, fmt.Errorf("authorize parent %s: %w", parent, err)
	}
	if !allowed {
		return page.Title{}, fmt.Errorf("%w: %s", subpage.ErrReadDenied, parent)
	}

	return parent, nil
}

// Render parses the request options, lists the subpages, and returns the
// expanded list wrapped in a container div. An empty listing or an unusable
// parent renders the fallback text instead. Only store, authorizer, and
// expander failures are returned as errors.
func (s *Subpages) Render(ctx context.Context, req RenderRequest) (Rendered, error) {
	opts, diags := subpage.ParseOptions(req.Args())

	listing, err := s.Query(ctx, req.Current(), req.User(), opts)
	parentFailed := errors.Is(err, subpage.ErrParentMissing) || errors.Is(err, subpage.ErrReadDenied)
	switch {
	case parentFailed:
		s.logger.DebugContext(ctx, "parent unavailable", slog.String("error", err.Error()))
		raw, _ := opts.Parent()
		diags = append(diags, subpage.NewDiagnostic(subpage.KeyParent, raw))
	case err != nil:
		metrics.RecordRender(metrics.OutcomeError)
		return Rendered{}, err
	}

	for _, d := range diags {
		metrics.RecordDiagnostic(d.Key())
	}

	empty := parentFailed || listing.Empty()
	var wikitext string
	if empty {
		wikitext = s.fallback(opts, listing, parentFailed)
	} else {
		wikitext = subpage.NewFormatter(opts).Format(listing)
	}

	body, err := s.expander.Expand(ctx, wikitext)
	if err != nil {
		metrics.RecordRender(metrics.OutcomeError)
		return Rendered{}, fmt.Errorf("expand listing: %w", err)
	}

	if opts.Debug() && len(diags) > 0 {
		body = s.diagnosticHTML(diags) + body
	}

	class := ClassList
	if empty {
		class += " " + ClassEmpty
	}
	wrapped, err := wrap(class, body)
	if err != nil {
		metrics.RecordRender(metrics.OutcomeError)
		return Rendered{}, err
	}

	switch {
	case parentFailed:
		metrics.RecordRender(metrics.OutcomeParentFailed)
	case empty:
		metrics.RecordRender(metrics.OutcomeEmpty)
	default:
		metrics.RecordRender(metrics.OutcomeListed)
	}

	return Rendered{
		html:        wrapped,
		empty:       empty,
		listing:     listing,
		diagnostics: diags,
	}, nil
}

// fallback returns the wikitext shown when nothing is listed.
func (s *Subpages) fallback(opts subpage.Options, listing subpage.Listing, parentFailed bool) string {
	if text, ok := opts.NoSubpages(); ok {
		return text
	}

	target := listing.Parent().PrefixedText()
	if parentFailed {
		target, _ = opts.Parent()
	}
	if target == "" {
		return "''" + s.messages.Text(domainservice.MessageNoSubpagesPlain) + "''\n"
	}
	link := "[[" + target + "]]"
	return "''" + s.messages.Text(domainservice.MessageNoSubpages, link) + "''\n"
}

func (s *Subpages) diagnosticHTML(diags []subpage.Diagnostic) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = diagnosticPrefix + html.EscapeString(s.messages.Text(domainservice.MessageDebug, d.Key()))
	}
	return strings.Join(lines, "\n")
}

func wrap(class, body string) (string, error) {
	div := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Div.String(),
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
	div.AppendChild(&html.Node{Type: html.RawNode, Data: body})

	var b strings.Builder
	if err := html.Render(&b, div); err != nil {
		return "", fmt.Errorf("render container: %w", err)
	}
	return b.String(), nil
}
