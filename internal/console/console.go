// Package console aggregates what a domain entity needs to act on the
// product: a browser page, the assembled navigation graph and a logger.
package console

import (
	"context"
	"fmt"

	"github.com/conwalk/conwalk/internal/form"
	"github.com/conwalk/conwalk/internal/logr"
	"github.com/conwalk/conwalk/internal/nav"
)

// Dashboard is the navigation graph's root destination, the known-good
// state forced navigation resets to.
const Dashboard = "dashboard"

// Page is the browser surface entities act on. *browser.Session satisfies
// it; entity tests substitute fakes.
type Page interface {
	form.Filler

	Text(ctx context.Context, selector string) (string, error)
	IsDisplayed(ctx context.Context, selector string) (bool, error)
	WaitVisible(ctx context.Context, selector string) error
	Navigate(ctx context.Context, url string) error
	Home(ctx context.Context) error
	Refresh(ctx context.Context) error
	ExpectDialog(accept bool)
}

// UI is the entry point handed to domain entities.
type UI struct {
	Logger logr.Logger
	Page   Page
	Nav    *nav.Graph
}

// New assembles the navigation graph from the given contributions and
// returns a ready UI. Contributions are applied in order, so parents must
// precede the subtrees grafted onto them.
func New(logger logr.Logger, page Page, contribs []nav.Contribution) (*UI, error) {
	home := func(ctx context.Context, nctx nav.Context) error {
		return page.Home(ctx)
	}
	graph, err := nav.Assemble(Dashboard, home, contribs,
		nav.WithReset(home), nav.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &UI{Logger: logger, Page: page, Nav: graph}, nil
}

// GoTo resolves a destination, replaying the path from the root.
func (ui *UI) GoTo(ctx context.Context, destination string, nctx nav.Context) error {
	return ui.Nav.GoTo(ctx, destination, nctx)
}

// ForceNavigate resets to the dashboard before resolving the destination,
// recovering from any drift between the graph's assumed location and the
// browser's real location.
func (ui *UI) ForceNavigate(ctx context.Context, destination string, nctx nav.Context) error {
	return ui.Nav.ForceNavigate(ctx, destination, nctx)
}

// ToolbarSelect clicks an item in a toolbar dropdown, e.g. Configuration >
// Add a New Host.
func ToolbarSelect(ctx context.Context, p Page, menu, item string) error {
	if err := p.Click(ctx, fmt.Sprintf("#toolbar button[title=%q]", menu)); err != nil {
		return err
	}
	return p.Click(ctx, fmt.Sprintf("#toolbar a[title=%q]", item))
}

// AccordionClick expands the named accordion section.
func AccordionClick(ctx context.Context, p Page, title string) error {
	return p.Click(ctx, fmt.Sprintf(".accordion div[title=%q]", title))
}

// QuadiconSelector locates the listing tile for a named resource of the
// given kind, e.g. kind "host", name "esx-55".
func QuadiconSelector(kind, name string) string {
	return fmt.Sprintf("#item-%s-%s a", kind, name)
}
