// Package configure models the console's configuration pages. Only the
// product information page is covered.
package configure

import (
	"context"
	"fmt"

	"github.com/conwalk/conwalk"
	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/nav"
)

const versionSelector = "#product_assistance .version"

// Guides lists the documentation links the about page is expected to
// carry.
var Guides = []string{
	"Quick Start Guide",
	"Installation Guide",
	"Insight Guide",
	"Control Guide",
	"Lifecycle and Automation Guide",
	"Integrate Guide",
	"Settings and Operations Guide",
	"Red Hat Customer Portal",
}

// About models the product information page under Configure.
type About struct{}

// Version reads the product version string off the about page.
func (a *About) Version(ctx context.Context, ui *console.UI) (string, error) {
	if err := ui.GoTo(ctx, "configure_about", nil); err != nil {
		return "", err
	}
	return ui.Page.Text(ctx, versionSelector)
}

// MissingGuides returns the documentation links absent from the about
// page. An empty result means every expected guide is displayed.
func (a *About) MissingGuides(ctx context.Context, ui *console.UI) ([]string, error) {
	if err := ui.GoTo(ctx, "configure_about", nil); err != nil {
		return nil, err
	}
	var displayed []string
	for _, guide := range Guides {
		ok, err := ui.Page.IsDisplayed(ctx, guideEntry(guide))
		if err != nil {
			return nil, err
		}
		if ok {
			displayed = append(displayed, guide)
		}
	}
	return conwalk.Diff(Guides, displayed), nil
}

func guideEntry(title string) string {
	return fmt.Sprintf("#product_assistance a[title=%q]", title)
}

// Navigation contributes the configure destinations to the navigation
// graph.
func Navigation(p console.Page) []nav.Contribution {
	return []nav.Contribution{
		{
			Root: console.Dashboard,
			Subtree: nav.Subtree{
				"configure_about": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return p.Navigate(ctx, "/configuration/about")
					},
				},
			},
		},
	}
}
