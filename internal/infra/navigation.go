package infra

import (
	"context"
	"fmt"

	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/nav"
)

// Navigation contributes the infrastructure destinations to the navigation
// graph. Entities resolve these by name; the branch layout mirrors the
// console's menu structure.
func Navigation(p console.Page) []nav.Contribution {
	return []nav.Contribution{
		{
			Root: console.Dashboard,
			Subtree: nav.Subtree{
				"infrastructure_providers": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return p.Navigate(ctx, "/ems_infra/show_list")
					},
				},
				"infrastructure_hosts": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return p.Navigate(ctx, "/host/show_list")
					},
				},
				"infrastructure_pxe": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return p.Navigate(ctx, "/pxe/explorer")
					},
				},
			},
		},
		{
			Root: "infrastructure_providers",
			Subtree: nav.Subtree{
				"infrastructure_provider_new": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return console.ToolbarSelect(ctx, p, "Configuration", "Add a New Infrastructure Provider")
					},
				},
				"infrastructure_provider": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						provider, err := fromContext[*Provider](nctx, "provider")
						if err != nil {
							return err
						}
						return p.Click(ctx, console.QuadiconSelector("provider", provider.Name))
					},
				},
			},
		},
		{
			Root: "infrastructure_hosts",
			Subtree: nav.Subtree{
				"infrastructure_host_new": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return console.ToolbarSelect(ctx, p, "Configuration", "Add a New Host")
					},
				},
				"infrastructure_host_discover": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return console.ToolbarSelect(ctx, p, "Configuration", "Discover Hosts")
					},
				},
				"infrastructure_host": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						host, err := fromContext[*Host](nctx, "host")
						if err != nil {
							return err
						}
						return p.Click(ctx, console.QuadiconSelector("host", host.Name))
					},
					Children: nav.Subtree{
						"infrastructure_host_edit": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								return console.ToolbarSelect(ctx, p, "Configuration", "Edit this Host")
							},
						},
						"infrastructure_host_policy_assignment": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								return console.ToolbarSelect(ctx, p, "Policy", "Manage Policies")
							},
						},
					},
				},
			},
		},
		{
			Root: "infrastructure_pxe",
			Subtree: nav.Subtree{
				"infrastructure_pxe_templates": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return console.AccordionClick(ctx, p, "Customization Templates")
					},
					Children: nav.Subtree{
						"infrastructure_pxe_template_new": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								return console.ToolbarSelect(ctx, p, "Configuration", "Add a New Customization Template")
							},
						},
						"infrastructure_pxe_template": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								template, err := fromContext[*CustomizationTemplate](nctx, "template")
								if err != nil {
									return err
								}
								return p.Click(ctx, fmt.Sprintf(".accordion a[title=%q]", template.Name))
							},
						},
					},
				},
				"infrastructure_pxe_servers": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return console.AccordionClick(ctx, p, "PXE Servers")
					},
					Children: nav.Subtree{
						"infrastructure_pxe_server_new": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								return console.ToolbarSelect(ctx, p, "Configuration", "Add a New PXE Server")
							},
						},
						"infrastructure_pxe_server": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								server, err := fromContext[*PXEServer](nctx, "pxe_server")
								if err != nil {
									return err
								}
								return p.Click(ctx, fmt.Sprintf(".accordion a[title=%q]", server.Name))
							},
						},
					},
				},
			},
		},
	}
}

// fromContext pulls a typed value out of the navigation context, turning a
// missing or mistyped entry into a named error instead of a downstream nil
// dereference.
func fromContext[T any](nctx nav.Context, key string) (T, error) {
	var zero T
	value, ok := nctx[key]
	if !ok {
		return zero, fmt.Errorf("navigation context missing %q", key)
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("navigation context %q is %T, want %T", key, value, zero)
	}
	return typed, nil
}
