package cloud

import (
	"context"
	"fmt"

	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/infra"
	"github.com/conwalk/conwalk/internal/nav"
)

// Navigation contributes the cloud destinations to the navigation graph.
func Navigation(p console.Page) []nav.Contribution {
	return []nav.Contribution{
		{
			Root: console.Dashboard,
			Subtree: nav.Subtree{
				"clouds_providers": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return p.Navigate(ctx, "/ems_cloud/show_list")
					},
				},
				"clouds_instances": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return p.Navigate(ctx, "/vm_cloud/explorer")
					},
					Children: nav.Subtree{
						"clouds_instances_by_provider": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								return console.AccordionClick(ctx, p, "Instances by Provider")
							},
							Children: nav.Subtree{
								"clouds_provision_instances": nav.Node{
									Action: provisionAction(p),
								},
							},
						},
					},
				},
			},
		},
	}
}

// provisionAction opens the provisioning wizard: select the provider in
// the accordion, start the Provision Instances lifecycle and pick the
// requested template row. A template the wizard does not list is a typed
// error so matrix-driven tests can tell "bad data" from "broken page".
func provisionAction(p console.Page) nav.Action {
	return func(ctx context.Context, nctx nav.Context) error {
		provider, ok := nctx["provider"].(*infra.Provider)
		if !ok {
			return fmt.Errorf("navigation context missing %q", "provider")
		}
		template, ok := nctx["template"].(Template)
		if !ok {
			return fmt.Errorf("navigation context missing %q", "template")
		}

		if err := p.Click(ctx, fmt.Sprintf(".accordion a[title=%q]", provider.Name)); err != nil {
			return err
		}
		if err := console.ToolbarSelect(ctx, p, "Lifecycle", "Provision Instances"); err != nil {
			return err
		}

		row := fmt.Sprintf("#pre_prov_div tr[title=%q]", template.Name)
		listed, err := p.IsDisplayed(ctx, row)
		if err != nil {
			return err
		}
		if !listed {
			return &TemplateNotFoundError{Template: template.Name, Provider: provider.Key}
		}
		if err := p.Click(ctx, row); err != nil {
			return err
		}
		return p.Click(ctx, `#form_buttons button[title="Continue"]`)
	}
}
