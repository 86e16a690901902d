// Package automate models the console's automate pages. Only the
// customization area is covered, which is where service dialogs live.
package automate

import (
	"context"
	"fmt"

	"github.com/conwalk/conwalk"
	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/flash"
	"github.com/conwalk/conwalk/internal/form"
	"github.com/conwalk/conwalk/internal/nav"
)

var serviceDialogForm = form.Form{Fields: []form.Field{
	{Name: "label", Selector: "#label"},
	{Name: "description_text", Selector: "#description"},
	{Name: "submit_button", Selector: "#chkbx_submit", Kind: form.Checkbox},
	{Name: "cancel_button", Selector: "#chkbx_cancel", Kind: form.Checkbox},
}}

// ServiceDialog models a service dialog under Automate > Customization.
// Submit and Cancel toggle which buttons the rendered dialog offers.
type ServiceDialog struct {
	Label       string
	Description string
	Submit      bool
	Cancel      bool
}

// Create adds the service dialog through the console.
func (d *ServiceDialog) Create(ctx context.Context, ui *console.UI, cancel bool) error {
	if d.Label == "" {
		return conwalk.ErrRequiredName
	}
	if err := ui.ForceNavigate(ctx, "service_dialog_new", nil); err != nil {
		return err
	}
	values := map[string]any{
		"label":            orNil(d.Label),
		"description_text": orNil(d.Description),
		"submit_button":    d.Submit,
		"cancel_button":    d.Cancel,
	}
	action := "#add_button"
	if cancel {
		action = "#cancel_button"
	}
	if err := serviceDialogForm.Fill(ctx, ui.Page, values, action); err != nil {
		return err
	}
	if cancel {
		return nil
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Delete removes the service dialog, answering the confirmation dialog.
func (d *ServiceDialog) Delete(ctx context.Context, ui *console.UI, cancel bool) error {
	err := ui.ForceNavigate(ctx, "service_dialog", nav.Context{"dialog": d})
	if err != nil {
		return err
	}
	ui.Page.ExpectDialog(!cancel)
	if err := console.ToolbarSelect(ctx, ui.Page, "Configuration", "Remove Dialog"); err != nil {
		return err
	}
	if cancel {
		return nil
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Exists reports whether the dialog appears in the service dialogs
// accordion.
func (d *ServiceDialog) Exists(ctx context.Context, ui *console.UI) (bool, error) {
	if err := ui.ForceNavigate(ctx, "service_dialogs", nil); err != nil {
		return false, err
	}
	return ui.Page.IsDisplayed(ctx, dialogEntry(d.Label))
}

func dialogEntry(label string) string {
	return fmt.Sprintf(".accordion a[title=%q]", label)
}

// Navigation contributes the automate customization destinations to the
// navigation graph.
func Navigation(p console.Page) []nav.Contribution {
	return []nav.Contribution{
		{
			Root: console.Dashboard,
			Subtree: nav.Subtree{
				"automate_customization": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return p.Navigate(ctx, "/miq_ae_customization/explorer")
					},
					Children: nav.Subtree{
						"service_dialogs": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								return console.AccordionClick(ctx, p, "Service Dialogs")
							},
							Children: nav.Subtree{
								"service_dialog_new": nav.Node{
									Action: func(ctx context.Context, nctx nav.Context) error {
										return console.ToolbarSelect(ctx, p, "Configuration", "Add a new Dialog")
									},
								},
								"service_dialog": nav.Node{
									Action: func(ctx context.Context, nctx nav.Context) error {
										dialog, ok := nctx["dialog"].(*ServiceDialog)
										if !ok {
											return fmt.Errorf("navigation context missing %q", "dialog")
										}
										return p.Click(ctx, dialogEntry(dialog.Label))
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
