// Package services models the console's service catalog pages.
package services

import (
	"context"

	"github.com/conwalk/conwalk"
	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/flash"
	"github.com/conwalk/conwalk/internal/form"
	"github.com/conwalk/conwalk/internal/nav"
)

const (
	catalogAddButton  = "#add_button"
	catalogSaveButton = "#save_button"
	catalogCancel     = "#cancel_button"
)

var catalogForm = form.Form{Fields: []form.Field{
	{Name: "name_text", Selector: "#name"},
	{Name: "description_text", Selector: "#description"},
}}

// Catalog models a service catalog.
type Catalog struct {
	Name        string
	Description string
}

// CatalogUpdate holds the fields an update changes; nil fields are left
// untouched.
type CatalogUpdate struct {
	Name        *string
	Description *string
}

// Create adds the catalog through the console.
func (c *Catalog) Create(ctx context.Context, ui *console.UI, cancel bool) error {
	if c.Name == "" {
		return conwalk.ErrRequiredName
	}
	if err := ui.ForceNavigate(ctx, "services_catalog_new", nil); err != nil {
		return err
	}
	values := map[string]any{
		"name_text":        orNil(c.Name),
		"description_text": orNil(c.Description),
	}
	action := catalogAddButton
	if cancel {
		action = catalogCancel
	}
	if err := catalogForm.Fill(ctx, ui.Page, values, action); err != nil {
		return err
	}
	if cancel {
		return nil
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Update edits the catalog through the console, then patches the local
// fields.
func (c *Catalog) Update(ctx context.Context, ui *console.UI, updates CatalogUpdate) error {
	err := ui.ForceNavigate(ctx, "services_catalog_edit", nav.Context{"catalog": c})
	if err != nil {
		return err
	}
	values := map[string]any{
		"name_text":        ptrOrNil(updates.Name),
		"description_text": ptrOrNil(updates.Description),
	}
	if err := catalogForm.Fill(ctx, ui.Page, values, catalogSaveButton); err != nil {
		return err
	}
	if err := flash.AssertNoErrors(ctx, ui.Page); err != nil {
		return err
	}

	if updates.Name != nil {
		c.Name = *updates.Name
	}
	if updates.Description != nil {
		c.Description = *updates.Description
	}
	return nil
}

// Delete removes the catalog, answering the confirmation dialog.
func (c *Catalog) Delete(ctx context.Context, ui *console.UI, cancel bool) error {
	err := ui.ForceNavigate(ctx, "services_catalog", nav.Context{"catalog": c})
	if err != nil {
		return err
	}
	ui.Page.ExpectDialog(!cancel)
	if err := console.ToolbarSelect(ctx, ui.Page, "Configuration", "Remove Item from the VMDB"); err != nil {
		return err
	}
	if cancel {
		return nil
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Exists reports whether the catalog appears in the catalogs accordion.
func (c *Catalog) Exists(ctx context.Context, ui *console.UI) (bool, error) {
	if err := ui.ForceNavigate(ctx, "services_catalogs", nil); err != nil {
		return false, err
	}
	return ui.Page.IsDisplayed(ctx, accordionEntry(c.Name))
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func ptrOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
