package services

import (
	"context"

	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/flash"
	"github.com/conwalk/conwalk/internal/form"
	"github.com/conwalk/conwalk/internal/nav"
)

var catalogItemForm = form.Form{Fields: []form.Field{
	{Name: "name_text", Selector: "#name"},
	{Name: "description_text", Selector: "#description"},
	{Name: "display_checkbox", Selector: "#display", Kind: form.Checkbox},
	{Name: "select_catalog", Selector: "#catalog_id", Kind: form.Select},
	{Name: "select_dialog", Selector: "#dialog_id", Kind: form.Select},
}}

// CatalogItem models an orderable item inside a service catalog. ItemType
// picks the provisioning flavor in the type chooser that precedes the
// form.
type CatalogItem struct {
	ItemType         string
	Name             string
	Description      string
	DisplayInCatalog bool
	Catalog          string
	Dialog           string
}

// Create adds the catalog item through the console.
func (ci *CatalogItem) Create(ctx context.Context, ui *console.UI, cancel bool) error {
	err := ui.ForceNavigate(ctx, "services_catalog_item_new", nav.Context{"item_type": ci.ItemType})
	if err != nil {
		return err
	}
	values := map[string]any{
		"name_text":        orNil(ci.Name),
		"description_text": orNil(ci.Description),
		"display_checkbox": ci.DisplayInCatalog,
		"select_catalog":   orNil(ci.Catalog),
		"select_dialog":    orNil(ci.Dialog),
	}
	action := catalogAddButton
	if cancel {
		action = catalogCancel
	}
	if err := catalogItemForm.Fill(ctx, ui.Page, values, action); err != nil {
		return err
	}
	if cancel {
		return nil
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Delete removes the catalog item, answering the confirmation dialog.
func (ci *CatalogItem) Delete(ctx context.Context, ui *console.UI, cancel bool) error {
	err := ui.ForceNavigate(ctx, "services_catalog_item", nav.Context{"catalog_item": ci})
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
