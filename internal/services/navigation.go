package services

import (
	"context"
	"fmt"

	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/nav"
)

func accordionEntry(name string) string {
	return fmt.Sprintf(".accordion a[title=%q]", name)
}

// Navigation contributes the service catalog destinations to the
// navigation graph.
func Navigation(p console.Page) []nav.Contribution {
	return []nav.Contribution{
		{
			Root: console.Dashboard,
			Subtree: nav.Subtree{
				"services_catalogs_explorer": nav.Node{
					Action: func(ctx context.Context, nctx nav.Context) error {
						return p.Navigate(ctx, "/catalog/explorer")
					},
					Children: nav.Subtree{
						"services_catalogs": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								return console.AccordionClick(ctx, p, "Catalogs")
							},
							Children: nav.Subtree{
								"services_catalog_new": nav.Node{
									Action: func(ctx context.Context, nctx nav.Context) error {
										return console.ToolbarSelect(ctx, p, "Configuration", "Add a New Catalog")
									},
								},
								"services_catalog": nav.Node{
									Action: func(ctx context.Context, nctx nav.Context) error {
										catalog, ok := nctx["catalog"].(*Catalog)
										if !ok {
											return fmt.Errorf("navigation context missing %q", "catalog")
										}
										return p.Click(ctx, accordionEntry(catalog.Name))
									},
									Children: nav.Subtree{
										"services_catalog_edit": nav.Node{
											Action: func(ctx context.Context, nctx nav.Context) error {
												return console.ToolbarSelect(ctx, p, "Configuration", "Edit this Item")
											},
										},
									},
								},
							},
						},
						"services_catalog_items": nav.Node{
							Action: func(ctx context.Context, nctx nav.Context) error {
								return console.AccordionClick(ctx, p, "Catalog Items")
							},
							Children: nav.Subtree{
								"services_catalog_item_new": nav.Node{
									Action: newCatalogItemAction(p),
								},
								"services_catalog_item": nav.Node{
									Action: func(ctx context.Context, nctx nav.Context) error {
										item, ok := nctx["catalog_item"].(*CatalogItem)
										if !ok {
											return fmt.Errorf("navigation context missing %q", "catalog_item")
										}
										return p.Click(ctx, accordionEntry(item.Name))
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

// newCatalogItemAction opens the catalog item form, passing through the
// type chooser when the context names an item type.
func newCatalogItemAction(p console.Page) nav.Action {
	return func(ctx context.Context, nctx nav.Context) error {
		if err := console.ToolbarSelect(ctx, p, "Configuration", "Add a New Catalog Item"); err != nil {
			return err
		}
		itemType, _ := nctx["item_type"].(string)
		if itemType == "" {
			return nil
		}
		return p.SelectOption(ctx, "#st_prov_type", itemType)
	}
}
