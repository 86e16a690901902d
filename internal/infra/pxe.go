package infra

import (
	"context"
	"fmt"

	"github.com/conwalk/conwalk/internal/conf"
	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/flash"
	"github.com/conwalk/conwalk/internal/form"
	"github.com/conwalk/conwalk/internal/nav"
	"github.com/conwalk/conwalk/internal/testgen"
)

var pxeServerForm = form.Form{Fields: []form.Field{
	{Name: "name_text", Selector: "#name"},
	{Name: "uri_text", Selector: "#uri"},
	{Name: "access_url_text", Selector: "#access_url"},
	{Name: "pxe_dir_text", Selector: "#pxe_directory"},
	{Name: "windows_dir_text", Selector: "#windows_images_directory"},
	{Name: "customize_dir_text", Selector: "#customization_directory"},
	{Name: "pxe_menu_text", Selector: "#pxemenu_0"},
}}

// PXEServer models a PXE server entry under Infrastructure > PXE.
type PXEServer struct {
	Key          string
	Name         string
	URI          string
	AccessURL    string
	PXEDir       string
	WindowsDir   string
	CustomizeDir string
	MenuFilename string
}

// Create adds the PXE server through the console.
func (s *PXEServer) Create(ctx context.Context, ui *console.UI, cancel bool) error {
	if err := ui.ForceNavigate(ctx, "infrastructure_pxe_server_new", nil); err != nil {
		return err
	}
	values := map[string]any{
		"name_text":          orNil(s.Name),
		"uri_text":           orNil(s.URI),
		"access_url_text":    orNil(s.AccessURL),
		"pxe_dir_text":       orNil(s.PXEDir),
		"windows_dir_text":   orNil(s.WindowsDir),
		"customize_dir_text": orNil(s.CustomizeDir),
		"pxe_menu_text":      orNil(s.MenuFilename),
	}
	if err := pxeServerForm.Fill(ctx, ui.Page, values, ""); err != nil {
		return err
	}
	if cancel {
		return ui.Page.Click(ctx, hostCancel)
	}
	if err := ui.Page.Click(ctx, hostAddSubmit); err != nil {
		return err
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Delete removes the PXE server, answering the confirmation dialog.
func (s *PXEServer) Delete(ctx context.Context, ui *console.UI, cancel bool) error {
	err := ui.ForceNavigate(ctx, "infrastructure_pxe_server", nav.Context{"pxe_server": s})
	if err != nil {
		return err
	}
	ui.Page.ExpectDialog(!cancel)
	if err := console.ToolbarSelect(ctx, ui.Page, "Configuration", "Remove this PXE Server from the VMDB"); err != nil {
		return err
	}
	if cancel {
		return nil
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// PXEServerFromConfig builds a PXEServer from its entry under pxe_servers
// in cfme_data.
func PXEServerFromConfig(loader *conf.Loader, key string) (*PXEServer, error) {
	data, err := loader.Load("cfme_data")
	if err != nil {
		return nil, err
	}
	servers, ok := data["pxe_servers"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cfme_data has no pxe_servers section")
	}
	item, ok := servers[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("no pxe server %q in cfme_data", key)
	}
	return &PXEServer{
		Key:          key,
		Name:         str(item, "name"),
		URI:          str(item, "uri"),
		AccessURL:    str(item, "access_url"),
		PXEDir:       str(item, "pxe_directory"),
		WindowsDir:   str(item, "windows_images_directory"),
		CustomizeDir: str(item, "customization_directory"),
		MenuFilename: str(item, "pxe_menu_filename"),
	}, nil
}

// PXEServerConstructor adapts PXEServerFromConfig to the testgen registry
// shape.
func PXEServerConstructor(loader *conf.Loader) testgen.Constructor {
	return func(key string, item testgen.Item) (any, error) {
		return PXEServerFromConfig(loader, key)
	}
}

var customizationTemplateForm = form.Form{Fields: []form.Field{
	{Name: "name_text", Selector: "#name"},
	{Name: "description_text", Selector: "#description"},
	{Name: "image_type", Selector: "#img_typ", Kind: form.Select},
	{Name: "script_type", Selector: "#typ", Kind: form.Select},
	{Name: "script_data", Selector: "#script_data"},
}}

// CustomizationTemplate models a kickstart/cloud-init template under
// Infrastructure > PXE.
type CustomizationTemplate struct {
	Name        string
	Description string
	ImageType   string
	ScriptType  string
	ScriptData  string
}

// Create adds the customization template through the console.
func (ct *CustomizationTemplate) Create(ctx context.Context, ui *console.UI, cancel bool) error {
	if err := ui.ForceNavigate(ctx, "infrastructure_pxe_template_new", nil); err != nil {
		return err
	}
	values := map[string]any{
		"name_text":        orNil(ct.Name),
		"description_text": orNil(ct.Description),
		"image_type":       orNil(ct.ImageType),
		"script_type":      orNil(ct.ScriptType),
		"script_data":      orNil(ct.ScriptData),
	}
	if err := customizationTemplateForm.Fill(ctx, ui.Page, values, ""); err != nil {
		return err
	}
	if cancel {
		return ui.Page.Click(ctx, hostCancel)
	}
	if err := ui.Page.Click(ctx, hostAddSubmit); err != nil {
		return err
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Delete removes the customization template, answering the confirmation
// dialog.
func (ct *CustomizationTemplate) Delete(ctx context.Context, ui *console.UI, cancel bool) error {
	err := ui.ForceNavigate(ctx, "infrastructure_pxe_template", nav.Context{"template": ct})
	if err != nil {
		return err
	}
	ui.Page.ExpectDialog(!cancel)
	if err := console.ToolbarSelect(ctx, ui.Page, "Configuration", "Remove this Customization Template from the VMDB"); err != nil {
		return err
	}
	if cancel {
		return nil
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}
