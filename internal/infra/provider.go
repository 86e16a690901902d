package infra

import (
	"context"
	"fmt"

	"github.com/conwalk/conwalk"
	"github.com/conwalk/conwalk/internal/conf"
	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/flash"
	"github.com/conwalk/conwalk/internal/form"
	"github.com/conwalk/conwalk/internal/nav"
	"github.com/conwalk/conwalk/internal/testgen"
	"github.com/conwalk/conwalk/internal/wait"
)

var providerForm = form.Form{Fields: []form.Field{
	{Name: "name_text", Selector: "#name"},
	{Name: "type_select", Selector: "#server_emstype", Kind: form.Select},
	{Name: "hostname_text", Selector: "#hostname"},
	{Name: "ipaddress_text", Selector: "#ipaddress"},
	{Name: "api_port", Selector: "#port"},
}}

// Provider models an infrastructure provider (a virtualization manager the
// console inventories hosts and VMs from).
type Provider struct {
	Key         string
	Name        string
	Type        string
	TypeLabel   string
	Hostname    string
	IPAddress   string
	APIPort     string
	Credentials *Credential
}

// Create adds the provider through the console.
func (p *Provider) Create(ctx context.Context, ui *console.UI, cancel bool) error {
	if p.Name == "" {
		return conwalk.ErrRequiredName
	}
	if err := ui.ForceNavigate(ctx, "infrastructure_provider_new", nil); err != nil {
		return err
	}
	values := map[string]any{
		"name_text":      orNil(p.Name),
		"type_select":    orNil(p.TypeLabel),
		"hostname_text":  orNil(p.Hostname),
		"ipaddress_text": orNil(p.IPAddress),
		"api_port":       orNil(p.APIPort),
	}
	if err := providerForm.Fill(ctx, ui.Page, values, ""); err != nil {
		return err
	}
	if p.Credentials != nil {
		if err := p.Credentials.fill(ctx, ui.Page, false); err != nil {
			return err
		}
	}
	if cancel {
		return ui.Page.Click(ctx, hostCancel)
	}
	if err := ui.Page.Click(ctx, hostAddSubmit); err != nil {
		return err
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Delete removes the provider, answering the confirmation dialog.
func (p *Provider) Delete(ctx context.Context, ui *console.UI, cancel bool) error {
	err := ui.ForceNavigate(ctx, "infrastructure_provider", nav.Context{"provider": p})
	if err != nil {
		return err
	}
	ui.Page.ExpectDialog(!cancel)
	if err := console.ToolbarSelect(ctx, ui.Page, "Configuration", "Remove this Infrastructure Provider from the VMDB"); err != nil {
		return err
	}
	if cancel {
		return nil
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Exists reports whether the provider's tile is present on the providers
// listing.
func (p *Provider) Exists(ctx context.Context, ui *console.UI) (bool, error) {
	if err := ui.ForceNavigate(ctx, "infrastructure_providers", nil); err != nil {
		return false, err
	}
	return ui.Page.IsDisplayed(ctx, console.QuadiconSelector("provider", p.Name))
}

// WaitForDelete polls the providers listing until the tile disappears.
func (p *Provider) WaitForDelete(ctx context.Context, ui *console.UI, opts wait.Options) error {
	if err := ui.ForceNavigate(ctx, "infrastructure_providers", nil); err != nil {
		return err
	}
	opts.Message = fmt.Sprintf("provider %s to disappear", p.Name)
	if opts.OnRetry == nil {
		opts.OnRetry = ui.Page.Refresh
	}
	return wait.For(ctx, func(ctx context.Context) (bool, error) {
		displayed, err := ui.Page.IsDisplayed(ctx, console.QuadiconSelector("provider", p.Name))
		return !displayed, err
	}, opts)
}

// ProviderFromConfig builds a Provider from its entry under
// management_systems in cfme_data, resolving credentials by name.
func ProviderFromConfig(loader *conf.Loader, key string) (*Provider, error) {
	data, err := loader.Load("cfme_data")
	if err != nil {
		return nil, err
	}
	systems, ok := data["management_systems"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cfme_data has no management_systems section")
	}
	item, ok := systems[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("no management system %q in cfme_data", key)
	}

	provider := &Provider{
		Key:       key,
		Name:      str(item, "name"),
		Type:      str(item, "type"),
		TypeLabel: str(item, "type_label"),
		Hostname:  str(item, "hostname"),
		IPAddress: str(item, "ipaddress"),
		APIPort:   str(item, "port"),
	}
	if name := str(item, "credentials"); name != "" {
		provider.Credentials, err = CredentialFromConfig(loader, name)
		if err != nil {
			return nil, err
		}
	}
	return provider, nil
}

// ProviderConstructor adapts ProviderFromConfig to the testgen registry
// shape, letting generated matrices carry ready provider objects.
func ProviderConstructor(loader *conf.Loader) testgen.Constructor {
	return func(key string, item testgen.Item) (any, error) {
		return ProviderFromConfig(loader, key)
	}
}
