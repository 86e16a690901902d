// Package infra models the console's infrastructure pages: hosts,
// providers and pxe servers. Each entity is a command object: it captures
// desired field values and its methods drive the console to apply them.
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
	"github.com/conwalk/conwalk/internal/wait"
)

const (
	hostAddSubmit  = "#add_submit"
	hostSaveButton = "#save_button"
	hostCancel     = "#cancel_button"
)

var hostPropertiesForm = form.Form{Fields: []form.Field{
	{Name: "name_text", Selector: "#name"},
	{Name: "hostname_text", Selector: "#hostname"},
	{Name: "ipaddress_text", Selector: "#ipaddress"},
	{Name: "custom_ident_text", Selector: "#custom_1"},
	{Name: "host_platform", Selector: "#user_assigned_os", Kind: form.Select},
	{Name: "ipmi_address_text", Selector: "#ipmi_address"},
	{Name: "mac_address_text", Selector: "#mac_address"},
	{Name: "interface_type", Selector: "input[name='interface_type']", Kind: form.Radio},
}}

var credentialForm = form.Form{Fields: []form.Field{
	{Name: "default_button", Selector: "#auth_tabs a[href='#default']", Kind: form.Button},
	{Name: "default_principal", Selector: "#default_userid"},
	{Name: "default_secret", Selector: "#default_password"},
	{Name: "default_verify_secret", Selector: "#default_verify"},
	{Name: "ipmi_button", Selector: "#auth_tabs a[href='#ipmi']", Kind: form.Button},
	{Name: "ipmi_principal", Selector: "#ipmi_userid"},
	{Name: "ipmi_secret", Selector: "#ipmi_password"},
	{Name: "ipmi_verify_secret", Selector: "#ipmi_verify"},
	{Name: "validate_btn", Selector: "#validate", Kind: form.Button},
}}

// Credential is a host credential: the default variant fills the default
// tab of the credentials form, the IPMI variant fills the ipmi tab.
type Credential struct {
	Principal    string
	Secret       string
	VerifySecret string
	IPMI         bool
}

// fill writes the credential into whichever tab of the shared credentials
// form matches its variant, optionally triggering server-side validation,
// which is itself checked against the flash banner.
func (c *Credential) fill(ctx context.Context, p console.Page, validate bool) error {
	verify := c.VerifySecret
	if verify == "" {
		verify = c.Secret
	}

	var values map[string]any
	if c.IPMI {
		values = map[string]any{
			"ipmi_button":        true,
			"ipmi_principal":     c.Principal,
			"ipmi_secret":        c.Secret,
			"ipmi_verify_secret": verify,
			"validate_btn":       validate,
		}
	} else {
		values = map[string]any{
			"default_principal":     c.Principal,
			"default_secret":        c.Secret,
			"default_verify_secret": verify,
			"validate_btn":          validate,
		}
	}
	if err := credentialForm.Fill(ctx, p, values, ""); err != nil {
		return err
	}
	if validate {
		return flash.AssertNoErrors(ctx, p)
	}
	return nil
}

// Host models an infrastructure host.
type Host struct {
	Name            string
	Hostname        string
	IPAddress       string
	CustomIdent     string
	HostPlatform    string
	IPMIAddress     string
	MACAddress      string
	InterfaceType   string
	Credentials     *Credential
	IPMICredentials *Credential
}

// HostUpdate holds the fields an update changes; nil fields are left
// untouched.
type HostUpdate struct {
	Name        *string
	Hostname    *string
	IPAddress   *string
	CustomIdent *string
	Credentials *Credential
}

type HostCreateOptions struct {
	// Cancel abandons the creation after the form has been filled.
	Cancel bool
	// ValidateCredentials triggers server-side credential validation
	// before submitting; invalid credentials fail the create.
	ValidateCredentials bool
}

func (h *Host) propertyValues() map[string]any {
	return map[string]any{
		"name_text":         orNil(h.Name),
		"hostname_text":     orNil(h.Hostname),
		"ipaddress_text":    orNil(h.IPAddress),
		"custom_ident_text": orNil(h.CustomIdent),
		"host_platform":     orNil(h.HostPlatform),
		"ipmi_address_text": orNil(h.IPMIAddress),
		"mac_address_text":  orNil(h.MACAddress),
		"interface_type":    orNil(h.InterfaceType),
	}
}

// Create adds the host through the console.
func (h *Host) Create(ctx context.Context, ui *console.UI, opts HostCreateOptions) error {
	if h.Name == "" {
		return conwalk.ErrRequiredName
	}
	if err := ui.ForceNavigate(ctx, "infrastructure_host_new", nil); err != nil {
		return err
	}
	if err := hostPropertiesForm.Fill(ctx, ui.Page, h.propertyValues(), ""); err != nil {
		return err
	}
	if h.Credentials != nil {
		if err := h.Credentials.fill(ctx, ui.Page, opts.ValidateCredentials); err != nil {
			return err
		}
	}
	if h.IPMICredentials != nil {
		if err := h.IPMICredentials.fill(ctx, ui.Page, opts.ValidateCredentials); err != nil {
			return err
		}
	}
	return h.submit(ctx, ui, opts.Cancel, hostAddSubmit)
}

// Update edits the host through the console, then patches the local
// fields so the object keeps tracking the remote state.
func (h *Host) Update(ctx context.Context, ui *console.UI, updates HostUpdate) error {
	err := ui.ForceNavigate(ctx, "infrastructure_host_edit", nav.Context{"host": h})
	if err != nil {
		return err
	}
	values := map[string]any{
		"name_text":         ptrOrNil(updates.Name),
		"hostname_text":     ptrOrNil(updates.Hostname),
		"ipaddress_text":    ptrOrNil(updates.IPAddress),
		"custom_ident_text": ptrOrNil(updates.CustomIdent),
	}
	if err := hostPropertiesForm.Fill(ctx, ui.Page, values, ""); err != nil {
		return err
	}
	if updates.Credentials != nil {
		if err := updates.Credentials.fill(ctx, ui.Page, false); err != nil {
			return err
		}
	}
	if err := h.submit(ctx, ui, false, hostSaveButton); err != nil {
		return err
	}

	// track the remote change locally
	if updates.Name != nil {
		h.Name = *updates.Name
	}
	if updates.Hostname != nil {
		h.Hostname = *updates.Hostname
	}
	if updates.IPAddress != nil {
		h.IPAddress = *updates.IPAddress
	}
	if updates.CustomIdent != nil {
		h.CustomIdent = *updates.CustomIdent
	}
	if updates.Credentials != nil {
		h.Credentials = updates.Credentials
	}
	return nil
}

// Delete removes the host, answering the confirmation dialog. With cancel
// set the dialog is dismissed and the host survives.
func (h *Host) Delete(ctx context.Context, ui *console.UI, cancel bool) error {
	err := ui.ForceNavigate(ctx, "infrastructure_host", nav.Context{"host": h})
	if err != nil {
		return err
	}
	ui.Page.ExpectDialog(!cancel)
	if err := console.ToolbarSelect(ctx, ui.Page, "Configuration", "Remove from the VMDB"); err != nil {
		return err
	}
	if cancel {
		return nil
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// Exists reports whether the host's tile is present on the hosts listing.
func (h *Host) Exists(ctx context.Context, ui *console.UI) (bool, error) {
	if err := ui.ForceNavigate(ctx, "infrastructure_hosts", nil); err != nil {
		return false, err
	}
	return ui.Page.IsDisplayed(ctx, console.QuadiconSelector("host", h.Name))
}

// WaitForDelete polls the hosts listing until the host's tile disappears,
// refreshing the page between polls.
func (h *Host) WaitForDelete(ctx context.Context, ui *console.UI, opts wait.Options) error {
	if err := ui.ForceNavigate(ctx, "infrastructure_hosts", nil); err != nil {
		return err
	}
	opts.Message = fmt.Sprintf("host %s to disappear", h.Name)
	if opts.OnRetry == nil {
		opts.OnRetry = ui.Page.Refresh
	}
	return wait.For(ctx, func(ctx context.Context) (bool, error) {
		displayed, err := ui.Page.IsDisplayed(ctx, console.QuadiconSelector("host", h.Name))
		return !displayed, err
	}, opts)
}

func (h *Host) submit(ctx context.Context, ui *console.UI, cancel bool, submitSelector string) error {
	if cancel {
		return ui.Page.Click(ctx, hostCancel)
	}
	if err := ui.Page.Click(ctx, submitSelector); err != nil {
		return err
	}
	return flash.AssertNoErrors(ctx, ui.Page)
}

// HostFromConfig builds a Host from the management_hosts section of
// cfme_data, resolving its credentials from the credentials config.
func HostFromConfig(loader *conf.Loader, key string) (*Host, error) {
	data, err := loader.Load("cfme_data")
	if err != nil {
		return nil, err
	}
	hosts, ok := data["management_hosts"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cfme_data has no management_hosts section")
	}
	item, ok := hosts[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("no management host %q in cfme_data", key)
	}

	host := &Host{
		Name:          str(item, "name"),
		Hostname:      str(item, "hostname"),
		IPAddress:     str(item, "ipaddress"),
		CustomIdent:   str(item, "custom_ident"),
		HostPlatform:  str(item, "host_platform"),
		IPMIAddress:   str(item, "ipmi_address"),
		MACAddress:    str(item, "mac_address"),
		InterfaceType: str(item, "interface_type"),
	}
	if name := str(item, "credentials"); name != "" {
		host.Credentials, err = CredentialFromConfig(loader, name)
		if err != nil {
			return nil, err
		}
	}
	if name := str(item, "ipmi_credentials"); name != "" {
		host.IPMICredentials, err = CredentialFromConfig(loader, name)
		if err != nil {
			return nil, err
		}
		host.IPMICredentials.IPMI = true
	}
	return host, nil
}

// CredentialFromConfig resolves a named credential from the credentials
// config.
func CredentialFromConfig(loader *conf.Loader, name string) (*Credential, error) {
	creds, err := loader.Load("credentials")
	if err != nil {
		return nil, err
	}
	entry, ok := creds[name].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("no credential %q in credentials config", name)
	}
	return &Credential{
		Principal: str(entry, "username"),
		Secret:    str(entry, "password"),
	}, nil
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
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
