// Package cloud models the console's cloud pages, chiefly instance
// provisioning, where creating the entity means submitting a provision
// request and waiting for the instance to materialize on the backend.
package cloud

import (
	"context"
	"fmt"

	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/flash"
	"github.com/conwalk/conwalk/internal/form"
	"github.com/conwalk/conwalk/internal/infra"
	"github.com/conwalk/conwalk/internal/mgmt"
	"github.com/conwalk/conwalk/internal/nav"
	"github.com/conwalk/conwalk/internal/wait"
)

var provisioningForm = form.Form{Fields: []form.Field{
	{Name: "email_text", Selector: "#requester__owner_email"},
	{Name: "first_name_text", Selector: "#requester__owner_first_name"},
	{Name: "last_name_text", Selector: "#requester__owner_last_name"},
	{Name: "instance_name_text", Selector: "#service__vm_name"},
	{Name: "availability_zone", Selector: "#environment__placement_availability_zone", Kind: form.Select},
	{Name: "instance_type", Selector: "#hardware__instance_type", Kind: form.Select},
	{Name: "security_groups", Selector: "#environment__security_groups", Kind: form.Select},
	{Name: "public_key_name", Selector: "#customize__ssh_key_name", Kind: form.Select},
}}

const provisionSubmit = "#form_buttons button[title=\"Submit\"]"

// Template names the image an instance is provisioned from.
type Template struct {
	Name string
}

// TemplateNotFoundError is returned when the provisioning wizard does not
// list the requested template for the chosen provider.
type TemplateNotFoundError struct {
	Template string
	Provider string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not listed for provider %q", e.Template, e.Provider)
}

// Instance models a cloud instance provisioned through the console.
type Instance struct {
	Name             string
	Email            string
	FirstName        string
	LastName         string
	AvailabilityZone string
	InstanceType     string
	SecurityGroups   string
	KeyPairName      string
}

type CreateOptions struct {
	// WaitBudget bounds the wait for the backend to report the instance;
	// wait.DefaultTimeout if zero.
	WaitBudget wait.Options
}

// Create submits a provision request for the instance from the given
// template, then polls the provider backend until the instance exists.
func (i *Instance) Create(ctx context.Context, ui *console.UI, provider *infra.Provider, template Template, backend mgmt.Backend, opts CreateOptions) error {
	nctx := nav.Context{"provider": provider, "template": template}
	if err := ui.ForceNavigate(ctx, "clouds_provision_instances", nctx); err != nil {
		return err
	}

	values := map[string]any{
		"email_text":         orNil(i.Email),
		"first_name_text":    orNil(i.FirstName),
		"last_name_text":     orNil(i.LastName),
		"instance_name_text": orNil(i.Name),
		"availability_zone":  orNil(i.AvailabilityZone),
		"instance_type":      orNil(i.InstanceType),
		"security_groups":    orNil(i.SecurityGroups),
		"public_key_name":    orNil(i.KeyPairName),
	}
	if err := provisioningForm.Fill(ctx, ui.Page, values, provisionSubmit); err != nil {
		return err
	}
	if err := flash.AssertNoErrors(ctx, ui.Page); err != nil {
		return err
	}

	waitOpts := opts.WaitBudget
	waitOpts.Message = fmt.Sprintf("instance %s to exist on provider %s", i.Name, provider.Key)
	if waitOpts.OnRetry == nil {
		waitOpts.OnRetry = ui.Page.Refresh
	}
	return wait.For(ctx, func(ctx context.Context) (bool, error) {
		return backend.DoesVMExist(ctx, i.Name)
	}, waitOpts)
}

// Exists reports whether the instance's tile is present on the instances
// listing.
func (i *Instance) Exists(ctx context.Context, ui *console.UI) (bool, error) {
	if err := ui.ForceNavigate(ctx, "clouds_instances", nil); err != nil {
		return false, err
	}
	return ui.Page.IsDisplayed(ctx, console.QuadiconSelector("instance", i.Name))
}

// Terminate removes the instance through the backend, then waits for it to
// disappear from the provider.
func (i *Instance) Terminate(ctx context.Context, backend mgmt.Backend, opts wait.Options) error {
	if err := backend.DeleteVM(ctx, i.Name); err != nil {
		return err
	}
	opts.Message = fmt.Sprintf("instance %s to be removed", i.Name)
	return wait.For(ctx, func(ctx context.Context) (bool, error) {
		exists, err := backend.DoesVMExist(ctx, i.Name)
		return !exists, err
	}, opts)
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
