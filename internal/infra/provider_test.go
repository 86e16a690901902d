package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conwalk/conwalk"
	"github.com/conwalk/conwalk/internal/conf"
	"github.com/conwalk/conwalk/internal/testgen"
)

func TestProvider_Create(t *testing.T) {
	ui, page := newTestUI(t)
	provider := &Provider{
		Name:        "vsphere55",
		TypeLabel:   "VMware vCenter",
		Hostname:    "vcenter.example.com",
		IPAddress:   "10.0.0.2",
		Credentials: &Credential{Principal: "administrator", Secret: "sekrit"},
	}

	err := provider.Create(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.CalledWith("navigate /ems_infra/show_list"))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Add a New Infrastructure Provider"]`))
	assert.True(t, page.CalledWith("fill #name=vsphere55"))
	assert.True(t, page.CalledWith("select #server_emstype=VMware vCenter"))
	assert.True(t, page.CalledWith("fill #default_userid=administrator"))
	assert.True(t, page.CalledWith("click #add_submit"))
}

func TestProvider_Create_RequiresName(t *testing.T) {
	ui, page := newTestUI(t)
	provider := &Provider{Hostname: "vcenter.example.com"}

	err := provider.Create(context.Background(), ui, false)
	require.ErrorIs(t, err, conwalk.ErrRequiredName)
	assert.Empty(t, page.Calls)
}

func TestProvider_Delete(t *testing.T) {
	ui, page := newTestUI(t)
	provider := &Provider{Name: "vsphere55"}

	err := provider.Delete(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.AcceptDialog)
	assert.True(t, page.CalledWith("click #item-provider-vsphere55 a"))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Remove this Infrastructure Provider from the VMDB"]`))
}

func TestProviderFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "cfme_data.yaml", `
management_systems:
  vsphere55:
    name: vsphere 5.5
    type: virtualcenter
    type_label: VMware vCenter
    hostname: vcenter.example.com
    ipaddress: 10.0.0.2
    credentials: vsphere_creds
`)
	writeYAML(t, dir, "credentials.yaml", `
vsphere_creds:
  username: administrator
  password: sekrit
`)
	loader := conf.NewLoader(dir)

	provider, err := ProviderFromConfig(loader, "vsphere55")
	require.NoError(t, err)
	assert.Equal(t, "vsphere55", provider.Key)
	assert.Equal(t, "vsphere 5.5", provider.Name)
	assert.Equal(t, "virtualcenter", provider.Type)
	require.NotNil(t, provider.Credentials)
	assert.Equal(t, "administrator", provider.Credentials.Principal)
}

func TestProviderConstructor(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "cfme_data.yaml", `
management_systems:
  vsphere55:
    name: vsphere 5.5
    type: virtualcenter
`)
	loader := conf.NewLoader(dir)

	registry := testgen.NewRegistry()
	registry.Register("virtualcenter", ProviderConstructor(loader))

	obj, err := registry.New("vsphere55", testgen.Item{"type": "virtualcenter"})
	require.NoError(t, err)
	provider, ok := obj.(*Provider)
	require.True(t, ok)
	assert.Equal(t, "vsphere 5.5", provider.Name)
}
