package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conwalk/conwalk/internal/conf"
)

func TestPXEServer_Create(t *testing.T) {
	ui, page := newTestUI(t)
	server := &PXEServer{
		Name:         "pxe-01",
		URI:          "nfs://pxe.example.com/export",
		PXEDir:       "pxes",
		MenuFilename: "menu.php",
	}

	err := server.Create(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.CalledWith("navigate /pxe/explorer"))
	assert.True(t, page.CalledWith(`click .accordion div[title="PXE Servers"]`))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Add a New PXE Server"]`))
	assert.True(t, page.CalledWith("fill #uri=nfs://pxe.example.com/export"))
	assert.True(t, page.CalledWith("fill #pxemenu_0=menu.php"))
	assert.True(t, page.CalledWith("click #add_submit"))
}

func TestPXEServer_Delete(t *testing.T) {
	ui, page := newTestUI(t)
	server := &PXEServer{Name: "pxe-01"}

	err := server.Delete(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.AcceptDialog)
	assert.True(t, page.CalledWith(`click .accordion a[title="pxe-01"]`))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Remove this PXE Server from the VMDB"]`))
}

func TestCustomizationTemplate_Create(t *testing.T) {
	ui, page := newTestUI(t)
	template := &CustomizationTemplate{
		Name:       "rhel6-kickstart",
		ImageType:  "RHEL-6",
		ScriptType: "Kickstart",
		ScriptData: "install\nreboot\n",
	}

	err := template.Create(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.CalledWith(`click .accordion div[title="Customization Templates"]`))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Add a New Customization Template"]`))
	assert.True(t, page.CalledWith("select #img_typ=RHEL-6"))
	assert.True(t, page.CalledWith("fill #script_data=install\nreboot\n"))
	assert.True(t, page.CalledWith("click #add_submit"))
}

func TestCustomizationTemplate_Delete(t *testing.T) {
	ui, page := newTestUI(t)
	template := &CustomizationTemplate{Name: "rhel6-kickstart"}

	err := template.Delete(context.Background(), ui, false)
	require.NoError(t, err)
	assert.True(t, page.AcceptDialog)
	assert.True(t, page.CalledWith(`click .accordion a[title="rhel6-kickstart"]`))
}

func TestPXEServerFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "cfme_data.yaml", `
pxe_servers:
  rhel_pxe:
    name: pxe-01
    uri: nfs://pxe.example.com/export
    pxe_directory: pxes
    windows_images_directory: microsoft
    customization_directory: customization
    pxe_menu_filename: menu.php
`)
	loader := conf.NewLoader(dir)

	server, err := PXEServerFromConfig(loader, "rhel_pxe")
	require.NoError(t, err)
	assert.Equal(t, "pxe-01", server.Name)
	assert.Equal(t, "microsoft", server.WindowsDir)
	assert.Equal(t, "menu.php", server.MenuFilename)
}
