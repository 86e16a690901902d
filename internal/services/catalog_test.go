package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conwalk/conwalk"
	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/flash"
	"github.com/conwalk/conwalk/internal/logr"
)

func newTestUI(t *testing.T) (*console.UI, *console.FakePage) {
	t.Helper()
	page := console.NewFakePage()
	ui, err := console.New(logr.Discard(), page, Navigation(page))
	require.NoError(t, err)
	return ui, page
}

func TestCatalog_Create(t *testing.T) {
	ui, page := newTestUI(t)
	catalog := &Catalog{Name: "auto-cat", Description: "automated catalog"}

	err := catalog.Create(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.CalledWith("navigate /catalog/explorer"))
	assert.True(t, page.CalledWith(`click .accordion div[title="Catalogs"]`))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Add a New Catalog"]`))
	assert.True(t, page.CalledWith("fill #name=auto-cat"))
	assert.True(t, page.CalledWith("fill #description=automated catalog"))
	assert.True(t, page.CalledWith("click #add_button"))
}

func TestCatalog_Create_Cancel(t *testing.T) {
	ui, page := newTestUI(t)
	catalog := &Catalog{Name: "auto-cat"}

	err := catalog.Create(context.Background(), ui, true)
	require.NoError(t, err)
	assert.True(t, page.CalledWith("click #cancel_button"))
	assert.False(t, page.CalledWith("click #add_button"))
}

func TestCatalog_Create_RequiresName(t *testing.T) {
	ui, page := newTestUI(t)

	err := (&Catalog{Description: "nameless"}).Create(context.Background(), ui, false)
	require.ErrorIs(t, err, conwalk.ErrRequiredName)
	assert.Empty(t, page.Calls)
}

func TestCatalog_Create_DuplicateName(t *testing.T) {
	ui, page := newTestUI(t)
	page.Banners[flash.ErrorSelector] = "Name has already been taken"
	catalog := &Catalog{Name: "auto-cat"}

	err := catalog.Create(context.Background(), ui, false)
	var bannerErr *flash.BannerError
	require.ErrorAs(t, err, &bannerErr)
}

func TestCatalog_Update(t *testing.T) {
	ui, page := newTestUI(t)
	catalog := &Catalog{Name: "auto-cat", Description: "automated catalog"}

	err := catalog.Update(context.Background(), ui, CatalogUpdate{
		Description: conwalk.String("edited description"),
	})
	require.NoError(t, err)

	assert.True(t, page.CalledWith(`click .accordion a[title="auto-cat"]`))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Edit this Item"]`))
	assert.True(t, page.CalledWith("fill #description=edited description"))
	assert.False(t, page.CalledWith("fill #name"))
	assert.True(t, page.CalledWith("click #save_button"))

	assert.Equal(t, "auto-cat", catalog.Name)
	assert.Equal(t, "edited description", catalog.Description)
}

func TestCatalog_Delete(t *testing.T) {
	ui, page := newTestUI(t)
	catalog := &Catalog{Name: "auto-cat"}

	err := catalog.Delete(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.AcceptDialog)
	assert.True(t, page.CalledWith(`click #toolbar a[title="Remove Item from the VMDB"]`))
}

func TestCatalog_Exists(t *testing.T) {
	ui, page := newTestUI(t)
	catalog := &Catalog{Name: "auto-cat"}

	exists, err := catalog.Exists(context.Background(), ui)
	require.NoError(t, err)
	assert.False(t, exists)

	page.Displayed[accordionEntry("auto-cat")] = true
	exists, err = catalog.Exists(context.Background(), ui)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCatalogItem_Create(t *testing.T) {
	ui, page := newTestUI(t)
	item := &CatalogItem{
		ItemType:         "VMware",
		Name:             "vm-item",
		Description:      "provisions a vm",
		DisplayInCatalog: true,
		Catalog:          "auto-cat",
		Dialog:           "provision-dialog",
	}

	err := item.Create(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.CalledWith(`click .accordion div[title="Catalog Items"]`))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Add a New Catalog Item"]`))
	assert.True(t, page.CalledWith("select #st_prov_type=VMware"))
	assert.True(t, page.CalledWith("fill #name=vm-item"))
	assert.True(t, page.CalledWith("setchecked #display=true"))
	assert.True(t, page.CalledWith("select #catalog_id=auto-cat"))
	assert.True(t, page.CalledWith("select #dialog_id=provision-dialog"))
	assert.True(t, page.CalledWith("click #add_button"))
}

func TestCatalogItem_Delete(t *testing.T) {
	ui, page := newTestUI(t)
	item := &CatalogItem{Name: "vm-item"}

	err := item.Delete(context.Background(), ui, false)
	require.NoError(t, err)
	assert.True(t, page.AcceptDialog)
	assert.True(t, page.CalledWith(`click .accordion a[title="vm-item"]`))
}
