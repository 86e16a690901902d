package automate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestServiceDialog_Create(t *testing.T) {
	ui, page := newTestUI(t)
	dialog := &ServiceDialog{
		Label:       "provision-dialog",
		Description: "collects provisioning input",
		Submit:      true,
		Cancel:      true,
	}

	err := dialog.Create(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.CalledWith("navigate /miq_ae_customization/explorer"))
	assert.True(t, page.CalledWith(`click .accordion div[title="Service Dialogs"]`))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Add a new Dialog"]`))
	assert.True(t, page.CalledWith("fill #label=provision-dialog"))
	assert.True(t, page.CalledWith("setchecked #chkbx_submit=true"))
	assert.True(t, page.CalledWith("setchecked #chkbx_cancel=true"))
	assert.True(t, page.CalledWith("click #add_button"))
}

func TestServiceDialog_Create_NoButtons(t *testing.T) {
	ui, page := newTestUI(t)
	dialog := &ServiceDialog{Label: "bare-dialog"}

	err := dialog.Create(context.Background(), ui, false)
	require.NoError(t, err)
	assert.True(t, page.CalledWith("setchecked #chkbx_submit=false"))
	assert.True(t, page.CalledWith("setchecked #chkbx_cancel=false"))
}

func TestServiceDialog_Create_ErrorBanner(t *testing.T) {
	ui, page := newTestUI(t)
	page.Banners[flash.ErrorSelector] = "Label has already been taken"
	dialog := &ServiceDialog{Label: "provision-dialog"}

	err := dialog.Create(context.Background(), ui, false)
	var bannerErr *flash.BannerError
	require.ErrorAs(t, err, &bannerErr)
	assert.Equal(t, "Label has already been taken", bannerErr.Message)
}

func TestServiceDialog_Delete(t *testing.T) {
	ui, page := newTestUI(t)
	dialog := &ServiceDialog{Label: "provision-dialog"}

	err := dialog.Delete(context.Background(), ui, false)
	require.NoError(t, err)

	assert.True(t, page.AcceptDialog)
	assert.True(t, page.CalledWith(`click .accordion a[title="provision-dialog"]`))
	assert.True(t, page.CalledWith(`click #toolbar a[title="Remove Dialog"]`))
}

func TestServiceDialog_Exists(t *testing.T) {
	ui, page := newTestUI(t)
	dialog := &ServiceDialog{Label: "provision-dialog"}

	exists, err := dialog.Exists(context.Background(), ui)
	require.NoError(t, err)
	assert.False(t, exists)

	page.Displayed[dialogEntry("provision-dialog")] = true
	exists, err = dialog.Exists(context.Background(), ui)
	require.NoError(t, err)
	assert.True(t, exists)
}
