package configure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/logr"
)

func newTestUI(t *testing.T) (*console.UI, *console.FakePage) {
	t.Helper()
	page := console.NewFakePage()
	ui, err := console.New(logr.Discard(), page, Navigation(page))
	require.NoError(t, err)
	return ui, page
}

func TestAbout_Version(t *testing.T) {
	ui, page := newTestUI(t)
	page.Banners[versionSelector] = "5.4.0.5.20140829161132_42b4532"

	version, err := (&About{}).Version(context.Background(), ui)
	require.NoError(t, err)
	assert.Equal(t, "5.4.0.5.20140829161132_42b4532", version)
	assert.True(t, page.CalledWith("navigate /configuration/about"))
}

func TestAbout_MissingGuides(t *testing.T) {
	ui, page := newTestUI(t)
	for _, guide := range Guides {
		page.Displayed[guideEntry(guide)] = true
	}
	page.Displayed[guideEntry("Insight Guide")] = false
	page.Displayed[guideEntry("Control Guide")] = false

	missing, err := (&About{}).MissingGuides(context.Background(), ui)
	require.NoError(t, err)
	assert.Equal(t, []string{"Insight Guide", "Control Guide"}, missing)
}

func TestAbout_MissingGuides_AllDisplayed(t *testing.T) {
	ui, page := newTestUI(t)
	for _, guide := range Guides {
		page.Displayed[guideEntry(guide)] = true
	}

	missing, err := (&About{}).MissingGuides(context.Background(), ui)
	require.NoError(t, err)
	assert.Empty(t, missing)
}
