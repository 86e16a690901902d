package flash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage serves canned banner content keyed by selector.
type fakePage struct {
	banners map[string]string
}

func (p *fakePage) Text(ctx context.Context, selector string) (string, error) {
	return p.banners[selector], nil
}

func (p *fakePage) IsDisplayed(ctx context.Context, selector string) (bool, error) {
	_, ok := p.banners[selector]
	return ok, nil
}

func TestAssertNoErrors(t *testing.T) {
	ctx := context.Background()

	clean := &fakePage{banners: map[string]string{SuccessSelector: "Host was added"}}
	assert.NoError(t, AssertNoErrors(ctx, clean))

	broken := &fakePage{banners: map[string]string{ErrorSelector: " Name has already been taken "}}
	err := AssertNoErrors(ctx, broken)
	var banner *BannerError
	require.ErrorAs(t, err, &banner)
	assert.Equal(t, "Name has already been taken", banner.Message)
}

func TestAssertMessageContains(t *testing.T) {
	ctx := context.Background()

	p := &fakePage{banners: map[string]string{SuccessSelector: "created organization: my-new-org"}}
	assert.NoError(t, AssertMessageContains(ctx, p, "my-new-org"))

	// error banners are checked too, for duplicate-name style assertions
	dup := &fakePage{banners: map[string]string{ErrorSelector: "Name has already been taken"}}
	assert.NoError(t, AssertMessageContains(ctx, dup, "already been taken"))

	err := AssertMessageContains(ctx, p, "deleted")
	var missing *MissingMessageError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "deleted", missing.Want)

	blank := &fakePage{banners: map[string]string{}}
	err = AssertMessageContains(ctx, blank, "anything")
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, missing.Got)
}
