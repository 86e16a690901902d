package console

import (
	"context"
	"fmt"
	"strings"
)

// FakePage is an in-memory Page for entity tests: it records every
// primitive invoked and serves canned banner/element state instead of
// driving a browser.
type FakePage struct {
	// Calls records each primitive in invocation order, e.g.
	// "fill #name=esx-55".
	Calls []string
	// Banners maps a flash selector to its text, e.g.
	// ".flash-error" -> "Name has already been taken".
	Banners map[string]string
	// Displayed lists selectors IsDisplayed reports as visible, in
	// addition to any configured banners.
	Displayed map[string]bool
	// AcceptDialog records the most recent ExpectDialog setting.
	AcceptDialog bool
	// Err, if set, is returned by every subsequent primitive.
	Err error
}

var _ Page = (*FakePage)(nil)

func NewFakePage() *FakePage {
	return &FakePage{
		Banners:      make(map[string]string),
		Displayed:    make(map[string]bool),
		AcceptDialog: true,
	}
}

func (p *FakePage) record(call string) error {
	p.Calls = append(p.Calls, call)
	return p.Err
}

// CalledWith reports whether any recorded call starts with the given
// prefix.
func (p *FakePage) CalledWith(prefix string) bool {
	for _, call := range p.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

func (p *FakePage) Fill(ctx context.Context, sel, value string) error {
	return p.record(fmt.Sprintf("fill %s=%s", sel, value))
}

func (p *FakePage) SelectOption(ctx context.Context, sel, value string) error {
	return p.record(fmt.Sprintf("select %s=%s", sel, value))
}

func (p *FakePage) SetChecked(ctx context.Context, sel string, checked bool) error {
	return p.record(fmt.Sprintf("setchecked %s=%t", sel, checked))
}

func (p *FakePage) Click(ctx context.Context, sel string) error {
	return p.record("click " + sel)
}

func (p *FakePage) Text(ctx context.Context, sel string) (string, error) {
	if text, ok := p.Banners[sel]; ok {
		return text, p.Err
	}
	return "", p.Err
}

func (p *FakePage) IsDisplayed(ctx context.Context, sel string) (bool, error) {
	if _, ok := p.Banners[sel]; ok {
		return true, p.Err
	}
	return p.Displayed[sel], p.Err
}

func (p *FakePage) WaitVisible(ctx context.Context, sel string) error {
	return p.record("wait " + sel)
}

func (p *FakePage) Navigate(ctx context.Context, url string) error {
	return p.record("navigate " + url)
}

func (p *FakePage) Home(ctx context.Context) error {
	return p.record("home")
}

func (p *FakePage) Refresh(ctx context.Context) error {
	return p.record("refresh")
}

func (p *FakePage) ExpectDialog(accept bool) {
	p.AcceptDialog = accept
}
