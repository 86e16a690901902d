// Package browser wraps chromedp with the handful of primitives the rest
// of the framework consumes: click, fill, wait, banner text, dialog
// handling and forced re-navigation. Nothing above this package imports
// chromedp directly.
package browser

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/conwalk/conwalk/internal/console"
	"github.com/conwalk/conwalk/internal/logr"
)

var _ console.Page = (*Session)(nil)

type Config struct {
	// BaseURL is the console's root URL; relative navigation paths are
	// resolved against it and Home returns to it.
	BaseURL  string
	Headless bool
}

// Session is a single browser tab talking to the console. All operations
// block until the browser confirms completion; there is no parallelism
// within a session.
type Session struct {
	ctx    context.Context
	cfg    Config
	logger logr.Logger

	// whether the next native confirm/alert dialog is accepted
	acceptDialog atomic.Bool
}

// New launches a browser and opens a tab. The returned cleanup func must
// be called to terminate the browser.
func New(ctx context.Context, logger logr.Logger, cfg Config) (*Session, func(), error) {
	allocator, cancelAllocator := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", cfg.Headless),
			chromedp.Flag("hide-scrollbars", true),
			chromedp.Flag("mute-audio", true),
			chromedp.Flag("ignore-certificate-errors", true),
			chromedp.Flag("disable-gpu", true),
		)...)

	tabCtx, cancelTab := chromedp.NewContext(allocator)
	cleanup := func() {
		cancelTab()
		cancelAllocator()
	}

	s := &Session{ctx: tabCtx, cfg: cfg, logger: logger}
	s.acceptDialog.Store(true)

	// respond to native confirm/alert dialogs as they pop up
	chromedp.ListenTarget(tabCtx, func(ev any) {
		if _, ok := ev.(*page.EventJavascriptDialogOpening); ok {
			accept := s.acceptDialog.Load()
			go func() {
				if err := chromedp.Run(tabCtx, page.HandleJavaScriptDialog(accept)); err != nil {
					logger.Error(err, "handling javascript dialog")
				}
			}()
		}
	})

	// ensure the browser actually started
	if err := chromedp.Run(tabCtx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("starting browser: %w", err)
	}
	return s, cleanup, nil
}

// ExpectDialog sets whether subsequent native dialogs are accepted or
// dismissed. Set before triggering the action that raises the dialog.
func (s *Session) ExpectDialog(accept bool) {
	s.acceptDialog.Store(accept)
}

func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := linkRun(s.ctx, ctx)
	defer cancel()
	err := chromedp.Run(runCtx, actions...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		// Surface the caller's deadline or cancellation instead of the
		// cancellation chromedp reports for the aborted action.
		return ctxErr
	}
	return err
}

// linkRun derives a cancellable child of the tab context whose lifetime is
// tied to the caller's context. Cancelling or timing out the caller aborts
// the in-flight action without terminating the tab, so a wait on an absent
// element fails within the caller's budget rather than hanging.
func linkRun(tab, caller context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(tab)
	stop := context.AfterFunc(caller, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Navigate loads the given URL, resolving relative paths against the
// configured base URL.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if !strings.Contains(url, "://") {
		url = strings.TrimSuffix(s.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(url, "/")
	}
	s.logger.V(1).Info("navigate", "url", url)
	return s.run(ctx, chromedp.Navigate(url))
}

// Home returns to the console's root page, the known-good state forced
// navigation resets to.
func (s *Session) Home(ctx context.Context) error {
	return s.run(ctx, chromedp.Navigate(s.cfg.BaseURL))
}

// Refresh reloads the current page.
func (s *Session) Refresh(ctx context.Context) error {
	return s.run(ctx, chromedp.Reload())
}

func (s *Session) Click(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.Click(selector, chromedp.NodeVisible, chromedp.ByQuery))
}

func (s *Session) Fill(ctx context.Context, selector, value string) error {
	return s.run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.SetValue(selector, value, chromedp.ByQuery),
	)
}

func (s *Session) SelectOption(ctx context.Context, selector, value string) error {
	return s.run(ctx, chromedp.SetValue(selector, value, chromedp.ByQuery))
}

func (s *Session) SetChecked(ctx context.Context, selector string, checked bool) error {
	script := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); if (!el) return false; el.checked = %t; el.dispatchEvent(new Event('change')); return true; })()`,
		selector, checked)
	var ok bool
	if err := s.run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no element matches %q", selector)
	}
	return nil
}

// Text extracts the text content of the first visible element matching
// the selector.
func (s *Session) Text(ctx context.Context, selector string) (string, error) {
	var text string
	err := s.run(ctx, chromedp.Text(selector, &text, chromedp.NodeVisible, chromedp.ByQuery))
	return text, err
}

// IsDisplayed reports whether an element matching the selector is present
// and visible, without waiting for it to appear.
func (s *Session) IsDisplayed(ctx context.Context, selector string) (bool, error) {
	script := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); return !!(el && el.offsetParent !== null); })()`,
		selector)
	var displayed bool
	err := s.run(ctx, chromedp.Evaluate(script, &displayed))
	return displayed, err
}

// WaitVisible blocks until an element matching the selector is visible.
func (s *Session) WaitVisible(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Attr reads an attribute off the first element matching the selector.
func (s *Session) Attr(ctx context.Context, selector, name string) (string, bool, error) {
	var value string
	var ok bool
	err := s.run(ctx, chromedp.AttributeValue(selector, name, &value, &ok, chromedp.ByQuery))
	return value, ok, err
}

// ExecScript evaluates arbitrary javascript on the current page.
func (s *Session) ExecScript(ctx context.Context, script string) error {
	return s.run(ctx, chromedp.Evaluate(script, nil))
}
