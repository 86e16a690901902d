// Package flash inspects the console's transient banner area, turning
// silent UI failures into explicit test failures after every mutating
// operation.
package flash

import (
	"context"
	"fmt"
	"strings"
)

const (
	ErrorSelector   = ".flash-error"
	SuccessSelector = ".flash-success"
)

// Page is the subset of browser primitives banner inspection needs.
type Page interface {
	Text(ctx context.Context, selector string) (string, error)
	IsDisplayed(ctx context.Context, selector string) (bool, error)
}

// BannerError reports an error banner on the last-rendered page.
type BannerError struct {
	Message string
}

func (e *BannerError) Error() string {
	return fmt.Sprintf("error banner displayed: %s", e.Message)
}

// MissingMessageError reports the absence of an expected banner message.
type MissingMessageError struct {
	Want string
	Got  string
}

func (e *MissingMessageError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("no banner displayed, expected message containing %q", e.Want)
	}
	return fmt.Sprintf("banner %q does not contain %q", e.Got, e.Want)
}

// AssertNoErrors fails if the last-rendered page shows an error banner.
func AssertNoErrors(ctx context.Context, p Page) error {
	displayed, err := p.IsDisplayed(ctx, ErrorSelector)
	if err != nil {
		return err
	}
	if !displayed {
		return nil
	}
	message, err := p.Text(ctx, ErrorSelector)
	if err != nil {
		return err
	}
	return &BannerError{Message: strings.TrimSpace(message)}
}

// AssertMessageContains fails unless a banner containing the wanted
// substring is displayed. Both success and error banners are checked, so
// tests can assert on expected error messages too.
func AssertMessageContains(ctx context.Context, p Page, want string) error {
	var got string
	for _, selector := range []string{SuccessSelector, ErrorSelector} {
		displayed, err := p.IsDisplayed(ctx, selector)
		if err != nil {
			return err
		}
		if !displayed {
			continue
		}
		text, err := p.Text(ctx, selector)
		if err != nil {
			return err
		}
		got = strings.TrimSpace(text)
		if strings.Contains(got, want) {
			return nil
		}
	}
	return &MissingMessageError{Want: want, Got: got}
}
