// Package form models a console form as a mapping from logical field
// names to selectors, decoupling what a test fills in from where the
// widget lives on the page.
package form

import (
	"context"
	"fmt"
)

// Kind is the widget type behind a field, deciding which browser
// primitive fills it.
type Kind int

const (
	Text Kind = iota
	Select
	Checkbox
	// Radio fields click the group member whose value attribute matches
	// the given string.
	Radio
	// Button fields are clicked when their value is true, e.g. a
	// credentials-validate button.
	Button
)

// Filler is the subset of browser primitives form filling needs.
type Filler interface {
	Fill(ctx context.Context, selector, value string) error
	SelectOption(ctx context.Context, selector, value string) error
	SetChecked(ctx context.Context, selector string, checked bool) error
	Click(ctx context.Context, selector string) error
}

type Field struct {
	Name     string
	Selector string
	Kind     Kind
}

// Form is an ordered list of fields; fill order follows declaration
// order, matching the tab order of the real page.
type Form struct {
	Fields []Field
}

// Fill writes the given values into the form, skipping fields with no
// value, then clicks the action selector if one is given. Text and Select
// fields take strings, Checkbox and Button fields take booleans.
func (f Form) Fill(ctx context.Context, p Filler, values map[string]any, action string) error {
	for _, field := range f.Fields {
		value, ok := values[field.Name]
		if !ok || value == nil {
			continue
		}
		if err := fillField(ctx, p, field, value); err != nil {
			return fmt.Errorf("filling field %q: %w", field.Name, err)
		}
	}
	if action != "" {
		return p.Click(ctx, action)
	}
	return nil
}

func fillField(ctx context.Context, p Filler, field Field, value any) error {
	switch field.Kind {
	case Text:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		return p.Fill(ctx, field.Selector, s)
	case Select:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		return p.SelectOption(ctx, field.Selector, s)
	case Radio:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		return p.Click(ctx, fmt.Sprintf("%s[value=%q]", field.Selector, s))
	case Checkbox:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		return p.SetChecked(ctx, field.Selector, b)
	case Button:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		if b {
			return p.Click(ctx, field.Selector)
		}
		return nil
	default:
		return fmt.Errorf("unknown field kind %d", field.Kind)
	}
}
