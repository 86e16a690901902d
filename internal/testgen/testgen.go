// Package testgen expands a yaml-described inventory into the
// (argnames, argvalues, idlist) triple consumed by a test parametrization
// engine.
//
// A test declares the parameter names it needs; the generator reads the
// requested plain fields off each inventory item, attaches any declared
// special (computed) fields, and decides whether the resulting matrix
// parametrizes the test, skips parametrization, or uncollects the test
// entirely.
package testgen

import (
	"fmt"
	"sort"

	"github.com/conwalk/conwalk/internal/logr"
)

type (
	// Item is one named inventory record. Its "type" key tags which
	// constructors apply to it.
	Item map[string]any

	// Inventory is a named collection of items, e.g. the
	// management_systems mapping from the config.
	Inventory map[string]Item

	// Matrix is the parametrization triple: IDs[i] is the human-readable
	// inventory key for Argvalues[i], and every row is positionally
	// aligned with Argnames.
	Matrix struct {
		Argnames  []string
		Argvalues [][]any
		IDs       []string
	}

	// SpecialField is a computed parametrization column: its value is
	// constructed from the inventory item rather than read off it, and it
	// is only attached when the consuming test declares the name.
	SpecialField struct {
		Name      string
		Construct func(key string, item Item) (any, error)
	}
)

// Type returns the item's type tag, or the empty string if untagged.
func (i Item) Type() string {
	tag, _ := i["type"].(string)
	return tag
}

// InventoryFromConfig extracts the named top-level mapping from a loaded
// config into an Inventory.
func InventoryFromConfig(cfg map[string]any, key string) (Inventory, error) {
	raw, ok := cfg[key]
	if !ok {
		return Inventory{}, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config section %q is not a mapping", key)
	}
	inv := make(Inventory, len(section))
	for name, v := range section {
		item, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("inventory item %q in section %q is not a mapping", name, key)
		}
		inv[name] = Item(item)
	}
	return inv, nil
}

// keys returns the inventory keys sorted, so matrix rows and their IDs are
// stable and greppable across runs.
func (inv Inventory) keys() []string {
	keys := make([]string, 0, len(inv))
	for key := range inv {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SelectByType filters the inventory to items whose type tag is in
// allowedTypes (all items if allowedTypes is empty) and builds one matrix
// row per retained item.
//
// Each row holds, in order: the value of each requested plain field (an
// empty-string placeholder, with a logged warning, when the item does not
// define the field), then the constructed value of each special field whose
// name appears in declared. Special fields the test does not declare are
// never constructed, so expensive values (live backend connections) are
// only built for tests that use them.
func SelectByType(logger logr.Logger, inv Inventory, allowedTypes []string, fields []string, specials []SpecialField, declared map[string]bool) (Matrix, error) {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}

	m := Matrix{Argnames: append([]string(nil), fields...)}

	var attached []SpecialField
	for _, special := range specials {
		if declared[special.Name] {
			m.Argnames = append(m.Argnames, special.Name)
			attached = append(attached, special)
		}
	}

	for _, key := range inv.keys() {
		item := inv[key]
		if len(allowed) > 0 && !allowed[item.Type()] {
			continue
		}

		values := make([]any, 0, len(m.Argnames))
		for _, field := range fields {
			value, ok := item[field]
			if !ok || value == nil {
				logger.Info("field not defined for inventory item, defaulting to empty",
					"field", field, "item", key)
				value = ""
			}
			values = append(values, value)
		}
		for _, special := range attached {
			value, err := special.Construct(key, item)
			if err != nil {
				return Matrix{}, err
			}
			values = append(values, value)
		}

		m.Argvalues = append(m.Argvalues, values)
		m.IDs = append(m.IDs, key)
	}
	return m, nil
}

// FilterUnused projects the matrix down to the columns whose argname the
// test declares, preserving relative order of both names and row values.
// One generator can thereby serve many tests that each need only a subset
// of the generated columns.
func FilterUnused(m Matrix, declared map[string]bool) Matrix {
	var keep []int
	for i, name := range m.Argnames {
		if declared[name] {
			keep = append(keep, i)
		}
	}

	filtered := Matrix{IDs: m.IDs}
	for _, i := range keep {
		filtered.Argnames = append(filtered.Argnames, m.Argnames[i])
	}
	for _, row := range m.Argvalues {
		projected := make([]any, 0, len(keep))
		for _, i := range keep {
			projected = append(projected, row[i])
		}
		filtered.Argvalues = append(filtered.Argvalues, projected)
	}
	return filtered
}

// Decision is the outcome of checking whether a matrix should parametrize
// a test.
type Decision int

const (
	// Skip: no argnames were requested, there is nothing to parametrize.
	Skip Decision = iota
	// Parametrize: argnames were requested and values were generated.
	Parametrize
	// Uncollect: argnames were requested but no values could be
	// generated; the test cannot run and must be removed from the
	// collection rather than failing on a missing fixture.
	Uncollect
)

func (d Decision) String() string {
	switch d {
	case Skip:
		return "skip"
	case Parametrize:
		return "parametrize"
	case Uncollect:
		return "uncollect"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Decide performs the three-way parametrization check for the named test.
// An Uncollect outcome logs a warning carrying the fully-qualified test
// name so the removal is diagnosable from the run output.
func Decide(logger logr.Logger, testName string, m Matrix) Decision {
	if len(m.Argnames) == 0 {
		return Skip
	}
	for _, row := range m.Argvalues {
		if len(row) > 0 {
			return Parametrize
		}
	}
	logger.Info("parametrization yielded no values, marked for uncollection", "test", testName)
	return Uncollect
}
