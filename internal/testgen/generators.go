package testgen

import "sort"

// ProviderSpecials returns the standard special fields for provider-driven
// tests: the inventory key, the raw item, the provider page model (built
// from crud), the management backend client (built from mgmt) and the type
// tag. The caller's declared parameter names decide which of these are
// actually constructed.
func ProviderSpecials(crud, mgmt *Registry) []SpecialField {
	return []SpecialField{
		{Name: "provider_key", Construct: func(key string, item Item) (any, error) {
			return key, nil
		}},
		{Name: "provider_data", Construct: func(key string, item Item) (any, error) {
			return item, nil
		}},
		{Name: "provider_crud", Construct: func(key string, item Item) (any, error) {
			return crud.New(key, item)
		}},
		{Name: "provider_mgmt", Construct: func(key string, item Item) (any, error) {
			return mgmt.New(key, item)
		}},
		{Name: "provider_type", Construct: func(key string, item Item) (any, error) {
			return item.Type(), nil
		}},
	}
}

// AuthGroups produces a (group_name, group_data) matrix from the
// auth_modes and group_roles config sections. The matrix is empty unless
// the requested auth mode is configured.
func AuthGroups(cfg map[string]any, authMode string) Matrix {
	m := Matrix{Argnames: []string{"group_name", "group_data"}}

	modes, _ := cfg["auth_modes"].(map[string]any)
	if _, ok := modes[authMode]; !ok {
		return m
	}

	groups, _ := cfg["group_roles"].(map[string]any)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		roles := sortedStrings(groups[name])
		m.Argvalues = append(m.Argvalues, []any{name, roles})
		m.IDs = append(m.IDs, name)
	}
	return m
}

// PXEServers produces a (pxe_name, pxe_server_crud) matrix from the
// pxe_servers config section, constructing a live pxe server object for
// each entry.
func PXEServers(cfg map[string]any, construct Constructor) (Matrix, error) {
	m := Matrix{Argnames: []string{"pxe_name", "pxe_server_crud"}}

	inv, err := InventoryFromConfig(cfg, "pxe_servers")
	if err != nil {
		return Matrix{}, err
	}
	for _, key := range inv.keys() {
		item := inv[key]
		crud, err := construct(key, item)
		if err != nil {
			return Matrix{}, err
		}
		m.Argvalues = append(m.Argvalues, []any{item["name"], crud})
		m.IDs = append(m.IDs, key)
	}
	return m, nil
}

func sortedStrings(v any) []string {
	raw, _ := v.([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
