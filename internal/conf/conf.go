// Package conf loads the yaml configuration files describing the console
// under test and its inventory of providers, hosts and pxe servers.
//
// A config named "cfme_data" is loaded from <dir>/cfme_data.yaml. If a
// sibling "cfme_data.local.yaml" exists it is recursively merged on top:
// mappings merge key-by-key, while scalar and list values in the overlay
// replace the base value outright.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
)

// NotFoundError is returned when a named config file is absent.
type NotFoundError struct {
	Name string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unable to load configuration file %s at %s", e.Name, e.Path)
}

// Loader loads and caches yaml configs from a directory.
type Loader struct {
	dir string

	mu    sync.Mutex
	cache map[string]map[string]any
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, cache: make(map[string]map[string]any)}
}

// Load returns the named config, deep-merged with its local overlay if one
// exists. Configs are cached; repeated loads return the same mapping.
func (l *Loader) Load(name string) (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[name]; ok {
		return cached, nil
	}

	doc, err := l.read(name)
	if err != nil {
		return nil, err
	}

	// Graft in local yaml updates if they're available.
	local, err := l.read(name + ".local")
	if err == nil {
		Merge(doc, local)
	} else if _, ok := err.(*NotFoundError); !ok {
		return nil, err
	}

	l.cache[name] = doc
	return doc, nil
}

// Reset drops all cached configs, forcing the next Load to re-read from
// disk.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]map[string]any)
}

func (l *Loader) read(name string) (map[string]any, error) {
	path := filepath.Join(l.dir, name+".yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: name, Path: path}
		}
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}

// Merge recursively folds the overlay into base. Only nested mappings are
// merged; any other value, lists included, replaces the base value.
func Merge(base, overlay map[string]any) {
	for key, value := range overlay {
		if overlayMap, ok := toMap(value); ok {
			if baseMap, ok := toMap(base[key]); ok {
				Merge(baseMap, overlayMap)
				base[key] = baseMap
				continue
			}
		}
		base[key] = value
	}
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		// yaml decoders produce interface-keyed maps for some documents
		converted := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			converted[ks] = val
		}
		return converted, true
	default:
		return nil, false
	}
}
