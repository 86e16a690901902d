// Package nav implements the navigation graph: a tree of named
// destinations, each guarding a callable that performs the browser actions
// needed to reach it. Destination names are unique across the whole graph,
// so resolving a name is a full-graph lookup followed by a replay of every
// ancestor action from the root down.
package nav

import (
	"context"
	"sort"

	"github.com/conwalk/conwalk/internal/logr"
)

type (
	// Context carries per-navigation state (e.g. which provider, which
	// template) through the chain of actions from root to target. It is
	// created fresh by the caller for each navigation and never retained
	// by the graph.
	Context map[string]any

	// Action performs one navigation step: a click, an accordion
	// expansion, a form continuation. Actions must be idempotent;
	// resolving a destination replays every ancestor action regardless of
	// the browser's current location.
	Action func(ctx context.Context, nctx Context) error

	// Node declares one destination in a subtree: its action and any
	// nested destinations gated behind it.
	Node struct {
		Action   Action
		Children Subtree
	}

	// Subtree is a declarative mapping of destination name to node,
	// graftable onto an existing destination.
	Subtree map[string]Node

	// Contribution pairs a subtree with the name of the destination it
	// grafts onto. Feature packages export contributions; the graph is
	// assembled from all of them once at startup.
	Contribution struct {
		Root    string
		Subtree Subtree
	}

	// Graph is the assembled navigation graph. Construction (AddBranch)
	// must complete before any resolution; a frozen graph is safe for
	// concurrent reads.
	Graph struct {
		logger logr.Logger
		root   *destination
		byName map[string]*destination
		reset  Action
		frozen bool
	}

	destination struct {
		name     string
		action   Action
		parent   *destination
		children []*destination
	}

	Option func(*Graph)
)

// WithReset configures the action ForceNavigate uses to return the browser
// to a known-good root state before replaying a path.
func WithReset(reset Action) Option {
	return func(g *Graph) { g.reset = reset }
}

func WithLogger(logger logr.Logger) Option {
	return func(g *Graph) { g.logger = logger }
}

// New constructs a graph containing only the named root destination.
func New(rootName string, rootAction Action, opts ...Option) *Graph {
	root := &destination{name: rootName, action: rootAction}
	g := &Graph{
		logger: logr.Discard(),
		root:   root,
		byName: map[string]*destination{rootName: root},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Assemble builds a graph from the given contributions, applied in order,
// and freezes it.
func Assemble(rootName string, rootAction Action, contribs []Contribution, opts ...Option) (*Graph, error) {
	g := New(rootName, rootAction, opts...)
	for _, c := range contribs {
		if err := g.AddBranch(c.Root, c.Subtree); err != nil {
			return nil, err
		}
	}
	g.Freeze()
	return g, nil
}

// AddBranch grafts subtree onto the destination named rootName. It is a
// construction-time operation: not safe to call concurrently with reads,
// and refused outright once the graph is frozen.
func (g *Graph) AddBranch(rootName string, subtree Subtree) error {
	if g.frozen {
		return &GraphError{Op: "add branch", Name: rootName, Reason: "graph is frozen"}
	}
	parent, ok := g.byName[rootName]
	if !ok {
		return &GraphError{Op: "add branch", Name: rootName, Reason: "no such destination"}
	}
	return g.graft(parent, subtree)
}

func (g *Graph) graft(parent *destination, subtree Subtree) error {
	// deterministic assembly order regardless of map iteration
	names := make([]string, 0, len(subtree))
	for name := range subtree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, exists := g.byName[name]; exists {
			return &GraphError{Op: "add branch", Name: name, Reason: "duplicate destination name"}
		}
		node := subtree[name]
		dest := &destination{name: name, action: node.Action, parent: parent}
		parent.children = append(parent.children, dest)
		g.byName[name] = dest
		if err := g.graft(dest, node.Children); err != nil {
			return err
		}
	}
	return nil
}

// Freeze ends construction. Subsequent AddBranch calls fail, and the graph
// becomes safe for concurrent resolution.
func (g *Graph) Freeze() { g.frozen = true }

// GoTo resolves the named destination and executes each ancestor action in
// root-to-leaf order, passing nctx to every action. Any action failing
// aborts the walk and propagates its error unmodified.
func (g *Graph) GoTo(ctx context.Context, name string, nctx Context) error {
	path, err := g.path(name)
	if err != nil {
		return err
	}
	for _, dest := range path {
		if dest.action == nil {
			continue
		}
		g.logger.V(1).Info("navigation step", "destination", dest.name, "target", name)
		if err := dest.action(ctx, nctx); err != nil {
			return err
		}
	}
	return nil
}

// ForceNavigate resets the browser to a known-good root state before
// walking the path to the named destination. This is the entry point used
// by domain entities, since the browser's real location can drift from the
// graph's assumed location after an error.
func (g *Graph) ForceNavigate(ctx context.Context, name string, nctx Context) error {
	if g.reset != nil {
		if err := g.reset(ctx, nctx); err != nil {
			return err
		}
	}
	return g.GoTo(ctx, name, nctx)
}

// Path returns the destination names along the path from the root to the
// named destination, root first.
func (g *Graph) Path(name string) ([]string, error) {
	path, err := g.path(name)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(path))
	for i, dest := range path {
		names[i] = dest.name
	}
	return names, nil
}

// Names returns every destination name in the graph, sorted.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.byName))
	for name := range g.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *Graph) path(name string) ([]*destination, error) {
	target, ok := g.byName[name]
	if !ok {
		return nil, &DestinationNotFoundError{Name: name}
	}
	var path []*destination
	for dest := target; dest != nil; dest = dest.parent {
		path = append(path, dest)
	}
	// reverse into root-to-leaf order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
