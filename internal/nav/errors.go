package nav

import "fmt"

// DestinationNotFoundError is returned when no destination in the graph
// carries the requested name.
type DestinationNotFoundError struct {
	Name string
}

func (e *DestinationNotFoundError) Error() string {
	return fmt.Sprintf("unable to navigate: no destination named %q", e.Name)
}

// GraphError is returned for invalid graph construction: grafting onto a
// missing destination, reusing a name, or mutating a frozen graph.
type GraphError struct {
	Op     string
	Name   string
	Reason string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Op, e.Name, e.Reason)
}
