package slashdoc

import "fmt"

// Registry holds the top-level nodes of one run in definition order and
// rejects duplicate names. It is filled sequentially while parsing and only
// read afterwards.
type Registry struct {
	order []*Node
	byKey map[string]*Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Node)}
}

// Add registers a top-level node. A second node with the same name is a
// syntax error pointing at the first definition.
func (r *Registry) Add(n *Node) error {
	if prev, ok := r.byKey[n.Name]; ok {
		return &SyntaxError{
			Msg:      fmt.Sprintf("duplicate nodes: found here first: %s line %d", prev.Filename, prev.Line),
			Filename: n.Filename,
			Line:     n.Line,
		}
	}

	r.byKey[n.Name] = n
	r.order = append(r.order, n)

	return nil
}

// Lookup returns the top-level node with the given name.
func (r *Registry) Lookup(name string) (*Node, bool) {
	n, ok := r.byKey[name]

	return n, ok
}

// Nodes returns the registered nodes in definition order.
func (r *Registry) Nodes() []*Node {
	return r.order
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.order)
}
