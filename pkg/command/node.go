// Package command implements the hierarchical command namespace: an
// arena of nodes indexed by stable identifiers, where composite nodes
// group subcommands and leaf nodes bind a synopsis and a handler.
package command

import (
	"fmt"
	"strings"

	"github.com/pressctl/pressctl/pkg/synopsis"
)

// Handler is the contract a leaf command implements. It receives the
// validated positional arguments and the merged associative arguments;
// failures are signalled by returning a fatal or warning condition that
// the pipeline translates at the outermost boundary.
type Handler interface {
	Run(args []string, assocArgs map[string]string) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(args []string, assocArgs map[string]string) error

// Run calls f.
func (f HandlerFunc) Run(args []string, assocArgs map[string]string) error {
	return f(args, assocArgs)
}

// NodeID indexes a node inside its tree's arena.
type NodeID int

// NoNode is the null node identifier (the root's parent).
const NoNode NodeID = -1

// Node is one entry in the command namespace. Nodes reference their
// parent and children by arena index, never by pointer, so the tree is
// acyclic by construction.
type Node struct {
	id       NodeID
	parent   NodeID
	children []NodeID

	// Name is unique among siblings.
	Name string
	// Short is the one-line description shown in listings.
	Short string
	// Doc is the long description; when no explicit Synopsis is set,
	// the synopsis is scraped from it.
	Doc string
	// Synopsis is the explicit argument synopsis, parsed lazily.
	Synopsis string
	// Alias is an alternate name the node also answers to.
	Alias string
	// Handler is set on leaf nodes only.
	Handler Handler

	specs       []synopsis.ArgSpec
	specsParsed bool
}

// IsLeaf reports whether the node binds a handler.
func (n *Node) IsLeaf() bool { return n.Handler != nil }

// GetAlias returns the node's alternate name, or "".
func (n *Node) GetAlias() string { return n.Alias }

// Tree is the command namespace. Built once at startup, read-only
// during dispatch.
type Tree struct {
	nodes []*Node
}

// NewTree creates a tree containing only the root node.
func NewTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, &Node{id: 0, parent: NoNode})
	return t
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.nodes[0] }

// Node returns the node for id.
func (t *Tree) Node(id NodeID) *Node { return t.nodes[id] }

// Add registers node under the named path, creating missing composite
// ancestors along the way. The last path segment becomes the node's
// name. Adding over an existing name fails.
func (t *Tree) Add(path []string, node *Node) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("cannot add a command at the root path")
	}

	parent := t.Root()
	for _, segment := range path[:len(path)-1] {
		child := t.child(parent, segment)
		if child == nil {
			child = t.attach(parent, &Node{Name: segment})
		}
		parent = child
	}

	name := path[len(path)-1]
	if t.child(parent, name) != nil {
		return nil, fmt.Errorf("command %q is already registered", strings.Join(path, " "))
	}
	node.Name = name
	return t.attach(parent, node), nil
}

func (t *Tree) attach(parent, node *Node) *Node {
	node.id = NodeID(len(t.nodes))
	node.parent = parent.id
	t.nodes = append(t.nodes, node)
	parent.children = append(parent.children, node.id)
	return node
}

// child finds a direct child by name or alias.
func (t *Tree) child(parent *Node, name string) *Node {
	for _, id := range parent.children {
		c := t.nodes[id]
		if c.Name == name || (c.Alias != "" && c.Alias == name) {
			return c
		}
	}
	return nil
}

// NotFoundError reports a failed path lookup, naming the longest
// matched prefix so callers can point at the nearest parent command.
type NotFoundError struct {
	Path    []string
	Matched []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%q is not a registered command", strings.Join(e.Path, " "))
	if len(e.Matched) > 0 {
		msg += fmt.Sprintf("; see %q", strings.Join(e.Matched, " "))
	}
	return msg
}

// Find walks the path segment by segment from the root. An unmatched
// segment at any depth yields a NotFoundError.
func (t *Tree) Find(path []string) (*Node, error) {
	node := t.Root()
	for i, segment := range path {
		child := t.child(node, segment)
		if child == nil {
			return nil, &NotFoundError{Path: path, Matched: path[:i]}
		}
		node = child
	}
	return node, nil
}

// FindDeepest consumes leading tokens while they match children,
// returning the deepest node reached and the unconsumed remainder.
func (t *Tree) FindDeepest(tokens []string) (*Node, []string) {
	node := t.Root()
	for len(tokens) > 0 {
		child := t.child(node, tokens[0])
		if child == nil {
			break
		}
		node = child
		tokens = tokens[1:]
	}
	return node, tokens
}

// Children lists a node's subcommands in insertion order.
func (t *Tree) Children(n *Node) []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		out = append(out, t.nodes[id])
	}
	return out
}

// Path returns the sequence of names from the root to n, used for both
// lookup and error messages.
func (t *Tree) Path(n *Node) []string {
	var parts []string
	for n.id != 0 {
		parts = append(parts, n.Name)
		n = t.nodes[n.parent]
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}
