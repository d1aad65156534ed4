// Package scene is a small retained scene graph shaped after SVG.
//
// A [Surface] owns a root [Node]. Nodes are groups, rectangles, text runs or
// lines; every child has a key that is unique among its siblings, so callers
// can find, create-once or reconcile children by identity instead of by
// position.
//
// # Ensure-created handles
//
// Static structure is created through [Node.Ensure], which returns the
// existing child for a key or builds it exactly once:
//
//	axis := root.Ensure("x-axis", func() *Node { return NewGroup("x-axis") })
//
// # Keyed joins
//
// Data-bound children are kept in step with a key list by [Reconcile],
// which creates, updates and removes children and reports what it did.
package scene

import (
	"fmt"
	"sort"
	"strconv"
)

type Kind int

const (
	KindGroup Kind = iota
	KindRect
	KindText
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "g"
	case KindRect:
		return "rect"
	case KindText:
		return "text"
	case KindLine:
		return "line"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is one element of the scene graph. Geometry is typed; everything
// else (fill, stroke, fonts, opacity) lives in Attrs and is inherited by
// descendants the way SVG presentation attributes are.
type Node struct {
	Kind  Kind
	Key   string
	Class string
	Attrs map[string]string

	// Group translation.
	TX, TY float64

	// Rect origin and size, text anchor point, line start.
	X, Y          float64
	Width, Height float64

	// Line end.
	X2, Y2 float64

	// Text offsets: Dx in pixels, DyEm in ems of the font size.
	Dx, DyEm float64
	Text     string

	parent   *Node
	children []*Node
	index    map[string]*Node
}

func NewGroup(key string) *Node {
	return &Node{Kind: KindGroup, Key: key, Attrs: map[string]string{}}
}

func NewRect(key string) *Node {
	return &Node{Kind: KindRect, Key: key, Attrs: map[string]string{}}
}

func NewText(key, text string) *Node {
	return &Node{Kind: KindText, Key: key, Text: text, Attrs: map[string]string{}}
}

func NewLine(key string) *Node {
	return &Node{Kind: KindLine, Key: key, Attrs: map[string]string{}}
}

// WithClass sets the class and returns the node for chaining.
func (n *Node) WithClass(class string) *Node {
	n.Class = class
	return n
}

// Set sets a presentation attribute and returns the node for chaining.
func (n *Node) Set(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[name] = value
	return n
}

// SetFloat sets a numeric presentation attribute.
func (n *Node) SetFloat(name string, v float64) *Node {
	return n.Set(name, strconv.FormatFloat(v, 'f', -1, 64))
}

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

func (n *Node) Unset(name string) {
	delete(n.Attrs, name)
}

// AttrNames returns attribute names in a stable order.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns the children in document order. The slice is a copy.
func (n *Node) Children() []*Node {
	c := make([]*Node, len(n.children))
	copy(c, n.children)
	return c
}

func (n *Node) Len() int { return len(n.children) }

// Child returns the direct child with key.
func (n *Node) Child(key string) (*Node, bool) {
	c, ok := n.index[key]
	return c, ok
}

// Append adds child at the end. Keys must be unique among siblings.
func (n *Node) Append(child *Node) error {
	if n.Kind != KindGroup {
		return fmt.Errorf("%w: %s cannot hold children", ErrNotContainer, n.Kind)
	}
	if n.index == nil {
		n.index = make(map[string]*Node)
	}
	if _, dup := n.index[child.Key]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, child.Key)
	}
	if child.parent != nil {
		child.parent.Remove(child.Key)
	}
	child.parent = n
	n.children = append(n.children, child)
	n.index[child.Key] = child
	return nil
}

// Ensure returns the child with key, creating it with create on first use.
// The created node's key is forced to key.
func (n *Node) Ensure(key string, create func() *Node) *Node {
	if c, ok := n.Child(key); ok {
		return c
	}
	c := create()
	c.Key = key
	if err := n.Append(c); err != nil {
		panic(err)
	}
	return c
}

// Remove detaches the child with key. It reports whether a child was removed.
func (n *Node) Remove(key string) bool {
	c, ok := n.index[key]
	if !ok {
		return false
	}
	delete(n.index, key)
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	c.parent = nil
	return true
}

// reorder puts the children named by keys first, in that order.
func (n *Node) reorder(keys []string) {
	ordered := make([]*Node, 0, len(n.children))
	seen := make(map[*Node]bool, len(keys))
	for _, k := range keys {
		if c, ok := n.index[k]; ok && !seen[c] {
			ordered = append(ordered, c)
			seen[c] = true
		}
	}
	for _, c := range n.children {
		if !seen[c] {
			ordered = append(ordered, c)
		}
	}
	n.children = ordered
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first node in the subtree (n included) with class.
func (n *Node) Find(class string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Class == class {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node in the subtree with class.
func (n *Node) FindAll(class string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Class == class {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Count returns how many nodes in the subtree match kind.
func (n *Node) Count(kind Kind) int {
	count := 0
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			count++
		}
		return true
	})
	return count
}
