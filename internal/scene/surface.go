package scene

import "errors"

var (
	// ErrDuplicateKey indicates a sibling with the same key already exists.
	ErrDuplicateKey = errors.New("scene: duplicate key")

	// ErrNotContainer indicates children were added to a non-group node.
	ErrNotContainer = errors.New("scene: node is not a container")
)

// Surface is the drawing target a renderer mutates. Until it is attached a
// renderer must leave it untouched.
type Surface struct {
	root          *Node
	attached      bool
	Width, Height float64
}

func NewSurface() *Surface {
	return &Surface{root: NewGroup("svg")}
}

// Attach makes the surface drawable with a viewBox of width x height.
func (s *Surface) Attach(width, height float64) {
	s.Width, s.Height = width, height
	s.attached = true
}

func (s *Surface) Detach() { s.attached = false }

func (s *Surface) Attached() bool { return s != nil && s.attached }

func (s *Surface) Root() *Node { return s.root }

// Reset drops everything drawn so far.
func (s *Surface) Reset() {
	s.root = NewGroup("svg")
}
