package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, etc. It has optional class and id for CSS matching,
// bounds (position and size), and optional text for labels.
// Page nodes are laid out in page coordinates and move with the scroll offset;
// Fixed nodes are in screen coordinates.
type Node struct {
	Type   string // "panel", "label", "link"
	Class  string // space-separated, e.g. "section hero"
	ID     string
	Bounds rl.Rectangle
	Text   string
	Fixed  bool
	// Alpha multiplies the style opacity; 1 is fully opaque.
	Alpha float32
	// Target is the section id a link node navigates to.
	Target string
}

// NewNode creates a fully opaque node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:  typ,
		Class: class,
		ID:    id,
		Text:  text,
		Alpha: 1,
	}
}
