// Package model defines the UI hierarchy tree and its flat wire projection.
package model

// Node is a UI element in the accessibility hierarchy. The tree is owned by
// the platform layer; everything here treats it as read-only.
//
// Text, Desc and ViewID are nil when the platform reported no value, which
// is distinct from an empty string.
type Node struct {
	Text      *string
	Desc      *string
	ViewID    *string
	Clickable bool
	Enabled   bool
	Bounds    [4]int // [left, top, right, bottom] in screen pixels
	Children  []*Node
	Parent    *Node
}

// AddChild appends child to n and sets its parent back-reference.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Center returns the midpoint of the node's bounds.
func (n *Node) Center() (x, y int) {
	return (n.Bounds[0] + n.Bounds[2]) / 2, (n.Bounds[1] + n.Bounds[3]) / 2
}

// Str returns a pointer to s, for building nodes with present labels.
func Str(s string) *string {
	return &s
}
