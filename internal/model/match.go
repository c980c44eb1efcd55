package model

import "strings"

// FindByLabel searches the hierarchy breadth-first for the first node whose
// trimmed text or trimmed description equals the trimmed label. Breadth-first
// order matches Flatten, so the winner among ambiguous labels is always the
// node with the lowest flattened ID. Returns nil when root is nil or nothing
// matches.
func FindByLabel(root *Node, label string) *Node {
	if root == nil {
		return nil
	}
	target := strings.TrimSpace(label)
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if labelEquals(n.Text, target) || labelEquals(n.Desc, target) {
			return n
		}
		queue = append(queue, n.Children...)
	}
	return nil
}

func labelEquals(field *string, target string) bool {
	return field != nil && strings.TrimSpace(*field) == target
}

// ResolveClickable walks from n toward the root and returns the first node
// marked clickable. If no ancestor (including n) is clickable, n itself is
// returned; activating it is still attempted and may no-op at the platform.
func ResolveClickable(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Clickable {
			return cur
		}
	}
	return n
}
