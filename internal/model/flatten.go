package model

// FlatNode is one hierarchy node flattened for a /screen response. IDs are
// assigned in breadth-first visitation order, starting at 0, and are only
// meaningful within the single response that produced them.
type FlatNode struct {
	ID        int     `yaml:"id"        json:"id"`
	Text      *string `yaml:"text"      json:"text"`
	Desc      *string `yaml:"desc"      json:"desc"`
	ViewID    *string `yaml:"viewId"    json:"viewId"`
	Clickable bool    `yaml:"clickable" json:"clickable"`
	Enabled   bool    `yaml:"enabled"   json:"enabled"`
	Bounds    [4]int  `yaml:"bounds"    json:"bounds"`
}

// Flatten projects the hierarchy rooted at root into an ordered flat list.
// Traversal is breadth-first, the same order FindByLabel searches in. A nil
// root yields an empty (non-nil) slice. The tree is never mutated or retained.
func Flatten(root *Node) []FlatNode {
	result := []FlatNode{}
	if root == nil {
		return result
	}
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		result = append(result, FlatNode{
			ID:        len(result),
			Text:      n.Text,
			Desc:      n.Desc,
			ViewID:    n.ViewID,
			Clickable: n.Clickable,
			Enabled:   n.Enabled,
			Bounds:    n.Bounds,
		})
		queue = append(queue, n.Children...)
	}
	return result
}
