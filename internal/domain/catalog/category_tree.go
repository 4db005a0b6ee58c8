package catalog

import (
	"sort"

	"github.com/google/uuid"
)

// CategoryNode is a category with its children resolved
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

// CategoryTree holds the resolved forest and an id lookup map
type CategoryTree struct {
	Roots []*CategoryNode
	Index map[uuid.UUID]*CategoryNode
}

// BuildCategoryTree links a flat list of category rows into a forest.
// A node whose parent_id is not present in the input becomes a root; this is
// a defensive policy, the schema does not enforce referential integrity for
// parent_id. Siblings are ordered by sort_order, ties keep input order.
func BuildCategoryTree(categories []Category) *CategoryTree {
	tree := &CategoryTree{
		Roots: make([]*CategoryNode, 0),
		Index: make(map[uuid.UUID]*CategoryNode, len(categories)),
	}

	// First pass: create all nodes
	for i := range categories {
		node := &CategoryNode{
			Category: categories[i],
			Children: make([]*CategoryNode, 0),
		}
		tree.Index[categories[i].ID] = node
	}

	// Second pass: link children, preserving input order for ties
	for i := range categories {
		node := tree.Index[categories[i].ID]
		if node.ParentID == nil {
			tree.Roots = append(tree.Roots, node)
			continue
		}
		parent, exists := tree.Index[*node.ParentID]
		if !exists {
			// Dangling parent reference: promote to root
			tree.Roots = append(tree.Roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortSiblings(tree.Roots)
	for _, node := range tree.Index {
		sortSiblings(node.Children)
	}

	return tree
}

// sortSiblings orders nodes by sort_order; the stable sort keeps insertion
// order for equal sort_order values.
func sortSiblings(nodes []*CategoryNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SortOrder < nodes[j].SortOrder
	})
}

// Walk visits every node in the tree depth-first
func (t *CategoryTree) Walk(fn func(node *CategoryNode)) {
	var visit func(nodes []*CategoryNode)
	visit = func(nodes []*CategoryNode) {
		for _, n := range nodes {
			fn(n)
			visit(n.Children)
		}
	}
	visit(t.Roots)
}

// Size returns the number of nodes in the tree
func (t *CategoryTree) Size() int {
	return len(t.Index)
}
