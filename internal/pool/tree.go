package pool

// Leaf is a single tree leaf exposing the minimum contract the pool analyzer
// needs: an id, a title, and the track ids it contains. Concrete tree
// builders (genre/scene/collection) are out of scope (spec.md §1); callers
// adapt their own tree shapes to this interface.
type Leaf struct {
	ID          string
	Title       string
	TrackIDs    []int
	Lineage     string
	Category    string
}

// Tree is the minimum contract the pool analyzer needs from a tree handle:
// walk every leaf. Concrete implementations unify the source's two shapes —
// hierarchical lineages with children/is_leaf, and flat categories→leaves —
// behind this single WalkLeaves abstraction, per spec.md §9's design note.
type Tree interface {
	WalkLeaves() []Leaf
}

// HierarchicalNode models a lineage-tree node: either an internal node with
// Children, or (IsLeaf) a leaf carrying TrackIDs directly.
type HierarchicalNode struct {
	ID       string
	Title    string
	IsLeaf   bool
	TrackIDs []int
	Children []*HierarchicalNode
}

// HierarchicalTree wraps top-level lineages of HierarchicalNode trees —
// grounded on original_source/app/autoset.py's _lookup_tree_context /
// _collect_leaf_hits recursive depth-first walk over "lineages"→children.
type HierarchicalTree struct {
	Lineages []*HierarchicalNode
}

func (t *HierarchicalTree) WalkLeaves() []Leaf {
	var leaves []Leaf
	for _, lineage := range t.Lineages {
		collectLeaves(lineage, lineage.ID, &leaves)
	}
	return leaves
}

func collectLeaves(node *HierarchicalNode, lineageID string, out *[]Leaf) {
	if node.IsLeaf {
		*out = append(*out, Leaf{
			ID:       node.ID,
			Title:    node.Title,
			TrackIDs: node.TrackIDs,
			Lineage:  lineageID,
		})
		return
	}
	for _, child := range node.Children {
		collectLeaves(child, lineageID, out)
	}
}

// FlatCategory is one category of a flat (non-hierarchical) tree, e.g. the
// collection tree: categories directly containing leaves, no nesting.
type FlatCategory struct {
	Name   string
	Leaves []*HierarchicalNode
}

// FlatTree wraps a flat categories→leaves shape — grounded on
// original_source/app/autoset.py's collection-tree branch of
// _lookup_tree_context (categories→leaves, no recursion).
type FlatTree struct {
	Categories []FlatCategory
}

func (t *FlatTree) WalkLeaves() []Leaf {
	var leaves []Leaf
	for _, cat := range t.Categories {
		for _, leaf := range cat.Leaves {
			leaves = append(leaves, Leaf{
				ID:       leaf.ID,
				Title:    leaf.Title,
				TrackIDs: leaf.TrackIDs,
				Category: cat.Name,
			})
		}
	}
	return leaves
}
