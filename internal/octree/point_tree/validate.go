package point_tree

import (
	"errors"
	"fmt"

	"github.com/ecopia-map/frame_octree/internal/geometry"
	"github.com/ecopia-map/frame_octree/internal/octree"
)

var ErrInvariantViolated = errors.New("octree invariant violated")

// Checks the structural invariants of the subtree: node kinds, child geometry and parent links,
// payload positions and subtree sizes. Returns the first violation found.
func (n *PointNode) Validate() error {
	_, err := n.validate()
	return err
}

func (n *PointNode) validate() (int, error) {
	if n.children == nil {
		if n.payload == nil {
			return 0, n.violation("leaf without payload container")
		}
		position, ok := n.payload.Position()
		if n.payload.IsEmpty() {
			if ok {
				return 0, n.violation("empty payload with a position")
			}
		} else {
			if !ok {
				return 0, n.violation("payload without a position")
			}
			if !n.cube.Contains(position) {
				return 0, n.violation(fmt.Sprintf("payload position %v outside node bounds", position))
			}
			for _, record := range n.payload.Contents() {
				if record.Position() != position {
					return 0, n.violation(fmt.Sprintf("record at %v in payload at %v", record.Position(), position))
				}
			}
		}
		if n.size != n.payload.Len() {
			return 0, n.violation(fmt.Sprintf("size %d but %d records", n.size, n.payload.Len()))
		}
		return n.size, nil
	}

	if n.payload != nil {
		return 0, n.violation("interior node holding a payload")
	}

	total := 0
	for i, child := range n.children {
		octant := geometry.Octant(i)
		if child == nil {
			return 0, n.violation(fmt.Sprintf("missing child %s", octant))
		}
		if child.parent != n {
			return 0, n.violation(fmt.Sprintf("child %s has a foreign parent", octant))
		}
		if child.cube != n.cube.Child(octant) {
			return 0, n.violation(fmt.Sprintf("child %s has cube %v", octant, child.cube))
		}
		count, err := child.validate()
		if err != nil {
			return 0, err
		}
		total += count
	}
	if n.size != total {
		return 0, n.violation(fmt.Sprintf("size %d but %d records in subtree", n.size, total))
	}
	return total, nil
}

func (n *PointNode) violation(reason string) error {
	return fmt.Errorf("%w: %s node %v at depth %d: %s", ErrInvariantViolated, n.Kind(), n.cube, n.Depth(), reason)
}

// Summary of the shape of a tree
type TreeStats struct {
	Nodes         int       `json:"nodes"`
	InteriorNodes int       `json:"interior_nodes"`
	EmptyLeaves   int       `json:"empty_leaves"`
	FilledLeaves  int       `json:"filled_leaves"`
	Records       int       `json:"records"`
	MaxDepth      int       `json:"max_depth"`
	HalfDim       float64   `json:"half_dim"`
	Centre        []float64 `json:"centre"`
}

// Computes the stats of the subtree rooted at the node
func (n *PointNode) Stats() TreeStats {
	stats := TreeStats{
		Records: n.size,
		HalfDim: n.cube.HalfDim(),
		Centre:  []float64{n.cube.Centre().X, n.cube.Centre().Y, n.cube.Centre().Z},
	}
	baseDepth := n.Depth()

	n.Walk(func(node *PointNode) bool {
		stats.Nodes++
		switch node.Kind() {
		case octree.InteriorNode:
			stats.InteriorNodes++
		case octree.LeafNodeEmpty:
			stats.EmptyLeaves++
		case octree.LeafNodeFilled:
			stats.FilledLeaves++
		}
		if depth := node.Depth() - baseDepth; depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		return true
	})

	return stats
}
