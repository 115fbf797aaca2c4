package point_tree

import (
	"fmt"
	"iter"
	"math"

	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/ecopia-map/frame_octree/internal/geometry"
	"github.com/ecopia-map/frame_octree/internal/octree"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
)

// Models a node of the octree. A node is either an empty leaf, a leaf holding a single payload (all its
// records share one position) or an interior node owning exactly eight children. Inserting a record at a
// second position into a filled leaf splits it: the eight children are created together and the old
// payload is pushed down into the child matching its octant. Interior nodes never hold a payload.
//
// The parent pointer is only used to walk up the tree when updating sizes.
type PointNode struct {
	cube     geometry.Cube
	parent   *PointNode
	children *[geometry.NumOctants]*PointNode // nil unless the node is interior
	payload  *data.Payload                    // nil for interior nodes
	size     int                              // number of records stored in the subtree
}

var _ octree.INode = (*PointNode)(nil)

// Instantiates a new root node covering the cube of the given centre and half side length
func NewRootNode(centre r3.Vector, halfDim float64) (*PointNode, error) {
	if !(halfDim > 0) || math.IsInf(halfDim, 0) {
		return nil, fmt.Errorf("%w: %v", octree.ErrInvalidDimension, halfDim)
	}
	return newPointNode(geometry.NewCube(centre, halfDim), nil), nil
}

func newPointNode(cube geometry.Cube, parent *PointNode) *PointNode {
	return &PointNode{
		cube:    cube,
		parent:  parent,
		payload: data.NewPayload(),
	}
}

// Inserts a record into the subtree, splitting leaves as needed so that a leaf only ever holds data at
// one position. Bounds are only checked on the root: below it the caller has already routed the record.
func (n *PointNode) Insert(item *data.Record) error {
	if item == nil {
		return octree.ErrNilRecord
	}
	if n.IsRoot() && !n.cube.Contains(item.Position()) {
		instrumentCountInsert(insertResultOutOfBounds)
		return fmt.Errorf("%w: %v not in %v", octree.ErrOutOfBounds, item.Position(), n.cube.BoundingBox())
	}

	if err := n.insert(item); err != nil {
		instrumentCountInsert(insertResultResolution)
		return err
	}
	instrumentCountInsert(insertResultOK)
	return nil
}

func (n *PointNode) insert(item *data.Record) error {
	position := item.Position()

	switch {
	case n.children != nil:
		if err := n.children[n.cube.OctantOf(position)].insert(item); err != nil {
			return err
		}
	case n.payload.IsEmpty() || n.payload.IsAt(position):
		if err := n.payload.Append(item); err != nil {
			return err
		}
	default:
		if err := n.split(); err != nil {
			return err
		}
		if err := n.children[n.cube.OctantOf(position)].insert(item); err != nil {
			return err
		}
	}

	n.size++
	return nil
}

// Turns a filled leaf into an interior node, moving its payload into the matching child
func (n *PointNode) split() error {
	if !n.cube.CanSubdivide() {
		return fmt.Errorf("%w: %v", octree.ErrResolutionExhausted, n.cube)
	}

	var children [geometry.NumOctants]*PointNode
	for i := range children {
		children[i] = newPointNode(n.cube.Child(geometry.Octant(i)), n)
	}

	position, _ := n.payload.Position()
	target := children[n.cube.OctantOf(position)]
	target.payload = n.payload
	target.size = n.payload.Len()

	n.children = &children
	n.payload = nil

	instrumentCountSplit()
	if glog.V(2) {
		glog.Infof("split node %v, moved %d records to octant %s", n.cube, target.size, n.cube.OctantOf(position))
	}
	return nil
}

// Inserts each item in order. Items inserted before a failing one are kept.
func (n *PointNode) Extend(items []*data.Record) error {
	for i, item := range items {
		if err := n.Insert(item); err != nil {
			return fmt.Errorf("inserting item %d: %w", i, err)
		}
	}
	return nil
}

// Returns the payload stored at exactly the given point. The payload is the one held by the tree.
func (n *PointNode) Get(point r3.Vector) (*data.Payload, error) {
	node, err := n.find(point)
	if err != nil {
		return nil, err
	}
	return node.payload, nil
}

func (n *PointNode) find(point r3.Vector) (*PointNode, error) {
	node := n
	for node.children != nil {
		node = node.children[node.cube.OctantOf(point)]
	}
	if !node.payload.IsAt(point) {
		return nil, fmt.Errorf("%w: %v", octree.ErrNotFound, point)
	}
	return node, nil
}

// Removes the most recently added record at the given point, or all of them when clear is true, and
// returns the removed records. Nodes left empty are kept in place.
func (n *PointNode) Remove(point r3.Vector, clear bool) ([]*data.Record, error) {
	mode := removeModePop
	if clear {
		mode = removeModeClear
	}

	node, err := n.find(point)
	if err != nil {
		instrumentCountRemove(mode, removeResultNotFound)
		return nil, err
	}

	var removed []*data.Record
	if clear {
		removed = node.payload.Clear()
	} else {
		record, _ := node.payload.Pop()
		removed = []*data.Record{record}
	}

	for current := node; current != nil; current = current.parent {
		current.size -= len(removed)
	}

	instrumentCountRemove(mode, removeResultRemoved)
	return removed, nil
}

// Returns the payloads whose position lies in the closed box [boundMin, boundMax], depth first in octant
// order. Children whose bounds cannot intersect the box are skipped. The sequence can be iterated
// several times and must not be iterated while the tree is modified.
func (n *PointNode) PointsInBox(boundMin, boundMax r3.Vector) iter.Seq[*data.Payload] {
	return func(yield func(*data.Payload) bool) {
		n.pointsInBox(boundMin, boundMax, yield)
	}
}

func (n *PointNode) pointsInBox(boundMin, boundMax r3.Vector, yield func(*data.Payload) bool) bool {
	if n.children == nil {
		position, ok := n.payload.Position()
		if ok && geometry.ContainsPoint(position, boundMin, boundMax) {
			return yield(n.payload)
		}
		return true
	}

	for _, child := range n.children {
		if child.cube.OutsideBox(boundMin, boundMax) {
			continue
		}
		if !child.pointsInBox(boundMin, boundMax, yield) {
			return false
		}
	}
	return true
}

// Nearest neighbour search is not implemented
func (n *PointNode) Nearest(point r3.Vector) (*data.Payload, error) {
	return nil, fmt.Errorf("%w: nearest point to %v", octree.ErrUnsupportedOperation, point)
}

func (n *PointNode) Kind() octree.NodeKind {
	if n.children != nil {
		return octree.InteriorNode
	}
	if n.payload.IsEmpty() {
		return octree.LeafNodeEmpty
	}
	return octree.LeafNodeFilled
}

func (n *PointNode) IsRoot() bool {
	return n.parent == nil
}

func (n *PointNode) IsLeaf() bool {
	return n.children == nil
}

// Number of records stored in the subtree
func (n *PointNode) Size() int {
	return n.size
}

// Distance from the root, which has depth 0
func (n *PointNode) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

func (n *PointNode) GetParent() *PointNode {
	return n.parent
}

// Returns the children indexed by octant. All entries are nil for leaves.
func (n *PointNode) GetChildren() [geometry.NumOctants]*PointNode {
	if n.children == nil {
		return [geometry.NumOctants]*PointNode{}
	}
	return *n.children
}

// Returns the child for the given "+"/"-" octant code, or nil for leaves and invalid codes
func (n *PointNode) GetChild(code string) *PointNode {
	octant, ok := geometry.ParseOctant(code)
	if !ok || n.children == nil {
		return nil
	}
	return n.children[octant]
}

// Returns the payload of a leaf, nil for interior nodes
func (n *PointNode) GetPayload() *data.Payload {
	return n.payload
}

func (n *PointNode) Cube() geometry.Cube {
	return n.cube
}

func (n *PointNode) GetBoundingBox() *geometry.BoundingBox {
	return n.cube.BoundingBox()
}

func (n *PointNode) Centre() r3.Vector {
	return n.cube.Centre()
}

func (n *PointNode) HalfDim() float64 {
	return n.cube.HalfDim()
}

func (n *PointNode) Side() float64 {
	return n.cube.Side()
}

func (n *PointNode) BoundMin() r3.Vector {
	return n.cube.BoundMin()
}

func (n *PointNode) BoundMax() r3.Vector {
	return n.cube.BoundMax()
}

// Returns the "+"/"-" code of the octant the point falls into
func (n *PointNode) Octant(point r3.Vector) string {
	return n.cube.OctantOf(point).String()
}

// Visits the subtree depth first, parents before children, in octant order. Returning false from fn
// stops the walk.
func (n *PointNode) Walk(fn func(node *PointNode) bool) bool {
	if !fn(n) {
		return false
	}
	if n.children == nil {
		return true
	}
	for _, child := range n.children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// [<has data>D<is leaf>C<size>I]
func (n *PointNode) String() string {
	hasData, isLeaf := 0, 0
	if n.Kind() == octree.LeafNodeFilled {
		hasData = 1
	}
	if n.IsLeaf() {
		isLeaf = 1
	}
	return fmt.Sprintf("[%dD%dC%dI]", hasData, isLeaf, n.size)
}
