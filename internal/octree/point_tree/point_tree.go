package point_tree

import (
	"fmt"
	"math"
	"sync"

	"github.com/ecopia-map/frame_octree/internal/converters"
	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/ecopia-map/frame_octree/internal/frame_loader"
	"github.com/ecopia-map/frame_octree/internal/geometry"
	"github.com/ecopia-map/frame_octree/internal/octree"
	"github.com/ecopia-map/frame_octree/tools"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
)

// Half side length of a root derived from frames that all share one position
const minDerivedHalfDim = 1.0

// Upper bound on the steps taken to make a derived root cover its bounds
const maxRootWidenSteps = 64

// Represents a PointTree of frames. It owns the root PointNode and serializes access to it: mutations
// take the write lock, lookups and box queries share the read lock. Values returned by the tree are
// copies, so they stay valid while other goroutines modify the tree.
type PointTree struct {
	rootNode  *PointNode
	rootCube  *geometry.Cube
	built     bool
	corrector converters.PositionCorrector
	snapper   converters.PositionSnapper
	frame_loader.Loader
	sync.RWMutex
}

var _ octree.ITree = (*PointTree)(nil)

// Builds an empty PointTree whose root is derived from the bounds of the loaded frames
func NewPointTree(corrector converters.PositionCorrector, snapper converters.PositionSnapper) *PointTree {
	return &PointTree{
		corrector: corrector,
		snapper:   snapper,
		Loader:    frame_loader.NewSequentialLoader(),
	}
}

// Builds an empty PointTree with a fixed root cube. The root can be used right away.
func NewPointTreeWithRoot(
	corrector converters.PositionCorrector,
	snapper converters.PositionSnapper,
	centre r3.Vector,
	halfDim float64,
) (*PointTree, error) {
	root, err := NewRootNode(centre, halfDim)
	if err != nil {
		return nil, err
	}
	cube := root.Cube()

	tree := NewPointTree(corrector, snapper)
	tree.rootNode = root
	tree.rootCube = &cube
	return tree, nil
}

// Inserts all the frames buffered in the loader, in the order they were added. When the tree has no
// fixed root, the root cube is derived from the bounds of the buffered frames.
func (tree *PointTree) Build() error {
	tree.Lock()
	defer tree.Unlock()

	if tree.built {
		return octree.ErrAlreadyBuilt
	}

	if err := tree.init(); err != nil {
		return err
	}

	for {
		record, shouldContinue := tree.Loader.GetNext()
		if record != nil {
			if err := tree.rootNode.Insert(record); err != nil {
				tree.resetRoot()
				return fmt.Errorf("building octree: %w", err)
			}
		}
		if !shouldContinue {
			break
		}
	}

	tree.Loader.ClearLoader()
	tree.built = true
	instrumentRecordCount(tree.rootNode.Size())

	return nil
}

func (tree *PointTree) init() error {
	if tree.rootNode == nil {
		centre, halfDim := deriveRootCube(tree.Loader.GetBounds())
		glog.Infoln("tree.root(centre,half_dim):", tools.FmtJSONString([]float64{centre.X, centre.Y, centre.Z, halfDim}))

		root, err := NewRootNode(centre, halfDim)
		if err != nil {
			return err
		}
		tree.rootNode = root
	}

	tree.Loader.InitializeLoader()
	return nil
}

// Drops the records inserted so far. A fixed root is recreated empty, a derived one is recomputed.
func (tree *PointTree) resetRoot() {
	tree.rootNode = nil
	if tree.rootCube != nil {
		tree.rootNode = newPointNode(*tree.rootCube, nil)
	}
	instrumentRecordCount(0)
}

// Returns the smallest root cube centred on the bounds that contains them. centre±half can round
// inwards, so the half side is widened by a growing multiple of the coordinates' ulp until both bound
// vertices pass the inclusive bounds check.
func deriveRootCube(bounds *geometry.BoundingBox) (r3.Vector, float64) {
	if bounds == nil {
		return r3.Vector{}, minDerivedHalfDim
	}
	centre := bounds.Mid()
	halfDim := bounds.MaxExtent() / 2
	if !(halfDim > 0) {
		halfDim = minDerivedHalfDim
	}

	step := coordinateUlp(bounds)
	for i := 0; i < maxRootWidenSteps; i++ {
		cube := geometry.NewCube(centre, halfDim)
		if cube.Contains(bounds.Min) && cube.Contains(bounds.Max) {
			break
		}
		halfDim += step
		step *= 2
	}
	return centre, halfDim
}

// Spacing of float64 values around the largest coordinate magnitude of the bounds
func coordinateUlp(bounds *geometry.BoundingBox) float64 {
	m := 0.0
	for _, v := range append(bounds.GetAsArray(), bounds.Mid().X, bounds.Mid().Y, bounds.Mid().Z) {
		m = math.Max(m, math.Abs(v))
	}
	ulp := math.Nextafter(m, math.Inf(1)) - m
	if !(ulp > 0) || math.IsInf(ulp, 0) {
		return math.SmallestNonzeroFloat64
	}
	return ulp
}

func (tree *PointTree) GetRootNode() octree.INode {
	tree.RLock()
	defer tree.RUnlock()

	if tree.rootNode == nil {
		return nil
	}
	return tree.rootNode
}

func (tree *PointTree) IsBuilt() bool {
	tree.RLock()
	defer tree.RUnlock()

	return tree.built
}

// Drops all the data. A fixed root is recreated empty, a derived one is recomputed by the next Build.
func (tree *PointTree) Clear() bool {
	tree.Lock()
	defer tree.Unlock()

	tree.resetRoot()
	tree.built = false
	tree.Loader.ClearLoader()
	return true
}

// Buffers a frame in the loader, converting its position. The frame is inserted by Build.
func (tree *PointTree) AddFrame(frame *data.Frame) {
	tree.Loader.AddRecord(tree.recordFromFrame(frame))
}

func (tree *PointTree) recordFromFrame(frame *data.Frame) *data.Record {
	position := frame.Position
	if tree.corrector != nil {
		position = tree.corrector.CorrectPosition(position)
	}
	if tree.snapper != nil {
		position = tree.snapper.SnapPosition(position)
	}
	return frame.ToRecord(position)
}

// Converts the frame position and inserts it right away
func (tree *PointTree) InsertFrame(frame *data.Frame) error {
	return tree.Insert(tree.recordFromFrame(frame))
}

func (tree *PointTree) Insert(record *data.Record) error {
	tree.Lock()
	defer tree.Unlock()

	if tree.rootNode == nil {
		return octree.ErrNotBuilt
	}
	err := tree.rootNode.Insert(record)
	instrumentRecordCount(tree.rootNode.Size())
	return err
}

// Inserts the records in order; records before a failing one stay in the tree
func (tree *PointTree) Extend(records []*data.Record) error {
	tree.Lock()
	defer tree.Unlock()

	if tree.rootNode == nil {
		return octree.ErrNotBuilt
	}
	err := tree.rootNode.Extend(records)
	instrumentRecordCount(tree.rootNode.Size())
	return err
}

// Returns a copy of the payload stored at the given point
func (tree *PointTree) Get(point r3.Vector) (*data.Payload, error) {
	tree.RLock()
	defer tree.RUnlock()

	if tree.rootNode == nil {
		return nil, octree.ErrNotBuilt
	}
	payload, err := tree.rootNode.Get(point)
	if err != nil {
		return nil, err
	}
	return payload.Clone(), nil
}

func (tree *PointTree) Remove(point r3.Vector, clear bool) ([]*data.Record, error) {
	tree.Lock()
	defer tree.Unlock()

	if tree.rootNode == nil {
		return nil, octree.ErrNotBuilt
	}
	removed, err := tree.rootNode.Remove(point, clear)
	instrumentRecordCount(tree.rootNode.Size())
	return removed, err
}

// Returns copies of the payloads lying in the closed box spanned by the two vertices
func (tree *PointTree) PointsInBox(boundMin, boundMax r3.Vector) ([]*data.Payload, error) {
	tree.RLock()
	defer tree.RUnlock()

	if tree.rootNode == nil {
		return nil, octree.ErrNotBuilt
	}

	payloads := make([]*data.Payload, 0)
	for payload := range tree.rootNode.PointsInBox(boundMin, boundMax) {
		payloads = append(payloads, payload.Clone())
	}
	instrumentBoxQuery(len(payloads))

	if glog.V(1) {
		glog.Infof("box query [%v, %v] returned %d payloads", boundMin, boundMax, len(payloads))
	}
	return payloads, nil
}

func (tree *PointTree) Nearest(point r3.Vector) (*data.Payload, error) {
	tree.RLock()
	defer tree.RUnlock()

	if tree.rootNode == nil {
		return nil, octree.ErrNotBuilt
	}
	return tree.rootNode.Nearest(point)
}

// Number of records stored in the tree
func (tree *PointTree) Size() int {
	tree.RLock()
	defer tree.RUnlock()

	if tree.rootNode == nil {
		return 0
	}
	return tree.rootNode.Size()
}

func (tree *PointTree) Stats() (TreeStats, error) {
	tree.RLock()
	defer tree.RUnlock()

	if tree.rootNode == nil {
		return TreeStats{}, octree.ErrNotBuilt
	}
	return tree.rootNode.Stats(), nil
}

func (tree *PointTree) Validate() error {
	tree.RLock()
	defer tree.RUnlock()

	if tree.rootNode == nil {
		return octree.ErrNotBuilt
	}
	return tree.rootNode.Validate()
}

// Calls fn with every payload of the tree, depth first in octant order, under the read lock.
// fn must not modify the tree.
func (tree *PointTree) ForEachPayload(fn func(payload *data.Payload) bool) {
	tree.RLock()
	defer tree.RUnlock()

	if tree.rootNode == nil {
		return
	}
	tree.rootNode.Walk(func(node *PointNode) bool {
		if node.Kind() != octree.LeafNodeFilled {
			return true
		}
		return fn(node.payload)
	})
}
