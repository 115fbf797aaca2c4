package octree

import (
	"errors"
	"iter"

	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/ecopia-map/frame_octree/internal/geometry"
	"github.com/golang/geo/r3"
)

var (
	// Returned when a point is inserted outside of the bounds of the tree root
	ErrOutOfBounds = errors.New("point outside of the octree bounds")

	// Returned when no data is stored at the requested point
	ErrNotFound = errors.New("could not find point")

	// Returned by operations the octree does not implement
	ErrUnsupportedOperation = errors.New("operation not supported by the octree")

	// Returned when two distinct positions are too close to be separated by a split
	ErrResolutionExhausted = errors.New("octree cannot subdivide further")

	ErrNilRecord = errors.New("nil record")

	ErrInvalidDimension = errors.New("octree half dimension must be positive and finite")

	ErrAlreadyBuilt = errors.New("octree already built")

	ErrNotBuilt = errors.New("octree not built")
)

// NodeKind tells which of the three possible states a node is in
type NodeKind uint8

const (
	LeafNodeEmpty = NodeKind(iota)
	LeafNodeFilled
	InteriorNode
)

func (k NodeKind) String() string {
	switch k {
	case LeafNodeEmpty:
		return "leaf-empty"
	case LeafNodeFilled:
		return "leaf-filled"
	case InteriorNode:
		return "interior"
	}
	return "unknown"
}

type ITree interface {
	Build() error
	GetRootNode() INode
	IsBuilt() bool
	Clear() bool
	// Adds a Frame to the loader, to be inserted by Build
	AddFrame(frame *data.Frame)
}

type INode interface {
	Insert(item *data.Record) error
	Extend(items []*data.Record) error
	Get(point r3.Vector) (*data.Payload, error)
	Remove(point r3.Vector, clear bool) ([]*data.Record, error)
	PointsInBox(boundMin, boundMax r3.Vector) iter.Seq[*data.Payload]
	Nearest(point r3.Vector) (*data.Payload, error)

	Kind() NodeKind
	IsRoot() bool
	IsLeaf() bool
	Size() int
	Depth() int
	Cube() geometry.Cube
	GetBoundingBox() *geometry.BoundingBox
}
