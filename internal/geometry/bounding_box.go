package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Axis aligned box described by its minimum and maximum vertices. Both ends are inclusive.
type BoundingBox struct {
	Min r3.Vector
	Max r3.Vector
}

// Builds a new BoundingBox from the given extremes
func NewBoundingBox(xMin, xMax, yMin, yMax, zMin, zMax float64) *BoundingBox {
	return &BoundingBox{
		Min: r3.Vector{X: xMin, Y: yMin, Z: zMin},
		Max: r3.Vector{X: xMax, Y: yMax, Z: zMax},
	}
}

// Builds a BoundingBox spanning the two vertices, whatever their order
func NewBoundingBoxFromVertices(a, b r3.Vector) *BoundingBox {
	return &BoundingBox{
		Min: r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max: r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// Returns true if the point lies in the closed box
func (b *BoundingBox) Contains(point r3.Vector) bool {
	return ContainsPoint(point, b.Min, b.Max)
}

// Returns true if the two boxes share at least one point
func (b *BoundingBox) Intersects(other *BoundingBox) bool {
	return !Disjoint(b.Min, b.Max, other.Min, other.Max)
}

// Grows the box so that it contains the given point
func (b *BoundingBox) ExpandToFit(point r3.Vector) {
	b.Min = r3.Vector{X: math.Min(b.Min.X, point.X), Y: math.Min(b.Min.Y, point.Y), Z: math.Min(b.Min.Z, point.Z)}
	b.Max = r3.Vector{X: math.Max(b.Max.X, point.X), Y: math.Max(b.Max.Y, point.Y), Z: math.Max(b.Max.Z, point.Z)}
}

func (b *BoundingBox) Mid() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Length of the longest box edge
func (b *BoundingBox) MaxExtent() float64 {
	d := b.Max.Sub(b.Min)
	return math.Max(d.X, math.Max(d.Y, d.Z))
}

// Returns the box as [xmin, ymin, zmin, xmax, ymax, zmax]
func (b *BoundingBox) GetAsArray() []float64 {
	return []float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z}
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("[%v, %v]", b.Min, b.Max)
}

// Checks min <= point <= max on every axis. NaN coordinates are never contained.
func ContainsPoint(point, min, max r3.Vector) bool {
	return point.X >= min.X && point.X <= max.X &&
		point.Y >= min.Y && point.Y <= max.Y &&
		point.Z >= min.Z && point.Z <= max.Z
}

// Checks whether the box [aMin, aMax] lies completely outside [bMin, bMax] on at least one axis
func Disjoint(aMin, aMax, bMin, bMax r3.Vector) bool {
	return aMin.X > bMax.X || aMin.Y > bMax.Y || aMin.Z > bMax.Z ||
		aMax.X < bMin.X || aMax.Y < bMin.Y || aMax.Z < bMin.Z
}
