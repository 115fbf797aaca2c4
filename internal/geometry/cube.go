package geometry

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Cube is a cubical volume defined by its centre and half the length of one side.
// The bounds are derived and cannot be set independently.
type Cube struct {
	centre  r3.Vector
	halfDim float64
}

func NewCube(centre r3.Vector, halfDim float64) Cube {
	return Cube{centre: centre, halfDim: halfDim}
}

func (c Cube) Centre() r3.Vector {
	return c.centre
}

func (c Cube) HalfDim() float64 {
	return c.halfDim
}

// Length of one side of the cube
func (c Cube) Side() float64 {
	return c.halfDim * 2
}

func (c Cube) BoundMin() r3.Vector {
	return c.centre.Sub(r3.Vector{X: c.halfDim, Y: c.halfDim, Z: c.halfDim})
}

func (c Cube) BoundMax() r3.Vector {
	return c.centre.Add(r3.Vector{X: c.halfDim, Y: c.halfDim, Z: c.halfDim})
}

func (c Cube) BoundingBox() *BoundingBox {
	return &BoundingBox{Min: c.BoundMin(), Max: c.BoundMax()}
}

func (c Cube) Contains(point r3.Vector) bool {
	return ContainsPoint(point, c.BoundMin(), c.BoundMax())
}

// Returns true if the cube shares no point with the closed box [min, max]
func (c Cube) OutsideBox(min, max r3.Vector) bool {
	return Disjoint(c.BoundMin(), c.BoundMax(), min, max)
}

// Returns the octant of the cube the point falls into
func (c Cube) OctantOf(point r3.Vector) Octant {
	return OctantOf(c.centre, point)
}

// Returns the sub-cube covering the given octant
func (c Cube) Child(octant Octant) Cube {
	h := c.halfDim / 2
	return Cube{
		centre:  c.centre.Add(octant.Direction().Mul(h)),
		halfDim: h,
	}
}

// Returns false when the cube is too small for its children to have centres distinct from its own,
// i.e. when floating point precision does not allow a further subdivision.
func (c Cube) CanSubdivide() bool {
	h := c.halfDim / 2
	if h <= 0 {
		return false
	}
	for _, v := range []float64{c.centre.X, c.centre.Y, c.centre.Z} {
		if v+h == v || v-h == v {
			return false
		}
	}
	return true
}

func (c Cube) String() string {
	return fmt.Sprintf("cube(centre=%v, half_dim=%g)", c.centre, c.halfDim)
}
