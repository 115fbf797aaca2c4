package geometry

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"
)

func TestOctantOf(t *testing.T) {
	centre := r3.Vector{X: 0, Y: 0, Z: 0}

	tests := []struct {
		point r3.Vector
		code  string
	}{
		{r3.Vector{X: -1, Y: -1, Z: -1}, "---"},
		{r3.Vector{X: -1, Y: -1, Z: 1}, "--+"},
		{r3.Vector{X: -1, Y: 1, Z: -1}, "-+-"},
		{r3.Vector{X: 1, Y: -1, Z: -1}, "+--"},
		{r3.Vector{X: 1, Y: 1, Z: 1}, "+++"},
		{r3.Vector{X: 0, Y: 0, Z: 0}, "+++"},
		{r3.Vector{X: 0, Y: -0.5, Z: 0}, "+-+"},
	}

	for _, test := range tests {
		t.Run(test.code, func(t *testing.T) {
			require.Equal(t, test.code, OctantOf(centre, test.point).String())
		})
	}
}

func TestOctantOrder(t *testing.T) {
	codes := []string{"---", "--+", "-+-", "-++", "+--", "+-+", "++-", "+++"}
	for i := 0; i < NumOctants; i++ {
		require.Equal(t, codes[i], Octant(i).String())

		o, ok := ParseOctant(codes[i])
		require.True(t, ok)
		require.Equal(t, Octant(i), o)
	}

	_, ok := ParseOctant("+*-")
	require.False(t, ok)
	_, ok = ParseOctant("++")
	require.False(t, ok)
}

func TestCubeBounds(t *testing.T) {
	c := NewCube(r3.Vector{X: 1, Y: 2, Z: 3}, 10)

	require.Equal(t, r3.Vector{X: -9, Y: -8, Z: -7}, c.BoundMin())
	require.Equal(t, r3.Vector{X: 11, Y: 12, Z: 13}, c.BoundMax())
	require.Equal(t, 20.0, c.Side())
	require.True(t, c.Contains(r3.Vector{X: 11, Y: 12, Z: 13}))
	require.True(t, c.Contains(r3.Vector{X: -9, Y: -8, Z: -7}))
	require.False(t, c.Contains(r3.Vector{X: 11.0001, Y: 0, Z: 0}))
	require.False(t, c.Contains(r3.Vector{X: math.NaN(), Y: 0, Z: 0}))
}

func TestCubeChild(t *testing.T) {
	c := NewCube(r3.Vector{}, 100)

	for i := 0; i < NumOctants; i++ {
		o := Octant(i)
		child := c.Child(o)
		require.Equal(t, 50.0, child.HalfDim())
		require.Equal(t, o, c.OctantOf(child.Centre()))
		require.Equal(t, o.Direction().Mul(50), child.Centre())
	}
}

func TestCubeCanSubdivide(t *testing.T) {
	require.True(t, NewCube(r3.Vector{X: 1, Y: 1, Z: 1}, 1).CanSubdivide())
	require.False(t, NewCube(r3.Vector{X: 1e20, Y: 0, Z: 0}, 1).CanSubdivide())
	require.False(t, NewCube(r3.Vector{}, 0).CanSubdivide())
}

func TestCubeOutsideBox(t *testing.T) {
	c := NewCube(r3.Vector{X: 50, Y: 50, Z: 50}, 50)

	require.False(t, c.OutsideBox(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 25, Y: 35, Z: 50}))
	require.False(t, c.OutsideBox(r3.Vector{X: 100, Y: 100, Z: 100}, r3.Vector{X: 200, Y: 200, Z: 200}))
	require.True(t, c.OutsideBox(r3.Vector{X: 100.5, Y: 0, Z: 0}, r3.Vector{X: 200, Y: 200, Z: 200}))
	require.True(t, c.OutsideBox(r3.Vector{X: -10, Y: -10, Z: -10}, r3.Vector{X: 10, Y: 10, Z: -0.1}))
}

func TestBoundingBox(t *testing.T) {
	b := NewBoundingBoxFromVertices(r3.Vector{X: 5, Y: -1, Z: 2}, r3.Vector{X: -5, Y: 1, Z: 0})
	require.Equal(t, r3.Vector{X: -5, Y: -1, Z: 0}, b.Min)
	require.Equal(t, r3.Vector{X: 5, Y: 1, Z: 2}, b.Max)
	require.Equal(t, r3.Vector{X: 0, Y: 0, Z: 1}, b.Mid())
	require.Equal(t, 10.0, b.MaxExtent())

	b.ExpandToFit(r3.Vector{X: 0, Y: 7, Z: 0})
	require.Equal(t, 7.0, b.Max.Y)
	require.Equal(t, []float64{-5, -1, 0, 5, 7, 2}, b.GetAsArray())

	other := NewBoundingBox(5, 6, 7, 8, 2, 3)
	require.True(t, b.Intersects(other))
	require.False(t, b.Intersects(NewBoundingBox(5.1, 6, 7, 8, 2, 3)))
}
