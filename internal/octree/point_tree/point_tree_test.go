package point_tree

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ecopia-map/frame_octree/internal/converters/decimal_snapper"
	"github.com/ecopia-map/frame_octree/internal/converters/offset_position_corrector"
	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/ecopia-map/frame_octree/internal/geometry"
	"github.com/ecopia-map/frame_octree/internal/octree"
	"github.com/golang/geo/r3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTestTree(t *testing.T) *PointTree {
	tree, err := NewPointTreeWithRoot(
		offset_position_corrector.NewOffsetPositionCorrector(r3.Vector{}),
		decimal_snapper.NewDecimalSnapper(-1),
		r3.Vector{},
		100,
	)
	require.NoError(t, err)
	return tree
}

func TestPointTreeBuildDerivesRoot(t *testing.T) {
	tree := NewPointTree(nil, nil)
	require.False(t, tree.IsBuilt())
	require.Nil(t, tree.GetRootNode())

	_, err := tree.Get(vec(0, 0, 0))
	require.True(t, errors.Is(err, octree.ErrNotBuilt))

	frames := []*data.Frame{
		data.NewFrame(vec(10, 20, 30), time.Unix(1, 0), "a", 1),
		data.NewFrame(vec(-10, 0, 30), time.Unix(2, 0), "b", 1),
		data.NewFrame(vec(10, 20, 30), time.Unix(3, 0), "c", 1),
		data.NewFrame(vec(0, 5, 34), time.Unix(4, 0), "d", 1),
	}
	for _, f := range frames {
		tree.AddFrame(f)
	}
	require.Equal(t, 4, tree.Loader.Len())

	require.NoError(t, tree.Build())
	require.True(t, tree.IsBuilt())
	require.Equal(t, 4, tree.Size())
	require.Equal(t, 0, tree.Loader.Len())
	require.NoError(t, tree.Validate())

	root := tree.GetRootNode()
	require.Equal(t, vec(0, 10, 32), root.Cube().Centre())
	require.Equal(t, 10.0, root.Cube().HalfDim())

	payload, err := tree.Get(vec(10, 20, 30))
	require.NoError(t, err)
	require.Equal(t, 2, payload.Len())
	require.Same(t, frames[0], payload.Contents()[0].Content())
	require.Same(t, frames[2], payload.Contents()[1].Content())

	require.True(t, errors.Is(tree.Build(), octree.ErrAlreadyBuilt))
}

func TestPointTreeBuildEmpty(t *testing.T) {
	tree := NewPointTree(nil, nil)
	require.NoError(t, tree.Build())
	require.Equal(t, 0, tree.Size())
	require.Equal(t, minDerivedHalfDim, tree.GetRootNode().Cube().HalfDim())
}

func TestPointTreeBuildOutOfBounds(t *testing.T) {
	tree := newTestTree(t)
	tree.AddFrame(data.NewFrame(vec(1, 1, 1), time.Time{}, "in", 1))
	tree.AddFrame(data.NewFrame(vec(1000, 1, 1), time.Time{}, "out", 1))

	err := tree.Build()
	require.True(t, errors.Is(err, octree.ErrOutOfBounds))
	require.False(t, tree.IsBuilt())
}

func TestPointTreeBuildRetryDoesNotDuplicate(t *testing.T) {
	tree, err := NewPointTreeWithRoot(nil, nil, r3.Vector{}, 10)
	require.NoError(t, err)
	tree.AddFrame(data.NewFrame(vec(1, 1, 1), time.Time{}, "in", 1))
	tree.AddFrame(data.NewFrame(vec(50, 0, 0), time.Time{}, "out", 1))

	for i := 0; i < 2; i++ {
		err := tree.Build()
		require.True(t, errors.Is(err, octree.ErrOutOfBounds))
		require.False(t, tree.IsBuilt())
		require.Equal(t, 0, tree.Size())
		require.Equal(t, 10.0, tree.GetRootNode().Cube().HalfDim())
	}

	derived := NewPointTree(nil, nil)
	derived.AddFrame(data.NewFrame(vec(1, 1, 1), time.Time{}, "a", 1))
	require.NoError(t, derived.Build())
	require.NoError(t, derived.Insert(data.NewRecord(vec(1, 1, 1), "b")))
	require.Equal(t, 2, derived.Size())
}

func TestDeriveRootCubeCoversBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max r3.Vector
	}{
		{name: "rounding inwards", min: vec(252.57303555161195, 260, 260), max: vec(314.5478341257215, 260, 260)},
		{name: "negative", min: vec(-314.5478341257215, -1e-3, 7), max: vec(-252.57303555161195, 0.1, 7.3)},
		{name: "millimetre extent", min: vec(0.001, 0.002, 0.003), max: vec(0.005, 0.002, 0.003)},
		{name: "single position", min: vec(3, 4, 5), max: vec(3, 4, 5)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bounds := geometry.NewBoundingBoxFromVertices(test.min, test.max)
			centre, halfDim := deriveRootCube(bounds)
			cube := geometry.NewCube(centre, halfDim)
			require.True(t, cube.Contains(test.min))
			require.True(t, cube.Contains(test.max))
		})
	}

	_, halfDim := deriveRootCube(geometry.NewBoundingBoxFromVertices(vec(0.001, 0, 0), vec(0.005, 0, 0)))
	require.Less(t, halfDim, 0.01)
	_, halfDim = deriveRootCube(geometry.NewBoundingBoxFromVertices(vec(3, 4, 5), vec(3, 4, 5)))
	require.Equal(t, minDerivedHalfDim, halfDim)

	tree := NewPointTree(nil, nil)
	tree.AddFrame(data.NewFrame(vec(252.57303555161195, 260, 260), time.Time{}, "a", 1))
	tree.AddFrame(data.NewFrame(vec(314.5478341257215, 260, 260), time.Time{}, "b", 1))
	require.NoError(t, tree.Build())
	require.Equal(t, 2, tree.Size())
	require.NoError(t, tree.Validate())
}

func TestPointTreeConvertsFramePositions(t *testing.T) {
	tree, err := NewPointTreeWithRoot(
		offset_position_corrector.NewOffsetPositionCorrector(vec(0, 0, 1)),
		decimal_snapper.NewDecimalSnapper(2),
		r3.Vector{},
		100,
	)
	require.NoError(t, err)

	require.NoError(t, tree.InsertFrame(data.NewFrame(vec(0.1+0.2, 1.004, 2), time.Time{}, "a", 1)))
	require.NoError(t, tree.InsertFrame(data.NewFrame(vec(0.3, 0.998, 2.001), time.Time{}, "b", 1)))

	payload, err := tree.Get(vec(0.3, 1, 3))
	require.NoError(t, err)
	require.Equal(t, 2, payload.Len())
}

func TestPointTreeReturnsCopies(t *testing.T) {
	tree := newTestTree(t)
	require.NoError(t, tree.Insert(data.NewRecord(vec(1, 2, 3), "a")))

	payload, err := tree.Get(vec(1, 2, 3))
	require.NoError(t, err)
	payload.Clear()

	payload, err = tree.Get(vec(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, 1, payload.Len())

	payloads, err := tree.PointsInBox(vec(0, 0, 0), vec(5, 5, 5))
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	payloads[0].Pop()
	require.Equal(t, 1, tree.Size())
}

func TestPointTreeOperations(t *testing.T) {
	tree := newTestTree(t)
	queriesBefore := testutil.ToFloat64(octreeBoxQueryTotal)

	require.NoError(t, tree.Extend([]*data.Record{
		data.NewRecord(vec(20, 30, 40), "An item 1"),
		data.NewRecord(vec(20, 30, 40), "An item 1 copy"),
		data.NewRecord(vec(30, 30, 40), "An item 2"),
		data.NewRecord(vec(40, 30, 40), "An item 3"),
	}))
	require.Equal(t, 4, tree.Size())
	require.Equal(t, 4.0, testutil.ToFloat64(octreeRecordCount))

	payloads, err := tree.PointsInBox(vec(0, 0, 0), vec(25, 35, 50))
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	require.Equal(t, 2, payloads[0].Len())
	require.Equal(t, 1.0, testutil.ToFloat64(octreeBoxQueryTotal)-queriesBefore)

	removed, err := tree.Remove(vec(20, 30, 40), true)
	require.NoError(t, err)
	require.Len(t, removed, 2)
	require.Equal(t, 2, tree.Size())

	_, err = tree.Nearest(vec(0, 0, 0))
	require.True(t, errors.Is(err, octree.ErrUnsupportedOperation))

	stats, err := tree.Stats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.Records)
	require.Equal(t, 2, stats.FilledLeaves)

	visited := 0
	tree.ForEachPayload(func(payload *data.Payload) bool {
		visited += payload.Len()
		return true
	})
	require.Equal(t, 2, visited)

	require.True(t, tree.Clear())
	require.Equal(t, 0, tree.Size())
	require.NoError(t, tree.Insert(data.NewRecord(vec(1, 1, 1), "again")))
	require.Equal(t, 1, tree.Size())
}

func TestPointTreeConcurrentAccess(t *testing.T) {
	tree := newTestTree(t)

	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				p := vec(float64(w*20-80), float64(i%50), float64(i/50))
				require.NoError(t, tree.Insert(data.NewRecord(p, i)))
			}
		}(w)
	}

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, err := tree.PointsInBox(vec(-100, -100, -100), vec(100, 100, 100))
				require.NoError(t, err)
				_ = tree.Size()
			}
		}()
	}

	wg.Wait()
	require.Equal(t, writers*perWriter, tree.Size())
	require.NoError(t, tree.Validate())

	payloads, err := tree.PointsInBox(vec(-100, -100, -100), vec(100, 100, 100))
	require.NoError(t, err)
	require.Len(t, payloads, writers*perWriter)
}
