package pkg

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/ecopia-map/frame_octree/internal/geometry"
	"github.com/ecopia-map/frame_octree/internal/indexer"
	"github.com/ecopia-map/frame_octree/internal/octree/point_tree"
	"github.com/ecopia-map/frame_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/frame_octree/tools"
	"github.com/golang/geo/r3"
	"github.com/golang/glog"
)

var ErrQueryMismatch = errors.New("box query differs from linear scan")

type IndexerVerify struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewIndexerVerify(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) IIndexer {
	return &IndexerVerify{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// Builds the tree, checks its structure and compares random box queries with a linear scan of the payloads
func (indexerVerify *IndexerVerify) RunIndexer(opts *indexer.IndexerOptions) error {
	verifyOpts := opts.IndexerVerifyOptions
	if verifyOpts == nil {
		verifyOpts = &indexer.IndexerVerifyOptions{Queries: 0, Seed: 1}
	}

	tree, err := loadTree(indexerVerify.fileFinder, indexerVerify.algorithmManager, opts)
	if err != nil {
		return err
	}

	tools.LogOutput("> verifying tree structure...")
	if err := tree.Validate(); err != nil {
		return err
	}

	tools.LogOutput(fmt.Sprintf("> verifying %d box queries...", verifyOpts.Queries))
	if err := VerifyBoxQueries(tree, verifyOpts.Queries, verifyOpts.Seed); err != nil {
		return err
	}

	stats, err := tree.Stats()
	if err != nil {
		return err
	}
	glog.Infoln("verified tree:", tools.FmtJSONString(stats))
	return nil
}

// Runs n random box queries inside the root cube and checks each one returns exactly the payloads a linear
// scan finds, in the same order
func VerifyBoxQueries(tree *point_tree.PointTree, n int, seed int64) error {
	root := tree.GetRootNode()
	if root == nil {
		return nil
	}
	rootMin, rootMax := root.Cube().BoundMin(), root.Cube().BoundMax()
	rnd := rand.New(rand.NewSource(seed))

	for i := 0; i < n; i++ {
		a := randomPoint(rnd, rootMin, rootMax)
		b := randomPoint(rnd, rootMin, rootMax)
		boxMin := r3.Vector{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
		boxMax := r3.Vector{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}

		got, err := tree.PointsInBox(boxMin, boxMax)
		if err != nil {
			return err
		}
		want := linearScan(tree, boxMin, boxMax)

		if err := comparePayloads(got, want); err != nil {
			return fmt.Errorf("query %d [%s, %s]: %w", i, tools.FormatVector(boxMin), tools.FormatVector(boxMax), err)
		}
		if glog.V(2) {
			glog.Infof("query %d returned %d payloads", i, len(got))
		}
	}
	return nil
}

func randomPoint(rnd *rand.Rand, boundMin, boundMax r3.Vector) r3.Vector {
	return r3.Vector{
		X: boundMin.X + rnd.Float64()*(boundMax.X-boundMin.X),
		Y: boundMin.Y + rnd.Float64()*(boundMax.Y-boundMin.Y),
		Z: boundMin.Z + rnd.Float64()*(boundMax.Z-boundMin.Z),
	}
}

func linearScan(tree *point_tree.PointTree, boxMin, boxMax r3.Vector) []*data.Payload {
	payloads := make([]*data.Payload, 0)
	tree.ForEachPayload(func(payload *data.Payload) bool {
		if position, ok := payload.Position(); ok && geometry.ContainsPoint(position, boxMin, boxMax) {
			payloads = append(payloads, payload.Clone())
		}
		return true
	})
	return payloads
}

func comparePayloads(got, want []*data.Payload) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: %d payloads, expected %d", ErrQueryMismatch, len(got), len(want))
	}
	for i := range got {
		gotPosition, _ := got[i].Position()
		wantPosition, _ := want[i].Position()
		if gotPosition != wantPosition || got[i].Len() != want[i].Len() {
			return fmt.Errorf("%w: payload %d at %v (%d records), expected %v (%d records)",
				ErrQueryMismatch, i, gotPosition, got[i].Len(), wantPosition, want[i].Len())
		}
	}
	return nil
}
