package std_algorithm_manager

import (
	"github.com/ecopia-map/frame_octree/internal/converters"
	"github.com/ecopia-map/frame_octree/internal/converters/decimal_snapper"
	"github.com/ecopia-map/frame_octree/internal/converters/offset_position_corrector"
	"github.com/ecopia-map/frame_octree/internal/indexer"
	"github.com/ecopia-map/frame_octree/internal/octree/point_tree"
	"github.com/ecopia-map/frame_octree/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options   *indexer.IndexerOptions
	corrector converters.PositionCorrector
	snapper   converters.PositionSnapper
}

func NewAlgorithmManager(opts *indexer.IndexerOptions) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		options:   opts.Copy(),
		corrector: offset_position_corrector.NewOffsetPositionCorrector(opts.Offset),
		snapper:   decimal_snapper.NewDecimalSnapper(opts.SnapDecimals),
	}
}

func (m *StandardAlgorithmManager) GetPositionCorrectorAlgorithm() converters.PositionCorrector {
	return m.corrector
}

func (m *StandardAlgorithmManager) GetPositionSnapperAlgorithm() converters.PositionSnapper {
	return m.snapper
}

func (m *StandardAlgorithmManager) GetTreeAlgorithm() (*point_tree.PointTree, error) {
	if m.options.HasFixedRoot() {
		return point_tree.NewPointTreeWithRoot(m.corrector, m.snapper, m.options.RootCentre, m.options.RootHalfDim)
	}
	return point_tree.NewPointTree(m.corrector, m.snapper), nil
}
