package algorithm_manager

import (
	"github.com/ecopia-map/frame_octree/internal/converters"
	"github.com/ecopia-map/frame_octree/internal/octree/point_tree"
)

type AlgorithmManager interface {
	GetPositionCorrectorAlgorithm() converters.PositionCorrector
	GetPositionSnapperAlgorithm() converters.PositionSnapper
	// Returns a new empty tree every time it is called
	GetTreeAlgorithm() (*point_tree.PointTree, error)
}
