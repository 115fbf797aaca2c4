package pkg

import (
	"fmt"
	"path/filepath"

	"github.com/ecopia-map/frame_octree/internal/frame_loader"
	"github.com/ecopia-map/frame_octree/internal/indexer"
	"github.com/ecopia-map/frame_octree/internal/octree/point_tree"
	"github.com/ecopia-map/frame_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/frame_octree/tools"
	"github.com/golang/glog"
)

type IIndexer interface {
	RunIndexer(opts *indexer.IndexerOptions) error
}

// Loads every frame file found for the options into a single new tree and builds it
func loadTree(
	fileFinder tools.FileFinder,
	algorithmManager algorithm_manager.AlgorithmManager,
	opts *indexer.IndexerOptions,
) (*point_tree.PointTree, error) {
	tools.LogOutput("Preparing list of files to process...")

	frameFiles, err := fileFinder.GetFrameFilesToProcess(opts)
	if err != nil {
		return nil, err
	}
	for i, filePath := range frameFiles {
		glog.V(1).Infof("frame_file path %d [%s]", i+1, filePath)
	}

	tree, err := algorithmManager.GetTreeAlgorithm()
	if err != nil {
		return nil, err
	}

	frameLoader := frame_loader.NewFrameFileLoader(tree)
	for i, filePath := range frameFiles {
		tools.LogOutput(fmt.Sprintf("> reading frames from file %d/%d %s", i+1, len(frameFiles), filepath.Base(filePath)))
		n, err := frameLoader.LoadFrameFile(filePath)
		if err != nil {
			return nil, err
		}
		glog.V(1).Infof("frame_file %s frames: %d", filePath, n)
	}

	tools.LogOutput("> building data structure...")
	if err := tree.Build(); err != nil {
		return nil, err
	}
	glog.Infoln("tree size:", tree.Size())

	return tree, nil
}
