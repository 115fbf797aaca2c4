package pkg

import (
	"fmt"
	"io"
	"os"

	"github.com/ecopia-map/frame_octree/internal/indexer"
	"github.com/ecopia-map/frame_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/frame_octree/tools"
)

type IndexerIndex struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
	out              io.Writer
}

func NewIndexer(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) IIndexer {
	return NewIndexerWithWriter(fileFinder, algorithmManager, os.Stdout)
}

func NewIndexerWithWriter(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager, out io.Writer) IIndexer {
	return &IndexerIndex{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
		out:              out,
	}
}

// Builds the tree from the frame files and prints its statistics as JSON
func (indexerIndex *IndexerIndex) RunIndexer(opts *indexer.IndexerOptions) error {
	tree, err := loadTree(indexerIndex.fileFinder, indexerIndex.algorithmManager, opts)
	if err != nil {
		return err
	}

	stats, err := tree.Stats()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(indexerIndex.out, tools.FmtJSONString(stats))
	return err
}
