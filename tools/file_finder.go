package tools

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ecopia-map/frame_octree/internal/indexer"
)

const FrameFileExtension = ".jsonl"

type FileFinder interface {
	GetFrameFilesToProcess(opts *indexer.IndexerOptions) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetFrameFilesToProcess(opts *indexer.IndexerOptions) ([]string, error) {
	// If folder processing is not enabled then the frame file is given by -input flag, otherwise look for
	// frame files in -input folder eventually excluding nested folders if Recursive flag is disabled
	if !opts.FolderProcessing {
		return []string{opts.Input}, nil
	}

	return f.getFrameFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getFrameFilesFromInputFolder(opts *indexer.IndexerOptions) ([]string, error) {
	var frameFiles = make([]string, 0)

	baseInfo, err := os.Stat(opts.Input)
	if err != nil {
		return nil, err
	}
	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if !opts.Recursive && !os.SameFile(info, baseInfo) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.ToLower(filepath.Ext(info.Name())) == FrameFileExtension {
				frameFiles = append(frameFiles, path)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	sort.Strings(frameFiles)
	return frameFiles, nil
}
