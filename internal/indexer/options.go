package indexer

import "github.com/golang/geo/r3"

// Contains the options needed to load frames and build the octree
type IndexerOptions struct {
	Input            string    // Input frame file/folder
	FolderProcessing bool      // Enables the processing of all frame files in folder
	Recursive        bool      // Recursive lookup of frame files in subfolders
	RootCentre       r3.Vector // Centre of the root cube, used when RootHalfDim > 0
	RootHalfDim      float64   // Half side of the root cube. 0 derives the root from the loaded frames
	Offset           r3.Vector // Offset applied to every frame position
	SnapDecimals     int32     // Decimal places positions are rounded to. Negative disables rounding

	Command              string
	IndexerQueryOptions  *IndexerQueryOptions
	IndexerVerifyOptions *IndexerVerifyOptions
}

type IndexerQueryOptions struct {
	BoxMin    r3.Vector
	BoxMax    r3.Vector
	Output    string // Report file, stdout when empty
	Consumers int    // Number of report rendering goroutines
}

type IndexerVerifyOptions struct {
	Queries int   // Number of random box queries checked against a linear scan
	Seed    int64 // Seed of the random query generator
}

// Returns true when the root cube is given explicitly rather than derived from the frames
func (opt *IndexerOptions) HasFixedRoot() bool {
	return opt.RootHalfDim > 0
}

func (opt *IndexerOptions) Copy() *IndexerOptions {
	newOpt := &IndexerOptions{
		Input:                opt.Input,
		FolderProcessing:     opt.FolderProcessing,
		Recursive:            opt.Recursive,
		RootCentre:           opt.RootCentre,
		RootHalfDim:          opt.RootHalfDim,
		Offset:               opt.Offset,
		SnapDecimals:         opt.SnapDecimals,
		Command:              opt.Command,
		IndexerQueryOptions:  nil,
		IndexerVerifyOptions: nil,
	}

	if opt.IndexerQueryOptions != nil {
		queryOpt := *opt.IndexerQueryOptions
		newOpt.IndexerQueryOptions = &queryOpt
	}

	if opt.IndexerVerifyOptions != nil {
		verifyOpt := *opt.IndexerVerifyOptions
		newOpt.IndexerVerifyOptions = &verifyOpt
	}

	return newOpt
}
