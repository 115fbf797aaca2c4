package tools

import (
	"flag"

	"github.com/golang/glog"
)

const (
	CommandIndex  = "index"
	CommandQuery  = "query"
	CommandVerify = "verify"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type IndexerFlags struct {
	Input                     *string  `json:"input"`
	FolderProcessing          *bool    `json:"folder"`
	RecursiveFolderProcessing *bool    `json:"recursive"`
	RootCentre                *string  `json:"centre"`
	RootHalfDim               *float64 `json:"half_dim"`
	Offset                    *string  `json:"offset"`
	SnapDecimals              *int     `json:"snap"`
	Silent                    *bool    `json:"silent"`
	Help                      *bool    `json:"help"`
}

type FlagsForCommandIndex struct {
	IndexerFlags
}

type FlagsForCommandQuery struct {
	IndexerFlags
	BoxMin    *string `json:"box_min"`
	BoxMax    *string `json:"box_max"`
	Output    *string `json:"output"`
	Consumers *int    `json:"consumers"`
}

type FlagsForCommandVerify struct {
	IndexerFlags
	Queries *int   `json:"queries"`
	Seed    *int64 `json:"seed"`
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "", false, "Displays the version of frame_octree.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func defineIndexerFlags(flagCommand *flag.FlagSet) IndexerFlags {
	return IndexerFlags{
		Input:                     defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input frame file/folder (JSON lines, one frame per line)."),
		FolderProcessing:          defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all .jsonl files from input folder. Input must be a folder if specified"),
		RecursiveFolderProcessing: defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all .jsonl files inside the subfolders"),
		RootCentre:                defineStringFlagCommand(flagCommand, "centre", "c", "0,0,0", "Centre of the root cube as x,y,z. Used only together with half-dim."),
		RootHalfDim:               defineFloat64FlagCommand(flagCommand, "half-dim", "d", 0, "Half side of the root cube. 0 derives the root cube from the bounds of the loaded frames: half the largest extent, or 1 when all frames share one position."),
		Offset:                    defineStringFlagCommand(flagCommand, "offset", "o", "0,0,0", "Offset x,y,z added to every frame position before indexing."),
		SnapDecimals:              defineIntFlagCommand(flagCommand, "snap", "n", -1, "Rounds frame positions to the given number of decimal places. Negative values disable rounding."),
		Silent:                    defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages."),
		Help:                      defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help."),
	}
}

func ParseFlagsForCommandIndex(args []string) (FlagsForCommandIndex, *flag.FlagSet) {
	glog.V(1).Infoln("command-index args:", FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-index", flag.ExitOnError)
	indexerFlags := defineIndexerFlags(flagCommand)

	flagCommand.Parse(args)

	return FlagsForCommandIndex{
		IndexerFlags: indexerFlags,
	}, flagCommand
}

func ParseFlagsForCommandQuery(args []string) (FlagsForCommandQuery, *flag.FlagSet) {
	glog.V(1).Infoln("command-query args:", FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-query", flag.ExitOnError)
	indexerFlags := defineIndexerFlags(flagCommand)

	boxMin := defineStringFlagCommand(flagCommand, "box-min", "a", "", "Minimum vertex x,y,z of the query box.")
	boxMax := defineStringFlagCommand(flagCommand, "box-max", "b", "", "Maximum vertex x,y,z of the query box.")
	output := defineStringFlagCommand(flagCommand, "output", "w", "", "Specifies the report file. The report is written to stdout when empty.")
	consumers := defineIntFlagCommand(flagCommand, "consumers", "", 0, "Number of report rendering goroutines. 0 uses one per CPU.")

	flagCommand.Parse(args)

	return FlagsForCommandQuery{
		IndexerFlags: indexerFlags,
		BoxMin:       boxMin,
		BoxMax:       boxMax,
		Output:       output,
		Consumers:    consumers,
	}, flagCommand
}

func ParseFlagsForCommandVerify(args []string) (FlagsForCommandVerify, *flag.FlagSet) {
	glog.V(1).Infoln("command-verify args:", FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-verify", flag.ExitOnError)
	indexerFlags := defineIndexerFlags(flagCommand)

	queries := defineIntFlagCommand(flagCommand, "queries", "q", 100, "Number of random box queries checked against a linear scan.")
	seed := defineInt64FlagCommand(flagCommand, "seed", "", 1, "Seed of the random box query generator.")

	flagCommand.Parse(args)

	return FlagsForCommandVerify{
		IndexerFlags: indexerFlags,
		Queries:      queries,
		Seed:         seed,
	}, flagCommand
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineInt64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int64, usage string) *int64 {
	var output int64
	flagCommand.Int64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Int64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
