package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ecopia-map/frame_octree/internal/indexer"
	"github.com/ecopia-map/frame_octree/pkg"
	"github.com/ecopia-map/frame_octree/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/frame_octree/tools"
	"github.com/golang/glog"
)

const VERSION = "0.3.0"

const commands = "[" + tools.CommandIndex + "|" + tools.CommandQuery + "|" + tools.CommandVerify + "]"

func main() {
	// glog writes to files by default, the tool is meant to be run interactively
	_ = flag.Set("logtostderr", "true")

	flagsGlobal := tools.ParseFlagsGlobal()
	defer glog.Flush()

	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		glog.Exitf("Please specify a subcommand %s.", commands)
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandIndex:
		mainCommandIndex(args)
	case tools.CommandQuery:
		mainCommandQuery(args)
	case tools.CommandVerify:
		mainCommandVerify(args)
	default:
		glog.Exitf("Unrecognized command [%q]. Command must be one of %s", cmd, commands)
	}
}

func mainCommandIndex(args []string) {
	flags, flagCommand := tools.ParseFlagsForCommandIndex(args)
	if *flags.Help {
		showCommandHelp(flagCommand)
		return
	}
	setupLogger(flags.IndexerFlags)

	opts := parseIndexerOptions(flags.IndexerFlags)
	opts.Command = tools.CommandIndex

	if msg, res := validateOptions(opts); !res {
		glog.Exit("Error parsing input parameters: " + msg)
	}

	defer timeTrack(time.Now(), "index")
	err := pkg.NewIndexer(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunIndexer(opts)
	if err != nil {
		glog.Exit("Error while indexing: ", err)
	}
	tools.LogOutput("Indexing Completed")
}

func mainCommandQuery(args []string) {
	flags, flagCommand := tools.ParseFlagsForCommandQuery(args)
	if *flags.Help {
		showCommandHelp(flagCommand)
		return
	}
	setupLogger(flags.IndexerFlags)

	opts := parseIndexerOptions(flags.IndexerFlags)
	opts.Command = tools.CommandQuery

	boxMin, err := tools.ParseVector(*flags.BoxMin)
	if err != nil {
		glog.Exit("Error parsing input parameters: box-min: ", err)
	}
	boxMax, err := tools.ParseVector(*flags.BoxMax)
	if err != nil {
		glog.Exit("Error parsing input parameters: box-max: ", err)
	}
	opts.IndexerQueryOptions = &indexer.IndexerQueryOptions{
		BoxMin:    boxMin,
		BoxMax:    boxMax,
		Output:    *flags.Output,
		Consumers: *flags.Consumers,
	}

	if msg, res := validateOptions(opts); !res {
		glog.Exit("Error parsing input parameters: " + msg)
	}
	if msg, res := validateQueryOptions(opts.IndexerQueryOptions); !res {
		glog.Exit("Error parsing input parameters: " + msg)
	}

	defer timeTrack(time.Now(), "query")
	err = pkg.NewIndexerQuery(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunIndexer(opts)
	if err != nil {
		glog.Exit("Error while querying: ", err)
	}
	tools.LogOutput("Query Completed")
}

func mainCommandVerify(args []string) {
	flags, flagCommand := tools.ParseFlagsForCommandVerify(args)
	if *flags.Help {
		showCommandHelp(flagCommand)
		return
	}
	setupLogger(flags.IndexerFlags)

	opts := parseIndexerOptions(flags.IndexerFlags)
	opts.Command = tools.CommandVerify
	opts.IndexerVerifyOptions = &indexer.IndexerVerifyOptions{
		Queries: *flags.Queries,
		Seed:    *flags.Seed,
	}

	if msg, res := validateOptions(opts); !res {
		glog.Exit("Error parsing input parameters: " + msg)
	}
	if opts.IndexerVerifyOptions.Queries < 0 {
		glog.Exit("Error parsing input parameters: queries cannot be negative")
	}

	defer timeTrack(time.Now(), "verify")
	err := pkg.NewIndexerVerify(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunIndexer(opts)
	if err != nil {
		glog.Exit("Verification failed: ", err)
	}
	tools.LogOutput("Verification Completed")
}

func setupLogger(flags tools.IndexerFlags) {
	if *flags.Silent {
		tools.DisableLogger()
	}
}

// Puts the shared flags inside an IndexerOptions struct
func parseIndexerOptions(flags tools.IndexerFlags) *indexer.IndexerOptions {
	centre, err := tools.ParseVector(*flags.RootCentre)
	if err != nil {
		glog.Exit("Error parsing input parameters: centre: ", err)
	}
	offset, err := tools.ParseVector(*flags.Offset)
	if err != nil {
		glog.Exit("Error parsing input parameters: offset: ", err)
	}

	return &indexer.IndexerOptions{
		Input:            *flags.Input,
		FolderProcessing: *flags.FolderProcessing,
		Recursive:        *flags.RecursiveFolderProcessing,
		RootCentre:       centre,
		RootHalfDim:      *flags.RootHalfDim,
		Offset:           offset,
		SnapDecimals:     int32(*flags.SnapDecimals),
	}
}

// Validates the input options provided to the command line tool checking
// that the input file/folder exists and the root cube is usable
func validateOptions(opts *indexer.IndexerOptions) (string, bool) {
	if opts.Input == "" {
		return "input file/folder is required", false
	}
	info, err := os.Stat(opts.Input)
	if os.IsNotExist(err) {
		return "Input file/folder not found", false
	}
	if err == nil && opts.FolderProcessing && !info.IsDir() {
		return "input must be a folder when folder processing is enabled", false
	}

	if opts.RootHalfDim < 0 {
		return "half-dim cannot be negative", false
	}

	return "", true
}

func validateQueryOptions(opts *indexer.IndexerQueryOptions) (string, bool) {
	if opts.BoxMin.X > opts.BoxMax.X || opts.BoxMin.Y > opts.BoxMax.Y || opts.BoxMin.Z > opts.BoxMax.Z {
		return "box-min must not exceed box-max on any axis", false
	}
	if opts.Consumers < 0 {
		return "consumers cannot be negative", false
	}
	return "", true
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func showHelp() {
	fmt.Println("***")
	fmt.Println("frame_octree indexes captured frames by position in an octree and answers box queries over them")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: frame_octree [flags] " + strings.Trim(commands, "[]") + " [command flags]")
	fmt.Println("Command line flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func showCommandHelp(flagCommand *flag.FlagSet) {
	printVersion()
	flagCommand.SetOutput(os.Stdout)
	flagCommand.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
