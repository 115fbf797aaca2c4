package pkg

import (
	"errors"
	goio "io"
	"runtime"
	"slices"
	"sync"

	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/ecopia-map/frame_octree/internal/indexer"
	"github.com/ecopia-map/frame_octree/internal/io"
	"github.com/ecopia-map/frame_octree/pkg/algorithm_manager"
	"github.com/ecopia-map/frame_octree/tools"
	"github.com/golang/glog"
)

var ErrMissingQueryOptions = errors.New("query options not set")

type IndexerQuery struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewIndexerQuery(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) IIndexer {
	return &IndexerQuery{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// Builds the tree, runs the box query and writes one JSON line per payload found
func (indexerQuery *IndexerQuery) RunIndexer(opts *indexer.IndexerOptions) error {
	queryOpts := opts.IndexerQueryOptions
	if queryOpts == nil {
		return ErrMissingQueryOptions
	}

	tree, err := loadTree(indexerQuery.fileFinder, indexerQuery.algorithmManager, opts)
	if err != nil {
		return err
	}

	tools.LogOutput("> querying box", tools.FormatVector(queryOpts.BoxMin), tools.FormatVector(queryOpts.BoxMax))
	payloads, err := tree.PointsInBox(queryOpts.BoxMin, queryOpts.BoxMax)
	if err != nil {
		return err
	}
	glog.Infoln("box query payloads:", len(payloads))

	out, closeOut, err := tools.CreateOutputWriter(queryOpts.Output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	tools.LogOutput("> exporting data...")
	return exportPayloads(payloads, queryOpts.Consumers, out)
}

// Renders the payloads with a pool of consumers and writes the report in payload order
func exportPayloads(payloads []*data.Payload, numConsumers int, out goio.Writer) error {
	// a consumer goroutine per CPU unless specified
	if numConsumers <= 0 {
		numConsumers = runtime.NumCPU()
	}

	// init channel where to submit work with a buffer 5 times greater than the number of consumer
	workChannel := make(chan *io.WorkUnit, numConsumers*5)

	// one slot per consumer, each one quits after its first error
	errorChannel := make(chan error, numConsumers)

	resultChannel := make(chan *io.ReportEntry, numConsumers*5)

	// collect results while producer and consumers run
	entries := make([]*io.ReportEntry, 0, len(payloads))
	collected := make(chan struct{})
	go func() {
		for entry := range resultChannel {
			entries = append(entries, entry)
		}
		close(collected)
	}()

	var waitGroup sync.WaitGroup

	// add producer to waitgroup and launch producer goroutine
	waitGroup.Add(1)
	producer := io.NewStandardProducer()
	go producer.Produce(workChannel, &waitGroup, slices.Values(payloads))

	// add consumers to waitgroup and launch them
	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := io.NewStandardConsumer()
		go consumer.Consume(workChannel, resultChannel, errorChannel, &waitGroup)
	}

	// wait for producers and consumers to finish
	waitGroup.Wait()
	close(resultChannel)
	close(errorChannel)
	<-collected

	// find if there are errors in the error channel buffer
	var errs []error
	for err := range errorChannel {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return io.WriteReport(out, entries)
}
