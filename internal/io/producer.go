package io

import (
	"iter"
	"sync"

	"github.com/ecopia-map/frame_octree/internal/data"
)

type Producer interface {
	Produce(work chan *WorkUnit, wg *sync.WaitGroup, payloads iter.Seq[*data.Payload])
}

type Consumer interface {
	Consume(workchan chan *WorkUnit, results chan *ReportEntry, errchan chan error, waitGroup *sync.WaitGroup)
}
