package io

import (
	"iter"
	"sync"

	"github.com/ecopia-map/frame_octree/internal/data"
)

type StandardProducer struct{}

func NewStandardProducer() *StandardProducer {
	return &StandardProducer{}
}

// Submits a WorkUnit for every payload of the sequence to the provided work channel, numbering them in
// sequence order. Closes the channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup, payloads iter.Seq[*data.Payload]) {
	seq := 0
	for payload := range payloads {
		if payload == nil || payload.IsEmpty() {
			continue
		}
		work <- &WorkUnit{
			Seq:     seq,
			Payload: payload,
		}
		seq++
	}
	close(work)
	wg.Done()
}
