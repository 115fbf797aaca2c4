package io

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/golang/glog"
)

var ErrEmptyWorkUnit = errors.New("work unit has no payload")

// One line of a query report
type ReportEntry struct {
	Seq      int            `json:"seq"`
	Position []float64      `json:"position"`
	Count    int            `json:"count"`
	Records  []*RecordEntry `json:"records"`
}

type RecordEntry struct {
	Position []float64   `json:"position"`
	Frame    *FrameEntry `json:"frame,omitempty"`
	Content  string      `json:"content,omitempty"`
}

type FrameEntry struct {
	ID        string    `json:"id"`
	Position  []float64 `json:"position"`
	Timestamp time.Time `json:"timestamp"`
	Label     string    `json:"label,omitempty"`
	Quality   float64   `json:"quality"`
}

type StandardConsumer struct{}

func NewStandardConsumer() *StandardConsumer {
	return &StandardConsumer{}
}

// Continually consumes WorkUnits submitted to a work channel producing the corresponding report entries.
// Continues working until work channel is closed or if an error is raised. In this last case submits the
// error to an error channel before quitting
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, results chan *ReportEntry, errchan chan error, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	for work := range workchan {
		entry, err := c.doWork(work)
		if err != nil {
			errchan <- err
			glog.Errorln("report consumer stopped:", err)
			// keep draining so the producer never blocks
			for range workchan {
			}
			return
		}
		results <- entry
	}
}

func (c *StandardConsumer) doWork(workUnit *WorkUnit) (*ReportEntry, error) {
	payload := workUnit.Payload
	if payload == nil {
		return nil, fmt.Errorf("work unit %d: %w", workUnit.Seq, ErrEmptyWorkUnit)
	}
	position, ok := payload.Position()
	if !ok {
		return nil, fmt.Errorf("work unit %d: %w", workUnit.Seq, ErrEmptyWorkUnit)
	}

	records := payload.Contents()
	entry := &ReportEntry{
		Seq:      workUnit.Seq,
		Position: []float64{position.X, position.Y, position.Z},
		Count:    len(records),
		Records:  make([]*RecordEntry, 0, len(records)),
	}
	for _, record := range records {
		entry.Records = append(entry.Records, renderRecord(record))
	}
	return entry, nil
}

func renderRecord(record *data.Record) *RecordEntry {
	p := record.Position()
	entry := &RecordEntry{
		Position: []float64{p.X, p.Y, p.Z},
	}

	switch content := record.Content().(type) {
	case *data.Frame:
		entry.Frame = &FrameEntry{
			ID:        content.ID.String(),
			Position:  []float64{content.Position.X, content.Position.Y, content.Position.Z},
			Timestamp: content.Timestamp,
			Label:     content.Label,
			Quality:   content.Quality,
		}
	case nil:
	default:
		entry.Content = fmt.Sprint(content)
	}
	return entry
}
