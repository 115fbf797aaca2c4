package frame_loader

import (
	"sync"

	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/ecopia-map/frame_octree/internal/geometry"
)

// Buffers records before they are inserted in a tree and keeps track of their bounds
type Loader interface {
	AddRecord(record *data.Record)
	// Returns the next record and whether more records may follow
	GetNext() (*data.Record, bool)
	// Returns the bounding box of the loaded records, nil if none were loaded
	GetBounds() *geometry.BoundingBox
	InitializeLoader()
	ClearLoader()
	Len() int
}

// Hands out records in the exact order they were added
type SequentialLoader struct {
	records []*data.Record
	bounds  *geometry.BoundingBox
	next    int
	sync.Mutex
}

func NewSequentialLoader() Loader {
	return &SequentialLoader{
		records: make([]*data.Record, 0),
	}
}

func (l *SequentialLoader) AddRecord(record *data.Record) {
	l.Lock()
	defer l.Unlock()

	position := record.Position()
	if l.bounds == nil {
		l.bounds = &geometry.BoundingBox{Min: position, Max: position}
	} else {
		l.bounds.ExpandToFit(position)
	}
	l.records = append(l.records, record)
}

func (l *SequentialLoader) GetNext() (*data.Record, bool) {
	l.Lock()
	defer l.Unlock()

	if l.next >= len(l.records) {
		return nil, false
	}
	record := l.records[l.next]
	l.next++
	return record, l.next < len(l.records)
}

func (l *SequentialLoader) GetBounds() *geometry.BoundingBox {
	l.Lock()
	defer l.Unlock()

	if l.bounds == nil {
		return nil
	}
	bounds := *l.bounds
	return &bounds
}

// Rewinds the loader to its first record
func (l *SequentialLoader) InitializeLoader() {
	l.Lock()
	defer l.Unlock()

	l.next = 0
}

func (l *SequentialLoader) ClearLoader() {
	l.Lock()
	defer l.Unlock()

	l.records = make([]*data.Record, 0)
	l.bounds = nil
	l.next = 0
}

// Number of records still to be handed out
func (l *SequentialLoader) Len() int {
	l.Lock()
	defer l.Unlock()

	return len(l.records) - l.next
}
