package data

import (
	"fmt"
	"time"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
)

// A Frame is a captured image reference taken at a given position. It is what the capture pipeline
// stores in the tree as Record content.
type Frame struct {
	ID        uuid.UUID
	Position  r3.Vector
	Timestamp time.Time
	Label     string
	Quality   float64
}

// Builds a new Frame with a random id
func NewFrame(position r3.Vector, timestamp time.Time, label string, quality float64) *Frame {
	return &Frame{
		ID:        uuid.New(),
		Position:  position,
		Timestamp: timestamp,
		Label:     label,
		Quality:   quality,
	}
}

// Wraps the frame into a Record positioned at the given (possibly converted) position
func (f *Frame) ToRecord(position r3.Vector) *Record {
	return NewRecord(position, f)
}

func (f *Frame) String() string {
	return fmt.Sprintf("Frame %s (%v): %s", f.ID, f.Position, f.Label)
}
