package data

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// A Record is one unit of content tagged with the position it was captured at.
// Records are immutable once built.
type Record struct {
	position r3.Vector
	content  interface{}
}

// Builds a new Record from the given position and content
func NewRecord(position r3.Vector, content interface{}) *Record {
	return &Record{
		position: position,
		content:  content,
	}
}

func (r *Record) Position() r3.Vector {
	return r.position
}

func (r *Record) Content() interface{} {
	return r.content
}

func (r *Record) String() string {
	return fmt.Sprintf("Record (%v): %v", r.position, r.content)
}
