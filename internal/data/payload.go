package data

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
)

var ErrPositionConflict = errors.New("record position differs from payload position")

// Payload holds the records stored at a single position of the tree, in the order they were added.
// When the payload holds no record its position is unset.
type Payload struct {
	position    r3.Vector
	hasPosition bool
	contents    []*Record
}

func NewPayload() *Payload {
	return &Payload{}
}

// Appends a record to the payload. The first record fixes the payload position; any later record
// must share it exactly.
func (p *Payload) Append(record *Record) error {
	if !p.hasPosition {
		p.position = record.Position()
		p.hasPosition = true
	} else if record.Position() != p.position {
		return fmt.Errorf("%w: payload at %v, record at %v", ErrPositionConflict, p.position, record.Position())
	}
	p.contents = append(p.contents, record)
	return nil
}

// Returns and removes the most recently added record. The position is cleared with the last record.
func (p *Payload) Pop() (*Record, bool) {
	n := len(p.contents)
	if n == 0 {
		return nil, false
	}
	last := p.contents[n-1]
	p.contents[n-1] = nil
	p.contents = p.contents[:n-1]
	if len(p.contents) == 0 {
		p.Clear()
	}
	return last, true
}

// Resets the payload to its empty state and returns the records it held
func (p *Payload) Clear() []*Record {
	removed := p.contents
	p.position = r3.Vector{}
	p.hasPosition = false
	p.contents = nil
	return removed
}

func (p *Payload) Position() (r3.Vector, bool) {
	return p.position, p.hasPosition
}

// Returns true if the payload holds records at exactly the given position
func (p *Payload) IsAt(point r3.Vector) bool {
	return p.hasPosition && p.position == point
}

// Returns the records in insertion order. The slice must not be modified.
func (p *Payload) Contents() []*Record {
	return p.contents
}

func (p *Payload) Len() int {
	return len(p.contents)
}

func (p *Payload) IsEmpty() bool {
	return len(p.contents) == 0
}

// Returns a copy of the payload that shares the (immutable) records but not the list
func (p *Payload) Clone() *Payload {
	clone := &Payload{
		position:    p.position,
		hasPosition: p.hasPosition,
	}
	if len(p.contents) > 0 {
		clone.contents = append(make([]*Record, 0, len(p.contents)), p.contents...)
	}
	return clone
}

func (p *Payload) String() string {
	if !p.hasPosition {
		return "Payload (none): []"
	}
	return fmt.Sprintf("Payload (%v): %v", p.position, p.contents)
}
