package converters

import "github.com/golang/geo/r3"

// Moves positions coming from the capture pipeline into the frame of reference of the tree
type PositionCorrector interface {
	CorrectPosition(position r3.Vector) r3.Vector
}

// Quantizes positions so that captures taken at the same pose land on the same tree position
type PositionSnapper interface {
	SnapPosition(position r3.Vector) r3.Vector
}
