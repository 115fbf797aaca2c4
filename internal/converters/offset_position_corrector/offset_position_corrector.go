package offset_position_corrector

import (
	"github.com/ecopia-map/frame_octree/internal/converters"
	"github.com/golang/geo/r3"
)

type OffsetPositionCorrector struct {
	Offset r3.Vector
}

func NewOffsetPositionCorrector(offset r3.Vector) converters.PositionCorrector {
	return &OffsetPositionCorrector{
		Offset: offset,
	}
}

func (c *OffsetPositionCorrector) CorrectPosition(position r3.Vector) r3.Vector {
	return position.Add(c.Offset)
}
