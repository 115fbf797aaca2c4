package decimal_snapper

import (
	"math"

	"github.com/ecopia-map/frame_octree/internal/converters"
	"github.com/golang/geo/r3"
	"github.com/shopspring/decimal"
)

// Rounds every coordinate to a fixed number of decimal places using decimal arithmetic, so that
// 0.1+0.2 and 0.3 snap to the same float64. A negative number of places disables snapping.
type DecimalSnapper struct {
	Places int32
}

func NewDecimalSnapper(places int32) converters.PositionSnapper {
	return &DecimalSnapper{
		Places: places,
	}
}

func (s *DecimalSnapper) SnapPosition(position r3.Vector) r3.Vector {
	if s.Places < 0 {
		return position
	}
	return r3.Vector{
		X: s.snap(position.X),
		Y: s.snap(position.Y),
		Z: s.snap(position.Z),
	}
}

func (s *DecimalSnapper) snap(value float64) float64 {
	// decimal cannot represent NaN or infinities
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	rounded, _ := decimal.NewFromFloat(value).Round(s.Places).Float64()
	return rounded
}
