package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/segmentio/encoding/json"
)

func FmtJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "marshal data fail"
	}
	return string(data)
}

// Parses a "x,y,z" string into a vector
func ParseVector(value string) (r3.Vector, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return r3.Vector{}, fmt.Errorf("vector %q must have 3 comma separated coordinates", value)
	}

	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return r3.Vector{}, fmt.Errorf("vector %q: %w", value, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return r3.Vector{}, fmt.Errorf("vector %q: coordinates must be finite", value)
		}
		coords[i] = v
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func FormatVector(v r3.Vector) string {
	return strconv.FormatFloat(v.X, 'g', -1, 64) + "," +
		strconv.FormatFloat(v.Y, 'g', -1, 64) + "," +
		strconv.FormatFloat(v.Z, 'g', -1, 64)
}
