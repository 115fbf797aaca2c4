package geometry

import "github.com/golang/geo/r3"

// Octant identifies one of the eight children of a cube. Bit 2 is set when the x coordinate is on the
// "+" side of the centre, bit 1 for y and bit 0 for z. Iterating 0..7 therefore visits "---", "--+",
// "-+-", "-++", "+--", "+-+", "++-", "+++" in this order.
type Octant uint8

const NumOctants = 8

// Returns the octant of point relative to centre. A coordinate equal to the centre goes on the "+" side.
func OctantOf(centre, point r3.Vector) Octant {
	var result Octant
	if point.X >= centre.X {
		result |= 4
	}
	if point.Y >= centre.Y {
		result |= 2
	}
	if point.Z >= centre.Z {
		result |= 1
	}
	return result
}

// Returns the unit sign vector of the octant, each component being +1 or -1
func (o Octant) Direction() r3.Vector {
	return r3.Vector{X: sign(o&4 != 0), Y: sign(o&2 != 0), Z: sign(o&1 != 0)}
}

// Three character code such as "+-+", one symbol per axis in x, y, z order
func (o Octant) String() string {
	code := []byte("---")
	if o&4 != 0 {
		code[0] = '+'
	}
	if o&2 != 0 {
		code[1] = '+'
	}
	if o&1 != 0 {
		code[2] = '+'
	}
	return string(code)
}

// Parses a three character "+"/"-" code back into an Octant
func ParseOctant(code string) (Octant, bool) {
	if len(code) != 3 {
		return 0, false
	}
	var o Octant
	for i, bit := range []Octant{4, 2, 1} {
		switch code[i] {
		case '+':
			o |= bit
		case '-':
		default:
			return 0, false
		}
	}
	return o, true
}

func sign(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}
