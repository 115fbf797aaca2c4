package io

import "github.com/ecopia-map/frame_octree/internal/data"

// Contains the minimal data needed to render a single report entry, i.e. one payload returned by a box query
// and its position in the query result
type WorkUnit struct {
	Seq     int
	Payload *data.Payload
}
