package frame_loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
)

// Receives the frames read from a file
type FrameSink interface {
	AddFrame(frame *data.Frame)
}

// One line of a frame file
type frameLine struct {
	ID        uuid.UUID `json:"id"`
	Position  []float64 `json:"position"`
	Timestamp time.Time `json:"timestamp"`
	Label     string    `json:"label"`
	Quality   float64   `json:"quality"`
}

// Reads JSON-lines frame files and forwards every frame to a sink, typically a tree
type FrameFileLoader struct {
	Sink FrameSink
}

func NewFrameFileLoader(sink FrameSink) *FrameFileLoader {
	return &FrameFileLoader{
		Sink: sink,
	}
}

// Loads all the frames of the given file and returns how many were read
func (l *FrameFileLoader) LoadFrameFile(filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = file.Close() }()

	n, err := l.LoadFrames(file)
	if err != nil {
		return n, fmt.Errorf("%s: %w", filePath, err)
	}
	return n, nil
}

// Loads frames from a JSON-lines stream. Blank lines and lines starting with '#' are skipped.
func (l *FrameFileLoader) LoadFrames(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		frame, err := ParseFrame(line)
		if err != nil {
			return count, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		l.Sink.AddFrame(frame)
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, err
	}
	return count, nil
}

// Decodes a single JSON frame. Frames without an id get a random one.
func ParseFrame(line []byte) (*data.Frame, error) {
	var fl frameLine
	if err := json.Unmarshal(line, &fl); err != nil {
		return nil, err
	}
	if len(fl.Position) != 3 {
		return nil, fmt.Errorf("position must have 3 coordinates, got %d", len(fl.Position))
	}

	id := fl.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &data.Frame{
		ID:        id,
		Position:  r3.Vector{X: fl.Position[0], Y: fl.Position[1], Z: fl.Position[2]},
		Timestamp: fl.Timestamp,
		Label:     fl.Label,
		Quality:   fl.Quality,
	}, nil
}
