package pkg

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecopia-map/frame_octree/internal/data"
	"github.com/ecopia-map/frame_octree/internal/indexer"
	"github.com/ecopia-map/frame_octree/internal/io"
	"github.com/ecopia-map/frame_octree/internal/octree/point_tree"
	"github.com/ecopia-map/frame_octree/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/frame_octree/tools"
	"github.com/golang/geo/r3"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

func init() {
	tools.DisableLogger()
}

const scenarioFrames = `{"position":[20,30,40],"label":"first"}
{"position":[20,30,40],"label":"second"}
{"position":[30,30,40],"label":"third"}
{"position":[40,30,40],"label":"fourth"}
`

func writeFrameFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func scenarioOptions(input string) *indexer.IndexerOptions {
	return &indexer.IndexerOptions{
		Input:        input,
		RootCentre:   r3.Vector{},
		RootHalfDim:  100,
		SnapDecimals: -1,
	}
}

func TestRunIndexer(t *testing.T) {
	input := writeFrameFile(t, t.TempDir(), "frames.jsonl", scenarioFrames)
	opts := scenarioOptions(input)
	opts.Command = tools.CommandIndex

	var out bytes.Buffer
	err := NewIndexerWithWriter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts), &out).RunIndexer(opts)
	require.NoError(t, err)

	var stats point_tree.TreeStats
	require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
	require.Equal(t, 4, stats.Records)
	require.Equal(t, 3, stats.FilledLeaves)
	require.Equal(t, 100.0, stats.HalfDim)
	require.Equal(t, []float64{0, 0, 0}, stats.Centre)
}

func TestRunIndexerFolder(t *testing.T) {
	dir := t.TempDir()
	writeFrameFile(t, dir, "a.jsonl", "{\"position\":[1,1,1]}\n")
	writeFrameFile(t, dir, "nested/b.jsonl", "{\"position\":[2,2,2]}\n")
	writeFrameFile(t, dir, "notes.txt", "not a frame file")

	for _, recursive := range []bool{false, true} {
		t.Run(fmt.Sprintf("recursive=%v", recursive), func(t *testing.T) {
			opts := scenarioOptions(dir)
			opts.FolderProcessing = true
			opts.Recursive = recursive

			var out bytes.Buffer
			err := NewIndexerWithWriter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts), &out).RunIndexer(opts)
			require.NoError(t, err)

			var stats point_tree.TreeStats
			require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
			if recursive {
				require.Equal(t, 2, stats.Records)
			} else {
				require.Equal(t, 1, stats.Records)
			}
		})
	}
}

func TestRunIndexerOutOfBounds(t *testing.T) {
	input := writeFrameFile(t, t.TempDir(), "frames.jsonl", "{\"position\":[1000,0,0]}\n")
	opts := scenarioOptions(input)

	err := NewIndexerWithWriter(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts), &bytes.Buffer{}).RunIndexer(opts)
	require.Error(t, err)
}

func TestRunIndexerQuery(t *testing.T) {
	dir := t.TempDir()
	input := writeFrameFile(t, dir, "frames.jsonl", scenarioFrames)
	output := filepath.Join(dir, "out", "report.jsonl")

	opts := scenarioOptions(input)
	opts.Command = tools.CommandQuery
	opts.IndexerQueryOptions = &indexer.IndexerQueryOptions{
		BoxMin:    r3.Vector{X: 0, Y: 0, Z: 0},
		BoxMax:    r3.Vector{X: 25, Y: 35, Z: 50},
		Output:    output,
		Consumers: 2,
	}

	err := NewIndexerQuery(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunIndexer(opts)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)

	var entry io.ReportEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, []float64{20, 30, 40}, entry.Position)
	require.Equal(t, 2, entry.Count)
	require.Equal(t, "first", entry.Records[0].Frame.Label)
	require.Equal(t, "second", entry.Records[1].Frame.Label)
}

func TestRunIndexerQueryMissingOptions(t *testing.T) {
	opts := scenarioOptions("unused")
	err := NewIndexerQuery(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunIndexer(opts)
	require.ErrorIs(t, err, ErrMissingQueryOptions)
}

func TestExportPayloadsKeepsOrder(t *testing.T) {
	payloads := make([]*data.Payload, 0, 50)
	for i := 0; i < 50; i++ {
		payload := data.NewPayload()
		require.NoError(t, payload.Append(data.NewRecord(r3.Vector{X: float64(i)}, i)))
		payloads = append(payloads, payload)
	}

	var out bytes.Buffer
	require.NoError(t, exportPayloads(payloads, 4, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 50)
	for i, line := range lines {
		var entry io.ReportEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		require.Equal(t, i, entry.Seq)
		require.Equal(t, float64(i), entry.Position[0])
	}
}

func TestRunIndexerVerify(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&sb, "{\"position\":[%d,%d,%d]}\n", (i*37)%101-50, (i*53)%97-48, (i*11)%89-44)
	}
	input := writeFrameFile(t, t.TempDir(), "frames.jsonl", sb.String())

	opts := &indexer.IndexerOptions{
		Input:                input,
		SnapDecimals:         2,
		Command:              tools.CommandVerify,
		IndexerVerifyOptions: &indexer.IndexerVerifyOptions{Queries: 50, Seed: 7},
	}
	err := NewIndexerVerify(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts)).RunIndexer(opts)
	require.NoError(t, err)
}

func TestComparePayloads(t *testing.T) {
	a := data.NewPayload()
	require.NoError(t, a.Append(data.NewRecord(r3.Vector{X: 1}, nil)))
	b := data.NewPayload()
	require.NoError(t, b.Append(data.NewRecord(r3.Vector{X: 2}, nil)))

	require.NoError(t, comparePayloads([]*data.Payload{a}, []*data.Payload{a.Clone()}))
	require.ErrorIs(t, comparePayloads([]*data.Payload{a}, []*data.Payload{b}), ErrQueryMismatch)
	require.ErrorIs(t, comparePayloads([]*data.Payload{a}, nil), ErrQueryMismatch)
}
