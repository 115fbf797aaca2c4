package io

import (
	"bufio"
	goio "io"
	"sort"

	"github.com/segmentio/encoding/json"
)

// Writes the entries as JSON lines ordered by their sequence number
func WriteReport(w goio.Writer, entries []*ReportEntry) error {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })

	bw := bufio.NewWriter(w)
	encoder := json.NewEncoder(bw)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			return err
		}
	}
	return bw.Flush()
}
