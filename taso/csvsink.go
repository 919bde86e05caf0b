package taso

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// CSVSink appends one best-candidate row per improvement, schema
// `{circ_len: integer, time: RFC3339 string}` (spec §6 "Optional
// best-candidate CSV log with header-inferred schema").
type CSVSink struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVSink wraps w, writing a header row on the first call to Write.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

// Write appends one row for a new best-so-far candidate.
func (s *CSVSink) Write(circLen int, at time.Time) error {
	if !s.wroteHeader {
		if err := s.w.Write([]string{"circ_len", "time"}); err != nil {
			return fmt.Errorf("taso: csv header: %w", err)
		}
		s.wroteHeader = true
	}
	if err := s.w.Write([]string{fmt.Sprintf("%d", circLen), at.Format(time.RFC3339)}); err != nil {
		return fmt.Errorf("taso: csv row: %w", err)
	}
	s.w.Flush()
	return s.w.Error()
}

// ResultStore is an optional durable sink for best-candidate rows,
// implemented outside this package (see package resultstore's
// pgx-backed store) so that taso never imports a database driver
// directly.
type ResultStore interface {
	SaveBest(runID string, circLen int, cost int, at time.Time) error
}
