// Package filesink implements audit.Sink as a line-delimited JSON
// file, appending one record per line so the file can be tailed or
// replayed without parsing the whole thing into memory.
package filesink

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/Z3DDIEZ/HexVault/audit"
)

// Sink appends each audit.Record as a single JSON line to an
// underlying file, opened for append so a process restart resumes
// writing after whatever was already there.
type Sink struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// wireRecord is the on-disk shape of an audit.Record: the layer is
// rendered as its tag string rather than its ordinal so the file
// remains readable without importing the layer package.
type wireRecord struct {
	Seq         uint64 `json:"seq"`
	EventID     string `json:"event_id"`
	TimestampMS int64  `json:"ts_ms"`
	Src         string `json:"src"`
	Dst         string `json:"dst"`
	Layer       string `json:"layer"`
}

// Open opens (creating if necessary) the file at path for append and
// returns a Sink that writes to it.
func Open(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("filesink: open %s: %w", path, err)
	}
	return &Sink{file: f, enc: json.NewEncoder(f)}, nil
}

// Write implements audit.Sink.
func (s *Sink) Write(rec audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := wireRecord{
		Seq:         rec.Seq,
		EventID:     rec.EventID.String(),
		TimestampMS: rec.TimestampMS,
		Src:         rec.Src,
		Dst:         rec.Dst,
		Layer:       rec.Layer.Tag(),
	}
	if err := s.enc.Encode(w); err != nil {
		return fmt.Errorf("filesink: write record %d: %w", rec.Seq, err)
	}
	return nil
}

// Close closes the underlying file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
