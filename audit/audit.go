// Package audit implements the append-only log of edge traversals and
// its fan-out to external sinks. The log itself is the only part of
// HexVault permitted to hand out iterators over its own records,
// never mutable references.
package audit

import (
	"iter"
	"sync"

	"github.com/google/uuid"

	"github.com/Z3DDIEZ/HexVault/layer"
)

// Record is an immutable account of a single successful traversal.
type Record struct {
	Seq       uint64
	EventID   uuid.UUID
	TimestampMS int64
	Src       string
	Dst       string
	Layer     layer.Layer
}

// Sink is the external collaborator contract: something that can
// durably record or forward an audit record. Concrete backends (file,
// database, network) are deliberately outside this package; see
// sinks/ for reference implementations.
type Sink interface {
	Write(Record) error
}

// SinkFailure pairs a sink's write error with which registered sink
// (by registration index) produced it, so a caller can log or count it
// without the traversal result depending on the outcome.
type SinkFailure struct {
	SinkIndex int
	Err       error
}

// Log is the append-only, in-memory audit trail. A Log is owned by
// exactly one Vault; its zero value behaves like NewLog(nil).
type Log struct {
	mu      sync.Mutex
	records []Record
	sinks   []Sink
	nextSeq uint64
	nowMS   func() int64
}

// NewLog constructs an empty audit log. nowMS supplies the millisecond
// UTC timestamp for each record; pass nil to use wall-clock time.
func NewLog(nowMS func() int64) *Log {
	return &Log{nowMS: nowMS}
}

// Append assigns a monotonically increasing sequence number, appends
// a new record to the log, then fans out to every registered sink in
// registration order. Sink failures are collected and returned
// alongside the record but never unwind the append itself: a sink's
// own errors are out-of-band from the audit log's append-only
// guarantee.
func (l *Log) Append(src, dst string, lyr layer.Layer) (Record, []SinkFailure) {
	l.mu.Lock()
	rec := Record{
		Seq:         l.nextSeq,
		EventID:     uuid.New(),
		TimestampMS: l.timestampMS(),
		Src:         src,
		Dst:         dst,
		Layer:       lyr,
	}
	l.nextSeq++
	l.records = append(l.records, rec)
	sinks := append([]Sink(nil), l.sinks...)
	l.mu.Unlock()

	var failures []SinkFailure
	for i, s := range sinks {
		if err := s.Write(rec); err != nil {
			failures = append(failures, SinkFailure{SinkIndex: i, Err: err})
		}
	}
	return rec, failures
}

func (l *Log) timestampMS() int64 {
	if l.nowMS != nil {
		return l.nowMS()
	}
	return wallClockMS()
}

// Len returns the number of records appended so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Iter returns a lazy, finite sequence over the log's records in
// insertion order. The sequence reflects the log at the moment Iter is
// called; records appended afterward are not visible to an
// in-progress range.
func (l *Log) Iter() iter.Seq[Record] {
	l.mu.Lock()
	snapshot := append([]Record(nil), l.records...)
	l.mu.Unlock()

	return func(yield func(Record) bool) {
		for _, r := range snapshot {
			if !yield(r) {
				return
			}
		}
	}
}

// AddForwardSink registers an additional sink. It does not replay
// historical records, only traversals appended after registration
// reach it.
func (l *Log) AddForwardSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, s)
}
