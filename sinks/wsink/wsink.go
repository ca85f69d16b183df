// Package wsink implements audit.Sink by forwarding each record as a
// JSON message over a WebSocket connection, reconnecting lazily on
// write failure. Concurrent writers that observe the same broken
// connection coalesce onto a single reconnect attempt via singleflight
// rather than each dialing independently.
package wsink

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/singleflight"

	"github.com/Z3DDIEZ/HexVault/audit"
)

// Sink forwards audit records to a WebSocket endpoint.
type Sink struct {
	url          string
	dialTimeout  time.Duration
	writeTimeout time.Duration

	mu   sync.Mutex
	conn *websocket.Conn

	group singleflight.Group
}

// wireRecord mirrors filesink's on-disk shape for the record sent
// over the wire.
type wireRecord struct {
	Seq         uint64 `json:"seq"`
	EventID     string `json:"event_id"`
	TimestampMS int64  `json:"ts_ms"`
	Src         string `json:"src"`
	Dst         string `json:"dst"`
	Layer       string `json:"layer"`
}

// New creates a Sink targeting url. The connection is established
// lazily on the first Write.
func New(url string) *Sink {
	return &Sink{
		url:          url,
		dialTimeout:  10 * time.Second,
		writeTimeout: 10 * time.Second,
	}
}

// Write implements audit.Sink, reconnecting once on failure before
// giving up.
func (s *Sink) Write(rec audit.Record) error {
	msg := wireRecord{
		Seq:         rec.Seq,
		EventID:     rec.EventID.String(),
		TimestampMS: rec.TimestampMS,
		Src:         rec.Src,
		Dst:         rec.Dst,
		Layer:       rec.Layer.Tag(),
	}

	if err := s.writeJSON(msg); err != nil {
		if _, err := s.reconnect(); err != nil {
			return fmt.Errorf("wsink: reconnect after write failure: %w", err)
		}
		if err := s.writeJSON(msg); err != nil {
			return fmt.Errorf("wsink: write record %d after reconnect: %w", rec.Seq, err)
		}
	}
	return nil
}

func (s *Sink) writeJSON(msg wireRecord) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		if _, err := s.reconnect(); err != nil {
			return err
		}
		s.mu.Lock()
		conn = s.conn
		s.mu.Unlock()
	}

	if err := conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

// reconnect dials a fresh connection, coalescing concurrent callers
// onto a single dial via singleflight so a burst of failing writers
// doesn't open one connection per writer.
func (s *Sink) reconnect() (*websocket.Conn, error) {
	v, err, _ := s.group.Do("dial", func() (interface{}, error) {
		dialer := &websocket.Dialer{HandshakeTimeout: s.dialTimeout}
		conn, _, err := dialer.Dial(s.url, nil)
		if err != nil {
			return nil, fmt.Errorf("wsink: dial %s: %w", s.url, err)
		}

		s.mu.Lock()
		if s.conn != nil {
			s.conn.Close()
		}
		s.conn = conn
		s.mu.Unlock()

		return conn, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*websocket.Conn), nil
}

// Close closes the underlying connection, if any.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
