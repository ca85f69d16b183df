// Package pgsink implements audit.Sink against PostgreSQL, upserting
// on event_id so a sink retry after a partial failure never creates a
// duplicate row.
package pgsink

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Z3DDIEZ/HexVault/audit"
)

// Sink writes audit.Record values to a Postgres table via a
// connection pool. The table must already exist; see Schema for the
// expected DDL.
type Sink struct {
	pool  *pgxpool.Pool
	table string
}

// Schema is the DDL this sink expects; callers are responsible for
// running migrations themselves.
const Schema = `
CREATE TABLE IF NOT EXISTS %s (
	event_id   UUID PRIMARY KEY,
	seq        BIGINT NOT NULL,
	ts_ms      BIGINT NOT NULL,
	src        TEXT NOT NULL,
	dst        TEXT NOT NULL,
	layer      TEXT NOT NULL
);
`

// Open connects to Postgres using dsn and returns a Sink that writes
// into table.
func Open(ctx context.Context, dsn, table string) (*Sink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgsink: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgsink: ping: %w", err)
	}
	return &Sink{pool: pool, table: table}, nil
}

// Write implements audit.Sink. It issues its own bounded-lifetime
// context since audit.Sink.Write carries no context parameter.
func (s *Sink) Write(rec audit.Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (event_id, seq, ts_ms, src, dst, layer)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
	`, s.table)

	_, err := s.pool.Exec(ctx, query,
		rec.EventID, rec.Seq, rec.TimestampMS, rec.Src, rec.Dst, rec.Layer.Tag(),
	)
	if err != nil {
		return fmt.Errorf("pgsink: insert record %d: %w", rec.Seq, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Sink) Close() error {
	s.pool.Close()
	return nil
}
