// Package hexvault is the top-level coordinator: it owns the master
// key, issues cells, and exposes the seal/unseal/traverse/audit_log
// operations described by the layer, kdf, stack, cell and audit
// packages it composes. Isolation between cells is structural (it
// falls out of key derivation, not a runtime ACL check), so Vault
// itself holds no permission table.
package hexvault

import (
	"strconv"
	"sync"
	"time"

	"github.com/Z3DDIEZ/HexVault/audit"
	"github.com/Z3DDIEZ/HexVault/cell"
	"github.com/Z3DDIEZ/HexVault/errs"
	"github.com/Z3DDIEZ/HexVault/internal/logger"
	"github.com/Z3DDIEZ/HexVault/internal/metrics"
	"github.com/Z3DDIEZ/HexVault/layer"
	"github.com/Z3DDIEZ/HexVault/stack"
)

// MasterKeySize is the required length of the master key passed to NewVault.
const MasterKeySize = 32

// Vault holds the master key, the set of cells (insertion order
// preserved), the audit log, and the set of registered forward sinks.
// A Vault requires exclusive access for any mutating operation; it
// performs no internal locking of its own call sequence beyond
// protecting the cells map from concurrent CreateCell/Close races.
type Vault struct {
	mu       sync.Mutex
	master   [MasterKeySize]byte
	released bool

	cells     map[string]*cell.Cell
	cellOrder []string
	auditLog  *audit.Log
	logger    logger.Logger
}

// NewVault constructs a Vault from a 32-byte master key, failing with
// InvalidMasterKeyLength if master is not exactly MasterKeySize bytes.
// The key is copied; callers remain responsible for zeroising their
// own copy.
func NewVault(master []byte, opts ...VaultOption) (*Vault, error) {
	const op = "Vault.New"
	if len(master) != MasterKeySize {
		return nil, errs.New(errs.InvalidMasterKeyLength, op, "master key must be exactly 32 bytes")
	}

	v := &Vault{
		cells:    make(map[string]*cell.Cell),
		auditLog: audit.NewLog(nil),
		logger:   logger.NoopLogger{},
	}
	copy(v.master[:], master)

	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// CreateCell issues a new, empty cell under id, failing with
// DuplicateCell if id is already registered.
func (v *Vault) CreateCell(id string) (*cell.Cell, error) {
	const op = "Vault.CreateCell"
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.cells[id]; exists {
		err := errs.New(errs.DuplicateCell, op, id)
		v.logFailure(op, err)
		return nil, err
	}

	c, err := cell.New(id)
	if err != nil {
		v.logFailure(op, err)
		return nil, err
	}

	v.cells[id] = c
	v.cellOrder = append(v.cellOrder, id)
	v.logger.Info("cell created", logger.String("cell_id", id))
	return c, nil
}

// Cell returns the cell registered under id, or PayloadNotFound-style
// lookup failure if none exists.
func (v *Vault) Cell(id string) (*cell.Cell, error) {
	const op = "Vault.Cell"
	v.mu.Lock()
	defer v.mu.Unlock()
	c, exists := v.cells[id]
	if !exists {
		return nil, errs.New(errs.PayloadNotFound, op, id)
	}
	return c, nil
}

// Cells returns every registered cell id in the order it was created.
func (v *Vault) Cells() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.cellOrder))
	copy(out, v.cellOrder)
	return out
}

// Seal encrypts plaintext through layers 0..=targetLayer and inserts
// the result into c under name, failing with DuplicatePayload if name
// already exists in c.
func (v *Vault) Seal(c *cell.Cell, name string, plaintext []byte, targetLayer layer.Layer, ctx layer.Context) (err error) {
	const op = "Vault.Seal"
	start := time.Now()
	defer func() { v.observe(op, err, start) }()

	sealed, err := stack.Seal(v.masterBytes(), c.ID(), plaintext, targetLayer, ctx)
	if err != nil {
		v.logFailure(op, err)
		return err
	}

	if err = c.Insert(name, cell.SealedPayload(sealed)); err != nil {
		v.logFailure(op, err)
		return err
	}

	v.logger.Info("payload sealed",
		logger.String("cell_id", c.ID()),
		logger.String("name", name),
		logger.String("layer", targetLayer.Tag()),
	)
	return nil
}

// Unseal removes the payload stored under name in c and decrypts it
// from targetLayer down to layer 0. Unlike Traverse, the plaintext is
// returned to the caller.
func (v *Vault) Unseal(c *cell.Cell, name string, targetLayer layer.Layer, ctx layer.Context) (plaintext []byte, err error) {
	const op = "Vault.Unseal"
	start := time.Now()
	defer func() { v.observe(op, err, start) }()

	sealed, err := c.Remove(name)
	if err != nil {
		v.logFailure(op, err)
		return nil, err
	}

	plaintext, err = stack.Peel(v.masterBytes(), c.ID(), sealed, targetLayer, ctx)
	if err != nil {
		v.logFailure(op, err)
		return nil, err
	}

	v.logger.Info("payload unsealed",
		logger.String("cell_id", c.ID()),
		logger.String("name", name),
		logger.String("layer", targetLayer.Tag()),
	)
	return plaintext, nil
}

// Traverse moves the payload stored under name in src to dst: it
// peels under src's context, re-wraps under dst's context at the same
// layer, and appends one audit record on success. Source and
// destination must be distinct cells; self-traversal is rejected with
// SelfTraversal. The intermediate plaintext is confined to this call:
// it is zeroised on every exit path and never returned or logged.
func (v *Vault) Traverse(src, dst *cell.Cell, name string, lyr layer.Layer, srcCtx, dstCtx layer.Context) (rec audit.Record, err error) {
	const op = "Vault.Traverse"
	start := time.Now()
	defer func() { v.observe(op, err, start) }()

	if src.ID() == dst.ID() {
		err = errs.New(errs.SelfTraversal, op, "source and destination cell are the same")
		v.logFailure(op, err)
		return audit.Record{}, err
	}

	sealed, err := src.Get(name)
	if err != nil {
		v.logFailure(op, err)
		return audit.Record{}, err
	}

	plaintext, err := stack.Peel(v.masterBytes(), src.ID(), sealed, lyr, srcCtx)
	if err != nil {
		v.logFailure(op, err)
		return audit.Record{}, err
	}
	defer zero(plaintext)

	rewrapped, err := stack.Seal(v.masterBytes(), dst.ID(), plaintext, lyr, dstCtx)
	if err != nil {
		v.logFailure(op, err)
		return audit.Record{}, err
	}

	if err = dst.Insert(name, cell.SealedPayload(rewrapped)); err != nil {
		zero(rewrapped)
		v.logFailure(op, err)
		return audit.Record{}, err
	}

	rec, failures := v.auditLog.Append(src.ID(), dst.ID(), lyr)
	metrics.AuditRecords.Inc()
	for _, f := range failures {
		metrics.SinkFailures.WithLabelValues(strconv.Itoa(f.SinkIndex)).Inc()
		v.logger.Warn("audit sink write failed",
			logger.Int("sink_index", f.SinkIndex),
			logger.Error(f.Err),
		)
	}

	v.logger.Info("traversal recorded",
		logger.String("src", src.ID()),
		logger.String("dst", dst.ID()),
		logger.String("layer", lyr.Tag()),
		logger.Int("seq", int(rec.Seq)),
	)
	return rec, nil
}

// AuditLog returns the Vault's append-only audit log.
func (v *Vault) AuditLog() *audit.Log { return v.auditLog }

// AddForwardSink registers an additional audit sink; it receives only
// records appended after registration.
func (v *Vault) AddForwardSink(s audit.Sink) {
	v.auditLog.AddForwardSink(s)
}

// Close zeroises the master key. The Vault must not be used afterward.
func (v *Vault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.released {
		return nil
	}
	zero(v.master[:])
	v.released = true
	return nil
}

func (v *Vault) masterBytes() []byte {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.master[:]
}

func (v *Vault) logFailure(op string, err error) {
	kind, _ := errs.KindOf(err)
	v.logger.Warn(op+" failed", logger.String("kind", kind.String()), logger.Error(err))
}

func (v *Vault) observe(op string, err error, start time.Time) {
	result := "ok"
	if err != nil {
		result = "error"
		if kind, ok := errs.KindOf(err); ok {
			metrics.Errors.WithLabelValues(op, kind.String()).Inc()
		}
	}
	metrics.Operations.WithLabelValues(op, result).Inc()
	metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
