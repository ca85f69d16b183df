// Package cell implements the isolated encryption domain: a typed
// container that ties a set of sealed payloads to an immutable id. It
// performs no cryptography; keys are derived on demand by the caller
// for every operation, never stored here.
package cell

import (
	"sync"

	"github.com/Z3DDIEZ/HexVault/errs"
	"github.com/Z3DDIEZ/HexVault/ident"
)

// SealedPayload is the stored unit inside a cell: bytes produced by
// applying layer 0..T encryption in order. See package stack for how
// it is produced and consumed.
type SealedPayload []byte

// Cell holds an immutable id and an ordered mapping from payload name
// to its outermost ciphertext.
type Cell struct {
	id       string
	mu       sync.RWMutex
	payloads map[string]SealedPayload
	order    []string
}

// New constructs a cell for id, validating it per the shared
// identifier rule (non-empty, no ':' or '|').
func New(id string) (*Cell, error) {
	if err := ident.Validate("cell.New", id); err != nil {
		return nil, err
	}
	return &Cell{
		id:       id,
		payloads: make(map[string]SealedPayload),
	}, nil
}

// ID returns the cell's immutable identifier.
func (c *Cell) ID() string { return c.id }

// Insert adds sealed under name, failing with DuplicatePayload if the
// name is already present in this cell.
func (c *Cell) Insert(name string, sealed SealedPayload) error {
	if err := ident.Validate("Cell.Insert", name); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.payloads[name]; exists {
		return errs.New(errs.DuplicatePayload, "Cell.Insert", name)
	}
	c.payloads[name] = sealed
	c.order = append(c.order, name)
	return nil
}

// Get returns the sealed payload stored under name.
func (c *Cell) Get(name string) (SealedPayload, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sealed, exists := c.payloads[name]
	if !exists {
		return nil, errs.New(errs.PayloadNotFound, "Cell.Get", name)
	}
	return sealed, nil
}

// Remove deletes and returns the sealed payload stored under name.
func (c *Cell) Remove(name string) (SealedPayload, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sealed, exists := c.payloads[name]
	if !exists {
		return nil, errs.New(errs.PayloadNotFound, "Cell.Remove", name)
	}
	delete(c.payloads, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return sealed, nil
}

// Contains reports whether name is present in the cell.
func (c *Cell) Contains(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.payloads[name]
	return exists
}

// Names returns the payload names in insertion order.
func (c *Cell) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
