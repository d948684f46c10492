package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/geosiss/borehole/geoerr"
)

// Registry deduplicates metadata records by identity. Implementations are
// explicitly constructed and passed to the code that needs them; there is no
// process-wide default.
//
// The dedup contract is shared by every implementation: Register returns the
// canonical record for the ident, which is the already-stored record when
// the ident is taken and the argument itself otherwise.
type Registry interface {
	// Register stores the record unless its ident is already present, and
	// returns the canonical record for the ident.
	Register(ctx context.Context, m *Metadata) (*Metadata, error)

	// Lookup returns the record registered under ident. A missing record
	// is a geoerr.KindNotFound error wrapping geoerr.ErrRecordNotFound.
	Lookup(ctx context.Context, ident string) (*Metadata, error)

	// List returns every record of the given type, or every record when
	// mdType is empty. Order is unspecified.
	List(ctx context.Context, mdType string) ([]*Metadata, error)

	// Deregister removes the record registered under ident. Removing an
	// absent ident is a no-op.
	Deregister(ctx context.Context, ident string) error

	// Len returns the number of registered records.
	Len(ctx context.Context) (int, error)

	// Close releases any resources held by the registry.
	Close() error
}

// record is the wire form shared by the redis and etcd registries. Backing
// document trees do not cross process boundaries; records read back from a
// shared registry carry idents, types and attributes only.
type record struct {
	Ident string         `json:"ident"`
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

func encodeRecord(m *Metadata) ([]byte, error) {
	return json.Marshal(record{Ident: m.Ident, Type: m.Type, Attrs: m.Attrs})
}

func decodeRecord(data []byte) (*Metadata, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode metadata record: %w", err)
	}
	return &Metadata{Ident: rec.Ident, Type: rec.Type, Attrs: rec.Attrs}, nil
}

// MemoryRegistry is an in-process Registry backed by a mutex-guarded map.
// It is the explicit, scoped replacement for a global identity map and the
// default backend for single-process analysis runs.
type MemoryRegistry struct {
	mu      sync.RWMutex
	records map[string]*Metadata
}

// NewMemoryRegistry creates an empty in-process registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{records: make(map[string]*Metadata)}
}

// Register stores the record unless its ident is taken, returning the
// canonical record either way.
func (r *MemoryRegistry) Register(_ context.Context, m *Metadata) (*Metadata, error) {
	if m == nil {
		return nil, geoerr.NewValidationError("MemoryRegistry.Register",
			fmt.Errorf("record must not be nil"))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.records[m.Ident]; ok {
		return existing, nil
	}
	r.records[m.Ident] = m
	return m, nil
}

// Lookup returns the record registered under ident.
func (r *MemoryRegistry) Lookup(_ context.Context, ident string) (*Metadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.records[ident]
	if !ok {
		return nil, geoerr.NewNotFoundError("MemoryRegistry.Lookup",
			fmt.Errorf("%w: %s", geoerr.ErrRecordNotFound, ident))
	}
	return m, nil
}

// List returns every record of the given type, or all records when mdType
// is empty.
func (r *MemoryRegistry) List(_ context.Context, mdType string) ([]*Metadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*Metadata, 0, len(r.records))
	for _, m := range r.records {
		if mdType == "" || m.Type == mdType {
			records = append(records, m)
		}
	}
	return records, nil
}

// Deregister removes the record registered under ident.
func (r *MemoryRegistry) Deregister(_ context.Context, ident string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, ident)
	return nil
}

// Len returns the number of registered records.
func (r *MemoryRegistry) Len(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

// Close is a no-op for the in-process registry.
func (r *MemoryRegistry) Close() error { return nil }
