package rowstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process row store. It backs tests and dry runs; the
// engines only ever see the Store interface.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][][]string)}
}

// Seed replaces a table without going through the interface. Test helper.
func (m *MemoryStore) Seed(table string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = copyRows(rows)
}

func (m *MemoryStore) ReadAll(_ context.Context, table string) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.tables[table]
	if !ok {
		return nil, nil
	}
	return copyRows(rows), nil
}

func (m *MemoryStore) WriteRange(_ context.Context, table string, start int, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := m.tables[table]
	for i, row := range rows {
		idx := start + i
		for len(existing) <= idx {
			existing = append(existing, nil)
		}
		existing[idx] = copyRow(row)
	}
	m.tables[table] = existing
	return nil
}

func (m *MemoryStore) Append(_ context.Context, table string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], copyRows(rows)...)
	return nil
}

func (m *MemoryStore) Replace(_ context.Context, table string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = copyRows(rows)
	return nil
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = copyRow(r)
	}
	return out
}

func copyRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}
