package out

import (
	"context"
	"sort"
	"sync"

	storageout "vclock/internal/modules/storage/port/out"
)

// MemoryKV keeps values in process memory. A positive quota caps the sum
// of key and value lengths, like a browser storage quota.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
	quota  int
}

func NewMemoryKV(quota int) *MemoryKV {
	return &MemoryKV{values: map[string][]byte{}, quota: quota}
}

var _ storageout.KV = (*MemoryKV)(nil)

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		used := len(key) + len(value)
		for k, v := range m.values {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used > m.quota {
			return storageout.ErrQuotaExceeded
		}
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryKV) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryKV) Close() error { return nil }
