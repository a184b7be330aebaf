// Package testutils provides shared test doubles for the storage boundary.
package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmvaldez/flashdeck-api/internal/store"
)

// MemoryObjectStore is an in-memory store.ObjectStore for tests. It is safe
// for concurrent use and records no ordering guarantees on listings, matching
// the weakest backend the locator must tolerate.
type MemoryObjectStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject

	// clock advances on every Put so Updated timestamps are strictly ordered
	// unless a test seeds explicit times.
	clock time.Time
}

type memoryObject struct {
	data        []byte
	contentType string
	updated     time.Time
}

// NewMemoryObjectStore returns an empty store.
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{
		objects: make(map[string]memoryObject),
		clock:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Seed stores an object with an explicit modification time.
func (m *MemoryObjectStore) Seed(key string, data []byte, contentType string, updated time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: data, contentType: contentType, updated: updated}
}

// Keys returns all stored keys, unordered.
func (m *MemoryObjectStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

// ContentType returns the stored MIME type for key, or "" when absent.
func (m *MemoryObjectStore) ContentType(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[key].contentType
}

func (m *MemoryObjectStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MemoryObjectStore) ListByPrefix(_ context.Context, prefix string) ([]store.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.ObjectInfo
	for k, obj := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, store.ObjectInfo{Key: k, Updated: obj.updated})
		}
	}
	return out, nil
}

func (m *MemoryObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrObjectNotFound, key)
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, nil
}

func (m *MemoryObjectStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = memoryObject{data: stored, contentType: contentType, updated: m.clock}
	return nil
}

func (m *MemoryObjectStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("%w: %s", store.ErrObjectNotFound, key)
	}
	delete(m.objects, key)
	return nil
}

func (m *MemoryObjectStore) PublicURL(key string) string {
	return "https://storage.example.com/test-assets/" + strings.TrimLeft(key, "/")
}
