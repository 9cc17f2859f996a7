package session

import (
	"encoding/json"
	"os"
	"sync"
)

// Storage is the durable key-value store a Client persists its session into.
// Implementations must be safe for use from a single Client; the Client
// serializes its own access.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string)
}

// MemoryStorage is an in-memory Storage, mainly for tests.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Len reports the number of stored keys.
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// FileStorage persists keys as a JSON object in a single file, surviving
// process restarts the way browser-local storage survives page reloads.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data := f.load()
	v, ok := data[key]
	return v, ok
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data := f.load()
	data[key] = value
	return f.save(data)
}

func (f *FileStorage) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data := f.load()
	if _, ok := data[key]; !ok {
		return
	}
	delete(data, key)
	_ = f.save(data)
}

// load reads the backing file. A missing or corrupt file yields an empty map;
// the next Set rewrites it.
func (f *FileStorage) load() map[string]string {
	data := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return data
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return make(map[string]string)
	}
	return data
}

func (f *FileStorage) save(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}
