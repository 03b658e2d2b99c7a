package testutil

import (
	"sync"
	"time"

	"babydbg/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockStore implements providers.StoreProviderInterface on a plain map.
type MockStore struct {
	mu      sync.Mutex
	Data    map[string][]byte
	SetErr  error
	SetKeys []string
}

func NewMockStore() *MockStore {
	return &MockStore{Data: make(map[string][]byte)}
}

func (m *MockStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	m.SetKeys = append(m.SetKeys, key)
	return nil
}

func (m *MockStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

func (m *MockStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.Data))
	for key := range m.Data {
		keys = append(keys, key)
	}
	return keys
}

func (m *MockStore) Snapshot() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make(map[string][]byte, len(m.Data))
	for key, value := range m.Data {
		entries[key] = append([]byte(nil), value...)
	}
	return entries
}

func (m *MockStore) Restore(entries map[string][]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range entries {
		m.Data[key] = value
	}
}

func (m *MockStore) EntryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Data)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu           sync.Mutex
	Requests     int
	StoreHits    int
	StoreMisses  int
	StaleServed  int
	SaveFailures int
	Snapshots    int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncStoreHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreHits++
}

func (m *MockMetrics) IncStoreMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreMisses++
}

func (m *MockMetrics) IncStaleServed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StaleServed++
}

func (m *MockMetrics) IncSaveFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveFailures++
}

func (m *MockMetrics) ObserveSnapshotDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshots++
}
