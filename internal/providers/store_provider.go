package providers

import (
	"unsafe"

	"github.com/coocood/freecache"

	"babydbg/internal/structures"
)

const defaultStoreSizeMB = 8

// StoreProviderInterface is the versioned offline store: a flat key-value
// table of serialized responses. Concurrent reads are fine; concurrent
// writes to the same key are last-writer-wins, which is acceptable because
// writes are idempotent copies of a successful response.
type StoreProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string)
	Keys() []string
	Snapshot() map[string][]byte
	Restore(entries map[string][]byte)
	EntryCount() int
}

type StoreProvider struct {
	cache *freecache.Cache
}

func NewStoreProvider(conf *structures.Config, logger Logger) *StoreProvider {
	size := conf.Offline.Size
	if size <= 0 {
		size = defaultStoreSizeMB
	}
	logger.Infof(TypeApp, "Offline store initialized: %dMB, version %s", size, conf.Offline.Version)
	return &StoreProvider{cache: freecache.NewCache(size * 1024 * 1024)}
}

// unsafeStringToBytes converts string to []byte without allocation.
// Safe when the result is only read (not modified), which is the case
// for freecache — it copies keys internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (s *StoreProvider) Get(key string) ([]byte, bool) {
	val, err := s.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (s *StoreProvider) Set(key string, value []byte) error {
	return s.cache.Set(unsafeStringToBytes(key), value, 0)
}

func (s *StoreProvider) Delete(key string) {
	s.cache.Del(unsafeStringToBytes(key))
}

func (s *StoreProvider) Keys() []string {
	keys := make([]string, 0, s.cache.EntryCount())
	it := s.cache.NewIterator()
	for entry := it.Next(); entry != nil; entry = it.Next() {
		keys = append(keys, string(entry.Key))
	}
	return keys
}

func (s *StoreProvider) Snapshot() map[string][]byte {
	entries := make(map[string][]byte, s.cache.EntryCount())
	it := s.cache.NewIterator()
	for entry := it.Next(); entry != nil; entry = it.Next() {
		entries[string(entry.Key)] = append([]byte(nil), entry.Value...)
	}
	return entries
}

func (s *StoreProvider) Restore(entries map[string][]byte) {
	for key, value := range entries {
		_ = s.cache.Set(unsafeStringToBytes(key), value, 0)
	}
}

func (s *StoreProvider) EntryCount() int {
	return int(s.cache.EntryCount())
}
