package providers

// MetricsStoreProvider wraps a StoreProvider and increments hit/miss
// counters on every Get call.
type MetricsStoreProvider struct {
	inner   *StoreProvider
	metrics MetricsProviderInterface
}

func (s *MetricsStoreProvider) Get(key string) ([]byte, bool) {
	val, ok := s.inner.Get(key)
	if ok {
		s.metrics.IncStoreHits()
	} else {
		s.metrics.IncStoreMisses()
	}
	return val, ok
}

func (s *MetricsStoreProvider) Set(key string, value []byte) error {
	return s.inner.Set(key, value)
}

func (s *MetricsStoreProvider) Delete(key string) {
	s.inner.Delete(key)
}

func (s *MetricsStoreProvider) Keys() []string {
	return s.inner.Keys()
}

func (s *MetricsStoreProvider) Snapshot() map[string][]byte {
	return s.inner.Snapshot()
}

func (s *MetricsStoreProvider) Restore(entries map[string][]byte) {
	s.inner.Restore(entries)
}

func (s *MetricsStoreProvider) EntryCount() int {
	return s.inner.EntryCount()
}

// NewInstrumentedStoreProvider wraps the offline store with hit/miss
// instrumentation. Lookups only happen on the network-failure path, so
// these counters measure offline fallbacks, not ordinary traffic.
func NewInstrumentedStoreProvider(store *StoreProvider, metrics MetricsProviderInterface) StoreProviderInterface {
	return &MetricsStoreProvider{
		inner:   store,
		metrics: metrics,
	}
}
