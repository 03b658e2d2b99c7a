package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"babydbg/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncStoreHits()
	IncStoreMisses()
	IncStaleServed()
	IncSaveFailures()
	ObserveSnapshotDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	storeHits        prometheus.Counter
	storeMisses      prometheus.Counter
	staleServed      prometheus.Counter
	saveFailures     prometheus.Counter
	snapshotDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStoreHits() {
	m.storeHits.Inc()
}

func (m *MetricsProvider) IncStoreMisses() {
	m.storeMisses.Inc()
}

func (m *MetricsProvider) IncStaleServed() {
	m.staleServed.Inc()
}

func (m *MetricsProvider) IncSaveFailures() {
	m.saveFailures.Inc()
}

func (m *MetricsProvider) ObserveSnapshotDuration(duration time.Duration) {
	m.snapshotDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, store *StoreProvider) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "babydbg_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "babydbg_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		storeHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "babydbg_offline_store_hits_total",
			Help: "Total number of offline store hits on network failure",
		}),

		storeMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "babydbg_offline_store_misses_total",
			Help: "Total number of offline store misses on network failure",
		}),

		staleServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "babydbg_stale_day_records_served_total",
			Help: "Total number of day records served with the cached annotation",
		}),

		saveFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "babydbg_nap_save_failures_total",
			Help: "Total number of failed nap segment saves",
		}),

		snapshotDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "babydbg_snapshot_duration_seconds",
			Help:    "Duration of offline store snapshot operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "babydbg_offline_store_entries",
		Help: "Current number of entries in the offline store",
	}, func() float64 {
		return float64(store.EntryCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncStoreHits()                                    {}
func (n *noopMetrics) IncStoreMisses()                                  {}
func (n *noopMetrics) IncStaleServed()                                  {}
func (n *noopMetrics) IncSaveFailures()                                 {}
func (n *noopMetrics) ObserveSnapshotDuration(_ time.Duration)          {}
