package offline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Response sources recorded per request.
const (
	SourceNetwork     = "network"
	SourceCache       = "cache"
	SourceOfflinePage = "offline_page"
	SourceUnavailable = "unavailable"
	SourceError       = "error"
	SourceBypass      = "bypass"
)

type Metrics interface {
	IncResponses(kind Kind, source string)
	IncRefreshes(ok bool)
	IncCacheWrites()
}

type promMetrics struct {
	responses   *prometheus.CounterVec
	refreshes   *prometheus.CounterVec
	cacheWrites prometheus.Counter
}

// NewMetrics registers the cache counters on reg. A nil reg disables them.
func NewMetrics(reg prometheus.Registerer) Metrics {
	if reg == nil {
		return noopMetrics{}
	}
	factory := promauto.With(reg)
	return &promMetrics{
		responses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gymbro_offline_responses_total",
			Help: "Responses served by the offline cache by request kind and source",
		}, []string{"kind", "source"}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gymbro_offline_background_refreshes_total",
			Help: "Background refreshes of cached static assets",
		}, []string{"result"}),
		cacheWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "gymbro_offline_cache_writes_total",
			Help: "Responses written to the offline cache",
		}),
	}
}

func (m *promMetrics) IncResponses(kind Kind, source string) {
	m.responses.WithLabelValues(kind.String(), source).Inc()
}

func (m *promMetrics) IncRefreshes(ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.refreshes.WithLabelValues(result).Inc()
}

func (m *promMetrics) IncCacheWrites() {
	m.cacheWrites.Inc()
}

type noopMetrics struct{}

func (noopMetrics) IncResponses(_ Kind, _ string) {}
func (noopMetrics) IncRefreshes(_ bool)           {}
func (noopMetrics) IncCacheWrites()               {}
