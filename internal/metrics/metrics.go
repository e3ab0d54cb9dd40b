// Package metrics holds the Prometheus instruments of the dipr server and publisher.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jddeal/go-dipr/fetch"
)

const namespace = "dipr"

// Metrics holds the counters and histograms for fetching, decoding and publishing scans.
type Metrics struct {
	Fetches        *prometheus.CounterVec   // labels: source, outcome={success,error}
	FetchDuration  *prometheus.HistogramVec // labels: source
	Decodes        *prometheus.CounterVec   // labels: outcome={success,error}
	DecodeDuration prometheus.Histogram
	BinsProjected  prometheus.Counter
	Published      *prometheus.CounterVec // labels: outcome={success,error}
	LastCapture    *prometheus.GaugeVec   // labels: station; unix seconds
	WatchClients   prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "DPR file downloads by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of DPR file downloads.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		Decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decodes_total",
			Help:      "DPR decodes by outcome.",
		}, []string{"outcome"}),
		DecodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decode_duration_seconds",
			Help:      "Duration of decoding one DPR file.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		BinsProjected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bins_projected_total",
			Help:      "Bins converted into polygons.",
		}),
		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "published_total",
			Help:      "Scans written to Kafka by outcome.",
		}, []string{"outcome"}),
		LastCapture: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_capture_timestamp_seconds",
			Help:      "Capture time of the newest scan seen per station.",
		}, []string{"station"}),
		WatchClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "watch_clients",
			Help:      "Open websocket watch connections.",
		}),
	}
}

// New creates all metrics and registers them with reg. A nil reg means the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := newMetrics()
	reg.MustRegister(
		m.Fetches,
		m.FetchDuration,
		m.Decodes,
		m.DecodeDuration,
		m.BinsProjected,
		m.Published,
		m.LastCapture,
		m.WatchClients,
	)
	return m
}

// NewForTesting creates Metrics on a fresh registry to avoid "already registered" panics when
// called from multiple tests.
func NewForTesting() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return New(reg), reg
}

// ObserveFetch records one download.
func (m *Metrics) ObserveFetch(source string, started time.Time, err error) {
	m.Fetches.WithLabelValues(source, outcome(err)).Inc()
	m.FetchDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

// Fetcher wraps f so every download is counted under source.
func (m *Metrics) Fetcher(source string, f fetch.Fetcher) fetch.Fetcher {
	return fetch.FetcherFunc(func(ctx context.Context, station string) ([]byte, error) {
		started := time.Now()
		data, err := f.Latest(ctx, station)
		m.ObserveFetch(source, started, err)
		return data, err
	})
}

// ObserveDecode records one decode.
func (m *Metrics) ObserveDecode(started time.Time, err error) {
	m.Decodes.WithLabelValues(outcome(err)).Inc()
	m.DecodeDuration.Observe(time.Since(started).Seconds())
}

// ObservePublish records one Kafka write.
func (m *Metrics) ObservePublish(err error) {
	m.Published.WithLabelValues(outcome(err)).Inc()
}

// ObserveCapture records the capture time of the newest scan of a station.
func (m *Metrics) ObserveCapture(station string, captured time.Time) {
	m.LastCapture.WithLabelValues(station).Set(float64(captured.Unix()))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
