package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "geofoto"

// Metrics holds the Prometheus counters for the form pipeline.
type Metrics struct {
	LocationResolutions *prometheus.CounterVec // labels: source={image,ip,geocode,manual,none}
	FindingsSaved       *prometheus.CounterVec // labels: outcome={ok,invalid,error}
	GateDenials         prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		LocationResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_resolutions_total",
			Help:      "Location resolutions by winning source.",
		}, []string{"source"}),
		FindingsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_saved_total",
			Help:      "Save attempts by outcome.",
		}, []string{"outcome"}),
		GateDenials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_denials_total",
			Help:      "Requests refused by the access gate.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.LocationResolutions, m.FindingsSaved, m.GateDenials)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many as they like.
func NewMetricsForTesting() *Metrics { return newMetrics() }

func (m *Metrics) ObserveResolution(source string) {
	m.LocationResolutions.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveSave(outcome string) {
	m.FindingsSaved.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveDenial() { m.GateDenials.Inc() }
