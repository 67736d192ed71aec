package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider backs Provider with real prometheus collectors
// registered against a caller-supplied *prometheus.Registry. Instruments
// are created on demand by name and reused for the same name, exactly like
// BasicProvider, but recorded values are exported for scraping instead of
// only held in memory.
type PrometheusProvider struct {
	registry   *prometheus.Registry
	namespace  string
	counters   map[string]*prometheus.CounterVec
	updowns    map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusProvider constructs a Provider that registers its
// instruments on registry. namespace is prefixed onto every instrument
// name (prometheus convention), with "." replaced by "_".
func NewPrometheusProvider(registry *prometheus.Registry, namespace string) *PrometheusProvider {
	return &PrometheusProvider{
		registry:   registry,
		namespace:  namespace,
		counters:   make(map[string]*prometheus.CounterVec),
		updowns:    make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func (p *PrometheusProvider) metricName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

func (p *PrometheusProvider) labelsFrom(cfg InstrumentConfig) ([]string, prometheus.Labels) {
	if len(cfg.Attributes) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(cfg.Attributes))
	values := make(prometheus.Labels, len(cfg.Attributes))
	for k, v := range cfg.Attributes {
		names = append(names, k)
		values[k] = v
	}
	return names, values
}

// Counter returns a monotonic counter instrument for the given name.
func (p *PrometheusProvider) Counter(name string, opts ...InstrumentOption) Counter {
	cfg := applyOptions(opts)
	key := name
	vec, ok := p.counters[key]
	if !ok {
		labelNames, _ := p.labelsFrom(cfg)
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Name:      p.metricName(name),
			Help:      cfg.Description,
		}, labelNames)
		p.registry.MustRegister(vec)
		p.counters[key] = vec
	}
	_, labels := p.labelsFrom(cfg)
	return &prometheusCounter{c: vec.With(labels)}
}

// UpDownCounter returns an up/down counter instrument for the given name.
func (p *PrometheusProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	cfg := applyOptions(opts)
	key := name
	vec, ok := p.updowns[key]
	if !ok {
		labelNames, _ := p.labelsFrom(cfg)
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Name:      p.metricName(name),
			Help:      cfg.Description,
		}, labelNames)
		p.registry.MustRegister(vec)
		p.updowns[key] = vec
	}
	_, labels := p.labelsFrom(cfg)
	return &prometheusUpDownCounter{g: vec.With(labels)}
}

// Histogram returns a histogram instrument for the given name.
func (p *PrometheusProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	cfg := applyOptions(opts)
	key := name
	vec, ok := p.histograms[key]
	if !ok {
		labelNames, _ := p.labelsFrom(cfg)
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Name:      p.metricName(name),
			Help:      cfg.Description,
		}, labelNames)
		p.registry.MustRegister(vec)
		p.histograms[key] = vec
	}
	_, labels := p.labelsFrom(cfg)
	return &prometheusHistogram{h: vec.With(labels)}
}

type prometheusCounter struct{ c prometheus.Counter }

func (c *prometheusCounter) Add(n int64) { c.c.Add(float64(n)) }

type prometheusUpDownCounter struct{ g prometheus.Gauge }

func (u *prometheusUpDownCounter) Add(n int64) { u.g.Add(float64(n)) }

type prometheusHistogram struct{ h prometheus.Observer }

func (h *prometheusHistogram) Record(v float64) { h.h.Observe(v) }
