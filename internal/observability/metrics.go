package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// IndexCollector bundles Prometheus metrics for tessellation builds and
// queries. It satisfies the sphere package's Observer interface, so a single
// collector can be handed to every tessellation a process constructs.
type IndexCollector struct {
	gatherer prometheus.Gatherer

	BuildDuration prometheus.Histogram
	BuildDepth    prometheus.Gauge
	Nodes         prometheus.Gauge

	Locates        *prometheus.CounterVec
	LocateDuration prometheus.Histogram

	Coverings      *prometheus.CounterVec
	CoveringLeaves *prometheus.HistogramVec
}

// NewIndexCollector registers tessellation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewIndexCollector(reg prometheus.Registerer) (*IndexCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	buildDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tessellation_build_duration_seconds",
		Help:    "Wall time spent materializing the tessellation arena.",
		Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 2, 10, 30},
	}), "tessellation_build_duration_seconds")
	if err != nil {
		return nil, err
	}
	buildDepth, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tessellation_depth",
		Help: "Subdivision depth of the most recently built tessellation.",
	}), "tessellation_depth")
	if err != nil {
		return nil, err
	}
	nodes, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tessellation_nodes",
		Help: "Node count of the most recently built tessellation.",
	}), "tessellation_nodes")
	if err != nil {
		return nil, err
	}

	locates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tessellation_locate_total",
		Help: "Total point-location queries, labeled by result.",
	}, []string{"result"})
	locates, err = registerCounterVec(reg, locates, "tessellation_locate_total")
	if err != nil {
		return nil, err
	}
	locateDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tessellation_locate_duration_seconds",
		Help:    "Point-location latency in seconds.",
		Buckets: []float64{1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2},
	}), "tessellation_locate_duration_seconds")
	if err != nil {
		return nil, err
	}

	coverings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tessellation_covering_total",
		Help: "Total covering queries, labeled by region kind.",
	}, []string{"kind"})
	coverings, err = registerCounterVec(reg, coverings, "tessellation_covering_total")
	if err != nil {
		return nil, err
	}
	coveringLeaves := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tessellation_covering_leaves",
		Help:    "Number of leaf cells returned per covering query.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"kind"})
	coveringLeaves, err = registerHistogramVec(reg, coveringLeaves, "tessellation_covering_leaves")
	if err != nil {
		return nil, err
	}

	return &IndexCollector{
		gatherer:       gatherer,
		BuildDuration:  buildDuration,
		BuildDepth:     buildDepth,
		Nodes:          nodes,
		Locates:        locates,
		LocateDuration: locateDuration,
		Coverings:      coverings,
		CoveringLeaves: coveringLeaves,
	}, nil
}

// BuildCompleted records a finished tessellation build.
func (c *IndexCollector) BuildCompleted(depth, nodes int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.BuildDuration.Observe(elapsed.Seconds())
	c.BuildDepth.Set(float64(depth))
	c.Nodes.Set(float64(nodes))
}

// LocateCompleted records one point-location query.
func (c *IndexCollector) LocateCompleted(elapsed time.Duration, hit bool) {
	if c == nil {
		return
	}
	result := "hit"
	if !hit {
		result = "miss"
	}
	c.Locates.WithLabelValues(result).Inc()
	c.LocateDuration.Observe(elapsed.Seconds())
}

// CoveringCompleted records one covering query.
func (c *IndexCollector) CoveringCompleted(kind string, leaves int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Coverings.WithLabelValues(kind).Inc()
	c.CoveringLeaves.WithLabelValues(kind).Observe(float64(leaves))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *IndexCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
