package destination

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/murthyn/composer/types"
)

// Prometheus exports logged scalar values as gauges.
//
// Each scalar key in a LogData entry becomes a gauge named
// "<namespace>_training_<sanitized key>" set to the latest logged value.
// Non-scalar values (series, strings) are skipped; Prometheus is a
// last-value sink, not an archive.
//
// Gauges are created on first sighting of a key and cached in a concurrent
// map, since the training goroutine writes while the scrape handler reads.
type Prometheus struct {
	reg       prometheus.Registerer
	namespace string
	logger    types.Logger
	gauges    *xsync.Map[string, prometheus.Gauge]
}

// Compile-time assertion that Prometheus implements LoggerDestination.
var _ types.LoggerDestination = (*Prometheus)(nil)

// NewPrometheus creates a Prometheus destination.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "composer" if empty)
//   - opts: Optional logger
//
// Returns:
//   - *Prometheus: The destination; gauges register lazily per metric key
func NewPrometheus(reg prometheus.Registerer, namespace string, opts ...Option) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "composer"
	}

	o := applyOptions(opts)

	return &Prometheus{
		reg:       reg,
		namespace: namespace,
		logger:    o.logger,
		gauges:    xsync.NewMap[string, prometheus.Gauge](),
	}
}

// Name returns "prometheus".
func (d *Prometheus) Name() string { return "prometheus" }

// LogData sets one gauge per scalar value in the entry.
//
// Values convert as float64, int, and int64; other kinds are skipped with a
// debug log. Nothing is retained, so no cloning is needed.
func (d *Prometheus) LogData(_ types.Timestamp, _ types.LogLevel, data types.LogData) error {
	for key, value := range data {
		scalar, ok := toFloat(value)
		if !ok {
			d.logger.Debug("skipping non-scalar value", "key", key)
			continue
		}
		d.gauge(key).Set(scalar)
	}

	return nil
}

// Close unregisters nothing; gauges keep reporting their last value until
// the registry itself is dropped.
func (d *Prometheus) Close(_ context.Context) error {
	return nil
}

// gauge returns the cached gauge for key, creating and registering it on
// first use.
func (d *Prometheus) gauge(key string) prometheus.Gauge {
	if g, ok := d.gauges.Load(key); ok {
		return g
	}

	g, _ := d.gauges.LoadOrStore(key, d.newGauge(key))

	return g
}

func (d *Prometheus) newGauge(key string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: d.namespace,
		Subsystem: "training",
		Name:      sanitizeName(key),
		Help:      "Latest logged value of training metric " + key + ".",
	})
	if err := d.reg.Register(g); err != nil {
		d.logger.Warn("failed to register training gauge", "key", key, "error", err)
	}

	return g
}

// sanitizeName maps an arbitrary metric key onto the Prometheus name
// charset [a-zA-Z0-9_].
func sanitizeName(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
