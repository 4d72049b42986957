// Package metrics counts gate applications and tracks operator growth with
// prometheus instruments on a private registry.
package metrics

import (
	"fmt"
	"io"

	"github.com/nvandessel/opspread/internal/clifford"
	"github.com/nvandessel/opspread/internal/pauli"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Collector implements sampler.Observer and records per-period operator
// statistics.
type Collector struct {
	registry *prometheus.Registry

	gatesApplied *prometheus.CounterVec
	periods      prometheus.Counter
	weight       prometheus.Gauge
	labelCounts  *prometheus.GaugeVec
	supportWidth prometheus.Histogram
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		gatesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opspread",
			Name:      "gates_applied_total",
			Help:      "Total gates applied to the tableau by kind",
		}, []string{"kind"}),
		periods: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "opspread",
			Name:      "periods_total",
			Help:      "Total brickwork periods completed",
		}),
		weight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "opspread",
			Name:      "operator_weight",
			Help:      "Non-identity sites of row 0 after the latest period",
		}),
		labelCounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "opspread",
			Name:      "operator_sites",
			Help:      "Sites of row 0 per Pauli label after the latest period",
		}, []string{"label"}),
		supportWidth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "opspread",
			Name:      "operator_support_width",
			Help:      "Width of the operator support after each period",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512 sites
		}),
	}
	c.registry.MustRegister(c.gatesApplied, c.periods, c.weight, c.labelCounts, c.supportWidth)
	return c
}

// GateApplied counts one applied gate.
func (c *Collector) GateApplied(g clifford.Gate) {
	c.gatesApplied.WithLabelValues(g.Kind.String()).Inc()
}

// PeriodCompleted records the decoded operator after a period.
func (c *Collector) PeriodCompleted(labels []pauli.Label, counts pauli.Counts) {
	c.periods.Inc()
	c.weight.Set(float64(counts.Weight()))
	for _, l := range []pauli.Label{pauli.I, pauli.X, pauli.Y, pauli.Z} {
		c.labelCounts.WithLabelValues(l.String()).Set(float64(counts[l]))
	}
	if left, right, ok := pauli.Support(labels); ok {
		c.supportWidth.Observe(float64(right - left + 1))
	}
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteText writes every metric family in the text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
