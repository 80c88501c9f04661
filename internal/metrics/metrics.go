// Package metrics records the outcome of a run in the Prometheus text
// format, for node-exporter style textfile collection of batch jobs.
package metrics

import (
	"bytes"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/OpenTraceLab/xnetlist/pkg/report"
)

// Collector captures metrics for one run.
type Collector struct {
	registry   *prometheus.Registry
	nodes      prometheus.Counter
	entities   *prometheus.GaugeVec
	reductions *prometheus.CounterVec
	rows       prometheus.Counter
	complete   prometheus.Gauge
	duration   prometheus.Gauge
}

// NewCollector initializes a new metrics registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xnet_nodes_parsed_total",
			Help: "Pins read from the netlist",
		}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xnet_entities",
			Help: "Registered nets and chips",
		}, []string{"kind"}),
		reductions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xnet_reductions_total",
			Help: "Transparent chip eliminations by result",
		}, []string{"result"}),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xnet_rows_total",
			Help: "Report rows produced",
		}),
		complete: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "xnet_parse_complete",
			Help: "1 if the netlist ended with END., 0 if it was truncated",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "xnet_run_duration_seconds",
			Help: "Wall time of the run",
		}),
	}
	registry.MustRegister(c.nodes, c.entities, c.reductions, c.rows, c.complete, c.duration)
	return c
}

// Observe records the statistics of a run.
func (c *Collector) Observe(stats report.Stats, duration time.Duration) {
	c.nodes.Add(float64(stats.Nodes))
	c.entities.WithLabelValues("net").Set(float64(stats.Nets))
	c.entities.WithLabelValues("chip").Set(float64(stats.Chips))
	c.reductions.WithLabelValues("eliminated").Add(float64(stats.Eliminated))
	c.reductions.WithLabelValues("failed").Add(float64(stats.ReductionFailures))
	c.rows.Add(float64(stats.Rows))
	if stats.Complete {
		c.complete.Set(1)
	} else {
		c.complete.Set(0)
	}
	c.duration.Set(duration.Seconds())
}

// Encode renders all metrics in the Prometheus text format.
func (c *Collector) Encode() ([]byte, error) {
	metricFamilies, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range metricFamilies {
		if err := enc.Encode(family); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Write writes all metrics to a Prometheus text file.
func (c *Collector) Write(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
