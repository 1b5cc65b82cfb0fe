package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus metrics for the stockroom process.
type Metrics struct {
	registry      *prometheus.Registry
	mutations     *prometheus.CounterVec
	mutationTime  *prometheus.HistogramVec
	movements     *prometheus.CounterVec
	movedUnits    *prometheus.CounterVec
	skippedLines  *prometheus.CounterVec
	records       *prometheus.GaugeVec
	flushDuration *prometheus.HistogramVec
}

// NewMetrics initialises a private registry with the stockroom collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_mutations_total",
		Help: "Entity mutations by entity, operation and status.",
	}, []string{"entity", "op", "status"})
	mutationTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stockroom_mutation_duration_seconds",
		Help:    "Duration of entity mutations including the flush.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "op"})
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_stock_movements_total",
		Help: "Stock movements recorded by type.",
	}, []string{"type"})
	movedUnits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_stock_units_total",
		Help: "Units moved in or out of stock.",
	}, []string{"type"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_load_skipped_lines_total",
		Help: "Malformed lines skipped while loading data files.",
	}, []string{"entity"})
	records := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "stockroom_records",
		Help: "Records held in memory per entity.",
	}, []string{"entity"})
	flush := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stockroom_flush_duration_seconds",
		Help:    "Duration of writing every store to disk.",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	registry.MustRegister(mutations, mutationTime, movements, movedUnits, skipped, records, flush)
	return &Metrics{
		registry:      registry,
		mutations:     mutations,
		mutationTime:  mutationTime,
		movements:     movements,
		movedUnits:    movedUnits,
		skippedLines:  skipped,
		records:       records,
		flushDuration: flush,
	}
}

// Tracker instruments a single mutation.
type Tracker struct {
	metrics *Metrics
	entity  string
	op      string
	start   time.Time
}

// Track starts a tracker for entity/op, e.g. ("product", "add").
func (m *Metrics) Track(entity, op string) *Tracker {
	return &Tracker{metrics: m, entity: entity, op: op, start: time.Now()}
}

// End records the outcome and returns err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	t.metrics.mutations.WithLabelValues(t.entity, t.op, status).Inc()
	t.metrics.mutationTime.WithLabelValues(t.entity, t.op).Observe(time.Since(t.start).Seconds())
	return err
}

// ObserveMovement counts a stock movement of qty units.
func (m *Metrics) ObserveMovement(kind string, qty int) {
	if m == nil || qty <= 0 {
		return
	}
	m.movements.WithLabelValues(kind).Inc()
	m.movedUnits.WithLabelValues(kind).Add(float64(qty))
}

// AddSkipped counts malformed lines dropped while loading entity.
func (m *Metrics) AddSkipped(entity string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.skippedLines.WithLabelValues(entity).Add(float64(count))
}

// SetRecords publishes the in-memory record count for entity.
func (m *Metrics) SetRecords(entity string, count int) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(entity).Set(float64(count))
}

// ObserveFlush records how long a full flush took.
func (m *Metrics) ObserveFlush(d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.flushDuration.WithLabelValues(status).Observe(d.Seconds())
}

// Gatherer exposes the registry for export.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.DefaultGatherer
	}
	return m.registry
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Gatherer())
}
