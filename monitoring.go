package nametable

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Stats struct {
	Entities     int
	Names        int
	TableRows    int
	PendingLog   int
	RetainedLog  int
	StaleEntries int
}

// Stats counts the world's contents. StaleEntries is the number of table rows
// whose entity no longer carries that name.
func (w *World) Stats() Stats {
	s := Stats{
		Entities:    w.entities.Len(),
		Names:       w.names.Len(),
		RetainedLog: w.names.Changes().Retained(),
	}
	for name, e := range w.table.All() {
		s.TableRows++
		if cur, ok := w.names.Get(e); !ok || cur.String() != name {
			s.StaleEntries++
		}
	}
	if w.bookkeeping != nil {
		s.PendingLog = w.names.Changes().Pending(w.bookkeeping.changes)
	}
	return s
}

// Metrics holds the Prometheus collectors updated by Bookkeeping.
type Metrics struct {
	Steps      prometheus.Counter
	Events     *prometheus.CounterVec
	Collisions prometheus.Counter
	TableSize  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg, unless reg
// is nil.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookkeeping",
			Name:      "steps_total",
			Help:      "Number of bookkeeping steps run.",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookkeeping",
			Name:      "events_total",
			Help:      "Change log events consumed, by op.",
		}, []string{"op"}),
		Collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookkeeping",
			Name:      "collisions_total",
			Help:      "Names claimed by more than one entity at update time.",
		}),
		TableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "table",
			Name:      "rows",
			Help:      "Number of rows in the name table after the last step.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Events, m.Collisions, m.TableSize)
	}
	return m
}

func (m *Metrics) observeStep(counts opCounts, collisions, tableSize int) {
	m.Steps.Inc()
	if counts.inserted > 0 {
		m.Events.WithLabelValues(OpInserted.String()).Add(float64(counts.inserted))
	}
	if counts.removed > 0 {
		m.Events.WithLabelValues(OpRemoved.String()).Add(float64(counts.removed))
	}
	if counts.modified > 0 {
		m.Events.WithLabelValues(OpModified.String()).Add(float64(counts.modified))
	}
	if collisions > 0 {
		m.Collisions.Add(float64(collisions))
	}
	m.TableSize.Set(float64(tableSize))
}
