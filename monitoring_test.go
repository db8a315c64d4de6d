package nametable

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	w := New(Options{MetricsNamespace: "scene", Registerer: reg})
	defer w.Close()
	d := NewDispatcher(w).Add(BookkeepingName, w.Bookkeeping())

	w.Create("x")
	w.Create("x")
	d.Step()

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP scene_bookkeeping_collisions_total Names claimed by more than one entity at update time.
# TYPE scene_bookkeeping_collisions_total counter
scene_bookkeeping_collisions_total 1
# HELP scene_table_rows Number of rows in the name table after the last step.
# TYPE scene_table_rows gauge
scene_table_rows 1
`), "scene_bookkeeping_collisions_total", "scene_table_rows")
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(w.Metrics().Events.WithLabelValues("inserted")))
	assert.Panics(t, func() {
		NewMetrics("scene", reg)
	}, "duplicate registration")
}

func TestWorld_Stats(t *testing.T) {
	w := setup(t)
	a := w.Create("a")
	w.Create("b")
	w.Entities().Create()
	w.step()
	w.Delete(a)
	w.Create("c")

	s := w.Stats()
	assert.Equal(t, Stats{
		Entities:     3,
		Names:        2,
		TableRows:    2,
		PendingLog:   2,
		RetainedLog:  2,
		StaleEntries: 1,
	}, s)
}
