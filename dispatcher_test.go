package nametable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_RunsSystemsInOrder(t *testing.T) {
	w := New(Options{})
	defer w.Close()

	var trace []string
	d := NewDispatcher(w).
		Add("spawner", SystemFunc(func(w *World) {
			trace = append(trace, "spawner")
			w.Create("spawned")
		})).
		Add(BookkeepingName, w.Bookkeeping()).
		Add("reader", SystemFunc(func(w *World) {
			_, ok := w.NameTable().Get("spawned")
			trace = append(trace, "reader", map[bool]string{true: "found", false: "missing"}[ok])
		}))

	assert.Equal(t, []string{"spawner", BookkeepingName, "reader"}, d.SystemNames())

	d.Step()
	assert.Equal(t, []string{"spawner", "reader", "found"}, trace)
	assert.Equal(t, uint64(1), d.Steps())
}

func TestDispatcher_RunStopsOnCancel(t *testing.T) {
	w := New(Options{})
	defer w.Close()
	d := NewDispatcher(w).Add(BookkeepingName, w.Bookkeeping())
	w.Create("a")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx, time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		_, ok := w.NameTable().Get("a")
		return ok
	}, 5*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
