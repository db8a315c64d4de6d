package nametable

import (
	"context"
	"time"
)

// System is a unit of work run once per dispatcher step.
type System interface {
	Run(w *World)
}

type SystemFunc func(w *World)

func (f SystemFunc) Run(w *World) {
	f(w)
}

type registeredSystem struct {
	name string
	sys  System
}

// Dispatcher runs its systems one after another, in registration order, once
// per Step.
type Dispatcher struct {
	world   *World
	systems []registeredSystem
	steps   uint64
}

func NewDispatcher(w *World) *Dispatcher {
	return &Dispatcher{world: w}
}

func (d *Dispatcher) Add(name string, sys System) *Dispatcher {
	d.systems = append(d.systems, registeredSystem{name, sys})
	return d
}

func (d *Dispatcher) SystemNames() []string {
	names := make([]string, len(d.systems))
	for i, rs := range d.systems {
		names[i] = rs.name
	}
	return names
}

func (d *Dispatcher) Steps() uint64 {
	return d.steps
}

func (d *Dispatcher) Step() {
	for _, rs := range d.systems {
		rs.sys.Run(d.world)
	}
	d.steps++
}

// Run steps every interval until ctx is done, and returns ctx.Err().
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Step()
		}
	}
}
