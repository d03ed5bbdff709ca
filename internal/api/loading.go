package api

import (
	"sync"

	"shoplist/internal/observe"
)

// Gauge counts in-flight requests application-wide and exposes a
// boolean "anything loading" cell for the UI.
type Gauge struct {
	mu      sync.Mutex
	count   int
	loading *observe.Cell[bool]
}

func NewGauge() *Gauge {
	return &Gauge{loading: observe.NewCell(false)}
}

// Add records a request starting.
func (g *Gauge) Add() {
	g.mu.Lock()
	g.count++
	first := g.count == 1
	g.mu.Unlock()

	if first {
		g.loading.Set(true)
	}
}

// Done records a request terminating. Calls must pair with Add; an
// unbalanced Done is clamped at zero rather than going negative.
func (g *Gauge) Done() {
	g.mu.Lock()
	if g.count > 0 {
		g.count--
	}
	last := g.count == 0
	g.mu.Unlock()

	if last {
		g.loading.Set(false)
	}
}

// Loading reports whether any request is outstanding.
func (g *Gauge) Loading() bool {
	return g.loading.Get()
}

// Cell exposes the loading flag for subscription.
func (g *Gauge) Cell() *observe.Cell[bool] {
	return g.loading
}

// Reset forces the gauge back to zero. Test isolation only.
func (g *Gauge) Reset() {
	g.mu.Lock()
	g.count = 0
	g.mu.Unlock()
	g.loading.Set(false)
}
