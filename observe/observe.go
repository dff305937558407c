// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package observe provides the listener probe and visualization sink
// (spec.md §4.7) that the field engine publishes to every step.
package observe

import "github.com/emer/tubefield/grid"

// Listener samples pressure at one grid cell every step into an
// append-only buffer.
type Listener struct {
	R, C int
	Buf  []float64
}

// NewListener returns a Listener probing cell (r, c).
func NewListener(r, c int) *Listener {
	return &Listener{R: r, C: c}
}

// Record appends one pressure sample (field.Engine calls this once per
// step with the value already probed at the listener cell).
func (l *Listener) Record(p float64) {
	l.Buf = append(l.Buf, p)
}

// Snapshot is one recorded field-pressure frame. It holds no cell type
// plane; non-fluid cells carry field.WallSentinel in P instead, so a
// renderer can tell wall cells from fluid pressure.
type Snapshot struct {
	Step int
	H, W int
	P    []float64 // field.WallSentinel marks non-fluid cells
}

// BufferSink accumulates snapshots in memory every K steps. It is the
// default, allocation-light visualization sink; a GUI layer (see
// cmd/tubefield) wraps a BufferSink or implements the same Emit method
// directly against a live plot.
type BufferSink struct {
	Frames []Snapshot
}

// Emit implements field.SnapshotSink.
func (b *BufferSink) Emit(step int, g *grid.Grid, p []float64) {
	cp := make([]float64, len(p))
	copy(cp, p)
	b.Frames = append(b.Frames, Snapshot{Step: step, H: g.H, W: g.W, P: cp})
}

// FuncSink adapts a plain function to field.SnapshotSink, for callers
// that want to stream frames (to a plot, a channel, a file) without
// defining a named type.
type FuncSink func(step int, g *grid.Grid, p []float64)

// Emit implements field.SnapshotSink.
func (f FuncSink) Emit(step int, g *grid.Grid, p []float64) { f(step, g, p) }
