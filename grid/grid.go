// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid owns the rectangular cell frame the FDTD engine operates
// over: the per-cell type plane, the depth (2.5D) planes, and the two
// double-buffered field states (pressure + velocity) that are swapped
// after every step.
package grid

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/tubefield/cell"
)

// State is one time-slice of the propagating field: pressure at cell
// center, velocity on the right face (Vx) and the top face (Vy). Vx and
// Vy follow the source's convention that the face value is stored at
// the index of the cell whose right/top face it is -- so Vy[r,c] sits
// between row r and row r-1 (row index decreases upward).
type State struct {
	P  *etensor.Float64
	Vx *etensor.Float64
	Vy *etensor.Float64
}

func newState(h, w int) *State {
	shape := []int{h, w}
	return &State{
		P:  etensor.NewFloat64(shape, nil, nil),
		Vx: etensor.NewFloat64(shape, nil, nil),
		Vy: etensor.NewFloat64(shape, nil, nil),
	}
}

// Grid is the full simulation frame: interior domain plus the outer Dead
// ring and, when enabled, pml_layers graded PML rings between the
// interior and the Dead ring.
type Grid struct {
	H, W       int // full frame dimensions (rows, cols)
	DomainH    int // interior domain height, excluding Dead/PML rings
	DomainW    int // interior domain width, excluding Dead/PML rings
	PmlLayers  int
	PmlOn      bool
	Type       *etensor.Int32   // cell kind per cell; read-only after Build
	Dx, Dy, Dp *etensor.Float64 // 2.5D depth factors; 1.0 in pure 2D mode

	Cur, Next *State // double-buffered field state; swapped each step
}

// New allocates a grid whose interior equals domainH x domainW, framed
// by one Dead ring and, if pmlOn, pmlLayers graded PML rings inside
// that. mode2D is accepted but not used: Dx/Dy/Dp start at 1.0 in both
// modes, and no builder in this module overwrites them, so a 2.5D run
// behaves as pure 2D.
func New(domainH, domainW int, pmlOn bool, pmlLayers int, mode2D bool) *Grid {
	pad := 1
	if pmlOn {
		pad += pmlLayers
	}
	h := domainH + 2*pad
	w := domainW + 2*pad
	shape := []int{h, w}

	g := &Grid{
		H: h, W: w,
		DomainH: domainH, DomainW: domainW,
		PmlLayers: pmlLayers, PmlOn: pmlOn,
		Type: etensor.NewInt32(shape, nil, nil),
		Dx:   etensor.NewFloat64(shape, nil, nil),
		Dy:   etensor.NewFloat64(shape, nil, nil),
		Dp:   etensor.NewFloat64(shape, nil, nil),
		Cur:  newState(h, w),
		Next: newState(h, w),
	}
	for i := range g.Dx.Values {
		g.Dx.Values[i] = 1.0
		g.Dy.Values[i] = 1.0
		g.Dp.Values[i] = 1.0
	}
	_ = mode2D // depth planes default to pure-2D; geometry builders may overwrite for 2.5D
	g.stampFrame()
	return g
}

// Idx converts a (row, col) pair to the flat offset into any H x W plane.
func (g *Grid) Idx(r, c int) int { return r*g.W + c }

// InBounds reports whether (r, c) lies within the full frame.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.H && c >= 0 && c < g.W
}

// stampFrame lays down the outermost Dead ring and, when PML is on, the
// graded PML rings between the Dead ring and the interior. Geometry
// builders run after this and may overwrite any of these cells (a Wall
// stamped by geometry wins over a PML assignment).
func (g *Grid) stampFrame() {
	for c := 0; c < g.W; c++ {
		g.Type.Values[g.Idx(0, c)] = int32(cell.Dead)
		g.Type.Values[g.Idx(g.H-1, c)] = int32(cell.Dead)
	}
	for r := 0; r < g.H; r++ {
		g.Type.Values[g.Idx(r, 0)] = int32(cell.Dead)
		g.Type.Values[g.Idx(r, g.W-1)] = int32(cell.Dead)
	}
	if !g.PmlOn {
		return
	}
	L := g.PmlLayers
	for ring := 0; ring < L; ring++ {
		// ring 0 is just inside the Dead border; its Kind is Pml[L-1],
		// grading down to Pml[0] at the innermost PML ring (spec.md §3).
		k := cell.Pml(L - 1 - ring)
		top, bot := 1+ring, g.H-2-ring
		left, right := 1+ring, g.W-2-ring
		if top > bot || left > right {
			continue
		}
		for c := left; c <= right; c++ {
			g.Type.Values[g.Idx(top, c)] = int32(k)
			g.Type.Values[g.Idx(bot, c)] = int32(k)
		}
		for r := top; r <= bot; r++ {
			g.Type.Values[g.Idx(r, left)] = int32(k)
			g.Type.Values[g.Idx(r, right)] = int32(k)
		}
	}
}

// InteriorOrigin returns the (row, col) of the top-left cell of the
// domain interior, i.e. just past the Dead ring and any PML rings.
func (g *Grid) InteriorOrigin() (int, int) {
	pad := 1
	if g.PmlOn {
		pad += g.PmlLayers
	}
	return pad, pad
}

// Swap exchanges Cur and Next so the freshly-computed state becomes
// current. This is a pointer exchange, not a copy (spec.md §5).
func (g *Grid) Swap() {
	g.Cur, g.Next = g.Next, g.Cur
}

// Kind returns the cell kind at (r, c).
func (g *Grid) Kind(r, c int) cell.Kind {
	return cell.Kind(g.Type.Values[g.Idx(r, c)])
}

// SetKind stamps a cell kind at (r, c). Geometry builders call this;
// after Build completes the Type plane must not change again.
func (g *Grid) SetKind(r, c int, k cell.Kind) {
	g.Type.Values[g.Idx(r, c)] = int32(k)
}
