// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements the FDTD update engine (spec.md §4.5): the
// nine-phase per-step pipeline that advances pressure and velocity over
// the grid's interior, injects the excitation source, applies the
// locally-reacting wall impedance, enforces the Dirichlet cells, and
// wipes the outer border. The engine is single-threaded by contract
// (spec.md §5): no step may overlap the next.
package field

import (
	"fmt"
	"math"

	"github.com/emer/tubefield/cell"
	"github.com/emer/tubefield/coeff"
	"github.com/emer/tubefield/grid"
)

// Direction indices into a source's 4-vector, in the order the spec
// names them: left, down, right, up.
const (
	DirLeft = iota
	DirDown
	DirRight
	DirUp
)

// Listener receives one pressure sample per completed step.
type Listener interface {
	Record(p float64)
}

// SnapshotSink receives a full pressure-field snapshot every K steps.
// Air, NoPressure and PML cells carry their pressure; every other cell
// (Wall, Excitation, Dead) is reported as WallSentinel so a renderer can
// distinguish it from valid pressure values.
type SnapshotSink interface {
	Emit(step int, g *grid.Grid, p []float64)
}

// WallSentinel is the value SnapshotSink implementations should treat
// as "not a pressure reading" when the underlying cell is not fluid.
const WallSentinel = math.MaxFloat64

// NumericError reports a non-finite value surfacing in a field plane.
// It is fatal: the driver must discard the offending step's output and
// stop (spec.md §7).
type NumericError struct {
	Step  int
	Plane string
	Row   int
	Col   int
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("field: non-finite value in %s at step %d, cell (%d,%d)", e.Plane, e.Step, e.Row, e.Col)
}

// Engine runs the FDTD step pipeline over a Grid and its derived
// coefficients, reading one excitation sample per step.
type Engine struct {
	Grid  *grid.Grid
	Coeff *coeff.Set
	Reg   *cell.Registry

	Dx, Dy float64 // grid spacing; Δx == Δy under the CFL choice in spec.md §6
	Alpha  float64 // wall reflection coefficient
	Rho, C float64 // air density, speed of sound

	Dir [4]float64 // excitation direction weights: left, down, right, up

	zInv float64 // 1/Z_n, derived once from Alpha, Rho, C
}

// NewEngine derives the wall-impedance admittance once and returns a
// ready-to-step Engine.
func NewEngine(g *grid.Grid, cf *coeff.Set, reg *cell.Registry, dx, dy, alpha, rho, c float64, dir [4]float64) *Engine {
	root := math.Sqrt(1 - alpha)
	zn := rho * c * (1 + root) / (1 - root)
	return &Engine{
		Grid: g, Coeff: cf, Reg: reg,
		Dx: dx, Dy: dy, Alpha: alpha, Rho: rho, C: c,
		Dir:  dir,
		zInv: 1.0 / zn,
	}
}

// Step advances the simulation by one timestep, injecting E (the
// current excitation sample), publishing the listener probe(s) and any
// due snapshot, and swapping the double-buffered state. step is the
// 0-based step index, used for NumericError reporting and snapshot
// cadence.
func (e *Engine) Step(step int, excite float64, listener [2]int, snapshotEvery int, lis Listener, snap SnapshotSink) error {
	g := e.Grid
	cf := e.Coeff
	cur, next := g.Cur, g.Next

	// Phases 1-3: pressure divergence, update, Dirichlet zero.
	for r := 1; r < g.H-1; r++ {
		for c := 1; c < g.W-1; c++ {
			idx := g.Idx(r, c)
			cxVx := cur.Vx.Values[idx]*g.Dx.Values[idx] - cur.Vx.Values[g.Idx(r, c-1)]*g.Dx.Values[g.Idx(r, c-1)]
			cyVy := cur.Vy.Values[idx]*g.Dy.Values[idx] - cur.Vy.Values[g.Idx(r+1, c)]*g.Dy.Values[g.Idx(r+1, c)]

			dp := g.Dp.Values[idx]
			p := (cur.P.Values[idx]*dp - cf.RhoC2DtDx*(cxVx+cyVy)) / ((1 + cf.SigmaP.Values[idx]) * dp)

			if g.Kind(r, c) == cell.NoPressure {
				p = 0
			}
			next.P.Values[idx] = p
		}
	}

	// Phases 4-8: pressure gradient, velocity pre-update, source
	// injection, wall impedance, normalize.
	for r := 1; r < g.H-1; r++ {
		for c := 1; c < g.W-1; c++ {
			idx := g.Idx(r, c)
			pSelf := next.P.Values[idx]
			pRight := next.P.Values[g.Idx(r, c+1)]
			pUp := next.P.Values[g.Idx(r-1, c)]

			cxP := (pRight - pSelf) / e.Dx
			cyP := (pUp - pSelf) / e.Dy

			vx := cf.MinBetaX.Values[idx]*cur.Vx.Values[idx] - cf.BetaDtRhoX.Values[idx]*cxP
			vy := cf.MinBetaY.Values[idx]*cur.Vy.Values[idx] - cf.BetaDtRhoY.Values[idx]*cyP

			selfKind := g.Kind(r, c)

			switch cf.XFace[idx] {
			case coeff.FaceExcitation:
				rightKind := g.Kind(r, c+1)
				if selfKind == cell.Excitation && rightKind != cell.Excitation {
					vx += excite * e.Dir[DirRight] * cf.MaxSigmaX.Values[idx]
				} else if rightKind == cell.Excitation && selfKind != cell.Excitation {
					vx += excite * e.Dir[DirLeft] * cf.MaxSigmaX.Values[idx]
				}
			case coeff.FaceAirBarrier:
				n := 1.0
				if cf.CornerX[idx] {
					n = 1.0 / math.Sqrt2
				}
				betaSelf := e.Reg.Coefficients(selfKind).Beta
				betaNbr := e.Reg.Coefficients(g.Kind(r, c+1)).Beta
				vb := e.zInv * n * ((betaNbr*(1-betaSelf))*pSelf - (betaSelf*(1-betaNbr))*pRight)
				vx += vb * cf.MaxSigmaX.Values[idx]
			}

			switch cf.YFace[idx] {
			case coeff.FaceExcitation:
				upKind := g.Kind(r-1, c)
				if selfKind == cell.Excitation && upKind != cell.Excitation {
					vy += excite * e.Dir[DirUp] * cf.MaxSigmaY.Values[idx]
				} else if upKind == cell.Excitation && selfKind != cell.Excitation {
					vy += excite * e.Dir[DirDown] * cf.MaxSigmaY.Values[idx]
				}
			case coeff.FaceAirBarrier:
				n := 1.0
				if cf.CornerY[idx] {
					n = 1.0 / math.Sqrt2
				}
				betaSelf := e.Reg.Coefficients(selfKind).Beta
				betaNbr := e.Reg.Coefficients(g.Kind(r-1, c)).Beta
				vb := e.zInv * n * ((betaNbr*(1-betaSelf))*pSelf - (betaSelf*(1-betaNbr))*pUp)
				vy += vb * cf.MaxSigmaY.Values[idx]
			}

			denomX := cf.MinBetaX.Values[idx] + cf.MaxSigmaX.Values[idx]
			denomY := cf.MinBetaY.Values[idx] + cf.MaxSigmaY.Values[idx]
			if denomX == 0 {
				denomX = 1 // defensive clamp; registry guarantees this never happens (spec.md §9)
			}
			if denomY == 0 {
				denomY = 1
			}
			next.Vx.Values[idx] = vx / denomX
			next.Vy.Values[idx] = vy / denomY
		}
	}

	wipeBorder(g, next)

	if err := checkFinite(step, g, next); err != nil {
		return err
	}

	lIdx := g.Idx(listener[0], listener[1])
	if lis != nil {
		lis.Record(next.P.Values[lIdx])
	}
	if snap != nil && snapshotEvery > 0 && step%snapshotEvery == 0 {
		snap.Emit(step, g, snapshotValues(g, next))
	}

	g.Swap()
	return nil
}

func wipeBorder(g *grid.Grid, s *grid.State) {
	for c := 0; c < g.W; c++ {
		zero(s, g.Idx(0, c))
		zero(s, g.Idx(g.H-1, c))
	}
	for r := 0; r < g.H; r++ {
		zero(s, g.Idx(r, 0))
		zero(s, g.Idx(r, g.W-1))
	}
}

func zero(s *grid.State, idx int) {
	s.P.Values[idx] = 0
	s.Vx.Values[idx] = 0
	s.Vy.Values[idx] = 0
}

func checkFinite(step int, g *grid.Grid, s *grid.State) error {
	if i, ok := firstNonFinite(s.P.Values); ok {
		return &NumericError{Step: step, Plane: "P", Row: i / g.W, Col: i % g.W}
	}
	if i, ok := firstNonFinite(s.Vx.Values); ok {
		return &NumericError{Step: step, Plane: "Vx", Row: i / g.W, Col: i % g.W}
	}
	if i, ok := firstNonFinite(s.Vy.Values); ok {
		return &NumericError{Step: step, Plane: "Vy", Row: i / g.W, Col: i % g.W}
	}
	return nil
}

func firstNonFinite(vs []float64) (int, bool) {
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i, true
		}
	}
	return 0, false
}

func snapshotValues(g *grid.Grid, s *grid.State) []float64 {
	out := make([]float64, len(s.P.Values))
	for i, k := range g.Type.Values {
		kind := cell.Kind(k)
		_, isPml := cell.PmlIndex(kind, g.PmlLayers)
		if kind == cell.Air || kind == cell.NoPressure || isPml {
			out[i] = s.P.Values[i]
		} else {
			out[i] = WallSentinel
		}
	}
	return out
}
