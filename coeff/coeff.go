// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coeff derives, once after geometry is final, the per-cell
// coefficient planes the FDTD engine consumes every step: the min-beta
// and max-sigma'*dt values at each face, the pressure damping term, the
// fused physical constants, and the face-category masks that let the
// engine's hot loop avoid branching on cell kind (spec.md §4.4, §9).
package coeff

import (
	"github.com/emer/etable/etensor"
	"github.com/emer/tubefield/cell"
	"github.com/emer/tubefield/grid"
)

// FaceKind categorizes a face between two cells so the engine's
// impedance and excitation phases never need to inspect cell.Kind
// directly in the hot loop (spec.md §9 design note).
type FaceKind uint8

const (
	// FaceOther needs no special handling: both impedance and
	// excitation injection are no-ops on this face.
	FaceOther FaceKind = iota
	// FaceAirBarrier is between an Air cell and a non-Air, non-PML,
	// non-Excitation, non-NoPressure cell: the locally-reacting
	// impedance applies.
	FaceAirBarrier
	// FaceExcitation is between an Air cell and an Excitation cell: the
	// source-injection phase applies, impedance does not. A face between
	// an Excitation cell and any non-Air cell is FaceOther and receives
	// no injection.
	FaceExcitation
)

// Set holds every precomputed per-cell and per-face coefficient plane.
type Set struct {
	H, W int

	MinBetaX, MinBetaY   *etensor.Float64
	MaxSigmaX, MaxSigmaY *etensor.Float64
	SigmaP               *etensor.Float64
	BetaDtRhoX, BetaDtRhoY *etensor.Float64 // (beta^2 * dt / rho) per face
	RhoC2DtDx            float64            // rho*c^2*dt/dx, a global scalar

	XFace, YFace []FaceKind // face category, indexed like Vx/Vy planes
	CornerX, CornerY []bool // true where the 1/sqrt(2) corner factor applies
}

// Derive populates a coefficient Set from the grid's (final) type plane.
// rho, c, dt and dx are the physical constants and timestep/grid-spacing
// from spec.md §6.
func Derive(g *grid.Grid, reg *cell.Registry, rho, c, dt, dx float64) *Set {
	shape := []int{g.H, g.W}
	s := &Set{
		H: g.H, W: g.W,
		MinBetaX:   etensor.NewFloat64(shape, nil, nil),
		MinBetaY:   etensor.NewFloat64(shape, nil, nil),
		MaxSigmaX:  etensor.NewFloat64(shape, nil, nil),
		MaxSigmaY:  etensor.NewFloat64(shape, nil, nil),
		SigmaP:     etensor.NewFloat64(shape, nil, nil),
		BetaDtRhoX: etensor.NewFloat64(shape, nil, nil),
		BetaDtRhoY: etensor.NewFloat64(shape, nil, nil),
		RhoC2DtDx:  rho * c * c * dt / dx,
		XFace:      make([]FaceKind, g.H*g.W),
		YFace:      make([]FaceKind, g.H*g.W),
		CornerX:    make([]bool, g.H*g.W),
		CornerY:    make([]bool, g.H*g.W),
	}

	betaDtRho := dt / rho

	for r := 1; r < g.H-1; r++ {
		for c2 := 1; c2 < g.W-1; c2++ {
			idx := g.Idx(r, c2)
			self := g.Kind(r, c2)
			right := g.Kind(r, c2+1)
			up := g.Kind(r-1, c2)

			cSelf := reg.Coefficients(self)
			cRight := reg.Coefficients(right)
			cUp := reg.Coefficients(up)

			minBx := minF(cSelf.Beta, cRight.Beta)
			minBy := minF(cSelf.Beta, cUp.Beta)
			s.MinBetaX.Values[idx] = minBx
			s.MinBetaY.Values[idx] = minBy
			s.MaxSigmaX.Values[idx] = maxF(cSelf.SigmaPrimeDt, cRight.SigmaPrimeDt)
			s.MaxSigmaY.Values[idx] = maxF(cSelf.SigmaPrimeDt, cUp.SigmaPrimeDt)
			s.SigmaP.Values[idx] = cSelf.SigmaPrimeDt
			s.BetaDtRhoX.Values[idx] = minBx * minBx * betaDtRho
			s.BetaDtRhoY.Values[idx] = minBy * minBy * betaDtRho

			s.XFace[idx] = classify(self, right, reg.Layers())
			s.YFace[idx] = classify(self, up, reg.Layers())
		}
	}

	markCorners(g, s)
	return s
}

func classify(a, b cell.Kind, layers int) FaceKind {
	aAir, bAir := a == cell.Air, b == cell.Air
	if aAir == bAir {
		return FaceOther // Air-Air, or neither side Air
	}
	// exactly one side is Air; let other be the non-Air side
	other := a
	if aAir {
		other = b
	}
	if other == cell.Excitation {
		return FaceExcitation
	}
	if _, isPml := cell.PmlIndex(other, layers); isPml {
		return FaceOther
	}
	if other == cell.NoPressure {
		return FaceOther
	}
	return FaceAirBarrier
}

// markCorners flags the faces around an Air cell that sits in an
// L-shaped pocket abutting walls on both axes at once, per spec.md
// §4.5 phase 7's "tangential to a corner" factor. Resolution of the
// spec's ambiguity here is recorded in DESIGN.md.
func markCorners(g *grid.Grid, s *Set) {
	for r := 1; r < g.H-1; r++ {
		for c := 1; c < g.W-1; c++ {
			idx := g.Idx(r, c)
			if s.XFace[idx] != FaceAirBarrier && s.YFace[idx] != FaceAirBarrier {
				continue
			}
			self := g.Kind(r, c)
			if self != cell.Air {
				continue
			}
			xWall := s.XFace[idx] == FaceAirBarrier
			yWall := s.YFace[idx] == FaceAirBarrier
			if xWall && yWall {
				s.CornerX[idx] = true
				s.CornerY[idx] = true
			}
		}
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
