// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cell enumerates the grid cell kinds used by the tubefield FDTD
// engine and maps each kind to its (beta, sigma-prime * dt) coefficient
// pair. It is the single place those numbers live; every other package
// consults the table by Kind, never the raw constants.
package cell

import "fmt"

// Kind is the closed set of cell classifications a grid cell can take.
type Kind int32

const (
	// Air is an interior fluid cell; fully permeable, undamped.
	Air Kind = iota
	// Wall is a locally-reacting rigid boundary; impermeable.
	Wall
	// Excitation injects source velocity into its faces.
	Excitation
	// Dead is the outermost frame ring; frozen, never propagates.
	Dead
	// NoPressure is a Dirichlet cell: pressure forced to zero every step.
	NoPressure
	// pmlBase is the first PML layer code; Pml(i) = pmlBase + i.
	pmlBase
)

// Pml returns the Kind for PML layer i (0 = innermost ring, next to the
// interior; higher indices lie farther out; see Grid for the ring
// ordering).
func Pml(i int) Kind {
	return pmlBase + Kind(i)
}

// PmlIndex reports whether k is a PML layer kind, and if so which index
// (0..layers-1) it is, given the configured layer count.
func PmlIndex(k Kind, layers int) (int, bool) {
	if k < pmlBase {
		return 0, false
	}
	i := int(k - pmlBase)
	if i < 0 || i >= layers {
		return 0, false
	}
	return i, true
}

func (k Kind) String() string {
	switch {
	case k == Air:
		return "Air"
	case k == Wall:
		return "Wall"
	case k == Excitation:
		return "Excitation"
	case k == Dead:
		return "Dead"
	case k == NoPressure:
		return "NoPressure"
	case k >= pmlBase:
		return fmt.Sprintf("Pml[%d]", k-pmlBase)
	}
	return "Unknown"
}

// Coeffs is the (beta, sigma-prime*dt) pair a kind resolves to. Beta is
// the per-cell velocity permeability (1 = fluid, 0 = rigid); SigmaPrimeDt
// is the per-step damping term.
type Coeffs struct {
	Beta         float64
	SigmaPrimeDt float64
}

// Registry is the coefficient lookup table for one simulation's choice
// of PML layer count, sigma_max and Δt. It is built once at startup and
// never mutated; Coefficients is a pure table lookup.
type Registry struct {
	layers int
	table  []Coeffs
}

// NewRegistry builds the coefficient table for layers PML rings graded
// from sigmaMax at the outermost PML ring to 0 at the innermost.
func NewRegistry(layers int, sigmaMax, dt float64) *Registry {
	if layers < 1 {
		layers = 1
	}
	table := make([]Coeffs, int(pmlBase)+layers)
	table[Air] = Coeffs{Beta: 1, SigmaPrimeDt: 0}
	table[Wall] = Coeffs{Beta: 0, SigmaPrimeDt: dt}
	table[Excitation] = Coeffs{Beta: 0, SigmaPrimeDt: dt}
	table[Dead] = Coeffs{Beta: 0, SigmaPrimeDt: 1e6}
	table[NoPressure] = Coeffs{Beta: 1, SigmaPrimeDt: 0}
	for i := 0; i < layers; i++ {
		frac := 0.0
		if layers > 1 {
			frac = float64(i) / float64(layers-1)
		}
		table[int(pmlBase)+i] = Coeffs{Beta: 1, SigmaPrimeDt: frac * sigmaMax * dt}
	}
	return &Registry{layers: layers, table: table}
}

// Layers returns the PML layer count this registry was built with.
func (r *Registry) Layers() int { return r.layers }

// Coefficients looks up the (beta, sigma-prime*dt) pair for k. An out of
// range kind is treated as Dead (frozen) rather than panicking, since the
// hot loop must never branch on a construction-time error.
func (r *Registry) Coefficients(k Kind) Coeffs {
	if int(k) < 0 || int(k) >= len(r.table) {
		return Coeffs{Beta: 0, SigmaPrimeDt: 1e6}
	}
	return r.table[k]
}
