// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"math"

	"github.com/emer/tubefield/cell"
	"github.com/emer/tubefield/config"
	"github.com/emer/tubefield/grid"
)

// VowelSections is the fixed number of area-function entries per
// vowel (spec.md §4.3 item 5).
const VowelSections = 44

// VowelSectionLen is the axial length each area-function entry
// represents, in meters. The Takemoto/Mokhtari area-function tables
// this scene is grounded on are sampled at ~4mm intervals along a
// ~17.6cm vocal tract.
const VowelSectionLen = 0.004

// areaFunctions holds the 44-entry cross-sectional area tables (cm^2)
// for the three supported vowels, glottis-to-lips.
var areaFunctions = map[config.Vowel][VowelSections]float64{
	config.VowelA: areaA,
	config.VowelU: areaU,
	config.VowelI: areaI,
}

// AreaFunction returns the 44-section area function (cm^2) for vowel,
// glottis-to-lips order.
func AreaFunction(vowel config.Vowel) ([VowelSections]float64, bool) {
	a, ok := areaFunctions[vowel]
	return a, ok
}

// /a/: wide pharynx, constricted just behind the lips.
var areaA = [VowelSections]float64{
	3.0, 3.4, 3.9, 4.5, 5.2, 5.9, 6.5, 7.0, 7.3, 7.5,
	7.6, 7.6, 7.4, 7.1, 6.7, 6.2, 5.7, 5.1, 4.6, 4.1,
	3.6, 3.2, 2.8, 2.5, 2.2, 2.0, 1.8, 1.6, 1.5, 1.4,
	1.3, 1.3, 1.3, 1.4, 1.6, 1.9, 2.3, 2.8, 3.2, 3.3,
	3.0, 2.4, 1.6, 0.9,
}

// /u/: constricted pharynx and a second constriction at the lips.
var areaU = [VowelSections]float64{
	0.7, 0.9, 1.3, 1.9, 2.7, 3.6, 4.6, 5.5, 6.2, 6.7,
	6.9, 6.8, 6.4, 5.8, 5.0, 4.2, 3.4, 2.8, 2.3, 2.0,
	1.9, 2.0, 2.3, 2.8, 3.4, 4.1, 4.8, 5.3, 5.6, 5.6,
	5.2, 4.6, 3.8, 3.0, 2.3, 1.7, 1.2, 0.9, 0.7, 0.6,
	0.5, 0.5, 0.5, 0.4,
}

// /i/: narrow pharyngeal-to-palatal channel, wide open at the lips.
var areaI = [VowelSections]float64{
	2.0, 2.2, 2.3, 2.3, 2.2, 2.0, 1.8, 1.5, 1.3, 1.1,
	0.9, 0.8, 0.7, 0.6, 0.6, 0.6, 0.7, 0.8, 1.0, 1.3,
	1.7, 2.2, 2.8, 3.5, 4.3, 5.1, 5.9, 6.6, 7.2, 7.6,
	7.9, 8.0, 7.9, 7.6, 7.1, 6.5, 5.9, 5.3, 4.7, 4.1,
	3.5, 2.9, 2.3, 1.8,
}

// GeometryError reports that the built tube's integrated cell length
// deviates from the true section-length total by more than the
// implementation's accepted budget. It is a warning-class error
// (spec.md §7): the grid it accompanies is still usable.
type GeometryError struct {
	Vowel    config.Vowel
	RelError float64
	Budget   float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("scene: vowel %s tube length error %.4f%% exceeds budget %.4f%%", e.Vowel, e.RelError*100, e.Budget*100)
}

// GeometryErrorBudget is the accepted relative error on the tube's
// integrated cell-count length versus the true area-function length
// (spec.md §8, property 5 requires < 2%).
const GeometryErrorBudget = 0.02

type vowelGeom struct {
	nCells     [VowelSections]int // snapped, odd cell-count diameter per section
	totalCells int
	maxRadius  int
	relError   float64
}

func snapOdd(raw float64) int {
	n := int(math.Round(raw))
	if n < 1 {
		n = 1
	}
	frac := raw - math.Floor(raw)
	roundedUp := frac >= 0.5
	if n%2 == 0 {
		if roundedUp {
			n--
		} else {
			n++
		}
		if n < 1 {
			n = 1
		}
	}
	return n
}

func computeVowelGeometry(vowel config.Vowel, ds float64) (vowelGeom, error) {
	area, ok := AreaFunction(vowel)
	if !ok {
		return vowelGeom{}, &config.Error{Field: "vowel", Value: vowel, Reason: "must be a, u, or i"}
	}
	var vg vowelGeom
	for i, a := range area {
		aM2 := a * 1e-4 // cm^2 -> m^2
		d := 2 * math.Sqrt(aM2/math.Pi)
		raw := d / ds
		n := snapOdd(raw)
		vg.nCells[i] = n
		r := (n-1)/2 + 1
		if r > vg.maxRadius {
			vg.maxRadius = r
		}
	}
	trueLen := float64(VowelSections) * VowelSectionLen
	vg.totalCells = int(math.Round(trueLen / ds))
	if vg.totalCells < VowelSections {
		vg.totalCells = VowelSections
	}
	snappedLen := float64(vg.totalCells) * ds
	vg.relError = math.Abs(trueLen-snappedLen) / trueLen
	return vg, nil
}

// VowelDomain computes the interior (domainH, domainW) a grid must
// have to hold the built tube for vowel at grid spacing ds (meters),
// before the caller allocates the Grid (spec.md §6: domain_w/domain_h
// are ignored for scene=vowel, which derives its own).
func VowelDomain(vowel config.Vowel, ds float64) (h, w int, err error) {
	vg, err := computeVowelGeometry(vowel, ds)
	if err != nil {
		return 0, 0, err
	}
	h = 2*vg.maxRadius + 4
	w = vg.totalCells + 4
	return h, w, nil
}

// BuildVowelDs stamps the vowel's cross-section tube onto g (which must
// already be sized via VowelDomain at the same ds) and returns the
// listener cell. warn is a non-nil *GeometryError when the tube's
// integrated length error exceeds GeometryErrorBudget; the grid is
// still fully usable in that case (spec.md §7).
func BuildVowelDs(g *grid.Grid, vowel config.Vowel, ds float64) (listener [2]int, warn error, err error) {
	vg, err := computeVowelGeometry(vowel, ds)
	if err != nil {
		return [2]int{}, nil, err
	}
	if vg.relError > GeometryErrorBudget {
		warn = &GeometryError{Vowel: vowel, RelError: vg.relError, Budget: GeometryErrorBudget}
	}

	oy, ox := g.InteriorOrigin()
	centerRow := oy + g.DomainH/2
	prevTop, prevBot := -1, -1

	trueLen := float64(VowelSections) * VowelSectionLen
	sectionIdx := 0
	sectionBoundary := VowelSectionLen

	for col := 0; col < vg.totalCells; col++ {
		axialDist := float64(col) * ds
		if sectionIdx < VowelSections-1 && axialDist > sectionBoundary+0.5*ds {
			sectionIdx++
			sectionBoundary = float64(sectionIdx+1) * VowelSectionLen
			if sectionBoundary > trueLen {
				sectionBoundary = trueLen
			}
		}
		n := vg.nCells[sectionIdx]
		radius := (n-1)/2 + 1
		c := ox + col
		top := centerRow - radius
		bot := centerRow + radius

		for r := top + 1; r < bot; r++ {
			g.SetKind(r, c, cell.Air)
		}
		g.SetKind(top, c, cell.Wall)
		g.SetKind(bot, c, cell.Wall)

		if prevTop >= 0 {
			fillGap(g, prevTop, top, c-1, c)
			fillGap(g, prevBot, bot, c-1, c)
		}
		prevTop, prevBot = top, bot
	}

	// Excitation column at the glottal end, spanning the first
	// section's diameter, walled immediately above/below.
	n0 := vg.nCells[0]
	r0 := (n0-1)/2 + 1
	for r := centerRow - r0 + 1; r < centerRow+r0; r++ {
		g.SetKind(r, ox, cell.Excitation)
	}
	g.SetKind(centerRow-r0, ox, cell.Wall)
	g.SetKind(centerRow+r0, ox, cell.Wall)

	// NoPressure column one cell beyond the lip end, spanning the
	// last section's diameter + 2.
	nLast := vg.nCells[VowelSections-1]
	rLast := (nLast-1)/2 + 1
	lipCol := ox + vg.totalCells
	if lipCol < g.W-1 {
		for r := centerRow - rLast; r <= centerRow+rLast; r++ {
			g.SetKind(r, lipCol, cell.NoPressure)
		}
	}

	listener = [2]int{centerRow, ox + vg.totalCells - 1}
	return listener, warn, nil
}

// fillGap stamps Wall cells at column curCol on every row from prevRow
// to curRow inclusive whenever the wall row changes between adjacent
// columns, so the tube stays fluid-tight (spec.md §4.3 item 5). Where
// the tube widens, this also walls off the new column's outer rows, so
// the wider section takes effect one column later.
func fillGap(g *grid.Grid, prevRow, curRow, prevCol, curCol int) {
	if prevRow == curRow {
		return
	}
	lo, hi := prevRow, curRow
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo; r <= hi; r++ {
		g.SetKind(r, curCol, cell.Wall)
	}
}
