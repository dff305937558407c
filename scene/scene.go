// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene builds grid geometry: open air, fixed and open-ended
// tubes, a vertical reflecting wall, and vowel cross-section tubes
// driven by an area function (spec.md §4.3). Each builder is a pure
// function over an already-allocated *grid.Grid: it stamps cell kinds
// over the interior and reports the listener cell.
package scene

import (
	"github.com/emer/tubefield/cell"
	"github.com/emer/tubefield/config"
	"github.com/emer/tubefield/grid"
)

// OpenAir fills the interior with Air, places a single Excitation cell
// at the center, and reports the listener at that same cell.
func OpenAir(g *grid.Grid) (listener [2]int) {
	oy, ox := g.InteriorOrigin()
	for r := oy; r < oy+g.DomainH; r++ {
		for c := ox; c < ox+g.DomainW; c++ {
			g.SetKind(r, c, cell.Air)
		}
	}
	cr := oy + g.DomainH/2
	cc := ox + g.DomainW/2
	g.SetKind(cr, cc, cell.Excitation)
	return [2]int{cr, cc}
}

// VerticalWall is open air plus a short vertical wall segment a few
// cells to the right of the source, used for reflection tests (S4).
func VerticalWall(g *grid.Grid) (listener [2]int) {
	listener = OpenAir(g)
	cr, cc := listener[0], listener[1]
	segLen := g.DomainH / 4
	if segLen < 1 {
		segLen = 1
	}
	wallCol := cc + g.DomainW/4
	if wallCol >= g.W-2 {
		wallCol = g.W - 2
	}
	top := cr - segLen/2
	for r := top; r < top+segLen; r++ {
		if r > 0 && r < g.H-1 {
			g.SetKind(r, wallCol, cell.Wall)
		}
	}
	return listener
}

// tubeBox stamps a horizontal Air rectangle of tubeWidth rows and
// tubeLength columns, bounded above and below by Wall, with a
// NoPressure column one cell past the open (right) end. glottalWall, if
// true, additionally seals the left end with a Wall column and an
// Excitation column just inside it; otherwise the leftmost tubeWidth
// column is itself the Excitation column (open_tube, spec.md §9).
func tubeBox(g *grid.Grid, tubeLength, tubeWidth int, glottalWall bool) (listener [2]int) {
	oy, ox := g.InteriorOrigin()
	top := oy + (g.DomainH-tubeWidth)/2
	bot := top + tubeWidth - 1
	left := ox
	right := left + tubeLength - 1

	for r := top; r <= bot; r++ {
		for c := left; c <= right; c++ {
			g.SetKind(r, c, cell.Air)
		}
	}
	for c := left - 1; c <= right+1; c++ {
		if top-1 >= 0 {
			g.SetKind(top-1, c, cell.Wall)
		}
		if bot+1 < g.H {
			g.SetKind(bot+1, c, cell.Wall)
		}
	}

	excCol := left
	if glottalWall && left-1 >= 0 {
		for r := top; r <= bot; r++ {
			g.SetKind(r, left-1, cell.Wall)
		}
	}
	for r := top; r <= bot; r++ {
		g.SetKind(r, excCol, cell.Excitation)
	}

	npCol := right + 1
	if npCol < g.W {
		for r := top; r <= bot; r++ {
			g.SetKind(r, npCol, cell.NoPressure)
		}
	}

	return [2]int{(top + bot) / 2, right}
}

// ClosedTube builds a horizontal tube bounded by Wall on three sides
// (top, bottom, glottal/left) with an Excitation column just inside
// the glottal wall and a NoPressure column one cell past the open
// (right, lip) end. Listener is the last interior air cell.
func ClosedTube(g *grid.Grid, tubeLength, tubeWidth int) (listener [2]int) {
	return tubeBox(g, tubeLength, tubeWidth, true)
}

// OpenTube is like ClosedTube but without the glottal wall: the
// leftmost tubeWidth-row column is Excitation directly, so
// tube_width must be supplied explicitly to derive the excitation
// height (spec.md §9's open question on both_ends_open).
func OpenTube(g *grid.Grid, tubeLength, tubeWidth int) (listener [2]int) {
	return tubeBox(g, tubeLength, tubeWidth, false)
}

// Build dispatches to the concrete scene builder named by cfg.Scene,
// returning a ConfigError for an unreachable combination (scene/config
// validation should already have rejected these, but Build never
// trusts the caller blindly).
func Build(g *grid.Grid, cfg *config.Config) (listener [2]int, warn error, err error) {
	switch cfg.Scene {
	case config.SceneOpenAir:
		return OpenAir(g), nil, nil
	case config.SceneVerticalWall:
		return VerticalWall(g), nil, nil
	case config.SceneClosedTube:
		return ClosedTube(g, cfg.TubeLength, cfg.TubeWidth), nil, nil
	case config.SceneOpenTube:
		return OpenTube(g, cfg.TubeLength, cfg.TubeWidth), nil, nil
	case config.SceneVowel:
		return BuildVowelDs(g, cfg.Vowel, cfg.Dx())
	default:
		return [2]int{}, nil, &config.Error{Field: "scene", Value: cfg.Scene, Reason: "unrecognized scene"}
	}
}
