// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the simulation configuration surface (spec.md
// §6) and validates it before any simulation runs, per the error
// taxonomy in spec.md §7.
package config

import "fmt"

// Mode selects between pure 2D and 2.5D. The grid's depth planes are
// 1.0 in both modes, so the two produce the same run.
type Mode string

const (
	Mode2D  Mode = "2d"
	Mode25D Mode = "2_5d"
)

// Scene selects which geometry builder constructs the grid.
type Scene string

const (
	SceneOpenAir      Scene = "open_air"
	SceneClosedTube   Scene = "closed_tube"
	SceneVerticalWall Scene = "vertical_wall"
	SceneOpenTube     Scene = "open_tube"
	SceneVowel        Scene = "vowel"
)

// Vowel selects one of the three hard-coded area-function tables.
type Vowel string

const (
	VowelA Vowel = "a"
	VowelU Vowel = "u"
	VowelI Vowel = "i"
)

// SourceKind selects the excitation shape.
type SourceKind string

const (
	SourceSinusoid SourceKind = "sinusoid"
	SourceGaussian SourceKind = "gaussian"
	SourceImpulse  SourceKind = "impulse"
)

// Physical constants from spec.md §6.
const (
	Rho      = 1.140 // kg/m^3
	C        = 350.0 // m/s
	Alpha    = 0.008 // wall reflection coefficient
	SigmaMax = 0.5   // PML grading ceiling
)

// Config is the full set of enumerated run options from spec.md §6.
type Config struct {
	Mode Mode

	PmlOn     bool
	PmlLayers int

	Scene Scene
	Vowel Vowel

	DomainW, DomainH     int // ignored for SceneVowel
	TubeLength, TubeWidth int // closed_tube / open_tube only

	SrateMultiplier int

	Source     SourceKind
	SourceFreq float64 // sinusoid / gaussian
	SourceFMin float64 // impulse
	SourceFMax float64 // impulse

	DurationMs float64
}

// Error is a ConfigError: an out-of-range selector, a non-positive
// dimension, or a geometry that cannot fit in the frame. Reported
// before any simulation runs (spec.md §7).
type Error struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s=%v invalid: %s", e.Field, e.Value, e.Reason)
}

// Validate checks every enumerated option and returns the first
// violation found, or nil if the configuration is runnable.
func (c *Config) Validate() error {
	switch c.Mode {
	case Mode2D, Mode25D:
	default:
		return &Error{Field: "mode", Value: c.Mode, Reason: "must be 2d or 2_5d"}
	}

	if c.PmlOn && c.PmlLayers < 1 {
		return &Error{Field: "pml_layers", Value: c.PmlLayers, Reason: "must be positive when pml is on"}
	}

	switch c.Scene {
	case SceneOpenAir, SceneVerticalWall:
		if c.DomainW <= 0 || c.DomainH <= 0 {
			return &Error{Field: "domain_w/domain_h", Value: [2]int{c.DomainW, c.DomainH}, Reason: "must be positive"}
		}
	case SceneClosedTube, SceneOpenTube:
		if c.DomainW <= 0 || c.DomainH <= 0 {
			return &Error{Field: "domain_w/domain_h", Value: [2]int{c.DomainW, c.DomainH}, Reason: "must be positive"}
		}
		if c.TubeLength <= 0 || c.TubeWidth <= 0 {
			return &Error{Field: "tube_length/tube_width", Value: [2]int{c.TubeLength, c.TubeWidth}, Reason: "must be positive"}
		}
		if c.TubeLength+2 > c.DomainW || c.TubeWidth+2 > c.DomainH {
			return &Error{Field: "tube_length/tube_width", Value: [2]int{c.TubeLength, c.TubeWidth}, Reason: "tube does not fit in requested domain"}
		}
	case SceneVowel:
		switch c.Vowel {
		case VowelA, VowelU, VowelI:
		default:
			return &Error{Field: "vowel", Value: c.Vowel, Reason: "must be a, u, or i"}
		}
	default:
		return &Error{Field: "scene", Value: c.Scene, Reason: "unrecognized scene"}
	}

	if c.PmlLayers > 0 {
		minDim := 2*c.PmlLayers + 4
		if c.Scene != SceneVowel && (c.DomainW < minDim || c.DomainH < minDim) {
			return &Error{Field: "domain_w/domain_h", Value: [2]int{c.DomainW, c.DomainH}, Reason: fmt.Sprintf("must be >= 2*pml_layers+4 (%d)", minDim)}
		}
	}

	if c.SrateMultiplier <= 0 {
		return &Error{Field: "srate_multiplier", Value: c.SrateMultiplier, Reason: "must be positive"}
	}

	switch c.Source {
	case SourceSinusoid, SourceGaussian:
		if c.SourceFreq <= 0 {
			return &Error{Field: "source.freq", Value: c.SourceFreq, Reason: "must be positive"}
		}
	case SourceImpulse:
		if c.SourceFMin <= 0 || c.SourceFMax <= c.SourceFMin {
			return &Error{Field: "source.fmin/fmax", Value: [2]float64{c.SourceFMin, c.SourceFMax}, Reason: "fmax must exceed fmin > 0"}
		}
	default:
		return &Error{Field: "source", Value: c.Source, Reason: "must be sinusoid, gaussian, or impulse"}
	}

	if c.DurationMs <= 0 {
		return &Error{Field: "duration_ms", Value: c.DurationMs, Reason: "must be positive"}
	}

	return nil
}

// SampleRate returns 44100 * SrateMultiplier Hz.
func (c *Config) SampleRate() float64 {
	return 44100.0 * float64(c.SrateMultiplier)
}

// Dt returns the simulation timestep, 1/SampleRate.
func (c *Config) Dt() float64 {
	return 1.0 / c.SampleRate()
}

// Dx returns the CFL-stable grid spacing, c*dt*sqrt(2).
func (c *Config) Dx() float64 {
	return C * c.Dt() * 1.4142135623730951
}

// Steps returns the number of simulation steps for DurationMs.
func (c *Config) Steps() int {
	return int(c.DurationMs * 0.001 * c.SampleRate())
}
