// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source generates the excitation sample sequence E[0..N-1]
// consumed by the FDTD engine (spec.md §4.6): a sinusoid, a Gaussian
// pulse, or a broadband impulse: pseudo-noise band-limited between two
// frequency bounds. Generation is deterministic and reproducible --
// running the same Config twice yields bitwise-identical output
// (spec.md §8, property 6).
package source

import (
	"math"

	"github.com/chewxy/math32"
)

// Mode selects which of the three excitation shapes to generate.
type Mode int

const (
	Sinusoid Mode = iota
	Gaussian
	Impulse
)

// Config describes one excitation sequence.
type Config struct {
	Mode Mode

	// Freq is the drive frequency for Sinusoid and Gaussian (Hz).
	Freq float64
	// FMin, FMax bound the noise band of an Impulse source (Hz).
	FMin, FMax float64

	Dt float64 // simulation timestep, seconds
	N  int     // number of samples to generate

	// AmplitudeDB, if non-zero, is folded into every sample as a
	// linear gain via Amplitude(AmplitudeDB).
	AmplitudeDB float64
}

// Amplitude converts a decibel level to a linear gain, following the
// vocal tract model's own dB convention (trm/VocalTract.go Amplitude).
func Amplitude(decibelLevel float64) float64 {
	return float64(math32.Pow(10.0, float32(decibelLevel)/20.0))
}

// Generate produces the sample sequence E[0..cfg.N-1] for cfg.Mode.
func Generate(cfg Config) []float64 {
	gain := 1.0
	if cfg.AmplitudeDB != 0 {
		gain = Amplitude(cfg.AmplitudeDB)
	}
	var e []float64
	switch cfg.Mode {
	case Sinusoid:
		e = sinusoid(cfg)
	case Gaussian:
		e = gaussianPulse(cfg)
	case Impulse:
		e = broadbandImpulse(cfg)
	default:
		e = make([]float64, cfg.N)
	}
	if gain != 1.0 {
		for i := range e {
			e[i] *= gain
		}
	}
	return e
}

func sinusoid(cfg Config) []float64 {
	e := make([]float64, cfg.N)
	w := 2 * math.Pi * cfg.Freq
	for n := range e {
		e[n] = math.Sin(w * float64(n) * cfg.Dt)
	}
	return e
}

// gaussianPulse implements exp(-((t - 6*tau)/tau)^2), tau = 0.5/f
// (spec.md §4.6b).
func gaussianPulse(cfg Config) []float64 {
	e := make([]float64, cfg.N)
	tau := 0.5 / cfg.Freq
	for n := range e {
		t := float64(n) * cfg.Dt
		x := (t - 6*tau) / tau
		e[n] = math.Exp(-x * x)
	}
	return e
}

// broadbandImpulse builds a band-limited noise sequence N samples long
// between FMin and FMax: a deterministic pseudo-noise source (ported
// from trm/NoiseSource.go) run through two cascaded bandpass filters
// (ported from trm/BandpassFilter.go) centered at the band midpoint
// with bandwidth FMax-FMin, which is how the same DSP primitives shape
// the frication noise band in the original tube model. The cascade
// peaks at the band midpoint, so the response between FMin and FMax is
// not flat.
func broadbandImpulse(cfg Config) []float64 {
	center := 0.5 * (cfg.FMin + cfg.FMax)
	bandwidth := cfg.FMax - cfg.FMin
	sampleRate := 1.0 / cfg.Dt

	var ns NoiseSource
	ns.Reset()
	var bp1, bp2 BandpassFilter
	bp1.Update(sampleRate, bandwidth, center)
	bp2.Update(sampleRate, bandwidth, center)

	e := make([]float64, cfg.N)
	for n := range e {
		v := ns.GetSample()
		v = bp1.Filter(v)
		v = bp2.Filter(v)
		e[n] = v
	}
	return e
}
