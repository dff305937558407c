// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spectrum turns a listener's recorded pressure trace into a
// power spectrum and windowed energy trace, so the testable properties
// in spec.md §8 (PML absorption decay, closed-tube resonance peaks)
// can be checked without a human looking at a plot.
package spectrum

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is the one-sided power spectrum of a real signal: Freqs[k]
// is the center frequency of Power[k], in Hz.
type Spectrum struct {
	Freqs []float64
	Power []float64
}

// Compute runs a real FFT over samples sampled at sampleRate Hz and
// returns the one-sided power spectrum (grounded on the FFT-then-
// power-from-coefficients pattern used for window spectra elsewhere in
// this codebase).
func Compute(samples []float64, sampleRate float64) Spectrum {
	n := len(samples)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, samples)

	nf := len(coeffs)
	sp := Spectrum{
		Freqs: make([]float64, nf),
		Power: make([]float64, nf),
	}
	for k, c := range coeffs {
		re, im := real(c), imag(c)
		sp.Power[k] = re*re + im*im
		sp.Freqs[k] = float64(k) * sampleRate / float64(n)
	}
	return sp
}

// Peak is one local maximum of a power spectrum.
type Peak struct {
	Freq  float64
	Power float64
}

// Peaks returns up to n local maxima of sp, sorted by descending power.
// A bin is a local maximum if its power exceeds both neighbors; the
// DC bin (k=0) is never reported as a peak.
func Peaks(sp Spectrum, n int) []Peak {
	var all []Peak
	for k := 1; k < len(sp.Power)-1; k++ {
		if sp.Power[k] > sp.Power[k-1] && sp.Power[k] > sp.Power[k+1] {
			all = append(all, Peak{Freq: sp.Freqs[k], Power: sp.Power[k]})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Power > all[j].Power })
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// WindowedEnergyDB splits samples into non-overlapping windows of
// windowSamples each and returns the RMS energy of every window in
// decibels relative to the first window (0 dB at window 0), so a
// caller can check that PML absorption drives the trailing windows
// monotonically down (spec.md §8, property 3).
func WindowedEnergyDB(samples []float64, windowSamples int) []float64 {
	if windowSamples < 1 {
		windowSamples = 1
	}
	nWindows := len(samples) / windowSamples
	if nWindows == 0 {
		return nil
	}
	rms := make([]float64, nWindows)
	for w := 0; w < nWindows; w++ {
		win := samples[w*windowSamples : (w+1)*windowSamples]
		sum := floats.Dot(win, win)
		rms[w] = math.Sqrt(sum / float64(windowSamples))
	}
	ref := rms[0]
	db := make([]float64, nWindows)
	for w, r := range rms {
		if ref == 0 || r == 0 {
			db[w] = math.Inf(-1)
			continue
		}
		db[w] = 20 * math.Log10(r/ref)
	}
	return db
}
