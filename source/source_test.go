// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinusoidFrequency(t *testing.T) {
	cfg := Config{Mode: Sinusoid, Freq: 1000, Dt: 1.0 / 44100.0, N: 44}
	e := Generate(cfg)
	require.Len(t, e, 44)
	assert.InDelta(t, 0.0, e[0], 1e-9)
	// a quarter period of 1 kHz at 44.1 kHz is 11.025 samples
	assert.InDelta(t, 1.0, e[11], 1e-3)
}

func TestGaussianPeaksNearSixTau(t *testing.T) {
	cfg := Config{Mode: Gaussian, Freq: 500, Dt: 1.0 / 44100.0, N: 2000}
	e := Generate(cfg)
	tau := 0.5 / cfg.Freq
	peakSample := int(6 * tau / cfg.Dt)
	assert.InDelta(t, 1.0, e[peakSample], 1e-3)
}

func TestImpulseIsDeterministic(t *testing.T) {
	cfg := Config{Mode: Impulse, FMin: 200, FMax: 2000, Dt: 1.0 / 44100.0, N: 512}
	a := Generate(cfg)
	b := Generate(cfg)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestAmplitudeDBGain(t *testing.T) {
	assert.InDelta(t, 1.0, Amplitude(0), 1e-6)
	assert.InDelta(t, 10.0, Amplitude(20), 1e-3)
	assert.InDelta(t, 0.1, Amplitude(-20), 1e-3)
}

func TestAmplitudeDBAppliesToGeneratedSignal(t *testing.T) {
	cfg := Config{Mode: Sinusoid, Freq: 1000, Dt: 1.0 / 44100.0, N: 44, AmplitudeDB: 20}
	e := Generate(cfg)
	peak := 0.0
	for _, v := range e {
		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	assert.InDelta(t, 10.0, peak, 0.2)
}
