// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFindsSinusoidPeak(t *testing.T) {
	sr := 44100.0
	freq := 1000.0
	n := 4410
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / sr)
	}
	sp := Compute(samples, sr)
	peaks := Peaks(sp, 1)
	require.Len(t, peaks, 1)
	assert.InDelta(t, freq, peaks[0].Freq, sr/float64(n)*2)
}

func TestWindowedEnergyDecaysToNegativeInfWhenSilent(t *testing.T) {
	samples := make([]float64, 1000)
	for i := 0; i < 500; i++ {
		samples[i] = 1.0
	}
	db := WindowedEnergyDB(samples, 100)
	require.Len(t, db, 10)
	assert.Equal(t, 0.0, db[0])
	assert.True(t, math.IsInf(db[len(db)-1], -1))
}

func TestWindowedEnergyMonotonicDecay(t *testing.T) {
	samples := make([]float64, 800)
	amp := 1.0
	for w := 0; w < 8; w++ {
		for i := 0; i < 100; i++ {
			samples[w*100+i] = amp
		}
		amp *= 0.5
	}
	db := WindowedEnergyDB(samples, 100)
	for i := 1; i < len(db); i++ {
		assert.LessOrEqual(t, db[i], db[i-1])
	}
}
