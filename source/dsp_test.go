// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseSourceDeterministicAndBounded(t *testing.T) {
	var a, b NoiseSource
	a.Reset()
	b.Reset()
	for i := 0; i < 100; i++ {
		sa := a.GetSample()
		sb := b.GetSample()
		assert.Equal(t, sa, sb)
		assert.GreaterOrEqual(t, sa, -0.5)
		assert.Less(t, sa, 0.5)
	}
}

func TestBandpassFilterResetClearsState(t *testing.T) {
	var bf BandpassFilter
	bf.Update(44100, 500, 1000)
	for i := 0; i < 10; i++ {
		bf.Filter(1.0)
	}
	bf.Reset()
	assert.Equal(t, 0.0, bf.Filter(0.0))
}
