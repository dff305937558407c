// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/emer/tubefield/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFramesWithDeadAndPml(t *testing.T) {
	g := New(10, 12, true, 3, true)
	require.Equal(t, 10+2*(1+3), g.H)
	require.Equal(t, 12+2*(1+3), g.W)

	assert.Equal(t, cell.Dead, g.Kind(0, 0))
	assert.Equal(t, cell.Dead, g.Kind(0, g.W-1))
	assert.Equal(t, cell.Dead, g.Kind(g.H-1, 0))

	oy, ox := g.InteriorOrigin()
	assert.Equal(t, 4, oy)
	assert.Equal(t, 4, ox)
	assert.Equal(t, cell.Air, g.Kind(oy, ox)) // not stamped yet -> zero value Air
}

func TestPmlGradingOuterToInner(t *testing.T) {
	g := New(20, 20, true, 5, true)
	// ring 0 (just inside Dead) must be Pml[layers-1]; innermost ring Pml[0].
	assert.Equal(t, cell.Pml(4), g.Kind(1, 1))
	assert.Equal(t, cell.Pml(0), g.Kind(5, 5))
}

func TestNoPmlMeansSingleDeadRing(t *testing.T) {
	g := New(10, 10, false, 0, true)
	require.Equal(t, 12, g.H)
	require.Equal(t, 12, g.W)
	oy, ox := g.InteriorOrigin()
	assert.Equal(t, 1, oy)
	assert.Equal(t, 1, ox)
}

func TestSwapExchangesBuffersNotContent(t *testing.T) {
	g := New(4, 4, false, 0, true)
	cur := g.Cur
	next := g.Next
	g.Swap()
	assert.Same(t, cur, g.Next)
	assert.Same(t, next, g.Cur)
}

func TestSetKindOverridesFrame(t *testing.T) {
	g := New(6, 6, true, 2, true)
	oy, ox := g.InteriorOrigin()
	g.SetKind(oy, ox, cell.Wall)
	assert.Equal(t, cell.Wall, g.Kind(oy, ox))
}
