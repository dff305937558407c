// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWavProducesNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.wav")

	samples := make([]float64, 441)
	for i := range samples {
		samples[i] = 0.5
	}

	require.NoError(t, WriteWav(path, samples, 44100))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(44)) // larger than a bare RIFF header
}

func TestWriteWavHandlesSilentBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "silent.wav")
	samples := make([]float64, 100)
	require.NoError(t, WriteWav(path, samples, 44100))
}
