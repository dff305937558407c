// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export writes a finished listener trace to disk. It runs
// once after the step loop stops; nothing in this package is called
// from the hot path (spec.md's file-I/O Non-goals apply to the engine,
// not to this post-processing step).
package export

import (
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWav encodes samples (raw pressure, any amplitude range) as a
// 16-bit mono PCM WAV file at sampleRate Hz, normalizing so the loudest
// sample hits full scale. It is the inverse of the wav decode this
// codebase otherwise used for sound input.
func WriteWav(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	scale := 1.0
	if peak > 0 {
		scale = 32767.0 / peak
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   make([]int, len(samples)),
	}
	for i, s := range samples {
		v := int(math.Round(s * scale))
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		buf.Data[i] = v
	}

	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
