// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tubefield runs the 2D acoustic FDTD simulator over one of
// the scenes in package scene, drives the listener trace to a WAV
// file, and optionally shows a live GoGi waveform/snapshot viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/emer/tubefield/cell"
	"github.com/emer/tubefield/coeff"
	"github.com/emer/tubefield/config"
	"github.com/emer/tubefield/export"
	"github.com/emer/tubefield/field"
	"github.com/emer/tubefield/grid"
	"github.com/emer/tubefield/observe"
	"github.com/emer/tubefield/scene"
	"github.com/emer/tubefield/source"
)

func main() {
	cfg := config.Config{}

	var mode, sc, vowel, src string
	var wavOut string
	var snapshotEvery int
	var gui bool

	flag.StringVar(&mode, "mode", "2d", "2d or 2_5d")
	flag.BoolVar(&cfg.PmlOn, "pml", true, "enable the graded PML absorbing boundary")
	flag.IntVar(&cfg.PmlLayers, "pml_layers", 8, "number of PML rings when -pml is set")
	flag.StringVar(&sc, "scene", "open_air", "open_air, closed_tube, open_tube, vertical_wall, or vowel")
	flag.StringVar(&vowel, "vowel", "a", "a, u, or i (scene=vowel only)")
	flag.IntVar(&cfg.DomainW, "domain_w", 80, "interior domain width in cells (ignored for scene=vowel)")
	flag.IntVar(&cfg.DomainH, "domain_h", 60, "interior domain height in cells (ignored for scene=vowel)")
	flag.IntVar(&cfg.TubeLength, "tube_length", 50, "tube length in cells (closed_tube/open_tube only)")
	flag.IntVar(&cfg.TubeWidth, "tube_width", 10, "tube width in cells (closed_tube/open_tube only)")
	flag.IntVar(&cfg.SrateMultiplier, "srate_multiplier", 1, "multiplies the 44100 Hz base sample rate")
	flag.StringVar(&src, "source", "gaussian", "sinusoid, gaussian, or impulse")
	flag.Float64Var(&cfg.SourceFreq, "source_freq", 220.0, "Hz (sinusoid/gaussian)")
	flag.Float64Var(&cfg.SourceFMin, "source_fmin", 100.0, "Hz (impulse)")
	flag.Float64Var(&cfg.SourceFMax, "source_fmax", 4000.0, "Hz (impulse)")
	flag.Float64Var(&cfg.DurationMs, "duration_ms", 50.0, "simulated duration in milliseconds")
	flag.StringVar(&wavOut, "wav", "", "path to write the listener trace as a WAV file (empty skips export)")
	flag.IntVar(&snapshotEvery, "snapshot_every", 0, "emit a full-field snapshot every N steps (0 disables)")
	flag.BoolVar(&gui, "gui", false, "show a live waveform/snapshot viewer")
	flag.Parse()

	cfg.Mode = config.Mode(mode)
	cfg.Scene = config.Scene(sc)
	cfg.Vowel = config.Vowel(vowel)
	cfg.Source = config.SourceKind(src)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	domainH, domainW := cfg.DomainH, cfg.DomainW
	if cfg.Scene == config.SceneVowel {
		var err error
		domainH, domainW, err = scene.VowelDomain(cfg.Vowel, cfg.Dx())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	g := grid.New(domainH, domainW, cfg.PmlOn, cfg.PmlLayers, cfg.Mode == config.Mode2D)
	listener, warn, err := scene.Build(g, &cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if warn != nil {
		fmt.Fprintln(os.Stderr, "warning:", warn)
	}

	reg := cell.NewRegistry(cfg.PmlLayers, config.SigmaMax, cfg.Dt())
	cf := coeff.Derive(g, reg, config.Rho, config.C, cfg.Dt(), cfg.Dx())
	eng := field.NewEngine(g, cf, reg, cfg.Dx(), cfg.Dx(), config.Alpha, config.Rho, config.C, [4]float64{-1, -1, 1, 1})

	steps := cfg.Steps()
	excitation := source.Generate(source.Config{
		Mode: sourceMode(cfg.Source),
		Freq: cfg.SourceFreq,
		FMin: cfg.SourceFMin,
		FMax: cfg.SourceFMax,
		Dt:   cfg.Dt(),
		N:    steps,
	})

	lis := observe.NewListener(listener[0], listener[1])
	var snap *observe.BufferSink
	if snapshotEvery > 0 {
		snap = &observe.BufferSink{}
	}

	if gui {
		runGui(&cfg, g, eng, excitation, listener, steps, snapshotEvery)
		return
	}

	for step := 0; step < steps; step++ {
		var sink field.SnapshotSink
		if snap != nil {
			sink = snap
		}
		if err := eng.Step(step, excitation[step], listener, snapshotEvery, lis, sink); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if wavOut != "" {
		if err := export.WriteWav(wavOut, lis.Buf, int(cfg.SampleRate())); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func sourceMode(k config.SourceKind) source.Mode {
	switch k {
	case config.SourceSinusoid:
		return source.Sinusoid
	case config.SourceImpulse:
		return source.Impulse
	default:
		return source.Gaussian
	}
}
