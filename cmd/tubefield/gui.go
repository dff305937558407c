// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/emer/etable/eplot"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/etview"
	"github.com/emer/tubefield/config"
	"github.com/emer/tubefield/field"
	"github.com/emer/tubefield/grid"
	"github.com/emer/tubefield/observe"
	"github.com/goki/gi/gi"
	"github.com/goki/gi/gimain"
	"github.com/goki/gi/giv"
	"github.com/goki/ki/ki"
)

// Viewer drives the GoGi window while the engine steps: a waveform
// plot of the listener trace and a heatmap of the most recent field
// snapshot, both updated as the engine runs.
type Viewer struct {
	ToolBar        *gi.ToolBar       `view:"-" desc:"the master toolbar"`
	SignalData     *etable.Table     `desc:"listener waveform"`
	WavePlot       *eplot.Plot2D     `view:"-" desc:"waveform plot"`
	SnapshotTensor *etensor.Float64  `view:"-" desc:"most recent pressure-field snapshot, wall cells at field.WallSentinel"`
	SnapshotView   *etview.TensorGrid `view:"-" desc:"snapshot heatmap"`
	Running        bool
}

func (v *Viewer) Defaults() {
	v.SignalData = &etable.Table{}
	v.ConfigSignalData(v.SignalData)
}

func (v *Viewer) ConfigSignalData(dt *etable.Table) {
	dt.SetMetaData("name", "Listener")
	dt.SetMetaData("desc", "Pressure at the listener cell")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(6))

	sch := etable.Schema{
		{"Step", etensor.FLOAT64, nil, nil},
		{"Pressure", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

func (v *Viewer) ConfigWavePlot(plt *eplot.Plot2D, dt *etable.Table) *eplot.Plot2D {
	plt.Params.Title = "Listener pressure"
	plt.Params.XAxisCol = "Step"
	plt.SetTable(dt)
	plt.SetColParams("Pressure", eplot.On, eplot.FloatMin, 0, eplot.FloatMax, 0)
	return plt
}

func (v *Viewer) AppendSample(step int, p float64) {
	row := v.SignalData.AddRows(1)
	v.SignalData.SetCellFloat("Step", row-1, float64(step))
	v.SignalData.SetCellFloat("Pressure", row-1, p)
}

// ConfigSnapshotTensor (re)shapes the snapshot tensor to the grid's
// full H x W extent the first time a snapshot arrives.
func (v *Viewer) ConfigSnapshotTensor(h, w int) {
	v.SnapshotTensor = etensor.NewFloat64([]int{h, w}, nil, nil)
}

// Emit implements field.SnapshotSink: it copies the latest pressure
// frame into the snapshot tensor the heatmap tab displays, leaving
// field.WallSentinel values in place so wall cells render as a
// distinct color from the live fluid.
func (v *Viewer) Emit(step int, g *grid.Grid, p []float64) {
	if v.SnapshotTensor == nil || len(v.SnapshotTensor.Values) != len(p) {
		v.ConfigSnapshotTensor(g.H, g.W)
		if v.SnapshotView != nil {
			v.SnapshotView.SetTensor(v.SnapshotTensor)
		}
	}
	copy(v.SnapshotTensor.Values, p)
	if v.SnapshotView != nil {
		v.SnapshotView.UpdateSig()
	}
}

func (v *Viewer) ConfigGui() *gi.Window {
	width := 1200
	height := 800

	gi.SetAppName("TubeField")
	gi.SetAppAbout("2D acoustic FDTD wave propagation viewer")

	win := gi.NewMainWindow("tubefield", "TubeField", width, height)

	vp := win.WinViewport2D()
	updt := vp.UpdateStart()

	mfr := win.SetMainFrame()

	tbar := gi.AddNewToolBar(mfr, "tbar")
	tbar.SetStretchMaxWidth()
	v.ToolBar = tbar

	split := gi.AddNewSplitView(mfr, "split")
	split.Dim = gi.X
	split.SetStretchMax()

	sv := giv.AddNewStructView(split, "sv")
	sv.SetStruct(v)

	tview := gi.AddNewTabView(split, "tv")

	plt := tview.AddNewTab(eplot.KiT_Plot2D, "wave").(*eplot.Plot2D)
	v.WavePlot = v.ConfigWavePlot(plt, v.SignalData)

	tg := tview.AddNewTab(etview.KiT_TensorGrid, "snapshot").(*etview.TensorGrid)
	if v.SnapshotTensor == nil {
		v.ConfigSnapshotTensor(1, 1)
	}
	tg.SetTensor(v.SnapshotTensor)
	v.SnapshotView = tg

	tbar.AddAction(gi.ActOpts{Label: "Refresh", Icon: "update"}, win.This(),
		func(recv, send ki.Ki, sig int64, data interface{}) {
			v.WavePlot.GoUpdate()
			v.SnapshotView.UpdateSig()
		})

	appnm := gi.AppName()
	mmen := win.MainMenu
	mmen.ConfigMenus([]string{appnm, "File", "Edit", "Window"})

	amen := win.MainMenu.ChildByName(appnm, 0).(*gi.Action)
	amen.Menu.AddAppMenu(win)

	emen := win.MainMenu.ChildByName("Edit", 1).(*gi.Action)
	emen.Menu.AddCopyCutPaste(win)

	vp.UpdateEndNoSig(updt)

	win.MainMenuUpdated()
	return win
}

// runGui steps the engine to completion on a background goroutine
// while the GoGi event loop owns the main goroutine, appending a
// sample to the plot after every step.
func runGui(cfg *config.Config, g *grid.Grid, eng *field.Engine, excitation []float64, listener [2]int, steps, snapshotEvery int) {
	if snapshotEvery <= 0 {
		snapshotEvery = 1 // the heatmap tab needs a frame to show
	}

	gimain.Main(func() {
		v := &Viewer{}
		v.Defaults()
		win := v.ConfigGui()

		go func() {
			lis := observe.NewListener(listener[0], listener[1])
			for step := 0; step < steps; step++ {
				if err := eng.Step(step, excitation[step], listener, snapshotEvery, lis, v); err != nil {
					fmt.Println(err)
					return
				}
				v.AppendSample(step, lis.Buf[len(lis.Buf)-1])
			}
		}()

		win.StartEventLoop()
	})
}
