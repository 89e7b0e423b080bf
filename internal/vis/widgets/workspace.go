// Package widgets provides Gio UI widgets for the plan visualizer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/draw"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/interact"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/state"
)

// Workspace is the main 2D view of the dock floor.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
	fitted bool
}

// NewWorkspace creates a new workspace widget.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{
		state:  st,
		camera: camera,
	}
}

// Layout renders the floor at the current playback position.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	// Clip to bounds
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	// Fill background
	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	// Fit the floor into view on the first frame
	if !w.fitted {
		min, max := w.state.Floor.Bounds()
		w.camera.FitBounds(min, max, float32(bounds.X), float32(bounds.Y), 20)
		w.fitted = true
	}

	w.handlePointerEvents(gtx)

	draw.DrawGrid(gtx, w.camera, 50, draw.ColorGrid)

	reg := w.state.Registry()
	snap := w.state.Snapshot()

	draw.DrawFloor(gtx, reg, w.state.Floor, w.camera, w.occupied(reg, snap))

	for i := range reg.Piles {
		p := &reg.Piles[i]
		draw.DrawPile(gtx, w.state.Floor.Pile(p.ID), snap.Piles[p.ID].Stack, reg, w.camera)
	}

	// Trails underneath the robots
	for i := range reg.Robots {
		r := &reg.Robots[i]
		history := w.state.History(r.ID)
		if len(history) > 1 {
			draw.DrawTrail(gtx, history, w.camera, draw.CapacityColor(r.MaxLoad), 3)
		}
	}

	draw.DrawRobots(gtx, reg, snap, w.state.RobotPositions(), w.camera)

	return layout.Dimensions{Size: bounds}
}

// occupied marks docks held by a robot when occupancy is exclusive.
func (w *Workspace) occupied(reg *core.Registry, snap *encode.Snapshot) []bool {
	if !reg.Exclusive() {
		return nil
	}
	occ := make([]bool, len(reg.Docks))
	for _, rs := range snap.Robots {
		occ[rs.Dock] = true
	}
	return occ
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	// Register for pointer events
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.camera.HandleEvent(gtx, pe)
		}
	}
}
