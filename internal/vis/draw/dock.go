// Package draw renders the dock floor: lanes and dock pads, robots
// with their cargo, and container piles.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/floor"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/interact"
)

// DockRadius is the drawn dock pad radius in floor units.
const DockRadius = 26

// Floor colors
var (
	ColorDock         = color.NRGBA{R: 100, G: 120, B: 140, A: 255}
	ColorDockOccupied = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
	ColorLane         = color.NRGBA{R: 80, G: 90, B: 100, A: 180}
	ColorGrid         = color.NRGBA{R: 50, G: 55, B: 62, A: 255}
)

// DrawFloor renders the lane network and the dock pads. occupied marks
// docks whose pad gets the exclusive-occupancy ring; it may be nil.
func DrawFloor(gtx layout.Context, reg *core.Registry, fl *floor.Floorplan, camera *interact.Camera, occupied []bool) {
	// Lanes first, underneath the pads
	for _, d := range reg.Docks {
		for _, n := range reg.Neighbors(d.ID) {
			// Draw each lane once
			if n < d.ID {
				continue
			}
			DrawLane(gtx, fl.Dock(d.ID), fl.Dock(n), camera, ColorLane)
		}
	}

	for _, d := range reg.Docks {
		DrawDock(gtx, fl.Dock(d.ID), camera, occupied != nil && occupied[d.ID])
	}
}

// DrawDock draws a dock pad, ringed when a robot holds it exclusively.
func DrawDock(gtx layout.Context, pos floor.Pos, camera *interact.Camera, occupied bool) {
	x, y := camera.ToScreen(pos)
	r := float32(DockRadius) * camera.Zoom

	drawFilledCircle(gtx, x, y, r, ColorDock, 24)
	if occupied {
		DrawRing(gtx, x, y, r+4*camera.Zoom, ColorDockOccupied, 2*camera.Zoom)
	}
}

// DrawLane draws a travel lane between two dock positions.
func DrawLane(gtx layout.Context, a, b floor.Pos, camera *interact.Camera, col color.NRGBA) {
	x1, y1 := camera.ToScreen(a)
	x2, y2 := camera.ToScreen(b)
	drawLine(gtx, x1, y1, x2, y2, 2*camera.Zoom, col)
}

// DrawRing draws a circle outline.
func DrawRing(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, strokeWidth float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	// Inner circle cut out as a hole
	innerR := radius - strokeWidth
	if innerR < 0 {
		innerR = 0
	}
	path.Move(f32.Pt(cx+innerR-path.Pos().X, cy-path.Pos().Y))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + innerR*float32(math.Cos(angle))
		y := cy + innerR*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawGrid draws the background grid.
func DrawGrid(gtx layout.Context, camera *interact.Camera, gridSize float64, col color.NRGBA) {
	bounds := gtx.Constraints.Max

	min := camera.ToFloor(0, 0)
	max := camera.ToFloor(float32(bounds.X), float32(bounds.Y))

	startX := math.Floor(min.X/gridSize) * gridSize
	startY := math.Floor(min.Y/gridSize) * gridSize

	for x := startX; x <= max.X; x += gridSize {
		sx, _ := camera.ToScreen(floor.Pos{X: x, Y: min.Y})
		if sx >= 0 && sx <= float32(bounds.X) {
			rect := image.Rect(int(sx), 0, int(sx)+1, bounds.Y)
			paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
		}
	}

	for y := startY; y <= max.Y; y += gridSize {
		_, sy := camera.ToScreen(floor.Pos{X: min.X, Y: y})
		if sy >= 0 && sy <= float32(bounds.Y) {
			rect := image.Rect(0, int(sy), bounds.X, int(sy)+1)
			paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
		}
	}
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, segments int) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawLine(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawRect(gtx layout.Context, cx, cy, width, height float32, col color.NRGBA) {
	halfW := width / 2
	halfH := height / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx-halfW, cy-halfH))
	path.LineTo(f32.Pt(cx+halfW, cy-halfH))
	path.LineTo(f32.Pt(cx+halfW, cy+halfH))
	path.LineTo(f32.Pt(cx-halfW, cy+halfH))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
