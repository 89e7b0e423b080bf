package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/floor"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/interact"
)

// Container colors by weight class
var (
	ColorWeight2  = color.NRGBA{R: 120, G: 200, B: 120, A: 255}
	ColorWeight4  = color.NRGBA{R: 240, G: 200, B: 80, A: 255}
	ColorWeight6  = color.NRGBA{R: 230, G: 110, B: 90, A: 255}
	ColorPileBase = color.NRGBA{R: 70, G: 78, B: 88, A: 255}
)

// WeightColor returns the color for a container weight class.
func WeightColor(w core.WeightClass) color.NRGBA {
	switch w {
	case core.Weight2:
		return ColorWeight2
	case core.Weight4:
		return ColorWeight4
	case core.Weight6:
		return ColorWeight6
	default:
		return ColorWeight2
	}
}

// DrawPile draws a pile base plate and its stack growing upward,
// bottom container first.
func DrawPile(gtx layout.Context, base floor.Pos, stack []core.ContainerID, reg *core.Registry, camera *interact.Camera) {
	x, y := camera.ToScreen(base)
	unit := camera.Zoom

	plateH := 5 * unit
	drawRect(gtx, x, y, 26*unit, plateH, ColorPileBase)

	boxW := 20 * unit
	boxH := 8 * unit
	for i, c := range stack {
		cy := y - plateH/2 - boxH/2 - float32(i)*(boxH+unit)
		drawRect(gtx, x, cy, boxW, boxH, WeightColor(reg.Container(c).Weight))
	}
}
