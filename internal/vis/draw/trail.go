package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/dwr-planning/internal/vis/floor"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/interact"
)

// DrawTrail draws a fading trail along the docks a robot has visited,
// oldest segment dimmest.
func DrawTrail(gtx layout.Context, history []floor.Pos, camera *interact.Camera, baseColor color.NRGBA, maxWidth float32) {
	if len(history) < 2 {
		return
	}

	n := len(history)
	for i := 0; i < n-1; i++ {
		col := baseColor
		col.A = uint8(50 + float64(i)/float64(n)*150)

		w := maxWidth * camera.Zoom * (0.3 + 0.7*float32(i)/float32(n))

		x1, y1 := camera.ToScreen(history[i])
		x2, y2 := camera.ToScreen(history[i+1])
		drawLine(gtx, x1, y1, x2, y2, w, col)
	}
}
