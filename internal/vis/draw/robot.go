package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/floor"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/interact"
)

// Robot colors by capacity threshold
var (
	ColorRobot5  = color.NRGBA{R: 100, G: 200, B: 255, A: 255} // Cyan - lightest
	ColorRobot6  = color.NRGBA{R: 120, G: 220, B: 140, A: 255} // Green
	ColorRobot8  = color.NRGBA{R: 255, G: 150, B: 100, A: 255} // Orange
	ColorRobot10 = color.NRGBA{R: 200, G: 100, B: 255, A: 255} // Purple - heavy lifter
)

// CapacityColor returns the color for a robot capacity threshold.
func CapacityColor(t core.Threshold) color.NRGBA {
	switch t {
	case core.Threshold5:
		return ColorRobot5
	case core.Threshold6:
		return ColorRobot6
	case core.Threshold8:
		return ColorRobot8
	case core.Threshold10:
		return ColorRobot10
	default:
		return ColorRobot5
	}
}

// DrawRobot draws a robot platform with its cargo stacked on top,
// bottom slot first.
func DrawRobot(gtx layout.Context, pos floor.Pos, robot *core.Robot, cargo []core.ContainerID, reg *core.Registry, camera *interact.Camera) {
	x, y := camera.ToScreen(pos)
	size := float32(14) * camera.Zoom

	drawRect(gtx, x, y, size*1.6, size, CapacityColor(robot.MaxLoad))

	boxW := size * 1.2
	boxH := size * 0.45
	for i, c := range cargo {
		cy := y - size/2 - boxH/2 - float32(i)*(boxH+camera.Zoom)
		drawRect(gtx, x, cy, boxW, boxH, WeightColor(reg.Container(c).Weight))
	}
}

// DrawRobots draws every robot at its drawn position. positions is
// indexed by RobotID.
func DrawRobots(gtx layout.Context, reg *core.Registry, snap *encode.Snapshot, positions []floor.Pos, camera *interact.Camera) {
	for i := range reg.Robots {
		r := &reg.Robots[i]
		DrawRobot(gtx, positions[r.ID], r, snap.Robots[r.ID].Cargo, reg, camera)
	}
}
