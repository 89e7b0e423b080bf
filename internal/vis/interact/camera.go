// Package interact implements the pan and zoom camera for the dock
// floor workspace.
package interact

import (
	"gioui.org/io/pointer"
	"gioui.org/layout"

	"github.com/elektrokombinacija/dwr-planning/internal/vis/floor"
)

// Camera maps floor coordinates to screen pixels.
type Camera struct {
	OffsetX float32 // Pan offset in screen pixels
	OffsetY float32
	Zoom    float32 // Zoom level (1.0 = 100%)

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera with the default view.
func NewCamera() *Camera {
	return &Camera{
		OffsetX: 100,
		OffsetY: 100,
		Zoom:    1.0,
	}
}

// Reset restores the default view.
func (c *Camera) Reset() {
	c.OffsetX = 100
	c.OffsetY = 100
	c.Zoom = 1.0
}

// ToScreen converts a floor position to screen coordinates.
func (c *Camera) ToScreen(p floor.Pos) (screenX, screenY float32) {
	screenX = float32(p.X)*c.Zoom + c.OffsetX
	screenY = float32(p.Y)*c.Zoom + c.OffsetY
	return
}

// ToFloor converts screen coordinates to a floor position.
func (c *Camera) ToFloor(screenX, screenY float32) floor.Pos {
	return floor.Pos{
		X: float64((screenX - c.OffsetX) / c.Zoom),
		Y: float64((screenY - c.OffsetY) / c.Zoom),
	}
}

// HandleEvent processes pointer events for pan and zoom. Dragging with
// the secondary or middle button pans; scrolling zooms around the
// pointer.
func (c *Camera) HandleEvent(gtx layout.Context, ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return
		}
		factor := float32(1.1)
		if ev.Scroll.Y > 0 {
			factor = 1 / factor
		}
		c.ZoomBy(factor, ev.Position.X, ev.Position.Y)
	}
}

// Pan moves the view by the given screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomBy zooms by a factor, keeping the floor point under the given
// screen position fixed.
func (c *Camera) ZoomBy(factor float32, centerX, centerY float32) {
	anchor := c.ToFloor(centerX, centerY)

	c.Zoom = clampZoom(c.Zoom * factor)

	newX, newY := c.ToScreen(anchor)
	c.OffsetX += centerX - newX
	c.OffsetY += centerY - newY
}

// CenterOn centers the view on a floor position.
func (c *Camera) CenterOn(p floor.Pos, screenWidth, screenHeight float32) {
	c.OffsetX = screenWidth/2 - float32(p.X)*c.Zoom
	c.OffsetY = screenHeight/2 - float32(p.Y)*c.Zoom
}

// FitBounds adjusts the view so the given floor bounds fill the screen
// with a margin.
func (c *Camera) FitBounds(min, max floor.Pos, screenWidth, screenHeight, margin float32) {
	worldW := max.X - min.X
	worldH := max.Y - min.Y
	if worldW <= 0 || worldH <= 0 {
		return
	}

	zoomX := (screenWidth - 2*margin) / float32(worldW)
	zoomY := (screenHeight - 2*margin) / float32(worldH)
	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	c.Zoom = clampZoom(zoom)

	center := floor.Pos{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2}
	c.CenterOn(center, screenWidth, screenHeight)
}

func clampZoom(z float32) float32 {
	if z < 0.1 {
		return 0.1
	}
	if z > 10 {
		return 10
	}
	return z
}
