// Package floor assigns 2D world coordinates to docks for drawing.
// Scenarios carry no geometry, so docks are spread on a circle sized to
// keep neighbors a readable distance apart.
package floor

import (
	"math"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
)

// Pos is a point in world coordinates.
type Pos struct {
	X, Y float64
}

const (
	dockSpacing = 170
	pileDrop    = 62
	pileSpread  = 42
)

// Floorplan maps every dock and pile to a fixed position.
type Floorplan struct {
	pos   []Pos // indexed by DockID
	piles []Pos // indexed by PileID
}

// New lays out the registry's docks and their piles.
func New(reg *core.Registry) *Floorplan {
	n := len(reg.Docks)
	f := &Floorplan{pos: make([]Pos, n), piles: make([]Pos, len(reg.Piles))}
	if n > 1 {
		radius := dockSpacing * float64(n) / (2 * math.Pi)
		if radius < 140 {
			radius = 140
		}
		for i := range f.pos {
			angle := 2 * math.Pi * float64(i) / float64(n)
			f.pos[i] = Pos{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		}
	}
	f.placePiles(reg)
	return f
}

// placePiles spreads each dock's piles on the side of the dock facing
// away from the lane network.
func (f *Floorplan) placePiles(reg *core.Registry) {
	for d := range f.pos {
		ids := reg.PilesAt(core.DockID(d))
		if len(ids) == 0 {
			continue
		}
		center := f.pos[d]

		// Outward unit vector; docks sit on a circle around the origin
		ox, oy := 0.0, 1.0
		if r := math.Hypot(center.X, center.Y); r > 1 {
			ox, oy = center.X/r, center.Y/r
		}
		px, py := -oy, ox

		for j, pid := range ids {
			spread := (float64(j) - float64(len(ids)-1)/2) * pileSpread
			f.piles[pid] = Pos{
				X: center.X + ox*pileDrop + px*spread,
				Y: center.Y + oy*pileDrop + py*spread,
			}
		}
	}
}

// Dock returns the position of a dock.
func (f *Floorplan) Dock(d core.DockID) Pos { return f.pos[d] }

// Pile returns the base position of a pile.
func (f *Floorplan) Pile(p core.PileID) Pos { return f.piles[p] }

// Lerp interpolates between two dock positions, alpha in [0,1].
func (f *Floorplan) Lerp(a, b core.DockID, alpha float64) Pos {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	pa, pb := f.pos[a], f.pos[b]
	return Pos{
		X: pa.X + alpha*(pb.X-pa.X),
		Y: pa.Y + alpha*(pb.Y-pa.Y),
	}
}

// Bounds returns the extent of the layout with room for stack
// drawings.
func (f *Floorplan) Bounds() (min, max Pos) {
	if len(f.pos) == 0 {
		return Pos{}, Pos{}
	}
	min, max = f.pos[0], f.pos[0]
	for _, p := range f.pos[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	for _, p := range f.piles {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	const margin = 120
	min.X -= margin
	min.Y -= margin
	max.X += margin
	max.Y += margin
	return min, max
}
