package widgets

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/draw"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/state"
)

var (
	colManifestBg     = color.NRGBA{R: 35, G: 38, B: 42, A: 255}
	colManifestHeader = color.NRGBA{R: 150, G: 180, B: 200, A: 255}
	colManifestText   = color.NRGBA{R: 210, G: 210, B: 210, A: 255}
	colManifestDim    = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
	colGoalMet        = color.NRGBA{R: 120, G: 220, B: 140, A: 255}
	colGoalOpen       = color.NRGBA{R: 230, G: 110, B: 90, A: 255}
)

type manifestRow struct {
	text string
	col  color.NRGBA
}

// Manifest is the side panel listing robot loads, pile stacks and goal
// progress at the current playback position.
type Manifest struct {
	state *state.State
	list  layout.List
}

// NewManifest creates the manifest panel.
func NewManifest(st *state.State) *Manifest {
	return &Manifest{
		state: st,
		list:  layout.List{Axis: layout.Vertical},
	}
}

// Layout renders the panel.
func (m *Manifest) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := 270
	height := gtx.Constraints.Max.Y

	// Background
	rect := image.Rect(0, 0, width, height)
	paint.FillShape(gtx.Ops, colManifestBg, clip.Rect(rect).Op())

	rows := m.rows()

	gtx.Constraints.Max.X = width
	layout.Inset{Top: unit.Dp(8), Left: unit.Dp(10), Right: unit.Dp(10)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return m.list.Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
			return layout.Inset{Bottom: unit.Dp(2)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 12, rows[i].text)
				label.Color = rows[i].col
				return label.Layout(gtx)
			})
		})
	})

	return layout.Dimensions{Size: image.Point{X: width, Y: height}}
}

func (m *Manifest) rows() []manifestRow {
	reg := m.state.Registry()
	snap := m.state.Snapshot()
	cur := m.state.CurrentState()
	voc := m.state.Trace.Instance.Vocabulary

	var rows []manifestRow
	add := func(text string, col color.NRGBA) {
		rows = append(rows, manifestRow{text: text, col: col})
	}

	add("ROBOTS", colManifestHeader)
	for i := range reg.Robots {
		r := &reg.Robots[i]
		rs := snap.Robots[r.ID]
		add(fmt.Sprintf("%s  %s  %d/%dt", r.Name, reg.Dock(rs.Dock).Name, rs.Load, r.MaxLoad), draw.CapacityColor(r.MaxLoad))
		for _, c := range rs.Cargo {
			cont := reg.Container(c)
			add(fmt.Sprintf("    %s (%dt)", cont.Name, cont.Weight), colManifestText)
		}
	}

	add("", colManifestText)
	add("PILES", colManifestHeader)
	for i := range reg.Piles {
		p := &reg.Piles[i]
		add(fmt.Sprintf("%s @ %s: %s", p.Name, reg.Dock(p.Dock).Name, stackText(reg, snap.Piles[p.ID].Stack)), colManifestText)
	}

	add("", colManifestText)
	add("GOAL", colManifestHeader)
	if len(m.state.Trace.Instance.Goal) == 0 {
		add("(empty)", colManifestDim)
	}
	for _, l := range m.state.Trace.Instance.Goal {
		name := voc.Fluent(l.Fluent).Name
		if !l.Value {
			name = "not " + name
		}
		col := colGoalOpen
		if cur.Holds(l.Fluent) == l.Value {
			col = colGoalMet
		}
		add(name, col)
	}

	return rows
}

// stackText lists a stack bottom container first.
func stackText(reg *core.Registry, stack []core.ContainerID) string {
	if len(stack) == 0 {
		return "empty"
	}
	names := make([]string, len(stack))
	for i, c := range stack {
		names[i] = reg.Container(c).Name
	}
	return strings.Join(names, " ")
}
