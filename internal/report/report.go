// Package report renders instances, replay traces and stored runs as
// styled terminal text.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
	"github.com/elektrokombinacija/dwr-planning/internal/ground"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
	"github.com/elektrokombinacija/dwr-planning/internal/results"
	"github.com/elektrokombinacija/dwr-planning/internal/sim"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CCCCCC"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	badStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
)

// Instance renders the world layout, the initial placement and the goal.
func Instance(in *problem.Instance) string {
	reg := in.Registry
	lines := []string{
		titleStyle.Render(in.Name),
		dimStyle.Render(fmt.Sprintf("%s occupancy · %d fluents · %d ground actions",
			reg.Occupancy, in.Vocabulary.Len(), len(in.Actions))),
		"",
	}

	snap, err := in.Vocabulary.Decode(in.Init)
	if err != nil {
		lines = append(lines, badStyle.Render(fmt.Sprintf("initial state unreadable: %v", err)))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, headerStyle.Render("Docks"))
	for i := range reg.Docks {
		d := &reg.Docks[i]
		lines = append(lines, fmt.Sprintf("  %s  %s", d.Name, dimStyle.Render(neighborList(reg, d.ID))))
		for _, rs := range snap.Robots {
			if rs.Dock == d.ID {
				lines = append(lines, "    "+robotLine(reg, rs))
			}
		}
		for _, p := range reg.PilesAt(d.ID) {
			lines = append(lines, fmt.Sprintf("    %s: %s", reg.Pile(p).Name, stackLine(reg, snap.Piles[p].Stack)))
		}
	}

	lines = append(lines, "", headerStyle.Render("Goal"))
	lines = append(lines, goalLines(in)...)
	return strings.Join(lines, "\n")
}

// Plan renders a numbered action list.
func Plan(plan ground.Plan) string {
	if len(plan) == 0 {
		return dimStyle.Render("empty plan")
	}
	lines := make([]string, 0, len(plan))
	for i, a := range plan {
		lines = append(lines, fmt.Sprintf("%3d. %s", i+1, a.Name))
	}
	return strings.Join(lines, "\n")
}

// Trace renders a replayed plan step by step with the final layout and
// the goal verdict.
func Trace(tr *sim.Trace) string {
	reg := tr.Instance.Registry
	lines := []string{titleStyle.Render(tr.Instance.Name)}
	for i, step := range tr.Steps {
		lines = append(lines, fmt.Sprintf("%3d. %s", i+1, step.Action.Name))
		if note := stepNote(reg, step); note != "" {
			lines = append(lines, dimStyle.Render("     "+note))
		}
	}
	if tr.GoalMet {
		lines = append(lines, okStyle.Render(fmt.Sprintf("goal reached in %d steps", len(tr.Steps))))
	} else {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("goal not reached after %d steps", len(tr.Steps))))
	}
	if len(tr.Steps) > 0 {
		lines = append(lines, "", headerStyle.Render("Final layout"))
		lines = append(lines, Layout(reg, tr.Steps[len(tr.Steps)-1].Snap))
	}
	return strings.Join(lines, "\n")
}

// Layout renders robot positions and pile stacks from a decoded state.
func Layout(reg *core.Registry, snap *encode.Snapshot) string {
	var lines []string
	for _, rs := range snap.Robots {
		lines = append(lines, fmt.Sprintf("  %s at %s: %s",
			reg.Robot(rs.Robot).Name, reg.Dock(rs.Dock).Name, cargoText(reg, rs)))
	}
	for _, ps := range snap.Piles {
		lines = append(lines, fmt.Sprintf("  %s: %s", reg.Pile(ps.Pile).Name, stackLine(reg, ps.Stack)))
	}
	return strings.Join(lines, "\n")
}

// Run renders one stored run with its plan.
func Run(run *results.Run) string {
	lines := []string{
		titleStyle.Render(run.Scenario),
		fmt.Sprintf("run %s · %s · %s", run.ID, run.Solver, statusStyle(run.Status).Render(run.Status)),
		dimStyle.Render(fmt.Sprintf("%d fluents · %d ground actions · %s · %s",
			run.Fluents, run.Actions, run.Elapsed, run.Created.Format("2006-01-02 15:04:05"))),
	}
	if len(run.Steps) > 0 {
		lines = append(lines, "")
		for i, action := range run.Steps {
			lines = append(lines, fmt.Sprintf("%3d. %s", i+1, action))
		}
	}
	return strings.Join(lines, "\n")
}

// Runs renders a run listing, newest first, as an aligned table.
func Runs(runs []*results.Run) string {
	if len(runs) == 0 {
		return dimStyle.Render("no runs recorded")
	}
	widths := []int{8, len("SCENARIO"), len("SOLVER"), len("STATUS"), len("STEPS"), len("TIME")}
	for _, run := range runs {
		widths[1] = max(widths[1], len(run.Scenario))
		widths[2] = max(widths[2], len(run.Solver))
		widths[3] = max(widths[3], len(run.Status))
		widths[5] = max(widths[5], len(run.Elapsed.String()))
	}
	pad := func(s string, w int) string { return fmt.Sprintf("%-*s", w, s) }

	header := make([]string, 0, 7)
	for i, h := range []string{"ID", "SCENARIO", "SOLVER", "STATUS", "STEPS", "TIME"} {
		header = append(header, pad(h, widths[i]))
	}
	header = append(header, "CREATED")
	lines := []string{headerStyle.Render(strings.Join(header, "  "))}

	for _, run := range runs {
		cols := []string{
			pad(shortID(run.ID), widths[0]),
			pad(run.Scenario, widths[1]),
			pad(run.Solver, widths[2]),
			statusStyle(run.Status).Render(pad(run.Status, widths[3])),
			pad(fmt.Sprintf("%d", run.PlanLen), widths[4]),
			pad(run.Elapsed.String(), widths[5]),
			run.Created.Format("2006-01-02 15:04:05"),
		}
		lines = append(lines, strings.Join(cols, "  "))
	}
	return strings.Join(lines, "\n")
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "solved":
		return okStyle
	case "unsolvable":
		return warnStyle
	case "timeout":
		return badStyle
	}
	return dimStyle
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func neighborList(reg *core.Registry, d core.DockID) string {
	ns := reg.Neighbors(d)
	if len(ns) == 0 {
		return "isolated"
	}
	names := make([]string, len(ns))
	for i, n := range ns {
		names[i] = reg.Dock(n).Name
	}
	return "adj " + strings.Join(names, " ")
}

func robotLine(reg *core.Registry, rs encode.RobotState) string {
	r := reg.Robot(rs.Robot)
	cargo := "empty"
	if len(rs.Cargo) > 0 {
		cargo = fmt.Sprintf("%s, %dt", stackLine(reg, rs.Cargo), rs.Load)
	}
	return fmt.Sprintf("%s (%d slots, max %dt): %s", r.Name, r.Slots, r.MaxLoad, cargo)
}

// stackLine lists containers bottom first.
func stackLine(reg *core.Registry, stack []core.ContainerID) string {
	if len(stack) == 0 {
		return "empty"
	}
	parts := make([]string, len(stack))
	for i, c := range stack {
		parts[i] = containerLabel(reg, c)
	}
	return strings.Join(parts, " ")
}

func containerLabel(reg *core.Registry, c core.ContainerID) string {
	cc := reg.Container(c)
	return fmt.Sprintf("%s(%dt)", cc.Name, cc.Weight)
}

func goalLines(in *problem.Instance) []string {
	if len(in.Goal) == 0 {
		return []string{dimStyle.Render("  (empty, trivially satisfied)")}
	}
	lines := make([]string, 0, len(in.Goal))
	for _, lit := range in.Goal {
		name := in.Vocabulary.Fluent(lit.Fluent).Name
		if !lit.Value {
			name = "not " + name
		}
		lines = append(lines, "  "+name)
	}
	return lines
}

func stepNote(reg *core.Registry, step sim.Step) string {
	a := step.Action
	switch a.Kind {
	case ground.Move:
		return fmt.Sprintf("%s now at %s", reg.Robot(a.Robot).Name, reg.Dock(a.To).Name)
	case ground.Pickup:
		return fmt.Sprintf("%s holds %s, load %dt", reg.Robot(a.Robot).Name,
			containerLabel(reg, a.Container), a.LoadAfter)
	case ground.Putdown:
		return fmt.Sprintf("%s stacked onto %s, load %dt", containerLabel(reg, a.Container),
			reg.Pile(a.Pile).Name, a.LoadAfter)
	}
	return ""
}

func cargoText(reg *core.Registry, rs encode.RobotState) string {
	if len(rs.Cargo) == 0 {
		return "empty"
	}
	return fmt.Sprintf("%s (%dt)", stackLine(reg, rs.Cargo), rs.Load)
}
