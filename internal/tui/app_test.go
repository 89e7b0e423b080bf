package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elektrokombinacija/dwr-planning/internal/ground"
	"github.com/elektrokombinacija/dwr-planning/internal/planner"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
	"github.com/elektrokombinacija/dwr-planning/internal/results"
	"github.com/elektrokombinacija/dwr-planning/internal/scenario"
)

// scriptedSolver replays a fixed action sequence as its answer.
type scriptedSolver struct {
	names []string
}

func (s *scriptedSolver) Name() string { return "scripted" }

func (s *scriptedSolver) Solve(ctx context.Context, in *problem.Instance) (*planner.Result, error) {
	plan := make(ground.Plan, 0, len(s.names))
	for _, n := range s.names {
		a, ok := in.Action(n)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", n)
		}
		plan = append(plan, a)
	}
	return &planner.Result{Status: planner.Solved, Plan: plan, Elapsed: time.Millisecond}, nil
}

func newTestApp(t *testing.T, opts ...AppOption) *App {
	t.Helper()
	solver := &scriptedSolver{names: []string{
		"pickup_1_0(r1,c1,p1,d1)",
		"move(r1,d1,d2)",
		"move(r1,d2,d3)",
		"putdown_1_2(r1,c1,c3,p3,d3)",
	}}
	return NewApp([]*scenario.Scenario{scenario.ThreeDockLine()}, solver, opts...)
}

func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		nextModel, nextCmd := app.Update(msg)
		app, ok = nextModel.(*App)
		if !ok {
			t.Fatalf("unexpected model type: %T", nextModel)
		}
		cmd = nextCmd
	}
	return app
}

func key(t *testing.T, app *App, k string) *App {
	t.Helper()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	}
	model, cmd := app.Update(msg)
	return runCommands(t, model, cmd)
}

func TestEnterOpensScenario(t *testing.T) {
	app := newTestApp(t)
	app = key(t, app, "enter")
	if app.state != stateDetail {
		t.Fatalf("expected detail state, got %d", app.state)
	}
	if app.in == nil || app.in.Name != "three-dock-line" {
		t.Fatalf("instance not built")
	}
	if app.initial == nil {
		t.Fatalf("initial snapshot missing")
	}
	if !strings.Contains(app.View(), "three-dock-line") {
		t.Fatalf("detail view does not mention the scenario")
	}
}

func TestSolveAndPlayback(t *testing.T) {
	app := newTestApp(t)
	app = key(t, app, "enter")
	app = key(t, app, "s")
	if app.res == nil || app.res.Status != planner.Solved {
		t.Fatalf("solve result missing")
	}
	if app.trace == nil || len(app.trace.Steps) != 4 {
		t.Fatalf("expected 4 replayed steps")
	}
	if !strings.Contains(app.statusMsg, "solved in 4 steps") {
		t.Fatalf("status message %q", app.statusMsg)
	}

	app = key(t, app, "p")
	if app.state != statePlayback {
		t.Fatalf("expected playback state")
	}
	if app.stepIndex != 0 {
		t.Fatalf("playback should start at the initial state")
	}
	if !strings.Contains(app.View(), "initial state") {
		t.Fatalf("playback view missing initial state marker")
	}

	app = key(t, app, "right")
	app = key(t, app, "right")
	if app.stepIndex != 2 {
		t.Fatalf("expected step 2, got %d", app.stepIndex)
	}
	if !strings.Contains(app.View(), "move(r1,d1,d2)") {
		t.Fatalf("playback view missing the applied action")
	}
	app = key(t, app, "left")
	if app.stepIndex != 1 {
		t.Fatalf("expected step 1, got %d", app.stepIndex)
	}

	app = key(t, app, "esc")
	if app.state != stateDetail {
		t.Fatalf("esc should return to detail")
	}
	app = key(t, app, "esc")
	if app.state != stateBrowse {
		t.Fatalf("esc should return to browse")
	}
}

func TestPlaybackIndexClamped(t *testing.T) {
	app := newTestApp(t)
	app = key(t, app, "enter")
	app = key(t, app, "s")
	app = key(t, app, "p")
	for i := 0; i < 10; i++ {
		app = key(t, app, "right")
	}
	if app.stepIndex != 4 {
		t.Fatalf("step index should stop at the last step, got %d", app.stepIndex)
	}
	app = key(t, app, "left")
	app = key(t, app, "left")
	app = key(t, app, "left")
	app = key(t, app, "left")
	app = key(t, app, "left")
	if app.stepIndex != 0 {
		t.Fatalf("step index should stop at zero, got %d", app.stepIndex)
	}
}

func TestSolveRecordsRun(t *testing.T) {
	store, err := results.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	app := newTestApp(t, WithStore(store))
	app = key(t, app, "enter")
	app = key(t, app, "s")

	runs, err := store.Runs("three-dock-line")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(runs))
	}
	if runs[0].Solver != "scripted" || runs[0].PlanLen != 4 {
		t.Fatalf("recorded run %+v", runs[0])
	}
}
