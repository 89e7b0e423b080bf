package sim

import (
	"strings"
	"testing"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/ground"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
)

// threeDockLine is the canonical smoke scenario: two single-slot robots
// with a 6 t threshold, three docks in a line, one pile per dock, one
// container per pile.
func threeDockLine(t *testing.T) *problem.Instance {
	t.Helper()
	reg, err := core.NewRegistry(core.Config{
		Docks: []core.DockSpec{
			{Name: "d1", Adjacent: []string{"d2"}},
			{Name: "d2", Adjacent: []string{"d1", "d3"}},
			{Name: "d3", Adjacent: []string{"d2"}},
		},
		Robots: []core.RobotSpec{
			{Name: "r1", Slots: 1, MaxLoad: 6},
			{Name: "r2", Slots: 1, MaxLoad: 6},
		},
		Piles: []core.PileSpec{
			{Name: "p1", Dock: "d1"},
			{Name: "p2", Dock: "d2"},
			{Name: "p3", Dock: "d3"},
		},
		Containers: []core.ContainerSpec{
			{Name: "c1", Weight: 2},
			{Name: "c2", Weight: 4},
			{Name: "c3", Weight: 6},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	in, err := problem.Assemble("three-dock-line", reg, problem.Init{
		RobotDocks: map[string]string{"r1": "d1", "r2": "d2"},
		PileStacks: map[string][]string{
			"p1": {"c1"},
			"p2": {"c2"},
			"p3": {"c3"},
		},
	}, []problem.Cond{
		{Kind: problem.ContainerInPile, Container: "c1", Pile: "p3"},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return in
}

func TestReplayReachesGoal(t *testing.T) {
	in := threeDockLine(t)
	tr, err := ReplayNames(in, []string{
		"pickup_1_0(r1,c1,p1,d1)",
		"move(r1,d1,d2)",
		"move(r1,d2,d3)",
		"putdown_1_2(r1,c1,c3,p3,d3)",
	})
	if err != nil {
		t.Fatalf("ReplayNames: %v", err)
	}
	if !tr.GoalMet {
		t.Fatal("goal not met after the full plan")
	}
	if len(tr.Steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(tr.Steps))
	}

	// The decoded final snapshot should show c1 on top of p3.
	p3, _ := in.Registry.PileByName("p3")
	c1, _ := in.Registry.ContainerByName("c1")
	stack := tr.Steps[3].Snap.Piles[p3.ID].Stack
	if len(stack) != 2 || stack[1] != c1.ID {
		t.Fatalf("p3 stack = %v, want c1 on top", stack)
	}
}

func TestReplayRejectsPutdownAtWrongDock(t *testing.T) {
	in := threeDockLine(t)
	// p3 lives at d3; trying to put c1 there while still at d2 must fail.
	_, err := ReplayNames(in, []string{
		"pickup_1_0(r1,c1,p1,d1)",
		"move(r1,d1,d2)",
		"putdown_1_2(r1,c1,c3,p3,d3)",
	})
	if err == nil {
		t.Fatal("expected an applicability error")
	}
	if !strings.Contains(err.Error(), "step 3") {
		t.Errorf("error %q does not name the failing step", err)
	}
}

func TestReplayRejectsUnknownAction(t *testing.T) {
	in := threeDockLine(t)
	_, err := ReplayNames(in, []string{"teleport(r1,d1,d3)"})
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Fatalf("got %v, want an unknown-action error", err)
	}
}

func TestValidateRequiresGoal(t *testing.T) {
	in := threeDockLine(t)
	a1, ok := in.Action("pickup_1_0(r1,c1,p1,d1)")
	if !ok {
		t.Fatal("pickup instance missing")
	}
	a2, _ := in.Action("move(r1,d1,d2)")
	if _, err := Validate(in, ground.Plan{a1, a2}); err == nil {
		t.Fatal("expected a goal-not-reached error")
	}
}

func TestReplayEmptyPlan(t *testing.T) {
	in := threeDockLine(t)
	tr, err := Replay(in, nil)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if tr.GoalMet {
		t.Error("empty plan should not satisfy this goal")
	}
	if key := tr.Final(); len(key) != len(in.Init) {
		t.Error("final state of an empty trace should be the initial state")
	}
}
