package problem

import (
	"errors"
	"testing"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
)

func lineConfig() core.Config {
	return core.Config{
		Docks: []core.DockSpec{
			{Name: "d1", Adjacent: []string{"d2"}},
			{Name: "d2", Adjacent: []string{"d1", "d3"}},
			{Name: "d3", Adjacent: []string{"d2"}},
		},
		Robots: []core.RobotSpec{
			{Name: "r1", Slots: 1, MaxLoad: 6},
			{Name: "r2", Slots: 2, MaxLoad: 10},
		},
		Piles: []core.PileSpec{
			{Name: "p1", Dock: "d1"},
			{Name: "p3", Dock: "d3"},
		},
		Containers: []core.ContainerSpec{
			{Name: "c1", Weight: 2},
			{Name: "c2", Weight: 4},
			{Name: "c3", Weight: 6},
		},
	}
}

func lineInit() Init {
	return Init{
		RobotDocks: map[string]string{"r1": "d1", "r2": "d2"},
		PileStacks: map[string][]string{"p1": {"c1", "c2"}, "p3": {"c3"}},
	}
}

func TestAssemble(t *testing.T) {
	reg, err := core.NewRegistry(lineConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	goal := []Cond{{Kind: ContainerInPile, Container: "c2", Pile: "p3"}}
	in, err := Assemble("line", reg, lineInit(), goal)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if in.Name != "line" {
		t.Errorf("Name = %q", in.Name)
	}
	if len(in.Actions) == 0 {
		t.Fatal("no actions generated")
	}
	if _, ok := in.Action("move(r1,d1,d2)"); !ok {
		t.Error("move(r1,d1,d2) missing from the action index")
	}
	if err := in.Vocabulary.CheckInvariants(in.Init); err != nil {
		t.Errorf("initial state invalid: %v", err)
	}
	if len(in.Goal) != 1 || !in.Goal[0].Value {
		t.Fatalf("goal literals = %+v", in.Goal)
	}
	if in.GoalSatisfied(in.Init) {
		t.Error("goal already satisfied in the initial state")
	}
}

func TestGoalSatisfiedInInit(t *testing.T) {
	reg, err := core.NewRegistry(lineConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	in, err := Assemble("noop", reg, lineInit(), []Cond{
		{Kind: RobotAt, Robot: "r1", Dock: "d1"},
		{Kind: ContainerOnTop, Container: "c2", Pile: "p1"},
		{Kind: ContainerOn, Container: "c2", Under: "c1", Pile: "p1"},
		{Kind: RobotFree, Robot: "r2"},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !in.GoalSatisfied(in.Init) {
		t.Error("initial state should satisfy the goal")
	}
}

func TestAssembleRejectsUnknownNames(t *testing.T) {
	reg, err := core.NewRegistry(lineConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	cases := []struct {
		name string
		init Init
		goal []Cond
	}{
		{
			name: "unknown robot",
			init: Init{RobotDocks: map[string]string{"r9": "d1", "r1": "d1", "r2": "d2"}},
		},
		{
			name: "unknown dock",
			init: Init{RobotDocks: map[string]string{"r1": "d9", "r2": "d2"}},
		},
		{
			name: "unknown container in stack",
			init: func() Init {
				in := lineInit()
				in.PileStacks["p1"] = []string{"c1", "c9"}
				return in
			}(),
		},
		{
			name: "unknown pile in goal",
			init: lineInit(),
			goal: []Cond{{Kind: PileEmpty, Pile: "p9"}},
		},
		{
			name: "unknown dock in goal",
			init: lineInit(),
			goal: []Cond{{Kind: RobotAt, Robot: "r1", Dock: "d9"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Assemble("bad", reg, tc.init, tc.goal)
			var ce *core.ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("got %v, want a configuration error", err)
			}
		})
	}
}

func TestAssembleRejectsOverloadedInit(t *testing.T) {
	cfg := lineConfig()
	cfg.Robots[0].Slots = 2
	reg, err := core.NewRegistry(cfg)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	// 4 t + 6 t in r1's two slots exceeds its 6 t threshold.
	init := Init{
		RobotDocks: map[string]string{"r1": "d1", "r2": "d2"},
		RobotCargo: map[string][]string{"r1": {"c2", "c3"}},
		PileStacks: map[string][]string{"p1": {"c1"}},
	}
	_, err = Assemble("bad", reg, init, nil)
	var ce *core.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want a configuration error", err)
	}
}

func TestAssembleAssignmentRejectsTwoTops(t *testing.T) {
	reg, err := core.NewRegistry(lineConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	voc := encode.NewVocabulary(reg)
	r1, _ := reg.RobotByName("r1")
	r2, _ := reg.RobotByName("r2")
	d1, _ := reg.DockByName("d1")
	d2, _ := reg.DockByName("d2")
	p1, _ := reg.PileByName("p1")
	c1, _ := reg.ContainerByName("c1")
	c2, _ := reg.ContainerByName("c2")
	c3, _ := reg.ContainerByName("c3")
	p3, _ := reg.PileByName("p3")

	state, err := voc.Encode(encode.Placement{
		RobotDocks: map[core.RobotID]core.DockID{r1.ID: d1.ID, r2.ID: d2.ID},
		PileStacks: map[core.PileID][]core.ContainerID{
			p1.ID: {c1.ID, c2.ID},
			p3.ID: {c3.ID},
		},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// c2 is the real top of p1; declaring c1 a top as well must fail.
	state.Set(voc.OnTop(c1.ID, p1.ID), true)
	_, err = AssembleAssignment("corrupt", voc, state, nil)
	var ce *core.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want a configuration error", err)
	}
}

func TestCompileGoalContradiction(t *testing.T) {
	reg, err := core.NewRegistry(lineConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	voc := encode.NewVocabulary(reg)
	_, err = CompileGoal(voc, []Cond{
		{Kind: ContainerInPile, Container: "c1", Pile: "p3"},
		{Kind: ContainerInPile, Container: "c1", Pile: "p3", Negated: true},
	})
	var ce *core.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want a configuration error", err)
	}
}

func TestCompileGoalCollapsesDuplicates(t *testing.T) {
	reg, err := core.NewRegistry(lineConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	voc := encode.NewVocabulary(reg)
	lits, err := CompileGoal(voc, []Cond{
		{Kind: PileEmpty, Pile: "p1"},
		{Kind: PileEmpty, Pile: "p1"},
	})
	if err != nil {
		t.Fatalf("CompileGoal: %v", err)
	}
	if len(lits) != 1 {
		t.Fatalf("got %d literals, want 1", len(lits))
	}
}

func TestCompileGoalHeldBySlots(t *testing.T) {
	reg, err := core.NewRegistry(lineConfig())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	voc := encode.NewVocabulary(reg)
	cases := []struct {
		name string
		cond Cond
		ok   bool
	}{
		{"single slot defaults", Cond{Kind: ContainerHeldBy, Robot: "r1", Container: "c1"}, true},
		{"multi slot needs one", Cond{Kind: ContainerHeldBy, Robot: "r2", Container: "c1"}, false},
		{"named slot", Cond{Kind: ContainerHeldBy, Robot: "r2", Container: "c1", Slot: 2}, true},
		{"slot out of range", Cond{Kind: ContainerHeldBy, Robot: "r2", Container: "c1", Slot: 3}, false},
		{"self support rejected", Cond{Kind: ContainerOn, Container: "c1", Under: "c1", Pile: "p1"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CompileGoal(voc, []Cond{tc.cond})
			if tc.ok && err != nil {
				t.Fatalf("CompileGoal: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
