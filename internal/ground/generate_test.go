package ground

import (
	"strings"
	"testing"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
)

func testWorld(t *testing.T, mode core.OccupancyMode) (*core.Registry, *encode.Vocabulary) {
	t.Helper()
	reg, err := core.NewRegistry(core.Config{
		Occupancy: mode,
		Docks: []core.DockSpec{
			{Name: "d1", Adjacent: []string{"d2"}},
			{Name: "d2", Adjacent: []string{"d1", "d3"}},
			{Name: "d3", Adjacent: []string{"d2"}},
		},
		Robots: []core.RobotSpec{
			{Name: "r1", Slots: 1, MaxLoad: 6},
			{Name: "r2", Slots: 2, MaxLoad: 5},
			{Name: "walker", Slots: 0, MaxLoad: 5},
		},
		Piles: []core.PileSpec{
			{Name: "p1", Dock: "d1"},
			{Name: "p2", Dock: "d2"},
		},
		Containers: []core.ContainerSpec{
			{Name: "c1", Weight: 2},
			{Name: "c2", Weight: 4},
			{Name: "c3", Weight: 4},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg, encode.NewVocabulary(reg)
}

func initialState(t *testing.T, reg *core.Registry, voc *encode.Vocabulary) encode.State {
	t.Helper()
	r1, _ := reg.RobotByName("r1")
	r2, _ := reg.RobotByName("r2")
	walker, _ := reg.RobotByName("walker")
	d1, _ := reg.DockByName("d1")
	d2, _ := reg.DockByName("d2")
	d3, _ := reg.DockByName("d3")
	p1, _ := reg.PileByName("p1")
	c1, _ := reg.ContainerByName("c1")
	c2, _ := reg.ContainerByName("c2")
	c3, _ := reg.ContainerByName("c3")

	state, err := voc.Encode(encode.Placement{
		RobotDocks: map[core.RobotID]core.DockID{r1.ID: d1.ID, r2.ID: d2.ID, walker.ID: d3.ID},
		PileStacks: map[core.PileID][]core.ContainerID{
			p1.ID: {c1.ID, c2.ID, c3.ID},
		},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return state
}

func applicable(actions []*Action, s encode.State) []*Action {
	var out []*Action
	for _, a := range actions {
		if a.Applicable(s) {
			out = append(out, a)
		}
	}
	return out
}

func TestGenerateDeterministic(t *testing.T) {
	_, voc := testWorld(t, core.OccupancyShared)
	a := Generate(voc)
	b := Generate(voc)
	if len(a) != len(b) {
		t.Fatalf("action counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Fatalf("action %d differs: %s vs %s", i, a[i].Name, b[i].Name)
		}
	}
}

func TestGenerateMoves(t *testing.T) {
	reg, voc := testWorld(t, core.OccupancyShared)
	actions := Generate(voc)

	moves := 0
	for _, a := range actions {
		if a.Kind == Move {
			moves++
			if !reg.Adjacent(a.From, a.To) {
				t.Errorf("move %s over a non-edge", a.Name)
			}
		}
	}
	// 4 directed edges x 3 robots.
	if moves != 12 {
		t.Errorf("generated %d moves, want 12", moves)
	}
}

func TestGenerateZeroSlotRobot(t *testing.T) {
	reg, voc := testWorld(t, core.OccupancyShared)
	walker, _ := reg.RobotByName("walker")
	for _, a := range Generate(voc) {
		if a.Robot == walker.ID && a.Kind != Move {
			t.Fatalf("zero-slot robot got %s", a.Name)
		}
	}
}

func TestOnlyTopContainerLiftable(t *testing.T) {
	reg, voc := testWorld(t, core.OccupancyShared)
	actions := Generate(voc)
	state := initialState(t, reg, voc)
	c3, _ := reg.ContainerByName("c3")

	for _, a := range applicable(actions, state) {
		if a.Kind == Pickup && a.Container != c3.ID {
			t.Errorf("non-top container liftable: %s", a.Name)
		}
	}
}

func TestPickupFromEmptyPileNeverApplicable(t *testing.T) {
	reg, voc := testWorld(t, core.OccupancyShared)
	actions := Generate(voc)
	state := initialState(t, reg, voc)
	p2, _ := reg.PileByName("p2")

	for _, a := range applicable(actions, state) {
		if a.Kind == Pickup && a.Pile == p2.ID {
			t.Errorf("pickup from empty pile applicable: %s", a.Name)
		}
	}
}

func TestOverweightPickupNeverApplicable(t *testing.T) {
	// r2 has two slots but a 5 t threshold: after one 4 t container it must
	// not be able to lift the second.
	reg, voc := testWorld(t, core.OccupancyShared)
	actions := Generate(voc)
	r2, _ := reg.RobotByName("r2")

	// Walk r2 to d1 and lift the 4 t top container.
	state := initialState(t, reg, voc)
	state = mustApply(t, actions, state, "move(r2,d2,d1)")
	state = mustApply(t, actions, state, "pickup_1_0(r2,c3,c2,p1,d1)")

	snapOK(t, voc, state)
	for _, a := range applicable(actions, state) {
		if a.Kind == Pickup && a.Robot == r2.ID {
			t.Errorf("overweight pickup applicable: %s", a.Name)
		}
	}
}

func TestApplyPreservesInvariants(t *testing.T) {
	for _, mode := range []core.OccupancyMode{core.OccupancyShared, core.OccupancyExclusive} {
		reg, voc := testWorld(t, mode)
		actions := Generate(voc)
		start := initialState(t, reg, voc)

		// Bounded forward exploration: every successor of every visited
		// state must decode cleanly.
		seen := map[string]bool{stateKey(start): true}
		frontier := []encode.State{start}
		visited := 0
		for len(frontier) > 0 && visited < 120 {
			s := frontier[0]
			frontier = frontier[1:]
			visited++
			for _, a := range applicable(actions, s) {
				next := a.Apply(s)
				if err := voc.CheckInvariants(next); err != nil {
					t.Fatalf("%s mode: %s broke an invariant: %v", mode, a.Name, err)
				}
				k := stateKey(next)
				if !seen[k] {
					seen[k] = true
					frontier = append(frontier, next)
				}
			}
		}
		if visited == 0 {
			t.Fatalf("%s mode: no states explored", mode)
		}
	}
}

func TestExclusiveMoveBlocked(t *testing.T) {
	reg, voc := testWorld(t, core.OccupancyExclusive)
	actions := Generate(voc)
	state := initialState(t, reg, voc)

	// All three docks start occupied, so no move is applicable until one
	// robot leaves. Shared mode has no such restriction.
	for _, a := range applicable(actions, state) {
		if a.Kind == Move {
			t.Errorf("move onto an occupied dock applicable: %s", a.Name)
		}
	}

	sharedReg, sharedVoc := testWorld(t, core.OccupancyShared)
	sharedState := initialState(t, sharedReg, sharedVoc)
	sharedMoves := 0
	for _, a := range applicable(Generate(sharedVoc), sharedState) {
		if a.Kind == Move {
			sharedMoves++
		}
	}
	if sharedMoves == 0 {
		t.Error("shared mode should allow moves between occupied docks")
	}
}

func TestActionNamesUnique(t *testing.T) {
	for _, mode := range []core.OccupancyMode{core.OccupancyShared, core.OccupancyExclusive} {
		_, voc := testWorld(t, mode)
		seen := map[string]bool{}
		for _, a := range Generate(voc) {
			if seen[a.Name] {
				t.Errorf("%s mode: duplicate action name %s", mode, a.Name)
			}
			seen[a.Name] = true
		}
	}
}

func TestPickupPutdownRoundTrip(t *testing.T) {
	reg, voc := testWorld(t, core.OccupancyShared)
	actions := Generate(voc)
	start := initialState(t, reg, voc)

	mid := mustApply(t, actions, start, "pickup_1_0(r1,c3,c2,p1,d1)")
	snapOK(t, voc, mid)

	snap, err := voc.Decode(mid)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	r1, _ := reg.RobotByName("r1")
	c3, _ := reg.ContainerByName("c3")
	p1, _ := reg.PileByName("p1")
	rs := snap.Robots[r1.ID]
	if len(rs.Cargo) != 1 || rs.Cargo[0] != c3.ID {
		t.Fatalf("r1 cargo = %v, want [%d]", rs.Cargo, c3.ID)
	}
	if rs.Load != 4 {
		t.Errorf("r1 load = %d, want 4", rs.Load)
	}
	if got := snap.Piles[p1.ID].Stack; len(got) != 2 {
		t.Errorf("p1 stack = %v, want two containers", got)
	}

	end := mustApply(t, actions, mid, "putdown_1_4(r1,c3,c2,p1,d1)")
	if stateKey(end) != stateKey(start) {
		t.Error("putdown did not restore the pre-pickup state")
	}
}

func mustApply(t *testing.T, actions []*Action, s encode.State, name string) encode.State {
	t.Helper()
	for _, a := range actions {
		if a.Name == name {
			if !a.Applicable(s) {
				t.Fatalf("%s not applicable", name)
			}
			return a.Apply(s)
		}
	}
	t.Fatalf("no such action: %s", name)
	return nil
}

func snapOK(t *testing.T, voc *encode.Vocabulary, s encode.State) {
	t.Helper()
	if err := voc.CheckInvariants(s); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func stateKey(s encode.State) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, v := range s {
		if v {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
