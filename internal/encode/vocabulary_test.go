package encode

import (
	"testing"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
)

func testRegistry(t *testing.T, mode core.OccupancyMode) *core.Registry {
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
			{Name: "r2", Slots: 2, MaxLoad: 10},
			{Name: "walker", Slots: 0, MaxLoad: 5},
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
			{Name: "c4", Weight: 2},
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func TestVocabularyDeterministic(t *testing.T) {
	a := NewVocabulary(testRegistry(t, core.OccupancyShared))
	b := NewVocabulary(testRegistry(t, core.OccupancyShared))
	if a.Len() != b.Len() {
		t.Fatalf("vocabulary sizes differ: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if a.Fluent(FluentID(i)).Name != b.Fluent(FluentID(i)).Name {
			t.Fatalf("fluent %d differs: %s vs %s", i, a.Fluent(FluentID(i)).Name, b.Fluent(FluentID(i)).Name)
		}
	}
}

func TestVocabularyLookups(t *testing.T) {
	reg := testRegistry(t, core.OccupancyShared)
	voc := NewVocabulary(reg)
	r1, _ := reg.RobotByName("r1")
	r2, _ := reg.RobotByName("r2")
	walker, _ := reg.RobotByName("walker")
	d1, _ := reg.DockByName("d1")
	d3, _ := reg.DockByName("d3")
	c1, _ := reg.ContainerByName("c1")
	p1, _ := reg.PileByName("p1")

	f := voc.Fluent(voc.RobotAt(r1.ID, d1.ID))
	if f.Name != "robot_at(r1,d1)" {
		t.Errorf("robot_at fluent name = %q", f.Name)
	}
	if got := voc.Fluent(voc.ContainerWeight(c1.ID)).Name; got != "container_weight_2(c1)" {
		t.Errorf("container weight fluent = %q", got)
	}

	if _, ok := voc.Adjacent(d1.ID, d3.ID); ok {
		t.Errorf("adjacency fluent exists for a non-edge d1->d3")
	}
	if _, ok := voc.Adjacent(d1.ID, reg.Neighbors(d1.ID)[0]); !ok {
		t.Errorf("adjacency fluent missing for edge out of d1")
	}

	// Load levels are trimmed per robot threshold.
	if _, ok := voc.RobotWeight(r1.ID, 6); !ok {
		t.Errorf("robot_weight_6(r1) missing for threshold 6")
	}
	if _, ok := voc.RobotWeight(r1.ID, 8); ok {
		t.Errorf("robot_weight_8(r1) exists beyond threshold 6")
	}
	if _, ok := voc.RobotWeight(walker.ID, 6); ok {
		t.Errorf("robot_weight_6(walker) exists beyond threshold 5")
	}

	// Slot families stop at the robot's capacity.
	if _, ok := voc.HasContainer(r2.ID, 2); !ok {
		t.Errorf("robot_has_container_2(r2) missing")
	}
	if _, ok := voc.HasContainer(r2.ID, 3); ok {
		t.Errorf("robot_has_container_3(r2) exists beyond 2 slots")
	}
	if _, ok := voc.InSlot(walker.ID, c1.ID, 1); ok {
		t.Errorf("slot fluent exists for a zero-slot robot")
	}
	if _, ok := voc.CanCarry(r1.ID, 1); !ok {
		t.Errorf("robot_can_carry_1(r1) missing")
	}
	if _, ok := voc.CanCarry(r1.ID, 2); ok {
		t.Errorf("robot_can_carry_2(r1) exists beyond 1 slot")
	}

	// Occupancy fluents only exist under exclusive occupancy.
	if _, ok := voc.Occupied(d1.ID); ok {
		t.Errorf("occupied(d1) exists under shared occupancy")
	}
	excl := NewVocabulary(testRegistry(t, core.OccupancyExclusive))
	if _, ok := excl.Occupied(d1.ID); !ok {
		t.Errorf("occupied(d1) missing under exclusive occupancy")
	}

	if got := voc.Fluent(voc.PileEmpty(p1.ID)).Name; got != "pile_empty(p1)" {
		t.Errorf("pile_empty fluent = %q", got)
	}
}
