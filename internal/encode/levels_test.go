package encode

import (
	"reflect"
	"testing"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
)

func TestLoadLevels(t *testing.T) {
	tests := []struct {
		threshold core.Threshold
		want      []int
	}{
		{core.Threshold5, []int{0, 2, 4}},
		{core.Threshold6, []int{0, 2, 4, 6}},
		{core.Threshold8, []int{0, 2, 4, 6, 8}},
		{core.Threshold10, []int{0, 2, 4, 6, 8, 10}},
	}
	for _, tt := range tests {
		got := LoadLevels(tt.threshold)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("LoadLevels(%d) = %v, want %v", tt.threshold, got, tt.want)
		}
	}
}

func TestSlotLoads(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{0, []int{0}},
		{1, []int{2, 4, 6}},
		{2, []int{4, 6, 8, 10, 12}},
		{3, []int{6, 8, 10, 12, 14, 16, 18}},
	}
	for _, tt := range tests {
		got := SlotLoads(tt.n)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SlotLoads(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestPickupSteps(t *testing.T) {
	r := &core.Robot{Name: "r", Slots: 2, MaxLoad: core.Threshold6}
	got := PickupSteps(r, core.Weight2)
	want := []LoadStep{
		{Slot: 1, Before: 0, After: 2},
		{Slot: 2, Before: 2, After: 4},
		{Slot: 2, Before: 4, After: 6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PickupSteps(2t) = %v, want %v", got, want)
	}
}

func TestPickupStepsRejectsOverweight(t *testing.T) {
	// A 5 t robot holding one 4 t container must have no way to take a second.
	r := &core.Robot{Name: "r", Slots: 2, MaxLoad: core.Threshold5}
	steps := PickupSteps(r, core.Weight4)
	if len(steps) != 1 || steps[0] != (LoadStep{Slot: 1, Before: 0, After: 4}) {
		t.Fatalf("PickupSteps(4t) = %v, want only the empty-robot step", steps)
	}
	for _, st := range steps {
		if st.Before == 4 {
			t.Errorf("step %v admits a second 4 t container over threshold 5", st)
		}
	}
}

func TestPickupStepsHeavyContainer(t *testing.T) {
	r := &core.Robot{Name: "r", Slots: 1, MaxLoad: core.Threshold5}
	if steps := PickupSteps(r, core.Weight6); len(steps) != 0 {
		t.Errorf("6 t pickup on a 5 t robot: got %v, want none", steps)
	}
}

func TestPutdownSteps(t *testing.T) {
	r := &core.Robot{Name: "r", Slots: 2, MaxLoad: core.Threshold6}
	got := PutdownSteps(r, core.Weight4)
	want := []LoadStep{
		{Slot: 1, Before: 4, After: 0},
		{Slot: 2, Before: 6, After: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PutdownSteps(4t) = %v, want %v", got, want)
	}
}

func TestStepsZeroSlotRobot(t *testing.T) {
	r := &core.Robot{Name: "r", Slots: 0, MaxLoad: core.Threshold10}
	if steps := PickupSteps(r, core.Weight2); len(steps) != 0 {
		t.Errorf("zero-slot pickup steps = %v, want none", steps)
	}
	if steps := PutdownSteps(r, core.Weight2); len(steps) != 0 {
		t.Errorf("zero-slot putdown steps = %v, want none", steps)
	}
}
