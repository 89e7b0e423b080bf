package encode

import (
	"sort"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
)

// LoadLevels returns the even load levels a robot with threshold t can hold,
// starting at 0. Levels above the threshold are unreachable and get no fluent.
func LoadLevels(t core.Threshold) []int {
	var levels []int
	for l := 0; l <= int(t); l += 2 {
		levels = append(levels, l)
	}
	return levels
}

// SlotLoads returns the load totals reachable holding exactly n containers,
// ignoring thresholds: sums of n weight classes, deduplicated and ascending.
func SlotLoads(n int) []int {
	sums := map[int]bool{0: true}
	for i := 0; i < n; i++ {
		next := make(map[int]bool)
		for s := range sums {
			for _, w := range core.WeightClasses() {
				next[s+int(w)] = true
			}
		}
		sums = next
	}
	out := make([]int, 0, len(sums))
	for s := range sums {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// LoadStep is one admissible load-level transition for a single transfer:
// the slot the container enters or leaves, and the robot's load level before
// and after. Transitions are enumerated ahead of time so every precondition
// is a fixed formula, never arithmetic evaluated during planning.
type LoadStep struct {
	Slot   int // 1-based slot position
	Before int // load level before the transfer
	After  int // load level after the transfer
}

// PickupSteps enumerates the admissible combinations for r picking up a
// container of weight w: the container enters slot s, so the prior load must
// be reachable with s-1 containers, and the new load must stay within the
// robot's threshold. An empty result means no legal pickup exists.
func PickupSteps(r *core.Robot, w core.WeightClass) []LoadStep {
	var steps []LoadStep
	for s := 1; s <= r.Slots; s++ {
		for _, before := range SlotLoads(s - 1) {
			after := before + int(w)
			if after > int(r.MaxLoad) {
				continue
			}
			steps = append(steps, LoadStep{Slot: s, Before: before, After: after})
		}
	}
	return steps
}

// PutdownSteps enumerates the admissible combinations for r putting down its
// top container of weight w from slot s: the prior load must be reachable
// with s containers one of which weighs w, within the robot's threshold.
func PutdownSteps(r *core.Robot, w core.WeightClass) []LoadStep {
	var steps []LoadStep
	for s := 1; s <= r.Slots; s++ {
		for _, rest := range SlotLoads(s - 1) {
			before := rest + int(w)
			if before > int(r.MaxLoad) {
				continue
			}
			steps = append(steps, LoadStep{Slot: s, Before: before, After: rest})
		}
	}
	return steps
}
