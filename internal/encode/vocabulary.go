package encode

import (
	"fmt"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
)

// Vocabulary enumerates every ground fluent of one registry with dense IDs.
// Static families only contain their true instances (the constants the
// registry fixes); dynamic families contain every instantiation.
type Vocabulary struct {
	reg     *core.Registry
	fluents []Fluent
	ids     map[fluentKey]FluentID
}

type fluentKey struct {
	fam     Family
	a, b, c int
}

// NewVocabulary builds the fluent vocabulary for reg. Enumeration order is
// deterministic, so equal registries produce identical vocabularies.
func NewVocabulary(reg *core.Registry) *Vocabulary {
	v := &Vocabulary{reg: reg, ids: make(map[fluentKey]FluentID)}

	// Static families.
	for _, d := range reg.Docks {
		for _, to := range reg.Neighbors(d.ID) {
			v.add(Fluent{
				Family: FamAdjacent, Static: true,
				Name: fmt.Sprintf("adjacent(%s,%s)", d.Name, reg.Dock(to).Name),
				Dock: d.ID, Dock2: to,
			}, fluentKey{FamAdjacent, int(d.ID), int(to), 0})
		}
	}
	for _, p := range reg.Piles {
		v.add(Fluent{
			Family: FamPileAtDock, Static: true,
			Name: fmt.Sprintf("pile_at_dock(%s,%s)", p.Name, reg.Dock(p.Dock).Name),
			Pile: p.ID, Dock: p.Dock,
		}, fluentKey{FamPileAtDock, int(p.ID), 0, 0})
	}
	for _, c := range reg.Containers {
		v.add(Fluent{
			Family: FamContainerWeight, Static: true,
			Name:      fmt.Sprintf("container_weight_%d(%s)", c.Weight, c.Name),
			Container: c.ID, Level: int(c.Weight),
		}, fluentKey{FamContainerWeight, int(c.ID), 0, 0})
	}
	for _, r := range reg.Robots {
		v.add(Fluent{
			Family: FamRobotCapacity, Static: true,
			Name:  fmt.Sprintf("robot_capacity_%d(%s)", r.MaxLoad, r.Name),
			Robot: r.ID, Level: int(r.MaxLoad),
		}, fluentKey{FamRobotCapacity, int(r.ID), 0, 0})
	}
	for _, r := range reg.Robots {
		for k := 1; k <= r.Slots; k++ {
			v.add(Fluent{
				Family: FamRobotCanCarry, Static: true,
				Name:  fmt.Sprintf("robot_can_carry_%d(%s)", k, r.Name),
				Robot: r.ID, Level: k,
			}, fluentKey{FamRobotCanCarry, int(r.ID), k, 0})
		}
	}

	// Dynamic families.
	for _, r := range reg.Robots {
		for _, d := range reg.Docks {
			v.add(Fluent{
				Family: FamRobotAt,
				Name:   fmt.Sprintf("robot_at(%s,%s)", r.Name, d.Name),
				Robot:  r.ID, Dock: d.ID,
			}, fluentKey{FamRobotAt, int(r.ID), int(d.ID), 0})
		}
	}
	if reg.Exclusive() {
		for _, d := range reg.Docks {
			v.add(Fluent{
				Family: FamOccupied,
				Name:   fmt.Sprintf("occupied(%s)", d.Name),
				Dock:   d.ID,
			}, fluentKey{FamOccupied, int(d.ID), 0, 0})
		}
	}
	for _, r := range reg.Robots {
		v.add(Fluent{
			Family: FamRobotFree,
			Name:   fmt.Sprintf("robot_free(%s)", r.Name),
			Robot:  r.ID,
		}, fluentKey{FamRobotFree, int(r.ID), 0, 0})
	}
	for _, r := range reg.Robots {
		for _, l := range LoadLevels(r.MaxLoad) {
			v.add(Fluent{
				Family: FamRobotWeight,
				Name:   fmt.Sprintf("robot_weight_%d(%s)", l, r.Name),
				Robot:  r.ID, Level: l,
			}, fluentKey{FamRobotWeight, int(r.ID), l, 0})
		}
	}
	for _, r := range reg.Robots {
		for s := 1; s <= r.Slots; s++ {
			v.add(Fluent{
				Family: FamRobotHasContainer,
				Name:   fmt.Sprintf("robot_has_container_%d(%s)", s, r.Name),
				Robot:  r.ID, Level: s,
			}, fluentKey{FamRobotHasContainer, int(r.ID), s, 0})
		}
	}
	for _, r := range reg.Robots {
		for s := 1; s <= r.Slots; s++ {
			for _, c := range reg.Containers {
				v.add(Fluent{
					Family: FamContainerInSlot,
					Name:   fmt.Sprintf("container_in_robot_slot_%d(%s,%s)", s, r.Name, c.Name),
					Robot:  r.ID, Container: c.ID, Level: s,
				}, fluentKey{FamContainerInSlot, int(r.ID), int(c.ID), s})
			}
		}
	}
	for _, c := range reg.Containers {
		for _, p := range reg.Piles {
			v.add(Fluent{
				Family:    FamContainerInPile,
				Name:      fmt.Sprintf("container_in_pile(%s,%s)", c.Name, p.Name),
				Container: c.ID, Pile: p.ID,
			}, fluentKey{FamContainerInPile, int(c.ID), int(p.ID), 0})
		}
	}
	for _, c := range reg.Containers {
		for _, p := range reg.Piles {
			v.add(Fluent{
				Family:    FamContainerOnTop,
				Name:      fmt.Sprintf("container_on_top_of_pile(%s,%s)", c.Name, p.Name),
				Container: c.ID, Pile: p.ID,
			}, fluentKey{FamContainerOnTop, int(c.ID), int(p.ID), 0})
		}
	}
	for _, c := range reg.Containers {
		for _, p := range reg.Piles {
			v.add(Fluent{
				Family:    FamContainerAtBottom,
				Name:      fmt.Sprintf("container_at_bottom(%s,%s)", c.Name, p.Name),
				Container: c.ID, Pile: p.ID,
			}, fluentKey{FamContainerAtBottom, int(c.ID), int(p.ID), 0})
		}
	}
	for _, below := range reg.Containers {
		for _, above := range reg.Containers {
			if below.ID == above.ID {
				continue
			}
			for _, p := range reg.Piles {
				v.add(Fluent{
					Family:    FamContainerUnder,
					Name:      fmt.Sprintf("container_under_in_pile(%s,%s,%s)", below.Name, above.Name, p.Name),
					Container: below.ID, Container2: above.ID, Pile: p.ID,
				}, fluentKey{FamContainerUnder, int(below.ID), int(above.ID), int(p.ID)})
			}
		}
	}
	for _, p := range reg.Piles {
		v.add(Fluent{
			Family: FamPileEmpty,
			Name:   fmt.Sprintf("pile_empty(%s)", p.Name),
			Pile:   p.ID,
		}, fluentKey{FamPileEmpty, int(p.ID), 0, 0})
	}

	return v
}

func (v *Vocabulary) add(f Fluent, k fluentKey) {
	f.ID = FluentID(len(v.fluents))
	v.fluents = append(v.fluents, f)
	v.ids[k] = f.ID
}

func (v *Vocabulary) must(k fluentKey, what string) FluentID {
	id, ok := v.ids[k]
	if !ok {
		panic("encode: no fluent for " + what)
	}
	return id
}

// Registry returns the registry this vocabulary was built from.
func (v *Vocabulary) Registry() *core.Registry { return v.reg }

// Len returns the number of fluents.
func (v *Vocabulary) Len() int { return len(v.fluents) }

// Fluent returns the fluent with the given ID.
func (v *Vocabulary) Fluent(id FluentID) Fluent { return v.fluents[id] }

// Fluents returns all fluents in ID order. Callers must not modify it.
func (v *Vocabulary) Fluents() []Fluent { return v.fluents }

// NewState returns an all-false assignment sized for this vocabulary.
func (v *Vocabulary) NewState() State { return make(State, len(v.fluents)) }

// Adjacent returns the static adjacency fluent for the edge a -> b, if the
// topology has it.
func (v *Vocabulary) Adjacent(a, b core.DockID) (FluentID, bool) {
	id, ok := v.ids[fluentKey{FamAdjacent, int(a), int(b), 0}]
	return id, ok
}

// PileAtDock returns the static location fluent of pile p.
func (v *Vocabulary) PileAtDock(p core.PileID) FluentID {
	return v.must(fluentKey{FamPileAtDock, int(p), 0, 0}, "pile_at_dock")
}

// ContainerWeight returns the static weight-class fluent of container c.
func (v *Vocabulary) ContainerWeight(c core.ContainerID) FluentID {
	return v.must(fluentKey{FamContainerWeight, int(c), 0, 0}, "container_weight")
}

// RobotCapacity returns the static threshold fluent of robot r.
func (v *Vocabulary) RobotCapacity(r core.RobotID) FluentID {
	return v.must(fluentKey{FamRobotCapacity, int(r), 0, 0}, "robot_capacity")
}

// CanCarry returns the static carry fluent robot_can_carry_k(r), if r has at
// least k slots.
func (v *Vocabulary) CanCarry(r core.RobotID, k int) (FluentID, bool) {
	id, ok := v.ids[fluentKey{FamRobotCanCarry, int(r), k, 0}]
	return id, ok
}

// RobotAt returns the location fluent robot_at(r,d).
func (v *Vocabulary) RobotAt(r core.RobotID, d core.DockID) FluentID {
	return v.must(fluentKey{FamRobotAt, int(r), int(d), 0}, "robot_at")
}

// Occupied returns the occupancy fluent of dock d; it only exists under
// exclusive occupancy.
func (v *Vocabulary) Occupied(d core.DockID) (FluentID, bool) {
	id, ok := v.ids[fluentKey{FamOccupied, int(d), 0, 0}]
	return id, ok
}

// RobotFree returns the empty-cargo fluent of robot r.
func (v *Vocabulary) RobotFree(r core.RobotID) FluentID {
	return v.must(fluentKey{FamRobotFree, int(r), 0, 0}, "robot_free")
}

// RobotWeight returns the load-level fluent robot_weight_l(r), if level l is
// within r's threshold.
func (v *Vocabulary) RobotWeight(r core.RobotID, l int) (FluentID, bool) {
	id, ok := v.ids[fluentKey{FamRobotWeight, int(r), l, 0}]
	return id, ok
}

// HasContainer returns the slot-occupied fluent robot_has_container_s(r), if
// r has a slot s.
func (v *Vocabulary) HasContainer(r core.RobotID, s int) (FluentID, bool) {
	id, ok := v.ids[fluentKey{FamRobotHasContainer, int(r), s, 0}]
	return id, ok
}

// InSlot returns the cargo fluent container_in_robot_slot_s(r,c), if r has a
// slot s.
func (v *Vocabulary) InSlot(r core.RobotID, c core.ContainerID, s int) (FluentID, bool) {
	id, ok := v.ids[fluentKey{FamContainerInSlot, int(r), int(c), s}]
	return id, ok
}

// InPile returns the membership fluent container_in_pile(c,p).
func (v *Vocabulary) InPile(c core.ContainerID, p core.PileID) FluentID {
	return v.must(fluentKey{FamContainerInPile, int(c), int(p), 0}, "container_in_pile")
}

// OnTop returns the top-of-pile fluent container_on_top_of_pile(c,p).
func (v *Vocabulary) OnTop(c core.ContainerID, p core.PileID) FluentID {
	return v.must(fluentKey{FamContainerOnTop, int(c), int(p), 0}, "container_on_top_of_pile")
}

// Under returns the support fluent container_under_in_pile(below,above,p).
func (v *Vocabulary) Under(below, above core.ContainerID, p core.PileID) FluentID {
	return v.must(fluentKey{FamContainerUnder, int(below), int(above), int(p)}, "container_under_in_pile")
}

// AtBottom returns the floor fluent container_at_bottom(c,p).
func (v *Vocabulary) AtBottom(c core.ContainerID, p core.PileID) FluentID {
	return v.must(fluentKey{FamContainerAtBottom, int(c), int(p), 0}, "container_at_bottom")
}

// PileEmpty returns the emptiness fluent of pile p.
func (v *Vocabulary) PileEmpty(p core.PileID) FluentID {
	return v.must(fluentKey{FamPileEmpty, int(p), 0, 0}, "pile_empty")
}
