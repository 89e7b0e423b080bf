package encode

import (
	"sort"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
)

// unknownKey returns the smallest out-of-range key in m, so repeated
// validation of the same placement names the same offender.
func unknownKey[K ~int, V any](n int, m map[K]V) (K, bool) {
	var bad []K
	for k := range m {
		if int(k) < 0 || int(k) >= n {
			bad = append(bad, k)
		}
	}
	if len(bad) == 0 {
		return 0, false
	}
	sort.Slice(bad, func(i, j int) bool { return bad[i] < bad[j] })
	return bad[0], true
}

// Placement is a complete model-level world layout: where every robot is,
// what it carries (bottom slot first) and every pile's stack (bottom first).
// Piles and cargo lists absent from the maps are empty.
type Placement struct {
	RobotDocks map[core.RobotID]core.DockID
	RobotCargo map[core.RobotID][]core.ContainerID
	PileStacks map[core.PileID][]core.ContainerID
}

// Encode produces the full truth assignment for p. Every fluent gets an
// explicit value; anything p does not imply is false, statics come from the
// registry. Placements the vocabulary cannot express, such as cargo beyond
// the slot count or a load with no level fluent, fail with
// *core.ConfigurationError. Encode does not cross-check the placement
// against the invariants; that is Decode's job.
func (v *Vocabulary) Encode(p Placement) (State, error) {
	reg := v.reg
	s := v.NewState()

	for _, f := range v.fluents {
		if f.Static {
			s[f.ID] = true
		}
	}

	if r, ok := unknownKey(len(reg.Robots), p.RobotDocks); ok {
		return nil, core.ConfigErrorf("init", "placement names unknown robot %d", r)
	}
	if r, ok := unknownKey(len(reg.Robots), p.RobotCargo); ok {
		return nil, core.ConfigErrorf("init", "placement names unknown robot %d", r)
	}
	if pid, ok := unknownKey(len(reg.Piles), p.PileStacks); ok {
		return nil, core.ConfigErrorf("init", "placement names unknown pile %d", pid)
	}

	for _, r := range reg.Robots {
		dock, ok := p.RobotDocks[r.ID]
		if !ok {
			return nil, core.ConfigErrorf("init", "robot %s has no dock", r.Name)
		}
		if int(dock) < 0 || int(dock) >= len(reg.Docks) {
			return nil, core.ConfigErrorf("init", "robot %s placed at unknown dock %d", r.Name, dock)
		}
		s.Set(v.RobotAt(r.ID, dock), true)
		if f, ok := v.Occupied(dock); ok {
			s.Set(f, true)
		}

		cargo := p.RobotCargo[r.ID]
		if len(cargo) > r.Slots {
			return nil, core.ConfigErrorf("init", "robot %s holds %d containers but has %d slots", r.Name, len(cargo), r.Slots)
		}
		load := 0
		for i, c := range cargo {
			if int(c) < 0 || int(c) >= len(reg.Containers) {
				return nil, core.ConfigErrorf("init", "robot %s holds unknown container %d", r.Name, c)
			}
			slot := i + 1
			sf, _ := v.InSlot(r.ID, c, slot)
			s.Set(sf, true)
			hf, _ := v.HasContainer(r.ID, slot)
			s.Set(hf, true)
			load += int(reg.Container(c).Weight)
		}
		wf, ok := v.RobotWeight(r.ID, load)
		if !ok {
			return nil, core.ConfigErrorf("init", "robot %s load %d t exceeds its %d t threshold", r.Name, load, r.MaxLoad)
		}
		s.Set(wf, true)
		if len(cargo) == 0 {
			s.Set(v.RobotFree(r.ID), true)
		}
	}

	for _, pile := range reg.Piles {
		stack := p.PileStacks[pile.ID]
		if len(stack) == 0 {
			s.Set(v.PileEmpty(pile.ID), true)
			continue
		}
		for i, c := range stack {
			if int(c) < 0 || int(c) >= len(reg.Containers) {
				return nil, core.ConfigErrorf("init", "pile %s contains unknown container %d", pile.Name, c)
			}
			if i > 0 && stack[i-1] == c {
				return nil, core.ConfigErrorf("init", "pile %s stacks container %s on itself", pile.Name, reg.Container(c).Name)
			}
			s.Set(v.InPile(c, pile.ID), true)
			if i == 0 {
				s.Set(v.AtBottom(c, pile.ID), true)
			}
			if i == len(stack)-1 {
				s.Set(v.OnTop(c, pile.ID), true)
			}
			if i > 0 {
				s.Set(v.Under(stack[i-1], c, pile.ID), true)
			}
		}
	}
	return s, nil
}

// RobotState is the decoded view of one robot.
type RobotState struct {
	Robot core.RobotID
	Dock  core.DockID
	Cargo []core.ContainerID // bottom slot first
	Load  int                // tonnes
}

// PileState is the decoded view of one pile.
type PileState struct {
	Pile  core.PileID
	Stack []core.ContainerID // bottom first
}

// Snapshot is the structured model recovered from a boolean state.
// Robots and Piles are indexed by their IDs.
type Snapshot struct {
	Robots []RobotState
	Piles  []PileState
}

// Decode maps a truth assignment back to the structured model. It fails with
// *core.ConfigurationError if s is not the image of any legal model state:
// flipped statics, a robot in two places, two pile tops, a slot occupied
// above a hole, a load or count over capacity, a container in two holders.
// Together with Encode this realizes the boolean/model bijection.
func (v *Vocabulary) Decode(s State) (*Snapshot, error) {
	if len(s) != len(v.fluents) {
		return nil, core.ConfigErrorf("state", "assignment covers %d of %d fluents", len(s), len(v.fluents))
	}
	reg := v.reg

	type slotKey struct {
		r core.RobotID
		s int
	}
	robotDocks := make(map[core.RobotID][]core.DockID)
	occupied := make(map[core.DockID]bool)
	robotFree := make(map[core.RobotID]bool)
	robotLevels := make(map[core.RobotID][]int)
	slotFlags := make(map[slotKey]bool)
	slotContents := make(map[slotKey][]core.ContainerID)
	pileMembers := make(map[core.PileID][]core.ContainerID)
	pileTops := make(map[core.PileID][]core.ContainerID)
	pileBottoms := make(map[core.PileID][]core.ContainerID)
	pileAbove := make(map[core.PileID]map[core.ContainerID]core.ContainerID)
	pileBelowSeen := make(map[core.PileID]map[core.ContainerID]bool)
	pileEmpty := make(map[core.PileID]bool)

	for _, f := range v.fluents {
		if f.Static {
			if !s[f.ID] {
				return nil, core.ConfigErrorf("state", "static fluent %s is false", f.Name)
			}
			continue
		}
		if !s[f.ID] {
			continue
		}
		switch f.Family {
		case FamRobotAt:
			robotDocks[f.Robot] = append(robotDocks[f.Robot], f.Dock)
		case FamOccupied:
			occupied[f.Dock] = true
		case FamRobotFree:
			robotFree[f.Robot] = true
		case FamRobotWeight:
			robotLevels[f.Robot] = append(robotLevels[f.Robot], f.Level)
		case FamRobotHasContainer:
			slotFlags[slotKey{f.Robot, f.Level}] = true
		case FamContainerInSlot:
			k := slotKey{f.Robot, f.Level}
			slotContents[k] = append(slotContents[k], f.Container)
		case FamContainerInPile:
			pileMembers[f.Pile] = append(pileMembers[f.Pile], f.Container)
		case FamContainerOnTop:
			pileTops[f.Pile] = append(pileTops[f.Pile], f.Container)
		case FamContainerAtBottom:
			pileBottoms[f.Pile] = append(pileBottoms[f.Pile], f.Container)
		case FamContainerUnder:
			above := pileAbove[f.Pile]
			if above == nil {
				above = make(map[core.ContainerID]core.ContainerID)
				pileAbove[f.Pile] = above
			}
			if _, dup := above[f.Container]; dup {
				return nil, core.ConfigErrorf("state", "container %s supports two containers in pile %s",
					reg.Container(f.Container).Name, reg.Pile(f.Pile).Name)
			}
			above[f.Container] = f.Container2
			below := pileBelowSeen[f.Pile]
			if below == nil {
				below = make(map[core.ContainerID]bool)
				pileBelowSeen[f.Pile] = below
			}
			if below[f.Container2] {
				return nil, core.ConfigErrorf("state", "container %s rests on two containers in pile %s",
					reg.Container(f.Container2).Name, reg.Pile(f.Pile).Name)
			}
			below[f.Container2] = true
		case FamPileEmpty:
			pileEmpty[f.Pile] = true
		}
	}

	holders := make(map[core.ContainerID]int)
	snap := &Snapshot{
		Robots: make([]RobotState, len(reg.Robots)),
		Piles:  make([]PileState, len(reg.Piles)),
	}

	for _, r := range reg.Robots {
		docks := robotDocks[r.ID]
		if len(docks) != 1 {
			return nil, core.ConfigErrorf("state", "robot %s is at %d docks", r.Name, len(docks))
		}

		var cargo []core.ContainerID
		load := 0
		ended := false
		for slot := 1; slot <= r.Slots; slot++ {
			k := slotKey{r.ID, slot}
			contents := slotContents[k]
			if !slotFlags[k] {
				ended = true
				if len(contents) != 0 {
					return nil, core.ConfigErrorf("state", "robot %s slot %d holds a container but is flagged empty", r.Name, slot)
				}
				continue
			}
			if ended {
				return nil, core.ConfigErrorf("state", "robot %s slot %d is occupied above an empty slot", r.Name, slot)
			}
			if len(contents) != 1 {
				return nil, core.ConfigErrorf("state", "robot %s slot %d holds %d containers", r.Name, slot, len(contents))
			}
			cargo = append(cargo, contents[0])
			load += int(reg.Container(contents[0]).Weight)
			holders[contents[0]]++
		}

		levels := robotLevels[r.ID]
		if len(levels) != 1 {
			return nil, core.ConfigErrorf("state", "robot %s has %d weight levels", r.Name, len(levels))
		}
		if levels[0] != load {
			return nil, core.ConfigErrorf("state", "robot %s weight level %d does not match its %d t cargo", r.Name, levels[0], load)
		}
		if free := robotFree[r.ID]; free != (len(cargo) == 0) {
			return nil, core.ConfigErrorf("state", "robot %s free flag is %v with %d containers held", r.Name, free, len(cargo))
		}

		snap.Robots[r.ID] = RobotState{Robot: r.ID, Dock: docks[0], Cargo: cargo, Load: load}
	}

	if reg.Exclusive() {
		robotsAt := make(map[core.DockID]int)
		for _, rs := range snap.Robots {
			robotsAt[rs.Dock]++
		}
		for _, d := range reg.Docks {
			if robotsAt[d.ID] > 1 {
				return nil, core.ConfigErrorf("state", "dock %s hosts %d robots under exclusive occupancy", d.Name, robotsAt[d.ID])
			}
			if occupied[d.ID] != (robotsAt[d.ID] == 1) {
				return nil, core.ConfigErrorf("state", "dock %s occupancy flag is %v with %d robots present", d.Name, occupied[d.ID], robotsAt[d.ID])
			}
		}
	}

	for _, pile := range reg.Piles {
		members := pileMembers[pile.ID]
		memberSet := make(map[core.ContainerID]bool, len(members))
		for _, c := range members {
			memberSet[c] = true
			holders[c]++
		}

		if len(members) == 0 {
			if !pileEmpty[pile.ID] {
				return nil, core.ConfigErrorf("state", "pile %s has no containers but is not flagged empty", pile.Name)
			}
			if len(pileTops[pile.ID]) != 0 || len(pileBottoms[pile.ID]) != 0 || len(pileAbove[pile.ID]) != 0 {
				return nil, core.ConfigErrorf("state", "empty pile %s has stack relations", pile.Name)
			}
			snap.Piles[pile.ID] = PileState{Pile: pile.ID}
			continue
		}

		if pileEmpty[pile.ID] {
			return nil, core.ConfigErrorf("state", "pile %s is flagged empty but holds %d containers", pile.Name, len(members))
		}
		tops := pileTops[pile.ID]
		if len(tops) != 1 {
			return nil, core.ConfigErrorf("state", "pile %s has %d top containers", pile.Name, len(tops))
		}
		bottoms := pileBottoms[pile.ID]
		if len(bottoms) != 1 {
			return nil, core.ConfigErrorf("state", "pile %s has %d bottom containers", pile.Name, len(bottoms))
		}
		if !memberSet[tops[0]] || !memberSet[bottoms[0]] {
			return nil, core.ConfigErrorf("state", "pile %s top or bottom is not a member of the pile", pile.Name)
		}
		for blw, abv := range pileAbove[pile.ID] {
			if !memberSet[blw] || !memberSet[abv] {
				return nil, core.ConfigErrorf("state", "pile %s has a support relation with a non-member", pile.Name)
			}
		}

		// Walk the support chain bottom to top; it must visit every member.
		stack := []core.ContainerID{bottoms[0]}
		seen := map[core.ContainerID]bool{bottoms[0]: true}
		for {
			next, ok := pileAbove[pile.ID][stack[len(stack)-1]]
			if !ok {
				break
			}
			if seen[next] {
				return nil, core.ConfigErrorf("state", "pile %s support chain has a cycle", pile.Name)
			}
			seen[next] = true
			stack = append(stack, next)
		}
		if len(stack) != len(members) {
			return nil, core.ConfigErrorf("state", "pile %s support chain covers %d of %d containers", pile.Name, len(stack), len(members))
		}
		if stack[len(stack)-1] != tops[0] {
			return nil, core.ConfigErrorf("state", "pile %s support chain does not end at its top container", pile.Name)
		}

		snap.Piles[pile.ID] = PileState{Pile: pile.ID, Stack: stack}
	}

	for _, c := range reg.Containers {
		if holders[c.ID] != 1 {
			return nil, core.ConfigErrorf("state", "container %s is held by %d structures", c.Name, holders[c.ID])
		}
	}

	return snap, nil
}

// CheckInvariants verifies every domain invariant against s; nil means s is
// the image of a legal model state.
func (v *Vocabulary) CheckInvariants(s State) error {
	_, err := v.Decode(s)
	return err
}
