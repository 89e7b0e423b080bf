package ground

import (
	"fmt"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
)

// Generate instantiates every legal ground action for voc's registry, in a
// deterministic order. Static preconditions (adjacency, pile location,
// weight and capacity flags) prune the enumeration and still appear in each
// instance's Pre, so every instance is self-describing.
func Generate(voc *encode.Vocabulary) []*Action {
	reg := voc.Registry()
	var actions []*Action

	for _, r := range reg.Robots {
		for _, from := range reg.Docks {
			for _, to := range reg.Neighbors(from.ID) {
				actions = append(actions, newMove(voc, &r, from.ID, to))
			}
		}
	}

	for _, r := range reg.Robots {
		if r.Slots == 0 {
			continue
		}
		for _, c := range reg.Containers {
			pickSteps := encode.PickupSteps(&r, c.Weight)
			putSteps := encode.PutdownSteps(&r, c.Weight)
			for _, p := range reg.Piles {
				for _, st := range pickSteps {
					actions = append(actions, newPickup(voc, &r, &c, NoContainer, &p, st))
					for _, u := range reg.Containers {
						if u.ID == c.ID {
							continue
						}
						actions = append(actions, newPickup(voc, &r, &c, u.ID, &p, st))
					}
				}
				for _, st := range putSteps {
					actions = append(actions, newPutdown(voc, &r, &c, NoContainer, &p, st))
					for _, u := range reg.Containers {
						if u.ID == c.ID {
							continue
						}
						actions = append(actions, newPutdown(voc, &r, &c, u.ID, &p, st))
					}
				}
			}
		}
	}
	return actions
}

func newMove(voc *encode.Vocabulary, r *core.Robot, from, to core.DockID) *Action {
	reg := voc.Registry()
	a := &Action{
		Kind:  Move,
		Name:  fmt.Sprintf("move(%s,%s,%s)", r.Name, reg.Dock(from).Name, reg.Dock(to).Name),
		Robot: r.ID,
		From:  from,
		To:    to,
	}
	adj, _ := voc.Adjacent(from, to)
	a.Pre = append(a.Pre, adj, voc.RobotAt(r.ID, from))
	a.Add = append(a.Add, voc.RobotAt(r.ID, to))
	a.Del = append(a.Del, voc.RobotAt(r.ID, from))
	if reg.Exclusive() {
		occFrom, _ := voc.Occupied(from)
		occTo, _ := voc.Occupied(to)
		a.PreNeg = append(a.PreNeg, occTo)
		a.Add = append(a.Add, occTo)
		a.Del = append(a.Del, occFrom)
	}
	return a
}

func newPickup(voc *encode.Vocabulary, r *core.Robot, c *core.Container, under core.ContainerID, p *core.Pile, st encode.LoadStep) *Action {
	reg := voc.Registry()
	a := &Action{
		Kind:       Pickup,
		Name:       transferName("pickup", reg, r, c, under, p, st),
		Robot:      r.ID,
		Dock:       p.Dock,
		Container:  c.ID,
		Under:      under,
		Pile:       p.ID,
		Slot:       st.Slot,
		LoadBefore: st.Before,
		LoadAfter:  st.After,
	}

	carry, _ := voc.CanCarry(r.ID, st.Slot)
	before, _ := voc.RobotWeight(r.ID, st.Before)
	after, _ := voc.RobotWeight(r.ID, st.After)
	slotF, _ := voc.InSlot(r.ID, c.ID, st.Slot)
	hasF, _ := voc.HasContainer(r.ID, st.Slot)

	a.Pre = append(a.Pre,
		voc.PileAtDock(p.ID),
		voc.RobotAt(r.ID, p.Dock),
		voc.RobotCapacity(r.ID),
		voc.ContainerWeight(c.ID),
		carry,
		before,
		voc.InPile(c.ID, p.ID),
		voc.OnTop(c.ID, p.ID),
	)
	a.Add = append(a.Add, slotF, hasF, after)
	a.Del = append(a.Del,
		voc.InPile(c.ID, p.ID),
		voc.OnTop(c.ID, p.ID),
		before,
	)

	if st.Slot == 1 {
		a.Pre = append(a.Pre, voc.RobotFree(r.ID))
		a.Del = append(a.Del, voc.RobotFree(r.ID))
	} else {
		below, _ := voc.HasContainer(r.ID, st.Slot-1)
		a.Pre = append(a.Pre, below)
		a.PreNeg = append(a.PreNeg, hasF)
	}

	if under == NoContainer {
		a.Pre = append(a.Pre, voc.AtBottom(c.ID, p.ID))
		a.Add = append(a.Add, voc.PileEmpty(p.ID))
		a.Del = append(a.Del, voc.AtBottom(c.ID, p.ID))
	} else {
		u := voc.Under(under, c.ID, p.ID)
		a.Pre = append(a.Pre, u)
		a.Add = append(a.Add, voc.OnTop(under, p.ID))
		a.Del = append(a.Del, u)
	}
	return a
}

func newPutdown(voc *encode.Vocabulary, r *core.Robot, c *core.Container, under core.ContainerID, p *core.Pile, st encode.LoadStep) *Action {
	a := &Action{
		Kind:       Putdown,
		Name:       transferName("putdown", voc.Registry(), r, c, under, p, st),
		Robot:      r.ID,
		Dock:       p.Dock,
		Container:  c.ID,
		Under:      under,
		Pile:       p.ID,
		Slot:       st.Slot,
		LoadBefore: st.Before,
		LoadAfter:  st.After,
	}

	carry, _ := voc.CanCarry(r.ID, st.Slot)
	before, _ := voc.RobotWeight(r.ID, st.Before)
	after, _ := voc.RobotWeight(r.ID, st.After)
	slotF, _ := voc.InSlot(r.ID, c.ID, st.Slot)
	hasF, _ := voc.HasContainer(r.ID, st.Slot)

	a.Pre = append(a.Pre,
		voc.PileAtDock(p.ID),
		voc.RobotAt(r.ID, p.Dock),
		voc.ContainerWeight(c.ID),
		carry,
		before,
		slotF,
		hasF,
	)
	a.Add = append(a.Add,
		voc.InPile(c.ID, p.ID),
		voc.OnTop(c.ID, p.ID),
		after,
	)
	a.Del = append(a.Del, slotF, hasF, before)

	// Only the highest occupied slot unloads.
	if st.Slot < r.Slots {
		above, _ := voc.HasContainer(r.ID, st.Slot+1)
		a.PreNeg = append(a.PreNeg, above)
	}
	if st.Slot == 1 {
		a.Add = append(a.Add, voc.RobotFree(r.ID))
	}

	if under == NoContainer {
		a.Pre = append(a.Pre, voc.PileEmpty(p.ID))
		a.Add = append(a.Add, voc.AtBottom(c.ID, p.ID))
		a.Del = append(a.Del, voc.PileEmpty(p.ID))
	} else {
		a.Pre = append(a.Pre, voc.OnTop(under, p.ID))
		a.Add = append(a.Add, voc.Under(under, c.ID, p.ID))
		a.Del = append(a.Del, voc.OnTop(under, p.ID))
	}
	return a
}

// transferName builds the unique instance name for a pickup or putdown:
// the slot and prior load level join the operator name, the bound entities
// the argument list, with the supporting container omitted when absent.
func transferName(op string, reg *core.Registry, r *core.Robot, c *core.Container, under core.ContainerID, p *core.Pile, st encode.LoadStep) string {
	dock := reg.Dock(p.Dock).Name
	if under == NoContainer {
		return fmt.Sprintf("%s_%d_%d(%s,%s,%s,%s)", op, st.Slot, st.Before, r.Name, c.Name, p.Name, dock)
	}
	return fmt.Sprintf("%s_%d_%d(%s,%s,%s,%s,%s)", op, st.Slot, st.Before, r.Name, c.Name, reg.Container(under).Name, p.Name, dock)
}
