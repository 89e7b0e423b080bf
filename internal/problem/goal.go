package problem

import (
	"fmt"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
)

// CondKind selects which relation a goal condition constrains.
type CondKind int

const (
	RobotAt CondKind = iota
	RobotFree
	ContainerInPile
	ContainerOnTop
	ContainerOn
	ContainerHeldBy
	PileEmpty
)

func (k CondKind) String() string {
	switch k {
	case RobotAt:
		return "robot_at"
	case RobotFree:
		return "robot_free"
	case ContainerInPile:
		return "container_in_pile"
	case ContainerOnTop:
		return "container_on_top"
	case ContainerOn:
		return "container_on"
	case ContainerHeldBy:
		return "container_held_by"
	case PileEmpty:
		return "pile_empty"
	}
	return fmt.Sprintf("CondKind(%d)", int(k))
}

// Cond is one goal condition, phrased with entity names. Which fields
// matter depends on Kind; Under names the container directly beneath
// for ContainerOn, and Slot picks the cargo slot for ContainerHeldBy
// (optional on single-slot robots).
type Cond struct {
	Kind      CondKind
	Robot     string
	Dock      string
	Container string
	Under     string
	Pile      string
	Slot      int
	Negated   bool
}

// CompileGoal turns the conditions into fluent literals. Duplicates
// collapse; a condition contradicting an earlier one is an error.
func CompileGoal(voc *encode.Vocabulary, conds []Cond) ([]Literal, error) {
	reg := voc.Registry()
	lits := make([]Literal, 0, len(conds))
	want := make(map[encode.FluentID]bool, len(conds))
	for i, c := range conds {
		id, err := c.fluent(reg, voc)
		if err != nil {
			return nil, core.ConfigErrorf("goal", "condition %d (%s): %v", i, c.Kind, err)
		}
		v := !c.Negated
		if prev, ok := want[id]; ok {
			if prev != v {
				return nil, core.ConfigErrorf("goal", "condition %d (%s) contradicts an earlier one", i, c.Kind)
			}
			continue
		}
		want[id] = v
		lits = append(lits, Literal{Fluent: id, Value: v})
	}
	return lits, nil
}

func (c Cond) fluent(reg *core.Registry, voc *encode.Vocabulary) (encode.FluentID, error) {
	switch c.Kind {
	case RobotAt:
		r, err := robotNamed(reg, c.Robot)
		if err != nil {
			return 0, err
		}
		d, err := dockNamed(reg, c.Dock)
		if err != nil {
			return 0, err
		}
		return voc.RobotAt(r.ID, d.ID), nil

	case RobotFree:
		r, err := robotNamed(reg, c.Robot)
		if err != nil {
			return 0, err
		}
		return voc.RobotFree(r.ID), nil

	case ContainerInPile:
		ct, err := containerNamed(reg, c.Container)
		if err != nil {
			return 0, err
		}
		p, err := pileNamed(reg, c.Pile)
		if err != nil {
			return 0, err
		}
		return voc.InPile(ct.ID, p.ID), nil

	case ContainerOnTop:
		ct, err := containerNamed(reg, c.Container)
		if err != nil {
			return 0, err
		}
		p, err := pileNamed(reg, c.Pile)
		if err != nil {
			return 0, err
		}
		return voc.OnTop(ct.ID, p.ID), nil

	case ContainerOn:
		above, err := containerNamed(reg, c.Container)
		if err != nil {
			return 0, err
		}
		below, err := containerNamed(reg, c.Under)
		if err != nil {
			return 0, err
		}
		if above.ID == below.ID {
			return 0, fmt.Errorf("container %s cannot rest on itself", above.Name)
		}
		p, err := pileNamed(reg, c.Pile)
		if err != nil {
			return 0, err
		}
		return voc.Under(below.ID, above.ID, p.ID), nil

	case ContainerHeldBy:
		r, err := robotNamed(reg, c.Robot)
		if err != nil {
			return 0, err
		}
		ct, err := containerNamed(reg, c.Container)
		if err != nil {
			return 0, err
		}
		slot := c.Slot
		if slot == 0 {
			if r.Slots != 1 {
				return 0, fmt.Errorf("robot %s has %d slots, name one", r.Name, r.Slots)
			}
			slot = 1
		}
		id, ok := voc.InSlot(r.ID, ct.ID, slot)
		if !ok {
			return 0, fmt.Errorf("robot %s has no slot %d", r.Name, slot)
		}
		return id, nil

	case PileEmpty:
		p, err := pileNamed(reg, c.Pile)
		if err != nil {
			return 0, err
		}
		return voc.PileEmpty(p.ID), nil
	}
	return 0, fmt.Errorf("unknown condition kind %d", int(c.Kind))
}

func robotNamed(reg *core.Registry, name string) (*core.Robot, error) {
	r, ok := reg.RobotByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown robot %q", name)
	}
	return r, nil
}

func dockNamed(reg *core.Registry, name string) (*core.Dock, error) {
	d, ok := reg.DockByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown dock %q", name)
	}
	return d, nil
}

func pileNamed(reg *core.Registry, name string) (*core.Pile, error) {
	p, ok := reg.PileByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown pile %q", name)
	}
	return p, nil
}

func containerNamed(reg *core.Registry, name string) (*core.Container, error) {
	c, ok := reg.ContainerByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown container %q", name)
	}
	return c, nil
}
