// Package problem assembles a registry, an initial assignment, and a
// goal into a fully ground planning instance.
package problem

import (
	"sort"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
	"github.com/elektrokombinacija/dwr-planning/internal/ground"
)

// Literal is one conjunct of a goal: a fluent required to hold or not.
type Literal struct {
	Fluent encode.FluentID
	Value  bool
}

// Instance is a ground planning problem ready for a solver.
type Instance struct {
	Name       string
	Registry   *core.Registry
	Vocabulary *encode.Vocabulary
	Actions    []*ground.Action
	Init       encode.State
	Goal       []Literal

	byName map[string]*ground.Action
}

// Init places every entity by name. Cargo and stack lists run bottom up.
type Init struct {
	RobotDocks map[string]string
	RobotCargo map[string][]string
	PileStacks map[string][]string
}

// Assemble builds the vocabulary and action set for reg, encodes init,
// and compiles goal. Unknown names and ill-formed assignments are
// reported as configuration errors.
func Assemble(name string, reg *core.Registry, init Init, goal []Cond) (*Instance, error) {
	voc := encode.NewVocabulary(reg)
	placement, err := resolveInit(reg, init)
	if err != nil {
		return nil, err
	}
	state, err := voc.Encode(placement)
	if err != nil {
		return nil, core.ConfigErrorf("init", "%v", err)
	}
	return assemble(name, voc, state, goal)
}

// AssembleAssignment builds an instance from an already encoded truth
// assignment. The assignment is validated the same way a decoded state
// is, so a corrupted one (a pile with two tops, a robot in two places)
// is rejected before any planner sees it.
func AssembleAssignment(name string, voc *encode.Vocabulary, state encode.State, goal []Cond) (*Instance, error) {
	return assemble(name, voc, state.Clone(), goal)
}

func assemble(name string, voc *encode.Vocabulary, state encode.State, goal []Cond) (*Instance, error) {
	if err := voc.CheckInvariants(state); err != nil {
		return nil, core.ConfigErrorf("init", "%v", err)
	}
	lits, err := CompileGoal(voc, goal)
	if err != nil {
		return nil, err
	}
	actions := ground.Generate(voc)
	byName := make(map[string]*ground.Action, len(actions))
	for _, a := range actions {
		byName[a.Name] = a
	}
	return &Instance{
		Name:       name,
		Registry:   voc.Registry(),
		Vocabulary: voc,
		Actions:    actions,
		Init:       state,
		Goal:       lits,
		byName:     byName,
	}, nil
}

// Action returns the ground action with the given instance name.
func (in *Instance) Action(name string) (*ground.Action, bool) {
	a, ok := in.byName[name]
	return a, ok
}

// GoalSatisfied reports whether every goal literal holds in s.
func (in *Instance) GoalSatisfied(s encode.State) bool {
	for _, l := range in.Goal {
		if s.Holds(l.Fluent) != l.Value {
			return false
		}
	}
	return true
}

func resolveInit(reg *core.Registry, init Init) (encode.Placement, error) {
	p := encode.Placement{
		RobotDocks: make(map[core.RobotID]core.DockID, len(init.RobotDocks)),
		RobotCargo: make(map[core.RobotID][]core.ContainerID, len(init.RobotCargo)),
		PileStacks: make(map[core.PileID][]core.ContainerID, len(init.PileStacks)),
	}
	for _, name := range sortedKeys(init.RobotDocks) {
		r, ok := reg.RobotByName(name)
		if !ok {
			return encode.Placement{}, core.ConfigErrorf("init", "unknown robot %q", name)
		}
		d, ok := reg.DockByName(init.RobotDocks[name])
		if !ok {
			return encode.Placement{}, core.ConfigErrorf("init", "unknown dock %q", init.RobotDocks[name])
		}
		p.RobotDocks[r.ID] = d.ID
	}
	for _, name := range sortedKeys(init.RobotCargo) {
		r, ok := reg.RobotByName(name)
		if !ok {
			return encode.Placement{}, core.ConfigErrorf("init", "unknown robot %q", name)
		}
		cargo, err := resolveContainers(reg, init.RobotCargo[name])
		if err != nil {
			return encode.Placement{}, err
		}
		p.RobotCargo[r.ID] = cargo
	}
	for _, name := range sortedKeys(init.PileStacks) {
		pl, ok := reg.PileByName(name)
		if !ok {
			return encode.Placement{}, core.ConfigErrorf("init", "unknown pile %q", name)
		}
		stack, err := resolveContainers(reg, init.PileStacks[name])
		if err != nil {
			return encode.Placement{}, err
		}
		p.PileStacks[pl.ID] = stack
	}
	return p, nil
}

func resolveContainers(reg *core.Registry, names []string) ([]core.ContainerID, error) {
	out := make([]core.ContainerID, 0, len(names))
	for _, n := range names {
		c, ok := reg.ContainerByName(n)
		if !ok {
			return nil, core.ConfigErrorf("init", "unknown container %q", n)
		}
		out = append(out, c.ID)
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
