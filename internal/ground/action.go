// Package ground instantiates the move, pickup and putdown operators over a
// fluent vocabulary as precondition/effect-annotated action instances.
// Admissible slot and load-level combinations become separate instances, so
// a plan step is always a plain name lookup, never arithmetic.
package ground

import (
	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
)

// Kind classifies an action instance.
type Kind int

const (
	Move Kind = iota
	Pickup
	Putdown
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Pickup:
		return "pickup"
	case Putdown:
		return "putdown"
	default:
		return "unknown"
	}
}

// NoContainer marks an unused supporting-container binding: a pickup from
// the pile floor or a putdown onto an empty pile.
const NoContainer core.ContainerID = -1

// Action is one ground operator instance. Pre and PreNeg list the fluents
// that must be true resp. false for it to apply; Add and Del are the fluents
// it flips. Every instance also carries its entity bindings for display,
// replay and plan parsing.
type Action struct {
	Kind Kind
	Name string

	Robot      core.RobotID
	From, To   core.DockID      // Move only
	Dock       core.DockID      // Pickup/Putdown: the dock acted at
	Container  core.ContainerID // Pickup/Putdown: the container transferred
	Under      core.ContainerID // supporting container, NoContainer when none
	Pile       core.PileID
	Slot       int // robot slot entered or vacated
	LoadBefore int // robot load level before
	LoadAfter  int // robot load level after

	Pre    []encode.FluentID
	PreNeg []encode.FluentID
	Add    []encode.FluentID
	Del    []encode.FluentID
}

func (a *Action) String() string { return a.Name }

// Applicable reports whether a's preconditions hold in s.
func (a *Action) Applicable(s encode.State) bool {
	for _, f := range a.Pre {
		if !s.Holds(f) {
			return false
		}
	}
	for _, f := range a.PreNeg {
		if s.Holds(f) {
			return false
		}
	}
	return true
}

// Apply returns the successor of s under a. Deletes run before adds.
// Callers are expected to check Applicable first.
func (a *Action) Apply(s encode.State) encode.State {
	next := s.Clone()
	for _, f := range a.Del {
		next.Set(f, false)
	}
	for _, f := range a.Add {
		next.Set(f, true)
	}
	return next
}

// Plan is an ordered action sequence as returned by a planner.
type Plan []*Action
