// Package sim replays action sequences against planning instances,
// checking applicability and state consistency at every step.
package sim

import (
	"fmt"

	"github.com/elektrokombinacija/dwr-planning/internal/encode"
	"github.com/elektrokombinacija/dwr-planning/internal/ground"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
)

// Step records one applied action and the state it produced.
type Step struct {
	Action *ground.Action
	State  encode.State
	Snap   *encode.Snapshot
}

// Trace is the record of a full replay.
type Trace struct {
	Instance *problem.Instance
	Steps    []Step
	GoalMet  bool
}

// Final returns the state after the last step, or the initial state for
// an empty plan.
func (tr *Trace) Final() encode.State {
	if len(tr.Steps) == 0 {
		return tr.Instance.Init
	}
	return tr.Steps[len(tr.Steps)-1].State
}

// Replay applies plan to the instance's initial state. It fails on the
// first inapplicable action or inconsistent intermediate state, so a
// trace that comes back is physically legal throughout.
func Replay(in *problem.Instance, plan ground.Plan) (*Trace, error) {
	state := in.Init.Clone()
	tr := &Trace{Instance: in, Steps: make([]Step, 0, len(plan))}
	for i, a := range plan {
		if a == nil {
			return nil, fmt.Errorf("step %d: nil action", i+1)
		}
		if !a.Applicable(state) {
			return nil, fmt.Errorf("step %d: %s is not applicable", i+1, a.Name)
		}
		state = a.Apply(state)
		snap, err := in.Vocabulary.Decode(state)
		if err != nil {
			return nil, fmt.Errorf("step %d: %s left an inconsistent state: %v", i+1, a.Name, err)
		}
		tr.Steps = append(tr.Steps, Step{Action: a, State: state, Snap: snap})
	}
	tr.GoalMet = in.GoalSatisfied(state)
	return tr, nil
}

// ReplayNames resolves planner-style action names against the instance
// before replaying.
func ReplayNames(in *problem.Instance, names []string) (*Trace, error) {
	plan := make(ground.Plan, 0, len(names))
	for i, n := range names {
		a, ok := in.Action(n)
		if !ok {
			return nil, fmt.Errorf("step %d: unknown action %q", i+1, n)
		}
		plan = append(plan, a)
	}
	return Replay(in, plan)
}

// Validate replays plan and additionally requires the goal to hold in
// the final state.
func Validate(in *problem.Instance, plan ground.Plan) (*Trace, error) {
	tr, err := Replay(in, plan)
	if err != nil {
		return nil, err
	}
	if !tr.GoalMet {
		return nil, fmt.Errorf("plan ends after %d steps without reaching the goal", len(plan))
	}
	return tr, nil
}
