// Package state holds the visualization state: a replayed plan, the
// dock floorplan, and playback position over the plan's steps.
package state

import (
	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/encode"
	"github.com/elektrokombinacija/dwr-planning/internal/ground"
	"github.com/elektrokombinacija/dwr-planning/internal/sim"
	"github.com/elektrokombinacija/dwr-planning/internal/vis/floor"
)

// State drives one visualization session.
type State struct {
	Trace    *sim.Trace
	Floor    *floor.Floorplan
	Playback *Playback

	// snaps[i] is the decoded world after i completed steps.
	snaps []*encode.Snapshot
}

// New builds the state for a replayed trace.
func New(tr *sim.Trace) (*State, error) {
	initial, err := tr.Instance.Vocabulary.Decode(tr.Instance.Init)
	if err != nil {
		return nil, err
	}
	snaps := make([]*encode.Snapshot, 0, len(tr.Steps)+1)
	snaps = append(snaps, initial)
	for _, step := range tr.Steps {
		snaps = append(snaps, step.Snap)
	}
	return &State{
		Trace:    tr,
		Floor:    floor.New(tr.Instance.Registry),
		Playback: NewPlayback(len(tr.Steps)),
		snaps:    snaps,
	}, nil
}

// Registry returns the world the trace runs over.
func (s *State) Registry() *core.Registry { return s.Trace.Instance.Registry }

// Snapshot returns the decoded world at the playback position, counting
// only fully completed steps.
func (s *State) Snapshot() *encode.Snapshot {
	return s.snaps[s.Playback.Completed()]
}

// CurrentState returns the boolean state after the completed steps.
func (s *State) CurrentState() encode.State {
	i := s.Playback.Completed()
	if i == 0 {
		return s.Trace.Instance.Init
	}
	return s.Trace.Steps[i-1].State
}

// InFlight returns the action currently animating, or nil between steps
// and at the ends of the plan.
func (s *State) InFlight() *ground.Action {
	i, frac := s.Playback.Position()
	if frac <= 0 || i >= len(s.Trace.Steps) {
		return nil
	}
	return s.Trace.Steps[i].Action
}

// RobotPositions returns every robot's drawn position, indexed by
// RobotID. A robot mid-move glides between its two docks; everyone else
// sits at their dock.
func (s *State) RobotPositions() []floor.Pos {
	snap := s.Snapshot()
	positions := make([]floor.Pos, len(snap.Robots))
	for i, rs := range snap.Robots {
		positions[i] = s.Floor.Dock(rs.Dock)
	}
	if a := s.InFlight(); a != nil && a.Kind == ground.Move {
		_, frac := s.Playback.Position()
		positions[a.Robot] = s.Floor.Lerp(a.From, a.To, frac)
	}
	return positions
}

// History returns the dock positions a robot has visited so far, ending
// with its current drawn position. Used for trails.
func (s *State) History(r core.RobotID) []floor.Pos {
	completed := s.Playback.Completed()
	var history []floor.Pos
	last := core.DockID(-1)
	for i := 0; i <= completed; i++ {
		d := s.snaps[i].Robots[r].Dock
		if d != last {
			history = append(history, s.Floor.Dock(d))
			last = d
		}
	}
	history = append(history, s.RobotPositions()[r])
	return history
}
