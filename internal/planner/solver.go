// Package planner hands assembled instances to an external classical
// planner and parses its answer back into ground actions.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/elektrokombinacija/dwr-planning/internal/ground"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
)

// Status classifies a finished solve attempt.
type Status int

const (
	Solved Status = iota
	Unsolvable
	Timeout
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case Unsolvable:
		return "unsolvable"
	case Timeout:
		return "timeout"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of one solve attempt. Plan is set only when
// Status is Solved, and then it has already been replayed against the
// instance: every step applicable, every intermediate state consistent,
// the goal reached.
type Result struct {
	Status  Status
	Plan    ground.Plan
	Elapsed time.Duration
	Output  string
}

// Solver produces plans for assembled instances.
type Solver interface {
	Name() string
	Solve(ctx context.Context, in *problem.Instance) (*Result, error)
}

// AdapterError reports a fault in the adapter or the planner process.
// An honest unsolvable or timeout answer is a Result, never an
// AdapterError.
type AdapterError struct {
	Op  string
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("planner adapter: %s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

func adapterErrf(op, format string, args ...any) *AdapterError {
	return &AdapterError{Op: op, Err: fmt.Errorf(format, args...)}
}
