package planner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/dwr-planning/internal/ground"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
	"github.com/elektrokombinacija/dwr-planning/internal/sim"
)

// External runs a planner binary over PDDL files in a scratch
// directory. The zero value is not usable; set Cmd or use FastDownward.
type External struct {
	// Cmd is the argv template. The placeholders {domain}, {problem},
	// and {plan} expand to the scratch file paths.
	Cmd []string

	// SuccessCodes and UnsolvableCodes classify the process exit code.
	// Any other code is an adapter error. Nil SuccessCodes means {0}.
	SuccessCodes    []int
	UnsolvableCodes []int

	// Dir overrides the system temp dir for scratch files. KeepFiles
	// leaves them behind for inspection.
	Dir       string
	KeepFiles bool
}

// FastDownward returns an adapter for the Fast Downward driver script.
// An empty search strategy defaults to A* with the LM-cut heuristic.
func FastDownward(driver, search string) *External {
	if search == "" {
		search = "astar(lmcut())"
	}
	return &External{
		Cmd: []string{driver, "--plan-file", "{plan}", "{domain}", "{problem}", "--search", search},
		// Fast Downward exits 0 on a found plan, 11 and 12 on a task it
		// proved unsolvable.
		SuccessCodes:    []int{0},
		UnsolvableCodes: []int{11, 12},
	}
}

func (e *External) Name() string {
	if len(e.Cmd) == 0 {
		return "external"
	}
	return filepath.Base(e.Cmd[0])
}

// Solve serializes the instance, runs the planner, and replays whatever
// plan comes back before returning it. A goal-free instance is
// trivially solved without invoking the planner.
func (e *External) Solve(ctx context.Context, in *problem.Instance) (*Result, error) {
	start := time.Now()
	if len(e.Cmd) == 0 {
		return nil, &AdapterError{Op: "configure", Err: errors.New("empty command")}
	}
	if len(in.Goal) == 0 {
		return &Result{Status: Solved, Elapsed: time.Since(start)}, nil
	}

	dir, cleanup, err := e.scratchDir()
	if err != nil {
		return nil, &AdapterError{Op: "scratch", Err: err}
	}
	defer cleanup()

	n := buildNames(in)
	domainPath := filepath.Join(dir, "domain.pddl")
	problemPath := filepath.Join(dir, "problem.pddl")
	planPath := filepath.Join(dir, "plan")
	if err := writePDDL(domainPath, in, n, writeDomain); err != nil {
		return nil, &AdapterError{Op: "serialize", Err: err}
	}
	if err := writePDDL(problemPath, in, n, writeProblem); err != nil {
		return nil, &AdapterError{Op: "serialize", Err: err}
	}

	argv := e.expand(domainPath, problemPath, planPath)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	var out strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &out
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Result{Status: Timeout, Elapsed: elapsed, Output: out.String()}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	exit := 0
	if runErr != nil {
		var ee *exec.ExitError
		if !errors.As(runErr, &ee) {
			return nil, &AdapterError{Op: "invoke", Err: runErr}
		}
		exit = ee.ExitCode()
	}

	success := e.SuccessCodes
	if success == nil {
		success = []int{0}
	}
	switch {
	case slices.Contains(success, exit):
	case slices.Contains(e.UnsolvableCodes, exit):
		return &Result{Status: Unsolvable, Elapsed: elapsed, Output: out.String()}, nil
	default:
		return nil, adapterErrf("invoke", "exit code %d: %s", exit, tail(out.String()))
	}

	plan, err := e.readPlan(planPath, n)
	if err != nil {
		return nil, err
	}
	if _, err := sim.Validate(in, plan); err != nil {
		return nil, &AdapterError{Op: "validate", Err: err}
	}
	return &Result{Status: Solved, Plan: plan, Elapsed: elapsed, Output: out.String()}, nil
}

func (e *External) scratchDir() (string, func(), error) {
	base := e.Dir
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "dwr-"+uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, err
	}
	cleanup := func() {}
	if !e.KeepFiles {
		cleanup = func() { os.RemoveAll(dir) }
	}
	return dir, cleanup, nil
}

func (e *External) expand(domain, problem, plan string) []string {
	r := strings.NewReplacer("{domain}", domain, "{problem}", problem, "{plan}", plan)
	argv := make([]string, len(e.Cmd))
	for i, a := range e.Cmd {
		argv[i] = r.Replace(a)
	}
	return argv
}

// readPlan opens the plan file, falling back to the ".1" suffix that
// iterated searches append.
func (e *External) readPlan(path string, n *names) (ground.Plan, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		f, err = os.Open(path + ".1")
	}
	if err != nil {
		return nil, adapterErrf("read plan", "planner reported success but wrote no plan: %v", err)
	}
	defer f.Close()
	return parsePlan(f, n)
}

func writePDDL(path string, in *problem.Instance, n *names, write func(w io.Writer, in *problem.Instance, n *names) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, in, n); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 300 {
		return s
	}
	return "..." + s[len(s)-300:]
}
