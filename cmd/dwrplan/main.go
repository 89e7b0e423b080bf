// Command dwrplan builds dock worker scenarios, hands them to an
// external planner, and replays, records or browses the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/elektrokombinacija/dwr-planning/internal/planner"
	"github.com/elektrokombinacija/dwr-planning/internal/report"
	"github.com/elektrokombinacija/dwr-planning/internal/results"
	"github.com/elektrokombinacija/dwr-planning/internal/scenario"
	"github.com/elektrokombinacija/dwr-planning/internal/sim"
	"github.com/elektrokombinacija/dwr-planning/internal/tui"
)

func main() {
	var (
		scenarioDir = flag.String("scenarios", "", "directory of extra scenario YAML files")
		plannerCmd  = flag.String("planner", "fast-downward.py", "fast downward driver script")
		search      = flag.String("search", "", "search argument passed to the planner")
		timeout     = flag.Duration("timeout", 2*time.Minute, "planner time budget")
		dbPath      = flag.String("db", "", "sqlite file for recording runs")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	c := &cli{
		scenarioDir: *scenarioDir,
		solver:      planner.FastDownward(*plannerCmd, *search),
		timeout:     *timeout,
		dbPath:      *dbPath,
	}

	if err := c.run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "dwrplan:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: dwrplan [flags] <command> [args]

Commands:
  list                   list available scenarios
  show <scenario>        print a scenario's layout and goal
  validate <scenario>    check that a scenario assembles, without solving
  solve <scenario>       plan with fast downward and replay the result
  replay <scenario> <plan-file>
                         replay a plan file, one action name per line
  runs [scenario]        list recorded runs (needs -db)
  run <id>               show one recorded run (needs -db)
  tui                    browse and solve scenarios interactively

Flags:
`)
	flag.PrintDefaults()
}

type cli struct {
	scenarioDir string
	solver      planner.Solver
	timeout     time.Duration
	dbPath      string
}

func (c *cli) run(cmd string, args []string) error {
	switch cmd {
	case "list":
		return c.list()
	case "show":
		if len(args) != 1 {
			return fmt.Errorf("usage: show <scenario>")
		}
		return c.show(args[0])
	case "validate":
		if len(args) != 1 {
			return fmt.Errorf("usage: validate <scenario>")
		}
		return c.validate(args[0])
	case "solve":
		if len(args) != 1 {
			return fmt.Errorf("usage: solve <scenario>")
		}
		return c.solve(args[0])
	case "replay":
		if len(args) != 2 {
			return fmt.Errorf("usage: replay <scenario> <plan-file>")
		}
		return c.replay(args[0], args[1])
	case "runs":
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return c.listRuns(name)
	case "run":
		if len(args) != 1 {
			return fmt.Errorf("usage: run <id>")
		}
		return c.showRun(args[0])
	case "tui":
		return c.browse()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// scenarios merges the built-in catalog with the -scenarios directory.
func (c *cli) scenarios() ([]*scenario.Scenario, error) {
	all := scenario.Catalog()
	if c.scenarioDir == "" {
		return all, nil
	}
	files, err := scenario.LoadDir(c.scenarioDir)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		all = append(all, f.Scenario)
	}
	return all, nil
}

func (c *cli) find(name string) (*scenario.Scenario, error) {
	all, err := c.scenarios()
	if err != nil {
		return nil, err
	}
	for _, sc := range all {
		if sc.Name == name {
			return sc, nil
		}
	}
	return nil, fmt.Errorf("unknown scenario %q (try: dwrplan list)", name)
}

func (c *cli) list() error {
	all, err := c.scenarios()
	if err != nil {
		return err
	}
	for _, sc := range all {
		desc := sc.Comment
		if desc == "" {
			desc = fmt.Sprintf("%d docks, %d robots, %d containers",
				len(sc.Docks), len(sc.Robots), len(sc.Containers))
		}
		fmt.Printf("%-18s %s\n", sc.Name, desc)
	}
	return nil
}

func (c *cli) show(name string) error {
	sc, err := c.find(name)
	if err != nil {
		return err
	}
	in, err := sc.Build()
	if err != nil {
		return err
	}
	fmt.Println(report.Instance(in))
	return nil
}

func (c *cli) validate(name string) error {
	sc, err := c.find(name)
	if err != nil {
		return err
	}
	in, err := sc.Build()
	if err != nil {
		return err
	}
	fmt.Printf("%s ok: %d fluents, %d ground actions\n",
		in.Name, in.Vocabulary.Len(), len(in.Actions))
	return nil
}

func (c *cli) solve(name string) error {
	sc, err := c.find(name)
	if err != nil {
		return err
	}
	in, err := sc.Build()
	if err != nil {
		return err
	}

	fmt.Printf("solving %s: %d fluents, %d ground actions\n",
		in.Name, in.Vocabulary.Len(), len(in.Actions))

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	res, err := c.solver.Solve(ctx, in)
	if err != nil {
		return err
	}

	if c.dbPath != "" {
		store, err := results.Open(c.dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		run, err := store.Record(in, c.solver.Name(), res)
		if err != nil {
			return err
		}
		fmt.Printf("recorded run %s\n", run.ID)
	}

	switch res.Status {
	case planner.Solved:
		tr, err := sim.Replay(in, res.Plan)
		if err != nil {
			return err
		}
		fmt.Printf("solved in %d steps (%s)\n\n", len(res.Plan), res.Elapsed.Round(time.Millisecond))
		fmt.Println(report.Trace(tr))
	case planner.Unsolvable:
		fmt.Printf("proved unsolvable (%s)\n", res.Elapsed.Round(time.Millisecond))
	case planner.Timeout:
		fmt.Printf("timed out after %s\n", res.Elapsed.Round(time.Millisecond))
	}
	return nil
}

func (c *cli) replay(name, planFile string) error {
	sc, err := c.find(name)
	if err != nil {
		return err
	}
	in, err := sc.Build()
	if err != nil {
		return err
	}
	names, err := readPlanFile(planFile)
	if err != nil {
		return err
	}
	tr, err := sim.ReplayNames(in, names)
	if err != nil {
		return err
	}
	fmt.Println(report.Trace(tr))
	return nil
}

func (c *cli) listRuns(name string) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(name)
	if err != nil {
		return err
	}
	fmt.Println(report.Runs(runs))
	return nil
}

func (c *cli) showRun(id string) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Run(id)
	if err != nil {
		return err
	}
	fmt.Println(report.Run(run))
	return nil
}

func (c *cli) browse() error {
	all, err := c.scenarios()
	if err != nil {
		return err
	}

	opts := []tui.AppOption{tui.WithSolveTimeout(c.timeout)}
	if c.dbPath != "" {
		store, err := results.Open(c.dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, tui.WithStore(store))
	}

	return tui.Run(tui.NewApp(all, c.solver, opts...))
}

func (c *cli) openStore() (*results.Store, error) {
	if c.dbPath == "" {
		return nil, fmt.Errorf("no results database, pass -db")
	}
	return results.Open(c.dbPath)
}

// readPlanFile reads ground action names, one per line. Blank lines and
// ";" comments are skipped.
func readPlanFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}
