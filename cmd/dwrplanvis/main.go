// Command dwrplanvis animates a plan over the dock floor: solve a
// scenario with fast downward, or load a saved plan, and watch the
// robots carry it out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/dwr-planning/internal/planner"
	"github.com/elektrokombinacija/dwr-planning/internal/scenario"
	"github.com/elektrokombinacija/dwr-planning/internal/sim"
	"github.com/elektrokombinacija/dwr-planning/internal/vis"
)

func main() {
	var (
		name       = flag.String("scenario", "three-dock-line", "catalog scenario to animate")
		file       = flag.String("file", "", "scenario YAML file (overrides -scenario)")
		planFile   = flag.String("plan", "", "plan file to replay instead of solving")
		plannerCmd = flag.String("planner", "fast-downward.py", "fast downward driver script")
		search     = flag.String("search", "", "search argument passed to the planner")
		timeout    = flag.Duration("timeout", 2*time.Minute, "planner time budget")
	)
	flag.Parse()

	tr, err := buildTrace(*name, *file, *planFile, *plannerCmd, *search, *timeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dwrplanvis:", err)
		os.Exit(1)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Dock Worker Plans"),
			app.Size(unit.Dp(1400), unit.Dp(900)),
		)

		viewer, err := vis.NewApp(tr)
		if err != nil {
			log.Fatal(err)
		}
		if err := viewer.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func buildTrace(name, file, planFile, plannerCmd, search string, timeout time.Duration) (*sim.Trace, error) {
	var sc *scenario.Scenario
	if file != "" {
		loaded, err := scenario.Load(file)
		if err != nil {
			return nil, err
		}
		sc = loaded
	} else {
		found, ok := scenario.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		sc = found
	}

	in, err := sc.Build()
	if err != nil {
		return nil, err
	}

	if planFile != "" {
		names, err := readPlanFile(planFile)
		if err != nil {
			return nil, err
		}
		return sim.ReplayNames(in, names)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	solver := planner.FastDownward(plannerCmd, search)
	res, err := solver.Solve(ctx, in)
	if err != nil {
		return nil, err
	}
	if res.Status != planner.Solved {
		return nil, fmt.Errorf("%s after %s, nothing to animate", res.Status, res.Elapsed.Round(time.Millisecond))
	}
	return sim.Replay(in, res.Plan)
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
