// Package main provides scenario generation for dock worker benchmarks.
// Generates deterministic scenarios with configurable parameters.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/scenario"
)

// ScenarioParams defines parameters for scenario generation.
type ScenarioParams struct {
	Seed         int64
	Topology     string // "line", "ring", "star", "grid"
	Docks        int
	GridWidth    int
	GridHeight   int
	Robots       int
	Containers   int
	PilesPerDock int
	GoalFraction float64 // Fraction of containers with a goal pile
	Exclusive    bool
}

// generateScenario creates a dock worker scenario from parameters. The
// result is guaranteed to assemble: it is built once before returning.
func generateScenario(params ScenarioParams) (*scenario.Scenario, error) {
	rng := rand.New(rand.NewSource(params.Seed))

	var docks []scenario.Dock
	var topoDesc string
	switch params.Topology {
	case "line":
		docks = scenario.Line(params.Docks)
		topoDesc = fmt.Sprintf("line%d", params.Docks)
	case "ring":
		docks = scenario.Ring(params.Docks)
		topoDesc = fmt.Sprintf("ring%d", params.Docks)
	case "star":
		docks = scenario.Star(params.Docks)
		topoDesc = fmt.Sprintf("star%d", params.Docks)
	case "grid":
		docks = scenario.Grid(params.GridWidth, params.GridHeight)
		topoDesc = fmt.Sprintf("grid%dx%d", params.GridWidth, params.GridHeight)
	default:
		return nil, fmt.Errorf("unknown topology %q", params.Topology)
	}
	if len(docks) == 0 {
		return nil, fmt.Errorf("topology has no docks")
	}
	if params.PilesPerDock < 1 {
		return nil, fmt.Errorf("at least one pile per dock is required")
	}

	sc := &scenario.Scenario{
		Name:    fmt.Sprintf("dwr_%s_r%d_c%d_%d", topoDesc, params.Robots, params.Containers, params.Seed),
		Comment: fmt.Sprintf("generated: seed=%d, %d robots, %d containers", params.Seed, params.Robots, params.Containers),
		Docks:   docks,
	}

	// Robot starting docks. Exclusive occupancy needs distinct starts.
	starts := make([]string, params.Robots)
	if params.Exclusive {
		if params.Robots > len(docks) {
			return nil, fmt.Errorf("exclusive occupancy: %d robots will not fit on %d docks", params.Robots, len(docks))
		}
		sc.Occupancy = "exclusive"
		perm := rng.Perm(len(docks))
		for i := range starts {
			starts[i] = docks[perm[i]].Name
		}
	} else {
		for i := range starts {
			starts[i] = docks[rng.Intn(len(docks))].Name
		}
	}

	thresholds := core.Thresholds()
	for i := 0; i < params.Robots; i++ {
		sc.Robots = append(sc.Robots, scenario.Robot{
			Name:    fmt.Sprintf("r%d", i+1),
			Slots:   1 + rng.Intn(core.MaxSlots),
			MaxLoad: int(thresholds[rng.Intn(len(thresholds))]),
			Dock:    starts[i],
		})
	}

	// Container weights are drawn from the classes the fleet can lift.
	maxLoad := 0
	for _, r := range sc.Robots {
		if r.MaxLoad > maxLoad {
			maxLoad = r.MaxLoad
		}
	}
	var weights []int
	for _, w := range core.WeightClasses() {
		if int(w) <= maxLoad {
			weights = append(weights, int(w))
		}
	}
	if len(weights) == 0 {
		for _, w := range core.WeightClasses() {
			weights = append(weights, int(w))
		}
	}

	pileID := 0
	for _, d := range docks {
		for j := 0; j < params.PilesPerDock; j++ {
			pileID++
			sc.Piles = append(sc.Piles, scenario.Pile{
				Name: fmt.Sprintf("p%d", pileID),
				Dock: d.Name,
			})
		}
	}

	// Stacks list bottom first, so appending stacks on top.
	startPile := make(map[string]string, params.Containers)
	for i := 0; i < params.Containers; i++ {
		name := fmt.Sprintf("c%d", i+1)
		sc.Containers = append(sc.Containers, scenario.Container{
			Name:   name,
			Weight: weights[rng.Intn(len(weights))],
		})
		p := rng.Intn(len(sc.Piles))
		sc.Piles[p].Stack = append(sc.Piles[p].Stack, name)
		startPile[name] = sc.Piles[p].Name
	}

	// Goals ask a fraction of the containers to end up in a pile other
	// than the one they start in.
	goalCount := int(float64(params.Containers) * params.GoalFraction)
	if goalCount == 0 && params.Containers > 0 {
		goalCount = 1
	}
	if goalCount > params.Containers {
		goalCount = params.Containers
	}
	for _, idx := range rng.Perm(params.Containers)[:goalCount] {
		name := fmt.Sprintf("c%d", idx+1)
		target := sc.Piles[rng.Intn(len(sc.Piles))].Name
		attempts := 0
		for len(sc.Piles) > 1 && target == startPile[name] && attempts < 100 {
			target = sc.Piles[rng.Intn(len(sc.Piles))].Name
			attempts++
		}
		sc.Goal = append(sc.Goal, scenario.GoalCond{Container: name, InPile: target})
	}

	if _, err := sc.Build(); err != nil {
		return nil, err
	}
	return sc, nil
}

func main() {
	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	topology := flag.String("topology", "line", "Dock topology: line, ring, star, grid")
	numDocks := flag.Int("docks", 4, "Number of docks (line, ring, star)")
	gridWidth := flag.Int("width", 3, "Grid width (grid topology)")
	gridHeight := flag.Int("height", 3, "Grid height (grid topology)")
	numRobots := flag.Int("robots", 2, "Number of robots")
	numContainers := flag.Int("containers", 6, "Number of containers")
	pilesPerDock := flag.Int("piles", 1, "Piles per dock")
	goalFraction := flag.Float64("goals", 0.5, "Fraction of containers with a goal pile")
	exclusive := flag.Bool("exclusive", false, "Exclusive dock occupancy")
	outputDir := flag.String("output", "testdata", "Output directory")
	scalingMode := flag.Bool("scaling", false, "Generate scaling suite (3 to 16 docks)")

	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	var scens []*scenario.Scenario

	if *scalingMode {
		scalingSizes := []int{3, 4, 6, 8, 12, 16}
		for _, size := range scalingSizes {
			// Grid dimensions scale with sqrt of the dock count
			gridSize := int(math.Ceil(math.Sqrt(float64(size))))

			params := ScenarioParams{
				Seed:         *seed,
				Topology:     *topology,
				Docks:        size,
				GridWidth:    gridSize,
				GridHeight:   gridSize,
				Robots:       (size + 1) / 2,
				Containers:   size * 2,
				PilesPerDock: *pilesPerDock,
				GoalFraction: *goalFraction,
				Exclusive:    *exclusive,
			}

			sc, err := generateScenario(params)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error generating %d-dock scenario: %v\n", size, err)
				continue
			}
			scens = append(scens, sc)
		}
	} else {
		params := ScenarioParams{
			Seed:         *seed,
			Topology:     *topology,
			Docks:        *numDocks,
			GridWidth:    *gridWidth,
			GridHeight:   *gridHeight,
			Robots:       *numRobots,
			Containers:   *numContainers,
			PilesPerDock: *pilesPerDock,
			GoalFraction: *goalFraction,
			Exclusive:    *exclusive,
		}

		sc, err := generateScenario(params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating scenario: %v\n", err)
			os.Exit(1)
		}
		scens = append(scens, sc)
	}

	for _, sc := range scens {
		filename := filepath.Join(*outputDir, sc.Name+".yaml")
		if err := scenario.Save(filename, sc); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing scenario %s: %v\n", filename, err)
			continue
		}
		fmt.Printf("Generated: %s (%d docks, %d robots, %d containers, %d goals)\n",
			filename, len(sc.Docks), len(sc.Robots), len(sc.Containers), len(sc.Goal))
	}
}
