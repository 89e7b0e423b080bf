// Package main provides the benchmark runner for dock worker scenarios.
// Runs the external planner over every scenario and search strategy and
// collects metrics.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/elektrokombinacija/dwr-planning/internal/planner"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
	"github.com/elektrokombinacija/dwr-planning/internal/results"
	"github.com/elektrokombinacija/dwr-planning/internal/scenario"
	"github.com/elektrokombinacija/dwr-planning/internal/sim"
)

// BenchmarkResult stores results from a single planner run.
type BenchmarkResult struct {
	Timestamp   string  `json:"timestamp"`
	CommitHash  string  `json:"commit_hash"`
	GoVersion   string  `json:"go_version"`
	OS          string  `json:"os"`
	Arch        string  `json:"arch"`
	Scenario    string  `json:"scenario"`
	Docks       int     `json:"docks"`
	Robots      int     `json:"robots"`
	Containers  int     `json:"containers"`
	Fluents     int     `json:"fluents"`
	Actions     int     `json:"actions"`
	Search      string  `json:"search"`
	Status      string  `json:"status"`
	RuntimeMs   float64 `json:"runtime_ms"`
	PlanSteps   int     `json:"plan_steps"`
	GoalReached bool    `json:"goal_reached"`
}

// SearchMetrics holds per-strategy aggregated metrics.
type SearchMetrics struct {
	Name           string
	TotalRuns      int
	Solved         int
	TotalRuntimeMs float64
	TotalSteps     int
}

var searches = []string{
	"astar(lmcut())",
	"astar(blind())",
	"lazy_greedy([ff()], preferred=[ff()])",
}

func getGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

func newResult(sc *scenario.Scenario, in *problem.Instance, search string) *BenchmarkResult {
	return &BenchmarkResult{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		CommitHash: getGitCommit(),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Scenario:   sc.Name,
		Docks:      len(sc.Docks),
		Robots:     len(sc.Robots),
		Containers: len(sc.Containers),
		Fluents:    in.Vocabulary.Len(),
		Actions:    len(in.Actions),
		Search:     search,
	}
}

// runPlanner solves one instance with one search strategy and replays
// the returned plan to confirm the goal.
func runPlanner(sc *scenario.Scenario, in *problem.Instance, driver, search string, timeout time.Duration, store *results.Store) *BenchmarkResult {
	result := newResult(sc, in, search)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	solver := planner.FastDownward(driver, search)
	res, err := solver.Solve(ctx, in)
	if err != nil {
		result.Status = "error"
		return result
	}

	result.Status = res.Status.String()
	result.RuntimeMs = float64(res.Elapsed.Microseconds()) / 1000.0
	result.PlanSteps = len(res.Plan)

	if res.Status == planner.Solved {
		if tr, err := sim.Replay(in, res.Plan); err == nil {
			result.GoalReached = tr.GoalMet
		}
	}

	if store != nil {
		if _, err := store.Record(in, solver.Name(), res); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording %s: %v\n", sc.Name, err)
		}
	}

	return result
}

func writeCSV(results []*BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"timestamp", "commit_hash", "go_version", "os", "arch",
		"scenario", "docks", "robots", "containers", "fluents", "actions",
		"search", "status", "runtime_ms", "plan_steps", "goal_reached",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.Scenario, fmt.Sprintf("%d", r.Docks), fmt.Sprintf("%d", r.Robots),
			fmt.Sprintf("%d", r.Containers), fmt.Sprintf("%d", r.Fluents),
			fmt.Sprintf("%d", r.Actions), r.Search, r.Status,
			fmt.Sprintf("%.3f", r.RuntimeMs), fmt.Sprintf("%d", r.PlanSteps),
			fmt.Sprintf("%t", r.GoalReached),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func printSummary(results []*BenchmarkResult) {
	metrics := make(map[string]*SearchMetrics)
	for _, r := range results {
		m, ok := metrics[r.Search]
		if !ok {
			m = &SearchMetrics{Name: r.Search}
			metrics[r.Search] = m
		}
		m.TotalRuns++
		if r.Status == "solved" {
			m.Solved++
			m.TotalRuntimeMs += r.RuntimeMs
			m.TotalSteps += r.PlanSteps
		}
	}

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-40s %6s %8s %12s %10s\n",
		"Search", "Runs", "Solved", "Avg Time(ms)", "Avg Steps")
	fmt.Println(strings.Repeat("-", 80))

	var names []string
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := metrics[name]
		avgTime := 0.0
		avgSteps := 0.0
		if m.Solved > 0 {
			avgTime = m.TotalRuntimeMs / float64(m.Solved)
			avgSteps = float64(m.TotalSteps) / float64(m.Solved)
		}
		fmt.Printf("%-40s %6d %8d %12.2f %10.2f\n",
			m.Name, m.TotalRuns, m.Solved, avgTime, avgSteps)
	}
}

func main() {
	inputDir := flag.String("scenarios", "", "Directory with extra scenario YAML files")
	outputFile := flag.String("output", "evidence/planner_results.csv", "Output CSV file")
	driver := flag.String("planner", "fast-downward.py", "Fast downward driver script")
	searchFilter := flag.String("search", "", "Run only specific search strategies (comma-separated)")
	scenarioFilter := flag.String("scenario", "", "Run only specific scenarios (comma-separated)")
	timeout := flag.Duration("timeout", 5*time.Minute, "Timeout per planner run")
	dbPath := flag.String("db", "", "Record runs into this results database")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	outputDir := filepath.Dir(*outputFile)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	scens := scenario.Catalog()
	if *inputDir != "" {
		files, err := scenario.LoadDir(*inputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scenarios from %s: %v\n", *inputDir, err)
			os.Exit(1)
		}
		for _, f := range files {
			scens = append(scens, f.Scenario)
		}
	}

	if *scenarioFilter != "" {
		wanted := make(map[string]bool)
		for _, name := range strings.Split(*scenarioFilter, ",") {
			wanted[strings.TrimSpace(name)] = true
		}
		var kept []*scenario.Scenario
		for _, sc := range scens {
			if wanted[sc.Name] {
				kept = append(kept, sc)
			}
		}
		scens = kept
	}

	if len(scens) == 0 {
		fmt.Fprintln(os.Stderr, "No scenarios to run")
		os.Exit(1)
	}

	activeSearches := searches
	if *searchFilter != "" {
		activeSearches = strings.Split(*searchFilter, ",")
	}

	var store *results.Store
	if *dbPath != "" {
		var err error
		store, err = results.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	var collected []*BenchmarkResult
	totalRuns := len(scens) * len(activeSearches)
	currentRun := 0

	fmt.Printf("Running benchmarks: %d scenarios x %d strategies = %d runs\n",
		len(scens), len(activeSearches), totalRuns)
	fmt.Printf("Timeout per run: %v\n", *timeout)
	fmt.Println()

	for _, sc := range scens {
		in, err := sc.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building %s: %v\n", sc.Name, err)
			continue
		}

		for _, search := range activeSearches {
			currentRun++
			if *verbose {
				fmt.Printf("[%d/%d] %s / %s ... ", currentRun, totalRuns, sc.Name, search)
			} else {
				fmt.Printf("\r[%d/%d] Running...", currentRun, totalRuns)
			}

			result := runPlanner(sc, in, *driver, search, *timeout, store)
			collected = append(collected, result)

			if *verbose {
				switch result.Status {
				case "solved":
					fmt.Printf("OK (%.2fms, %d steps)\n", result.RuntimeMs, result.PlanSteps)
				default:
					fmt.Printf("%s\n", strings.ToUpper(result.Status))
				}
			}
		}
	}

	fmt.Println()

	if err := writeCSV(collected, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results written to: %s\n", *outputFile)

	printSummary(collected)
}
