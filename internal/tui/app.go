// Package tui is a terminal browser for planning scenarios: pick one,
// inspect the encoded instance, solve it and step through the plan.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/elektrokombinacija/dwr-planning/internal/encode"
	"github.com/elektrokombinacija/dwr-planning/internal/planner"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
	"github.com/elektrokombinacija/dwr-planning/internal/report"
	"github.com/elektrokombinacija/dwr-planning/internal/results"
	"github.com/elektrokombinacija/dwr-planning/internal/scenario"
	"github.com/elektrokombinacija/dwr-planning/internal/sim"
)

// appState is the screen currently shown.
type appState int

const (
	stateBrowse   appState = iota // scenario picker
	stateDetail                   // encoded instance plus solve outcome
	statePlayback                 // step through a found plan
)

const defaultSolveTimeout = 2 * time.Minute

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
)

type scenarioItem struct {
	sc *scenario.Scenario
}

func (i scenarioItem) Title() string { return i.sc.Name }

func (i scenarioItem) Description() string {
	if i.sc.Comment != "" {
		return i.sc.Comment
	}
	return fmt.Sprintf("%d docks · %d robots · %d containers",
		len(i.sc.Docks), len(i.sc.Robots), len(i.sc.Containers))
}

func (i scenarioItem) FilterValue() string { return i.sc.Name }

type instanceBuiltMsg struct {
	in  *problem.Instance
	err error
}

type solveFinishedMsg struct {
	res *planner.Result
	tr  *sim.Trace
	err error
}

// App is the bubbletea model holding all browser state.
type App struct {
	state appState
	menu  list.Model

	solver  planner.Solver
	store   *results.Store // optional run archive
	timeout time.Duration

	in        *problem.Instance
	initial   *encode.Snapshot
	res       *planner.Result
	trace     *sim.Trace
	solving   bool
	stepIndex int // 0 is the initial state

	width     int
	height    int
	statusMsg string
}

// AppOption customizes App construction.
type AppOption func(*App)

// WithStore records every solve outcome in the given archive.
func WithStore(store *results.Store) AppOption {
	return func(a *App) { a.store = store }
}

// WithSolveTimeout bounds each planner invocation.
func WithSolveTimeout(d time.Duration) AppOption {
	return func(a *App) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewApp builds the browser over the given scenarios.
func NewApp(scenarios []*scenario.Scenario, solver planner.Solver, opts ...AppOption) *App {
	items := make([]list.Item, len(scenarios))
	for i, sc := range scenarios {
		items[i] = scenarioItem{sc: sc}
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "⚓ DOCK WORKER SCENARIOS"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	app := &App{
		state:   stateBrowse,
		menu:    menu,
		solver:  solver,
		timeout: defaultSolveTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app
}

// Run drives the browser until the user quits.
func Run(app *App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.menu.SetSize(max(0, msg.Width-4), max(0, msg.Height-8))
		return a, nil

	case instanceBuiltMsg:
		if msg.err != nil {
			a.statusMsg = errStyle.Render(fmt.Sprintf("build failed: %v", msg.err))
			return a, nil
		}
		a.in = msg.in
		a.initial, _ = msg.in.Vocabulary.Decode(msg.in.Init)
		a.res = nil
		a.trace = nil
		a.state = stateDetail
		a.statusMsg = fmt.Sprintf("%d fluents · %d ground actions", msg.in.Vocabulary.Len(), len(msg.in.Actions))
		return a, nil

	case solveFinishedMsg:
		a.solving = false
		if msg.err != nil {
			a.statusMsg = errStyle.Render(fmt.Sprintf("solve failed: %v", msg.err))
			return a, nil
		}
		a.res = msg.res
		a.trace = msg.tr
		switch msg.res.Status {
		case planner.Solved:
			a.statusMsg = okStyle.Render(fmt.Sprintf("solved in %d steps (%s)", len(msg.res.Plan), msg.res.Elapsed))
		case planner.Unsolvable:
			a.statusMsg = errStyle.Render("proved unsolvable")
		case planner.Timeout:
			a.statusMsg = errStyle.Render(fmt.Sprintf("timed out after %s", msg.res.Elapsed))
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateBrowse {
				return a, tea.Quit
			}
		case "esc":
			switch a.state {
			case stateDetail:
				a.state = stateBrowse
				a.statusMsg = ""
			case statePlayback:
				a.state = stateDetail
			}
			return a, nil
		case "enter":
			if a.state == stateBrowse {
				return a, a.buildSelected()
			}
		case "s":
			if a.state == stateDetail && !a.solving {
				return a, a.solveCurrent()
			}
		case "p":
			if a.state == stateDetail && a.trace != nil {
				a.state = statePlayback
				a.stepIndex = 0
				return a, nil
			}
		case "left", "h":
			if a.state == statePlayback && a.stepIndex > 0 {
				a.stepIndex--
				return a, nil
			}
		case "right", "l":
			if a.state == statePlayback && a.trace != nil && a.stepIndex < len(a.trace.Steps) {
				a.stepIndex++
				return a, nil
			}
		}
	}

	if a.state == stateBrowse {
		var cmd tea.Cmd
		a.menu, cmd = a.menu.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) buildSelected() tea.Cmd {
	item, ok := a.menu.SelectedItem().(scenarioItem)
	if !ok {
		return nil
	}
	sc := item.sc
	return func() tea.Msg {
		in, err := sc.Build()
		return instanceBuiltMsg{in: in, err: err}
	}
}

func (a *App) solveCurrent() tea.Cmd {
	if a.in == nil || a.solver == nil {
		a.statusMsg = errStyle.Render("no planner configured")
		return nil
	}
	in := a.in
	solver := a.solver
	store := a.store
	timeout := a.timeout
	a.solving = true
	a.statusMsg = fmt.Sprintf("solving with %s…", solver.Name())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := solver.Solve(ctx, in)
		if err != nil {
			return solveFinishedMsg{err: err}
		}
		var tr *sim.Trace
		if res.Status == planner.Solved {
			tr, err = sim.Replay(in, res.Plan)
			if err != nil {
				return solveFinishedMsg{err: err}
			}
		}
		if store != nil {
			if _, err := store.Record(in, solver.Name(), res); err != nil {
				return solveFinishedMsg{err: err}
			}
		}
		return solveFinishedMsg{res: res, tr: tr}
	}
}

func (a *App) View() string {
	var content string
	switch a.state {
	case stateBrowse:
		content = a.menu.View() + hintStyle.Render("enter=open  q=quit")
	case stateDetail:
		content = a.viewDetail()
	case statePlayback:
		content = a.viewPlayback()
	}
	if a.statusMsg != "" {
		content += statusStyle.Render(a.statusMsg)
	}
	return content
}

func (a *App) viewDetail() string {
	if a.in == nil {
		return "no instance loaded"
	}
	sections := []string{report.Instance(a.in)}
	if a.res != nil && a.res.Status == planner.Solved {
		sections = append(sections, "", titleStyle.Render("Plan"), report.Plan(a.res.Plan))
	}
	hints := "s=solve  esc=back"
	if a.trace != nil {
		hints = "s=solve  p=playback  esc=back"
	}
	sections = append(sections, hintStyle.Render(hints))
	return strings.Join(sections, "\n")
}

func (a *App) viewPlayback() string {
	if a.trace == nil || a.in == nil {
		return "nothing to play back"
	}
	total := len(a.trace.Steps)
	lines := []string{
		titleStyle.Render(a.in.Name),
		fmt.Sprintf("step %d/%d", a.stepIndex, total),
	}
	snap := a.initial
	if a.stepIndex > 0 {
		step := a.trace.Steps[a.stepIndex-1]
		snap = step.Snap
		lines = append(lines, step.Action.Name)
	} else {
		lines = append(lines, "initial state")
	}
	if snap != nil {
		lines = append(lines, "", report.Layout(a.in.Registry, snap))
	}
	lines = append(lines, hintStyle.Render("left/right=step  esc=back"))
	return strings.Join(lines, "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
