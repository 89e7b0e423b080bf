// Package scenario defines the on-disk YAML form of planning scenarios,
// topology builders, and a catalog of built-in worlds.
package scenario

import (
	"fmt"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
)

// Scenario is the serializable description of one planning problem:
// world, starting layout, and goal in a single document.
type Scenario struct {
	Name       string      `yaml:"name"`
	Comment    string      `yaml:"comment,omitempty"`
	Occupancy  string      `yaml:"occupancy,omitempty"`
	Docks      []Dock      `yaml:"docks"`
	Robots     []Robot     `yaml:"robots,omitempty"`
	Containers []Container `yaml:"containers,omitempty"`
	Piles      []Pile      `yaml:"piles,omitempty"`
	Goal       []GoalCond  `yaml:"goal,omitempty"`
}

type Dock struct {
	Name     string   `yaml:"name"`
	Adjacent []string `yaml:"adjacent,omitempty"`
}

// Robot carries its starting position so a scenario file is
// self-contained. Cargo lists slot 1 first.
type Robot struct {
	Name    string   `yaml:"name"`
	Slots   int      `yaml:"slots"`
	MaxLoad int      `yaml:"max_load"`
	Dock    string   `yaml:"dock"`
	Cargo   []string `yaml:"cargo,omitempty"`
}

type Container struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

// Pile lists its starting stack bottom first.
type Pile struct {
	Name  string   `yaml:"name"`
	Dock  string   `yaml:"dock"`
	Stack []string `yaml:"stack,omitempty"`
}

// GoalCond expresses one goal conjunct. The set fields select the
// relation: {robot, at}, {robot, free}, {robot, holds[, slot]},
// {container, in_pile}, {container, on_top_of}, {container, on,
// in_pile}, or {empty}. Setting not inverts it.
type GoalCond struct {
	Robot     string `yaml:"robot,omitempty"`
	At        string `yaml:"at,omitempty"`
	Free      bool   `yaml:"free,omitempty"`
	Holds     string `yaml:"holds,omitempty"`
	Slot      int    `yaml:"slot,omitempty"`
	Container string `yaml:"container,omitempty"`
	InPile    string `yaml:"in_pile,omitempty"`
	OnTopOf   string `yaml:"on_top_of,omitempty"`
	On        string `yaml:"on,omitempty"`
	Empty     string `yaml:"empty,omitempty"`
	Not       bool   `yaml:"not,omitempty"`
}

// Validate checks the document structure. Registry-level rules (name
// legality, weights, thresholds, topology) are enforced later by Build.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario: name is required")
	}
	switch s.Occupancy {
	case "", "shared", "exclusive":
	default:
		return fmt.Errorf("scenario: occupancy %q is not shared or exclusive", s.Occupancy)
	}
	if len(s.Docks) == 0 {
		return fmt.Errorf("scenario: at least one dock is required")
	}
	for i, d := range s.Docks {
		if d.Name == "" {
			return fmt.Errorf("scenario: dock %d has no name", i)
		}
	}
	for i, r := range s.Robots {
		if r.Name == "" {
			return fmt.Errorf("scenario: robot %d has no name", i)
		}
		if r.Dock == "" {
			return fmt.Errorf("scenario: robot %s has no starting dock", r.Name)
		}
	}
	for i, c := range s.Containers {
		if c.Name == "" {
			return fmt.Errorf("scenario: container %d has no name", i)
		}
	}
	for i, p := range s.Piles {
		if p.Name == "" {
			return fmt.Errorf("scenario: pile %d has no name", i)
		}
		if p.Dock == "" {
			return fmt.Errorf("scenario: pile %s has no dock", p.Name)
		}
	}
	for i, g := range s.Goal {
		if _, err := g.cond(); err != nil {
			return fmt.Errorf("scenario: goal %d: %w", i, err)
		}
	}
	return nil
}

// Config returns the registry configuration the scenario describes.
func (s *Scenario) Config() core.Config {
	cfg := core.Config{}
	if s.Occupancy == "exclusive" {
		cfg.Occupancy = core.OccupancyExclusive
	}
	for _, d := range s.Docks {
		cfg.Docks = append(cfg.Docks, core.DockSpec{Name: d.Name, Adjacent: d.Adjacent})
	}
	for _, r := range s.Robots {
		cfg.Robots = append(cfg.Robots, core.RobotSpec{Name: r.Name, Slots: r.Slots, MaxLoad: r.MaxLoad})
	}
	for _, p := range s.Piles {
		cfg.Piles = append(cfg.Piles, core.PileSpec{Name: p.Name, Dock: p.Dock})
	}
	for _, c := range s.Containers {
		cfg.Containers = append(cfg.Containers, core.ContainerSpec{Name: c.Name, Weight: c.Weight})
	}
	return cfg
}

// InitSpec returns the starting layout in assembler form.
func (s *Scenario) InitSpec() problem.Init {
	init := problem.Init{
		RobotDocks: make(map[string]string, len(s.Robots)),
		RobotCargo: make(map[string][]string),
		PileStacks: make(map[string][]string, len(s.Piles)),
	}
	for _, r := range s.Robots {
		init.RobotDocks[r.Name] = r.Dock
		if len(r.Cargo) > 0 {
			init.RobotCargo[r.Name] = r.Cargo
		}
	}
	for _, p := range s.Piles {
		init.PileStacks[p.Name] = p.Stack
	}
	return init
}

// Conds converts the goal entries into assembler conditions.
func (s *Scenario) Conds() ([]problem.Cond, error) {
	conds := make([]problem.Cond, 0, len(s.Goal))
	for i, g := range s.Goal {
		c, err := g.cond()
		if err != nil {
			return nil, fmt.Errorf("scenario: goal %d: %w", i, err)
		}
		conds = append(conds, c)
	}
	return conds, nil
}

func (g GoalCond) cond() (problem.Cond, error) {
	set := 0
	var c problem.Cond
	if g.At != "" {
		set++
		c = problem.Cond{Kind: problem.RobotAt, Robot: g.Robot, Dock: g.At}
	}
	if g.Free {
		set++
		c = problem.Cond{Kind: problem.RobotFree, Robot: g.Robot}
	}
	if g.Holds != "" {
		set++
		c = problem.Cond{Kind: problem.ContainerHeldBy, Robot: g.Robot, Container: g.Holds, Slot: g.Slot}
	}
	if g.OnTopOf != "" {
		set++
		c = problem.Cond{Kind: problem.ContainerOnTop, Container: g.Container, Pile: g.OnTopOf}
	}
	if g.On != "" {
		set++
		c = problem.Cond{Kind: problem.ContainerOn, Container: g.Container, Under: g.On, Pile: g.InPile}
	}
	if g.InPile != "" && g.On == "" {
		set++
		c = problem.Cond{Kind: problem.ContainerInPile, Container: g.Container, Pile: g.InPile}
	}
	if g.Empty != "" {
		set++
		c = problem.Cond{Kind: problem.PileEmpty, Pile: g.Empty}
	}
	if set == 0 {
		return problem.Cond{}, fmt.Errorf("no relation set")
	}
	if set > 1 {
		return problem.Cond{}, fmt.Errorf("more than one relation set")
	}
	switch c.Kind {
	case problem.RobotAt, problem.RobotFree:
		if c.Robot == "" {
			return problem.Cond{}, fmt.Errorf("robot is required")
		}
	case problem.ContainerHeldBy:
		if c.Robot == "" {
			return problem.Cond{}, fmt.Errorf("robot is required")
		}
	case problem.ContainerInPile, problem.ContainerOnTop:
		if c.Container == "" {
			return problem.Cond{}, fmt.Errorf("container is required")
		}
	case problem.ContainerOn:
		if c.Container == "" {
			return problem.Cond{}, fmt.Errorf("container is required")
		}
		if c.Pile == "" {
			return problem.Cond{}, fmt.Errorf("in_pile is required with on")
		}
	}
	c.Negated = g.Not
	return c, nil
}

// Build validates the scenario and assembles it into an instance.
func (s *Scenario) Build() (*problem.Instance, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	reg, err := core.NewRegistry(s.Config())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	conds, err := s.Conds()
	if err != nil {
		return nil, err
	}
	in, err := problem.Assemble(s.Name, reg, s.InitSpec(), conds)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return in, nil
}
