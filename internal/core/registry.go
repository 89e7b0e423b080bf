package core

import (
	"regexp"
	"sort"
)

// RobotSpec describes one robot for registry construction.
type RobotSpec struct {
	Name    string
	Slots   int
	MaxLoad int // tonnes
}

// DockSpec describes one dock and its outgoing adjacency.
type DockSpec struct {
	Name     string
	Adjacent []string // directed edges; list both directions for a symmetric link
}

// PileSpec describes one pile and its hosting dock.
type PileSpec struct {
	Name string
	Dock string
}

// ContainerSpec describes one container.
type ContainerSpec struct {
	Name   string
	Weight int // tonnes
}

// Config collects everything needed to build a Registry.
type Config struct {
	Occupancy  OccupancyMode
	Docks      []DockSpec
	Robots     []RobotSpec
	Piles      []PileSpec
	Containers []ContainerSpec
}

// Registry is the immutable entity schema for one problem instance.
// Build it with NewRegistry and treat it as read-only afterwards; every
// downstream component works from the same value, there is no global store.
type Registry struct {
	Occupancy  OccupancyMode
	Robots     []Robot
	Docks      []Dock
	Piles      []Pile
	Containers []Container

	adjacency map[DockID][]DockID
	pilesAt   map[DockID][]PileID
	names     map[string]entityRef
}

type entityKind int

const (
	kindRobot entityKind = iota
	kindDock
	kindPile
	kindContainer
)

type entityRef struct {
	kind  entityKind
	index int
}

// Entity names must be lowercase identifiers so that ground action and fluent
// names survive a case-insensitive planner round trip unchanged.
var nameRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// NewRegistry validates cfg and builds the registry. Attribute values outside
// their fixed enumerations return *EncodingError; structural problems
// (bad names, dangling references, malformed topology) return
// *ConfigurationError.
func NewRegistry(cfg Config) (*Registry, error) {
	if len(cfg.Docks) == 0 {
		return nil, ConfigErrorf("docks", "at least one dock is required")
	}

	reg := &Registry{
		Occupancy: cfg.Occupancy,
		adjacency: make(map[DockID][]DockID),
		pilesAt:   make(map[DockID][]PileID),
		names:     make(map[string]entityRef),
	}

	for i, spec := range cfg.Docks {
		if err := reg.claimName(spec.Name, kindDock, i); err != nil {
			return nil, err
		}
		reg.Docks = append(reg.Docks, Dock{ID: DockID(i), Name: spec.Name})
	}
	for i, spec := range cfg.Robots {
		if err := reg.claimName(spec.Name, kindRobot, i); err != nil {
			return nil, err
		}
		if spec.Slots < 0 || spec.Slots > MaxSlots {
			return nil, &EncodingError{Entity: spec.Name, Attr: "slot capacity", Value: spec.Slots}
		}
		if !Threshold(spec.MaxLoad).Valid() {
			return nil, &EncodingError{Entity: spec.Name, Attr: "weight threshold", Value: spec.MaxLoad}
		}
		reg.Robots = append(reg.Robots, Robot{
			ID:      RobotID(i),
			Name:    spec.Name,
			Slots:   spec.Slots,
			MaxLoad: Threshold(spec.MaxLoad),
		})
	}
	for i, spec := range cfg.Containers {
		if err := reg.claimName(spec.Name, kindContainer, i); err != nil {
			return nil, err
		}
		if !WeightClass(spec.Weight).Valid() {
			return nil, &EncodingError{Entity: spec.Name, Attr: "weight class", Value: spec.Weight}
		}
		reg.Containers = append(reg.Containers, Container{
			ID:     ContainerID(i),
			Name:   spec.Name,
			Weight: WeightClass(spec.Weight),
		})
	}
	for i, spec := range cfg.Piles {
		if err := reg.claimName(spec.Name, kindPile, i); err != nil {
			return nil, err
		}
		dock, ok := reg.DockByName(spec.Dock)
		if !ok {
			return nil, ConfigErrorf("piles", "pile %s references unknown dock %q", spec.Name, spec.Dock)
		}
		id := PileID(i)
		reg.Piles = append(reg.Piles, Pile{ID: id, Name: spec.Name, Dock: dock.ID})
		reg.pilesAt[dock.ID] = append(reg.pilesAt[dock.ID], id)
	}

	if err := reg.buildTopology(cfg.Docks); err != nil {
		return nil, err
	}
	return reg, nil
}

func (reg *Registry) claimName(name string, kind entityKind, index int) error {
	if !nameRe.MatchString(name) {
		return ConfigErrorf("names", "invalid entity name %q", name)
	}
	if _, taken := reg.names[name]; taken {
		return ConfigErrorf("names", "duplicate entity name %q", name)
	}
	reg.names[name] = entityRef{kind: kind, index: index}
	return nil
}

func (reg *Registry) buildTopology(docks []DockSpec) error {
	for i, spec := range docks {
		from := DockID(i)
		for _, name := range spec.Adjacent {
			to, ok := reg.DockByName(name)
			if !ok {
				return ConfigErrorf("topology", "dock %s lists unknown neighbor %q", spec.Name, name)
			}
			if to.ID == from {
				return ConfigErrorf("topology", "dock %s lists itself as a neighbor", spec.Name)
			}
			for _, existing := range reg.adjacency[from] {
				if existing == to.ID {
					return ConfigErrorf("topology", "duplicate edge %s -> %s", spec.Name, name)
				}
			}
			reg.adjacency[from] = append(reg.adjacency[from], to.ID)
		}
	}
	// Deterministic neighbor order for stable fluent and action enumeration.
	for _, neighbors := range reg.adjacency {
		sort.Slice(neighbors, func(a, b int) bool { return neighbors[a] < neighbors[b] })
	}
	return nil
}

// Robot returns the robot with the given ID.
func (reg *Registry) Robot(id RobotID) *Robot { return &reg.Robots[id] }

// Dock returns the dock with the given ID.
func (reg *Registry) Dock(id DockID) *Dock { return &reg.Docks[id] }

// Pile returns the pile with the given ID.
func (reg *Registry) Pile(id PileID) *Pile { return &reg.Piles[id] }

// Container returns the container with the given ID.
func (reg *Registry) Container(id ContainerID) *Container { return &reg.Containers[id] }

// RobotByName resolves a robot by name.
func (reg *Registry) RobotByName(name string) (*Robot, bool) {
	ref, ok := reg.names[name]
	if !ok || ref.kind != kindRobot {
		return nil, false
	}
	return &reg.Robots[ref.index], true
}

// DockByName resolves a dock by name.
func (reg *Registry) DockByName(name string) (*Dock, bool) {
	ref, ok := reg.names[name]
	if !ok || ref.kind != kindDock {
		return nil, false
	}
	return &reg.Docks[ref.index], true
}

// PileByName resolves a pile by name.
func (reg *Registry) PileByName(name string) (*Pile, bool) {
	ref, ok := reg.names[name]
	if !ok || ref.kind != kindPile {
		return nil, false
	}
	return &reg.Piles[ref.index], true
}

// ContainerByName resolves a container by name.
func (reg *Registry) ContainerByName(name string) (*Container, bool) {
	ref, ok := reg.names[name]
	if !ok || ref.kind != kindContainer {
		return nil, false
	}
	return &reg.Containers[ref.index], true
}

// Neighbors returns the docks reachable from d in one move, in ID order.
func (reg *Registry) Neighbors(d DockID) []DockID { return reg.adjacency[d] }

// Adjacent reports whether a directed edge from a to b exists.
func (reg *Registry) Adjacent(a, b DockID) bool {
	for _, n := range reg.adjacency[a] {
		if n == b {
			return true
		}
	}
	return false
}

// PilesAt returns the piles hosted at dock d.
func (reg *Registry) PilesAt(d DockID) []PileID { return reg.pilesAt[d] }

// Exclusive reports whether docks admit at most one robot.
func (reg *Registry) Exclusive() bool { return reg.Occupancy == OccupancyExclusive }
