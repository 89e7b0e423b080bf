package scenario

// Catalog returns the built-in scenarios, smallest first.
func Catalog() []*Scenario {
	return []*Scenario{
		ClassicExchange(),
		ThreeDockLine(),
		TightThreshold(),
		MixedFleet(),
	}
}

// ByName finds a built-in scenario.
func ByName(name string) (*Scenario, bool) {
	for _, s := range Catalog() {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// ClassicExchange is the textbook single-slot world: two docks, two
// robots, and the tops of two piles that want to trade places.
func ClassicExchange() *Scenario {
	return &Scenario{
		Name:    "classic-exchange",
		Comment: "two single-slot robots swap the pile tops between two docks",
		Docks:   Line(2),
		Robots: []Robot{
			{Name: "r1", Slots: 1, MaxLoad: 6, Dock: "d1"},
			{Name: "r2", Slots: 1, MaxLoad: 6, Dock: "d2"},
		},
		Containers: []Container{
			{Name: "ca", Weight: 2},
			{Name: "cb", Weight: 4},
			{Name: "cc", Weight: 6},
		},
		Piles: []Pile{
			{Name: "p1", Dock: "d1", Stack: []string{"ca", "cb"}},
			{Name: "p2", Dock: "d2", Stack: []string{"cc"}},
		},
		Goal: []GoalCond{
			{Container: "cb", InPile: "p2"},
			{Container: "cc", InPile: "p1"},
		},
	}
}

// ThreeDockLine is the smoke scenario: carry the light container from
// one end of a three-dock line to the other.
func ThreeDockLine() *Scenario {
	return &Scenario{
		Name:    "three-dock-line",
		Comment: "carry c1 from d1 to the pile at d3",
		Docks:   Line(3),
		Robots: []Robot{
			{Name: "r1", Slots: 1, MaxLoad: 6, Dock: "d1"},
			{Name: "r2", Slots: 1, MaxLoad: 6, Dock: "d2"},
		},
		Containers: []Container{
			{Name: "c1", Weight: 2},
			{Name: "c2", Weight: 4},
			{Name: "c3", Weight: 6},
		},
		Piles: []Pile{
			{Name: "p1", Dock: "d1", Stack: []string{"c1"}},
			{Name: "p2", Dock: "d2", Stack: []string{"c2"}},
			{Name: "p3", Dock: "d3", Stack: []string{"c3"}},
		},
		Goal: []GoalCond{
			{Container: "c1", InPile: "p3"},
		},
	}
}

// TightThreshold forces two trips: the shuttle has two slots but a 5 t
// threshold, so it can never carry both 4 t containers at once.
func TightThreshold() *Scenario {
	return &Scenario{
		Name:    "tight-threshold",
		Comment: "two 4 t containers, one 5 t robot, two trips",
		Docks:   Line(2),
		Robots: []Robot{
			{Name: "shuttle", Slots: 2, MaxLoad: 5, Dock: "d1"},
		},
		Containers: []Container{
			{Name: "h1", Weight: 4},
			{Name: "h2", Weight: 4},
		},
		Piles: []Pile{
			{Name: "src", Dock: "d1", Stack: []string{"h1", "h2"}},
			{Name: "dst", Dock: "d2"},
		},
		Goal: []GoalCond{
			{Container: "h1", InPile: "dst"},
			{Container: "h2", InPile: "dst"},
		},
	}
}

// MixedFleet exercises multi-slot robots, exclusive dock occupancy, and
// a ring topology in one scenario.
func MixedFleet() *Scenario {
	return &Scenario{
		Name:      "mixed-fleet",
		Comment:   "three robots of different capacities shuffle a ring",
		Occupancy: "exclusive",
		Docks:     Ring(4),
		Robots: []Robot{
			{Name: "lift", Slots: 1, MaxLoad: 6, Dock: "d1"},
			{Name: "crane", Slots: 2, MaxLoad: 8, Dock: "d2"},
			{Name: "mule", Slots: 3, MaxLoad: 10, Dock: "d3"},
		},
		Containers: []Container{
			{Name: "m1", Weight: 2},
			{Name: "m2", Weight: 2},
			{Name: "m3", Weight: 4},
			{Name: "m4", Weight: 4},
			{Name: "m5", Weight: 6},
		},
		Piles: []Pile{
			{Name: "q1", Dock: "d1", Stack: []string{"m1", "m3"}},
			{Name: "q2", Dock: "d2", Stack: []string{"m2", "m4"}},
			{Name: "q3", Dock: "d3", Stack: []string{"m5"}},
			{Name: "q4", Dock: "d4"},
		},
		Goal: []GoalCond{
			{Container: "m5", InPile: "q4"},
			{Container: "m3", InPile: "q2"},
			{Empty: "q1"},
		},
	}
}
