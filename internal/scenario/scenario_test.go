package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/dwr-planning/internal/problem"
)

const sampleScenario = `name: harbor-demo
occupancy: shared
docks:
  - name: d1
    adjacent: [d2]
  - name: d2
    adjacent: [d1]
robots:
  - name: r1
    slots: 1
    max_load: 6
    dock: d1
containers:
  - name: c1
    weight: 2
piles:
  - name: p1
    dock: d1
    stack: [c1]
  - name: p2
    dock: d2
goal:
  - container: c1
    in_pile: p2
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sampleScenario))
	require.NoError(t, err)
	assert.Equal(t, "harbor-demo", s.Name)
	assert.Len(t, s.Docks, 2)
	assert.Len(t, s.Goal, 1)
	require.NotEmpty(t, s.Piles[0].Stack)
	assert.Equal(t, "c1", s.Piles[0].Stack[0], "stack not preserved")
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"empty payload", ""},
		{"no name", "docks:\n  - name: d1\n"},
		{"no docks", "name: x\n"},
		{"bad occupancy", "name: x\noccupancy: both\ndocks:\n  - name: d1\n"},
		{"robot without dock", "name: x\ndocks:\n  - name: d1\nrobots:\n  - name: r1\n    slots: 1\n    max_load: 6\n"},
		{"goal without relation", "name: x\ndocks:\n  - name: d1\ngoal:\n  - robot: r1\n"},
		{"goal with two relations", "name: x\ndocks:\n  - name: d1\ngoal:\n  - robot: r1\n    at: d1\n    free: true\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.payload))
			assert.Error(t, err)
		})
	}
}

func TestBuild(t *testing.T) {
	s, err := Parse([]byte(sampleScenario))
	require.NoError(t, err)
	in, err := s.Build()
	require.NoError(t, err)
	assert.NotEmpty(t, in.Actions)
	assert.Len(t, in.Goal, 1)
	assert.False(t, in.GoalSatisfied(in.Init), "goal should not hold initially")
}

func TestGoalCondMapping(t *testing.T) {
	cases := []struct {
		name string
		goal GoalCond
		kind problem.CondKind
	}{
		{"robot at", GoalCond{Robot: "r1", At: "d2"}, problem.RobotAt},
		{"robot free", GoalCond{Robot: "r1", Free: true}, problem.RobotFree},
		{"holds", GoalCond{Robot: "r1", Holds: "c1", Slot: 2}, problem.ContainerHeldBy},
		{"in pile", GoalCond{Container: "c1", InPile: "p2"}, problem.ContainerInPile},
		{"on top", GoalCond{Container: "c1", OnTopOf: "p2"}, problem.ContainerOnTop},
		{"on", GoalCond{Container: "c2", On: "c1", InPile: "p1"}, problem.ContainerOn},
		{"empty", GoalCond{Empty: "p1"}, problem.PileEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := tc.goal.cond()
			require.NoError(t, err)
			assert.Equal(t, tc.kind, c.Kind)
		})
	}

	neg, err := GoalCond{Empty: "p1", Not: true}.cond()
	require.NoError(t, err)
	assert.True(t, neg.Negated, "not flag lost in conversion")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := Parse([]byte(sampleScenario))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "harbor.yaml")
	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded, "round trip changed the scenario")
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(sampleScenario), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignore"), 0644))

	files, err := LoadDir(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.yaml", filepath.Base(files[0].Path), "files not sorted by path")

	missing, err := LoadDir(filepath.Join(root, "absent"))
	require.NoError(t, err, "missing dir should load as empty")
	assert.Nil(t, missing)
}

func TestCatalogBuilds(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Catalog() {
		assert.False(t, seen[s.Name], "duplicate catalog name %s", s.Name)
		seen[s.Name] = true
		_, err := s.Build()
		assert.NoError(t, err, s.Name)
	}

	_, ok := ByName("three-dock-line")
	assert.True(t, ok, "three-dock-line missing from the catalog")
	_, ok = ByName("nope")
	assert.False(t, ok, "ByName found a scenario that does not exist")
}

func TestTopologies(t *testing.T) {
	line := Line(3)
	require.Len(t, line, 3)
	assert.Len(t, line[0].Adjacent, 1)
	assert.Len(t, line[1].Adjacent, 2)

	ring := Ring(4)
	assert.Len(t, ring[0].Adjacent, 2, "ring docks should have two neighbors")

	star := Star(4)
	assert.Len(t, star[0].Adjacent, 3)
	assert.Len(t, star[1].Adjacent, 1)

	grid := Grid(3, 2)
	require.Len(t, grid, 6)
	assert.Len(t, grid[0].Adjacent, 2)
	assert.Len(t, grid[1].Adjacent, 3)

	// Every builder output must survive registry construction.
	for name, docks := range map[string][]Dock{"line": line, "ring": ring, "star": star, "grid": grid} {
		s := &Scenario{Name: name, Docks: docks}
		_, err := s.Build()
		assert.NoError(t, err, name)
	}
}
