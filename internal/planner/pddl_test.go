package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/dwr-planning/internal/core"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
)

func lineInstance(t *testing.T, goal []problem.Cond) *problem.Instance {
	t.Helper()
	reg, err := core.NewRegistry(core.Config{
		Docks: []core.DockSpec{
			{Name: "d1", Adjacent: []string{"d2"}},
			{Name: "d2", Adjacent: []string{"d1", "d3"}},
			{Name: "d3", Adjacent: []string{"d2"}},
		},
		Robots: []core.RobotSpec{
			{Name: "r1", Slots: 1, MaxLoad: 6},
			{Name: "r2", Slots: 1, MaxLoad: 6},
		},
		Piles: []core.PileSpec{
			{Name: "p1", Dock: "d1"},
			{Name: "p2", Dock: "d2"},
			{Name: "p3", Dock: "d3"},
		},
		Containers: []core.ContainerSpec{
			{Name: "c1", Weight: 2},
			{Name: "c2", Weight: 4},
			{Name: "c3", Weight: 6},
		},
	})
	require.NoError(t, err)
	in, err := problem.Assemble("three-dock-line", reg, problem.Init{
		RobotDocks: map[string]string{"r1": "d1", "r2": "d2"},
		PileStacks: map[string][]string{
			"p1": {"c1"},
			"p2": {"c2"},
			"p3": {"c3"},
		},
	}, goal)
	require.NoError(t, err)
	return in
}

func moveGoal() []problem.Cond {
	return []problem.Cond{{Kind: problem.ContainerInPile, Container: "c1", Pile: "p3"}}
}

func TestWriteDomain(t *testing.T) {
	in := lineInstance(t, moveGoal())
	n := buildNames(in)
	var b strings.Builder
	require.NoError(t, writeDomain(&b, in, n))
	out := b.String()

	require.Contains(t, out, "(define (domain dwr)")
	require.Contains(t, out, "(:requirements :strips :negative-preconditions)")
	require.Contains(t, out, "(:action move_r1_d1_d2")
	require.Contains(t, out, ":parameters ()")
	require.Contains(t, out, "(:action pickup_1_0_r1_c1_p1_d1")
	require.Contains(t, out, "(not (")
}

func TestWriteProblem(t *testing.T) {
	in := lineInstance(t, moveGoal())
	n := buildNames(in)
	var b strings.Builder
	require.NoError(t, writeProblem(&b, in, n))
	out := b.String()

	require.Contains(t, out, "(define (problem three-dock-line)")
	require.Contains(t, out, "(:domain dwr)")
	require.Contains(t, out, "(robot_at_r1_d1)")
	require.Contains(t, out, "(adjacent_d1_d2)")
	require.Contains(t, out, "(:goal (and (container_in_pile_c1_p3)))")
}

func TestNameCollisionsGetSuffixes(t *testing.T) {
	// Underscores in entity names can make distinct instance names
	// mangle to the same symbol: move(r,a,b_c) and move(r,a_b,c) both
	// flatten to move_r_a_b_c.
	reg, err := core.NewRegistry(core.Config{
		Docks: []core.DockSpec{
			{Name: "a", Adjacent: []string{"b_c"}},
			{Name: "b_c", Adjacent: []string{"a"}},
			{Name: "a_b", Adjacent: []string{"c"}},
			{Name: "c", Adjacent: []string{"a_b"}},
		},
		Robots: []core.RobotSpec{{Name: "r", Slots: 0, MaxLoad: 5}},
	})
	require.NoError(t, err)
	in, err := problem.Assemble("collide", reg, problem.Init{
		RobotDocks: map[string]string{"r": "a"},
	}, []problem.Cond{{Kind: problem.RobotAt, Robot: "r", Dock: "b_c"}})
	require.NoError(t, err)

	n := buildNames(in)
	seen := map[string]bool{}
	for _, sym := range n.action {
		require.False(t, seen[sym], "duplicate symbol %s", sym)
		seen[sym] = true
	}
	require.True(t, seen["move_r_a_b_c"])
	require.True(t, seen["move_r_a_b_c_2"])

	plan, err := parsePlan(strings.NewReader("(move_r_a_b_c)\n(move_r_a_b_c_2)\n"), n)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	require.NotEqual(t, plan[0].Name, plan[1].Name)
}

func TestParsePlan(t *testing.T) {
	in := lineInstance(t, moveGoal())
	n := buildNames(in)

	plan, err := parsePlan(strings.NewReader(
		"; preamble\n\n(move_r1_d1_d2)\n(MOVE_R1_D2_D3)\n; cost = 2 (unit cost)\n"), n)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	require.Equal(t, "move(r1,d1,d2)", plan[0].Name)
	require.Equal(t, "move(r1,d2,d3)", plan[1].Name)

	_, err = parsePlan(strings.NewReader("garbage\n"), n)
	require.Error(t, err)
	_, err = parsePlan(strings.NewReader("(two words)\n"), n)
	require.Error(t, err)
	_, err = parsePlan(strings.NewReader("(teleport_r1)\n"), n)
	require.Error(t, err)
}

func TestProblemName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"three-dock-line", "three-dock-line"},
		{"Harbor Demo", "harbor_demo"},
		{"42nd", "p42nd"},
		{"", "p"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, problemName(tc.in), "problemName(%q)", tc.in)
	}
}
