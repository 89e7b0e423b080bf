package planner

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/elektrokombinacija/dwr-planning/internal/ground"
	"github.com/elektrokombinacija/dwr-planning/internal/problem"
)

const domainName = "dwr"

// names maps fluents and action instances to planner-safe symbols and
// back. Symbols keep only [a-z0-9_-], so two distinct names can mangle
// to the same base; collisions get a numeric suffix.
type names struct {
	fluent []string
	action []string
	back   map[string]*ground.Action
}

func buildNames(in *problem.Instance) *names {
	used := make(map[string]bool, in.Vocabulary.Len()+len(in.Actions))
	n := &names{
		fluent: make([]string, in.Vocabulary.Len()),
		action: make([]string, len(in.Actions)),
		back:   make(map[string]*ground.Action, len(in.Actions)),
	}
	for _, f := range in.Vocabulary.Fluents() {
		n.fluent[f.ID] = uniqueSymbol(mangle(f.Name), used)
	}
	for i, a := range in.Actions {
		sym := uniqueSymbol(mangle(a.Name), used)
		n.action[i] = sym
		n.back[sym] = a
	}
	return n
}

func mangle(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ')':
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func uniqueSymbol(base string, used map[string]bool) string {
	s := base
	for i := 2; used[s]; i++ {
		s = fmt.Sprintf("%s_%d", base, i)
	}
	used[s] = true
	return s
}

func problemName(name string) string {
	s := mangle(strings.ToLower(name))
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		s = "p" + s
	}
	return s
}

// writeDomain emits a ground propositional domain: every fluent is a
// parameterless predicate, every action instance a parameterless
// action.
func writeDomain(w io.Writer, in *problem.Instance, n *names) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "(define (domain %s)\n", domainName)
	fmt.Fprintln(bw, "  (:requirements :strips :negative-preconditions)")
	fmt.Fprintln(bw, "  (:predicates")
	for _, sym := range n.fluent {
		fmt.Fprintf(bw, "    (%s)\n", sym)
	}
	fmt.Fprintln(bw, "  )")
	for i, a := range in.Actions {
		fmt.Fprintf(bw, "  (:action %s\n", n.action[i])
		fmt.Fprintln(bw, "    :parameters ()")
		fmt.Fprint(bw, "    :precondition (and")
		for _, f := range a.Pre {
			fmt.Fprintf(bw, " (%s)", n.fluent[f])
		}
		for _, f := range a.PreNeg {
			fmt.Fprintf(bw, " (not (%s))", n.fluent[f])
		}
		fmt.Fprintln(bw, ")")
		fmt.Fprint(bw, "    :effect (and")
		for _, f := range a.Add {
			fmt.Fprintf(bw, " (%s)", n.fluent[f])
		}
		for _, f := range a.Del {
			fmt.Fprintf(bw, " (not (%s))", n.fluent[f])
		}
		fmt.Fprintln(bw, ")")
		fmt.Fprintln(bw, "  )")
	}
	fmt.Fprintln(bw, ")")
	return bw.Flush()
}

func writeProblem(w io.Writer, in *problem.Instance, n *names) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "(define (problem %s)\n", problemName(in.Name))
	fmt.Fprintf(bw, "  (:domain %s)\n", domainName)
	fmt.Fprintln(bw, "  (:init")
	for id, v := range in.Init {
		if v {
			fmt.Fprintf(bw, "    (%s)\n", n.fluent[id])
		}
	}
	fmt.Fprintln(bw, "  )")
	fmt.Fprint(bw, "  (:goal (and")
	for _, l := range in.Goal {
		if l.Value {
			fmt.Fprintf(bw, " (%s)", n.fluent[l.Fluent])
		} else {
			fmt.Fprintf(bw, " (not (%s))", n.fluent[l.Fluent])
		}
	}
	fmt.Fprintln(bw, "))")
	fmt.Fprintln(bw, ")")
	return bw.Flush()
}

// parsePlan reads an IPC-style plan file: one parenthesized ground step
// per line, ';' starting a comment.
func parsePlan(r io.Reader, n *names) (ground.Plan, error) {
	var plan ground.Plan
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
			return nil, adapterErrf("parse", "plan line %d: %q", lineno, line)
		}
		fields := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(line, "("), ")"))
		if len(fields) != 1 {
			return nil, adapterErrf("parse", "plan line %d: %q is not a ground step", lineno, line)
		}
		a, ok := n.back[strings.ToLower(fields[0])]
		if !ok {
			return nil, adapterErrf("parse", "plan line %d: unknown action %q", lineno, fields[0])
		}
		plan = append(plan, a)
	}
	if err := sc.Err(); err != nil {
		return nil, &AdapterError{Op: "parse", Err: err}
	}
	return plan, nil
}
