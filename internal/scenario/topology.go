package scenario

import "fmt"

// Topology builders return dock lists with symmetric adjacency, named
// d1..dN, ready to drop into a Scenario.

// Line connects n docks in a chain: d1-d2-...-dn.
func Line(n int) []Dock {
	docks := make([]Dock, n)
	for i := 0; i < n; i++ {
		d := Dock{Name: dockName(i)}
		if i > 0 {
			d.Adjacent = append(d.Adjacent, dockName(i-1))
		}
		if i < n-1 {
			d.Adjacent = append(d.Adjacent, dockName(i+1))
		}
		docks[i] = d
	}
	return docks
}

// Ring closes the chain: dn is adjacent to d1. A ring needs at least
// three docks; smaller n falls back to Line.
func Ring(n int) []Dock {
	if n < 3 {
		return Line(n)
	}
	docks := make([]Dock, n)
	for i := 0; i < n; i++ {
		docks[i] = Dock{
			Name:     dockName(i),
			Adjacent: []string{dockName((i + n - 1) % n), dockName((i + 1) % n)},
		}
	}
	return docks
}

// Star connects d1 to every other dock.
func Star(n int) []Dock {
	docks := make([]Dock, n)
	hub := Dock{Name: dockName(0)}
	for i := 1; i < n; i++ {
		hub.Adjacent = append(hub.Adjacent, dockName(i))
		docks[i] = Dock{Name: dockName(i), Adjacent: []string{dockName(0)}}
	}
	docks[0] = hub
	return docks
}

// Grid lays out w x h docks 4-connected, row major.
func Grid(w, h int) []Dock {
	docks := make([]Dock, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			d := Dock{Name: dockName(i)}
			if x > 0 {
				d.Adjacent = append(d.Adjacent, dockName(i-1))
			}
			if x < w-1 {
				d.Adjacent = append(d.Adjacent, dockName(i+1))
			}
			if y > 0 {
				d.Adjacent = append(d.Adjacent, dockName(i-w))
			}
			if y < h-1 {
				d.Adjacent = append(d.Adjacent, dockName(i+w))
			}
			docks = append(docks, d)
		}
	}
	return docks
}

func dockName(i int) string {
	return fmt.Sprintf("d%d", i+1)
}
