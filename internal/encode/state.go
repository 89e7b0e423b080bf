package encode

// State is a complete truth assignment over a vocabulary, indexed by
// FluentID. Every fluent is represented explicitly; a fresh State is all
// false and Encode fills in every value, so absence never silently means
// anything.
type State []bool

// Clone returns an independent copy of s.
func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// Holds reports the truth value of f.
func (s State) Holds(f FluentID) bool { return s[f] }

// Set assigns the truth value of f.
func (s State) Set(f FluentID, v bool) { s[f] = v }

// CountTrue returns how many fluents are true.
func (s State) CountTrue() int {
	n := 0
	for _, v := range s {
		if v {
			n++
		}
	}
	return n
}
