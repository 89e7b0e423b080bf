// Package encode translates the dock worker model into a flat boolean
// fluent vocabulary and back. Integer weights, capacities and stack
// positions become families of mutually exclusive flags; Decode recovers
// the structured model and rejects assignments no legal state maps to.
package encode

import "github.com/elektrokombinacija/dwr-planning/internal/core"

// FluentID indexes a fluent within a Vocabulary.
type FluentID int

// Family identifies a fluent template.
type Family int

const (
	// Static families: truth fixed at construction, never flipped by actions.
	FamAdjacent        Family = iota // adjacent(d1,d2)
	FamPileAtDock                    // pile_at_dock(p,d)
	FamContainerWeight               // container_weight_W(c)
	FamRobotCapacity                 // robot_capacity_T(r)
	FamRobotCanCarry                 // robot_can_carry_K(r)

	// Dynamic families.
	FamRobotAt           // robot_at(r,d)
	FamOccupied          // occupied(d), exclusive occupancy only
	FamRobotFree         // robot_free(r)
	FamRobotWeight       // robot_weight_L(r)
	FamRobotHasContainer // robot_has_container_S(r)
	FamContainerInSlot   // container_in_robot_slot_S(r,c)
	FamContainerInPile   // container_in_pile(c,p)
	FamContainerOnTop    // container_on_top_of_pile(c,p)
	FamContainerUnder    // container_under_in_pile(c_below,c_above,p)
	FamContainerAtBottom // container_at_bottom(c,p)
	FamPileEmpty         // pile_empty(p)
)

// Fluent is one ground boolean state variable. Only the fields named in the
// family's comment above are meaningful; the rest keep their zero value.
type Fluent struct {
	ID     FluentID
	Family Family
	Name   string
	Static bool

	Robot      core.RobotID
	Dock       core.DockID
	Dock2      core.DockID // FamAdjacent target dock
	Pile       core.PileID
	Container  core.ContainerID
	Container2 core.ContainerID // FamContainerUnder: the container above
	Level      int              // weight class, threshold, load level, slot or carry count
}

func (f Fluent) String() string { return f.Name }
