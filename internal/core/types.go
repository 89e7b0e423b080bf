// Package core defines the dock worker robots domain model.
package core

// RobotID indexes a robot within a Registry.
type RobotID int

// DockID indexes a dock within a Registry.
type DockID int

// PileID indexes a pile within a Registry.
type PileID int

// ContainerID indexes a container within a Registry.
type ContainerID int

// WeightClass is a container weight in tonnes.
type WeightClass int

const (
	Weight2 WeightClass = 2
	Weight4 WeightClass = 4
	Weight6 WeightClass = 6
)

// WeightClasses returns the supported weight enumeration in ascending order.
func WeightClasses() []WeightClass {
	return []WeightClass{Weight2, Weight4, Weight6}
}

// Valid reports whether w belongs to the supported enumeration.
func (w WeightClass) Valid() bool {
	return w == Weight2 || w == Weight4 || w == Weight6
}

// Threshold is a robot weight-capacity limit in tonnes.
type Threshold int

const (
	Threshold5  Threshold = 5
	Threshold6  Threshold = 6
	Threshold8  Threshold = 8
	Threshold10 Threshold = 10
)

// Thresholds returns the supported threshold enumeration in ascending order.
func Thresholds() []Threshold {
	return []Threshold{Threshold5, Threshold6, Threshold8, Threshold10}
}

// Valid reports whether t belongs to the supported enumeration.
func (t Threshold) Valid() bool {
	return t == Threshold5 || t == Threshold6 || t == Threshold8 || t == Threshold10
}

// MaxSlots is the largest supported robot slot capacity.
const MaxSlots = 3

// OccupancyMode controls how many robots may share a dock.
type OccupancyMode int

const (
	// OccupancyShared lets any number of robots occupy one dock.
	OccupancyShared OccupancyMode = iota
	// OccupancyExclusive restricts every dock to at most one robot.
	OccupancyExclusive
)

func (m OccupancyMode) String() string {
	switch m {
	case OccupancyShared:
		return "shared"
	case OccupancyExclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}
