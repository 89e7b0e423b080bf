package core

// Robot is a container-carrying agent.
// Slots and MaxLoad are fixed for the life of a problem instance.
type Robot struct {
	ID      RobotID
	Name    string
	Slots   int       // 0..MaxSlots; 0 means the robot only moves
	MaxLoad Threshold // weight-capacity threshold (tonnes)
}

// CanCarry reports whether the robot has at least k cargo slots.
func (r *Robot) CanCarry(k int) bool {
	return k >= 1 && k <= r.Slots
}

// Dock is a location robots move between. Adjacency lives on the Registry.
type Dock struct {
	ID   DockID
	Name string
}

// Pile is a LIFO container stack hosted at exactly one dock.
type Pile struct {
	ID   PileID
	Name string
	Dock DockID
}

// Container is a stackable load with a fixed weight class.
type Container struct {
	ID     ContainerID
	Name   string
	Weight WeightClass
}
