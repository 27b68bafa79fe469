package world

import "fmt"

// Direction is one of the six axis-aligned neighbour directions.
type Direction uint8

const (
	DirPosX Direction = iota
	DirNegX
	DirPosY
	DirNegY
	DirPosZ
	DirNegZ
)

// Directions lists every direction in meshing and stitching order.
var Directions = [6]Direction{DirPosX, DirNegX, DirPosY, DirNegY, DirPosZ, DirNegZ}

// Axis returns 0, 1 or 2 for X, Y or Z.
func (d Direction) Axis() int {
	switch d {
	case DirPosX, DirNegX:
		return 0
	case DirPosY, DirNegY:
		return 1
	case DirPosZ, DirNegZ:
		return 2
	}
	panic(fmt.Sprintf("world: invalid direction %d", d))
}

// Sign returns +1 for positive directions and -1 for negative ones.
func (d Direction) Sign() int {
	switch d {
	case DirPosX, DirPosY, DirPosZ:
		return 1
	case DirNegX, DirNegY, DirNegZ:
		return -1
	}
	panic(fmt.Sprintf("world: invalid direction %d", d))
}

// Opposite returns the direction pointing the other way along the same axis.
func (d Direction) Opposite() Direction {
	switch d {
	case DirPosX:
		return DirNegX
	case DirNegX:
		return DirPosX
	case DirPosY:
		return DirNegY
	case DirNegY:
		return DirPosY
	case DirPosZ:
		return DirNegZ
	case DirNegZ:
		return DirPosZ
	}
	panic(fmt.Sprintf("world: invalid direction %d", d))
}

// Offset returns the unit lattice step in direction d.
func (d Direction) Offset() LatticePos {
	var o [3]int
	o[d.Axis()] = d.Sign()
	return LatticePos{X: o[0], Y: o[1], Z: o[2]}
}

func (d Direction) String() string {
	switch d {
	case DirPosX:
		return "+x"
	case DirNegX:
		return "-x"
	case DirPosY:
		return "+y"
	case DirNegY:
		return "-y"
	case DirPosZ:
		return "+z"
	case DirNegZ:
		return "-z"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}
