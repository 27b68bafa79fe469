package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockQuerier answers block occupancy at world block coordinates. Block
// (x,y,z) fills the unit cube [x,x+1)×[y,y+1)×[z,z+1).
type BlockQuerier interface {
	IsAir(x, y, z int) bool
}

// Box is an axis-aligned body anchored at its feet: it spans HalfWidth on
// either side of the position in X and Z and Height upwards.
type Box struct {
	HalfWidth float32
	Height    float32
}

// PlayerBox is the standing player body.
var PlayerBox = Box{HalfWidth: 0.3, Height: 1.8}

func floorInt(v float32) int {
	return int(math.Floor(float64(v)))
}

// BlockPos returns the block containing a world point.
func BlockPos(pos mgl32.Vec3) [3]int {
	return [3]int{floorInt(pos.X()), floorInt(pos.Y()), floorInt(pos.Z())}
}

// SolidAt reports whether the point lies inside a non-air block.
func SolidAt(pos mgl32.Vec3, q BlockQuerier) bool {
	b := BlockPos(pos)
	return !q.IsAir(b[0], b[1], b[2])
}

// Collides checks if a body at pos overlaps any solid block. Touching a
// face is not a collision.
func Collides(pos mgl32.Vec3, box Box, q BlockQuerier) bool {
	minX, maxX := pos.X()-box.HalfWidth, pos.X()+box.HalfWidth
	minY, maxY := pos.Y(), pos.Y()+box.Height
	minZ, maxZ := pos.Z()-box.HalfWidth, pos.Z()+box.HalfWidth

	for x := floorInt(minX); x <= floorInt(maxX); x++ {
		for y := floorInt(minY); y <= floorInt(maxY); y++ {
			for z := floorInt(minZ); z <= floorInt(maxZ); z++ {
				if q.IsAir(x, y, z) {
					continue
				}
				bx, by, bz := float32(x), float32(y), float32(z)
				if minX < bx+1 && maxX > bx &&
					minY < by+1 && maxY > by &&
					minZ < bz+1 && maxZ > bz {
					return true
				}
			}
		}
	}
	return false
}

// FindGroundLevel scans down from fromY under the body's footprint and
// returns the top of the highest solid block at or below it. ok is false
// when nothing solid exists above floorY.
func FindGroundLevel(x, z, fromY float32, box Box, floorY int, q BlockQuerier) (level float32, ok bool) {
	minX := floorInt(x - box.HalfWidth)
	maxX := floorInt(x + box.HalfWidth)
	minZ := floorInt(z - box.HalfWidth)
	maxZ := floorInt(z + box.HalfWidth)

	best := floorY - 1
	for bx := minX; bx <= maxX; bx++ {
		for bz := minZ; bz <= maxZ; bz++ {
			for by := floorInt(fromY); by >= floorY && by > best; by-- {
				if !q.IsAir(bx, by, bz) {
					best = by
					break
				}
			}
		}
	}
	if best < floorY {
		return 0, false
	}
	return float32(best + 1), true
}
