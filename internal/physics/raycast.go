package physics

import (
	"voxel-client/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

const rayStep = float32(0.02)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// Raycast marches from start along direction and returns the first solid
// block between minDist and maxDist, plus the last air block visited before
// it. direction must be normalised.
func Raycast(start mgl32.Vec3, direction mgl32.Vec3, minDist, maxDist float32, q BlockQuerier) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	steps := int(maxDist / rayStep)

	lastEmptyPos := BlockPos(start)
	result := RaycastResult{Hit: false}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * rayStep
		if dist < minDist {
			continue
		}

		blockPos := BlockPos(start.Add(direction.Mul(dist)))
		if !q.IsAir(blockPos[0], blockPos[1], blockPos[2]) {
			result.HitPosition = blockPos
			result.AdjacentPosition = lastEmptyPos
			result.Distance = dist
			result.Hit = true
			return result
		}

		lastEmptyPos = blockPos
	}

	return result
}
