package player

import (
	"math"

	"voxel-client/internal/physics"
	"voxel-client/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Update advances the player by dt seconds, resolving collisions one axis
// at a time in Y, X, Z order.
func (p *Player) Update(dt float64, m Movement, q physics.BlockQuerier) {
	defer profiling.Track("player.Update")()
	for dt > 0 {
		step := min(dt, maxStep)
		p.step(float32(step), m, q)
		dt -= step
	}
}

func (p *Player) step(dt float32, m Movement, q physics.BlockQuerier) {
	p.IsSneaking = m.Sneak && !p.IsFlying
	p.IsSprinting = m.Sprint && m.Forward > 0 && !p.IsSneaking

	// Calculate movement based on camera direction
	yawRad := float64(mgl32.DegToRad(float32(p.CamYaw)))
	frontX := float32(math.Cos(yawRad))
	frontZ := float32(math.Sin(yawRad))
	strafeX := float32(math.Cos(yawRad + math.Pi/2))
	strafeZ := float32(math.Sin(yawRad + math.Pi/2))

	wish := mgl32.Vec2{
		m.Strafe*strafeX + m.Forward*frontX,
		m.Strafe*strafeZ + m.Forward*frontZ,
	}
	if l := wish.Len(); l > 1 {
		wish = wish.Mul(1 / l)
	}

	speed := float32(WalkSpeed)
	switch {
	case p.IsFlying:
		speed = FlySpeed
	case p.IsSneaking:
		speed *= SneakMultiplier
	case p.IsSprinting:
		speed *= SprintMultiplier
	}

	if wish.Len() > 0 {
		p.Velocity[0] = wish.X() * speed
		p.Velocity[2] = wish.Y() * speed
	} else {
		drag := float32(math.Pow(GroundDrag, float64(dt)))
		p.Velocity[0] *= drag
		p.Velocity[2] *= drag
		if math.Abs(float64(p.Velocity[0])) < 0.005 {
			p.Velocity[0] = 0
		}
		if math.Abs(float64(p.Velocity[2])) < 0.005 {
			p.Velocity[2] = 0
		}
	}

	if p.IsFlying {
		p.Velocity[1] = 0
		if m.Jump {
			p.Velocity[1] = FlySpeed
		} else if m.Sneak {
			p.Velocity[1] = -FlySpeed
		}
	} else {
		if m.Jump && p.OnGround {
			p.Velocity[1] = JumpVelocity
			p.OnGround = false
		}
		p.Velocity[1] -= Gravity * dt
		if p.Velocity[1] < TerminalVelocity {
			p.Velocity[1] = TerminalVelocity
		}
	}

	newPos := p.Position.Add(p.Velocity.Mul(dt))

	testPosY := mgl32.Vec3{p.Position[0], newPos[1], p.Position[2]}
	if !physics.Collides(testPosY, p.Box, q) {
		p.Position[1] = newPos[1]
		p.OnGround = false
	} else {
		if p.Velocity[1] <= 0 {
			if level, ok := physics.FindGroundLevel(p.Position[0], p.Position[2], p.Position[1], p.Box, p.FloorY, q); ok && level <= p.Position[1] {
				p.Position[1] = level
			}
			p.OnGround = !p.IsFlying
		}
		p.Velocity[1] = 0
	}

	testPosX := mgl32.Vec3{newPos[0], p.Position[1], p.Position[2]}
	if !physics.Collides(testPosX, p.Box, q) {
		p.Position[0] = newPos[0]
	} else {
		p.Velocity[0] = 0
		p.IsSprinting = false
	}

	testPosZ := mgl32.Vec3{p.Position[0], p.Position[1], newPos[2]}
	if !physics.Collides(testPosZ, p.Box, q) {
		p.Position[2] = newPos[2]
	} else {
		p.Velocity[2] = 0
		p.IsSprinting = false
	}
}
