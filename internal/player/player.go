package player

import (
	"math"

	"voxel-client/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	PlayerEyeHeight = 1.62

	Gravity          = 32.0
	TerminalVelocity = -78.4

	WalkSpeed        = 4.3
	SprintMultiplier = 1.3
	SneakMultiplier  = 0.3
	FlySpeed         = 10.9

	JumpVelocity = 9.4
	// GroundDrag is the fraction of horizontal speed kept per second when
	// no key is held.
	GroundDrag = 1e-4

	// maxStep bounds one integration step so fast frames cannot tunnel.
	maxStep = 0.05
)

// Movement is one frame of player intent, already mapped from keys.
type Movement struct {
	Forward float32 // +1 forward, -1 backward
	Strafe  float32 // +1 right, -1 left
	Jump    bool
	Sneak   bool
	Sprint  bool
}

type Player struct {
	Position mgl32.Vec3 // feet
	Velocity mgl32.Vec3

	// Degrees. Yaw 0 looks down +X, 90 down +Z.
	CamYaw   float64
	CamPitch float64

	OnGround    bool
	IsFlying    bool
	IsSprinting bool
	IsSneaking  bool

	Box         physics.Box
	Sensitivity float64
	// FloorY bounds ground searches.
	FloorY int
}

// New places a player at pos looking down +X.
func New(pos mgl32.Vec3) *Player {
	return &Player{
		Position:    pos,
		Box:         physics.PlayerBox,
		Sensitivity: 0.1,
		FloorY:      -64,
	}
}

// Look applies a mouse delta in screen pixels. Positive dy looks up.
func (p *Player) Look(dx, dy float64) {
	p.CamYaw += dx * p.Sensitivity
	p.CamPitch += dy * p.Sensitivity

	// Constrain pitch
	p.CamPitch = max(-89.0, min(89.0, p.CamPitch))
	p.CamYaw = math.Mod(p.CamYaw, 360)
}

func (p *Player) FrontVector() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(p.CamYaw))
	pt := mgl32.DegToRad(float32(p.CamPitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, PlayerEyeHeight, 0})
}

func (p *Player) ViewMatrix() mgl32.Mat4 {
	eyePos := p.EyePosition()
	return mgl32.LookAtV(eyePos, eyePos.Add(p.FrontVector()), mgl32.Vec3{0, 1, 0})
}

// Target casts the view ray against q within reach.
func (p *Player) Target(q physics.BlockQuerier) physics.RaycastResult {
	return physics.Raycast(p.EyePosition(), p.FrontVector(), physics.MinReachDistance, physics.MaxReachDistance, q)
}

// Spawn drops the player onto the highest solid block of column (x,z)
// below fromY. It reports false when the column has no ground.
func (p *Player) Spawn(x, z, fromY float32, q physics.BlockQuerier) bool {
	level, ok := physics.FindGroundLevel(x, z, fromY, p.Box, p.FloorY, q)
	if !ok {
		p.Position = mgl32.Vec3{x, fromY, z}
		return false
	}
	p.Position = mgl32.Vec3{x, level, z}
	p.Velocity = mgl32.Vec3{}
	p.OnGround = true
	return true
}

// ToggleFlight switches between walking and flying.
func (p *Player) ToggleFlight() {
	p.IsFlying = !p.IsFlying
	p.Velocity[1] = 0
	if p.IsFlying {
		p.OnGround = false
	}
}

// Intersects reports whether block (x,y,z) overlaps the player's body.
// Used to refuse placing a block inside the player.
func (p *Player) Intersects(x, y, z int) bool {
	return physics.Collides(p.Position, p.Box, single{x, y, z})
}

type single [3]int

func (s single) IsAir(x, y, z int) bool {
	return s != single{x, y, z}
}
