package world

// BlockType is a single-byte block code. Air is the zero value and the only
// non-solid type.
type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeDirt
	BlockTypeGrass
	BlockTypeStone
	BlockTypeWater
)

// IsSolid reports whether the block is visible to the mesher.
func (b BlockType) IsSolid() bool {
	return b != BlockTypeAir
}

func (b BlockType) String() string {
	switch b {
	case BlockTypeAir:
		return "air"
	case BlockTypeDirt:
		return "dirt"
	case BlockTypeGrass:
		return "grass"
	case BlockTypeStone:
		return "stone"
	case BlockTypeWater:
		return "water"
	default:
		return "unknown"
	}
}
