package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// MaxTerrainHeight bounds every HeightField sample.
const MaxTerrainHeight = 255

var (
	ErrUnknownNoise = errors.New("unknown noise kind")
	ErrInvalidNoise = errors.New("invalid noise settings")
)

// Noise kinds accepted by NewHeightField.
const (
	NoisePerlin  = "perlin"
	NoiseSimplex = "simplex"
	NoiseFlat    = "flat"
)

// HeightField maps a world column to its terrain height. Implementations are
// pure: the same column always yields the same height.
type HeightField interface {
	HeightAt(worldX, worldZ int) int
}

// NoiseSettings parameterises a fractal height field.
type NoiseSettings struct {
	Kind        string
	Seed        int64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Scale       float64 // world units → noise units
	BaseHeight  int
	Amplitude   float64
}

// DefaultNoiseSettings returns a gentle rolling terrain around y=16.
func DefaultNoiseSettings() NoiseSettings {
	return NoiseSettings{
		Kind:        NoisePerlin,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Scale:       1.0 / 64.0,
		BaseHeight:  16,
		Amplitude:   12,
	}
}

// Validate checks the settings without building a field.
func (s NoiseSettings) Validate() error {
	switch s.Kind {
	case NoisePerlin, NoiseSimplex:
	case NoiseFlat:
		if s.BaseHeight < 0 {
			return fmt.Errorf("%w: negative flat height %d", ErrInvalidNoise, s.BaseHeight)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNoise, s.Kind)
	}
	if s.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be >= 1, got %d", ErrInvalidNoise, s.Octaves)
	}
	if s.Persistence <= 0 {
		return fmt.Errorf("%w: persistence must be > 0, got %g", ErrInvalidNoise, s.Persistence)
	}
	if s.Lacunarity <= 0 {
		return fmt.Errorf("%w: lacunarity must be > 0, got %g", ErrInvalidNoise, s.Lacunarity)
	}
	if s.Scale <= 0 {
		return fmt.Errorf("%w: scale must be > 0, got %g", ErrInvalidNoise, s.Scale)
	}
	return nil
}

// NewHeightField builds the field selected by s.Kind.
func NewHeightField(s NoiseSettings) (HeightField, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Kind {
	case NoisePerlin:
		return NewPerlinField(s), nil
	case NoiseSimplex:
		return NewSimplexField(s), nil
	default:
		return FlatField(s.BaseHeight), nil
	}
}

// toHeight maps a noise sample in roughly [-1,1] into [0,MaxTerrainHeight].
func toHeight(n float64, base int, amp float64) int {
	h := math.Floor(float64(base) + n*amp)
	if h < 0 {
		return 0
	}
	if h > MaxTerrainHeight {
		return MaxTerrainHeight
	}
	return int(h)
}

// PerlinField is seeded multi-octave Perlin noise.
type PerlinField struct {
	noise *perlin.Perlin
	s     NoiseSettings
}

// NewPerlinField builds a Perlin field. go-perlin divides each octave's
// amplitude by alpha, so alpha is the reciprocal of persistence.
func NewPerlinField(s NoiseSettings) *PerlinField {
	return &PerlinField{
		noise: perlin.NewPerlin(1/s.Persistence, s.Lacunarity, int32(s.Octaves), s.Seed),
		s:     s,
	}
}

func (f *PerlinField) HeightAt(worldX, worldZ int) int {
	n := f.noise.Noise2D(float64(worldX)*f.s.Scale, float64(worldZ)*f.s.Scale)
	return toHeight(n, f.s.BaseHeight, f.s.Amplitude)
}

// SimplexField sums OpenSimplex octaves with a fixed persistence.
type SimplexField struct {
	noise opensimplex.Noise
	s     NoiseSettings
}

func NewSimplexField(s NoiseSettings) *SimplexField {
	return &SimplexField{noise: opensimplex.New(s.Seed), s: s}
}

func (f *SimplexField) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * f.s.Scale
	z := float64(worldZ) * f.s.Scale
	amplitude := 1.0
	sum := 0.0
	norm := 0.0
	for range f.s.Octaves {
		sum += f.noise.Eval2(x, z) * amplitude
		norm += amplitude
		amplitude *= f.s.Persistence
		x *= f.s.Lacunarity
		z *= f.s.Lacunarity
	}
	return toHeight(sum/norm, f.s.BaseHeight, f.s.Amplitude)
}

// FlatField returns the same height for every column.
type FlatField int

func (f FlatField) HeightAt(int, int) int {
	h := int(f)
	if h < 0 {
		return 0
	}
	if h > MaxTerrainHeight {
		return MaxTerrainHeight
	}
	return h
}
