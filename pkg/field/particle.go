package field

import (
	"math"
	"math/rand"

	"github.com/decker502/particlenet/internal/paint"
	"github.com/decker502/particlenet/pkg/config"
)

// Particle is a single point of the network.
//
// Position and velocity are in surface pixels; velocity is per frame before
// the speed scalar and scroll multiplier are applied. Radius never changes
// after creation; Color is reassigned by the owning Simulator on theme changes.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  paint.Color
}

// newParticle creates a particle with a uniformly random position over the
// surface, a velocity in [-max, max] on each axis and a radius in [min, max].
func newParticle(rng *rand.Rand, width, height float64, spawn config.SpawnConfig, clr paint.Color) Particle {
	return Particle{
		X:      rng.Float64() * width,
		Y:      rng.Float64() * height,
		VX:     (rng.Float64()*2 - 1) * spawn.MaxVelocity,
		VY:     (rng.Float64()*2 - 1) * spawn.MaxVelocity,
		Radius: spawn.MinRadius + rng.Float64()*(spawn.MaxRadius-spawn.MinRadius),
		Color:  clr,
	}
}

// Update advances the particle by its velocity scaled by factor and reflects
// it off the surface edges.
//
// Reflection only flips the velocity sign, the position is not clamped: a
// particle may end the frame slightly outside [0, width]×[0, height] and
// moves back in on the next frame.
func (p *Particle) Update(width, height, factor float64) {
	p.X += p.VX * factor
	p.Y += p.VY * factor

	if p.X < 0 || p.X > width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > height {
		p.VY = -p.VY
	}
}

// Distance returns the Euclidean distance between p and (x, y).
func (p *Particle) Distance(x, y float64) float64 {
	return math.Hypot(p.X-x, p.Y-y)
}
