// Package particle implements the simulated (as opposed to ephemeris) view
// of every body: a flat set of point masses advanced under one of three
// gravity kernels by an adaptive RK4 integrator.
package particle

import (
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

// Particle is the simulated state of one body: position, velocity, mass,
// and standard gravitational parameter. Active is cleared on collision and
// excludes the particle from further force accumulation without removing
// it from the set.
type Particle struct {
	Name     string
	Position vector3.Vector3
	Velocity vector3.Vector3
	Mass     float64 // kg
	Mu       float64 // G*Mass, m^3/s^2
	Radius   float64 // m, used for collision detection
	Active   bool
}

// Snapshot is a deep copy of a Particle's dynamical state, used by the
// integrator to roll back a diverged step.
type Snapshot struct {
	Position vector3.Vector3
	Velocity vector3.Vector3
	Active   bool
}

func (p *Particle) snapshot() Snapshot {
	return Snapshot{Position: p.Position, Velocity: p.Velocity, Active: p.Active}
}

func (p *Particle) restore(s Snapshot) {
	p.Position = s.Position
	p.Velocity = s.Velocity
	p.Active = s.Active
}
