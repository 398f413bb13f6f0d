package solarsystem

import (
	"github.com/nicokuijpers/solarsystemsim/calendar"
	"github.com/nicokuijpers/solarsystemsim/particle"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

// State is the complete, exported contents of a SimulationState: every
// field that makes two simulations observably different, and nothing else
// (ephemeris backends and Config are reconstruction-time concerns, not
// simulated state). The snapshot package encodes this verbatim.
type State struct {
	Instant   calendar.Instant
	Kind      particle.Kind
	Bodies    map[string]BodyState
	Particles map[string]ParticleState
}

// BodyState is the exported form of Body, with the trajectory tail
// flattened to its oldest-first point slice.
type BodyState struct {
	Name       string
	DiameterM  float64
	CenterBody string
	Position   vector3.Vector3
	Velocity   vector3.Vector3
	Active     bool
	Trajectory []vector3.Vector3
}

// ParticleState is the exported form of particle.Particle.
type ParticleState struct {
	Name     string
	Position vector3.Vector3
	Velocity vector3.Vector3
	Mu       float64
	Mass     float64
	Radius   float64
	Active   bool
}

// Export returns a deep copy of the facade's complete simulated state.
func (s *SimulationState) Export() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bodies := make(map[string]BodyState, len(s.bodies))
	for name, b := range s.bodies {
		bodies[name] = BodyState{
			Name:       b.Name,
			DiameterM:  b.DiameterM,
			CenterBody: b.CenterBody,
			Position:   b.Position,
			Velocity:   b.Velocity,
			Active:     b.Active,
			Trajectory: b.Trajectory.Points(),
		}
	}
	particles := make(map[string]ParticleState, len(s.particles))
	for name, p := range s.particles {
		particles[name] = ParticleState{
			Name:     p.Name,
			Position: p.Position,
			Velocity: p.Velocity,
			Mu:       p.Mu,
			Mass:     p.Mass,
			Radius:   p.Radius,
			Active:   p.Active,
		}
	}
	return State{
		Instant:   s.instant,
		Kind:      s.system.Kind,
		Bodies:    bodies,
		Particles: particles,
	}
}

// Import replaces the facade's simulated state with st, leaving its
// ephemeris backends and Config untouched.
func (s *SimulationState) Import(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bodies := make(map[string]*Body, len(st.Bodies))
	for name, bs := range st.Bodies {
		tail := newTrajectoryTail()
		for _, p := range bs.Trajectory {
			tail.push(p)
		}
		bodies[name] = &Body{
			Name:       bs.Name,
			DiameterM:  bs.DiameterM,
			CenterBody: bs.CenterBody,
			Position:   bs.Position,
			Velocity:   bs.Velocity,
			Active:     bs.Active,
			Trajectory: tail,
		}
	}
	particles := make(map[string]*particle.Particle, len(st.Particles))
	for name, ps := range st.Particles {
		particles[name] = &particle.Particle{
			Name:     ps.Name,
			Position: ps.Position,
			Velocity: ps.Velocity,
			Mu:       ps.Mu,
			Mass:     ps.Mass,
			Radius:   ps.Radius,
			Active:   ps.Active,
		}
	}

	s.bodies = bodies
	s.particles = particles
	s.instant = st.Instant
	s.system.Kind = st.Kind
	s.rebuildSystem()
}
