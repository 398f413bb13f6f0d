package particle

import (
	"math"

	"github.com/nicokuijpers/solarsystemsim/internal/corelog"
	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

// energyDriftBudget bounds the fractional total-energy drift tolerated
// across one RK4 sub-step under NEWTON. A sub-step over the budget is
// rolled back and redone as two half steps. Drift accumulated across
// sub-steps and across calls to Step is not checked.
const energyDriftBudget = 1e-9

// maxSubdivisions caps how many times Step halves dt chasing the energy
// budget; a sub-step at that depth is accepted whatever its drift, so a
// pathological configuration stops subdividing instead of spinning.
const maxSubdivisions = 8

// Kind names the physics kernel an Integrator runs.
type Kind int

const (
	Newton Kind = iota
	PPNGeneralRelativity
	CWPM
)

// System advances a set of particles under a selectable gravity kernel,
// grounded on the k1..k4 RK4 stepping pattern used for orbital
// propagation, combined with a step-level total-energy check (rather than
// a periodic log warning) that subdivides the step when the drift budget
// is exceeded.
type System struct {
	Particles []*Particle
	Kind      Kind
	log       *corelog.Logger
}

// NewSystem creates a System advancing particles under kind.
func NewSystem(particles []*Particle, kind Kind) *System {
	return &System{Particles: particles, Kind: kind, log: corelog.New("particle")}
}

func (s *System) kernel() Accelerations {
	switch s.Kind {
	case PPNGeneralRelativity:
		return PPNKernel{}
	case CWPM:
		return CWPMKernel{}
	default:
		return NewtonKernel{}
	}
}

// TotalEnergy returns the system's Newtonian total energy (kinetic +
// potential) with each particle's Mu standing in for its mass, i.e. G
// times the energy in joules (units m^5/s^4): the quantity whose drift
// NEWTON-mode runs are bounded on.
func (s *System) TotalEnergy() float64 {
	var kinetic, potential float64
	for _, p := range s.Particles {
		if !p.Active {
			continue
		}
		v2 := p.Velocity.Dot(p.Velocity)
		kinetic += 0.5 * p.Mu * v2
	}
	for i := 0; i < len(s.Particles); i++ {
		pi := s.Particles[i]
		if !pi.Active {
			continue
		}
		for j := i + 1; j < len(s.Particles); j++ {
			pj := s.Particles[j]
			if !pj.Active {
				continue
			}
			r := pi.Position.Distance(pj.Position)
			if r == 0 {
				continue
			}
			potential -= pi.Mu * pj.Mu / r
		}
	}
	return kinetic + potential
}

func (s *System) snapshotAll() []Snapshot {
	snaps := make([]Snapshot, len(s.Particles))
	for i, p := range s.Particles {
		snaps[i] = p.snapshot()
	}
	return snaps
}

func (s *System) restoreAll(snaps []Snapshot) {
	for i, p := range s.Particles {
		p.restore(snaps[i])
	}
}

func anyNonFinite(vs []vector3.Vector3) bool {
	for _, v := range vs {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) ||
			math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0) {
			return true
		}
	}
	return false
}

// rk4Step advances every particle by dt using classical RK4, evaluating
// the kernel's accelerations at each of the four stages.
func (s *System) rk4Step(kernel Accelerations, dt float64) error {
	n := len(s.Particles)
	pos0 := make([]vector3.Vector3, n)
	vel0 := make([]vector3.Vector3, n)
	for i, p := range s.Particles {
		pos0[i] = p.Position
		vel0[i] = p.Velocity
	}

	stage := func(dPos, dVel []vector3.Vector3, scale float64) {
		for i, p := range s.Particles {
			p.Position = pos0[i].Add(dPos[i].Scale(scale))
			p.Velocity = vel0[i].Add(dVel[i].Scale(scale))
		}
	}

	k1v := vel0
	k1a := kernel.Accelerations(s.Particles)
	if anyNonFinite(k1a) {
		return simerr.Wrap(simerr.ErrIntegratorDiverged, "non-finite acceleration at stage 1")
	}

	stage(k1v, k1a, dt/2)
	k2v := make([]vector3.Vector3, n)
	for i, p := range s.Particles {
		k2v[i] = p.Velocity
	}
	k2a := kernel.Accelerations(s.Particles)
	if anyNonFinite(k2a) {
		return simerr.Wrap(simerr.ErrIntegratorDiverged, "non-finite acceleration at stage 2")
	}

	stage(k2v, k2a, dt/2)
	k3v := make([]vector3.Vector3, n)
	for i, p := range s.Particles {
		k3v[i] = p.Velocity
	}
	k3a := kernel.Accelerations(s.Particles)
	if anyNonFinite(k3a) {
		return simerr.Wrap(simerr.ErrIntegratorDiverged, "non-finite acceleration at stage 3")
	}

	stage(k3v, k3a, dt)
	k4v := make([]vector3.Vector3, n)
	for i, p := range s.Particles {
		k4v[i] = p.Velocity
	}
	k4a := kernel.Accelerations(s.Particles)
	if anyNonFinite(k4a) {
		return simerr.Wrap(simerr.ErrIntegratorDiverged, "non-finite acceleration at stage 4")
	}

	for i, p := range s.Particles {
		dPos := k1v[i].Add(k2v[i].Scale(2)).Add(k3v[i].Scale(2)).Add(k4v[i]).Scale(dt / 6)
		dVel := k1a[i].Add(k2a[i].Scale(2)).Add(k3a[i].Scale(2)).Add(k4a[i]).Scale(dt / 6)
		p.Position = pos0[i].Add(dPos)
		p.Velocity = vel0[i].Add(dVel)
	}
	return nil
}

// Step advances the system by dt seconds (dt may be negative), subdividing
// internally to keep Newtonian total-energy drift under energyDriftBudget.
// On INTEGRATOR_DIVERGED the system is left exactly as it was before Step
// was called.
func (s *System) Step(dt float64) error {
	pre := s.snapshotAll()
	if err := s.stepAdaptive(dt, 0); err != nil {
		s.restoreAll(pre)
		return err
	}
	s.detectCollisions()
	return nil
}

func (s *System) stepAdaptive(dt float64, depth int) error {
	kernel := s.kernel()
	e0 := s.TotalEnergy()
	snap := s.snapshotAll()

	if err := s.rk4Step(kernel, dt); err != nil {
		return err
	}

	if s.Kind == Newton && depth < maxSubdivisions && e0 != 0 {
		e1 := s.TotalEnergy()
		drift := math.Abs((e1 - e0) / e0)
		if drift > energyDriftBudget {
			s.restoreAll(snap)
			half := dt / 2
			if err := s.stepAdaptive(half, depth+1); err != nil {
				return err
			}
			return s.stepAdaptive(half, depth+1)
		}
	}
	return nil
}

// detectCollisions marks a particle inactive when its distance to its
// nearest active neighbour is under the sum of their radii.
func (s *System) detectCollisions() {
	n := len(s.Particles)
	inactive := make([]bool, n)
	for i := 0; i < n; i++ {
		pi := s.Particles[i]
		if !pi.Active {
			continue
		}
		for j := i + 1; j < n; j++ {
			pj := s.Particles[j]
			if !pj.Active {
				continue
			}
			r := pi.Position.Distance(pj.Position)
			if r < pi.Radius+pj.Radius {
				inactive[i] = true
				inactive[j] = true
			}
		}
	}
	for i, p := range s.Particles {
		if inactive[i] {
			p.Active = false
			s.log.Infof("collision: %s marked inactive", p.Name)
		}
	}
}
