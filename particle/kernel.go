package particle

import (
	"math"

	"github.com/nicokuijpers/solarsystemsim/vector3"
)

// speedOfLight is c in m/s, the scale of every 1/c^2 term in PPNKernel and
// the propagation speed CWPMKernel iterates retarded positions against.
const speedOfLight = 299792458.0

// defaultSoftening keeps pairwise forces finite at vanishing separation;
// negligible next to any real body-pair separation in this simulator.
const defaultSoftening = 1.0 // m

// Accelerations computes the acceleration (m/s^2) of every particle in ps
// under a gravity model. Inactive particles contribute no field and
// receive a zero acceleration.
type Accelerations interface {
	Accelerations(ps []*Particle) []vector3.Vector3
}

// NewtonKernel is pairwise Newtonian gravity, softened to avoid a
// singularity at zero separation.
type NewtonKernel struct {
	Softening float64 // m; 0 uses defaultSoftening
}

func (k NewtonKernel) softening2() float64 {
	s := k.Softening
	if s == 0 {
		s = defaultSoftening
	}
	return s * s
}

func (k NewtonKernel) Accelerations(ps []*Particle) []vector3.Vector3 {
	eps2 := k.softening2()
	acc := make([]vector3.Vector3, len(ps))
	for i, pi := range ps {
		if !pi.Active {
			continue
		}
		var a vector3.Vector3
		for j, pj := range ps {
			if i == j || !pj.Active {
				continue
			}
			d := pj.Position.Sub(pi.Position)
			r2 := d.Dot(d) + eps2
			invR3 := 1.0 / (r2 * math.Sqrt(r2))
			a = a.Add(d.Scale(pj.Mu * invR3))
		}
		acc[i] = a
	}
	return acc
}

// PPNKernel adds the 1-PN parameterised post-Newtonian correction with
// beta=gamma=1 (the standard Einstein-Infeld-Hoffmann n-body equations of
// motion, Explanatory Supplement to the Astronomical Almanac eq. 8.1) on
// top of Newtonian gravity.
type PPNKernel struct {
	Softening float64
}

func (k PPNKernel) softening2() float64 {
	s := k.Softening
	if s == 0 {
		s = defaultSoftening
	}
	return s * s
}

func (k PPNKernel) Accelerations(ps []*Particle) []vector3.Vector3 {
	eps2 := k.softening2()
	n := len(ps)

	// Newtonian accelerations are needed both as the leading term and as
	// the a_j inputs the EIH correction terms reference.
	newton := NewtonKernel{Softening: k.Softening}.Accelerations(ps)

	sep := func(a, b int) (d vector3.Vector3, r float64) {
		d = ps[b].Position.Sub(ps[a].Position)
		r = math.Sqrt(d.Dot(d) + eps2)
		return
	}

	// sumMuOverR[i] = sum over active k != i of mu_k / r_ik.
	sumMuOverR := make([]float64, n)
	for i, pi := range ps {
		if !pi.Active {
			continue
		}
		var s float64
		for k2, pk := range ps {
			if k2 == i || !pk.Active {
				continue
			}
			_, r := sep(i, k2)
			s += pk.Mu / r
		}
		sumMuOverR[i] = s
	}

	cInvSq := 1.0 / (speedOfLight * speedOfLight)
	acc := make([]vector3.Vector3, n)
	for i, pi := range ps {
		if !pi.Active {
			continue
		}
		var a vector3.Vector3
		vi2 := pi.Velocity.Dot(pi.Velocity)
		for j, pj := range ps {
			if i == j || !pj.Active {
				continue
			}
			rij, r := sep(i, j)

			vj2 := pj.Velocity.Dot(pj.Velocity)
			viDotVj := pi.Velocity.Dot(pj.Velocity)
			rijHat := rij.Scale(1 / r)
			rijDotVj := rijHat.Dot(pj.Velocity) * -1 // (r_i - r_j)/r . v_j, note rij = r_j - r_i

			bracket := 1.0 -
				4*cInvSq*sumMuOverR[i] -
				cInvSq*sumMuOverR[j] +
				cInvSq*vi2 +
				2*cInvSq*vj2 -
				4*cInvSq*viDotVj -
				1.5*cInvSq*rijDotVj*rijDotVj +
				0.5*cInvSq*rij.Dot(newton[j])

			term1 := rij.Scale(pj.Mu / (r * r * r) * bracket)

			velDiff := pi.Velocity.Sub(pj.Velocity)
			dirTerm := rij.Neg().Dot(pi.Velocity.Scale(4).Sub(pj.Velocity.Scale(3)))
			term2 := velDiff.Scale(cInvSq * pj.Mu / (r * r * r) * dirTerm)

			term3 := newton[j].Scale(3.5 * cInvSq * pj.Mu / r)

			a = a.Add(term1).Add(term2).Add(term3)
		}
		acc[i] = a
	}
	return acc
}

// CWPMKernel evaluates each source's contribution from its retarded
// position: the position it occupied when the gravitational influence,
// propagating at finite speed, would have left it to arrive at the field
// point "now". Each source's retarded position is found by fixed-point
// iteration on the light-travel time, converged to within 1 m of retarded
// distance, using a linear (position - velocity*tau) extrapolation of the
// source's trajectory since no higher-order history is kept. This is a
// literal reading of "curvature of wave propagation" and has no reference
// implementation to validate against.
type CWPMKernel struct {
	Softening     float64
	MaxIterations int // 0 uses a default of 50
}

func (k CWPMKernel) softening2() float64 {
	s := k.Softening
	if s == 0 {
		s = defaultSoftening
	}
	return s * s
}

func (k CWPMKernel) maxIterations() int {
	if k.MaxIterations == 0 {
		return 50
	}
	return k.MaxIterations
}

func (k CWPMKernel) retardedPosition(source *Particle, field vector3.Vector3) vector3.Vector3 {
	tau := 0.0
	maxIter := k.maxIterations()
	for iter := 0; iter < maxIter; iter++ {
		retarded := source.Position.Sub(source.Velocity.Scale(tau))
		dist := field.Distance(retarded)
		newTau := dist / speedOfLight
		if math.Abs(newTau-tau)*speedOfLight < 1.0 {
			return retarded
		}
		tau = newTau
	}
	return source.Position.Sub(source.Velocity.Scale(tau))
}

func (k CWPMKernel) Accelerations(ps []*Particle) []vector3.Vector3 {
	eps2 := k.softening2()
	acc := make([]vector3.Vector3, len(ps))
	for i, pi := range ps {
		if !pi.Active {
			continue
		}
		var a vector3.Vector3
		for j, pj := range ps {
			if i == j || !pj.Active {
				continue
			}
			retarded := k.retardedPosition(pj, pi.Position)
			d := retarded.Sub(pi.Position)
			r2 := d.Dot(d) + eps2
			invR3 := 1.0 / (r2 * math.Sqrt(r2))
			a = a.Add(d.Scale(pj.Mu * invR3))
		}
		acc[i] = a
	}
	return acc
}
