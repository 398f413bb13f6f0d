package orbital

import (
	"math"

	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

// LambertSolution is one (v1, v2) velocity pair solving Lambert's problem.
type LambertSolution struct {
	V1, V2 vector3.Vector3
	Revs   int // revolution count k this solution belongs to
	Branch int // 0 for the single (k=0) solution; 1 (left) or 2 (right) for k>=1
}

const invPhi = 0.6180339887498949 // golden-section ratio, as used for extremum search

// stumpffCS evaluates the Stumpff functions C(z), S(z) used by the
// universal-variable formulation of Kepler's and Lambert's equations.
func stumpffCS(z float64) (c, s float64) {
	switch {
	case z > 1e-6:
		sqrtZ := math.Sqrt(z)
		return (1 - math.Cos(sqrtZ)) / z, (sqrtZ - math.Sin(sqrtZ)) / math.Pow(sqrtZ, 3)
	case z < -1e-6:
		sqrtNegZ := math.Sqrt(-z)
		return (1 - math.Cosh(sqrtNegZ)) / z, (math.Sinh(sqrtNegZ) - sqrtNegZ) / math.Pow(sqrtNegZ, 3)
	default:
		return 0.5, 1.0 / 6.0
	}
}

// lambertTOF returns the time of flight (seconds) implied by universal
// variable z for the given geometry (A, r1Mag, r2Mag, mu, revs). Returns
// ok=false where y<0 (z outside the physically valid branch).
func lambertTOF(z, a, r1Mag, r2Mag, mu float64, revs int) (tof float64, ok bool) {
	c, s := stumpffCS(z)
	y := r1Mag + r2Mag + a*(z*s-1)/math.Sqrt(c)
	if y < 0 || c <= 0 {
		return 0, false
	}
	x := math.Sqrt(y / c)
	// The revolution count enters implicitly: z is drawn from the k-th
	// bracket ((2*pi*k)^2, (2*pi*(k+1))^2), which alone makes x^3*S(z)
	// span the additional 2*pi*k of orbital phase. revs is otherwise
	// unused here but documents which bracket the caller is evaluating.
	_ = revs
	tof = (math.Pow(x, 3)*s + a*math.Sqrt(y)) / math.Sqrt(mu)
	return tof, true
}

// bisectTOF finds z in [lo, hi] with lambertTOF(z) == targetTOF, assuming
// lambertTOF is monotonic on the bracket. A lower bound where y < 0 is
// taken as a time of flight of 0, the limit of lambertTOF as y falls to 0.
// It returns false when the two endpoint residuals have the same sign.
func bisectTOF(lo, hi, a, r1Mag, r2Mag, mu, targetTOF float64, revs int) (float64, bool) {
	const maxIter = 200
	flo, okLo := lambertTOF(lo, a, r1Mag, r2Mag, mu, revs)
	fhi, okHi := lambertTOF(hi, a, r1Mag, r2Mag, mu, revs)
	if !okHi {
		return 0, false
	}
	if !okLo {
		flo = 0
	}
	if (flo-targetTOF)*(fhi-targetTOF) > 0 {
		return 0, false
	}
	for i := 0; i < maxIter; i++ {
		mid := 0.5 * (lo + hi)
		fmid, ok := lambertTOF(mid, a, r1Mag, r2Mag, mu, revs)
		if !ok {
			// y<0 on this side; nudge toward the other bound.
			if (flo-targetTOF) > 0 {
				hi = mid
			} else {
				lo = mid
			}
			continue
		}
		if math.Abs(fmid-targetTOF) < 1e-6 {
			return mid, true
		}
		if (fmid-targetTOF)*(flo-targetTOF) <= 0 {
			hi = mid
		} else {
			lo = mid
			flo = fmid
		}
	}
	return 0, false
}

// minimizeTOF performs a golden-section search for the z minimizing the
// time of flight over [lo, hi] (used to split a multi-revolution bracket
// into its two monotonic branches).
func minimizeTOF(lo, hi, a, r1Mag, r2Mag, mu float64, revs int) float64 {
	f := func(z float64) float64 {
		tof, ok := lambertTOF(z, a, r1Mag, r2Mag, mu, revs)
		if !ok {
			return math.Inf(1)
		}
		return tof
	}
	for i := 0; i < 100 && hi-lo > 1e-6; i++ {
		c := hi - invPhi*(hi-lo)
		d := lo + invPhi*(hi-lo)
		if f(c) < f(d) {
			hi = d
		} else {
			lo = c
		}
	}
	return 0.5 * (lo + hi)
}

// velocitiesFromZ recovers (v1, v2) from the converged universal variable z
// via the Lagrange f, g coefficients.
func velocitiesFromZ(z, a, r1Mag, r2Mag, mu float64, r1, r2 vector3.Vector3) (vector3.Vector3, vector3.Vector3) {
	c, s := stumpffCS(z)
	y := r1Mag + r2Mag + a*(z*s-1)/math.Sqrt(c)

	f := 1 - y/r1Mag
	g := a * math.Sqrt(y/mu)
	gDot := 1 - y/r2Mag

	v1 := r2.Sub(r1.Scale(f)).Scale(1 / g)
	v2 := r2.Scale(gDot).Sub(r1).Scale(1 / g)
	return v1, v2
}

// SolveLambert solves Lambert's problem: given two position vectors r1, r2,
// a transfer time dt (seconds), gravitational parameter mu, a direction
// flag, and a maximum revolution count maxRevs, returns every solution
// (v1, v2) with revolution count 0..maxRevs, ordered by revolution count
// then branch (left before right), at most 2*maxRevs+1 elements. Fails
// with ErrLambertNoSolution when dt is physically impossible for the
// requested revolution count.
func SolveLambert(r1, r2 vector3.Vector3, dt, mu float64, retrograde bool, maxRevs int) ([]LambertSolution, error) {
	if dt <= 0 {
		return nil, simerr.Wrapf(simerr.ErrLambertNoSolution, "transfer time must be positive")
	}

	r1Mag := r1.Magnitude()
	r2Mag := r2.Magnitude()
	cross := r1.Cross(r2)
	cosTA := clamp(r1.Dot(r2)/(r1Mag*r2Mag), -1, 1)

	prograde := cross.Z >= 0
	longWay := prograde == retrograde
	var sinTA float64
	if longWay {
		sinTA = -math.Sqrt(1 - cosTA*cosTA)
	} else {
		sinTA = math.Sqrt(1 - cosTA*cosTA)
	}
	if sinTA == 0 {
		return nil, simerr.Wrapf(simerr.ErrLambertNoSolution, "collinear position vectors")
	}

	a := sinTA * math.Sqrt(r1Mag*r2Mag/(1-cosTA))

	var solutions []LambertSolution

	// k = 0: single monotonic branch over z in (-4*pi, 4*pi^2).
	if z, ok := bisectTOF(-4*math.Pi, 4*math.Pi*math.Pi-1e-6, a, r1Mag, r2Mag, mu, dt, 0); ok {
		v1, v2 := velocitiesFromZ(z, a, r1Mag, r2Mag, mu, r1, r2)
		solutions = append(solutions, LambertSolution{V1: v1, V2: v2, Revs: 0, Branch: 0})
	}

	for k := 1; k <= maxRevs; k++ {
		lo := math.Pow(2*math.Pi*float64(k), 2) + 1e-6
		hi := math.Pow(2*math.Pi*float64(k+1), 2) - 1e-6
		zMin := minimizeTOF(lo, hi, a, r1Mag, r2Mag, mu, k)

		if z, ok := bisectTOF(lo, zMin, a, r1Mag, r2Mag, mu, dt, k); ok {
			v1, v2 := velocitiesFromZ(z, a, r1Mag, r2Mag, mu, r1, r2)
			solutions = append(solutions, LambertSolution{V1: v1, V2: v2, Revs: k, Branch: 1})
		}
		if z, ok := bisectTOF(zMin, hi, a, r1Mag, r2Mag, mu, dt, k); ok {
			v1, v2 := velocitiesFromZ(z, a, r1Mag, r2Mag, mu, r1, r2)
			solutions = append(solutions, LambertSolution{V1: v1, V2: v2, Revs: k, Branch: 2})
		}
	}

	if len(solutions) == 0 {
		return nil, simerr.Wrapf(simerr.ErrLambertNoSolution, "no solution for dt=%.3f s up to %d revolutions", dt, maxRevs)
	}
	return solutions, nil
}
