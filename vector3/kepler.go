package vector3

import (
	"math"

	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
)

const maxKeplerIterations = 50

// SolveEllipticFixedPoint solves Kepler's equation M = E - e*sin(E) for the
// eccentric anomaly E by the fixed-point iteration E <- M + e*sin(E).
// Converges for all e < 1 but slowly as e approaches 1.
func SolveEllipticFixedPoint(m, e, maxError float64) (float64, error) {
	E := m
	for i := 0; i < maxKeplerIterations; i++ {
		next := m + e*math.Sin(E)
		if math.Abs(next-E) <= maxError {
			return next, nil
		}
		E = next
	}
	return 0, simerr.Wrapf(simerr.ErrNoConvergence, "fixed-point Kepler solver: %d iterations exceeded", maxKeplerIterations)
}

// SolveEllipticNewton solves Kepler's equation by Newton-Raphson:
// E <- E - f(E)/f'(E), f(E) = E - e*sin(E) - M.
func SolveEllipticNewton(m, e, maxError float64) (float64, error) {
	E := startingGuess(m, e)
	for i := 0; i < maxKeplerIterations; i++ {
		f := E - e*math.Sin(E) - m
		fp := 1 - e*math.Cos(E)
		dE := f / fp
		E -= dE
		if math.Abs(dE) <= maxError {
			return E, nil
		}
	}
	return 0, simerr.Wrapf(simerr.ErrNoConvergence, "Newton-Raphson Kepler solver: %d iterations exceeded", maxKeplerIterations)
}

// SolveEllipticHalley solves Kepler's equation by Halley's method:
// E <- E - 2*f*f' / (2*f'^2 - f*f''). Converges in no more iterations
// than Newton-Raphson for any eccentricity below 1.
func SolveEllipticHalley(m, e, maxError float64) (float64, error) {
	E := startingGuess(m, e)
	for i := 0; i < maxKeplerIterations; i++ {
		sinE, cosE := math.Sincos(E)
		f := E - e*sinE - m
		fp := 1 - e*cosE
		fpp := e * sinE
		dE := 2 * f * fp / (2*fp*fp - f*fpp)
		E -= dE
		if math.Abs(dE) <= maxError {
			return E, nil
		}
	}
	return 0, simerr.Wrapf(simerr.ErrNoConvergence, "Halley Kepler solver: %d iterations exceeded", maxKeplerIterations)
}

// startingGuess picks E0 = M, switching to +-pi for high eccentricity
// (e > 0.8) where that guess converges slowly (mirrors kepler.Orbit's
// elliptic solver starting point).
func startingGuess(m, e float64) float64 {
	if e > 0.8 {
		if m < 0 {
			return -math.Pi
		}
		return math.Pi
	}
	return m
}

// SolveHyperbolicHalley solves M = e*sinh(H) - H for the hyperbolic
// anomaly H using Halley's method.
func SolveHyperbolicHalley(m, e, maxError float64) (float64, error) {
	H := math.Asinh(m / e)
	if H == 0 {
		H = m
	}
	for i := 0; i < maxKeplerIterations; i++ {
		sinhH, coshH := math.Sinh(H), math.Cosh(H)
		f := e*sinhH - H - m
		fp := e*coshH - 1
		fpp := e * sinhH
		dH := 2 * f * fp / (2*fp*fp - f*fpp)
		H -= dH
		if math.Abs(dH) <= maxError {
			return H, nil
		}
	}
	return 0, simerr.Wrapf(simerr.ErrNoConvergence, "hyperbolic Halley Kepler solver: %d iterations exceeded", maxKeplerIterations)
}

// SolveParabolic solves Barker's equation for the parabolic anomaly via
// the cube-root substitution Y = cbrt(W + sqrt(W^2+1)), D = Y - 1/Y.
// w is the right-hand side of Barker's equation in the form
// D^3 + 3*D = 2*w, which the returned D satisfies.
func SolveParabolic(w float64) float64 {
	y := math.Cbrt(w + math.Sqrt(w*w+1))
	return y - 1/y
}
