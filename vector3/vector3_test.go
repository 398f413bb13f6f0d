package vector3

import (
	"math"
	"testing"
)

func TestAddSubScale(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)
	if got := a.Add(b); got != (Vector3{5, 7, 9}) {
		t.Errorf("Add = %+v", got)
	}
	if got := b.Sub(a); got != (Vector3{3, 3, 3}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vector3{2, 4, 6}) {
		t.Errorf("Scale = %+v", got)
	}
}

func TestDotCross(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)
	if got := x.Dot(y); got != 0 {
		t.Errorf("Dot = %f, want 0", got)
	}
	if got := x.Cross(y); got != (Vector3{0, 0, 1}) {
		t.Errorf("Cross = %+v, want (0,0,1)", got)
	}
}

func TestMagnitudeNormalize(t *testing.T) {
	v := New(3, 4, 0)
	if got := v.Magnitude(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Magnitude = %f, want 5", got)
	}
	n := v.Normalize()
	if math.Abs(n.Magnitude()-1) > 1e-12 {
		t.Errorf("Normalize magnitude = %f, want 1", n.Magnitude())
	}
}

func TestRotateZ90(t *testing.T) {
	v := New(1, 0, 0)
	got := v.RotateZDeg(90)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("RotateZDeg(90) = %+v, want (0,1,0)", got)
	}
}

func TestKeplerSolvers_AgreeOnModerateEccentricity(t *testing.T) {
	m := 90.0 * deg2rad
	e := 0.5
	const tol = 1e-14

	eFixed, err := SolveEllipticFixedPoint(m, e, tol)
	if err != nil {
		t.Fatalf("fixed-point: %v", err)
	}
	eNewton, err := SolveEllipticNewton(m, e, tol)
	if err != nil {
		t.Fatalf("newton: %v", err)
	}
	eHalley, err := SolveEllipticHalley(m, e, tol)
	if err != nil {
		t.Fatalf("halley: %v", err)
	}

	for _, got := range []float64{eFixed, eNewton, eHalley} {
		residual := math.Abs(m - (got - e*math.Sin(got)))
		if residual > 1e-12 {
			t.Errorf("Kepler residual = %e, want <= 1e-12", residual)
		}
	}
}

func TestKeplerHalleyMatchesScenario4(t *testing.T) {
	m := 90.0 * deg2rad
	e := 0.5
	E, err := SolveEllipticHalley(m, e, 1e-14)
	if err != nil {
		t.Fatal(err)
	}
	residual := math.Abs(m - (E - e*math.Sin(E)))
	if residual > 1e-14 {
		t.Errorf("residual = %e, want <= 1e-14", residual)
	}
}

func TestHalleyConvergesNoSlowerThanNewton(t *testing.T) {
	countIterations := func(solve func(m, e, tol float64) (float64, error), m, e float64) int {
		E := startingGuess(m, e)
		for i := 0; i < maxKeplerIterations; i++ {
			sinE, cosE := math.Sincos(E)
			f := E - e*sinE - m
			fp := 1 - e*cosE
			dE := f / fp
			E -= dE
			if math.Abs(dE) <= 1e-14 {
				return i + 1
			}
		}
		return maxKeplerIterations
	}
	// halleyIterations mirrors SolveEllipticHalley's loop, counting steps.
	halleyIterations := func(m, e float64) int {
		E := startingGuess(m, e)
		for i := 0; i < maxKeplerIterations; i++ {
			sinE, cosE := math.Sincos(E)
			f := E - e*sinE - m
			fp := 1 - e*cosE
			dE := 2 * f * fp / (2*fp*fp - f*e*sinE)
			E -= dE
			if math.Abs(dE) <= 1e-14 {
				return i + 1
			}
		}
		return maxKeplerIterations
	}

	for _, e := range []float64{0.01, 0.3, 0.6, 0.9, 0.99} {
		m := 1.0
		newtonIters := countIterations(SolveEllipticNewton, m, e)
		if _, err := SolveEllipticHalley(m, e, 1e-14); err != nil {
			t.Errorf("Halley failed to converge at e=%.2f: %v", e, err)
		}
		if halleyIters := halleyIterations(m, e); halleyIters > newtonIters {
			t.Errorf("e=%.2f: Halley took %d iterations, Newton %d", e, halleyIters, newtonIters)
		}
	}
}

func TestSolveHyperbolicHalley(t *testing.T) {
	e := 1.5
	m := 2.0
	H, err := SolveHyperbolicHalley(m, e, 1e-14)
	if err != nil {
		t.Fatal(err)
	}
	residual := math.Abs(e*math.Sinh(H) - H - m)
	if residual > 1e-12 {
		t.Errorf("residual = %e, want <= 1e-12", residual)
	}
}
