package orbital

import (
	"math"
	"testing"

	"github.com/nicokuijpers/solarsystemsim/vector3"
)

const muSun = 1.32712440018e20 // m^3/s^2

func TestElementsFromStateVector_Circular(t *testing.T) {
	r := 1.496e11 // ~1 AU in m
	v := math.Sqrt(muSun / r)

	pos := vector3.New(r, 0, 0)
	vel := vector3.New(0, v, 0)

	el := ElementsFromStateVector(muSun, pos, vel)

	if math.Abs(el.Eccentricity) > 1e-9 {
		t.Errorf("circular orbit: eccentricity = %e, want ~0", el.Eccentricity)
	}
	if math.Abs(el.SemiMajorAxis-r)/r > 1e-9 {
		t.Errorf("circular orbit: a = %g, want %g", el.SemiMajorAxis, r)
	}
	if math.Abs(el.InclinationDeg) > 1e-9 {
		t.Errorf("circular orbit: inc = %f, want 0", el.InclinationDeg)
	}
}

func TestRoundTrip_PositionVelocityElements(t *testing.T) {
	el := Elements{
		SemiMajorAxis:   7.786e11, // Jupiter-scale, metres
		Eccentricity:    0.0489,
		InclinationDeg:  1.303,
		MeanAnomalyDeg:  20.0,
		ArgPeriapsisDeg: 273.867,
		LongAscNodeDeg:  100.464,
	}

	pos, err := PositionFromElements(el)
	if err != nil {
		t.Fatalf("PositionFromElements: %v", err)
	}
	vel, err := VelocityFromElements(muSun, el)
	if err != nil {
		t.Fatalf("VelocityFromElements: %v", err)
	}

	got := ElementsFromStateVector(muSun, pos, vel)

	if math.Abs(got.SemiMajorAxis-el.SemiMajorAxis)/el.SemiMajorAxis > 1e-10 {
		t.Errorf("a: got %g want %g", got.SemiMajorAxis, el.SemiMajorAxis)
	}
	if math.Abs(got.Eccentricity-el.Eccentricity) > 1e-10 {
		t.Errorf("e: got %g want %g", got.Eccentricity, el.Eccentricity)
	}
	if math.Abs(got.InclinationDeg-el.InclinationDeg) > 1e-7 {
		t.Errorf("i: got %g want %g", got.InclinationDeg, el.InclinationDeg)
	}
	// ElementsFromStateVector reports angles in (-180, 180], so 273.867
	// comes back as -86.133.
	if math.Abs(got.ArgPeriapsisDeg-wrapSigned180(el.ArgPeriapsisDeg)) > 1e-6 {
		t.Errorf("w: got %g want %g", got.ArgPeriapsisDeg, el.ArgPeriapsisDeg)
	}
	if math.Abs(got.LongAscNodeDeg-el.LongAscNodeDeg) > 1e-6 {
		t.Errorf("Omega: got %g want %g", got.LongAscNodeDeg, el.LongAscNodeDeg)
	}
}

func TestClassifyKind_RejectsParabolic(t *testing.T) {
	_, err := ClassifyKind(Elements{SemiMajorAxis: 1, Eccentricity: 1.0})
	if err == nil {
		t.Fatal("expected ErrInvalidOrbit for parabolic elements")
	}
}

func TestSampleOrbit_Elliptic(t *testing.T) {
	el := Elements{SemiMajorAxis: 1.496e11, Eccentricity: 0.0167}
	pts, err := SampleOrbit(el, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 16 {
		t.Fatalf("got %d points, want 16", len(pts))
	}
}
