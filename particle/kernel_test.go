package particle

import (
	"math"
	"testing"

	"github.com/nicokuijpers/solarsystemsim/vector3"
)

const muSun = 1.32712440018e20

func circularEarth() []*Particle {
	r := 1.496e11
	v := math.Sqrt(muSun / r)
	return []*Particle{
		{Name: "Sun", Position: vector3.Zero, Velocity: vector3.Zero, Mass: 1.989e30, Mu: muSun, Active: true},
		{Name: "Earth", Position: vector3.New(r, 0, 0), Velocity: vector3.New(0, v, 0), Mass: 5.972e24, Mu: 3.986004418e14, Active: true},
	}
}

func TestNewtonKernel_SunPullsEarthInward(t *testing.T) {
	ps := circularEarth()
	acc := NewtonKernel{}.Accelerations(ps)
	earthAcc := acc[1]
	// Acceleration should point from Earth toward the Sun, roughly -X.
	if earthAcc.X >= 0 {
		t.Errorf("expected Earth's acceleration to point toward the Sun (-X), got %+v", earthAcc)
	}
	want := muSun / (1.496e11 * 1.496e11)
	got := earthAcc.Magnitude()
	if math.Abs(got-want)/want > 1e-6 {
		t.Errorf("|a| = %g, want %g", got, want)
	}
}

func TestNewtonKernel_InactiveParticleExcluded(t *testing.T) {
	ps := circularEarth()
	ps[1].Active = false
	acc := NewtonKernel{}.Accelerations(ps)
	if acc[1].Magnitude() != 0 {
		t.Errorf("inactive particle should receive zero acceleration, got %+v", acc[1])
	}
	// Sun should no longer feel any pull since Earth is inactive.
	if acc[0].Magnitude() != 0 {
		t.Errorf("Sun should feel no pull from an inactive Earth, got %+v", acc[0])
	}
}

func TestPPNKernel_CloseToNewtonFarFromLightSpeed(t *testing.T) {
	ps := circularEarth()
	newt := NewtonKernel{}.Accelerations(ps)
	ppn := PPNKernel{}.Accelerations(ps)
	for i := range ps {
		diff := newt[i].Distance(ppn[i])
		rel := diff / newt[i].Magnitude()
		if rel > 1e-6 {
			t.Errorf("particle %d: PPN correction too large relative to Newtonian term: %g", i, rel)
		}
	}
}

func TestCWPMKernel_MatchesNewtonAtZeroVelocity(t *testing.T) {
	ps := circularEarth()
	for _, p := range ps {
		p.Velocity = vector3.Zero
	}
	newt := NewtonKernel{}.Accelerations(ps)
	cwpm := CWPMKernel{}.Accelerations(ps)
	for i := range ps {
		if newt[i].Distance(cwpm[i]) > 1e-9 {
			t.Errorf("particle %d: CWPM should reduce to Newton when sources are stationary, got %+v vs %+v", i, cwpm[i], newt[i])
		}
	}
}
