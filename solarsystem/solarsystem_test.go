package solarsystem

import (
	"math"
	"testing"

	"github.com/nicokuijpers/solarsystemsim/calendar"
	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
	"github.com/nicokuijpers/solarsystemsim/particle"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

func j2000() calendar.Instant {
	return calendar.Instant{Era: calendar.AD, Year: 2000, Month: 1, Day: 1, Hour: 12}
}

// newTestState builds a facade with no accurate-ephemeris backend, so
// every body seeds from the analytic/circular fallback paths. This keeps
// the facade's own logic under test independent of the Chebyshev-segment
// parser exercised in ephemeris/accurate.
func newTestState(t *testing.T) *SimulationState {
	t.Helper()
	s := New(nil, Config{})
	if err := s.Initialize(j2000()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

func TestInitialize_SeedsCoreBodies(t *testing.T) {
	s := newTestState(t)

	sun, err := s.GetPosition("Sun")
	if err != nil {
		t.Fatalf("GetPosition(Sun): %v", err)
	}
	if sun != vector3.Zero {
		t.Errorf("Sun should be at the origin, got %+v", sun)
	}

	earth, err := s.GetPosition("Earth")
	if err != nil {
		t.Fatalf("GetPosition(Earth): %v", err)
	}
	r := earth.Magnitude()
	if math.Abs(r-1.496e11)/1.496e11 > 0.05 {
		t.Errorf("Earth distance from Sun = %g m, want approximately 1 AU", r)
	}

	moon, err := s.GetPosition("Moon")
	if err != nil {
		t.Fatalf("GetPosition(Moon): %v", err)
	}
	if d := moon.Distance(earth); math.Abs(d-3.844e8)/3.844e8 > 1e-6 {
		t.Errorf("Moon-Earth distance = %g m, want approximately 384400 km", d)
	}
}

func TestGetPosition_UnknownBodyRejected(t *testing.T) {
	s := newTestState(t)
	if _, err := s.GetPosition("Nonexistent"); !simerr.IsUnknownBody(err) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}
}

func TestAdvanceSingleStep_RejectsOutOfBoundsDt(t *testing.T) {
	s := newTestState(t)
	if err := s.AdvanceSingleStep(3601); err == nil {
		t.Error("expected an error for |dt| > 3600s")
	}
}

func TestAdvanceSingleStep_UpdatesClockAndPublishesBodies(t *testing.T) {
	s := newTestState(t)
	before := s.SimulationDateTime()
	earthBefore, _ := s.GetPosition("Earth")

	if err := s.AdvanceSingleStep(60); err != nil {
		t.Fatalf("AdvanceSingleStep: %v", err)
	}

	after := s.SimulationDateTime()
	if after == before {
		t.Error("simulation clock did not advance")
	}
	earthAfter, _ := s.GetPosition("Earth")
	if earthAfter == earthBefore {
		t.Error("Earth's published position did not move after a step")
	}
}

func TestAdvanceForward_FastMultipliesSubsteps(t *testing.T) {
	slow := newTestState(t)
	fast := newTestState(t)

	if err := slow.AdvanceForward(1, false); err != nil {
		t.Fatalf("slow AdvanceForward: %v", err)
	}
	if err := fast.AdvanceForward(1, true); err != nil {
		t.Fatalf("fast AdvanceForward: %v", err)
	}

	slowT, _ := slow.GetPosition("Earth")
	fastT, _ := fast.GetPosition("Earth")
	if slowT == fastT {
		t.Error("fast mode should integrate a different span of time than a single base step")
	}
}

func TestCreatePlanetSystem_AddsMoonsAtomically(t *testing.T) {
	s := newTestState(t)
	if err := s.CreatePlanetSystem("Jupiter"); err != nil {
		t.Fatalf("CreatePlanetSystem(Jupiter): %v", err)
	}
	for _, moon := range []string{"Io", "Europa", "Ganymede", "Callisto"} {
		if _, err := s.GetPosition(moon); err != nil {
			t.Errorf("expected %s to be present after CreatePlanetSystem(Jupiter): %v", moon, err)
		}
	}
	// Jupiter itself was already a core body; CreatePlanetSystem must not
	// have duplicated or disturbed it.
	if _, err := s.GetPosition("Jupiter"); err != nil {
		t.Errorf("Jupiter missing after CreatePlanetSystem: %v", err)
	}
}

func TestCreatePlanetSystem_AddsCentralDwarfPlanetBody(t *testing.T) {
	s := newTestState(t)
	if err := s.CreatePlanetSystem("Pluto"); err != nil {
		t.Fatalf("CreatePlanetSystem(Pluto): %v", err)
	}
	if _, err := s.GetPosition("Pluto"); err != nil {
		t.Errorf("Pluto should have been added as the central body: %v", err)
	}
	if _, err := s.GetPosition("Charon"); err != nil {
		t.Errorf("Charon should have been added alongside Pluto: %v", err)
	}
}

func TestCreatePlanetSystem_UnknownBodyRejected(t *testing.T) {
	s := newTestState(t)
	if err := s.CreatePlanetSystem("Nonexistent"); !simerr.IsUnknownBody(err) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}
}

func TestRemovePlanetSystem_RemovesMoonsButKeepsCorePlanet(t *testing.T) {
	s := newTestState(t)
	if err := s.CreatePlanetSystem("Jupiter"); err != nil {
		t.Fatalf("CreatePlanetSystem: %v", err)
	}
	s.RemovePlanetSystem("Jupiter")
	if _, err := s.GetPosition("Io"); !simerr.IsUnknownBody(err) {
		t.Error("expected Io to be removed")
	}
	if _, err := s.GetPosition("Jupiter"); err != nil {
		t.Error("Jupiter is a core body and should survive RemovePlanetSystem")
	}
}

func TestCreateSpacecraft_AndRemove(t *testing.T) {
	s := newTestState(t)
	if err := s.CreateSpacecraft("ISS"); err != nil {
		t.Fatalf("CreateSpacecraft(ISS): %v", err)
	}
	pos, err := s.GetPosition("ISS")
	if err != nil {
		t.Fatalf("GetPosition(ISS): %v", err)
	}
	// ISS should be near Earth (geocentric orbit), not heliocentric scale.
	earth, _ := s.GetPosition("Earth")
	if d := pos.Distance(earth); d > 1e7 {
		t.Errorf("ISS too far from Earth: %g m", d)
	}

	s.RemoveSpacecraft("ISS")
	if _, err := s.GetPosition("ISS"); !simerr.IsUnknownBody(err) {
		t.Error("expected ISS to be removed")
	}
}

func TestCreateSpacecraft_UnknownRejected(t *testing.T) {
	s := newTestState(t)
	if err := s.CreateSpacecraft("Earth"); !simerr.IsUnknownSpacecraft(err) {
		t.Errorf("expected ErrUnknownSpacecraft for a non-spacecraft name, got %v", err)
	}
}

func TestSetMass_UpdatesMuConsistently(t *testing.T) {
	s := newTestState(t)
	if err := s.SetMass("Earth", 1e25); err != nil {
		t.Fatalf("SetMass: %v", err)
	}
	got, err := s.GetMass("Earth")
	if err != nil {
		t.Fatalf("GetMass: %v", err)
	}
	if got != 1e25 {
		t.Errorf("GetMass = %g, want 1e25", got)
	}
	if mu := s.particles["Earth"].Mu; mu != gravitationalConstant*1e25 {
		t.Errorf("Earth Mu = %g, want G*1e25 = %g", mu, gravitationalConstant*1e25)
	}
}

func TestSetPositionVelocity_UpdatesBothBodyAndParticle(t *testing.T) {
	s := newTestState(t)
	newPos := vector3.New(1, 2, 3)
	newVel := vector3.New(4, 5, 6)
	if err := s.SetPositionVelocity("Mars", newPos, newVel); err != nil {
		t.Fatalf("SetPositionVelocity: %v", err)
	}
	gotPos, _ := s.GetPosition("Mars")
	gotVel, _ := s.GetVelocity("Mars")
	if gotPos != newPos || gotVel != newVel {
		t.Errorf("SetPositionVelocity did not take effect: pos=%+v vel=%+v", gotPos, gotVel)
	}
}

func TestSetIntegratorKind_SwitchesWithoutError(t *testing.T) {
	s := newTestState(t)
	s.SetIntegratorKind(particle.PPNGeneralRelativity)
	if err := s.AdvanceSingleStep(60); err != nil {
		t.Fatalf("AdvanceSingleStep after switching integrator kind: %v", err)
	}
}
