package tle

import (
	"errors"
	"testing"

	"github.com/nicokuijpers/solarsystemsim/calendar"
	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

// fixedEarth is a stub ephemeris.Provider reporting a constant Earth
// state, isolating these tests from ephemeris/analytic.
type fixedEarth struct {
	pos, vel vector3.Vector3
}

func (f fixedEarth) Position(name string, _ calendar.Instant) (vector3.Vector3, error) {
	return f.pos, nil
}

func (f fixedEarth) Velocity(name string, _ calendar.Instant) (vector3.Vector3, error) {
	return f.vel, nil
}

// Classic ISS TLE fixture (Vallado's SGP4 test vector).
const (
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

func TestPosition_AddsEarthAndGeocentricOffset(t *testing.T) {
	earth := fixedEarth{pos: vector3.New(1.4e11, 0, 0), vel: vector3.New(0, 29780, 0)}
	e := New(earth)
	e.Register("ISS", issLine1, issLine2)

	instant := calendar.Instant{Era: calendar.AD, Year: 2008, Month: 9, Day: 20, Hour: 12, Minute: 30}
	pos, err := e.Position("ISS", instant)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	// ISS orbital radius is a few thousand km, far smaller than 1 AU, so
	// the result should sit close to Earth's position, not at the origin
	// and not displaced by anything AU-scale.
	offset := pos.Sub(earth.pos).Magnitude()
	if offset < 1000 || offset > 1e8 {
		t.Errorf("geocentric offset = %g m, want a few thousand km", offset)
	}
}

func TestVelocity_UnknownSpacecraftRejected(t *testing.T) {
	e := New(fixedEarth{})
	instant := calendar.Instant{Era: calendar.AD, Year: 2008, Month: 9, Day: 20}
	_, err := e.Velocity("Nonexistent", instant)
	if !errors.Is(err, simerr.ErrUnknownSpacecraft) {
		t.Fatalf("expected ErrUnknownSpacecraft, got %v", err)
	}
}

func TestPosition_RejectsBCInstant(t *testing.T) {
	e := New(fixedEarth{})
	e.Register("ISS", issLine1, issLine2)
	instant := calendar.Instant{Era: calendar.BC, Year: 1, Month: 1, Day: 1}
	_, err := e.Position("ISS", instant)
	if !errors.Is(err, simerr.ErrUnsupportedInstant) {
		t.Fatalf("expected ErrUnsupportedInstant, got %v", err)
	}
}

func TestHasBody(t *testing.T) {
	e := New(fixedEarth{})
	if e.HasBody("ISS") {
		t.Fatal("ISS should not be registered yet")
	}
	e.Register("ISS", issLine1, issLine2)
	if !e.HasBody("ISS") {
		t.Fatal("expected ISS to be registered")
	}
}
