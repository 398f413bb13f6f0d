// Package tle provides an ephemeris.Provider backed by SGP4 propagation of
// two-line element sets, for seeding spacecraft (ISS-class, Earth-orbiting)
// initial conditions into the simulator.
//
// SGP4 propagates in the TEME frame, geocentric. This package rotates
// TEME to an ICRF-aligned frame, rotates that equatorial frame onto the
// J2000 ecliptic, and adds Earth's own heliocentric position (from a
// supplied ephemeris.Provider, normally ephemeris/analytic) to produce the
// heliocentric ecliptic state every other body in this module is
// expressed in.
package tle

import (
	"math"

	gosatellite "github.com/joshuaferrara/go-satellite"

	"github.com/nicokuijpers/solarsystemsim/calendar"
	"github.com/nicokuijpers/solarsystemsim/ephemeris"
	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

const j2000JD = 2451545.0

// obliquityJ2000Deg is the mean obliquity of the ecliptic at J2000, the
// X-axis rotation from the ICRF equator onto the J2000 ecliptic.
const obliquityJ2000Deg = 23.439291

// Ephemeris propagates registered TLEs and reports their heliocentric
// state relative to an Earth ephemeris supplied at construction.
type Ephemeris struct {
	earth  ephemeris.Provider
	crafts map[string]gosatellite.Satellite
}

// New creates a TLE-backed ephemeris that adds positions/velocities to
// earth's reported Earth state to go from geocentric to heliocentric.
func New(earth ephemeris.Provider) *Ephemeris {
	return &Ephemeris{earth: earth, crafts: make(map[string]gosatellite.Satellite)}
}

// Register parses a two-line element set (WGS84 gravity model, matching
// the teacher's convention) and makes name propagatable.
func (e *Ephemeris) Register(name, line1, line2 string) {
	e.crafts[name] = gosatellite.TLEToSat(line1, line2, gosatellite.GravityWGS84)
}

// HasBody reports whether name has a registered TLE.
func (e *Ephemeris) HasBody(name string) bool {
	_, ok := e.crafts[name]
	return ok
}

// equationOfEquinoxesDeg approximates the true-minus-mean equinox offset
// at UT1 Julian date jd, the low-precision series calendar's sidereal-time
// helper uses. Full nutation-matrix and precession corrections (as
// spk.go's TEMEToICRF applies) are dropped: they're arcsecond-level,
// below the fidelity of an already-approximate heliocentric add, so
// rotating TEME by only the equation of equinoxes is enough to land in an
// ICRF-aligned frame for this module's purposes.
func equationOfEquinoxesDeg(jdUT1 float64) float64 {
	t := (jdUT1 - j2000JD) / 36525.0
	omega := 125.04452 - 1934.136261*t
	l := 280.4665 + 36000.7698*t
	lp := 218.3165 + 481267.8813*t
	dpsiArcsec := -17.20*math.Sin(omega*math.Pi/180) - 1.32*math.Sin(2*l*math.Pi/180) -
		0.23*math.Sin(2*lp*math.Pi/180) + 0.21*math.Sin(2*omega*math.Pi/180)
	eps := 23.439291 - 0.0130042*t
	return (dpsiArcsec / 3600.0) * math.Cos(eps*math.Pi/180)
}

func temeToICRF(v vector3.Vector3, jdUT1 float64) vector3.Vector3 {
	return v.RotateZDeg(equationOfEquinoxesDeg(jdUT1))
}

func propagate(sat gosatellite.Satellite, instant calendar.Instant) (posKm, velKmS vector3.Vector3, jdUT1 float64, err error) {
	if instant.Era != calendar.AD {
		return vector3.Zero, vector3.Zero, 0, simerr.Wrapf(simerr.ErrUnsupportedInstant, "TLE propagation is only defined for AD instants")
	}
	pos, vel := gosatellite.Propagate(sat, instant.Year, instant.Month, instant.Day, instant.Hour, instant.Minute, instant.Second)

	jdUTC, jdErr := calendar.CalendarToJD(instant)
	if jdErr != nil {
		return vector3.Zero, vector3.Zero, 0, jdErr
	}
	return vector3.New(pos.X, pos.Y, pos.Z), vector3.New(vel.X, vel.Y, vel.Z), jdUTC, nil
}

// Position returns name's heliocentric ecliptic-aligned position in
// metres: Earth's heliocentric position plus the geocentric SGP4 position,
// rotated TEME to ICRF and then equator to ecliptic.
func (e *Ephemeris) Position(name string, instant calendar.Instant) (vector3.Vector3, error) {
	sat, ok := e.crafts[name]
	if !ok {
		return vector3.Zero, simerr.Wrapf(simerr.ErrUnknownSpacecraft, "no TLE registered for %q", name)
	}
	posKm, _, jdUT1, err := propagate(sat, instant)
	if err != nil {
		return vector3.Zero, err
	}
	geocentric := temeToICRF(posKm, jdUT1).RotateXDeg(-obliquityJ2000Deg).Scale(1000) // km -> m

	earthPos, err := e.earth.Position("Earth", instant)
	if err != nil {
		return vector3.Zero, err
	}
	return earthPos.Add(geocentric), nil
}

// Velocity returns name's heliocentric velocity in m/s, analogous to
// Position.
func (e *Ephemeris) Velocity(name string, instant calendar.Instant) (vector3.Vector3, error) {
	sat, ok := e.crafts[name]
	if !ok {
		return vector3.Zero, simerr.Wrapf(simerr.ErrUnknownSpacecraft, "no TLE registered for %q", name)
	}
	_, velKmS, jdUT1, err := propagate(sat, instant)
	if err != nil {
		return vector3.Zero, err
	}
	geocentric := temeToICRF(velKmS, jdUT1).RotateXDeg(-obliquityJ2000Deg).Scale(1000) // km/s -> m/s

	earthVel, err := e.earth.Velocity("Earth", instant)
	if err != nil {
		return vector3.Zero, err
	}
	return earthVel.Add(geocentric), nil
}
