// Package ephemeris defines the shared contract for named-body
// position/velocity lookup at a calendar instant, implemented by the
// ephemeris/accurate, ephemeris/analytic, and ephemeris/tle
// sub-packages.
package ephemeris

import (
	"github.com/nicokuijpers/solarsystemsim/calendar"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

// Provider supplies heliocentric ecliptic J2000 position and velocity
// (metres, m/s) for a named body at a calendar instant.
type Provider interface {
	Position(name string, instant calendar.Instant) (vector3.Vector3, error)
	Velocity(name string, instant calendar.Instant) (vector3.Vector3, error)
}
