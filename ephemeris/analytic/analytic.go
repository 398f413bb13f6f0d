// Package analytic implements the two-body elements ephemeris fallback:
// valid at any instant the calendar package can represent, used for minor
// bodies and for queries outside the accurate ephemeris window.
//
// The per-body linear mean-element model follows the style of
// codymj-celestia's MeanAnomaly (named per-planet constants evaluated as
// M0 + rate*(days past J2000), wrapped into [0,360)), generalized from
// celestia's mean-anomaly-only model to the full six-element set using the
// standard published J2000 mean-element rates (Standish 1992).
package analytic

import (
	"github.com/nicokuijpers/solarsystemsim/calendar"
	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
	"github.com/nicokuijpers/solarsystemsim/orbital"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

const auMeters = 149597870700.0

// GMSun is the Sun's standard gravitational parameter in m^3/s^2.
const GMSun = 1.32712440018e20

// rates table in AU, degrees, and their per-century derivatives (J2000,
// valid 1800-2050). Values are the published Standish (1992) low-precision
// planetary elements.
var rates = map[string]orbital.Rates{
	"Mercury": {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749, 252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	"Venus":   {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890, 181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	"Earth":   {1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668, 100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0},
	"Mars":    {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131, -4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	"Jupiter": {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714, 34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	"Saturn":  {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609, 49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
	"Uranus":  {19.18916464, -0.00196176, 0.04725744, -0.00004397, 0.77263783, -0.00242939, 313.23810451, 428.48202785, 170.95427630, 0.40805281, 74.01692503, 0.04240589},
	"Neptune": {30.06992276, 0.00026291, 0.00859048, 0.00005105, 1.77004347, 0.00035372, -55.12002969, 218.45945325, 44.96476227, -0.32241464, 131.78422574, -0.00508664},
}

// Register adds or overrides the mean-element rates for a minor body, AU
// and degrees/century convention, so callers can extend coverage to
// asteroids and comets beyond the eight planets.
func Register(name string, r orbital.Rates) {
	rates[name] = r
}

// Ephemeris is the ephemeris/analytic implementation of ephemeris.Provider.
type Ephemeris struct{}

func New() *Ephemeris { return &Ephemeris{} }

func (e *Ephemeris) elementsAt(name string, instant calendar.Instant) (orbital.Elements, error) {
	r, ok := rates[name]
	if !ok {
		return orbital.Elements{}, simerr.Wrapf(simerr.ErrUnknownBody, "no analytic elements for %q", name)
	}
	t, err := calendar.CenturiesPastJ2000(instant)
	if err != nil {
		return orbital.Elements{}, err
	}
	el := orbital.ElementsAt(r, t)
	el.SemiMajorAxis *= auMeters
	return el, nil
}

func (e *Ephemeris) Position(name string, instant calendar.Instant) (vector3.Vector3, error) {
	el, err := e.elementsAt(name, instant)
	if err != nil {
		return vector3.Zero, err
	}
	return orbital.PositionFromElements(el)
}

func (e *Ephemeris) Velocity(name string, instant calendar.Instant) (vector3.Vector3, error) {
	el, err := e.elementsAt(name, instant)
	if err != nil {
		return vector3.Zero, err
	}
	return orbital.VelocityFromElements(GMSun, el)
}

// HasBody reports whether name has registered mean-element rates.
func HasBody(name string) bool {
	_, ok := rates[name]
	return ok
}
