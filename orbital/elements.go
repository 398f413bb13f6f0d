// Package orbital implements Keplerian orbital elements: conversion to and
// from Cartesian state vectors, orbit sampling, mean-element evaluation at
// an instant, and the Lambert problem.
package orbital

import (
	"math"

	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

// Elements are classical Keplerian orbital elements. SemiMajorAxis is in
// the same length unit as the position vectors the caller works in
// (this module is unit-agnostic as long as mu is consistent); angles are
// in degrees.
type Elements struct {
	SemiMajorAxis   float64
	Eccentricity    float64
	InclinationDeg  float64
	MeanAnomalyDeg  float64
	ArgPeriapsisDeg float64
	LongAscNodeDeg  float64
}

// Kind classifies an orbit by its shape.
type Kind int

const (
	Elliptic Kind = iota
	Hyperbolic
)

// ClassifyKind returns the orbit's shape, failing with ErrInvalidOrbit for
// parabolic (e very near 1) or otherwise inconsistent elements.
func ClassifyKind(el Elements) (Kind, error) {
	const parabolicBand = 1e-8
	if math.Abs(el.Eccentricity-1) < parabolicBand {
		return 0, simerr.Wrapf(simerr.ErrInvalidOrbit, "eccentricity %.12f is parabolic", el.Eccentricity)
	}
	if el.SemiMajorAxis > 0 && el.Eccentricity >= 0 && el.Eccentricity < 1 {
		return Elliptic, nil
	}
	if el.SemiMajorAxis < 0 && el.Eccentricity > 1 {
		return Hyperbolic, nil
	}
	return 0, simerr.Wrapf(simerr.ErrInvalidOrbit, "inconsistent elements a=%g e=%g", el.SemiMajorAxis, el.Eccentricity)
}

const deg2rad = math.Pi / 180.0
const rad2deg = 180.0 / math.Pi
const keplerTolerance = 1e-13

// perifocalToEcliptic rotates a vector given in perifocal (P,Q,W)
// coordinates into the ecliptic frame using the classical
// Rz(Ω)·Rx(i)·Rz(ω) rotation chain.
func perifocalToEcliptic(v vector3.Vector3, el Elements) vector3.Vector3 {
	return v.RotateZDeg(el.ArgPeriapsisDeg).RotateXDeg(el.InclinationDeg).RotateZDeg(el.LongAscNodeDeg)
}

// PositionFromElements solves Kepler's equation (Halley for ellipses,
// hyperbolic Halley for hyperbolas) and returns the position vector in the
// ecliptic frame.
func PositionFromElements(el Elements) (vector3.Vector3, error) {
	kind, err := ClassifyKind(el)
	if err != nil {
		return vector3.Zero, err
	}

	m := el.MeanAnomalyDeg * deg2rad
	var p, q float64

	switch kind {
	case Elliptic:
		e := el.Eccentricity
		E, err := vector3.SolveEllipticHalley(m, e, keplerTolerance)
		if err != nil {
			return vector3.Zero, err
		}
		r := el.SemiMajorAxis * (1 - e*math.Cos(E))
		nu := 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(E/2), math.Sqrt(1-e)*math.Cos(E/2))
		p, q = r*math.Cos(nu), r*math.Sin(nu)
	case Hyperbolic:
		e := el.Eccentricity
		H, err := vector3.SolveHyperbolicHalley(m, e, keplerTolerance)
		if err != nil {
			return vector3.Zero, err
		}
		r := el.SemiMajorAxis * (1 - e*math.Cosh(H))
		nu := 2 * math.Atan2(math.Sqrt(e+1)*math.Sinh(H/2), math.Sqrt(e-1)*math.Cosh(H/2))
		p, q = r*math.Cos(nu), r*math.Sin(nu)
	}

	return perifocalToEcliptic(vector3.New(p, q, 0), el), nil
}

// VelocityFromElements returns the velocity vector consistent with
// PositionFromElements for the same elements under two-body motion with
// gravitational parameter mu.
func VelocityFromElements(mu float64, el Elements) (vector3.Vector3, error) {
	kind, err := ClassifyKind(el)
	if err != nil {
		return vector3.Zero, err
	}

	m := el.MeanAnomalyDeg * deg2rad
	e := el.Eccentricity
	var nu float64

	switch kind {
	case Elliptic:
		E, err := vector3.SolveEllipticHalley(m, e, keplerTolerance)
		if err != nil {
			return vector3.Zero, err
		}
		nu = 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(E/2), math.Sqrt(1-e)*math.Cos(E/2))
	case Hyperbolic:
		H, err := vector3.SolveHyperbolicHalley(m, e, keplerTolerance)
		if err != nil {
			return vector3.Zero, err
		}
		nu = 2 * math.Atan2(math.Sqrt(e+1)*math.Sinh(H/2), math.Sqrt(e-1)*math.Cosh(H/2))
	}

	p := el.SemiMajorAxis * (1 - e*e)
	h := math.Sqrt(mu * p)
	vp := -mu / h * math.Sin(nu)
	vq := mu / h * (e + math.Cos(nu))

	return perifocalToEcliptic(vector3.New(vp, vq, 0), el), nil
}

// SampleOrbit returns n points sampled from the orbit. For an ellipse the
// samples are equally spaced in mean anomaly over the full closed orbit;
// for a hyperbola they cover a truncated arc of +-2*pi in hyperbolic
// anomaly (there being no closed orbit to sample).
func SampleOrbit(el Elements, n int) ([]vector3.Vector3, error) {
	kind, err := ClassifyKind(el)
	if err != nil {
		return nil, err
	}
	out := make([]vector3.Vector3, n)

	if kind == Elliptic {
		for i := 0; i < n; i++ {
			sample := el
			sample.MeanAnomalyDeg = 360.0 * float64(i) / float64(n)
			pos, err := PositionFromElements(sample)
			if err != nil {
				return nil, err
			}
			out[i] = pos
		}
		return out, nil
	}

	// Hyperbolic: sample a truncated arc of the hyperbolic anomaly directly
	// rather than mean anomaly, since mean anomaly on a hyperbola is
	// unbounded (M = e*sinh(H) - H grows without limit).
	const span = 2 * math.Pi
	e := el.Eccentricity
	for i := 0; i < n; i++ {
		H := -span + 2*span*float64(i)/float64(n-1)
		r := el.SemiMajorAxis * (1 - e*math.Cosh(H))
		nu := 2 * math.Atan2(math.Sqrt(e+1)*math.Sinh(H/2), math.Sqrt(e-1)*math.Cosh(H/2))
		out[i] = perifocalToEcliptic(vector3.New(r*math.Cos(nu), r*math.Sin(nu), 0), el)
	}
	return out, nil
}
