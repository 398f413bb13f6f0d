package orbital

import "math"

// Rates holds the linear-in-time mean-element model used by the analytic
// ephemeris: each element is evaluated as value0 + rate*T, T being
// centuries past J2000 (calendar.CenturiesPastJ2000). LongPeriapsisDeg is
// the longitude of periapsis (Omega+omega); ElementsAt derives the
// argument of periapsis and mean anomaly from it and from MeanLongitudeDeg
// the way the classical low-precision planetary ephemerides are tabulated.
type Rates struct {
	SemiMajorAxis0, SemiMajorAxisDot     float64
	Eccentricity0, EccentricityDot       float64
	InclinationDeg0, InclinationDegDot   float64
	MeanLongitudeDeg0, MeanLongitudeDot  float64
	LongPeriapsisDeg0, LongPeriapsisDot  float64
	LongAscNodeDeg0, LongAscNodeDegDot   float64
}

// ElementsAt evaluates the mean linear terms of a body's orbital elements
// at T centuries past J2000.
func ElementsAt(r Rates, centuriesPastJ2000 float64) Elements {
	t := centuriesPastJ2000
	a := r.SemiMajorAxis0 + r.SemiMajorAxisDot*t
	e := r.Eccentricity0 + r.EccentricityDot*t
	i := r.InclinationDeg0 + r.InclinationDegDot*t
	meanLon := r.MeanLongitudeDeg0 + r.MeanLongitudeDot*t
	longPeri := r.LongPeriapsisDeg0 + r.LongPeriapsisDot*t
	node := r.LongAscNodeDeg0 + r.LongAscNodeDegDot*t

	argPeri := longPeri - node
	meanAnomaly := meanLon - longPeri

	return Elements{
		SemiMajorAxis:   a,
		Eccentricity:    e,
		InclinationDeg:  i,
		MeanAnomalyDeg:  wrapDeg360(meanAnomaly),
		ArgPeriapsisDeg: wrapDeg360(argPeri),
		LongAscNodeDeg:  wrapDeg360(node),
	}
}

func wrapDeg360(deg float64) float64 {
	d := math.Mod(deg, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}
