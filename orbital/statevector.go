package orbital

import (
	"math"

	"github.com/nicokuijpers/solarsystemsim/vector3"
)

const twoPi = 2 * math.Pi

// ElementsFromStateVector computes osculating Keplerian orbital elements
// from a Cartesian position/velocity state vector under gravitational
// parameter mu. Angles are returned in (-180, 180] except inclination,
// which is in [0, 180].
//
// Ported from the angular-momentum/eccentricity-vector method of Bate,
// Mueller & White, Fundamentals of Astrodynamics (1971) Section 2.4.
func ElementsFromStateVector(mu float64, pos, vel vector3.Vector3) Elements {
	r := pos.Magnitude()
	v := vel.Magnitude()

	hVec := pos.Cross(vel)
	h := hVec.Magnitude()

	rdv := pos.Dot(vel)
	factor := v*v - mu/r
	eVec := pos.Scale(factor).Sub(vel.Scale(rdv)).Scale(1 / mu)
	e := eVec.Magnitude()

	nVec := vector3.New(-hVec.Y, hVec.X, 0)
	n := nVec.Magnitude()

	p := h * h / mu
	inc := math.Acos(clamp(hVec.Z/h, -1, 1))

	var omega float64
	if n > 1e-15 {
		omega = math.Atan2(hVec.X, -hVec.Y)
		if omega < 0 {
			omega += twoPi
		}
	}

	nu := trueAnomalyFromVectors(eVec, e, nVec, n, pos, vel, r, rdv)
	w := argPeriapsisFromVectors(eVec, e, nVec, n, pos, vel)

	var a float64
	e2 := e * e
	if math.Abs(e-1.0) < 1e-15 {
		a = math.Inf(1)
	} else {
		a = p / (1.0 - e2)
	}

	E := eccentricAnomalyFromTrueAnomaly(nu, e)
	M := meanAnomalyFromEccentricAnomaly(E, e)

	return Elements{
		SemiMajorAxis:   a,
		Eccentricity:    e,
		InclinationDeg:  wrapSigned180(inc * rad2deg),
		MeanAnomalyDeg:  wrapSigned180(M * rad2deg),
		ArgPeriapsisDeg: wrapSigned180(w * rad2deg),
		LongAscNodeDeg:  wrapSigned180(omega * rad2deg),
	}
}

// wrapSigned180 maps an angle in degrees to (-180, 180].
func wrapSigned180(deg float64) float64 {
	d := math.Mod(deg+180.0, 360.0)
	if d <= 0 {
		d += 360.0
	}
	return d - 180.0
}

func trueAnomalyFromVectors(eVec vector3.Vector3, e float64, nVec vector3.Vector3, n float64, pos, vel vector3.Vector3, r, rdv float64) float64 {
	if e > 1e-15 {
		nu := angleBetween(eVec, pos)
		if rdv < 0 {
			nu = twoPi - nu
		}
		if e > 1.0-1e-15 {
			nu = normPi(nu)
		}
		return nu
	}
	if n < 1e-15 {
		nu := math.Acos(clamp(pos.X/r, -1, 1))
		if vel.X > 0 {
			nu = twoPi - nu
		}
		return nu
	}
	nu := angleBetween(nVec, pos)
	if pos.Z < 0 {
		nu = twoPi - nu
	}
	return nu
}

func argPeriapsisFromVectors(eVec vector3.Vector3, e float64, nVec vector3.Vector3, n float64, pos, vel vector3.Vector3) float64 {
	if e < 1e-15 {
		return 0
	}
	if n > 1e-15 {
		w := angleBetween(nVec, eVec)
		if eVec.Z < 0 {
			w = twoPi - w
		}
		return w
	}
	w := math.Atan2(eVec.Y, eVec.X)
	if w < 0 {
		w += twoPi
	}
	crossRV := pos.Cross(vel)
	if crossRV.Z < 0 {
		w = twoPi - w
	}
	return w
}

func eccentricAnomalyFromTrueAnomaly(nu, e float64) float64 {
	if e < 1.0 {
		E := 2.0 * math.Atan(math.Sqrt((1.0-e)/(1.0+e))*math.Tan(nu/2.0))
		if E < 0 {
			E += twoPi
		}
		return E
	}
	if e > 1.0 {
		tanNu2 := math.Tan(nu / 2.0)
		ratio := tanNu2 / math.Sqrt((e+1.0)/(e-1.0))
		E := 2.0 * math.Atanh(ratio)
		return normPi(E)
	}
	return 0
}

func meanAnomalyFromEccentricAnomaly(E, e float64) float64 {
	if e < 1.0 {
		M := E - e*math.Sin(E)
		return math.Mod(M+twoPi, twoPi)
	}
	if e > 1.0 {
		M := e*math.Sinh(E) - E
		return normPi(M)
	}
	return 0
}

func angleBetween(u, v vector3.Vector3) float64 {
	uMag := u.Magnitude()
	vMag := v.Magnitude()
	if uMag == 0 || vMag == 0 {
		return 0
	}
	a := u.Scale(vMag)
	b := v.Scale(uMag)
	return 2.0 * math.Atan2(a.Sub(b).Magnitude(), a.Add(b).Magnitude())
}

func normPi(angle float64) float64 {
	a := math.Mod(angle+math.Pi, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a - math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
