// Package vector3 implements 3D vector algebra, axis and basis rotations,
// and the Kepler-equation solvers used by the orbital-elements package.
package vector3

import "math"

// Vector3 is a triple of IEEE-754 doubles. Units (metres, m/s, AU, ...)
// are a convention of the caller, not the type. Value semantics: every
// operation returns a new Vector3.
type Vector3 struct {
	X, Y, Z float64
}

// Zero is the additive identity.
var Zero = Vector3{}

func New(x, y, z float64) Vector3 { return Vector3{x, y, z} }

func (v Vector3) Add(w Vector3) Vector3 { return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vector3) Sub(w Vector3) Vector3 { return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vector3) Neg() Vector3 { return v.Scale(-1) }

func (v Vector3) Dot(w Vector3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector in the direction of v. Returns Zero for
// a zero-length input rather than dividing by zero.
func (v Vector3) Normalize() Vector3 {
	m := v.Magnitude()
	if m == 0 {
		return Zero
	}
	return v.Scale(1 / m)
}

func (v Vector3) Distance(w Vector3) float64 {
	return v.Sub(w).Magnitude()
}

const deg2rad = math.Pi / 180.0
const rad2deg = 180.0 / math.Pi

// RotateX rotates v about the X axis by angle radians (right-handed).
func (v Vector3) RotateX(angle float64) Vector3 {
	s, c := math.Sincos(angle)
	return Vector3{v.X, c*v.Y - s*v.Z, s*v.Y + c*v.Z}
}

// RotateY rotates v about the Y axis by angle radians.
func (v Vector3) RotateY(angle float64) Vector3 {
	s, c := math.Sincos(angle)
	return Vector3{c*v.X + s*v.Z, v.Y, -s*v.X + c*v.Z}
}

// RotateZ rotates v about the Z axis by angle radians.
func (v Vector3) RotateZ(angle float64) Vector3 {
	s, c := math.Sincos(angle)
	return Vector3{c*v.X - s*v.Y, s*v.X + c*v.Y, v.Z}
}

// RotateXDeg, RotateYDeg, RotateZDeg are the degree-argument equivalents.
func (v Vector3) RotateXDeg(deg float64) Vector3 { return v.RotateX(deg * deg2rad) }
func (v Vector3) RotateYDeg(deg float64) Vector3 { return v.RotateY(deg * deg2rad) }
func (v Vector3) RotateZDeg(deg float64) Vector3 { return v.RotateZ(deg * deg2rad) }

// RotateToBasis rotates v, expressed in the standard basis, into the
// orthonormal basis given by xc, yc, zc (each a unit vector of that basis
// expressed in the standard basis). The result is v's coordinates in the
// new basis.
func (v Vector3) RotateToBasis(xc, yc, zc Vector3) Vector3 {
	return Vector3{v.Dot(xc), v.Dot(yc), v.Dot(zc)}
}
