// Package simerr defines the error kinds surfaced by the simulation core.
//
// Every kind is a sentinel that call sites wrap with errors.Wrapf to attach
// context; callers recover the kind with errors.Is.
package simerr

import "github.com/pkg/errors"

var (
	// ErrUnknownBody is returned when a lookup by name misses the registry.
	ErrUnknownBody = errors.New("unknown body")
	// ErrUnknownSpacecraft is returned when a name is not in the spacecraft whitelist.
	ErrUnknownSpacecraft = errors.New("unknown spacecraft")
	// ErrOutOfRange is returned for times outside the accurate ephemeris window or before JD 0.
	ErrOutOfRange = errors.New("out of range")
	// ErrUnsupportedInstant is returned for calendar conversions before JD 0 or the
	// 1582-10-15 Julian/Gregorian boundary in the wrong direction.
	ErrUnsupportedInstant = errors.New("unsupported instant")
	// ErrInvalidOrbit is returned for parabolic or otherwise inconsistent orbital elements.
	ErrInvalidOrbit = errors.New("invalid orbit")
	// ErrNoConvergence is returned when a Kepler or Lambert solver fails to meet tolerance.
	ErrNoConvergence = errors.New("no convergence")
	// ErrIntegratorDiverged is returned when NaN or Inf is detected during acceleration accumulation.
	ErrIntegratorDiverged = errors.New("integrator diverged")
	// ErrLambertNoSolution is returned when Lambert's problem has no solution for the
	// requested revolution count.
	ErrLambertNoSolution = errors.New("lambert: no solution")
	// ErrSnapshotVersion is returned when a decoded snapshot's format version
	// doesn't match what Load expects.
	ErrSnapshotVersion = errors.New("snapshot: unsupported format version")
)

// Wrap annotates err (normally one of the sentinels above) with a message,
// preserving errors.Is/errors.Cause compatibility.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf is Wrap with fmt.Sprintf-style formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// IsOutOfRange reports whether err (or its chain) is ErrOutOfRange, the
// kind the accurate ephemeris backend returns outside its covered window.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// IsUnknownBody reports whether err (or its chain) is ErrUnknownBody.
func IsUnknownBody(err error) bool {
	return errors.Is(err, ErrUnknownBody)
}

// IsUnknownSpacecraft reports whether err (or its chain) is ErrUnknownSpacecraft.
func IsUnknownSpacecraft(err error) bool {
	return errors.Is(err, ErrUnknownSpacecraft)
}

// IsSnapshotVersion reports whether err (or its chain) is ErrSnapshotVersion.
func IsSnapshotVersion(err error) bool {
	return errors.Is(err, ErrSnapshotVersion)
}
