// Package validation runs long-horizon consistency checks that only make
// sense after integrating a system for a large simulated span, as opposed
// to the per-step invariants particle and solarsystem's own tests check.
package validation

import (
	"fmt"
	"sort"

	"github.com/nicokuijpers/solarsystemsim/calendar"
	"github.com/nicokuijpers/solarsystemsim/ephemeris/analytic"
	"github.com/nicokuijpers/solarsystemsim/orbital"
	"github.com/nicokuijpers/solarsystemsim/particle"
	"github.com/nicokuijpers/solarsystemsim/search"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

const (
	sunMu                 = 1.32712440018e20 // m^3/s^2
	mercuryMu             = 2.2032e13        // m^3/s^2
	gravitationalConstant = 6.6743e-11
	julianYearDays        = 365.25
	secondsPerDay         = 86400.0
)

// stateSample is one recorded (time, relative state) point from an
// integration run: the raw material both for reconstructing orbital
// elements at a perihelion passage and for the distance function
// search.FindMinima samples to locate those passages.
type stateSample struct {
	jd  float64
	pos vector3.Vector3
	vel vector3.Vector3
}

// MercuryPerihelionPrecession integrates a Sun+Mercury two-body system
// under kind for years Julian years starting from Mercury's J2000 state,
// and returns the secular advance of its argument of perihelion over that
// span in arcseconds per Julian century. Under PPNGeneralRelativity this
// should read close to the ~43″/century relativistic contribution; under
// Newton a two-body orbit does not precess, so it should read close to
// zero.
func MercuryPerihelionPrecession(kind particle.Kind, years float64) (float64, error) {
	eph := analytic.New()
	epoch := calendar.Instant{Era: calendar.AD, Year: 2000, Month: 1, Day: 1, Hour: 12}

	pos0, err := eph.Position("Mercury", epoch)
	if err != nil {
		return 0, err
	}
	vel0, err := eph.Velocity("Mercury", epoch)
	if err != nil {
		return 0, err
	}
	jd0, err := calendar.CalendarToJD(epoch)
	if err != nil {
		return 0, err
	}

	sun := &particle.Particle{Name: "Sun", Mu: sunMu, Mass: sunMu / gravitationalConstant, Active: true}
	mercury := &particle.Particle{
		Name: "Mercury", Position: pos0, Velocity: vel0,
		Mu: mercuryMu, Mass: mercuryMu / gravitationalConstant, Active: true,
	}
	sys := particle.NewSystem([]*particle.Particle{sun, mercury}, kind)

	const dt = 3600.0
	steps := int(years * julianYearDays * secondsPerDay / dt)

	samples := make([]stateSample, 0, steps+1)
	record := func(elapsedSeconds float64) {
		samples = append(samples, stateSample{
			jd:  jd0 + elapsedSeconds/secondsPerDay,
			pos: mercury.Position.Sub(sun.Position),
			vel: mercury.Velocity.Sub(sun.Velocity),
		})
	}
	record(0)
	for i := 0; i < steps; i++ {
		if err := sys.Step(dt); err != nil {
			return 0, err
		}
		record(float64(i+1) * dt)
	}

	distAt := func(jd float64) float64 {
		return interpolateSample(samples, jd).pos.Magnitude()
	}

	// Mercury's period is ~88 days; a 20-day coarse step safely brackets
	// every perihelion passage without straddling two of them.
	minima, err := search.FindMinima(samples[0].jd, samples[len(samples)-1].jd, 20, distAt, 0)
	if err != nil {
		return 0, err
	}
	if len(minima) < 2 {
		return 0, fmt.Errorf("validation: found %d perihelion passages over %g years, need at least 2", len(minima), years)
	}

	first := interpolateSample(samples, minima[0].T)
	last := interpolateSample(samples, minima[len(minima)-1].T)
	mu := sunMu + mercuryMu
	argFirst := orbital.ElementsFromStateVector(mu, first.pos, first.vel).ArgPeriapsisDeg
	argLast := orbital.ElementsFromStateVector(mu, last.pos, last.vel).ArgPeriapsisDeg

	elapsedYears := (last.jd - first.jd) / julianYearDays
	deltaDeg := wrapDegrees180(argLast - argFirst)
	return deltaDeg * 3600.0 * 100.0 / elapsedYears, nil
}

// wrapDegrees180 wraps d into (-180, 180], so a perihelion that has
// precessed past the 360°/0° boundary doesn't read as a near-360° jump.
func wrapDegrees180(d float64) float64 {
	for d > 180 {
		d -= 360
	}
	for d <= -180 {
		d += 360
	}
	return d
}

// interpolateSample linearly interpolates the relative state at jd between
// the two bracketing recorded samples.
func interpolateSample(samples []stateSample, jd float64) stateSample {
	i := sort.Search(len(samples), func(i int) bool { return samples[i].jd >= jd })
	if i <= 0 {
		return samples[0]
	}
	if i >= len(samples) {
		return samples[len(samples)-1]
	}
	lo, hi := samples[i-1], samples[i]
	if hi.jd == lo.jd {
		return lo
	}
	frac := (jd - lo.jd) / (hi.jd - lo.jd)
	return stateSample{
		jd:  jd,
		pos: lo.pos.Add(hi.pos.Sub(lo.pos).Scale(frac)),
		vel: lo.vel.Add(hi.vel.Sub(lo.vel).Scale(frac)),
	}
}
