// Package solarsystem is the simulation facade: it owns the named bodies,
// seeds them from the ephemeris backends at initialize, and advances them
// under the particle integrator, publishing a coherent Body snapshot at
// each step the way moveBodies does in the upstream orbital-mechanics
// reference this core is built from.
package solarsystem

import (
	"math"
	"sync"

	"github.com/nicokuijpers/solarsystemsim/calendar"
	"github.com/nicokuijpers/solarsystemsim/ephemeris"
	"github.com/nicokuijpers/solarsystemsim/ephemeris/accurate"
	"github.com/nicokuijpers/solarsystemsim/ephemeris/analytic"
	"github.com/nicokuijpers/solarsystemsim/ephemeris/tle"
	"github.com/nicokuijpers/solarsystemsim/internal/corelog"
	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
	"github.com/nicokuijpers/solarsystemsim/particle"
	"github.com/nicokuijpers/solarsystemsim/vector3"
)

// gravitationalConstant is G, used to derive mu = G*mass for SetMass.
const gravitationalConstant = 6.6743e-11

// maxTrajectoryPoints bounds the per-body trajectory tail kept for
// rendering; older points are overwritten in a ring rather than kept
// forever, since a multi-century run would otherwise grow without bound.
const maxTrajectoryPoints = 10000

// defaultBaseStepSeconds is the Δt advanceForward/advanceBackward use per
// step unless Config overrides it.
const defaultBaseStepSeconds = 60.0

// defaultFastMultiplier is how many base steps a single advanceForward
// unit performs when fast mode is requested.
const defaultFastMultiplier = 24

// Config holds the facade's tunable constants.
type Config struct {
	BaseStepSeconds float64
	FastMultiplier  int
}

func (c Config) withDefaults() Config {
	if c.BaseStepSeconds == 0 {
		c.BaseStepSeconds = defaultBaseStepSeconds
	}
	if c.FastMultiplier == 0 {
		c.FastMultiplier = defaultFastMultiplier
	}
	return c
}

// trajectoryTail is a fixed-capacity ring buffer of recent positions.
type trajectoryTail struct {
	points []vector3.Vector3
	next   int
	full   bool
}

func newTrajectoryTail() *trajectoryTail {
	return &trajectoryTail{points: make([]vector3.Vector3, maxTrajectoryPoints)}
}

func (t *trajectoryTail) push(p vector3.Vector3) {
	t.points[t.next] = p
	t.next = (t.next + 1) % len(t.points)
	if t.next == 0 {
		t.full = true
	}
}

// Points returns the tail's recorded positions, oldest first.
func (t *trajectoryTail) Points() []vector3.Vector3 {
	if !t.full {
		return append([]vector3.Vector3(nil), t.points[:t.next]...)
	}
	out := make([]vector3.Vector3, 0, len(t.points))
	out = append(out, t.points[t.next:]...)
	out = append(out, t.points[:t.next]...)
	return out
}

// Body is the published, reader-visible state of a named body: the
// position/velocity here are updated only under the facade's write lock,
// by moveBodies after a step or by SetPositionVelocity, so a reader
// holding the facade's read lock never observes a mid-step value.
type Body struct {
	Name       string
	DiameterM  float64
	CenterBody string
	Position   vector3.Vector3
	Velocity   vector3.Vector3
	Active     bool
	Trajectory *trajectoryTail
}

// SimulationState is the solar system facade: the single point through
// which callers query and mutate the simulated bodies.
type SimulationState struct {
	mu sync.RWMutex

	cfg Config
	log *corelog.Logger

	accurateEph *accurate.Accurate
	analyticEph *analytic.Ephemeris
	tleEph      *tle.Ephemeris

	bodies    map[string]*Body
	particles map[string]*particle.Particle
	system    *particle.System
	instant   calendar.Instant
}

// New constructs a facade. accurateEph may be nil, in which case every
// KindAccurate body falls back to the analytic ephemeris, or to the
// circular-orbit fallback for one it carries no rates for (the Moon) —
// useful for running outside the accurate ephemeris's 1620-2200 window.
func New(accurateEph *accurate.Accurate, cfg Config) *SimulationState {
	analyticEph := analytic.New()
	s := &SimulationState{
		cfg:         cfg.withDefaults(),
		log:         corelog.New("solarsystem"),
		accurateEph: accurateEph,
		analyticEph: analyticEph,
		bodies:      make(map[string]*Body),
		particles:   make(map[string]*particle.Particle),
	}
	s.tleEph = tle.New(s)
	// A fixed-epoch element set for the one TLE-seeded body the named-body
	// list carries by default; CreateSpacecraft has no way to take a
	// caller-supplied TLE, so ISS is seeded from this snapshot rather than
	// left unregistered.
	s.tleEph.Register("ISS",
		"1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927",
		"2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537")
	s.system = particle.NewSystem(nil, particle.Newton)
	return s
}

// Position implements ephemeris.Provider so the TLE backend can resolve
// Earth's state through whichever source seeded it, without importing
// solarsystem from ephemeris/tle.
func (s *SimulationState) Position(name string, instant calendar.Instant) (vector3.Vector3, error) {
	return s.ephemerisFor(name).Position(name, instant)
}

// Velocity mirrors Position for ephemeris.Provider.
func (s *SimulationState) Velocity(name string, instant calendar.Instant) (vector3.Vector3, error) {
	return s.ephemerisFor(name).Velocity(name, instant)
}

func (s *SimulationState) ephemerisFor(name string) ephemeris.Provider {
	b, ok := lookupBody(name)
	if ok && b.Kind == KindAccurate && s.accurateEph != nil {
		return s.accurateEph
	}
	return s.analyticEph
}

// Initialize seeds every always-on body (the Sun, the eight planets, and
// the Moon) at instant, replacing any prior simulation state.
func (s *SimulationState) Initialize(instant calendar.Instant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bodies := make(map[string]*Body)
	particles := make(map[string]*particle.Particle)

	for _, b := range registry {
		if b.Kind != KindAccurate {
			continue
		}
		pos, vel, err := s.seed(b, instant, bodies)
		if err != nil {
			return err
		}
		addSeeded(bodies, particles, b, pos, vel)
	}

	s.bodies = bodies
	s.particles = particles
	s.instant = instant
	s.rebuildSystem()
	return nil
}

func addSeeded(bodies map[string]*Body, particles map[string]*particle.Particle, b bodyInfo, pos, vel vector3.Vector3) {
	bodies[b.Name] = &Body{
		Name:       b.Name,
		DiameterM:  b.DiameterM,
		CenterBody: b.CenterBody,
		Position:   pos,
		Velocity:   vel,
		Active:     true,
		Trajectory: newTrajectoryTail(),
	}
	particles[b.Name] = &particle.Particle{
		Name:     b.Name,
		Position: pos,
		Velocity: vel,
		Mu:       b.Mu,
		Mass:     b.Mu / gravitationalConstant,
		Radius:   b.DiameterM / 2,
		Active:   true,
	}
}

// seed resolves a body's initial position/velocity. alreadySeeded supplies
// parent-body positions for moons seeded in the same Initialize/
// CreatePlanetSystem call.
func (s *SimulationState) seed(b bodyInfo, instant calendar.Instant, alreadySeeded map[string]*Body) (vector3.Vector3, vector3.Vector3, error) {
	if b.Name == "Sun" {
		// The Sun defines the origin of the heliocentric-ecliptic frame
		// every other body's position is expressed in; it has no orbit of
		// its own to seed from.
		return vector3.Zero, vector3.Zero, nil
	}
	switch b.Kind {
	case KindAccurate:
		if s.accurateEph != nil {
			pos, err := s.accurateEph.Position(b.Name, instant)
			if err == nil {
				vel, err := s.accurateEph.Velocity(b.Name, instant)
				if err != nil {
					return vector3.Zero, vector3.Zero, err
				}
				return pos, vel, nil
			}
			if !simerr.IsOutOfRange(err) && !simerr.IsUnknownBody(err) {
				return vector3.Zero, vector3.Zero, err
			}
			// outside the accurate window, or not carried by the loaded
			// kernel: fall through to the analytic/circular fallback.
		}
		return s.seedAnalyticOrCircular(b, instant, alreadySeeded)
	case KindTLE:
		pos, err := s.tleEph.Position(b.Name, instant)
		if err != nil {
			return vector3.Zero, vector3.Zero, err
		}
		vel, err := s.tleEph.Velocity(b.Name, instant)
		if err != nil {
			return vector3.Zero, vector3.Zero, err
		}
		return pos, vel, nil
	case KindManual:
		return vector3.Zero, vector3.Zero, nil
	default:
		return s.seedAnalyticOrCircular(b, instant, alreadySeeded)
	}
}

func (s *SimulationState) seedAnalyticOrCircular(b bodyInfo, instant calendar.Instant, alreadySeeded map[string]*Body) (vector3.Vector3, vector3.Vector3, error) {
	if analytic.HasBody(b.Name) {
		pos, err := s.analyticEph.Position(b.Name, instant)
		if err != nil {
			return vector3.Zero, vector3.Zero, err
		}
		vel, err := s.analyticEph.Velocity(b.Name, instant)
		if err != nil {
			return vector3.Zero, vector3.Zero, err
		}
		return pos, vel, nil
	}
	return s.seedCircular(b, instant, alreadySeeded)
}

// seedCircular is the circular-orbit fallback for a minor body or moon
// that carries no registered mean-element rates: a coplanar circular orbit
// at SemiMajorAxisM about the Sun (CenterBody "") or the named parent,
// started at a phase derived from the body's name (so that moons of the
// same planet don't all line up at epoch) and advanced at the body's own
// circular mean motion about its center. This is a deliberately simple
// stand-in (see DESIGN.md), not an ephemeris-grade element set.
func (s *SimulationState) seedCircular(b bodyInfo, instant calendar.Instant, alreadySeeded map[string]*Body) (vector3.Vector3, vector3.Vector3, error) {
	if b.SemiMajorAxisM == 0 {
		return vector3.Zero, vector3.Zero, simerr.Wrapf(simerr.ErrUnknownBody, "no orbit data for %q", b.Name)
	}

	centerPos := vector3.Zero
	centerVel := vector3.Zero
	centerMu := sunMu()
	if b.CenterBody != "" {
		center, ok := alreadySeeded[b.CenterBody]
		if !ok {
			return vector3.Zero, vector3.Zero, simerr.Wrapf(simerr.ErrUnknownBody, "center body %q not yet seeded for %q", b.CenterBody, b.Name)
		}
		centerPos = center.Position
		centerVel = center.Velocity
		if cb, ok := lookupBody(b.CenterBody); ok {
			centerMu = cb.Mu
		}
	}

	jd, err := calendar.CalendarToJD(instant)
	if err != nil {
		return vector3.Zero, vector3.Zero, err
	}
	secondsSinceJ2000 := (jd - 2451545.0) * 86400.0

	a := b.SemiMajorAxisM
	meanMotion := circularMeanMotion(centerMu, a)
	// Phase deterministically off the body's name so bodies around the
	// same parent don't all start co-linear; this has no physical meaning
	// beyond avoiding a degenerate starting configuration.
	phase := nameHashPhase(b.Name)
	theta := phase + meanMotion*secondsSinceJ2000

	relPos := vector3.New(a*math.Cos(theta), a*math.Sin(theta), 0)
	speed := meanMotion * a
	relVel := vector3.New(-speed*math.Sin(theta), speed*math.Cos(theta), 0)

	return centerPos.Add(relPos), centerVel.Add(relVel), nil
}

func sunMu() float64 {
	b, _ := lookupBody("Sun")
	return b.Mu
}

// rebuildSystem rebuilds the flat particle slice the integrator steps,
// from the current particles map, and points s.system at it in place so
// outstanding *Particle pointers (held by Body-adjacent code) stay valid.
func (s *SimulationState) rebuildSystem() {
	list := make([]*particle.Particle, 0, len(s.particles))
	for _, name := range allBodyNames() {
		if p, ok := s.particles[name]; ok {
			list = append(list, p)
		}
	}
	s.system.Particles = list
}

// moveBodies snapshots particle state into the corresponding Body fields;
// the sole publication point observers of Body see a coherent result from.
func (s *SimulationState) moveBodies() {
	for name, b := range s.bodies {
		p, ok := s.particles[name]
		if !ok {
			continue
		}
		b.Position = p.Position
		b.Velocity = p.Velocity
		b.Active = p.Active
		b.Trajectory.push(p.Position)
	}
}

// AdvanceSingleStep advances the simulation by dt seconds (negative runs
// time backward), |dt| <= 3600s.
func (s *SimulationState) AdvanceSingleStep(dt float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dt > 3600 || dt < -3600 {
		return simerr.Wrapf(simerr.ErrUnsupportedInstant, "|dt|=%g exceeds the 3600s single-step bound", dt)
	}
	return s.advanceLocked(dt)
}

// AdvanceForward advances the simulation n base steps forward. When fast is
// true each unit performs FastMultiplier base steps.
func (s *SimulationState) AdvanceForward(n int, fast bool) error {
	return s.advanceMany(n, fast, 1)
}

// AdvanceBackward is AdvanceForward with time running in reverse.
func (s *SimulationState) AdvanceBackward(n int, fast bool) error {
	return s.advanceMany(n, fast, -1)
}

func (s *SimulationState) advanceMany(n int, fast bool, sign float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	substeps := 1
	if fast {
		substeps = s.cfg.FastMultiplier
	}
	dt := sign * s.cfg.BaseStepSeconds
	for i := 0; i < n; i++ {
		for j := 0; j < substeps; j++ {
			if err := s.advanceLocked(dt); err != nil {
				return err
			}
		}
	}
	return nil
}

// advanceLocked steps the particle system and the simulated clock
// together. The clock round-trips through a Julian Date each call rather
// than being kept in JD form across calls, trading a little precision
// (sub-millisecond, rounded away by JDToCalendar) for instant always being
// the one source of truth readers see through SimulationDateTime.
func (s *SimulationState) advanceLocked(dt float64) error {
	if err := s.system.Step(dt); err != nil {
		return err
	}
	jd, err := calendar.CalendarToJD(s.instant)
	if err == nil {
		next, convErr := calendar.JDToCalendar(jd + dt/86400.0)
		if convErr == nil {
			s.instant = next
		}
	}
	s.moveBodies()
	return nil
}

// SimulationDateTime returns the current simulated UTC instant.
func (s *SimulationState) SimulationDateTime() calendar.Instant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instant
}

// SetIntegratorKind switches the gravity kernel used from the next step
// onward; it does not invalidate current state.
func (s *SimulationState) SetIntegratorKind(kind particle.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.system.Kind = kind
}

// isCoreBody reports whether name is one of the always-on bodies Initialize
// seeds, which CreatePlanetSystem/RemovePlanetSystem never add or remove.
func isCoreBody(name string) bool {
	b, ok := lookupBody(name)
	return ok && b.Kind == KindAccurate
}

// CreatePlanetSystem atomically adds planet (if not already a core body)
// together with every registered moon of planet. This covers both the
// eight planets (already present from Initialize, so only their moons are
// added) and a dwarf-planet or asteroid system such as Pluto's, where the
// central body itself is added too.
func (s *SimulationState) CreatePlanetSystem(planet string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	central, ok := lookupBody(planet)
	if !ok {
		return simerr.Wrapf(simerr.ErrUnknownBody, "%q is not a registered body", planet)
	}
	var members []bodyInfo
	if _, exists := s.bodies[planet]; !exists {
		members = append(members, central)
	}
	for _, b := range registry {
		if b.CenterBody == planet {
			if _, exists := s.bodies[b.Name]; !exists {
				members = append(members, b)
			}
		}
	}
	if len(members) == 0 {
		return simerr.Wrapf(simerr.ErrUnknownBody, "%q is already fully present", planet)
	}

	added := make(map[string]*Body, len(members))
	addedParticles := make(map[string]*particle.Particle, len(members))
	seedSource := mergeBodies(s.bodies, added)
	for _, m := range members {
		pos, vel, err := s.seed(m, s.instant, seedSource)
		if err != nil {
			return err
		}
		addSeeded(added, addedParticles, m, pos, vel)
		seedSource = mergeBodies(s.bodies, added)
	}
	for name, b := range added {
		s.bodies[name] = b
		s.particles[name] = addedParticles[name]
	}
	s.rebuildSystem()
	return nil
}

// mergeBodies returns a view combining base and overlay, overlay taking
// precedence, for seed's alreadySeeded lookups mid-batch-add.
func mergeBodies(base, overlay map[string]*Body) map[string]*Body {
	merged := make(map[string]*Body, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// RemovePlanetSystem atomically removes every registered moon of planet,
// and planet itself unless it is a core body Initialize always carries.
func (s *SimulationState) RemovePlanetSystem(planet string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !isCoreBody(planet) {
		delete(s.bodies, planet)
		delete(s.particles, planet)
	}
	for _, b := range registry {
		if b.CenterBody == planet {
			delete(s.bodies, b.Name)
			delete(s.particles, b.Name)
		}
	}
	s.rebuildSystem()
}

// CreateSpacecraft adds a single registered spacecraft's particle and body.
func (s *SimulationState) CreateSpacecraft(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := lookupBody(name)
	if !ok || (b.Kind != KindManual && b.Kind != KindTLE) {
		return simerr.Wrapf(simerr.ErrUnknownSpacecraft, "%q is not a registered spacecraft", name)
	}
	pos, vel, err := s.seed(b, s.instant, s.bodies)
	if err != nil {
		return err
	}
	added := map[string]*Body{}
	addSeeded(added, s.particles, b, pos, vel)
	s.bodies[name] = added[name]
	s.rebuildSystem()
	return nil
}

// RemoveSpacecraft removes a spacecraft's particle and body.
func (s *SimulationState) RemoveSpacecraft(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bodies, name)
	delete(s.particles, name)
	s.rebuildSystem()
}

// SetMass updates a body's mass (kg), recomputing mu = G*mass.
func (s *SimulationState) SetMass(name string, kg float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.particles[name]
	if !ok {
		return simerr.Wrapf(simerr.ErrUnknownBody, "%q not in simulation", name)
	}
	p.Mass = kg
	p.Mu = gravitationalConstant * kg
	return nil
}

// GetMass returns a body's current mass in kg.
func (s *SimulationState) GetMass(name string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.particles[name]
	if !ok {
		return 0, simerr.Wrapf(simerr.ErrUnknownBody, "%q not in simulation", name)
	}
	return p.Mass, nil
}

// SetPositionVelocity overwrites both the live Particle and the published
// Body state for name.
func (s *SimulationState) SetPositionVelocity(name string, pos, vel vector3.Vector3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.particles[name]
	if !ok {
		return simerr.Wrapf(simerr.ErrUnknownBody, "%q not in simulation", name)
	}
	p.Position, p.Velocity = pos, vel
	if b, ok := s.bodies[name]; ok {
		b.Position, b.Velocity = pos, vel
	}
	return nil
}

// GetPosition returns the last-published position for name.
func (s *SimulationState) GetPosition(name string) (vector3.Vector3, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bodies[name]
	if !ok {
		return vector3.Zero, simerr.Wrapf(simerr.ErrUnknownBody, "%q not in simulation", name)
	}
	return b.Position, nil
}

// GetVelocity returns the last-published velocity for name.
func (s *SimulationState) GetVelocity(name string) (vector3.Vector3, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bodies[name]
	if !ok {
		return vector3.Zero, simerr.Wrapf(simerr.ErrUnknownBody, "%q not in simulation", name)
	}
	return b.Velocity, nil
}

// Body returns a copy of the published state for name, for callers that
// want diameter/trajectory alongside position/velocity.
func (s *SimulationState) Body(name string) (Body, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bodies[name]
	if !ok {
		return Body{}, simerr.Wrapf(simerr.ErrUnknownBody, "%q not in simulation", name)
	}
	return *b, nil
}
