package solarsystem

const auMeters = 1.496e11

// EphemerisKind selects which ephemeris.Provider backend seeds a body's
// initial state at initialize() time.
type EphemerisKind int

const (
	// KindAccurate is a body carried on the Chebyshev-segment backend.
	KindAccurate EphemerisKind = iota
	// KindAnalytic is a body seeded from the two-body elements fallback,
	// or, when SemiMajorAxisM is set and no mean-element rates exist for
	// it, a circular-orbit approximation (see seedCircular in
	// solarsystem.go) around its Sun or parent body.
	KindAnalytic
	// KindTLE is a body seeded from a two-line element set.
	KindTLE
	// KindManual has no ephemeris source; its initial state must be set
	// explicitly via SetPositionVelocity after CreateSpacecraft.
	KindManual
)

// bodyInfo is one row of the named-body registry: the exhaustive named-body
// list, tabulated with the data initialize() needs to seed a Particle.
type bodyInfo struct {
	Name           string
	DiameterM      float64
	Mu             float64 // m^3/s^2; 0 for a massless test-particle body
	SemiMajorAxisM float64 // 0 when Kind doesn't need a circular-orbit fallback
	CenterBody     string  // "" means heliocentric
	Kind           EphemerisKind
}

// registry is the package-level table every name resolves against. Mu
// values are standard published GM constants where known; bodies with no
// well-determined mass are carried as massless test particles (Mu 0), which
// both NewtonKernel and the upstream oxygene76 n-body reference treat as a
// supported case ("Skip if massless (test particle)" in
// calculateAccelerations). SemiMajorAxisM backs the circular-orbit fallback
// used for minor bodies and moons that carry no registered mean-element
// rates (see orbital/meanelements.go and seedCircular) — an illustrative
// approximation, not a claim of ephemeris-grade phasing for any individual
// body.
var registry = []bodyInfo{
	{"Sun", 1.3914e9, 1.32712440018e20, 0, "", KindAccurate},

	{"Mercury", 4.879e6, 2.2032e13, 0, "", KindAccurate},
	{"Venus", 1.2104e7, 3.24859e14, 0, "", KindAccurate},
	{"Earth", 1.2742e7, 3.986004418e14, 0, "", KindAccurate},
	{"Mars", 6.779e6, 4.282837e13, 0, "", KindAccurate},
	{"Jupiter", 1.39820e8, 1.26686534e17, 0, "", KindAccurate},
	{"Saturn", 1.16460e8, 3.7931187e16, 0, "", KindAccurate},
	{"Uranus", 5.0724e7, 5.793939e15, 0, "", KindAccurate},
	{"Neptune", 4.9244e7, 6.836529e15, 0, "", KindAccurate},

	{"Moon", 3.4748e6, 4.9048695e12, 3.844e8, "Earth", KindAccurate},

	{"Phobos", 2.27e4, 7.087546e5, 9.376e6, "Mars", KindAnalytic},
	{"Deimos", 1.25e4, 9.615569e4, 2.34632e7, "Mars", KindAnalytic},

	{"Io", 3.6430e6, 5.959916e12, 4.218e8, "Jupiter", KindAnalytic},
	{"Europa", 3.1220e6, 3.202739e12, 6.711e8, "Jupiter", KindAnalytic},
	{"Ganymede", 5.2680e6, 9.887834e12, 1.0704e9, "Jupiter", KindAnalytic},
	{"Callisto", 4.8210e6, 7.179289e12, 1.8827e9, "Jupiter", KindAnalytic},

	{"Mimas", 3.9660e5, 2.5026e9, 1.8552e8, "Saturn", KindAnalytic},
	{"Enceladus", 5.0420e5, 7.2027e9, 2.3802e8, "Saturn", KindAnalytic},
	{"Tethys", 1.0620e6, 4.1210e10, 2.9466e8, "Saturn", KindAnalytic},
	{"Dione", 1.1230e6, 7.3113e10, 3.7740e8, "Saturn", KindAnalytic},
	{"Rhea", 1.5270e6, 1.53942e11, 5.2704e8, "Saturn", KindAnalytic},
	{"Titan", 5.1500e6, 8.9781e12, 1.22187e9, "Saturn", KindAnalytic},
	{"Hyperion", 2.70e5, 3.72e8, 1.50088e9, "Saturn", KindAnalytic},
	{"Iapetus", 1.4690e6, 1.20525e11, 3.56082e9, "Saturn", KindAnalytic},
	{"Phoebe", 2.13e5, 5.53e7, 1.294778e10, "Saturn", KindAnalytic},

	{"Miranda", 4.72e5, 4.4e9, 1.2939e8, "Uranus", KindAnalytic},
	{"Ariel", 1.1578e6, 8.64e10, 1.9102e8, "Uranus", KindAnalytic},
	{"Umbriel", 1.1690e6, 8.17e10, 2.6630e8, "Uranus", KindAnalytic},
	{"Titania", 1.5780e6, 2.269e11, 4.3591e8, "Uranus", KindAnalytic},
	{"Oberon", 1.5230e6, 2.053e11, 5.8352e8, "Uranus", KindAnalytic},

	{"Triton", 2.7070e6, 1.4279e12, 3.54759e8, "Neptune", KindAnalytic},
	{"Nereid", 3.40e5, 2.06e9, 5.5134e9, "Neptune", KindAnalytic},
	{"Proteus", 4.20e5, 0, 1.17647e8, "Neptune", KindAnalytic},

	{"Pluto", 2.3770e6, 8.696e11, 39.48 * auMeters, "", KindAnalytic},
	{"Charon", 1.2120e6, 1.058e11, 1.9591e7, "Pluto", KindAnalytic},
	{"Nix", 4.2e4, 0, 4.8694e7, "Pluto", KindAnalytic},
	{"Hydra", 5.1e4, 0, 6.4738e7, "Pluto", KindAnalytic},
	{"Kerberos", 1.2e4, 0, 5.7783e7, "Pluto", KindAnalytic},
	{"Styx", 1.0e4, 0, 4.2656e7, "Pluto", KindAnalytic},

	{"Eris", 2.3260e6, 1.108e12, 67.78 * auMeters, "", KindAnalytic},
	{"Chiron", 2.1800e5, 0, 13.7 * auMeters, "", KindAnalytic},
	{"Ceres", 9.6400e5, 6.26325e10, 2.77 * auMeters, "", KindAnalytic},
	{"Pallas", 5.1200e5, 1.43e10, 2.77 * auMeters, "", KindAnalytic},
	{"Juno", 2.3300e5, 0, 2.67 * auMeters, "", KindAnalytic},
	{"Vesta", 5.2500e5, 1.729e10, 2.36 * auMeters, "", KindAnalytic},
	{"Ida", 3.16e4, 0, 2.86 * auMeters, "", KindAnalytic},
	{"Eros", 1.6840e4, 4.463e5, 1.46 * auMeters, "", KindAnalytic},
	{"Gaspra", 1.82e4, 0, 2.21 * auMeters, "", KindAnalytic},
	{"Bennu", 4.92e2, 0, 1.13 * auMeters, "", KindAnalytic},
	{"Florence", 4.50e3, 0, 1.77 * auMeters, "", KindAnalytic},
	{"Arrokoth", 3.20e4, 0, 44.6 * auMeters, "", KindAnalytic},

	{"Halley", 1.1000e4, 0, 17.8 * auMeters, "", KindAnalytic},
	{"Encke", 4.80e3, 0, 2.22 * auMeters, "", KindAnalytic},
	{"67P/Churyumov-Gerasimenko", 4.10e3, 0, 3.46 * auMeters, "", KindAnalytic},
	{"Hale-Bopp", 6.00e4, 0, 186.0 * auMeters, "", KindAnalytic},
	{"26P/Grigg-Skjellerup", 2.60e3, 0, 3.03 * auMeters, "", KindAnalytic},
	{"Shoemaker-Levy 9", 2.00e3, 0, 5.2 * auMeters, "", KindAnalytic},

	{"Earth-Moon Barycenter", 0, 0, 1.0 * auMeters, "", KindAnalytic},

	{"Pioneer 10", 2.7, 0, 0, "", KindManual},
	{"Pioneer 11", 2.7, 0, 0, "", KindManual},
	{"Mariner 10", 1.39, 0, 0, "", KindManual},
	{"Voyager 1", 3.7, 0, 0, "", KindManual},
	{"Voyager 2", 3.7, 0, 0, "", KindManual},
	{"New Horizons", 2.2, 0, 0, "", KindManual},
	{"Giotto", 1.85, 0, 0, "", KindManual},
	{"Rosetta", 2.8, 0, 0, "", KindManual},
	{"Apollo 8", 3.9, 0, 0, "", KindManual},
	{"ISS", 109.0, 0, 0, "Earth", KindTLE},
	{"Galileo", 5.3, 0, 0, "", KindManual},
	{"Cassini", 6.8, 0, 0, "", KindManual},
}

var registryByName = func() map[string]bodyInfo {
	m := make(map[string]bodyInfo, len(registry))
	for _, b := range registry {
		m[b.Name] = b
	}
	return m
}()

// lookupBody returns the registry row for name, case-sensitive, and
// whether it was found.
func lookupBody(name string) (bodyInfo, bool) {
	b, ok := registryByName[name]
	return b, ok
}

// allBodyNames returns every registered name, in registry order, so
// initialize can seed bodies in a stable, dependency-respecting order
// (centers before the bodies orbiting them).
func allBodyNames() []string {
	names := make([]string, len(registry))
	for i, b := range registry {
		names[i] = b.Name
	}
	return names
}
