// Command simulate runs the solar system core headlessly: it initializes
// the named-body registry at a given date, advances it for a requested
// duration under the coordinator's writer task loop, and reports the final
// published state of the core bodies. It has no rendering of its own; the
// GUI this core was built to sit behind drives the same facade through the
// same coordinator.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nicokuijpers/solarsystemsim/calendar"
	"github.com/nicokuijpers/solarsystemsim/coordinator"
	"github.com/nicokuijpers/solarsystemsim/ephemeris/accurate"
	"github.com/nicokuijpers/solarsystemsim/particle"
	"github.com/nicokuijpers/solarsystemsim/snapshot"
	"github.com/nicokuijpers/solarsystemsim/solarsystem"
	"github.com/nicokuijpers/solarsystemsim/units"
)

func main() {
	kernelPath := flag.String("kernel", "", "path to a DAF/SPK ephemeris kernel; empty runs on the analytic/circular fallback")
	days := flag.Float64("days", 1, "number of days to advance")
	fast := flag.Bool("fast", false, "advance using the fast-mode substep multiplier")
	integratorName := flag.String("integrator", "newton", "gravity kernel: newton, ppn, or cwpm")
	planetSystems := commaFlag("planet-systems", "comma-separated planets/dwarf planets to add moons for, e.g. Jupiter,Pluto")
	spacecraft := commaFlag("spacecraft", "comma-separated registered spacecraft to add, e.g. ISS,Voyager 1")
	snapshotOut := flag.String("snapshot-out", "", "write a snapshot of the final state to this path")
	inAU := flag.Bool("au", false, "report positions in astronomical units instead of meters")
	flag.Parse()

	var accurateEph *accurate.Accurate
	if *kernelPath != "" {
		var err error
		accurateEph, err = accurate.Open(*kernelPath)
		if err != nil {
			log.Fatalf("opening kernel %q: %v", *kernelPath, err)
		}
	}

	state := solarsystem.New(accurateEph, solarsystem.Config{})
	epoch := calendar.Instant{Era: calendar.AD, Year: 2000, Month: 1, Day: 1, Hour: 12}
	if err := state.Initialize(epoch); err != nil {
		log.Fatalf("initialize: %v", err)
	}

	if kind, ok := parseIntegrator(*integratorName); ok {
		state.SetIntegratorKind(kind)
	} else {
		log.Fatalf("unknown -integrator %q", *integratorName)
	}

	for _, name := range planetSystems.values() {
		if err := state.CreatePlanetSystem(name); err != nil {
			log.Fatalf("CreatePlanetSystem(%s): %v", name, err)
		}
	}
	for _, name := range spacecraft.values() {
		if err := state.CreateSpacecraft(name); err != nil {
			log.Fatalf("CreateSpacecraft(%s): %v", name, err)
		}
	}

	speed := coordinator.Speed{Slider: 1, Mode: coordinator.NormalSpeed}
	if *fast {
		speed.Mode = coordinator.FastSpeed
	}
	coord := coordinator.New(state, speed)

	// Each AdvanceForward unit is one 60 s base step, or 24 of them in fast
	// mode, so the unit count is scaled to keep -days a span of simulated time.
	baseUnits := *days * 86400 / 60
	if *fast {
		baseUnits /= 24
	}
	batches := int(baseUnits)
	// A batch run drives the advance directly through Mutate rather than
	// Start/Stop's paced writer loop, so it completes in one deterministic
	// call instead of racing Speed's wall-clock sleep; Start/Stop exist for
	// the animated, interactive use this core was built to sit behind.
	if err := coord.Mutate(func() error { return state.AdvanceForward(batches, *fast) }); err != nil {
		log.Fatalf("advance: %v", err)
	}

	report(state, *inAU)

	if *snapshotOut != "" {
		data, err := snapshot.Save(state)
		if err != nil {
			log.Fatalf("snapshot: %v", err)
		}
		if err := os.WriteFile(*snapshotOut, data, 0o644); err != nil {
			log.Fatalf("writing snapshot: %v", err)
		}
		fmt.Printf("\nwrote %d bytes to %s\n", len(data), *snapshotOut)
	}
}

func parseIntegrator(name string) (particle.Kind, bool) {
	switch name {
	case "newton":
		return particle.Newton, true
	case "ppn":
		return particle.PPNGeneralRelativity, true
	case "cwpm":
		return particle.CWPM, true
	default:
		return 0, false
	}
}

func report(state *solarsystem.SimulationState, inAU bool) {
	when := state.SimulationDateTime()
	fmt.Printf("simulated clock: %04d-%02d-%02d %02d:%02d\n", when.Year, when.Month, when.Day, when.Hour, when.Minute)
	for _, name := range []string{"Sun", "Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Moon"} {
		b, err := state.Body(name)
		if err != nil {
			continue
		}
		if inAU {
			fmt.Printf("%-10s pos=(%.6f, %.6f, %.6f) AU  |r|=%.6f AU\n",
				b.Name,
				units.DistanceFromMeters(b.Position.X).AU(),
				units.DistanceFromMeters(b.Position.Y).AU(),
				units.DistanceFromMeters(b.Position.Z).AU(),
				units.DistanceFromMeters(b.Position.Magnitude()).AU())
			continue
		}
		fmt.Printf("%-10s pos=(%.3e, %.3e, %.3e) m  vel=(%.3e, %.3e, %.3e) m/s\n",
			b.Name, b.Position.X, b.Position.Y, b.Position.Z, b.Velocity.X, b.Velocity.Y, b.Velocity.Z)
	}
}

// stringList is a flag.Value collecting a comma-separated list.
type stringList struct {
	raw string
}

func commaFlag(name, usage string) *stringList {
	l := &stringList{}
	flag.Var(l, name, usage)
	return l
}

func (l *stringList) String() string { return l.raw }

func (l *stringList) Set(v string) error {
	l.raw = v
	return nil
}

func (l *stringList) values() []string {
	if l.raw == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(l.raw); i++ {
		if i == len(l.raw) || l.raw[i] == ',' {
			if i > start {
				out = append(out, l.raw[start:i])
			}
			start = i + 1
		}
	}
	return out
}
