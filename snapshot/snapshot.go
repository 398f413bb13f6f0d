// Package snapshot saves and restores a complete solarsystem.SimulationState
// as an opaque, versioned, self-describing byte sequence, so a simulation
// can be paused, persisted, and resumed without losing precision: save then
// load then advance reproduces what advancing straight through would have
// produced, bit-exact per body.
package snapshot

import (
	"bytes"
	"encoding/gob"

	"github.com/nicokuijpers/solarsystemsim/internal/simerr"
	"github.com/nicokuijpers/solarsystemsim/solarsystem"
)

// formatVersion is bumped whenever solarsystem.State's shape changes in a
// way that would make an old snapshot decode into the wrong fields.
const formatVersion = 1

// envelope carries the format version ahead of the payload, so Load can
// reject a foreign or stale snapshot before trusting its contents.
type envelope struct {
	Version int
	State   solarsystem.State
}

// Save encodes state's complete simulated contents (every body, every
// particle, the simulated clock, and the active integrator kind) into an
// opaque byte sequence. Ephemeris backends and Config are not part of the
// snapshot; Load expects to be given an already-constructed facade.
func Save(state *solarsystem.SimulationState) ([]byte, error) {
	var buf bytes.Buffer
	env := envelope{Version: formatVersion, State: state.Export()}
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, simerr.Wrap(err, "snapshot: encode")
	}
	return buf.Bytes(), nil
}

// Load decodes data produced by Save and overwrites state's simulated
// contents with it.
func Load(data []byte, state *solarsystem.SimulationState) error {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return simerr.Wrap(err, "snapshot: decode")
	}
	if env.Version != formatVersion {
		return simerr.Wrapf(simerr.ErrSnapshotVersion, "got %d, want %d", env.Version, formatVersion)
	}
	state.Import(env.State)
	return nil
}
