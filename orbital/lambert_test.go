package orbital

import (
	"math"
	"testing"

	"github.com/nicokuijpers/solarsystemsim/vector3"
)

func TestSolveLambert_KnownTwoBodyTransfer(t *testing.T) {
	// Construct a transfer between two points of a known circular orbit so
	// the expected v1 is known analytically: r1 at angle 0, r2 at angle
	// theta after time dt on a circular orbit of radius r.
	r := 2.279e11 // roughly Mars orbital radius, m
	mu := muSun
	period := 2 * math.Pi * math.Sqrt(r*r*r/mu)
	dt := period / 6 // 60 degrees of travel

	theta := 2 * math.Pi * dt / period
	r1 := vector3.New(r, 0, 0)
	r2 := vector3.New(r*math.Cos(theta), r*math.Sin(theta), 0)

	v := math.Sqrt(mu / r)
	wantV1 := vector3.New(0, v, 0)

	sols, err := SolveLambert(r1, r2, dt, mu, false, 0)
	if err != nil {
		t.Fatalf("SolveLambert: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("expected at least one solution")
	}
	got := sols[0].V1
	if got.Distance(wantV1) > 1.0 {
		t.Errorf("v1 = %+v, want close to %+v", got, wantV1)
	}
}

func TestSolveLambert_RejectsNonPositiveTime(t *testing.T) {
	_, err := SolveLambert(vector3.New(1, 0, 0), vector3.New(0, 1, 0), 0, muSun, false, 0)
	if err == nil {
		t.Fatal("expected error for non-positive transfer time")
	}
}

func TestSolveLambert_MultiRevolutionReturnsBothBranches(t *testing.T) {
	r := 3.5e8 // Triton-around-Neptune scale, m
	mu := 6.836529e15
	period := 2 * math.Pi * math.Sqrt(r*r*r/mu)

	// Choose dt spanning one full revolution plus a partial arc so k=1 has
	// a feasible bracket.
	dt := 1.2 * period
	theta := math.Mod(2*math.Pi*dt/period, 2*math.Pi)
	r1 := vector3.New(r, 0, 0)
	r2 := vector3.New(r*math.Cos(theta), r*math.Sin(theta), 0)

	sols, err := SolveLambert(r1, r2, dt, mu, false, 1)
	if err != nil {
		t.Fatalf("SolveLambert: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("expected at least one solution")
	}
	branches := map[int]bool{}
	for _, s := range sols {
		if s.Revs > 1 {
			t.Errorf("unexpected revolution count %d", s.Revs)
		}
		if s.Revs == 1 {
			branches[s.Branch] = true
		}
	}
	if !branches[1] || !branches[2] {
		t.Errorf("k=1 branches returned = %v, want both 1 (left) and 2 (right)", branches)
	}
}
