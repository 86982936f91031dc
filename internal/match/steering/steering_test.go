package steering

import (
	"math"
	"math/rand"
	"testing"

	"football-sim/internal/match/vector"
)

func testAgent(x, y float64) Agent {
	return Agent{
		Position:     vector.New2D(x, y),
		MaxSpeed:     8.0,
		Pace:         1.0,
		Acceleration: 1.0,
		Agility:      1.0,
	}
}

// TestSeekHeadsToTarget verifies the desired velocity points at the target at
// full speed.
func TestSeekHeadsToTarget(t *testing.T) {
	a := testAgent(0, 0)
	out := Seek{Target: vector.New2D(100, 0)}.Calculate(a)

	if out.Velocity.X <= 0 || out.Velocity.Y != 0 {
		t.Errorf("Expected motion along +x, got %v", out.Velocity)
	}
	if math.Abs(out.Velocity.Norm()-a.MaxSpeed) > 1e-9 {
		t.Errorf("Expected full speed %f, got %f", a.MaxSpeed, out.Velocity.Norm())
	}
}

// TestSeekNeverExceedsMaxSpeed verifies the pace multiplier is capped.
func TestSeekNeverExceedsMaxSpeed(t *testing.T) {
	a := testAgent(0, 0)
	a.Pace = 1.5
	out := Seek{Target: vector.New2D(100, 50)}.Calculate(a)

	if out.Velocity.Norm() > a.MaxSpeed+1e-9 {
		t.Errorf("Speed %f exceeds cap %f", out.Velocity.Norm(), a.MaxSpeed)
	}
}

// TestArriveDeadZone verifies the agent stops when effectively at the target.
func TestArriveDeadZone(t *testing.T) {
	a := testAgent(100, 100)
	out := Arrive{Target: vector.New2D(100.2, 100), SlowingDistance: 10}.Calculate(a)

	if !out.Velocity.IsZero() {
		t.Errorf("Expected stop inside the dead zone, got %v", out.Velocity)
	}
}

// TestArriveDecelerates verifies speed falls off quadratically inside the
// slowing radius and is full outside it.
func TestArriveDecelerates(t *testing.T) {
	a := testAgent(0, 0)

	far := Arrive{Target: vector.New2D(100, 0), SlowingDistance: 10}.Calculate(a)
	if math.Abs(far.Velocity.Norm()-a.MaxSpeed) > 1e-9 {
		t.Errorf("Expected full speed outside slowing radius, got %f", far.Velocity.Norm())
	}

	// at half the slowing distance the quadratic falloff gives a quarter speed
	near := Arrive{Target: vector.New2D(5, 0), SlowingDistance: 10}.Calculate(a)
	want := a.MaxSpeed * 0.25
	if math.Abs(near.Velocity.Norm()-want) > 1e-9 {
		t.Errorf("Expected quarter speed %f at half radius, got %f", want, near.Velocity.Norm())
	}
}

// TestDegenerateInputsStayFinite verifies no behavior ever emits NaN, even
// when the agent sits exactly on the target.
func TestDegenerateInputsStayFinite(t *testing.T) {
	a := testAgent(50, 50)
	on := vector.New2D(50, 50)

	behaviors := []struct {
		name string
		b    Behavior
	}{
		{"seek self", Seek{Target: on}},
		{"flee self", Flee{Target: on}},
		{"pursuit self", Pursuit{Target: on}},
		{"evade self", Evade{Target: on}},
		{"empty path", FollowPath{}},
	}

	for _, tt := range behaviors {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.b.Calculate(a)
			if !out.Velocity.IsFinite() {
				t.Errorf("Non-finite velocity %v", out.Velocity)
			}
			if math.IsNaN(out.Rotation) {
				t.Error("Rotation is NaN")
			}
		})
	}
}

// TestFleeOpposesSeek verifies flee points exactly away from the target.
func TestFleeOpposesSeek(t *testing.T) {
	a := testAgent(0, 0)
	target := vector.New2D(10, 0)

	seek := Seek{Target: target}.Calculate(a)
	flee := Flee{Target: target}.Calculate(a)

	if flee.Velocity.X >= 0 {
		t.Errorf("Flee should move along -x, got %v", flee.Velocity)
	}
	if math.Abs(seek.Velocity.X+flee.Velocity.X) > 1e-9 {
		t.Error("Flee should mirror seek")
	}
}

// TestPursuitLeadsMovingTarget verifies pursuit aims ahead of a mover while a
// stationary target degrades to plain seek.
func TestPursuitLeadsMovingTarget(t *testing.T) {
	a := testAgent(0, 0)
	target := vector.New2D(50, 0)

	still := Pursuit{Target: target}.Calculate(a)
	seek := Seek{Target: target}.Calculate(a)
	if still.Velocity != seek.Velocity {
		t.Error("Pursuit of a stationary target should equal seek")
	}

	// target moving along +y pulls the intercept heading upward
	moving := Pursuit{Target: target, TargetVelocity: vector.New2D(0, 5)}.Calculate(a)
	if moving.Velocity.Y <= 0 {
		t.Errorf("Expected upward lead, got %v", moving.Velocity)
	}
}

// TestWanderIsDeterministic verifies identical seeds walk identically and the
// angle actually mutates between calls.
func TestWanderIsDeterministic(t *testing.T) {
	run := func(seed int64) []vector.Vector3 {
		a := testAgent(50, 50)
		a.Velocity = vector.New2D(1, 0)
		w := &Wander{
			Target:   vector.New2D(60, 50),
			Radius:   5,
			Jitter:   0.5,
			Distance: 10,
			Rng:      rand.New(rand.NewSource(seed)),
		}
		outs := make([]vector.Vector3, 0, 10)
		for i := 0; i < 10; i++ {
			outs = append(outs, w.Calculate(a).Velocity)
		}
		return outs
	}

	a, b := run(7), run(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Step %d diverged under the same seed: %v vs %v", i, a[i], b[i])
		}
	}

	c := run(8)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Error("Different seeds produced an identical walk")
	}
}

// TestFollowPathClampsIndex verifies out-of-range waypoint indexes are
// clamped instead of panicking.
func TestFollowPathClampsIndex(t *testing.T) {
	path := []vector.Vector3{vector.New2D(10, 10), vector.New2D(90, 90)}
	a := testAgent(0, 0)

	for _, idx := range []int{-3, 0, 1, 99} {
		out := FollowPath{Waypoints: path, Current: idx}.Calculate(a)
		if !out.Velocity.IsFinite() {
			t.Errorf("Index %d produced non-finite output", idx)
		}
		if out.Velocity.IsZero() {
			t.Errorf("Index %d should still move toward a waypoint", idx)
		}
	}
}
