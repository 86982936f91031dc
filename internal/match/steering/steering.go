// Package steering implements the movement behaviors used by player states:
// Seek, Arrive, Pursuit, Evade, Wander, Flee and FollowPath. The package is
// self-contained; callers describe the moving agent with an Agent value so the
// behaviors stay independent of match types.
package steering

import (
	"math"
	"math/rand"

	"football-sim/internal/match/vector"
)

// Agent is the kinematic view of a player. The skill factors are normalized
// multipliers (1.0 = average) precomputed by the caller.
type Agent struct {
	Position     vector.Vector3
	Velocity     vector.Vector3
	MaxSpeed     float64
	Pace         float64
	Acceleration float64
	Agility      float64
}

// Output is a desired velocity plus the heading it implies. Behaviors always
// return finite values; a degenerate input produces a zero velocity.
type Output struct {
	Velocity vector.Vector3
	Rotation float64
}

// Behavior computes a steering output for an agent.
type Behavior interface {
	Calculate(a Agent) Output
}

func output(v vector.Vector3) Output {
	if !v.IsFinite() {
		v = vector.Zero()
	}
	return Output{Velocity: v, Rotation: v.Heading()}
}

// Seek moves at full speed straight toward the target.
type Seek struct {
	Target vector.Vector3
}

func (s Seek) Calculate(a Agent) Output {
	desired := s.Target.Sub(a.Position).Normalize().Scale(a.MaxSpeed * a.Pace)
	return output(desired.Limit(a.MaxSpeed))
}

// Arrive moves toward the target and decelerates quadratically inside
// SlowingDistance. Inside the dead zone the agent stops.
type Arrive struct {
	Target          vector.Vector3
	SlowingDistance float64
}

// arriveDeadZone stops jitter when the agent is effectively at the target.
const arriveDeadZone = 0.5

func (ar Arrive) Calculate(a Agent) Output {
	toTarget := ar.Target.Sub(a.Position)
	dist := toTarget.Norm()
	if dist < arriveDeadZone {
		return output(vector.Zero())
	}
	slowing := ar.SlowingDistance
	if slowing < 1e-6 {
		slowing = 1.0
	}
	speed := a.MaxSpeed
	if dist < slowing {
		ratio := dist / slowing
		speed = a.MaxSpeed * ratio * ratio
	}
	desired := toTarget.Normalize().Scale(math.Min(speed*a.Acceleration, a.MaxSpeed))
	return output(desired)
}

// Pursuit seeks the target's predicted future position.
type Pursuit struct {
	Target         vector.Vector3
	TargetVelocity vector.Vector3
}

func (p Pursuit) Calculate(a Agent) Output {
	dist := p.Target.DistanceTo(a.Position)
	lookahead := 0.0
	if a.MaxSpeed > 1e-6 {
		lookahead = dist / a.MaxSpeed
	}
	predicted := p.Target.Add(p.TargetVelocity.Scale(lookahead))
	return Seek{Target: predicted}.Calculate(a)
}

// Evade flees from the target's predicted future position.
type Evade struct {
	Target         vector.Vector3
	TargetVelocity vector.Vector3
}

func (e Evade) Calculate(a Agent) Output {
	dist := e.Target.DistanceTo(a.Position)
	lookahead := 0.0
	if a.MaxSpeed > 1e-6 {
		lookahead = dist / a.MaxSpeed
	}
	predicted := e.Target.Add(e.TargetVelocity.Scale(lookahead))
	return Flee{Target: predicted}.Calculate(a)
}

// Flee moves at full speed directly away from the target.
type Flee struct {
	Target vector.Vector3
}

func (f Flee) Calculate(a Agent) Output {
	desired := a.Position.Sub(f.Target).Normalize().Scale(a.MaxSpeed * a.Pace)
	return output(desired.Limit(a.MaxSpeed))
}

// Wander meanders by projecting a jittered point on a circle ahead of the
// agent. Angle is mutated between calls to keep the walk continuous, so a
// Wander value must be retained by the caller across ticks.
type Wander struct {
	Target   vector.Vector3
	Radius   float64
	Jitter   float64
	Distance float64
	Angle    float64
	Rng      *rand.Rand
}

func (w *Wander) Calculate(a Agent) Output {
	if w.Rng != nil {
		w.Angle += (w.Rng.Float64()*2 - 1) * w.Jitter
	}
	heading := a.Velocity.Heading()
	if a.Velocity.Norm2D() < 1e-6 {
		heading = w.Target.Sub(a.Position).Heading()
	}
	circleCenter := a.Position.Add(vector.New2D(math.Cos(heading), math.Sin(heading)).Scale(w.Distance))
	offset := vector.New2D(math.Cos(w.Angle), math.Sin(w.Angle)).Scale(w.Radius)
	desired := circleCenter.Add(offset).Sub(a.Position).Normalize().Scale(a.MaxSpeed * 0.5 * a.Agility)
	return output(desired.Limit(a.MaxSpeed))
}

// FollowPath arrives at waypoint Current of Waypoints; the caller advances
// Current when the waypoint is reached.
type FollowPath struct {
	Waypoints []vector.Vector3
	Current   int
	Slowing   float64
}

func (fp FollowPath) Calculate(a Agent) Output {
	if len(fp.Waypoints) == 0 {
		return output(vector.Zero())
	}
	idx := fp.Current
	if idx < 0 {
		idx = 0
	}
	if idx >= len(fp.Waypoints) {
		idx = len(fp.Waypoints) - 1
	}
	slowing := fp.Slowing
	if slowing <= 0 {
		slowing = 10.0
	}
	return Arrive{Target: fp.Waypoints[idx], SlowingDistance: slowing}.Calculate(a)
}
