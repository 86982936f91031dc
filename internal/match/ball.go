package match

import (
	"math"

	"football-sim/internal/match/vector"
)

const (
	// horizontal damping per tick, airborne vs rolling
	ballAirDrag       = 0.995
	ballRollingDrag   = 0.985
	ballRollingFloor  = 0.004
	ballBounceRestore = 0.4

	// a slow unowned ball is dead after this many ticks and calls for help
	ballStandStillSpeed = 0.05
	ballStandStillTicks = 100

	// maximum ball height a player can play without jumping skill
	ballBaseReachHeight = 2.0
)

// Ball is the single match ball. Ownership transfers only through dispatched
// events; while flightTicks is positive the ball is protected and no claim
// resolution runs.
type Ball struct {
	Position vector.Vector3
	Velocity vector.Vector3

	CurrentOwner  int
	PreviousOwner int

	flightTicks      int
	notifiedReceiver int
	standStillTicks  int
	goalEmitted      bool
}

func NewBall() *Ball {
	return &Ball{
		Position:         vector.New2D(FieldWidth/2, FieldHeight/2),
		CurrentOwner:     NoOwner,
		PreviousOwner:    NoOwner,
		notifiedReceiver: NoOwner,
	}
}

func (b *Ball) InFlight() bool {
	return b.flightTicks > 0
}

func (b *Ball) Owned() bool {
	return b.CurrentOwner != NoOwner
}

// SetOwner assigns ownership and starts a protection window.
func (b *Ball) SetOwner(playerID int, flightTicks int) {
	if b.CurrentOwner != playerID {
		b.PreviousOwner = b.CurrentOwner
	}
	b.CurrentOwner = playerID
	b.flightTicks = flightTicks
	b.notifiedReceiver = NoOwner
	b.standStillTicks = 0
}

// Release puts the ball in flight: the releasing player becomes the previous
// owner and nobody owns the ball until it is claimed.
func (b *Ball) Release(velocity vector.Vector3, byPlayer int, flightTicks int) {
	b.PreviousOwner = byPlayer
	b.CurrentOwner = NoOwner
	b.Velocity = velocity
	b.flightTicks = flightTicks
	b.notifiedReceiver = NoOwner
	b.standStillTicks = 0
}

// NotifyReceiver marks the player a pass is aimed at.
func (b *Ball) NotifyReceiver(playerID int) {
	b.notifiedReceiver = playerID
}

// IsNotified reports whether the player is the intended pass receiver.
func (b *Ball) IsNotified(playerID int) bool {
	return b.notifiedReceiver == playerID
}

// ResetToCenter restages the ball for a kickoff.
func (b *Ball) ResetToCenter() {
	b.Position = vector.New2D(FieldWidth/2, FieldHeight/2)
	b.Velocity = vector.Zero()
	b.CurrentOwner = NoOwner
	b.PreviousOwner = NoOwner
	b.flightTicks = 0
	b.notifiedReceiver = NoOwner
	b.standStillTicks = 0
	b.goalEmitted = false
}

// Update advances the ball one tick: follow the owner or integrate physics,
// then detect goals and resolve loose-ball claims. Emitted events are applied
// later by the dispatcher.
func (b *Ball) Update(ctx *MatchContext, events *EventCollection) {
	// a tick that starts protected only counts the window down; claims resume
	// the tick after it reaches zero
	protected := b.flightTicks > 0
	if protected {
		b.flightTicks--
	}

	if b.Owned() {
		owner := ctx.Players.ByID(b.CurrentOwner)
		if owner != nil && owner.OnField {
			b.Position = owner.Position.Add(owner.Velocity.Normalize().Scale(2.0))
			b.Position.Z = 0
			b.Velocity = owner.Velocity
			b.standStillTicks = 0
			return
		}
		// owner left the field; ball becomes loose where it lies
		b.CurrentOwner = NoOwner
	}

	b.integrate()

	if b.checkGoal(ctx, events) {
		return
	}
	b.clampToField()
	if !protected {
		b.resolveClaims(ctx, events)
	}
	b.checkStandStill(ctx, events)
}

// integrate applies velocity, drag and gravity for a loose ball.
func (b *Ball) integrate() {
	b.Position.X += b.Velocity.X
	b.Position.Y += b.Velocity.Y

	airborne := b.Position.Z > 0 || b.Velocity.Z > 0
	if airborne {
		b.Position.Z += b.Velocity.Z
		b.Velocity.Z -= gravityPerTick
		if b.Position.Z <= 0 {
			b.Position.Z = 0
			if b.Velocity.Z < -0.05 {
				b.Velocity.Z = -b.Velocity.Z * ballBounceRestore
			} else {
				b.Velocity.Z = 0
			}
		}
		b.Velocity.X *= ballAirDrag
		b.Velocity.Y *= ballAirDrag
		return
	}

	speed := b.Velocity.Norm2D()
	if speed < 1e-6 {
		b.Velocity.X, b.Velocity.Y = 0, 0
		return
	}
	damped := speed*ballRollingDrag - ballRollingFloor
	if damped < 0 {
		damped = 0
	}
	scale := damped / speed
	b.Velocity.X *= scale
	b.Velocity.Y *= scale
}

// checkGoal emits at most one goal per restart and freezes the ball on the
// line until the engine restages the kickoff.
func (b *Ball) checkGoal(ctx *MatchContext, events *EventCollection) bool {
	if b.goalEmitted {
		return true
	}
	if side, ok := ctx.Goals.IsGoal(b.Position); ok {
		if b.PreviousOwner != NoOwner {
			events.Add(NewGoalEvent(side, b.PreviousOwner))
			b.goalEmitted = true
			b.Velocity = vector.Zero()
			return true
		}
	}
	if _, ok := ctx.Goals.IsOverBar(b.Position); ok {
		ctx.Logger.Debug().Uint64("time_ms", ctx.Time.Elapsed()).Msg("shot over the bar")
		b.Velocity = vector.Zero()
		b.Position.Z = 0
	}
	return false
}

// clampToField keeps the ball in play; balls that cross a boundary outside
// the goal mouth stop dead on the line.
func (b *Ball) clampToField() {
	out := false
	if b.Position.X < 0 {
		b.Position.X, out = 0, true
	}
	if b.Position.X > FieldWidth {
		b.Position.X, out = FieldWidth, true
	}
	if b.Position.Y < 0 {
		b.Position.Y, out = 0, true
	}
	if b.Position.Y > FieldHeight {
		b.Position.Y, out = FieldHeight, true
	}
	if out {
		b.Velocity = vector.Zero()
		b.Position.Z = 0
	}
}

// resolveClaims hands a loose, unprotected ball to the best nearby claimant.
// Equidistant contests resolve by duel score, then by lower id.
func (b *Ball) resolveClaims(ctx *MatchContext, events *EventCollection) {
	if b.Owned() || b.InFlight() {
		return
	}

	var best *MatchPlayer
	bestScore := math.Inf(-1)
	for _, p := range ctx.Players.OnField() {
		dist := p.Position.DistanceTo2D(b.Position)
		if dist > BallClaimDistance {
			continue
		}
		reach := ballBaseReachHeight + skillUnit(p.Skills.Physical.Jumping)*0.6
		if b.Position.Z > reach {
			continue
		}
		score := duelScore(p) - dist*0.1
		if b.IsNotified(p.ID) {
			score += 2.0
		}
		if score > bestScore || (score == bestScore && best != nil && p.ID < best.ID) {
			best, bestScore = p, score
		}
	}
	if best == nil {
		return
	}

	prev := ctx.Players.ByID(b.PreviousOwner)
	if prev != nil && prev.TeamID != best.TeamID {
		events.Add(NewGainBallEvent(best.ID))
	} else {
		events.Add(NewClaimBallEvent(best.ID))
	}
}

// duelScore weighs the skills that decide a loose-ball contest.
func duelScore(p *MatchPlayer) float64 {
	return 0.4*skillUnit(p.Skills.Technical.Tackling) +
		0.2*skillUnit(p.Skills.Mental.Aggression) +
		0.2*skillUnit(p.Skills.Physical.Strength) +
		0.1*skillUnit(p.Skills.Mental.Bravery) +
		0.1*skillUnit(p.Skills.Physical.Agility)
}

// checkStandStill rescues a dead ball by summoning the nearest player.
func (b *Ball) checkStandStill(ctx *MatchContext, events *EventCollection) {
	if b.Owned() || b.Velocity.Norm2D() > ballStandStillSpeed {
		b.standStillTicks = 0
		return
	}
	b.standStillTicks++
	if b.standStillTicks < ballStandStillTicks {
		return
	}
	b.standStillTicks = 0

	var nearest *MatchPlayer
	nearestDist := math.Inf(1)
	for _, p := range ctx.Players.OnField() {
		if p.Tactical.Current.Group() == GroupGoalkeeper {
			continue
		}
		d := p.Position.DistanceTo2D(b.Position)
		if d < nearestDist || (d == nearestDist && nearest != nil && p.ID < nearest.ID) {
			nearest, nearestDist = p, d
		}
	}
	if nearest != nil {
		events.Add(NewTakeMeEvent(nearest.ID))
	}
}
