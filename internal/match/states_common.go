package match

import (
	"football-sim/internal/match/steering"
	"football-sim/internal/match/vector"
)

func init() {
	registerState(StateInjured, injuredState{})
	registerState(StateTakeBall, takeBallState{})
	registerState(StateRunning, runningState{})
	registerState(StateTackling, tacklingState{})
	registerState(StateShooting, shootingState{})
	registerState(StatePassing, passingState{})
	registerState(StateReturning, returningState{})
	registerState(StateResting, restingState{})
}

// baseState supplies the no-op defaults handlers override selectively.
type baseState struct {
	intensity ActivityIntensity
}

func (s baseState) TryFast(*StateContext) *StateChangeResult {
	return nil
}

func (s baseState) ProcessSlow(*StateContext) *StateChangeResult {
	return nil
}

func (s baseState) Velocity(*StateContext) (vector.Vector3, bool) {
	return vector.Zero(), false
}

func (s baseState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, s.intensity)
}

func defaultFor(ctx *StateContext) PlayerState {
	return DefaultState(ctx.Player.Tactical.Current.Group())
}

// injuredState pins the player in place until a substitution removes them.
type injuredState struct {
	baseState
}

func (s injuredState) Velocity(*StateContext) (vector.Vector3, bool) {
	return vector.Zero(), true
}

func (s injuredState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityRecovery)
}

// takeBallState sends the player to collect a loose ball.
type takeBallState struct {
	baseState
}

func (s takeBallState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(StateRunning)
	}
	if ctx.Ball().IsOwned() {
		return toState(defaultFor(ctx))
	}
	return nil
}

func (s takeBallState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	// give up if the chase drags on
	if ctx.InStateTime > 12*1000 {
		return toState(StateReturning)
	}
	return nil
}

func (s takeBallState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	meta := ctx.Tick.Ball
	out := steering.Pursuit{Target: meta.Position, TargetVelocity: meta.Velocity}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s takeBallState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

// runningState is the generic mover: carry the ball, chase it, or work back
// into shape. Decisions branch on possession, not on role; role states feed
// into it for the shared legwork.
type runningState struct {
	baseState
}

func (s runningState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return s.withBall(ctx)
	}
	if !ctx.Team().InControl() {
		if ctx.Ball().ShouldTake() {
			return toState(StateTakeBall)
		}
		if carrier, ok := ctx.Defense().BallCarrier(); ok {
			if ctx.Tick.Distance(ctx.Player.ID, carrier.ID) < 15 && !ctx.Player.IsGoalkeeper() {
				return toState(StateTackling)
			}
		}
	}
	return nil
}

func (s runningState) withBall(ctx *StateContext) *StateChangeResult {
	group := ctx.Player.Tactical.Current.Group()
	if group != GroupGoalkeeper && ctx.Shooting().InRange() &&
		ctx.Shooting().Quality() > MinShotQuality && ctx.Self().HasClearShot() &&
		ctx.Player.Statistics.CanShoot(ctx.Match.Time.Elapsed()) {
		return toState(StateShooting)
	}
	if ctx.Self().UnderPressure(18) {
		return toState(StatePassing)
	}
	if !ctx.Movement().SpaceAhead() && ctx.InStateTime > 500 {
		return toState(StatePassing)
	}
	return nil
}

func (s runningState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() && ctx.Team().InControl() && ctx.InStateTime > 4000 {
		return toState(StateReturning)
	}
	if !ctx.Ball().IsOwned() && !ctx.Team().IsBestChaser() && ctx.InStateTime > 2500 {
		return toState(StateReturning)
	}
	return nil
}

func (s runningState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	agent := ctx.Player.Agent()
	if ctx.Self().HasBall() {
		out := steering.Arrive{Target: ctx.Movement().DribbleTarget(), SlowingDistance: 20}.Calculate(agent)
		return out.Velocity, true
	}
	if ctx.Team().InControl() {
		if carrier, ok := ctx.Players().Teammates().WithBall(); ok {
			target := ctx.Movement().SupportPosition(carrier)
			out := steering.Arrive{Target: target, SlowingDistance: 30}.Calculate(agent)
			return out.Velocity.Add(ctx.Self().SeparationVelocity()).Limit(agent.MaxSpeed), true
		}
	}
	meta := ctx.Tick.Ball
	out := steering.Pursuit{Target: meta.Position, TargetVelocity: meta.Velocity}.Calculate(agent)
	return out.Velocity, true
}

func (s runningState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

const (
	tackleEngageDistance = 6.0
	tackleChaseTimeoutMs = 3000
)

// tacklingState chases the carrier and attempts to win the ball. Outcomes:
// clean tackle, foul, or a miss that leaves the tackler behind the play.
type tacklingState struct {
	baseState
}

func (s tacklingState) TryFast(ctx *StateContext) *StateChangeResult {
	carrier, ok := ctx.Defense().BallCarrier()
	if !ok {
		if ctx.Ball().ShouldTake() {
			return toState(StateTakeBall)
		}
		return toState(defaultFor(ctx))
	}
	if ctx.Tick.Distance(ctx.Player.ID, carrier.ID) > tackleEngageDistance {
		return nil
	}
	return s.resolve(ctx, carrier)
}

func (s tacklingState) resolve(ctx *StateContext, carrier PlayerLite) *StateChangeResult {
	// a freshly claimed or received ball is protected; no duel until the
	// flight window runs out
	if ctx.Ball().InFlight() {
		return toState(defaultFor(ctx))
	}
	carrierPlayer := ctx.Match.Players.ByID(carrier.ID)
	if carrierPlayer == nil {
		return toState(defaultFor(ctx))
	}

	tackle := skillUnit(ctx.Player.Skills.Technical.Tackling)
	keep := skillUnit(carrierPlayer.Skills.Technical.Dribbling)*0.6 +
		skillUnit(carrierPlayer.Skills.Physical.Strength)*0.4
	winChance := clampFloat(0.35+0.5*(tackle-keep), 0.1, 0.85)

	roll := ctx.Match.Rng.Float64()
	switch {
	case roll < winChance:
		return toStateWith(StateRunning, NewTacklingEvent(ctx.Player.ID, carrier.ID))
	case roll < winChance+0.15*(1.0-tackle)+0.05*skillUnit(ctx.Player.Skills.Mental.Aggression):
		return toStateWith(StateReturning, NewCommitFoulEvent(ctx.Player.ID, carrier.ID))
	default:
		return toState(StateReturning)
	}
}

func (s tacklingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > tackleChaseTimeoutMs {
		return toState(StateReturning)
	}
	return nil
}

func (s tacklingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	if carrier, ok := ctx.Defense().BallCarrier(); ok {
		out := steering.Pursuit{Target: carrier.Position, TargetVelocity: carrier.Velocity}.Calculate(ctx.Player.Agent())
		return out.Velocity, true
	}
	return vector.Zero(), true
}

func (s tacklingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// shootingState fires one shot and rejoins play.
type shootingState struct {
	baseState
}

func (s shootingState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(defaultFor(ctx))
	}
	event := NewShootEvent(ctx.Player.ID, ctx.Shooting().Target(), ctx.Shooting().Force())
	return toStateWith(StateRunning, event).WithVelocity(vector.Zero())
}

func (s shootingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// passingState releases the ball to the best available teammate, or clears
// it when nobody is open and the pressure is on.
type passingState struct {
	baseState
}

func (s passingState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(defaultFor(ctx))
	}
	if target, ok := ctx.Passing().BestOption(); ok {
		event := NewPassEvent(ctx.Player.ID, target.ID, ctx.Passing().LeadTarget(target), ctx.Passing().ForceFor(target))
		return toStateWith(StateRunning, event).WithVelocity(vector.Zero())
	}
	if target, ok := ctx.Passing().SafeOption(); ok {
		event := NewPassEvent(ctx.Player.ID, target.ID, ctx.Passing().LeadTarget(target), ctx.Passing().ForceFor(target))
		return toStateWith(StateRunning, event).WithVelocity(vector.Zero())
	}
	if ctx.Self().UnderPressure(12) {
		event := NewClearBallEvent(ctx.Player.ID, ctx.Shooting().ClearanceTarget(), 2.5)
		return toStateWith(StateRunning, event)
	}
	// nobody open, no pressure: keep carrying
	return toState(StateRunning)
}

func (s passingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// returningState walks the player back to their formation slot.
type returningState struct {
	baseState
}

func (s returningState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if ctx.Self().DistanceFromStartPosition() < 10 {
		return toState(defaultFor(ctx))
	}
	return nil
}

func (s returningState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := steering.Arrive{Target: ctx.Player.StartPosition, SlowingDistance: 30}.Calculate(ctx.Player.Agent())
	return out.Velocity.Scale(0.8), true
}

func (s returningState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityLow)
}

// restingState lets a spent player recover in place until the game demands
// them again.
type restingState struct {
	baseState
}

func (s restingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if ctx.Ball().Distance() < 60 {
		return toState(defaultFor(ctx))
	}
	if ctx.Player.Attributes.Condition > MaxConditionValue/2 {
		return toState(defaultFor(ctx))
	}
	return nil
}

func (s restingState) Velocity(*StateContext) (vector.Vector3, bool) {
	return vector.Zero(), true
}

func (s restingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityRecovery)
}
