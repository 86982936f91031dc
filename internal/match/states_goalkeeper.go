package match

import (
	"football-sim/internal/match/steering"
	"football-sim/internal/match/vector"
)

func init() {
	registerState(GoalkeeperStanding, gkStandingState{})
	registerState(GoalkeeperWalking, gkWalkingState{})
	registerState(GoalkeeperAttentive, gkAttentiveState{})
	registerState(GoalkeeperComingOut, gkComingOutState{})
	registerState(GoalkeeperPreparingForSave, gkPreparingForSaveState{})
	registerState(GoalkeeperDiving, gkDivingState{})
	registerState(GoalkeeperCatching, gkCatchingState{})
	registerState(GoalkeeperHoldingBall, gkHoldingBallState{})
	registerState(GoalkeeperDistributing, gkDistributingState{})
	registerState(GoalkeeperUnderPressure, gkUnderPressureState{})
	registerState(GoalkeeperReturningToGoal, gkReturningToGoalState{})
	registerState(GoalkeeperSweeping, gkSweepingState{})
}

const (
	gkAlertDistance    = 300.0
	gkSaveDistance     = 150.0
	gkDiveDistance     = 30.0
	gkHoldTimeMs       = 3000
	gkComeOutTimeoutMs = 6000
)

// gkStandingState is the keeper's idle hub on the goal line.
type gkStandingState struct {
	baseState
}

func (s gkStandingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		if ctx.Self().UnderPressure(15) {
			return toState(GoalkeeperUnderPressure)
		}
		return toState(GoalkeeperHoldingBall)
	}
	if ctx.Ball().DistanceToOwnGoal() < gkAlertDistance {
		return toState(GoalkeeperAttentive)
	}
	return nil
}

func (s gkStandingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 5000 && ctx.Team().InControl() {
		return toState(GoalkeeperWalking)
	}
	return nil
}

func (s gkStandingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := steering.Arrive{Target: ctx.Player.StartPosition, SlowingDistance: 15}.Calculate(ctx.Player.Agent())
	return out.Velocity.Scale(0.5), true
}

func (s gkStandingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityRecovery)
}

// gkWalkingState drifts around the goal area while play is far away.
type gkWalkingState struct {
	baseState
}

func (s gkWalkingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(GoalkeeperHoldingBall)
	}
	if ctx.Ball().DistanceToOwnGoal() < gkAlertDistance {
		return toState(GoalkeeperAttentive)
	}
	return nil
}

func (s gkWalkingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.Self().DistanceFromStartPosition() > 40 {
		return toState(GoalkeeperReturningToGoal)
	}
	return nil
}

func (s gkWalkingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := ctx.Player.Wander(ctx.Match).Calculate(ctx.Player.Agent())
	return out.Velocity.Scale(0.3), true
}

func (s gkWalkingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityLow)
}

// gkAttentiveState shadows the ball along the goal line, cutting the angle.
type gkAttentiveState struct {
	baseState
}

func (s gkAttentiveState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(GoalkeeperHoldingBall)
	}
	meta := ctx.Tick.Ball
	ballToGoal := ctx.Ball().DistanceToOwnGoal()

	if meta.InFlight && ballToGoal < gkSaveDistance && s.ballTowardsGoal(ctx) {
		return toState(GoalkeeperPreparingForSave)
	}
	if !meta.IsOwned && !meta.InFlight {
		area := PenaltyAreaFor(ctx.Player.Side)
		if area.Contains(meta.Position) {
			if ctx.Ball().Distance() < 12 && ctx.Ball().Speed() < 1.0 {
				return toState(GoalkeeperCatching)
			}
			return toState(GoalkeeperComingOut)
		}
	}
	if ballToGoal > gkAlertDistance+60 {
		return toState(GoalkeeperReturningToGoal)
	}
	return nil
}

func (s gkAttentiveState) ballTowardsGoal(ctx *StateContext) bool {
	meta := ctx.Tick.Ball
	if meta.Velocity.Norm2D() < 0.5 {
		return false
	}
	own := ctx.Self().OwnGoal()
	toGoal := own.Sub(meta.Position).Normalize()
	return meta.Velocity.Normalize().Dot(toGoal) > 0.6
}

func (s gkAttentiveState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	own := ctx.Self().OwnGoal()
	ball := ctx.Tick.Ball.Position
	// stand a few units off the line, on the ball-goal axis
	target := own.Add(ball.Sub(own).Normalize().Scale(12))
	out := steering.Arrive{Target: target, SlowingDistance: 8}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s gkAttentiveState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// gkComingOutState rushes a loose ball inside the area.
type gkComingOutState struct {
	baseState
}

func (s gkComingOutState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(GoalkeeperHoldingBall)
	}
	meta := ctx.Tick.Ball
	if ctx.Ball().OwnedByTeammate() {
		return toState(GoalkeeperReturningToGoal)
	}
	if !PenaltyAreaFor(ctx.Player.Side).Contains(meta.Position) {
		return toState(GoalkeeperReturningToGoal)
	}
	if ctx.Ball().Distance() < 12 && ctx.Ball().Speed() < 1.5 {
		return toState(GoalkeeperCatching)
	}
	return nil
}

func (s gkComingOutState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > gkComeOutTimeoutMs {
		return toState(GoalkeeperReturningToGoal)
	}
	return nil
}

func (s gkComingOutState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	meta := ctx.Tick.Ball
	out := steering.Pursuit{Target: meta.Position, TargetVelocity: meta.Velocity}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s gkComingOutState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// gkPreparingForSaveState sets the body for an incoming shot.
type gkPreparingForSaveState struct {
	baseState
}

func (s gkPreparingForSaveState) TryFast(ctx *StateContext) *StateChangeResult {
	meta := ctx.Tick.Ball
	if meta.IsOwned {
		return toState(GoalkeeperReturningToGoal)
	}
	if ctx.Ball().Distance() < gkDiveDistance {
		return toState(GoalkeeperDiving)
	}
	if meta.Velocity.Norm2D() < 0.5 {
		return toState(GoalkeeperComingOut)
	}
	return nil
}

func (s gkPreparingForSaveState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	target := interceptPoint(ctx)
	out := steering.Arrive{Target: target, SlowingDistance: 5}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s gkPreparingForSaveState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

// interceptPoint projects the ball track to the keeper's depth.
func interceptPoint(ctx *StateContext) vector.Vector3 {
	meta := ctx.Tick.Ball
	own := ctx.Self().OwnGoal()
	vel := meta.Velocity
	if vel.Norm2D() < 1e-6 {
		return meta.Position
	}
	dx := own.X - meta.Position.X
	if vel.X*dx <= 0 {
		return meta.Position
	}
	ticks := dx / vel.X
	y := clampFloat(meta.Position.Y+vel.Y*ticks, own.Y-GoalMouthHalfWidth, own.Y+GoalMouthHalfWidth)
	return vector.New2D(own.X+4*ctx.Player.Side.AttackDirection(), y)
}

// gkDivingState is the save attempt itself: a short burst at the ball track
// with a reflex-based catch roll.
type gkDivingState struct {
	baseState
}

func (s gkDivingState) TryFast(ctx *StateContext) *StateChangeResult {
	meta := ctx.Tick.Ball
	if meta.IsOwned {
		return toState(GoalkeeperReturningToGoal)
	}
	reach := ballBaseReachHeight + skillUnit(ctx.Player.Skills.Physical.Jumping)*0.8
	if ctx.Ball().Distance() < 8 && meta.Position.Z <= reach {
		reflexes := 0.5*skillUnit(ctx.Player.Skills.Physical.Agility) +
			0.3*skillUnit(ctx.Player.Skills.Mental.Concentration) +
			0.2*skillUnit(ctx.Player.Skills.Mental.Anticipation)
		if ctx.Match.Rng.Float64() < 0.35+0.6*reflexes {
			return toStateWith(GoalkeeperHoldingBall, NewCaughtBallEvent(ctx.Player.ID))
		}
	}
	return nil
}

func (s gkDivingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 600 {
		return toState(GoalkeeperReturningToGoal)
	}
	return nil
}

func (s gkDivingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := steering.Seek{Target: interceptPoint(ctx)}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s gkDivingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// gkCatchingState gathers a slow loose ball.
type gkCatchingState struct {
	baseState
}

func (s gkCatchingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(GoalkeeperHoldingBall)
	}
	meta := ctx.Tick.Ball
	if meta.IsOwned {
		return toState(GoalkeeperReturningToGoal)
	}
	if ctx.Ball().Distance() < BallClaimDistance && meta.Position.Z < ballBaseReachHeight {
		return toStateWith(GoalkeeperHoldingBall, NewCaughtBallEvent(ctx.Player.ID))
	}
	if ctx.Ball().Distance() > 25 {
		return toState(GoalkeeperComingOut)
	}
	return nil
}

func (s gkCatchingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := steering.Arrive{Target: ctx.Tick.Ball.Position, SlowingDistance: 4}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s gkCatchingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

// gkHoldingBallState settles before distribution.
type gkHoldingBallState struct {
	baseState
}

func (s gkHoldingBallState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(GoalkeeperReturningToGoal)
	}
	if ctx.Self().UnderPressure(15) {
		return toState(GoalkeeperUnderPressure)
	}
	if ctx.InStateTime > gkHoldTimeMs {
		return toState(GoalkeeperDistributing)
	}
	return nil
}

func (s gkHoldingBallState) Velocity(*StateContext) (vector.Vector3, bool) {
	return vector.Zero(), true
}

func (s gkHoldingBallState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityRecovery)
}

// gkDistributingState restarts play toward the back line.
type gkDistributingState struct {
	baseState
}

func (s gkDistributingState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(GoalkeeperReturningToGoal)
	}
	if target, ok := s.pickTarget(ctx); ok {
		event := NewPassEvent(ctx.Player.ID, target.ID, ctx.Passing().LeadTarget(target), ctx.Passing().ForceFor(target))
		return toStateWith(GoalkeeperReturningToGoal, event)
	}
	event := NewClearBallEvent(ctx.Player.ID, ctx.Shooting().ClearanceTarget(), 3.0)
	return toStateWith(GoalkeeperReturningToGoal, event)
}

func (s gkDistributingState) pickTarget(ctx *StateContext) (PlayerLite, bool) {
	// prefer an open defender, then anyone open
	for _, mate := range ctx.Players().Teammates().InGroup(GroupDefender).All() {
		if ctx.Defense().IsMarked(mate) {
			continue
		}
		if ctx.Self().HasClearPass(mate.Position) {
			return mate, true
		}
	}
	return ctx.Passing().BestOption()
}

func (s gkDistributingState) Velocity(*StateContext) (vector.Vector3, bool) {
	return vector.Zero(), true
}

func (s gkDistributingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityLow)
}

// gkUnderPressureState gets rid of the ball before it is stolen on the line.
type gkUnderPressureState struct {
	baseState
}

func (s gkUnderPressureState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(GoalkeeperReturningToGoal)
	}
	if target, ok := ctx.Passing().SafeOption(); ok {
		event := NewPassEvent(ctx.Player.ID, target.ID, ctx.Passing().LeadTarget(target), ctx.Passing().ForceFor(target))
		return toStateWith(GoalkeeperReturningToGoal, event)
	}
	event := NewClearBallEvent(ctx.Player.ID, ctx.Shooting().ClearanceTarget(), 3.0)
	return toStateWith(GoalkeeperReturningToGoal, event)
}

func (s gkUnderPressureState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

// gkReturningToGoalState walks back to the line after any excursion.
type gkReturningToGoalState struct {
	baseState
}

func (s gkReturningToGoalState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(GoalkeeperHoldingBall)
	}
	if ctx.Self().DistanceFromStartPosition() < 8 {
		return toState(GoalkeeperStanding)
	}
	meta := ctx.Tick.Ball
	if meta.InFlight && ctx.Ball().DistanceToOwnGoal() < gkSaveDistance {
		return toState(GoalkeeperPreparingForSave)
	}
	return nil
}

func (s gkReturningToGoalState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := steering.Arrive{Target: ctx.Player.StartPosition, SlowingDistance: 20}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s gkReturningToGoalState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// gkSweepingState clears danger behind a pushed-up back line, outside the
// area if needed.
type gkSweepingState struct {
	baseState
}

func (s gkSweepingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		event := NewClearBallEvent(ctx.Player.ID, ctx.Shooting().ClearanceTarget(), 3.0)
		return toStateWith(GoalkeeperReturningToGoal, event)
	}
	meta := ctx.Tick.Ball
	if meta.IsOwned || ctx.Ball().DistanceToOwnGoal() > gkAlertDistance {
		return toState(GoalkeeperReturningToGoal)
	}
	return nil
}

func (s gkSweepingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > gkComeOutTimeoutMs {
		return toState(GoalkeeperReturningToGoal)
	}
	return nil
}

func (s gkSweepingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	meta := ctx.Tick.Ball
	out := steering.Pursuit{Target: meta.Position, TargetVelocity: meta.Velocity}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s gkSweepingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}
