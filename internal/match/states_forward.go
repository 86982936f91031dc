package match

import (
	"football-sim/internal/match/steering"
	"football-sim/internal/match/vector"
)

func init() {
	registerState(ForwardStanding, fwdStandingState{})
	registerState(ForwardWalking, fwdWalkingState{})
	registerState(ForwardRunningInBehind, fwdRunningInBehindState{})
	registerState(ForwardCreatingSpace, fwdCreatingSpaceState{})
	registerState(ForwardPressing, fwdPressingState{})
	registerState(ForwardDribbling, fwdDribblingState{})
	registerState(ForwardHeading, fwdHeadingState{})
	registerState(ForwardHoldingUpPlay, fwdHoldingUpPlayState{})
	registerState(ForwardAssisting, fwdAssistingState{})
	registerState(ForwardOffsideTrapBreaking, fwdOffsideTrapBreakingState{})
}

const (
	fwdPressDistance  = 60.0
	fwdHoldUpTimeMs   = 1500
	fwdRunTimeoutMs   = 5000
	fwdHeaderDistance = 12.0
)

// fwdStandingState is the forward's decision hub.
type fwdStandingState struct {
	baseState
}

func (s fwdStandingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		if ctx.Shooting().InRange() && ctx.Shooting().Quality() > MinShotQuality &&
			ctx.Self().HasClearShot() && ctx.Player.Statistics.CanShoot(ctx.Match.Time.Elapsed()) {
			return toState(StateShooting)
		}
		return toState(ForwardDribbling)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if s.headerChance(ctx) {
		return toState(ForwardHeading)
	}
	if ctx.Team().InControl() {
		if ctx.Self().UnderPressure(15) {
			return toState(ForwardCreatingSpace)
		}
		return toState(ForwardRunningInBehind)
	}
	if carrier, ok := ctx.Defense().BallCarrier(); ok {
		// forwards press high: only chase carriers deep in the opposing half
		carrierDeep := carrier.Group() == GroupDefender || carrier.Group() == GroupGoalkeeper
		if carrierDeep && ctx.Tick.Distance(ctx.Player.ID, carrier.ID) < fwdPressDistance &&
			ctx.Defense().IsBestPresserOf(carrier) {
			return toState(ForwardPressing)
		}
	}
	return nil
}

func (s fwdStandingState) headerChance(ctx *StateContext) bool {
	meta := ctx.Tick.Ball
	return !meta.IsOwned && meta.Position.Z > defHeaderBallHeight &&
		ctx.Ball().Distance() < fwdHeaderDistance && ctx.Self().OnAttackingThird()
}

func (s fwdStandingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 3000 {
		return toState(ForwardWalking)
	}
	return nil
}

func (s fwdStandingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	return ctx.Self().SeparationVelocity(), true
}

func (s fwdStandingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityLow)
}

// fwdWalkingState drifts along the forward line between involvements.
type fwdWalkingState struct {
	baseState
}

func (s fwdWalkingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(ForwardDribbling)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if ctx.Team().InControl() && ctx.Ball().Distance() < 250 {
		return toState(ForwardStanding)
	}
	return nil
}

func (s fwdWalkingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.Self().IsTired() {
		return toState(StateResting)
	}
	return nil
}

func (s fwdWalkingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	wp, ok := ctx.Player.Tactical.Waypoints.CurrentWaypoint(ctx.Player.Position)
	if !ok {
		return vector.Zero(), true
	}
	out := steering.Arrive{Target: wp, SlowingDistance: WaypointReachedThreshold}.Calculate(ctx.Player.Agent())
	return out.Velocity.Scale(0.4), true
}

func (s fwdWalkingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityLow)
}

// fwdRunningInBehindState attacks the space past the last defender.
type fwdRunningInBehindState struct {
	baseState
}

func (s fwdRunningInBehindState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(ForwardDribbling)
	}
	if ctx.Ball().IsNotifiedReceiver() || ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if !ctx.Team().InControl() {
		return toState(ForwardStanding)
	}
	return nil
}

func (s fwdRunningInBehindState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > fwdRunTimeoutMs {
		return toState(ForwardCreatingSpace)
	}
	return nil
}

func (s fwdRunningInBehindState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := steering.Seek{Target: ctx.Movement().RunInBehindTarget()}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s fwdRunningInBehindState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// fwdCreatingSpaceState loses the marker to become a passing option.
type fwdCreatingSpaceState struct {
	baseState
}

func (s fwdCreatingSpaceState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(ForwardDribbling)
	}
	if ctx.Ball().IsNotifiedReceiver() || ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if !ctx.Team().InControl() {
		return toState(ForwardStanding)
	}
	if !ctx.Players().Opponents().Exists(18) {
		return toState(ForwardRunningInBehind)
	}
	return nil
}

func (s fwdCreatingSpaceState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 3000 {
		return toState(ForwardRunningInBehind)
	}
	return nil
}

func (s fwdCreatingSpaceState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	agent := ctx.Player.Agent()
	if marker, ok := ctx.Players().Opponents().Nearest(); ok {
		out := steering.Evade{Target: marker.Position, TargetVelocity: marker.Velocity}.Calculate(agent)
		return out.Velocity.Scale(0.8).Add(ctx.Self().SeparationVelocity()).Limit(agent.MaxSpeed), true
	}
	return ctx.Self().SeparationVelocity(), true
}

func (s fwdCreatingSpaceState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

// fwdPressingState hounds a deep carrier to force an error.
type fwdPressingState struct {
	baseState
}

func (s fwdPressingState) TryFast(ctx *StateContext) *StateChangeResult {
	carrier, ok := ctx.Defense().BallCarrier()
	if !ok {
		if ctx.Ball().ShouldTake() {
			return toState(StateTakeBall)
		}
		return toState(ForwardStanding)
	}
	if ctx.Tick.Distance(ctx.Player.ID, carrier.ID) < tackleEngageDistance*2 {
		return toState(StateTackling)
	}
	return nil
}

func (s fwdPressingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > defPressTimeoutMs {
		return toState(StateReturning)
	}
	return nil
}

func (s fwdPressingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	if carrier, ok := ctx.Defense().BallCarrier(); ok {
		out := steering.Pursuit{Target: carrier.Position, TargetVelocity: carrier.Velocity}.Calculate(ctx.Player.Agent())
		return out.Velocity, true
	}
	return vector.Zero(), true
}

func (s fwdPressingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// fwdDribblingState carries at the defense, always looking for the shot.
type fwdDribblingState struct {
	baseState
}

func (s fwdDribblingState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(ForwardStanding)
	}
	if ctx.Shooting().InRange() && ctx.Shooting().Quality() > MinShotQuality &&
		ctx.Self().HasClearShot() && ctx.Player.Statistics.CanShoot(ctx.Match.Time.Elapsed()) {
		return toState(StateShooting)
	}
	if s.betterPlacedTeammate(ctx) {
		return toState(ForwardAssisting)
	}
	if ctx.Self().UnderPressure(12) {
		if !ctx.Movement().SpaceAhead() {
			return toState(ForwardHoldingUpPlay)
		}
		return toState(StatePassing)
	}
	return nil
}

func (s fwdDribblingState) betterPlacedTeammate(ctx *StateContext) bool {
	selfDist := ctx.Self().DistanceToOpponentGoal()
	goal := ctx.Self().OpponentGoal()
	for _, mate := range ctx.Players().Teammates().InGroup(GroupForward).All() {
		if mate.Position.DistanceTo2D(goal) < selfDist-40 && ctx.Self().HasClearPass(mate.Position) {
			return true
		}
	}
	return false
}

func (s fwdDribblingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := steering.Arrive{Target: ctx.Movement().DribbleTarget(), SlowingDistance: 15}.Calculate(ctx.Player.Agent())
	boost := 0.85 + 0.3*skillUnit(ctx.Player.Skills.Technical.Dribbling)
	return out.Velocity.Scale(boost).Limit(ctx.Player.MaxSpeedWithCondition()), true
}

func (s fwdDribblingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// fwdHeadingState attacks a dropping ball and heads for goal.
type fwdHeadingState struct {
	baseState
}

func (s fwdHeadingState) TryFast(ctx *StateContext) *StateChangeResult {
	meta := ctx.Tick.Ball
	if meta.IsOwned || meta.Position.Z <= 0.2 {
		return toState(ForwardStanding)
	}
	reach := ballBaseReachHeight + skillUnit(ctx.Player.Skills.Physical.Jumping)*0.6
	if ctx.Ball().Distance() < BallClaimDistance && meta.Position.Z <= reach {
		win := 0.25 + 0.5*skillUnit(ctx.Player.Skills.Technical.Heading) +
			0.25*skillUnit(ctx.Player.Skills.Physical.Jumping)
		if ctx.Match.Rng.Float64() < win {
			event := NewShootEvent(ctx.Player.ID, ctx.Shooting().Target(), ctx.Shooting().Force()*0.7)
			return toStateWith(StateRunning, event)
		}
		return toState(ForwardStanding)
	}
	return nil
}

func (s fwdHeadingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 1500 {
		return toState(ForwardStanding)
	}
	return nil
}

func (s fwdHeadingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	meta := ctx.Tick.Ball
	out := steering.Pursuit{Target: meta.Position, TargetVelocity: meta.Velocity}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s fwdHeadingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// fwdHoldingUpPlayState shields the ball until support arrives.
type fwdHoldingUpPlayState struct {
	baseState
}

func (s fwdHoldingUpPlayState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(ForwardStanding)
	}
	if ctx.Players().Teammates().Exists(50) || ctx.InStateTime > fwdHoldUpTimeMs {
		return toState(StatePassing)
	}
	return nil
}

func (s fwdHoldingUpPlayState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	// back to goal, small retreating shuffle away from the presser
	if opp, ok := ctx.Players().Opponents().Nearest(); ok {
		away := ctx.Player.Position.Sub(opp.Position).Normalize()
		return away.Scale(ctx.Player.MaxSpeedWithCondition() * 0.2), true
	}
	return vector.Zero(), true
}

func (s fwdHoldingUpPlayState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// fwdAssistingState squares the ball to a better-placed teammate.
type fwdAssistingState struct {
	baseState
}

func (s fwdAssistingState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(ForwardStanding)
	}
	selfDist := ctx.Self().DistanceToOpponentGoal()
	goal := ctx.Self().OpponentGoal()
	for _, mate := range ctx.Players().Teammates().All() {
		if mate.Position.DistanceTo2D(goal) >= selfDist-40 {
			continue
		}
		if !ctx.Self().HasClearPass(mate.Position) {
			continue
		}
		event := NewPassEvent(ctx.Player.ID, mate.ID, ctx.Passing().LeadTarget(mate), ctx.Passing().ForceFor(mate))
		return toStateWith(ForwardRunningInBehind, event)
	}
	return toState(ForwardDribbling)
}

func (s fwdAssistingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// fwdOffsideTrapBreakingState holds level with the line, then breaks when
// the ball is played.
type fwdOffsideTrapBreakingState struct {
	baseState
}

func (s fwdOffsideTrapBreakingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(ForwardDribbling)
	}
	if ctx.Ball().IsNotifiedReceiver() {
		return toState(StateTakeBall)
	}
	if !ctx.Team().InControl() {
		return toState(ForwardStanding)
	}
	return nil
}

func (s fwdOffsideTrapBreakingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 3000 {
		return toState(ForwardRunningInBehind)
	}
	return nil
}

func (s fwdOffsideTrapBreakingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	// hover level with the last defender, matching the line sideways
	target := ctx.Movement().RunInBehindTarget()
	target.X -= 40 * ctx.Player.Side.AttackDirection()
	out := steering.Arrive{Target: target, SlowingDistance: 20}.Calculate(ctx.Player.Agent())
	return out.Velocity.Scale(0.6), true
}

func (s fwdOffsideTrapBreakingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}
