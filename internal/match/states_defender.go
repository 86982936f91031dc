package match

import (
	"football-sim/internal/match/steering"
	"football-sim/internal/match/vector"
)

func init() {
	registerState(DefenderStanding, defStandingState{})
	registerState(DefenderWalking, defWalkingState{})
	registerState(DefenderHoldingLine, defHoldingLineState{})
	registerState(DefenderMarking, defMarkingState{})
	registerState(DefenderCovering, defCoveringState{})
	registerState(DefenderPressing, defPressingState{})
	registerState(DefenderIntercepting, defInterceptingState{})
	registerState(DefenderHeading, defHeadingState{})
	registerState(DefenderClearing, defClearingState{})
	registerState(DefenderOffsideTrap, defOffsideTrapState{})
	registerState(DefenderTrackingBack, defTrackingBackState{})
}

const (
	defPressDistance    = 80.0
	defMarkScanRadius   = 90.0
	defTrapStepTimeMs   = 1500
	defPressTimeoutMs   = 4000
	defHeaderBallHeight = 0.8
)

// defStandingState is the defender's decision hub.
type defStandingState struct {
	baseState
}

func (s defStandingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		if ctx.Self().OnOwnThird() && ctx.Self().UnderPressure(20) {
			return toState(DefenderClearing)
		}
		return toState(StateRunning)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if s.headerChance(ctx) {
		return toState(DefenderHeading)
	}
	if carrier, ok := ctx.Defense().BallCarrier(); ok {
		dist := ctx.Tick.Distance(ctx.Player.ID, carrier.ID)
		if dist < defPressDistance && ctx.Defense().IsBestPresserOf(carrier) {
			return toState(DefenderPressing)
		}
	}
	if _, ok := ctx.Defense().DangerousRun(); ok && ctx.Ball().OnOwnSide() {
		return toState(DefenderTrackingBack)
	}
	if ctx.Ball().OwnedByOpponent() && ctx.Ball().OnOwnSide() {
		if opp, ok := ctx.Defense().FindUnmarkedOpponent(defMarkScanRadius); ok && ctx.Defense().IsBestPresserOf(opp) {
			return toState(DefenderMarking)
		}
		return toState(DefenderHoldingLine)
	}
	return nil
}

func (s defStandingState) headerChance(ctx *StateContext) bool {
	meta := ctx.Tick.Ball
	return !meta.IsOwned && meta.Position.Z > defHeaderBallHeight &&
		ctx.Ball().Distance() < 15 && ctx.Ball().OnOwnSide()
}

func (s defStandingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.Team().InControl() && ctx.InStateTime > 3000 {
		return toState(DefenderWalking)
	}
	if ctx.Self().DistanceFromStartPosition() > 60 {
		return toState(StateReturning)
	}
	return nil
}

func (s defStandingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	return ctx.Self().SeparationVelocity(), true
}

func (s defStandingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityLow)
}

// defWalkingState patrols the formation waypoints while the team is safe.
type defWalkingState struct {
	baseState
}

func (s defWalkingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(StateRunning)
	}
	if ctx.Ball().OwnedByOpponent() && ctx.Ball().OnOwnSide() {
		return toState(DefenderStanding)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	return nil
}

func (s defWalkingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.Self().IsTired() {
		return toState(StateResting)
	}
	return nil
}

func (s defWalkingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	wp, ok := ctx.Player.Tactical.Waypoints.CurrentWaypoint(ctx.Player.Position)
	if !ok {
		return vector.Zero(), true
	}
	out := steering.Arrive{Target: wp, SlowingDistance: WaypointReachedThreshold}.Calculate(ctx.Player.Agent())
	return out.Velocity.Scale(0.4), true
}

func (s defWalkingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityLow)
}

// defHoldingLineState keeps the back line flat and level.
type defHoldingLineState struct {
	baseState
}

func (s defHoldingLineState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(StateRunning)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if carrier, ok := ctx.Defense().BallCarrier(); ok {
		if ctx.Tick.Distance(ctx.Player.ID, carrier.ID) < defPressDistance/2 && ctx.Defense().IsBestPresserOf(carrier) {
			return toState(DefenderPressing)
		}
	}
	if !ctx.Ball().OnOwnSide() && ctx.Team().InControl() {
		return toState(DefenderStanding)
	}
	return nil
}

func (s defHoldingLineState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	// step up when the ball is cleared upfield and opponents idle near the line
	if !ctx.Ball().OnOwnSide() && ctx.Players().Opponents().Exists(30) && ctx.InStateTime > 2000 {
		return toState(DefenderOffsideTrap)
	}
	return nil
}

func (s defHoldingLineState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := steering.Arrive{Target: ctx.Movement().HoldingLineTarget(), SlowingDistance: 15}.Calculate(ctx.Player.Agent())
	return out.Velocity.Add(ctx.Self().SeparationVelocity()).Limit(ctx.Player.MaxSpeedWithCondition()), true
}

func (s defHoldingLineState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// defMarkingState shadows the most dangerous unmarked opponent.
type defMarkingState struct {
	baseState
}

// markTarget picks deterministically: the nearest unmarked opponent this
// defender is responsible for.
func (s defMarkingState) markTarget(ctx *StateContext) (PlayerLite, bool) {
	if opp, ok := ctx.Defense().FindUnmarkedOpponent(defMarkScanRadius); ok {
		return opp, true
	}
	return ctx.Players().Opponents().Nearest()
}

func (s defMarkingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(StateRunning)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	target, ok := s.markTarget(ctx)
	if !ok {
		return toState(DefenderStanding)
	}
	meta := ctx.Tick.Ball
	if meta.IsOwned && meta.CurrentOwner == target.ID &&
		ctx.Tick.Distance(ctx.Player.ID, target.ID) < 12 {
		return toState(StateTackling)
	}
	if ctx.Team().InControl() {
		return toState(DefenderStanding)
	}
	return nil
}

func (s defMarkingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.Self().DistanceFromStartPosition() > 150 {
		return toState(StateReturning)
	}
	return nil
}

func (s defMarkingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	target, ok := s.markTarget(ctx)
	if !ok {
		return vector.Zero(), true
	}
	// goal-side of the mark
	ownGoal := ctx.Self().OwnGoal()
	goalSide := target.Position.Add(ownGoal.Sub(target.Position).Normalize().Scale(8))
	out := steering.Pursuit{Target: goalSide, TargetVelocity: target.Velocity}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s defMarkingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

// defCoveringState fills the space behind a pressing teammate.
type defCoveringState struct {
	baseState
}

func (s defCoveringState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(StateRunning)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if ctx.Team().InControl() {
		return toState(DefenderStanding)
	}
	if carrier, ok := ctx.Defense().BallCarrier(); ok {
		if ctx.Tick.Distance(ctx.Player.ID, carrier.ID) < defPressDistance/2 && ctx.Defense().IsBestPresserOf(carrier) {
			return toState(DefenderPressing)
		}
	}
	return nil
}

func (s defCoveringState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 5000 {
		return toState(DefenderStanding)
	}
	return nil
}

func (s defCoveringState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	ball := ctx.Tick.Ball.Position
	ownGoal := ctx.Self().OwnGoal()
	target := ball.Add(ownGoal.Sub(ball).Normalize().Scale(45))
	out := steering.Arrive{Target: target, SlowingDistance: 20}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s defCoveringState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// defPressingState closes down the carrier until tackle range.
type defPressingState struct {
	baseState
}

func (s defPressingState) TryFast(ctx *StateContext) *StateChangeResult {
	carrier, ok := ctx.Defense().BallCarrier()
	if !ok {
		if ctx.Ball().ShouldTake() {
			return toState(StateTakeBall)
		}
		return toState(DefenderCovering)
	}
	if ctx.Tick.Distance(ctx.Player.ID, carrier.ID) < tackleEngageDistance*2 {
		return toState(StateTackling)
	}
	return nil
}

func (s defPressingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > defPressTimeoutMs {
		return toState(DefenderTrackingBack)
	}
	return nil
}

func (s defPressingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	if carrier, ok := ctx.Defense().BallCarrier(); ok {
		out := steering.Pursuit{Target: carrier.Position, TargetVelocity: carrier.Velocity}.Calculate(ctx.Player.Agent())
		return out.Velocity, true
	}
	return vector.Zero(), true
}

func (s defPressingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// defInterceptingState races a moving loose ball.
type defInterceptingState struct {
	baseState
}

func (s defInterceptingState) TryFast(ctx *StateContext) *StateChangeResult {
	meta := ctx.Tick.Ball
	if ctx.Self().HasBall() {
		return toState(StateRunning)
	}
	if meta.IsOwned {
		if ctx.Ball().OwnedByOpponent() {
			return toState(DefenderPressing)
		}
		return toState(DefenderStanding)
	}
	if ctx.Ball().Distance() < 20 {
		return toState(StateTakeBall)
	}
	return nil
}

func (s defInterceptingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 4000 {
		return toState(DefenderStanding)
	}
	return nil
}

func (s defInterceptingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	meta := ctx.Tick.Ball
	out := steering.Pursuit{Target: meta.Position, TargetVelocity: meta.Velocity}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s defInterceptingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// defHeadingState attacks an airborne ball and heads it clear.
type defHeadingState struct {
	baseState
}

func (s defHeadingState) TryFast(ctx *StateContext) *StateChangeResult {
	meta := ctx.Tick.Ball
	if meta.IsOwned || meta.Position.Z <= 0.2 {
		return toState(DefenderStanding)
	}
	reach := ballBaseReachHeight + skillUnit(ctx.Player.Skills.Physical.Jumping)*0.6
	if ctx.Ball().Distance() < BallClaimDistance && meta.Position.Z <= reach {
		win := 0.3 + 0.5*skillUnit(ctx.Player.Skills.Technical.Heading) +
			0.2*skillUnit(ctx.Player.Skills.Physical.Jumping)
		if ctx.Match.Rng.Float64() < win {
			event := NewClearBallEvent(ctx.Player.ID, ctx.Shooting().ClearanceTarget(), 2.0)
			return toStateWith(DefenderStanding, event)
		}
		return toState(DefenderStanding)
	}
	return nil
}

func (s defHeadingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 1500 {
		return toState(DefenderStanding)
	}
	return nil
}

func (s defHeadingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	meta := ctx.Tick.Ball
	out := steering.Pursuit{Target: meta.Position, TargetVelocity: meta.Velocity}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s defHeadingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

// defClearingState hoofs the ball out of danger.
type defClearingState struct {
	baseState
}

func (s defClearingState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(DefenderStanding)
	}
	// prefer a real pass when one is on
	if target, ok := ctx.Passing().BestOption(); ok && !ctx.Self().UnderPressure(10) {
		event := NewPassEvent(ctx.Player.ID, target.ID, ctx.Passing().LeadTarget(target), ctx.Passing().ForceFor(target))
		return toStateWith(DefenderStanding, event)
	}
	event := NewClearBallEvent(ctx.Player.ID, ctx.Shooting().ClearanceTarget(), 2.8)
	return toStateWith(DefenderStanding, event)
}

func (s defClearingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// defOffsideTrapState steps the line up in unison.
type defOffsideTrapState struct {
	baseState
}

func (s defOffsideTrapState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Ball().OnOwnSide() || ctx.Self().HasBall() {
		return toState(DefenderHoldingLine)
	}
	return nil
}

func (s defOffsideTrapState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > defTrapStepTimeMs {
		return toState(DefenderHoldingLine)
	}
	return nil
}

func (s defOffsideTrapState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	step := vector.New2D(ctx.Player.Side.AttackDirection(), 0).Scale(ctx.Player.MaxSpeedWithCondition() * 0.7)
	return step, true
}

func (s defOffsideTrapState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

// defTrackingBackState sprints goal-side of a runner in behind.
type defTrackingBackState struct {
	baseState
}

func (s defTrackingBackState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(StateRunning)
	}
	runner, ok := ctx.Defense().DangerousRun()
	if !ok {
		return toState(DefenderStanding)
	}
	if ctx.Tick.Distance(ctx.Player.ID, runner.ID) < 15 {
		return toState(DefenderMarking)
	}
	return nil
}

func (s defTrackingBackState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 6000 {
		return toState(StateReturning)
	}
	return nil
}

func (s defTrackingBackState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	if runner, ok := ctx.Defense().DangerousRun(); ok {
		ownGoal := ctx.Self().OwnGoal()
		goalSide := runner.Position.Add(ownGoal.Sub(runner.Position).Normalize().Scale(12))
		out := steering.Pursuit{Target: goalSide, TargetVelocity: runner.Velocity}.Calculate(ctx.Player.Agent())
		return out.Velocity, true
	}
	return vector.Zero(), true
}

func (s defTrackingBackState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}
