package match

import (
	"math"

	"football-sim/internal/match/steering"
	"football-sim/internal/match/vector"
)

func init() {
	registerState(MidfielderStanding, midStandingState{})
	registerState(MidfielderWalking, midWalkingState{})
	registerState(MidfielderDistributing, midDistributingState{})
	registerState(MidfielderSupportingAttack, midSupportingAttackState{})
	registerState(MidfielderHoldingPossession, midHoldingPossessionState{})
	registerState(MidfielderSwitchingPlay, midSwitchingPlayState{})
	registerState(MidfielderCrossing, midCrossingState{})
	registerState(MidfielderPressing, midPressingState{})
	registerState(MidfielderIntercepting, midInterceptingState{})
	registerState(MidfielderTrackingRunner, midTrackingRunnerState{})
	registerState(MidfielderCreatingSpace, midCreatingSpaceState{})
	registerState(MidfielderDistanceShooting, midDistanceShootingState{})
}

const (
	midPressDistance   = 70.0
	midHoldMaxTimeMs   = 1200
	midSwitchMinWidth  = 200.0
	midCrossWideOffset = 150.0
)

// midStandingState is the midfielder's decision hub.
type midStandingState struct {
	baseState
}

func (s midStandingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(MidfielderHoldingPossession)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if ctx.Ball().OwnedByOpponent() {
		if carrier, ok := ctx.Defense().BallCarrier(); ok {
			if ctx.Tick.Distance(ctx.Player.ID, carrier.ID) < midPressDistance && ctx.Defense().IsBestPresserOf(carrier) {
				return toState(MidfielderPressing)
			}
		}
		if runner, ok := ctx.Defense().DangerousRun(); ok {
			if ctx.Defense().IsBestPresserOf(runner) {
				return toState(MidfielderTrackingRunner)
			}
		}
		return nil
	}
	if ctx.Team().InControl() {
		return toState(MidfielderSupportingAttack)
	}
	return nil
}

func (s midStandingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 3000 {
		return toState(MidfielderWalking)
	}
	return nil
}

func (s midStandingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	return ctx.Self().SeparationVelocity(), true
}

func (s midStandingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityLow)
}

// midWalkingState patrols midfield waypoints.
type midWalkingState struct {
	baseState
}

func (s midWalkingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(MidfielderHoldingPossession)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if ctx.Ball().OwnedByOpponent() && ctx.Ball().OnOwnSide() {
		return toState(MidfielderStanding)
	}
	if ctx.Team().InControl() && ctx.Ball().Distance() < 150 {
		return toState(MidfielderSupportingAttack)
	}
	return nil
}

func (s midWalkingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.Self().IsTired() {
		return toState(StateResting)
	}
	return nil
}

func (s midWalkingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	wp, ok := ctx.Player.Tactical.Waypoints.CurrentWaypoint(ctx.Player.Position)
	if !ok {
		return vector.Zero(), true
	}
	out := steering.Arrive{Target: wp, SlowingDistance: WaypointReachedThreshold}.Calculate(ctx.Player.Agent())
	return out.Velocity.Scale(0.4), true
}

func (s midWalkingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityLow)
}

// midHoldingPossessionState is the on-ball hub: shoot, release or carry.
type midHoldingPossessionState struct {
	baseState
}

func (s midHoldingPossessionState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(MidfielderStanding)
	}
	if ctx.Shooting().InRange() && ctx.Shooting().Quality() > MinShotQuality &&
		ctx.Self().HasClearShot() && ctx.Player.Statistics.CanShoot(ctx.Match.Time.Elapsed()) {
		return toState(MidfielderDistanceShooting)
	}
	if ctx.Self().UnderPressure(15) {
		return toState(StatePassing)
	}
	if s.inCrossingZone(ctx) {
		return toState(MidfielderCrossing)
	}
	if ctx.InStateTime > midHoldMaxTimeMs {
		if s.switchIsOn(ctx) {
			return toState(MidfielderSwitchingPlay)
		}
		return toState(MidfielderDistributing)
	}
	return nil
}

func (s midHoldingPossessionState) inCrossingZone(ctx *StateContext) bool {
	wide := ctx.Player.Position.Y < midCrossWideOffset || ctx.Player.Position.Y > FieldHeight-midCrossWideOffset
	return wide && ctx.Self().OnAttackingThird()
}

func (s midHoldingPossessionState) switchIsOn(ctx *StateContext) bool {
	vision := skillUnit(ctx.Player.Skills.Mental.Vision)
	return ctx.Match.Rng.Float64() < 0.2+0.3*vision
}

func (s midHoldingPossessionState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	out := steering.Arrive{Target: ctx.Movement().DribbleTarget(), SlowingDistance: 20}.Calculate(ctx.Player.Agent())
	return out.Velocity.Scale(0.8), true
}

func (s midHoldingPossessionState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// midDistributingState releases the ball to the best option.
type midDistributingState struct {
	baseState
}

func (s midDistributingState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(MidfielderStanding)
	}
	if target, ok := ctx.Passing().BestOption(); ok {
		event := NewPassEvent(ctx.Player.ID, target.ID, ctx.Passing().LeadTarget(target), ctx.Passing().ForceFor(target))
		return toStateWith(MidfielderSupportingAttack, event)
	}
	if target, ok := ctx.Passing().SafeOption(); ok {
		event := NewPassEvent(ctx.Player.ID, target.ID, ctx.Passing().LeadTarget(target), ctx.Passing().ForceFor(target))
		return toStateWith(MidfielderSupportingAttack, event)
	}
	return toState(MidfielderHoldingPossession)
}

func (s midDistributingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// midSupportingAttackState works into a passing lane ahead of the ball.
type midSupportingAttackState struct {
	baseState
}

func (s midSupportingAttackState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(MidfielderHoldingPossession)
	}
	if ctx.Ball().ShouldTake() {
		return toState(StateTakeBall)
	}
	if !ctx.Team().InControl() {
		return toState(MidfielderStanding)
	}
	if ctx.Players().Teammates().Exists(20) && ctx.InStateTime > 1000 {
		return toState(MidfielderCreatingSpace)
	}
	return nil
}

func (s midSupportingAttackState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.Self().DistanceFromStartPosition() > 200 {
		return toState(StateReturning)
	}
	return nil
}

func (s midSupportingAttackState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	agent := ctx.Player.Agent()
	if carrier, ok := ctx.Players().Teammates().WithBall(); ok {
		out := steering.Arrive{Target: ctx.Movement().SupportPosition(carrier), SlowingDistance: 25}.Calculate(agent)
		return out.Velocity.Add(ctx.Self().SeparationVelocity()).Limit(agent.MaxSpeed), true
	}
	out := steering.Arrive{Target: ctx.Player.StartPosition, SlowingDistance: 30}.Calculate(agent)
	return out.Velocity, true
}

func (s midSupportingAttackState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityHigh)
}

// midSwitchingPlayState hits a long diagonal to the far flank.
type midSwitchingPlayState struct {
	baseState
}

func (s midSwitchingPlayState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(MidfielderStanding)
	}
	selfY := ctx.Player.Position.Y
	var best PlayerLite
	bestWidth := midSwitchMinWidth
	found := false
	for _, mate := range ctx.Players().Teammates().All() {
		width := math.Abs(mate.Position.Y - selfY)
		if width < bestWidth {
			continue
		}
		if !ctx.Self().HasClearPass(mate.Position) {
			continue
		}
		if !found || width > bestWidth {
			best, bestWidth, found = mate, width, true
		}
	}
	if found {
		event := NewPassEvent(ctx.Player.ID, best.ID, ctx.Passing().LeadTarget(best), ctx.Passing().ForceFor(best))
		return toStateWith(MidfielderSupportingAttack, event)
	}
	return toState(MidfielderDistributing)
}

func (s midSwitchingPlayState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// midCrossingState delivers from the flank into the box.
type midCrossingState struct {
	baseState
}

func (s midCrossingState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(MidfielderStanding)
	}
	area := PenaltyAreaFor(ctx.Player.Side.Opposite())
	for _, mate := range ctx.Players().Teammates().InGroup(GroupForward).All() {
		if area.Contains(mate.Position) {
			event := NewPassEvent(ctx.Player.ID, mate.ID, ctx.Passing().LeadTarget(mate), ctx.Passing().ForceFor(mate))
			return toStateWith(MidfielderSupportingAttack, event)
		}
	}
	// no runner yet: drop the ball toward the far post area
	goal := ctx.Self().OpponentGoal()
	farPost := vector.New2D(goal.X-30*ctx.Player.Side.AttackDirection(), goal.Y+GoalMouthHalfWidth)
	if ctx.Player.Position.Y > FieldHeight/2 {
		farPost.Y = goal.Y - GoalMouthHalfWidth
	}
	if fwd, ok := ctx.Players().Teammates().InGroup(GroupForward).Nearest(); ok {
		event := NewPassEvent(ctx.Player.ID, fwd.ID, farPost, 2.8)
		return toStateWith(MidfielderSupportingAttack, event)
	}
	return toState(MidfielderDistributing)
}

func (s midCrossingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// midPressingState closes down the carrier in midfield.
type midPressingState struct {
	baseState
}

func (s midPressingState) TryFast(ctx *StateContext) *StateChangeResult {
	carrier, ok := ctx.Defense().BallCarrier()
	if !ok {
		if ctx.Ball().ShouldTake() {
			return toState(StateTakeBall)
		}
		return toState(MidfielderStanding)
	}
	if ctx.Tick.Distance(ctx.Player.ID, carrier.ID) < tackleEngageDistance*2 {
		return toState(StateTackling)
	}
	return nil
}

func (s midPressingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > defPressTimeoutMs {
		return toState(StateReturning)
	}
	return nil
}

func (s midPressingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	if carrier, ok := ctx.Defense().BallCarrier(); ok {
		out := steering.Pursuit{Target: carrier.Position, TargetVelocity: carrier.Velocity}.Calculate(ctx.Player.Agent())
		return out.Velocity, true
	}
	return vector.Zero(), true
}

func (s midPressingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// midInterceptingState attacks a loose rolling ball.
type midInterceptingState struct {
	baseState
}

func (s midInterceptingState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(MidfielderHoldingPossession)
	}
	meta := ctx.Tick.Ball
	if meta.IsOwned {
		if ctx.Ball().OwnedByOpponent() {
			return toState(MidfielderPressing)
		}
		return toState(MidfielderStanding)
	}
	if ctx.Ball().Distance() < 20 {
		return toState(StateTakeBall)
	}
	return nil
}

func (s midInterceptingState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 4000 {
		return toState(MidfielderStanding)
	}
	return nil
}

func (s midInterceptingState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	meta := ctx.Tick.Ball
	out := steering.Pursuit{Target: meta.Position, TargetVelocity: meta.Velocity}.Calculate(ctx.Player.Agent())
	return out.Velocity, true
}

func (s midInterceptingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// midTrackingRunnerState follows an opposing runner through midfield.
type midTrackingRunnerState struct {
	baseState
}

func (s midTrackingRunnerState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(MidfielderHoldingPossession)
	}
	if ctx.Team().InControl() {
		return toState(MidfielderStanding)
	}
	if _, ok := ctx.Defense().DangerousRun(); !ok {
		return toState(MidfielderStanding)
	}
	return nil
}

func (s midTrackingRunnerState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 6000 {
		return toState(StateReturning)
	}
	return nil
}

func (s midTrackingRunnerState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	if runner, ok := ctx.Defense().DangerousRun(); ok {
		ownGoal := ctx.Self().OwnGoal()
		goalSide := runner.Position.Add(ownGoal.Sub(runner.Position).Normalize().Scale(10))
		out := steering.Pursuit{Target: goalSide, TargetVelocity: runner.Velocity}.Calculate(ctx.Player.Agent())
		return out.Velocity, true
	}
	return vector.Zero(), true
}

func (s midTrackingRunnerState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityVeryHigh)
}

// midCreatingSpaceState drifts out of congestion to open a lane.
type midCreatingSpaceState struct {
	baseState
}

func (s midCreatingSpaceState) TryFast(ctx *StateContext) *StateChangeResult {
	if ctx.Self().HasBall() {
		return toState(MidfielderHoldingPossession)
	}
	if !ctx.Team().InControl() {
		return toState(MidfielderStanding)
	}
	if !ctx.Players().Teammates().Exists(20) && !ctx.Players().Opponents().Exists(20) {
		return toState(MidfielderSupportingAttack)
	}
	return nil
}

func (s midCreatingSpaceState) ProcessSlow(ctx *StateContext) *StateChangeResult {
	if ctx.InStateTime > 3000 {
		return toState(MidfielderSupportingAttack)
	}
	return nil
}

func (s midCreatingSpaceState) Velocity(ctx *StateContext) (vector.Vector3, bool) {
	agent := ctx.Player.Agent()
	push := ctx.Self().SeparationVelocity()
	if nearOpp, ok := ctx.Players().Opponents().Nearest(); ok {
		out := steering.Evade{Target: nearOpp.Position, TargetVelocity: nearOpp.Velocity}.Calculate(agent)
		push = push.Add(out.Velocity.Scale(0.5))
	}
	return push.Limit(agent.MaxSpeed * 0.7), true
}

func (s midCreatingSpaceState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}

// midDistanceShootingState lets fly from range.
type midDistanceShootingState struct {
	baseState
}

func (s midDistanceShootingState) TryFast(ctx *StateContext) *StateChangeResult {
	if !ctx.Self().HasBall() {
		return toState(MidfielderStanding)
	}
	if !ctx.Self().HasClearShot() {
		return toState(MidfielderHoldingPossession)
	}
	target := ctx.Shooting().Target()
	force := ctx.Shooting().Force() * (0.9 + 0.2*skillUnit(ctx.Player.Skills.Technical.LongShots))
	event := NewShootEvent(ctx.Player.ID, target, force)
	return toStateWith(StateRunning, event).WithVelocity(vector.Zero())
}

func (s midDistanceShootingState) ProcessConditions(ctx *StateContext) {
	processConditions(ctx, IntensityModerate)
}
