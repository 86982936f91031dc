package match

import "football-sim/internal/match/vector"

// ShootingOps judges and prepares shots for the player on the ball.
type ShootingOps struct {
	ctx *StateContext
}

func (c *StateContext) Shooting() ShootingOps {
	return ShootingOps{ctx: c}
}

// MinShotQuality gates speculative shots; states compare Quality against it.
const MinShotQuality = 0.25

// InRange reports whether a shot is worth considering from here; long-shot
// skill stretches the band.
func (s ShootingOps) InRange() bool {
	dist := s.ctx.Self().DistanceToOpponentGoal()
	return dist < 150.0+skillUnit(s.ctx.Player.Skills.Technical.LongShots)*120.0
}

// Quality scores the chance in [0,1] from distance, goal angle and pressure.
func (s ShootingOps) Quality() float64 {
	dist := s.ctx.Self().DistanceToOpponentGoal()
	distScore := clampFloat(1.0-dist/300.0, 0, 1)
	angleScore := clampFloat(s.ctx.Self().GoalAngle()/0.8, 0, 1)

	pressure := 0.0
	if s.ctx.Self().UnderPressure(10) {
		pressure = 0.35
	} else if s.ctx.Self().UnderPressure(25) {
		pressure = 0.15
	}

	quality := 0.55*distScore + 0.45*angleScore - pressure
	return clampFloat(quality, 0, 1)
}

// Target picks an aim point inside the mouth, biased off-center by skill:
// good finishers aim near a post, poor ones spray around the middle.
func (s ShootingOps) Target() vector.Vector3 {
	goal := s.ctx.Self().OpponentGoal()
	accuracy := skillUnit(s.ctx.Player.Skills.Technical.Finishing)

	postBias := (GoalMouthHalfWidth - 8) * accuracy
	if s.ctx.Match.Rng.Float64() < 0.5 {
		postBias = -postBias
	}
	spray := (1.0 - accuracy) * 25 * (s.ctx.Match.Rng.Float64()*2 - 1)
	y := clampFloat(goal.Y+postBias+spray, goal.Y-GoalMouthHalfWidth+2, goal.Y+GoalMouthHalfWidth-2)
	return vector.New2D(goal.X, y)
}

// Force scales shot power with distance.
func (s ShootingOps) Force() float64 {
	dist := s.ctx.Self().DistanceToOpponentGoal()
	return clampFloat(6.0+dist/25.0, 6.0, 16.0)
}

// HeaderReachable reports an airborne ball this player could head.
func (s ShootingOps) HeaderReachable() bool {
	ball := s.ctx.Tick.Ball
	if ball.Position.Z <= 0.5 {
		return false
	}
	reach := ballBaseReachHeight + skillUnit(s.ctx.Player.Skills.Physical.Jumping)*0.6
	return ball.Position.Z <= reach && s.ctx.Ball().Distance() < BallClaimDistance*2
}

// ClearanceTarget is a high upfield point away from the player's own goal.
func (s ShootingOps) ClearanceTarget() vector.Vector3 {
	own := s.ctx.Self().OwnGoal()
	away := s.ctx.Player.Position.Sub(own).Normalize()
	if away.IsZero() {
		away = vector.New2D(s.ctx.Player.Side.AttackDirection(), 0)
	}
	lateral := (s.ctx.Match.Rng.Float64()*2 - 1) * 0.4
	dir := rotate2D(away, lateral)
	target := s.ctx.Player.Position.Add(dir.Scale(250))
	target.X = clampFloat(target.X, 20, FieldWidth-20)
	target.Y = clampFloat(target.Y, 20, FieldHeight-20)
	return target
}

// OnTargetProbability estimates how likely the prepared shot stays on frame;
// used by keepers to anticipate.
func (s ShootingOps) OnTargetProbability() float64 {
	accuracy := skillUnit(s.ctx.Player.Skills.Technical.Finishing)
	dist := s.ctx.Self().DistanceToOpponentGoal()
	return clampFloat(accuracy*(1.0-dist/400.0)+0.2, 0, 1)
}
