package match

import "football-sim/internal/match/vector"

// PlayerOps answers questions about the acting player itself.
type PlayerOps struct {
	ctx *StateContext
}

func (c *StateContext) Self() PlayerOps {
	return PlayerOps{ctx: c}
}

func (s PlayerOps) HasBall() bool {
	meta := s.ctx.Tick.Ball
	return meta.IsOwned && meta.CurrentOwner == s.ctx.Player.ID
}

func (s PlayerOps) DistanceFromStartPosition() float64 {
	return s.ctx.Player.Position.DistanceTo2D(s.ctx.Player.StartPosition)
}

func (s PlayerOps) OpponentGoal() vector.Vector3 {
	return s.ctx.Match.Goals.OpponentGoal(s.ctx.Player.Side)
}

func (s PlayerOps) OwnGoal() vector.Vector3 {
	return s.ctx.Match.Goals.OwnGoal(s.ctx.Player.Side)
}

func (s PlayerOps) DistanceToOpponentGoal() float64 {
	return s.ctx.Player.Position.DistanceTo2D(s.OpponentGoal())
}

func (s PlayerOps) DistanceToOwnGoal() float64 {
	return s.ctx.Player.Position.DistanceTo2D(s.OwnGoal())
}

// OnOwnThird reports a player deep in their defensive third.
func (s PlayerOps) OnOwnThird() bool {
	if s.ctx.Player.Side == SideLeft {
		return s.ctx.Player.Position.X < FieldWidth/3
	}
	return s.ctx.Player.Position.X > FieldWidth*2/3
}

// OnAttackingThird reports a player in the final third.
func (s PlayerOps) OnAttackingThird() bool {
	if s.ctx.Player.Side == SideLeft {
		return s.ctx.Player.Position.X > FieldWidth*2/3
	}
	return s.ctx.Player.Position.X < FieldWidth/3
}

// IsTired reports a player whose condition is low enough to change behavior.
func (s PlayerOps) IsTired() bool {
	return s.ctx.Player.Attributes.Condition < MaxConditionValue/3
}

// UnderPressure reports an opponent within pressing distance.
func (s PlayerOps) UnderPressure(radius float64) bool {
	return s.ctx.Players().Opponents().Exists(radius)
}

func (s PlayerOps) NearestOpponentDistance() float64 {
	if opp, ok := s.ctx.Players().Opponents().Nearest(); ok {
		return s.ctx.Tick.Distance(s.ctx.Player.ID, opp.ID)
	}
	return FieldWidth
}

// SeparationVelocity pushes away from crowding teammates to keep shape.
func (s PlayerOps) SeparationVelocity() vector.Vector3 {
	const separationRadius = 15.0
	push := vector.Zero()
	for _, mate := range s.ctx.Players().Teammates().Nearby(separationRadius) {
		away := s.ctx.Player.Position.Sub(mate.Position)
		d := away.Norm2D()
		if d < 1e-6 {
			continue
		}
		push = push.Add(away.Normalize().Scale((separationRadius - d) / separationRadius))
	}
	return push.Limit(s.ctx.Player.MaxSpeedWithCondition() * 0.5)
}

// passCorridorWidth is how close an opponent must stand to a pass line to
// count as blocking it.
const passCorridorWidth = 12.0

// HasClearPass reports whether the lane to the target is free of opponents.
func (s PlayerOps) HasClearPass(target vector.Vector3) bool {
	return s.laneClear(target, passCorridorWidth)
}

// shotCorridorWidth is tighter than the pass corridor; keepers defend the
// mouth anyway.
const shotCorridorWidth = 8.0

// HasClearShot reports an unblocked lane to the opponent goal center.
func (s PlayerOps) HasClearShot() bool {
	return s.laneClear(s.OpponentGoal(), shotCorridorWidth)
}

func (s PlayerOps) laneClear(target vector.Vector3, corridor float64) bool {
	from := s.ctx.Player.Position
	line := target.Sub(from)
	length := line.Norm2D()
	if length < 1e-6 {
		return true
	}
	dir := line.Normalize()
	for _, opp := range s.ctx.Players().Opponents().All() {
		if opp.Group() == GroupGoalkeeper && target == s.OpponentGoal() {
			continue
		}
		toOpp := opp.Position.Sub(from)
		along := toOpp.Dot(dir)
		if along < 0 || along > length {
			continue
		}
		lateral := toOpp.Sub(dir.Scale(along)).Norm2D()
		if lateral < corridor {
			return false
		}
	}
	return true
}

// GoalAngle is the opening angle of the opponent goal mouth from the
// player's position, in radians.
func (s PlayerOps) GoalAngle() float64 {
	goal := s.OpponentGoal()
	post1 := vector.New2D(goal.X, goal.Y-GoalMouthHalfWidth)
	post2 := vector.New2D(goal.X, goal.Y+GoalMouthHalfWidth)
	a := post1.Sub(s.ctx.Player.Position).Heading()
	b := post2.Sub(s.ctx.Player.Position).Heading()
	diff := b - a
	if diff < 0 {
		diff = -diff
	}
	return diff
}
