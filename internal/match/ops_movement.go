package match

import "football-sim/internal/match/vector"

// MovementOps computes off-ball and on-ball movement targets.
type MovementOps struct {
	ctx *StateContext
}

func (c *StateContext) Movement() MovementOps {
	return MovementOps{ctx: c}
}

// SupportPosition is a point ahead of and to the side of the ball carrier,
// forming a passing triangle. The side alternates by player id so two
// supporters split left and right.
func (m MovementOps) SupportPosition(carrier PlayerLite) vector.Vector3 {
	attackDir := m.ctx.Player.Side.AttackDirection()
	lateral := 60.0
	if m.ctx.Player.ID%2 == 0 {
		lateral = -lateral
	}
	target := vector.New2D(carrier.Position.X+80*attackDir, carrier.Position.Y+lateral)
	target.X = clampFloat(target.X, 20, FieldWidth-20)
	target.Y = clampFloat(target.Y, 20, FieldHeight-20)
	return target
}

// DribbleTarget advances toward the opponent goal, bending away from the
// nearest pressing opponent.
func (m MovementOps) DribbleTarget() vector.Vector3 {
	self := m.ctx.Player
	toGoal := m.ctx.Self().OpponentGoal().Sub(self.Position).Normalize()

	if opp, ok := m.ctx.Players().Opponents().Nearest(); ok {
		if dist := m.ctx.Tick.Distance(self.ID, opp.ID); dist < 40 {
			away := self.Position.Sub(opp.Position).Normalize()
			toGoal = toGoal.Add(away.Scale(0.7)).Normalize()
		}
	}
	target := self.Position.Add(toGoal.Scale(60))
	target.X = clampFloat(target.X, 10, FieldWidth-10)
	target.Y = clampFloat(target.Y, 10, FieldHeight-10)
	return target
}

// SpaceAhead reports no opponent inside the cone toward the attack
// direction.
func (m MovementOps) SpaceAhead() bool {
	self := m.ctx.Player
	ahead := vector.New2D(self.Side.AttackDirection(), 0)
	for _, opp := range m.ctx.Players().Opponents().Nearby(70) {
		toOpp := opp.Position.Sub(self.Position).Normalize()
		if toOpp.Dot(ahead) > 0.5 {
			return false
		}
	}
	return true
}

// RunInBehindTarget is a point past the opposing defensive line for a
// forward's run.
func (m MovementOps) RunInBehindTarget() vector.Vector3 {
	self := m.ctx.Player
	attackDir := self.Side.AttackDirection()

	lineX := FieldWidth / 2
	oppLine := 0.0
	n := 0
	for _, opp := range m.ctx.Players().Opponents().InGroup(GroupDefender).All() {
		oppLine += opp.Position.X
		n++
	}
	if n > 0 {
		lineX = oppLine / float64(n)
	}
	target := vector.New2D(lineX+35*attackDir, self.Position.Y)
	target.X = clampFloat(target.X, 30, FieldWidth-30)
	return target
}

// HoldingLineTarget keeps a defender level with the back line at their own
// lane.
func (m MovementOps) HoldingLineTarget() vector.Vector3 {
	lineX := m.ctx.Defense().DefensiveLineX()
	return vector.New2D(lineX, m.ctx.Player.StartPosition.Y)
}
