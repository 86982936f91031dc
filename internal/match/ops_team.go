package match

// TeamOps answers team-level questions for the acting player.
type TeamOps struct {
	ctx *StateContext
}

func (c *StateContext) Team() TeamOps {
	return TeamOps{ctx: c}
}

// InControl reports whether the acting player's team owns the ball.
func (t TeamOps) InControl() bool {
	meta := t.ctx.Tick.Ball
	return meta.IsOwned && meta.OwnerTeamID == t.ctx.Player.TeamID
}

// IsBestChaser reports whether no on-field teammate is closer to the ball;
// ties go to the lower id so exactly one player chases.
func (t TeamOps) IsBestChaser() bool {
	self := t.ctx.Player
	selfDist := t.ctx.Tick.DistanceToBall(self.ID)
	for _, id := range t.ctx.Tick.OnFieldIDs() {
		if id == self.ID {
			continue
		}
		lite, ok := t.ctx.Tick.Player(id)
		if !ok || lite.TeamID != self.TeamID || lite.Group() == GroupGoalkeeper {
			continue
		}
		d := t.ctx.Tick.DistanceToBall(id)
		if d < selfDist || (d == selfDist && id < self.ID) {
			return false
		}
	}
	return true
}

// GoalDifference is own goals minus opponent goals.
func (t TeamOps) GoalDifference() int {
	own := t.ctx.Match.Score.ByTeam(t.ctx.Player.TeamID)
	opp := t.ctx.Match.Score.Opponent(t.ctx.Player.TeamID)
	return own.Goals - opp.Goals
}

// IsLosing reports whether the team trails, which biases riskier play.
func (t TeamOps) IsLosing() bool {
	return t.GoalDifference() < 0
}
