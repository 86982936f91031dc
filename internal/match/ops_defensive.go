package match

import "math"

// DefensiveOps coordinates marking and pressing decisions so the back line
// behaves as a unit rather than a crowd.
type DefensiveOps struct {
	ctx *StateContext
}

func (c *StateContext) Defense() DefensiveOps {
	return DefensiveOps{ctx: c}
}

// markDistance is how close a defender must be to count as marking someone.
const markDistance = 20.0

// BallCarrier returns the opponent currently on the ball.
func (d DefensiveOps) BallCarrier() (PlayerLite, bool) {
	return d.ctx.Players().Opponents().WithBall()
}

// IsBestPresserOf reports whether the acting player is the teammate who
// should engage the carrier: closest non-keeper, lower id on ties.
func (d DefensiveOps) IsBestPresserOf(target PlayerLite) bool {
	self := d.ctx.Player
	selfDist := d.ctx.Tick.Distance(self.ID, target.ID)
	for _, id := range d.ctx.Tick.OnFieldIDs() {
		if id == self.ID {
			continue
		}
		lite, ok := d.ctx.Tick.Player(id)
		if !ok || lite.TeamID != self.TeamID || lite.Group() == GroupGoalkeeper {
			continue
		}
		dist := d.ctx.Tick.Distance(id, target.ID)
		if dist < selfDist || (dist == selfDist && id < self.ID) {
			return false
		}
	}
	return true
}

// IsMarked reports whether any teammate already stands close to the
// opponent.
func (d DefensiveOps) IsMarked(opponent PlayerLite) bool {
	self := d.ctx.Player
	for _, id := range d.ctx.Tick.OnFieldIDs() {
		if id == self.ID {
			continue
		}
		lite, ok := d.ctx.Tick.Player(id)
		if !ok || lite.TeamID != self.TeamID {
			continue
		}
		if d.ctx.Tick.Distance(id, opponent.ID) <= markDistance {
			return true
		}
	}
	return false
}

// FindUnmarkedOpponent returns the nearest opponent within radius that no
// teammate marks yet.
func (d DefensiveOps) FindUnmarkedOpponent(radius float64) (PlayerLite, bool) {
	for _, opp := range d.ctx.Players().Opponents().Nearby(radius) {
		if opp.Group() == GroupGoalkeeper {
			continue
		}
		if !d.IsMarked(opp) {
			return opp, true
		}
	}
	return PlayerLite{}, false
}

// DangerousRun detects an opponent sprinting toward the player's own goal
// through their defensive half.
func (d DefensiveOps) DangerousRun() (PlayerLite, bool) {
	ownGoal := d.ctx.Match.Goals.OwnGoal(d.ctx.Player.Side)
	var best PlayerLite
	bestDist := math.Inf(1)
	found := false
	for _, opp := range d.ctx.Players().Opponents().All() {
		if opp.Velocity.Norm2D() < 0.5 {
			continue
		}
		toGoal := ownGoal.Sub(opp.Position).Normalize()
		if opp.Velocity.Normalize().Dot(toGoal) < 0.7 {
			continue
		}
		dist := opp.Position.DistanceTo2D(ownGoal)
		if dist > FieldWidth/2 {
			continue
		}
		if dist < bestDist || (dist == bestDist && found && opp.ID < best.ID) {
			best, bestDist, found = opp, dist, true
		}
	}
	return best, found
}

// DefensiveLineX is the mean x of the team's on-field defenders, the
// reference for holding the line and the offside trap.
func (d DefensiveOps) DefensiveLineX() float64 {
	sum, n := 0.0, 0
	for _, id := range d.ctx.Tick.OnFieldIDs() {
		lite, ok := d.ctx.Tick.Player(id)
		if !ok || lite.TeamID != d.ctx.Player.TeamID || lite.Group() != GroupDefender {
			continue
		}
		sum += lite.Position.X
		n++
	}
	if n == 0 {
		return d.ctx.Player.StartPosition.X
	}
	return sum / float64(n)
}
