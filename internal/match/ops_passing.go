package match

import "football-sim/internal/match/vector"

// PassingOps scores pass options for the player on the ball.
type PassingOps struct {
	ctx *StateContext
}

func (c *StateContext) Passing() PassingOps {
	return PassingOps{ctx: c}
}

const maxPassDistance = 420.0

// BestOption picks the teammate with the best blend of forward progress,
// openness and reachability. Deterministic: candidates iterate in canonical
// order and strict improvement wins.
func (p PassingOps) BestOption() (PlayerLite, bool) {
	self := p.ctx.Player
	attackDir := self.Side.AttackDirection()

	var best PlayerLite
	bestScore := -1.0
	found := false
	for _, mate := range p.ctx.Players().Teammates().All() {
		dist := p.ctx.Tick.Distance(self.ID, mate.ID)
		if dist < 15 || dist > maxPassDistance {
			continue
		}
		if !p.ctx.Self().HasClearPass(mate.Position) {
			continue
		}

		progress := (mate.Position.X - self.Position.X) * attackDir / maxPassDistance
		openness := 1.0
		for _, opp := range p.ctx.Players().Opponents().All() {
			if p.ctx.Tick.Distance(mate.ID, opp.ID) < markDistance {
				openness = 0.3
				break
			}
		}
		reach := 1.0 - dist/maxPassDistance
		score := 0.45*progress + 0.35*openness + 0.20*reach
		if mate.Group() == GroupGoalkeeper {
			score -= 0.5
		}
		if score > bestScore {
			best, bestScore, found = mate, score, true
		}
	}
	return best, found
}

// SafeOption is the closest open teammate toward the player's own goal,
// used to recycle possession under pressure.
func (p PassingOps) SafeOption() (PlayerLite, bool) {
	self := p.ctx.Player
	attackDir := self.Side.AttackDirection()
	var best PlayerLite
	bestDist := maxPassDistance
	found := false
	for _, mate := range p.ctx.Players().Teammates().All() {
		behind := (mate.Position.X-self.Position.X)*attackDir < 10
		if !behind {
			continue
		}
		dist := p.ctx.Tick.Distance(self.ID, mate.ID)
		if dist < 15 || dist >= bestDist {
			continue
		}
		if !p.ctx.Self().HasClearPass(mate.Position) {
			continue
		}
		best, bestDist, found = mate, dist, true
	}
	return best, found
}

// ForceFor scales pass power with distance; the dispatcher multiplies by the
// pass force multiplier.
func (p PassingOps) ForceFor(target PlayerLite) float64 {
	dist := p.ctx.Player.Position.DistanceTo2D(target.Position)
	return clampFloat(dist/100.0, 0.5, 3.5)
}

// LeadTarget aims slightly ahead of a moving receiver.
func (p PassingOps) LeadTarget(target PlayerLite) vector.Vector3 {
	lead := target.Velocity.Scale(8.0)
	return target.Position.Add(lead)
}
