package match

import "football-sim/internal/match/vector"

// BallOps answers ball questions from the acting player's point of view.
type BallOps struct {
	ctx *StateContext
}

func (c *StateContext) Ball() BallOps {
	return BallOps{ctx: c}
}

func (b BallOps) Position() vector.Vector3 {
	return b.ctx.Tick.Ball.Position
}

func (b BallOps) Distance() float64 {
	return b.ctx.Tick.DistanceToBall(b.ctx.Player.ID)
}

func (b BallOps) Speed() float64 {
	return b.ctx.Tick.Ball.Velocity.Norm2D()
}

func (b BallOps) IsOwned() bool {
	return b.ctx.Tick.Ball.IsOwned
}

func (b BallOps) OwnerID() (int, bool) {
	meta := b.ctx.Tick.Ball
	return meta.CurrentOwner, meta.IsOwned
}

func (b BallOps) InFlight() bool {
	return b.ctx.Tick.Ball.InFlight
}

// OwnedBySelf reports whether the acting player has the ball.
func (b BallOps) OwnedBySelf() bool {
	meta := b.ctx.Tick.Ball
	return meta.IsOwned && meta.CurrentOwner == b.ctx.Player.ID
}

// OwnedByTeammate excludes the acting player.
func (b BallOps) OwnedByTeammate() bool {
	meta := b.ctx.Tick.Ball
	return meta.IsOwned && meta.OwnerTeamID == b.ctx.Player.TeamID && meta.CurrentOwner != b.ctx.Player.ID
}

func (b BallOps) OwnedByOpponent() bool {
	meta := b.ctx.Tick.Ball
	return meta.IsOwned && meta.OwnerTeamID != NoOwner && meta.OwnerTeamID != b.ctx.Player.TeamID
}

// IsTowardsPlayer reports a moving ball whose heading points at the player.
func (b BallOps) IsTowardsPlayer() bool {
	meta := b.ctx.Tick.Ball
	if meta.Velocity.Norm2D() < 0.1 {
		return false
	}
	toPlayer := b.ctx.Player.Position.Sub(meta.Position).Normalize()
	return meta.Velocity.Normalize().Dot(toPlayer) > 0.8
}

// OnOwnSide reports whether the ball is in the half the player defends.
func (b BallOps) OnOwnSide() bool {
	if b.ctx.Player.Side == SideLeft {
		return b.ctx.Tick.Ball.OnLeftHalf
	}
	return !b.ctx.Tick.Ball.OnLeftHalf
}

func (b BallOps) DistanceToOwnGoal() float64 {
	return b.ctx.Tick.Ball.Position.DistanceTo2D(b.ctx.Match.Goals.OwnGoal(b.ctx.Player.Side))
}

func (b BallOps) DistanceToOpponentGoal() float64 {
	return b.ctx.Tick.Ball.Position.DistanceTo2D(b.ctx.Match.Goals.OpponentGoal(b.ctx.Player.Side))
}

// IsNotifiedReceiver reports whether a pass is on its way to this player.
func (b BallOps) IsNotifiedReceiver() bool {
	return b.ctx.Tick.Ball.NotifiedReceiver == b.ctx.Player.ID
}

// ShouldTake reports a loose ball this player ought to collect: close,
// unprotected and either aimed at them or theirs to win as best chaser.
func (b BallOps) ShouldTake() bool {
	meta := b.ctx.Tick.Ball
	if meta.IsOwned || meta.InFlight {
		return false
	}
	dist := b.Distance()
	if dist > 120 {
		return false
	}
	if b.IsNotifiedReceiver() {
		return true
	}
	return b.ctx.Team().IsBestChaser() && (b.Speed() < 1.0 || b.IsTowardsPlayer())
}
