package match

import (
	"math"

	"football-sim/internal/match/vector"
)

// MatchSquad is a team's input to Play: eleven starters ordered to match the
// tactics position list, plus the bench.
type MatchSquad struct {
	TeamID      int
	TeamName    string
	Tactics     *Tactics
	MainSquad   []*MatchPlayer
	Substitutes []*MatchPlayer
}

// MatchField stages the match world: the ball, both participation records
// and restart bookkeeping.
type MatchField struct {
	Ball *Ball

	HomeSquad FieldSquad
	AwaySquad FieldSquad

	lastPass   passRecord
	goalScored bool
	kickoffFor int
}

// NewMatchField registers both squads into the context in canonical
// processing order and stages everyone on the pitch. The home team starts on
// the left.
func NewMatchField(ctx *MatchContext, home, away *MatchSquad) *MatchField {
	field := &MatchField{
		Ball:       NewBall(),
		kickoffFor: away.TeamID,
	}
	field.HomeSquad = stageSquad(ctx, home, SideLeft)
	field.AwaySquad = stageSquad(ctx, away, SideRight)
	return field
}

func stageSquad(ctx *MatchContext, squad *MatchSquad, side PlayerSide) FieldSquad {
	record := FieldSquad{TeamID: squad.TeamID, TeamName: squad.TeamName}
	positions := squad.Tactics.Positions()

	for i, p := range squad.MainSquad {
		if i >= len(positions) {
			break
		}
		p.TeamID = squad.TeamID
		p.SetupOnField(positions[i], side)
		p.OnField = true
		ctx.Players.Add(p)
		record.Main = append(record.Main, p.ID)
	}
	for _, p := range squad.Substitutes {
		p.TeamID = squad.TeamID
		p.Side = side
		p.OnField = false
		p.Position = benchPosition(side)
		p.StartPosition = p.Position
		ctx.Players.Add(p)
		record.Substitutes = append(record.Substitutes, p.ID)
	}
	return record
}

func benchPosition(side PlayerSide) vector.Vector3 {
	x := FieldWidth * 0.25
	if side == SideRight {
		x = FieldWidth * 0.75
	}
	return vector.New2D(x, -5)
}

// SwapSquads flips both teams to the opposite half at half time and
// regenerates every patrol route.
func (f *MatchField) SwapSquads(ctx *MatchContext) {
	for _, p := range ctx.Players.All() {
		if p.OnField {
			p.SwapSide()
		} else {
			p.Side = p.Side.Opposite()
			p.Position = benchPosition(p.Side)
			p.StartPosition = p.Position
		}
	}
}

// ResetForKickoff restages every on-field player, recenters the ball and
// hands it to the kicking team's player nearest the center spot.
func (f *MatchField) ResetForKickoff(ctx *MatchContext, kickingTeamID int) {
	for _, p := range ctx.Players.OnField() {
		p.ReturnToStartPosition()
	}
	f.Ball.ResetToCenter()
	f.lastPass.Valid = false
	f.goalScored = false

	center := vector.New2D(FieldWidth/2, FieldHeight/2)
	var taker *MatchPlayer
	bestDist := math.Inf(1)
	for _, p := range ctx.Players.TeamPlayers(kickingTeamID) {
		if p.IsGoalkeeper() {
			continue
		}
		d := p.Position.DistanceTo2D(center)
		if d < bestDist || (d == bestDist && taker != nil && p.ID < taker.ID) {
			taker, bestDist = p, d
		}
	}
	if taker != nil {
		taker.Position = center.Add(vector.New2D(-4*taker.Side.AttackDirection(), 0))
		f.Ball.SetOwner(taker.ID, ClaimFlightTicks)
	}
}

// Substitute swaps a bench player into the leaver's tactical slot.
func (f *MatchField) Substitute(ctx *MatchContext, out, in *MatchPlayer) {
	in.Side = out.Side
	in.Tactical = NewTacticalPosition(out.Tactical.Current, out.Side)
	in.StartPosition = BasePosition(out.Tactical.Current, out.Side)
	in.Position = out.Position
	in.Velocity = vector.Zero()
	in.OnField = true
	in.ChangeState(DefaultState(in.Tactical.Current.Group()))

	out.OnField = false
	out.SubbedOff = true
	out.Velocity = vector.Zero()
	out.Position = benchPosition(out.Side)

	if f.Ball.CurrentOwner == out.ID {
		f.Ball.CurrentOwner = NoOwner
	}

	rec := SubstitutionRecord{
		TeamID:      out.TeamID,
		PlayerOutID: out.ID,
		PlayerInID:  in.ID,
		TimeMs:      ctx.Time.Elapsed(),
	}
	ctx.RecordSubstitution(rec)
	ctx.Logger.Debug().
		Int("team_id", rec.TeamID).
		Int("out", rec.PlayerOutID).
		Int("in", rec.PlayerInID).
		Uint64("time_ms", rec.TimeMs).
		Msg("substitution")
}
