package match

import (
	"math"

	"football-sim/internal/match/vector"
)

// EventKind discriminates the dispatcher union.
type EventKind int

const (
	EventGoal EventKind = iota
	EventPassTo
	EventShoot
	EventClearBall
	EventClaimBall
	EventGainBall
	EventCaughtBall
	EventTacklingBall
	EventCommitFoul
	EventTakeMe
	EventRequestBallReceive
	EventOfferSupport
)

func (k EventKind) String() string {
	switch k {
	case EventGoal:
		return "goal"
	case EventPassTo:
		return "pass_to"
	case EventShoot:
		return "shoot"
	case EventClearBall:
		return "clear_ball"
	case EventClaimBall:
		return "claim_ball"
	case EventGainBall:
		return "gain_ball"
	case EventCaughtBall:
		return "caught_ball"
	case EventTacklingBall:
		return "tackling_ball"
	case EventCommitFoul:
		return "commit_foul"
	case EventTakeMe:
		return "take_me"
	case EventRequestBallReceive:
		return "request_ball_receive"
	case EventOfferSupport:
		return "offer_support"
	default:
		return "unknown"
	}
}

// Event is one dispatcher item. PlayerID is the acting player; OtherID is the
// counterpart (receiver, victim) where one exists.
type Event struct {
	Kind     EventKind
	PlayerID int
	OtherID  int
	Point    vector.Vector3
	Force    float64
	Side     GoalSide
}

func NewPassEvent(from, to int, target vector.Vector3, force float64) Event {
	return Event{Kind: EventPassTo, PlayerID: from, OtherID: to, Point: target, Force: force}
}

func NewShootEvent(shooter int, target vector.Vector3, force float64) Event {
	return Event{Kind: EventShoot, PlayerID: shooter, Point: target, Force: force}
}

func NewClearBallEvent(player int, target vector.Vector3, force float64) Event {
	return Event{Kind: EventClearBall, PlayerID: player, Point: target, Force: force}
}

func NewClaimBallEvent(player int) Event {
	return Event{Kind: EventClaimBall, PlayerID: player}
}

func NewGainBallEvent(player int) Event {
	return Event{Kind: EventGainBall, PlayerID: player}
}

func NewCaughtBallEvent(player int) Event {
	return Event{Kind: EventCaughtBall, PlayerID: player}
}

func NewTacklingEvent(tackler, victim int) Event {
	return Event{Kind: EventTacklingBall, PlayerID: tackler, OtherID: victim}
}

func NewCommitFoulEvent(tackler, victim int) Event {
	return Event{Kind: EventCommitFoul, PlayerID: tackler, OtherID: victim}
}

func NewTakeMeEvent(player int) Event {
	return Event{Kind: EventTakeMe, PlayerID: player}
}

func NewGoalEvent(side GoalSide, scorer int) Event {
	return Event{Kind: EventGoal, PlayerID: scorer, Side: side}
}

// EventCollection accumulates events in emission order within a tick.
type EventCollection struct {
	events []Event
}

func (c *EventCollection) Add(e Event) {
	c.events = append(c.events, e)
}

func (c *EventCollection) AddRange(events []Event) {
	c.events = append(c.events, events...)
}

func (c *EventCollection) Len() int {
	return len(c.events)
}

func (c *EventCollection) Events() []Event {
	return c.events
}

// assistWindowMs bounds how old the last completed pass may be to still
// credit an assist.
const assistWindowMs = 15 * 1000

// passRecord remembers the most recent pass for completion and assist
// bookkeeping.
type passRecord struct {
	FromID int
	ToID   int
	TimeMs uint64
	Valid  bool
}

// dispatchEvents applies every event in emission order. Events mutate the
// ball, the score and player statistics; player positions are untouched here
// so handlers earlier in the same tick saw a consistent world.
func dispatchEvents(events []Event, field *MatchField, ctx *MatchContext, data *ResultMatchPositionData) {
	for _, e := range events {
		switch e.Kind {
		case EventPassTo:
			dispatchPass(e, field, ctx, data)
		case EventShoot:
			dispatchShot(e, field, ctx)
		case EventClearBall:
			dispatchClear(e, field, ctx)
		case EventClaimBall:
			dispatchOwnership(e, field, ctx, ClaimFlightTicks)
		case EventGainBall:
			dispatchOwnership(e, field, ctx, GainFlightTicks)
		case EventCaughtBall:
			field.Ball.Velocity = vector.Zero()
			field.Ball.Position.Z = 0
			dispatchOwnership(e, field, ctx, GainFlightTicks)
		case EventTacklingBall:
			if tackler := ctx.Players.ByID(e.PlayerID); tackler != nil {
				tackler.Statistics.AddTackle()
			}
			field.Ball.SetOwner(e.PlayerID, ClaimFlightTicks)
			field.Ball.Velocity = vector.Zero()
			field.lastPass.Valid = false
		case EventCommitFoul:
			if tackler := ctx.Players.ByID(e.PlayerID); tackler != nil {
				tackler.Statistics.AddFoul()
			}
			// play on: the fouled player keeps the ball under protection
			field.Ball.SetOwner(e.OtherID, ClaimFlightTicks)
			field.Ball.Velocity = vector.Zero()
		case EventTakeMe:
			if player := ctx.Players.ByID(e.PlayerID); player != nil {
				player.RunForBall()
			}
		case EventGoal:
			dispatchGoal(e, field, ctx, data)
		case EventRequestBallReceive, EventOfferSupport:
			// informational; receivers poll ball metadata instead
		}
	}
}

func dispatchPass(e Event, field *MatchField, ctx *MatchContext, data *ResultMatchPositionData) {
	passer := ctx.Players.ByID(e.PlayerID)
	if passer == nil {
		return
	}
	passer.Statistics.AddPassAttempt()

	velocity := passVelocity(field.Ball.Position, e.Point, e.Force, passer.Skills.Technical.Passing, ctx)
	field.Ball.Release(velocity, e.PlayerID, PassFlightTicks)
	field.Ball.NotifyReceiver(e.OtherID)

	field.lastPass = passRecord{FromID: e.PlayerID, ToID: e.OtherID, TimeMs: ctx.Time.Elapsed(), Valid: true}
	data.AddPass(ctx.Time.Elapsed(), e.PlayerID, e.OtherID)
}

func dispatchShot(e Event, field *MatchField, ctx *MatchContext) {
	shooter := ctx.Players.ByID(e.PlayerID)
	if shooter == nil {
		return
	}
	velocity := shotVelocity(field.Ball.Position, e.Point, e.Force, shooter.Skills.Technical.Finishing, ctx)
	onTarget := ctx.Goals.TargetInMouth(e.Point)
	shooter.Statistics.AddShot(ctx.Time.Elapsed(), onTarget)

	field.Ball.Release(velocity, e.PlayerID, ShotFlightTicks)
	field.lastPass.Valid = field.lastPass.Valid && field.lastPass.ToID == e.PlayerID
}

func dispatchClear(e Event, field *MatchField, ctx *MatchContext) {
	player := ctx.Players.ByID(e.PlayerID)
	if player == nil {
		return
	}
	velocity := passVelocity(field.Ball.Position, e.Point, e.Force, player.Skills.Technical.Technique, ctx)
	// clearances are lofted regardless of distance
	velocity.Z = math.Max(velocity.Z, 0.18)
	field.Ball.Release(velocity, e.PlayerID, ClaimFlightTicks)
	field.lastPass.Valid = false
}

func dispatchOwnership(e Event, field *MatchField, ctx *MatchContext, flightTicks int) {
	if field.Ball.InFlight() && field.Ball.CurrentOwner != NoOwner {
		return
	}
	field.Ball.SetOwner(e.PlayerID, flightTicks)

	// a completed pass is one claimed by its intended receiver
	if field.lastPass.Valid && field.lastPass.ToID == e.PlayerID {
		if passer := ctx.Players.ByID(field.lastPass.FromID); passer != nil {
			passer.Statistics.AddPassCompleted()
		}
	} else if field.lastPass.Valid && field.lastPass.FromID != e.PlayerID {
		receiver := ctx.Players.ByID(e.PlayerID)
		passer := ctx.Players.ByID(field.lastPass.FromID)
		if receiver != nil && passer != nil && receiver.TeamID != passer.TeamID {
			field.lastPass.Valid = false
		}
	}
}

func dispatchGoal(e Event, field *MatchField, ctx *MatchContext, data *ResultMatchPositionData) {
	scorer := ctx.Players.ByID(e.PlayerID)
	if scorer == nil {
		return
	}

	// a goal into the side you defend is an own goal
	autoGoal := scorer.Side == SideLeft && e.Side == GoalSideLeft ||
		scorer.Side == SideRight && e.Side == GoalSideRight

	scoringTeamID := scorer.TeamID
	if autoGoal {
		scoringTeamID = ctx.OpponentTeamID(scorer.TeamID)
	}
	scoringTeam := ctx.Score.ByTeam(scoringTeamID)
	scoringTeam.AddGoal(GoalDetail{
		PlayerID: e.PlayerID,
		TimeMs:   ctx.Time.Elapsed(),
		AutoGoal: autoGoal,
	})
	scorer.Statistics.AddGoal(ctx.Time.Elapsed(), autoGoal)

	if !autoGoal && field.lastPass.Valid && field.lastPass.ToID == e.PlayerID &&
		ctx.Time.Elapsed()-field.lastPass.TimeMs <= assistWindowMs {
		if assister := ctx.Players.ByID(field.lastPass.FromID); assister != nil &&
			assister.TeamID == scorer.TeamID && assister.ID != scorer.ID {
			assister.Statistics.AddAssist(ctx.Time.Elapsed())
			scoringTeam.AddAssist(field.lastPass.FromID, ctx.Time.Elapsed())
		}
	}
	field.lastPass.Valid = false

	ctx.Logger.Debug().
		Int("scorer", e.PlayerID).
		Bool("auto_goal", autoGoal).
		Uint64("time_ms", ctx.Time.Elapsed()).
		Msg("goal")

	// conceding team restarts
	field.goalScored = true
	field.kickoffFor = ctx.OpponentTeamID(scoringTeamID)
}

// trajectory styles by pitch-plane distance band
const (
	groundPassMaxDistance = 100.0
	drivenPassMaxDistance = 250.0
	loftPassMaxDistance   = 400.0
)

// gravityPerTick is the per-tick z velocity decay in meters.
const gravityPerTick = 0.02

// passVelocity builds the ball velocity for a pass: pitch-plane speed from
// force, trajectory style from the distance band, angular error and power
// variance scaled down by passing skill.
func passVelocity(from, target vector.Vector3, force float64, skill float64, ctx *MatchContext) vector.Vector3 {
	to := target.Sub(from)
	to.Z = 0
	dist := to.Norm2D()
	dir := to.Normalize()

	accuracy := skillUnit(skill)
	maxErr := 0.30 * (1.0 - accuracy)
	angleErr := (ctx.Rng.Float64()*2 - 1) * maxErr
	dir = rotate2D(dir, angleErr)

	speed := clampFloat(force, 0.5, 3.5) * PassForceMultiplier
	speed *= 1.0 + (ctx.Rng.Float64()*2-1)*0.1*(1.0-accuracy)

	velocity := dir.Scale(speed)
	flightTicks := dist / math.Max(speed, 0.1)
	switch {
	case dist <= groundPassMaxDistance:
		// ground pass, stays down
	case dist <= drivenPassMaxDistance:
		velocity.Z = 0.004 * flightTicks
	case dist <= loftPassMaxDistance:
		velocity.Z = gravityPerTick * flightTicks / 2.0
	default:
		velocity.Z = gravityPerTick * flightTicks * 0.65
	}
	return velocity
}

// shotVelocity builds the ball velocity for a shot; finishing skill shrinks
// the angular error, range picks how much the ball is lifted.
func shotVelocity(from, target vector.Vector3, force float64, skill float64, ctx *MatchContext) vector.Vector3 {
	to := target.Sub(from)
	to.Z = 0
	dist := to.Norm2D()
	dir := to.Normalize()

	accuracy := skillUnit(skill)
	maxErr := 0.12 * (1.0 - accuracy)
	dir = rotate2D(dir, (ctx.Rng.Float64()*2-1)*maxErr)

	speed := clampFloat(force, 6.0, 16.0)
	velocity := dir.Scale(speed)
	if dist > 150 {
		velocity.Z = 0.01 + ctx.Rng.Float64()*0.02
	} else {
		velocity.Z = ctx.Rng.Float64() * 0.01
	}
	return velocity
}

func rotate2D(v vector.Vector3, angle float64) vector.Vector3 {
	sin, cos := math.Sincos(angle)
	return vector.New(v.X*cos-v.Y*sin, v.X*sin+v.Y*cos, v.Z)
}
