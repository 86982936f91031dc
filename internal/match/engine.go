package match

import (
	"math/rand"

	"github.com/rs/zerolog"

	"football-sim/internal/match/vector"
)

// PlayConfig controls one simulation run. The seed fully determines the
// match: same squads plus same seed replays the identical result.
type PlayConfig struct {
	Seed           int64
	HalfDurationMs uint64
	Logger         zerolog.Logger

	// TickObserver, when set, receives a snapshot every ObserveEveryTicks
	// ticks; used for live streaming.
	TickObserver     func(TickSnapshot)
	ObserveEveryTicks int
}

// TickSnapshot is the minimal live view of a running match.
type TickSnapshot struct {
	TimeMs    uint64           `json:"time_ms"`
	Phase     string           `json:"phase"`
	HomeGoals int              `json:"home_goals"`
	AwayGoals int              `json:"away_goals"`
	Ball      vector.Vector3   `json:"ball"`
	Players   []PlayerPosition `json:"players"`
}

// PlayerPosition is one player dot in a snapshot.
type PlayerPosition struct {
	ID     int     `json:"id"`
	TeamID int     `json:"team_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// maxAdditionalTimeMs caps second-half stoppage time at five minutes.
const maxAdditionalTimeMs = uint64(5 * 60 * 1000)

// stoppagePerEventMs is the stoppage credited per goal or substitution.
const stoppagePerEventMs = uint64(30 * 1000)

// Engine simulates complete matches. It is stateless across matches; one
// Play call builds its own world and runs single-threaded to the end.
type Engine struct {
	cfg PlayConfig
}

func NewEngine(cfg PlayConfig) *Engine {
	if cfg.HalfDurationMs == 0 {
		cfg.HalfDurationMs = HalfDurationMs
	}
	if cfg.ObserveEveryTicks <= 0 {
		cfg.ObserveEveryTicks = 25
	}
	return &Engine{cfg: cfg}
}

// Play simulates one full match between the two squads and returns the raw
// result. It never fails; degenerate inputs produce a degenerate but valid
// match.
func (e *Engine) Play(home, away *MatchSquad) *MatchResultRaw {
	rng := rand.New(rand.NewSource(e.cfg.Seed))
	ctx := NewMatchContext(home.TeamID, away.TeamID, e.cfg.HalfDurationMs, rng, e.cfg.Logger)
	field := NewMatchField(ctx, home, away)
	data := NewResultMatchPositionData()
	manager := NewStateManager()

	var additionalTimeMs uint64
	for manager.Current() != MatchStateEnd {
		switch manager.Advance() {
		case MatchStateFirstHalf:
			ctx.Time.ResetPeriod()
			field.ResetForKickoff(ctx, away.TeamID)
			e.playPeriod(ctx, field, data, manager.Current(), 0)
		case MatchStateHalfTime:
			e.halfTimeBreak(ctx, field)
		case MatchStateSecondHalf:
			ctx.Time.ResetPeriod()
			field.ResetForKickoff(ctx, home.TeamID)
			additionalTimeMs = e.stoppageTime(ctx)
			e.playPeriod(ctx, field, data, manager.Current(), additionalTimeMs)
		}
	}

	return e.buildResult(ctx, field, data, additionalTimeMs)
}

// playPeriod runs ticks until the period plus its stoppage time elapses.
func (e *Engine) playPeriod(ctx *MatchContext, field *MatchField, data *ResultMatchPositionData, phase MatchState, extraMs uint64) {
	nextSubCheck := SubCheckIntervalMs
	tickCount := 0
	for {
		periodOver := ctx.Time.Increment()
		if periodOver && ctx.Time.PeriodMs >= ctx.Time.HalfDurationMs+extraMs {
			return
		}
		e.gameTick(ctx, field, data)
		tickCount++

		if phase == MatchStateSecondHalf && ctx.Time.PeriodMs >= nextSubCheck {
			nextSubCheck += SubCheckIntervalMs
			e.checkSubstitutions(ctx, field, GoalkeeperSubThreshold, OutfieldSubThreshold)
		}
		if e.cfg.TickObserver != nil && tickCount%e.cfg.ObserveEveryTicks == 0 {
			e.cfg.TickObserver(e.snapshot(ctx, field, phase))
		}
	}
}

// gameTick advances the world one tick: ball, then every player in
// canonical order, then event dispatch, then movement, then samples.
func (e *Engine) gameTick(ctx *MatchContext, field *MatchField, data *ResultMatchPositionData) {
	events := &EventCollection{}
	field.Ball.Update(ctx, events)

	tick := NewGameTickContext(ctx, field.Ball)
	for _, p := range ctx.Players.OnField() {
		events.AddRange(processPlayerState(p, ctx, tick))
	}

	dispatchEvents(events.Events(), field, ctx, data)

	for _, p := range ctx.Players.OnField() {
		p.ApplyMovement()
	}
	if field.goalScored {
		field.ResetForKickoff(ctx, field.kickoffFor)
	}

	now := ctx.Time.Elapsed()
	data.AddBallPosition(now, field.Ball.Position)
	for _, p := range ctx.Players.OnField() {
		data.AddPlayerPosition(p.ID, now, p.Position)
	}
}

// halfTimeBreak rests everyone, runs the interval substitutions and swaps
// the teams to the opposite halves.
func (e *Engine) halfTimeBreak(ctx *MatchContext, field *MatchField) {
	for _, p := range ctx.Players.All() {
		p.Attributes.Rest(HalfTimeRestAmount)
	}
	e.checkSubstitutions(ctx, field, HalfTimeConditionThreshold, HalfTimeConditionThreshold)
	field.SwapSquads(ctx)
	ctx.Logger.Debug().
		Int("home_goals", ctx.Score.Home.Goals).
		Int("away_goals", ctx.Score.Away.Goals).
		Msg("half time")
}

// checkSubstitutions replaces spent or injured players with the best bench
// match while substitutions remain.
func (e *Engine) checkSubstitutions(ctx *MatchContext, field *MatchField, gkThreshold, outfieldThreshold int) {
	for _, p := range ctx.Players.OnField() {
		if !ctx.CanSubstitute(p.TeamID) {
			continue
		}
		threshold := outfieldThreshold
		if p.IsGoalkeeper() {
			threshold = gkThreshold
		}
		if !p.Attributes.IsInjured && p.State != StateInjured && p.Attributes.Condition >= threshold {
			continue
		}
		if sub := e.findBestSubstitute(ctx, p); sub != nil {
			field.Substitute(ctx, p, sub)
		}
	}
}

// findBestSubstitute prefers the same position group, then the highest
// ability; goalkeepers are only ever replaced by goalkeepers.
func (e *Engine) findBestSubstitute(ctx *MatchContext, out *MatchPlayer) *MatchPlayer {
	group := out.Tactical.Current.Group()
	var bestSame, bestAny *MatchPlayer
	for _, id := range ctx.Players.SortedIDs() {
		cand := ctx.Players.ByID(id)
		if cand.TeamID != out.TeamID || cand.OnField || cand.SubbedOff || cand.Attributes.IsInjured {
			continue
		}
		candGroup := candidateGroup(cand)
		if candGroup == group {
			if bestSame == nil || cand.Attributes.CurrentAbility > bestSame.Attributes.CurrentAbility {
				bestSame = cand
			}
		} else if candGroup != GroupGoalkeeper {
			if bestAny == nil || cand.Attributes.CurrentAbility > bestAny.Attributes.CurrentAbility {
				bestAny = cand
			}
		}
	}
	if bestSame != nil {
		return bestSame
	}
	if group == GroupGoalkeeper {
		return nil
	}
	return bestAny
}

func candidateGroup(p *MatchPlayer) PositionGroup {
	if len(p.NaturalPositions) > 0 {
		return p.NaturalPositions[0].Group()
	}
	return p.Tactical.Current.Group()
}

// stoppageTime derives second-half stoppage from first-half events.
func (e *Engine) stoppageTime(ctx *MatchContext) uint64 {
	events := uint64(ctx.Score.Home.GoalCount()+ctx.Score.Away.GoalCount()) + uint64(len(ctx.Substitutions))
	extra := events * stoppagePerEventMs
	if extra > maxAdditionalTimeMs {
		extra = maxAdditionalTimeMs
	}
	return extra
}

func (e *Engine) snapshot(ctx *MatchContext, field *MatchField, phase MatchState) TickSnapshot {
	snap := TickSnapshot{
		TimeMs:    ctx.Time.Elapsed(),
		Phase:     phase.String(),
		HomeGoals: ctx.Score.Home.Goals,
		AwayGoals: ctx.Score.Away.Goals,
		Ball:      field.Ball.Position,
	}
	for _, p := range ctx.Players.OnField() {
		snap.Players = append(snap.Players, PlayerPosition{
			ID: p.ID, TeamID: p.TeamID, X: p.Position.X, Y: p.Position.Y,
		})
	}
	return snap
}

// buildResult assembles the raw result, home team first regardless of which
// half it finished on.
func (e *Engine) buildResult(ctx *MatchContext, field *MatchField, data *ResultMatchPositionData, additionalTimeMs uint64) *MatchResultRaw {
	result := &MatchResultRaw{
		MatchTimeMs:      ctx.Time.TotalMs,
		AdditionalTimeMs: additionalTimeMs,
		Seed:             e.cfg.Seed,
		Score:            ctx.Score,
		HomeSquad:        field.HomeSquad,
		AwaySquad:        field.AwaySquad,
		PlayerStats:      make(map[int]PlayerMatchEndStats, len(ctx.Players.All())),
		Substitutions:    ctx.Substitutions,
		PositionData:     data,
	}
	for _, id := range ctx.Players.SortedIDs() {
		p := ctx.Players.ByID(id)
		result.PlayerStats[p.ID] = e.endStats(ctx, p)
	}
	return result
}

func (e *Engine) endStats(ctx *MatchContext, p *MatchPlayer) PlayerMatchEndStats {
	stats := &p.Statistics
	return PlayerMatchEndStats{
		PlayerID:        p.ID,
		TeamID:          p.TeamID,
		Position:        p.Tactical.Current.String(),
		Goals:           stats.Goals(),
		Assists:         stats.Assists(),
		PassesAttempted: stats.PassesAttempted,
		PassesCompleted: stats.PassesCompleted,
		ShotsTaken:      stats.ShotsTaken,
		ShotsOnTarget:   stats.ShotsOnTarget,
		Tackles:         stats.Tackles,
		Fouls:           stats.Fouls,
		Rating: CalculateMatchRating(RatingInput{
			Group:         p.Tactical.Current.Group(),
			Stats:         stats,
			GoalsFor:      ctx.Score.ByTeam(p.TeamID).Goals,
			GoalsAgainst:  ctx.Score.Opponent(p.TeamID).Goals,
		}),
	}
}
