package match

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"football-sim/internal/match/vector"
)

// MatchTime is the virtual match clock. Period time resets between halves;
// total time only grows and is the timestamp written into result samples.
type MatchTime struct {
	PeriodMs       uint64
	TotalMs        uint64
	HalfDurationMs uint64
}

// Increment advances one tick and reports whether the period is over.
func (t *MatchTime) Increment() bool {
	t.PeriodMs += TickIntervalMs
	t.TotalMs += TickIntervalMs
	return t.PeriodMs >= t.HalfDurationMs
}

// ResetPeriod starts a new period without touching total time.
func (t *MatchTime) ResetPeriod() {
	t.PeriodMs = 0
}

// Elapsed is the match-wide timestamp in milliseconds.
func (t *MatchTime) Elapsed() uint64 {
	return t.TotalMs
}

// GoalSide names a goal by the half it sits in.
type GoalSide int

const (
	GoalSideLeft GoalSide = iota
	GoalSideRight
)

// GoalPosition holds both goal centers and answers goal-mouth geometry.
type GoalPosition struct {
	Left  vector.Vector3
	Right vector.Vector3
}

func NewGoalPosition() GoalPosition {
	return GoalPosition{
		Left:  vector.New2D(0, FieldHeight/2),
		Right: vector.New2D(FieldWidth, FieldHeight/2),
	}
}

func (g GoalPosition) Center(side GoalSide) vector.Vector3 {
	if side == GoalSideLeft {
		return g.Left
	}
	return g.Right
}

// OwnGoal is the goal the given side defends.
func (g GoalPosition) OwnGoal(side PlayerSide) vector.Vector3 {
	if side == SideLeft {
		return g.Left
	}
	return g.Right
}

// OpponentGoal is the goal the given side attacks.
func (g GoalPosition) OpponentGoal(side PlayerSide) vector.Vector3 {
	if side == SideLeft {
		return g.Right
	}
	return g.Left
}

func withinMouth(y float64) bool {
	return y >= FieldHeight/2-GoalMouthHalfWidth && y <= FieldHeight/2+GoalMouthHalfWidth
}

// IsGoal reports a ball position that has crossed a goal line inside the
// mouth and under the crossbar.
func (g GoalPosition) IsGoal(pos vector.Vector3) (GoalSide, bool) {
	if !withinMouth(pos.Y) || pos.Z > CrossbarHeight {
		return 0, false
	}
	if pos.X <= 0 {
		return GoalSideLeft, true
	}
	if pos.X >= FieldWidth {
		return GoalSideRight, true
	}
	return 0, false
}

// IsOverBar reports a ball that crossed the line inside the mouth but above
// the crossbar.
func (g GoalPosition) IsOverBar(pos vector.Vector3) (GoalSide, bool) {
	if !withinMouth(pos.Y) || pos.Z <= CrossbarHeight {
		return 0, false
	}
	if pos.X <= 0 {
		return GoalSideLeft, true
	}
	if pos.X >= FieldWidth {
		return GoalSideRight, true
	}
	return 0, false
}

// TargetInMouth reports whether an aim point is inside either goal mouth,
// used for the shots-on-target statistic.
func (g GoalPosition) TargetInMouth(target vector.Vector3) bool {
	if !withinMouth(target.Y) || target.Z > CrossbarHeight {
		return false
	}
	return target.X <= 1.0 || target.X >= FieldWidth-1.0
}

// Penalty area, scaled from a 105m pitch (8 units per meter).
const (
	PenaltyAreaDepth     = 132.0
	PenaltyAreaHalfWidth = 161.0
)

type PenaltyArea struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (a PenaltyArea) Contains(pos vector.Vector3) bool {
	return pos.X >= a.MinX && pos.X <= a.MaxX && pos.Y >= a.MinY && pos.Y <= a.MaxY
}

// PenaltyAreaFor is the box in front of the goal the given side defends.
func PenaltyAreaFor(side PlayerSide) PenaltyArea {
	area := PenaltyArea{
		MinY: FieldHeight/2 - PenaltyAreaHalfWidth,
		MaxY: FieldHeight/2 + PenaltyAreaHalfWidth,
	}
	if side == SideLeft {
		area.MinX = 0
		area.MaxX = PenaltyAreaDepth
	} else {
		area.MinX = FieldWidth - PenaltyAreaDepth
		area.MaxX = FieldWidth
	}
	return area
}

// MatchPlayerCollection indexes every player in the match, on field or not,
// and preserves the canonical processing order: home starters, home
// substitutes, away starters, away substitutes.
type MatchPlayerCollection struct {
	byID    map[int]*MatchPlayer
	ordered []*MatchPlayer
}

func NewMatchPlayerCollection() *MatchPlayerCollection {
	return &MatchPlayerCollection{byID: make(map[int]*MatchPlayer)}
}

func (c *MatchPlayerCollection) Add(p *MatchPlayer) {
	if _, exists := c.byID[p.ID]; exists {
		return
	}
	c.byID[p.ID] = p
	c.ordered = append(c.ordered, p)
}

func (c *MatchPlayerCollection) ByID(id int) *MatchPlayer {
	return c.byID[id]
}

// All returns players in canonical processing order.
func (c *MatchPlayerCollection) All() []*MatchPlayer {
	return c.ordered
}

// OnField returns active players in canonical order.
func (c *MatchPlayerCollection) OnField() []*MatchPlayer {
	out := make([]*MatchPlayer, 0, 22)
	for _, p := range c.ordered {
		if p.OnField {
			out = append(out, p)
		}
	}
	return out
}

// TeamPlayers returns the on-field players of one team in canonical order.
func (c *MatchPlayerCollection) TeamPlayers(teamID int) []*MatchPlayer {
	var out []*MatchPlayer
	for _, p := range c.ordered {
		if p.OnField && p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

// Goalkeeper returns the on-field goalkeeper of a team.
func (c *MatchPlayerCollection) Goalkeeper(teamID int) *MatchPlayer {
	for _, p := range c.ordered {
		if p.OnField && p.TeamID == teamID && p.Tactical.Current.Group() == GroupGoalkeeper {
			return p
		}
	}
	return nil
}

// SortedIDs returns every player id ascending, for deterministic iteration.
func (c *MatchPlayerCollection) SortedIDs() []int {
	ids := make([]int, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SubstitutionRecord is one completed substitution.
type SubstitutionRecord struct {
	TeamID      int    `json:"team_id"`
	PlayerOutID int    `json:"player_out_id"`
	PlayerInID  int    `json:"player_in_id"`
	TimeMs      uint64 `json:"time_ms"`
}

// MatchContext is the per-match world shared by the engine, the ball and the
// state handlers. One context per match; never shared across matches.
type MatchContext struct {
	Time    MatchTime
	Score   *Score
	Players *MatchPlayerCollection
	Goals   GoalPosition

	HomeTeamID int
	AwayTeamID int

	Rng    *rand.Rand
	Logger zerolog.Logger

	Substitutions []SubstitutionRecord
	subsUsed      map[int]int
}

func NewMatchContext(homeTeamID, awayTeamID int, halfDurationMs uint64, rng *rand.Rand, logger zerolog.Logger) *MatchContext {
	return &MatchContext{
		Time:       MatchTime{HalfDurationMs: halfDurationMs},
		Score:      NewScore(homeTeamID, awayTeamID),
		Players:    NewMatchPlayerCollection(),
		Goals:      NewGoalPosition(),
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		Rng:        rng,
		Logger:     logger,
		subsUsed:   make(map[int]int),
	}
}

func (ctx *MatchContext) OpponentTeamID(teamID int) int {
	if teamID == ctx.HomeTeamID {
		return ctx.AwayTeamID
	}
	return ctx.HomeTeamID
}

// CanSubstitute reports whether the team has substitutions left.
func (ctx *MatchContext) CanSubstitute(teamID int) bool {
	return ctx.subsUsed[teamID] < MaxSubstitutions
}

func (ctx *MatchContext) RecordSubstitution(rec SubstitutionRecord) {
	ctx.subsUsed[rec.TeamID]++
	ctx.Substitutions = append(ctx.Substitutions, rec)
}
