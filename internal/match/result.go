package match

import (
	"sort"

	"football-sim/internal/match/vector"
)

// GoalDetail is one scoring entry on a team's sheet.
type GoalDetail struct {
	PlayerID int      `json:"player_id"`
	Kind     StatKind `json:"kind"`
	TimeMs   uint64   `json:"time_ms"`
	AutoGoal bool     `json:"auto_goal"`
}

// TeamScore is one team's side of the scoreboard. Goals counts everything
// that went in for the team, own goals by opponents included.
type TeamScore struct {
	TeamID  int          `json:"team_id"`
	Goals   int          `json:"goals"`
	Details []GoalDetail `json:"details"`
}

func (t *TeamScore) AddGoal(detail GoalDetail) {
	detail.Kind = StatGoal
	t.Goals++
	t.Details = append(t.Details, detail)
}

func (t *TeamScore) AddAssist(playerID int, timeMs uint64) {
	t.Details = append(t.Details, GoalDetail{PlayerID: playerID, Kind: StatAssist, TimeMs: timeMs})
}

// GoalCount re-derives the score from details.
func (t *TeamScore) GoalCount() int {
	n := 0
	for _, d := range t.Details {
		if d.Kind == StatGoal {
			n++
		}
	}
	return n
}

// Score is keyed by team, not by pitch side, so it survives the half-time
// side swap untouched.
type Score struct {
	Home *TeamScore `json:"home"`
	Away *TeamScore `json:"away"`
}

func NewScore(homeTeamID, awayTeamID int) *Score {
	return &Score{
		Home: &TeamScore{TeamID: homeTeamID},
		Away: &TeamScore{TeamID: awayTeamID},
	}
}

func (s *Score) ByTeam(teamID int) *TeamScore {
	if s.Home.TeamID == teamID {
		return s.Home
	}
	return s.Away
}

func (s *Score) Opponent(teamID int) *TeamScore {
	if s.Home.TeamID == teamID {
		return s.Away
	}
	return s.Home
}

// FieldSquad is the final participation record of one team.
type FieldSquad struct {
	TeamID      int    `json:"team_id"`
	Main        []int  `json:"main"`
	Substitutes []int  `json:"substitutes"`
	TeamName    string `json:"team_name"`
}

// PositionSample is one delta-compressed positional record.
type PositionSample struct {
	TimestampMs uint64         `json:"t"`
	Position    vector.Vector3 `json:"p"`
}

// PassSample is one pass event in the replay stream.
type PassSample struct {
	TimestampMs uint64 `json:"t"`
	FromID      int    `json:"from"`
	ToID        int    `json:"to"`
}

// minSampleDelta is the movement below which a new sample is not recorded.
const minSampleDelta = 0.1

// ResultMatchPositionData holds the replay streams: per-entity position
// samples recorded only when the entity actually moved, plus pass events.
// Timestamps within each stream are strictly increasing.
type ResultMatchPositionData struct {
	Ball    []PositionSample         `json:"ball"`
	Players map[int][]PositionSample `json:"players"`
	Passes  []PassSample             `json:"passes"`
}

func NewResultMatchPositionData() *ResultMatchPositionData {
	return &ResultMatchPositionData{Players: make(map[int][]PositionSample)}
}

func (d *ResultMatchPositionData) AddBallPosition(timestampMs uint64, pos vector.Vector3) {
	d.Ball = appendSample(d.Ball, timestampMs, pos)
}

func (d *ResultMatchPositionData) AddPlayerPosition(playerID int, timestampMs uint64, pos vector.Vector3) {
	d.Players[playerID] = appendSample(d.Players[playerID], timestampMs, pos)
}

func (d *ResultMatchPositionData) AddPass(timestampMs uint64, fromID, toID int) {
	d.Passes = append(d.Passes, PassSample{TimestampMs: timestampMs, FromID: fromID, ToID: toID})
}

func appendSample(samples []PositionSample, timestampMs uint64, pos vector.Vector3) []PositionSample {
	if n := len(samples); n > 0 {
		last := samples[n-1]
		if timestampMs <= last.TimestampMs {
			return samples
		}
		if last.Position.DistanceTo(pos) < minSampleDelta {
			return samples
		}
	}
	return append(samples, PositionSample{TimestampMs: timestampMs, Position: pos})
}

// sampleAt finds the latest sample at or before t.
func sampleAt(samples []PositionSample, timestampMs uint64) (vector.Vector3, bool) {
	if len(samples) == 0 {
		return vector.Zero(), false
	}
	idx := sort.Search(len(samples), func(i int) bool {
		return samples[i].TimestampMs > timestampMs
	})
	if idx == 0 {
		return samples[0].Position, samples[0].TimestampMs <= timestampMs
	}
	return samples[idx-1].Position, true
}

// BallPositionAt returns the ball position at match time t.
func (d *ResultMatchPositionData) BallPositionAt(timestampMs uint64) (vector.Vector3, bool) {
	return sampleAt(d.Ball, timestampMs)
}

// PlayerPositionAt returns a player's position at match time t.
func (d *ResultMatchPositionData) PlayerPositionAt(playerID int, timestampMs uint64) (vector.Vector3, bool) {
	return sampleAt(d.Players[playerID], timestampMs)
}

// MatchResultRaw is the complete engine output for one match. Home is always
// the team passed first to Play, independent of the side swap.
type MatchResultRaw struct {
	MatchTimeMs      uint64                      `json:"match_time_ms"`
	AdditionalTimeMs uint64                      `json:"additional_time_ms"`
	Seed             int64                       `json:"seed"`
	Score            *Score                      `json:"score"`
	HomeSquad        FieldSquad                  `json:"home_squad"`
	AwaySquad        FieldSquad                  `json:"away_squad"`
	PlayerStats      map[int]PlayerMatchEndStats `json:"player_stats"`
	Substitutions    []SubstitutionRecord        `json:"substitutions"`
	PositionData     *ResultMatchPositionData    `json:"position_data"`
}
