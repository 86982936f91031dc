package match

// StatKind tags a scoreboard item.
type StatKind int

const (
	StatGoal StatKind = iota
	StatAssist
)

// StatItem is one scoreboard entry with its match timestamp.
type StatItem struct {
	Kind     StatKind `json:"kind"`
	TimeMs   uint64   `json:"time_ms"`
	AutoGoal bool     `json:"auto_goal"`
}

// shotCooldownMs stops a player from re-emitting shots while the previous
// attempt is still in flight.
const shotCooldownMs = 3000

// MatchPlayerStatistics accumulates per-player counters during a match.
type MatchPlayerStatistics struct {
	Items []StatItem

	PassesAttempted int
	PassesCompleted int
	ShotsTaken      int
	ShotsOnTarget   int
	Tackles         int
	Fouls           int

	lastShotAtMs uint64
	hasShot      bool
}

func (s *MatchPlayerStatistics) AddGoal(timeMs uint64, autoGoal bool) {
	s.Items = append(s.Items, StatItem{Kind: StatGoal, TimeMs: timeMs, AutoGoal: autoGoal})
}

func (s *MatchPlayerStatistics) AddAssist(timeMs uint64) {
	s.Items = append(s.Items, StatItem{Kind: StatAssist, TimeMs: timeMs})
}

func (s *MatchPlayerStatistics) Goals() int {
	n := 0
	for _, it := range s.Items {
		if it.Kind == StatGoal && !it.AutoGoal {
			n++
		}
	}
	return n
}

func (s *MatchPlayerStatistics) Assists() int {
	n := 0
	for _, it := range s.Items {
		if it.Kind == StatAssist {
			n++
		}
	}
	return n
}

func (s *MatchPlayerStatistics) AddPassAttempt() {
	s.PassesAttempted++
}

func (s *MatchPlayerStatistics) AddPassCompleted() {
	s.PassesCompleted++
}

func (s *MatchPlayerStatistics) AddShot(timeMs uint64, onTarget bool) {
	s.ShotsTaken++
	if onTarget {
		s.ShotsOnTarget++
	}
	s.lastShotAtMs = timeMs
	s.hasShot = true
}

func (s *MatchPlayerStatistics) AddTackle() {
	s.Tackles++
}

func (s *MatchPlayerStatistics) AddFoul() {
	s.Fouls++
}

// CanShoot reports whether the shot cooldown has elapsed.
func (s *MatchPlayerStatistics) CanShoot(nowMs uint64) bool {
	return !s.hasShot || nowMs >= s.lastShotAtMs+shotCooldownMs
}

// PlayerMatchEndStats is the per-player summary published on the raw result.
type PlayerMatchEndStats struct {
	PlayerID        int     `json:"player_id"`
	TeamID          int     `json:"team_id"`
	Position        string  `json:"position"`
	Goals           int     `json:"goals"`
	Assists         int     `json:"assists"`
	PassesAttempted int     `json:"passes_attempted"`
	PassesCompleted int     `json:"passes_completed"`
	ShotsTaken      int     `json:"shots_taken"`
	ShotsOnTarget   int     `json:"shots_on_target"`
	Tackles         int     `json:"tackles"`
	Fouls           int     `json:"fouls"`
	Rating          float64 `json:"rating"`
}
