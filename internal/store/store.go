// Package store persists match results in sqlite so simulations survive a
// restart and season queries do not need the raw position data in memory.
package store

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"football-sim/internal/match"
)

// MatchRecord is one completed simulation.
type MatchRecord struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	Seed       int64  `json:"seed"`
	HomeTeamID int    `gorm:"index" json:"home_team_id"`
	AwayTeamID int    `gorm:"index" json:"away_team_id"`
	HomeName   string `json:"home_name"`
	AwayName   string `json:"away_name"`
	HomeGoals  int    `json:"home_goals"`
	AwayGoals  int    `json:"away_goals"`

	MatchTimeMs      uint64    `json:"match_time_ms"`
	AdditionalTimeMs uint64    `json:"additional_time_ms"`
	PlayedAt         time.Time `json:"played_at"`

	Goals []GoalRecord       `gorm:"constraint:OnDelete:CASCADE" json:"goals"`
	Stats []PlayerStatRecord `gorm:"constraint:OnDelete:CASCADE" json:"stats"`
}

// GoalRecord is one goal inside a match.
type GoalRecord struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	MatchRecordID uint   `gorm:"index" json:"match_record_id"`
	TeamID        int    `json:"team_id"`
	ScorerID      int    `json:"scorer_id"`
	TimeMs        uint64 `json:"time_ms"`
	AutoGoal      bool   `json:"auto_goal"`
}

// PlayerStatRecord is one player's line from a match.
type PlayerStatRecord struct {
	ID            uint `gorm:"primarykey" json:"id"`
	MatchRecordID uint `gorm:"index" json:"match_record_id"`

	PlayerID        int     `gorm:"index" json:"player_id"`
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

// Store wraps the database handle.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite database at path and migrates the
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	if err := db.AutoMigrate(&MatchRecord{}, &GoalRecord{}, &PlayerStatRecord{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveResult flattens a raw result into relational rows and stores them.
// Position samples are intentionally not persisted; replays re-run the seed.
func (s *Store) SaveResult(result *match.MatchResultRaw) (*MatchRecord, error) {
	home := result.Score.ByTeam(result.HomeSquad.TeamID)
	away := result.Score.ByTeam(result.AwaySquad.TeamID)

	rec := &MatchRecord{
		Seed:             result.Seed,
		HomeTeamID:       result.HomeSquad.TeamID,
		AwayTeamID:       result.AwaySquad.TeamID,
		HomeName:         result.HomeSquad.TeamName,
		AwayName:         result.AwaySquad.TeamName,
		HomeGoals:        home.Goals,
		AwayGoals:        away.Goals,
		MatchTimeMs:      result.MatchTimeMs,
		AdditionalTimeMs: result.AdditionalTimeMs,
		PlayedAt:         time.Now().UTC(),
	}
	for _, side := range []*match.TeamScore{home, away} {
		for _, g := range side.Details {
			if g.Kind != match.StatGoal {
				continue
			}
			rec.Goals = append(rec.Goals, GoalRecord{
				TeamID:   side.TeamID,
				ScorerID: g.PlayerID,
				TimeMs:   g.TimeMs,
				AutoGoal: g.AutoGoal,
			})
		}
	}
	for _, stats := range result.PlayerStats {
		rec.Stats = append(rec.Stats, PlayerStatRecord{
			PlayerID:        stats.PlayerID,
			TeamID:          stats.TeamID,
			Position:        stats.Position,
			Goals:           stats.Goals,
			Assists:         stats.Assists,
			PassesAttempted: stats.PassesAttempted,
			PassesCompleted: stats.PassesCompleted,
			ShotsTaken:      stats.ShotsTaken,
			ShotsOnTarget:   stats.ShotsOnTarget,
			Tackles:         stats.Tackles,
			Fouls:           stats.Fouls,
			Rating:          stats.Rating,
		})
	}

	if err := s.db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("save match: %w", err)
	}
	return rec, nil
}

// MatchByID loads one match with its goals and stat lines.
func (s *Store) MatchByID(id uint) (*MatchRecord, error) {
	var rec MatchRecord
	err := s.db.Preload("Goals").Preload("Stats").First(&rec, id).Error
	if err != nil {
		return nil, fmt.Errorf("load match %d: %w", id, err)
	}
	return &rec, nil
}

// RecentMatches lists the latest matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []MatchRecord
	err := s.db.Order("id desc").Limit(limit).Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return recs, nil
}

// MatchesForTeam lists every stored match a team took part in.
func (s *Store) MatchesForTeam(teamID int) ([]MatchRecord, error) {
	var recs []MatchRecord
	err := s.db.
		Where("home_team_id = ? OR away_team_id = ?", teamID, teamID).
		Order("id asc").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list matches for team %d: %w", teamID, err)
	}
	return recs, nil
}

// PlayerSeasonStats aggregates one player's lines across every stored match.
type PlayerSeasonStats struct {
	PlayerID  int     `json:"player_id"`
	Matches   int     `json:"matches"`
	Goals     int     `json:"goals"`
	Assists   int     `json:"assists"`
	Tackles   int     `json:"tackles"`
	Fouls     int     `json:"fouls"`
	AvgRating float64 `json:"avg_rating"`
}

// SeasonStats returns a player's aggregate line over all stored matches.
func (s *Store) SeasonStats(playerID int) (*PlayerSeasonStats, error) {
	var out PlayerSeasonStats
	err := s.db.Model(&PlayerStatRecord{}).
		Select("player_id, count(*) as matches, sum(goals) as goals, sum(assists) as assists, sum(tackles) as tackles, sum(fouls) as fouls, avg(rating) as avg_rating").
		Where("player_id = ?", playerID).
		Group("player_id").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("season stats for player %d: %w", playerID, err)
	}
	if out.Matches == 0 {
		return nil, fmt.Errorf("no stored matches for player %d", playerID)
	}
	return &out, nil
}

// AllMatches returns every stored match, oldest first; used to rebuild league
// tables.
func (s *Store) AllMatches() ([]MatchRecord, error) {
	var recs []MatchRecord
	if err := s.db.Order("id asc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list all matches: %w", err)
	}
	return recs, nil
}
