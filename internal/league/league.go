// Package league schedules round-robin fixtures and accumulates standings
// from stored match results.
package league

import (
	"fmt"
	"sort"
)

// Team is one league participant.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Fixture is one scheduled pairing.
type Fixture struct {
	Round      int `json:"round"`
	HomeTeamID int `json:"home_team_id"`
	AwayTeamID int `json:"away_team_id"`
}

// Result is the minimal outcome the table needs.
type Result struct {
	HomeTeamID int
	AwayTeamID int
	HomeGoals  int
	AwayGoals  int
}

// TableRow is one team's standing.
type TableRow struct {
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
}

func (r *TableRow) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// Fixtures builds a double round-robin schedule with the circle method. Each
// pair meets twice, home and away swapped in the return round. An odd team
// count gives everyone one bye per round.
func Fixtures(teams []Team) ([]Fixture, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("need at least 2 teams, have %d", len(teams))
	}

	ids := make([]int, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	// bye marker for odd team counts
	const bye = -1
	if len(ids)%2 == 1 {
		ids = append(ids, bye)
	}

	n := len(ids)
	rounds := n - 1
	half := n / 2
	var fixtures []Fixture
	for round := 0; round < rounds; round++ {
		for i := 0; i < half; i++ {
			a, b := ids[i], ids[n-1-i]
			if a == bye || b == bye {
				continue
			}
			// alternate home advantage so no team hosts every round
			if round%2 == 1 {
				a, b = b, a
			}
			fixtures = append(fixtures, Fixture{Round: round + 1, HomeTeamID: a, AwayTeamID: b})
		}
		// rotate all but the first entry
		ids = append(ids[:1], append([]int{ids[n-1]}, ids[1:n-1]...)...)
	}

	// return legs
	total := len(fixtures)
	for i := 0; i < total; i++ {
		f := fixtures[i]
		fixtures = append(fixtures, Fixture{
			Round:      f.Round + rounds,
			HomeTeamID: f.AwayTeamID,
			AwayTeamID: f.HomeTeamID,
		})
	}
	return fixtures, nil
}

// Table folds results into standings. Ordering is points, then goal
// difference, then goals scored, then team id for a stable tie-break.
func Table(teams []Team, results []Result) []TableRow {
	rows := make(map[int]*TableRow, len(teams))
	for _, t := range teams {
		rows[t.ID] = &TableRow{TeamID: t.ID, TeamName: t.Name}
	}

	apply := func(teamID, scored, conceded int) {
		row, ok := rows[teamID]
		if !ok {
			return
		}
		row.Played++
		row.GoalsFor += scored
		row.GoalsAgainst += conceded
		switch {
		case scored > conceded:
			row.Won++
			row.Points += 3
		case scored == conceded:
			row.Drawn++
			row.Points++
		default:
			row.Lost++
		}
	}
	for _, r := range results {
		apply(r.HomeTeamID, r.HomeGoals, r.AwayGoals)
		apply(r.AwayTeamID, r.AwayGoals, r.HomeGoals)
	}

	out := make([]TableRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDifference() != out[j].GoalDifference() {
			return out[i].GoalDifference() > out[j].GoalDifference()
		}
		if out[i].GoalsFor != out[j].GoalsFor {
			return out[i].GoalsFor > out[j].GoalsFor
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}
