package league

import "testing"

func teams(n int) []Team {
	out := make([]Team, n)
	for i := range out {
		out[i] = Team{ID: i + 1, Name: string(rune('A' + i))}
	}
	return out
}

// TestFixturesRejectsTooFewTeams verifies scheduling needs at least two
// participants.
func TestFixturesRejectsTooFewTeams(t *testing.T) {
	if _, err := Fixtures(teams(1)); err == nil {
		t.Error("Expected an error for a one-team league")
	}
	if _, err := Fixtures(nil); err == nil {
		t.Error("Expected an error for an empty league")
	}
}

// TestFixturesEveryPairTwice verifies a double round-robin: each pair meets
// exactly twice with home advantage swapped.
func TestFixturesEveryPairTwice(t *testing.T) {
	for _, n := range []int{2, 4, 5, 6} {
		fixtures, err := Fixtures(teams(n))
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		want := n * (n - 1)
		if len(fixtures) != want {
			t.Fatalf("n=%d: expected %d fixtures, got %d", n, want, len(fixtures))
		}

		type pairing struct{ home, away int }
		seen := map[pairing]int{}
		for _, f := range fixtures {
			if f.HomeTeamID == f.AwayTeamID {
				t.Fatalf("n=%d: team %d plays itself", n, f.HomeTeamID)
			}
			seen[pairing{f.HomeTeamID, f.AwayTeamID}]++
		}
		for p, count := range seen {
			if count != 1 {
				t.Errorf("n=%d: pairing %v scheduled %d times", n, p, count)
			}
			if seen[pairing{p.away, p.home}] != 1 {
				t.Errorf("n=%d: missing return leg for %v", n, p)
			}
		}
	}
}

// TestFixturesRoundLoad verifies no team appears twice in one round.
func TestFixturesRoundLoad(t *testing.T) {
	fixtures, err := Fixtures(teams(6))
	if err != nil {
		t.Fatal(err)
	}

	byRound := map[int]map[int]bool{}
	for _, f := range fixtures {
		if byRound[f.Round] == nil {
			byRound[f.Round] = map[int]bool{}
		}
		for _, id := range []int{f.HomeTeamID, f.AwayTeamID} {
			if byRound[f.Round][id] {
				t.Errorf("Team %d plays twice in round %d", id, f.Round)
			}
			byRound[f.Round][id] = true
		}
	}
}

// TestFixturesOddTeamByes verifies odd counts schedule one bye per round with
// no phantom opponent leaking into the fixtures.
func TestFixturesOddTeamByes(t *testing.T) {
	fixtures, err := Fixtures(teams(5))
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range fixtures {
		if f.HomeTeamID < 1 || f.AwayTeamID < 1 {
			t.Fatalf("Bye marker leaked into fixture %+v", f)
		}
	}
	// 5 teams, double round robin: 5*4 = 20 fixtures over 10 rounds of 2
	if len(fixtures) != 20 {
		t.Errorf("Expected 20 fixtures, got %d", len(fixtures))
	}
}

// TestTableOrdering verifies the standings sort by points, goal difference,
// goals scored, then team id.
func TestTableOrdering(t *testing.T) {
	ts := teams(4)
	results := []Result{
		{HomeTeamID: 1, AwayTeamID: 2, HomeGoals: 3, AwayGoals: 0}, // 1 wins
		{HomeTeamID: 3, AwayTeamID: 4, HomeGoals: 2, AwayGoals: 0}, // 3 wins
		{HomeTeamID: 2, AwayTeamID: 4, HomeGoals: 1, AwayGoals: 1}, // draw
	}

	rows := Table(ts, results)
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}

	// 1 and 3 both have 3 points; 1 leads on goal difference (+3 vs +2)
	if rows[0].TeamID != 1 || rows[1].TeamID != 3 {
		t.Errorf("Expected order 1,3 at the top, got %d,%d", rows[0].TeamID, rows[1].TeamID)
	}
	// 2 and 4 both have 1 point; 4 leads on goal difference (-2 vs -3)
	if rows[2].TeamID != 4 || rows[3].TeamID != 2 {
		t.Errorf("Expected order 4,2 at the bottom, got %d,%d", rows[2].TeamID, rows[3].TeamID)
	}

	if rows[0].Points != 3 || rows[0].Won != 1 || rows[0].Played != 1 {
		t.Errorf("Winner row wrong: %+v", rows[0])
	}
	if rows[2].Drawn != 1 || rows[2].Points != 1 {
		t.Errorf("Draw row wrong: %+v", rows[2])
	}
}

// TestTableIgnoresUnknownTeams verifies results against teams outside the
// league do not create rows.
func TestTableIgnoresUnknownTeams(t *testing.T) {
	rows := Table(teams(2), []Result{
		{HomeTeamID: 1, AwayTeamID: 99, HomeGoals: 2, AwayGoals: 1},
	})

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].TeamID != 1 || rows[0].Points != 3 {
		t.Errorf("Known team should still get the win: %+v", rows[0])
	}
}
