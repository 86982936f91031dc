package match

import (
	"testing"

	"football-sim/internal/match/vector"
)

// TestDeltaCompression verifies samples are only recorded on real movement.
func TestDeltaCompression(t *testing.T) {
	data := NewResultMatchPositionData()

	data.AddBallPosition(10, vector.New2D(100, 100))
	data.AddBallPosition(20, vector.New2D(100, 100))      // no movement, dropped
	data.AddBallPosition(30, vector.New2D(100.05, 100))   // below threshold, dropped
	data.AddBallPosition(40, vector.New2D(105, 100))      // kept
	data.AddBallPosition(40, vector.New2D(200, 200))      // duplicate timestamp, dropped
	data.AddBallPosition(50, vector.New2D(110, 100))      // kept

	if len(data.Ball) != 3 {
		t.Fatalf("Expected 3 samples after compression, got %d", len(data.Ball))
	}

	prev := uint64(0)
	for i, s := range data.Ball {
		if i > 0 && s.TimestampMs <= prev {
			t.Errorf("Timestamps not strictly increasing at %d: %d after %d", i, s.TimestampMs, prev)
		}
		prev = s.TimestampMs
	}
}

// TestPositionLookup verifies the binary-search lookup picks the latest
// sample at or before the query time.
func TestPositionLookup(t *testing.T) {
	data := NewResultMatchPositionData()
	data.AddPlayerPosition(7, 100, vector.New2D(10, 10))
	data.AddPlayerPosition(7, 200, vector.New2D(20, 10))
	data.AddPlayerPosition(7, 300, vector.New2D(30, 10))

	tests := []struct {
		name    string
		t       uint64
		wantX   float64
		wantOK  bool
	}{
		{"before first sample", 50, 10, false},
		{"exactly first", 100, 10, true},
		{"between samples", 250, 20, true},
		{"exactly last", 300, 30, true},
		{"after last", 9999, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := data.PlayerPositionAt(7, tt.t)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && pos.X != tt.wantX {
				t.Errorf("Expected x=%f, got %f", tt.wantX, pos.X)
			}
		})
	}
}

// TestLookupUnknownPlayer verifies lookups for absent players fail cleanly.
func TestLookupUnknownPlayer(t *testing.T) {
	data := NewResultMatchPositionData()
	if _, ok := data.PlayerPositionAt(42, 100); ok {
		t.Error("Expected no position for unknown player")
	}
	if _, ok := data.BallPositionAt(100); ok {
		t.Error("Expected no ball position in empty data")
	}
}

// TestScoreByTeam verifies score lookups are team-keyed and survive any
// notion of pitch side.
func TestScoreByTeam(t *testing.T) {
	score := NewScore(10, 20)
	score.ByTeam(20).AddGoal(GoalDetail{PlayerID: 5, TimeMs: 1000})

	if score.Away.Goals != 1 {
		t.Errorf("Expected away goals 1, got %d", score.Away.Goals)
	}
	if score.ByTeam(10).Goals != 0 {
		t.Errorf("Expected home goals 0, got %d", score.ByTeam(10).Goals)
	}
	if score.Opponent(10) != score.Away {
		t.Error("Opponent(10) should be the away score")
	}
	if score.Opponent(20) != score.Home {
		t.Error("Opponent(20) should be the home score")
	}
}

// TestTeamScoreDetails verifies AddGoal forces the goal kind and the derived
// count matches the counter.
func TestTeamScoreDetails(t *testing.T) {
	ts := &TeamScore{TeamID: 1}
	ts.AddGoal(GoalDetail{PlayerID: 3, Kind: StatAssist, TimeMs: 500})
	ts.AddAssist(4, 500)

	if ts.Goals != 1 || ts.GoalCount() != 1 {
		t.Errorf("Expected one goal, counter=%d derived=%d", ts.Goals, ts.GoalCount())
	}
	if ts.Details[0].Kind != StatGoal {
		t.Error("AddGoal must force the goal kind")
	}
}
