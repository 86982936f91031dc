package match

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// uniformSkills builds a skill set with every value at the given level.
func uniformSkills(level float64) PlayerSkills {
	return PlayerSkills{
		Technical: TechnicalSkills{
			Corners: level, Crossing: level, Dribbling: level, Finishing: level,
			FirstTouch: level, FreeKicks: level, Heading: level, LongShots: level,
			LongThrows: level, Marking: level, Passing: level, PenaltyTaking: level,
			Tackling: level, Technique: level,
		},
		Mental: MentalSkills{
			Aggression: level, Anticipation: level, Bravery: level, Composure: level,
			Concentration: level, Decisions: level, Determination: level, Flair: level,
			Leadership: level, OffTheBall: level, Positioning: level, Teamwork: level,
			Vision: level, WorkRate: level,
		},
		Physical: PhysicalSkills{
			Acceleration: level, Agility: level, Balance: level, Jumping: level,
			NaturalFitness: level, Pace: level, Stamina: level, Strength: level,
		},
	}
}

func testPlayer(id, teamID int, level float64) *MatchPlayer {
	return NewMatchPlayer(id, teamID, "Test Player", uniformSkills(level), PlayerAttributes{
		Condition:      MaxConditionValue,
		Fitness:        MaxConditionValue,
		CurrentAbility: level,
	})
}

// testSquad builds a full 4-4-2 squad with three bench players. Player ids
// start at firstID.
func testSquad(teamID, firstID int, level float64) *MatchSquad {
	tactics := NewTactics(Formation442)
	squad := &MatchSquad{
		TeamID:   teamID,
		TeamName: "Team",
		Tactics:  tactics,
	}
	id := firstID
	for _, pos := range tactics.Positions() {
		p := testPlayer(id, teamID, level)
		p.NaturalPositions = []PositionType{pos}
		squad.MainSquad = append(squad.MainSquad, p)
		id++
	}
	benchPositions := []PositionType{PositionDefenderCenter, PositionMidfielderCenter, PositionStriker}
	for _, pos := range benchPositions {
		p := testPlayer(id, teamID, level)
		p.NaturalPositions = []PositionType{pos}
		squad.Substitutes = append(squad.Substitutes, p)
		id++
	}
	return squad
}

// testContext builds a minimal match world for unit tests.
func testContext(seed int64) *MatchContext {
	rng := rand.New(rand.NewSource(seed))
	return NewMatchContext(1, 2, HalfDurationMs, rng, zerolog.Nop())
}

// shortMatchConfig keeps full-match tests fast: two one-minute halves.
func shortMatchConfig(seed int64) PlayConfig {
	return PlayConfig{
		Seed:           seed,
		HalfDurationMs: 60 * 1000,
		Logger:         zerolog.Nop(),
	}
}

// TestPlayProducesValidResult verifies a full match finishes and the result
// is internally consistent.
func TestPlayProducesValidResult(t *testing.T) {
	home := testSquad(1, 1, 12)
	away := testSquad(2, 101, 12)

	result := NewEngine(shortMatchConfig(42)).Play(home, away)

	if result == nil {
		t.Fatal("Play returned nil")
	}
	if result.Score == nil {
		t.Fatal("result has no score")
	}
	if result.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", result.Seed)
	}
	if result.MatchTimeMs < 2*60*1000 {
		t.Errorf("Expected at least two full halves, got %d ms", result.MatchTimeMs)
	}
	if result.Score.Home.Goals != result.Score.Home.GoalCount() {
		t.Errorf("Home goal counter (%d) disagrees with details (%d)",
			result.Score.Home.Goals, result.Score.Home.GoalCount())
	}
	if len(result.PlayerStats) != 28 {
		t.Errorf("Expected stats for all 28 players, got %d", len(result.PlayerStats))
	}
	for id, stats := range result.PlayerStats {
		if stats.Rating < 1.0 || stats.Rating > 10.0 {
			t.Errorf("Player %d rating %.2f out of [1,10]", id, stats.Rating)
		}
	}
	if len(result.PositionData.Ball) == 0 {
		t.Error("Expected ball position samples")
	}
}

// TestPlayIsDeterministic verifies the same seed and squads replay the exact
// same match.
func TestPlayIsDeterministic(t *testing.T) {
	run := func() *MatchResultRaw {
		home := testSquad(1, 1, 12)
		away := testSquad(2, 101, 14)
		return NewEngine(shortMatchConfig(7)).Play(home, away)
	}

	a := run()
	b := run()

	if a.Score.Home.Goals != b.Score.Home.Goals || a.Score.Away.Goals != b.Score.Away.Goals {
		t.Fatalf("Scores differ between runs: %d-%d vs %d-%d",
			a.Score.Home.Goals, a.Score.Away.Goals, b.Score.Home.Goals, b.Score.Away.Goals)
	}
	if len(a.PositionData.Ball) != len(b.PositionData.Ball) {
		t.Fatalf("Ball sample counts differ: %d vs %d",
			len(a.PositionData.Ball), len(b.PositionData.Ball))
	}
	for i := range a.PositionData.Ball {
		sa, sb := a.PositionData.Ball[i], b.PositionData.Ball[i]
		if sa.TimestampMs != sb.TimestampMs || sa.Position != sb.Position {
			t.Fatalf("Ball sample %d differs: %+v vs %+v", i, sa, sb)
		}
	}
	for id, sa := range a.PlayerStats {
		if sb := b.PlayerStats[id]; sa != sb {
			t.Fatalf("Player %d stats differ: %+v vs %+v", id, sa, sb)
		}
	}
	if len(a.Substitutions) != len(b.Substitutions) {
		t.Fatalf("Substitution counts differ: %d vs %d", len(a.Substitutions), len(b.Substitutions))
	}
}

// TestDifferentSeedsDiverge verifies seeds actually influence the simulation.
func TestDifferentSeedsDiverge(t *testing.T) {
	run := func(seed int64) *MatchResultRaw {
		return NewEngine(shortMatchConfig(seed)).Play(testSquad(1, 1, 12), testSquad(2, 101, 12))
	}

	a := run(1)
	b := run(2)

	if len(a.PositionData.Ball) == len(b.PositionData.Ball) {
		same := true
		for i := range a.PositionData.Ball {
			if a.PositionData.Ball[i] != b.PositionData.Ball[i] {
				same = false
				break
			}
		}
		if same {
			t.Error("Different seeds produced identical ball trajectories")
		}
	}
}

// TestSubstitutionLimit verifies neither team exceeds the substitution cap.
func TestSubstitutionLimit(t *testing.T) {
	result := NewEngine(shortMatchConfig(3)).Play(testSquad(1, 1, 12), testSquad(2, 101, 12))

	used := map[int]int{}
	for _, sub := range result.Substitutions {
		used[sub.TeamID]++
	}
	for teamID, n := range used {
		if n > MaxSubstitutions {
			t.Errorf("Team %d made %d substitutions, cap is %d", teamID, n, MaxSubstitutions)
		}
	}
}

// TestStoppageTimeCap verifies derived stoppage time never exceeds five
// minutes.
func TestStoppageTimeCap(t *testing.T) {
	engine := NewEngine(shortMatchConfig(1))
	ctx := testContext(1)

	for i := 0; i < 20; i++ {
		ctx.Score.Home.AddGoal(GoalDetail{PlayerID: 1, TimeMs: uint64(i)})
	}

	extra := engine.stoppageTime(ctx)
	if extra != maxAdditionalTimeMs {
		t.Errorf("Expected stoppage capped at %d ms, got %d", maxAdditionalTimeMs, extra)
	}
}

// TestFindBestSubstituteKeeperRule verifies goalkeepers are only replaced by
// goalkeepers.
func TestFindBestSubstituteKeeperRule(t *testing.T) {
	engine := NewEngine(shortMatchConfig(1))
	ctx := testContext(1)

	gk := testPlayer(1, 1, 12)
	gk.SetupOnField(PositionGoalkeeper, SideLeft)
	gk.OnField = true
	ctx.Players.Add(gk)

	// bench has only an outfield player
	outfield := testPlayer(2, 1, 15)
	outfield.NaturalPositions = []PositionType{PositionStriker}
	outfield.Tactical = NewTacticalPosition(PositionStriker, SideLeft)
	ctx.Players.Add(outfield)

	if sub := engine.findBestSubstitute(ctx, gk); sub != nil {
		t.Errorf("Expected no substitute for keeper, got player %d", sub.ID)
	}

	// add a backup keeper; now the swap is allowed
	backup := testPlayer(3, 1, 10)
	backup.NaturalPositions = []PositionType{PositionGoalkeeper}
	backup.Tactical = NewTacticalPosition(PositionGoalkeeper, SideLeft)
	ctx.Players.Add(backup)

	sub := engine.findBestSubstitute(ctx, gk)
	if sub == nil || sub.ID != 3 {
		t.Errorf("Expected backup keeper 3, got %v", sub)
	}
}

// TestTickObserver verifies the snapshot hook fires at the configured cadence.
func TestTickObserver(t *testing.T) {
	cfg := shortMatchConfig(5)
	var snapshots int
	cfg.TickObserver = func(snap TickSnapshot) {
		snapshots++
		if len(snap.Players) != 22 {
			t.Fatalf("Expected 22 players in snapshot, got %d", len(snap.Players))
		}
	}
	cfg.ObserveEveryTicks = 100

	NewEngine(cfg).Play(testSquad(1, 1, 12), testSquad(2, 101, 12))

	if snapshots == 0 {
		t.Error("Tick observer never fired")
	}
}
