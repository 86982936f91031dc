package squadgen

import (
	"math/rand"
	"testing"

	"football-sim/internal/match"
)

// TestGenerateFillsSquad verifies a generated squad has eleven starters and a
// bench drawn from the pool.
func TestGenerateFillsSquad(t *testing.T) {
	squad := Generate(Config{
		TeamID:        1,
		TeamName:      "Testers",
		Formation:     match.Formation442,
		BaseQuality:   12,
		FirstPlayerID: 1,
	}, rand.New(rand.NewSource(1)))

	if len(squad.MainSquad) != 11 {
		t.Fatalf("Expected 11 starters, got %d", len(squad.MainSquad))
	}
	if len(squad.Substitutes) == 0 {
		t.Error("Expected a non-empty bench")
	}
	if squad.TeamID != 1 || squad.TeamName != "Testers" {
		t.Errorf("Squad identity wrong: %d %q", squad.TeamID, squad.TeamName)
	}
}

// TestGenerateKeeperInGoal verifies the first slot is a natural keeper.
func TestGenerateKeeperInGoal(t *testing.T) {
	for _, formation := range []match.FormationType{
		match.Formation442, match.Formation433, match.Formation352,
	} {
		squad := Generate(Config{
			TeamID:        1,
			TeamName:      "Testers",
			Formation:     formation,
			BaseQuality:   12,
			FirstPlayerID: 1,
		}, rand.New(rand.NewSource(3)))

		gk := squad.MainSquad[0]
		if gk.NaturalPositions[0] != match.PositionGoalkeeper {
			t.Errorf("Formation %v: player %d in goal is not a keeper", formation, gk.ID)
		}
	}
}

// TestGenerateDeterministic verifies the same seed yields the same squad,
// player for player.
func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{
		TeamID:        2,
		TeamName:      "Repeaters",
		Formation:     match.Formation433,
		BaseQuality:   14,
		FirstPlayerID: 101,
	}

	a := Generate(cfg, rand.New(rand.NewSource(42)))
	b := Generate(cfg, rand.New(rand.NewSource(42)))

	if len(a.MainSquad) != len(b.MainSquad) {
		t.Fatalf("Starter counts differ: %d vs %d", len(a.MainSquad), len(b.MainSquad))
	}
	for i := range a.MainSquad {
		pa, pb := a.MainSquad[i], b.MainSquad[i]
		if pa.ID != pb.ID || pa.FullName != pb.FullName {
			t.Errorf("Slot %d differs: %d %q vs %d %q", i, pa.ID, pa.FullName, pb.ID, pb.FullName)
		}
		if pa.Skills != pb.Skills {
			t.Errorf("Slot %d skills differ under the same seed", i)
		}
	}
}

// TestGenerateSkillBounds verifies every rolled skill stays on the 1..20
// scale even at the quality extremes.
func TestGenerateSkillBounds(t *testing.T) {
	for _, quality := range []float64{0, 6, 18, 99} {
		squad := Generate(Config{
			TeamID:        1,
			TeamName:      "Bounds",
			Formation:     match.Formation442,
			BaseQuality:   quality,
			FirstPlayerID: 1,
		}, rand.New(rand.NewSource(9)))

		for _, p := range append(squad.MainSquad, squad.Substitutes...) {
			for name, v := range map[string]float64{
				"passing":   p.Skills.Technical.Passing,
				"finishing": p.Skills.Technical.Finishing,
				"pace":      p.Skills.Physical.Pace,
				"stamina":   p.Skills.Physical.Stamina,
				"decisions": p.Skills.Mental.Decisions,
				"jumping":   p.Skills.Physical.Jumping,
			} {
				if v < 1 || v > 20 {
					t.Errorf("Quality %.0f: player %d %s = %f out of range", quality, p.ID, name, v)
				}
			}
		}
	}
}

// TestGenerateIDNumbering verifies players are numbered consecutively from
// the configured first id with no collisions.
func TestGenerateIDNumbering(t *testing.T) {
	squad := Generate(Config{
		TeamID:        2,
		TeamName:      "Away",
		Formation:     match.Formation442,
		BaseQuality:   12,
		FirstPlayerID: 101,
	}, rand.New(rand.NewSource(5)))

	seen := map[int]bool{}
	for _, p := range append(squad.MainSquad, squad.Substitutes...) {
		if p.ID < 101 {
			t.Errorf("Player id %d below the configured start", p.ID)
		}
		if seen[p.ID] {
			t.Errorf("Duplicate player id %d", p.ID)
		}
		seen[p.ID] = true
		if p.TeamID != 2 {
			t.Errorf("Player %d carries team %d", p.ID, p.TeamID)
		}
	}
}
