// Package squadgen builds plausible random squads for simulations, demos and
// tests. All randomness comes from the caller's generator, so a seeded source
// yields the same squad every time.
package squadgen

import (
	"fmt"
	"math/rand"

	"football-sim/internal/match"
)

var firstNames = []string{
	"Alex", "Bruno", "Carlos", "Diego", "Emil", "Felix", "Gabriel", "Hugo",
	"Ivan", "Jonas", "Kevin", "Luca", "Marco", "Nico", "Oscar", "Pablo",
	"Rafael", "Sergio", "Thiago", "Victor",
}

var lastNames = []string{
	"Almeida", "Becker", "Costa", "Dias", "Eriksen", "Ferreira", "Gomez",
	"Hansen", "Ibarra", "Jensen", "Keller", "Lopez", "Martins", "Nielsen",
	"Oliveira", "Pereira", "Ramos", "Silva", "Torres", "Vargas",
}

// poolPlan is how many players of each role a generated pool carries: enough
// to fill any formation plus a full bench.
var poolPlan = []struct {
	position match.PositionType
	count    int
}{
	{match.PositionGoalkeeper, 2},
	{match.PositionDefenderLeft, 1},
	{match.PositionDefenderCenterLeft, 2},
	{match.PositionDefenderCenter, 1},
	{match.PositionDefenderCenterRight, 2},
	{match.PositionDefenderRight, 1},
	{match.PositionDefensiveMidfielder, 1},
	{match.PositionMidfielderLeft, 1},
	{match.PositionMidfielderCenterLeft, 1},
	{match.PositionMidfielderCenter, 1},
	{match.PositionMidfielderCenterRight, 1},
	{match.PositionMidfielderRight, 1},
	{match.PositionAttackingMidfielderCenter, 1},
	{match.PositionForwardLeft, 1},
	{match.PositionStriker, 1},
	{match.PositionForwardRight, 1},
}

// Config controls one generated squad.
type Config struct {
	TeamID    int
	TeamName  string
	Formation match.FormationType

	// BaseQuality centers skill rolls on the 1..20 scale; 12 gives a solid
	// mid-table side. Clamped to [6, 18].
	BaseQuality float64

	// FirstPlayerID numbers players consecutively from this id. Ids must be
	// globally unique across both squads of a match.
	FirstPlayerID int
}

// Generate builds a full matchday squad from the config, drawing every roll
// from rng.
func Generate(cfg Config, rng *rand.Rand) *match.MatchSquad {
	base := cfg.BaseQuality
	if base < 6 {
		base = 6
	}
	if base > 18 {
		base = 18
	}

	pool := make([]*match.MatchPlayer, 0, 20)
	id := cfg.FirstPlayerID
	for _, slot := range poolPlan {
		for i := 0; i < slot.count; i++ {
			pool = append(pool, generatePlayer(id, cfg.TeamID, slot.position, base, rng))
			id++
		}
	}

	return match.SelectSquad(cfg.TeamID, cfg.TeamName, pool, match.NewTactics(cfg.Formation))
}

func generatePlayer(id, teamID int, position match.PositionType, base float64, rng *rand.Rand) *match.MatchPlayer {
	name := fmt.Sprintf("%s %s",
		firstNames[rng.Intn(len(firstNames))],
		lastNames[rng.Intn(len(lastNames))])

	skills := match.PlayerSkills{
		Technical: match.TechnicalSkills{
			Corners:       roll(base, rng),
			Crossing:      roll(base, rng),
			Dribbling:     roll(base, rng),
			Finishing:     roll(base, rng),
			FirstTouch:    roll(base, rng),
			FreeKicks:     roll(base, rng),
			Heading:       roll(base, rng),
			LongShots:     roll(base, rng),
			LongThrows:    roll(base, rng),
			Marking:       roll(base, rng),
			Passing:       roll(base, rng),
			PenaltyTaking: roll(base, rng),
			Tackling:      roll(base, rng),
			Technique:     roll(base, rng),
		},
		Mental: match.MentalSkills{
			Aggression:    roll(base, rng),
			Anticipation:  roll(base, rng),
			Bravery:       roll(base, rng),
			Composure:     roll(base, rng),
			Concentration: roll(base, rng),
			Decisions:     roll(base, rng),
			Determination: roll(base, rng),
			Flair:         roll(base, rng),
			Leadership:    roll(base, rng),
			OffTheBall:    roll(base, rng),
			Positioning:   roll(base, rng),
			Teamwork:      roll(base, rng),
			Vision:        roll(base, rng),
			WorkRate:      roll(base, rng),
		},
		Physical: match.PhysicalSkills{
			Acceleration:   roll(base, rng),
			Agility:        roll(base, rng),
			Balance:        roll(base, rng),
			Jumping:        roll(base, rng),
			NaturalFitness: roll(base, rng),
			Pace:           roll(base, rng),
			Stamina:        roll(base, rng),
			Strength:       roll(base, rng),
		},
	}
	boostForRole(&skills, position.Group(), rng)

	p := match.NewMatchPlayer(id, teamID, name, skills, match.PlayerAttributes{
		Condition:      match.MaxConditionValue,
		Fitness:        match.MaxConditionValue,
		Jadedness:      rng.Intn(2000),
		CurrentAbility: abilityFrom(&skills),
	})
	p.NaturalPositions = []match.PositionType{position}
	return p
}

// roll draws a skill around the base quality with a spread of about three
// points either way.
func roll(base float64, rng *rand.Rand) float64 {
	v := base + rng.NormFloat64()*1.8
	if v < 1 {
		v = 1
	}
	if v > 20 {
		v = 20
	}
	return v
}

// boostForRole bumps the skills a role depends on so generated players feel
// like specialists rather than uniform all-rounders.
func boostForRole(s *match.PlayerSkills, g match.PositionGroup, rng *rand.Rand) {
	bump := func(v *float64) {
		*v += 2 + rng.Float64()*2
		if *v > 20 {
			*v = 20
		}
	}
	switch g {
	case match.GroupGoalkeeper:
		bump(&s.Physical.Agility)
		bump(&s.Mental.Positioning)
		bump(&s.Mental.Concentration)
		bump(&s.Physical.Jumping)
	case match.GroupDefender:
		bump(&s.Technical.Tackling)
		bump(&s.Technical.Marking)
		bump(&s.Physical.Strength)
		bump(&s.Technical.Heading)
	case match.GroupMidfielder:
		bump(&s.Technical.Passing)
		bump(&s.Mental.Vision)
		bump(&s.Technical.Technique)
		bump(&s.Physical.Stamina)
	case match.GroupForward:
		bump(&s.Technical.Finishing)
		bump(&s.Mental.OffTheBall)
		bump(&s.Physical.Pace)
		bump(&s.Technical.Dribbling)
	}
}

func abilityFrom(s *match.PlayerSkills) float64 {
	sum := s.Technical.Passing + s.Technical.Tackling + s.Technical.Finishing +
		s.Technical.Technique + s.Mental.Decisions + s.Mental.Positioning +
		s.Mental.Vision + s.Physical.Pace + s.Physical.Stamina + s.Physical.Strength
	return sum / 10
}
