package match

import "sort"

// positionScore rates how well a player fits one formation slot: skill
// quality for the slot's group, scaled by positional familiarity.
func positionScore(p *MatchPlayer, slot PositionType) float64 {
	quality := groupSkillScore(p, slot.Group())
	familiarity := 0.6
	for _, natural := range p.NaturalPositions {
		if natural == slot {
			familiarity = 1.0
			break
		}
		if natural.Group() == slot.Group() && familiarity < 0.85 {
			familiarity = 0.85
		}
	}
	return quality * familiarity
}

// groupSkillScore is a 0..1 aggregate of the skills that matter for a
// position group.
func groupSkillScore(p *MatchPlayer, g PositionGroup) float64 {
	s := &p.Skills
	switch g {
	case GroupGoalkeeper:
		return 0.30*skillUnit(s.Physical.Agility) +
			0.25*skillUnit(s.Mental.Positioning) +
			0.20*skillUnit(s.Mental.Concentration) +
			0.15*skillUnit(s.Mental.Anticipation) +
			0.10*skillUnit(s.Physical.Jumping)
	case GroupDefender:
		return 0.30*skillUnit(s.Technical.Tackling) +
			0.25*skillUnit(s.Technical.Marking) +
			0.20*skillUnit(s.Mental.Positioning) +
			0.15*skillUnit(s.Physical.Strength) +
			0.10*skillUnit(s.Technical.Heading)
	case GroupMidfielder:
		return 0.30*skillUnit(s.Technical.Passing) +
			0.20*skillUnit(s.Mental.Vision) +
			0.20*skillUnit(s.Technical.Technique) +
			0.15*skillUnit(s.Mental.Decisions) +
			0.15*skillUnit(s.Physical.Stamina)
	default:
		return 0.35*skillUnit(s.Technical.Finishing) +
			0.20*skillUnit(s.Mental.OffTheBall) +
			0.20*skillUnit(s.Physical.Pace) +
			0.15*skillUnit(s.Technical.Dribbling) +
			0.10*skillUnit(s.Mental.Composure)
	}
}

// maxBenchSize bounds the bench to a standard matchday squad.
const maxBenchSize = 7

// SelectSquad picks the strongest eleven for the tactics from a player pool
// and fills the bench with the best of the rest. Selection is greedy per
// slot, goalkeeper first; deterministic via id tie-breaks.
func SelectSquad(teamID int, teamName string, pool []*MatchPlayer, tactics *Tactics) *MatchSquad {
	if tactics == nil {
		tactics = NewTactics(Formation442)
	}
	squad := &MatchSquad{TeamID: teamID, TeamName: teamName, Tactics: tactics}

	available := make([]*MatchPlayer, 0, len(pool))
	for _, p := range pool {
		if p != nil && !p.Attributes.IsInjured {
			available = append(available, p)
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })

	taken := make(map[int]bool, 11)
	for _, slot := range tactics.Positions() {
		var best *MatchPlayer
		bestScore := -1.0
		for _, p := range available {
			if taken[p.ID] {
				continue
			}
			// only a natural keeper goes in goal, and keepers stay there
			isKeeper := len(p.NaturalPositions) > 0 && p.NaturalPositions[0].Group() == GroupGoalkeeper
			if (slot.Group() == GroupGoalkeeper) != isKeeper {
				continue
			}
			if score := positionScore(p, slot); score > bestScore {
				best, bestScore = p, score
			}
		}
		if best == nil {
			// fallback: anyone left, ability first
			for _, p := range available {
				if taken[p.ID] && best != nil {
					continue
				}
				if !taken[p.ID] && (best == nil || p.Attributes.CurrentAbility > best.Attributes.CurrentAbility) {
					best = p
				}
			}
		}
		if best == nil {
			break
		}
		taken[best.ID] = true
		squad.MainSquad = append(squad.MainSquad, best)
	}

	rest := make([]*MatchPlayer, 0, len(available))
	for _, p := range available {
		if !taken[p.ID] {
			rest = append(rest, p)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		if rest[i].Attributes.CurrentAbility != rest[j].Attributes.CurrentAbility {
			return rest[i].Attributes.CurrentAbility > rest[j].Attributes.CurrentAbility
		}
		return rest[i].ID < rest[j].ID
	})
	if len(rest) > maxBenchSize {
		rest = rest[:maxBenchSize]
	}
	squad.Substitutes = rest
	return squad
}
