package match

// RatingInput is everything the rating formula consumes.
type RatingInput struct {
	Group        PositionGroup
	Stats        *MatchPlayerStatistics
	GoalsFor     int
	GoalsAgainst int
}

// CalculateMatchRating scores a player's match on the 1.0..10.0 scale,
// starting from the 6.0 baseline.
func CalculateMatchRating(in RatingInput) float64 {
	rating := 6.0
	stats := in.Stats

	goalBonus := float64(stats.Goals()) * 1.0
	if goalBonus > 3.0 {
		goalBonus = 3.0
	}
	rating += goalBonus

	assistBonus := float64(stats.Assists()) * 0.5
	if assistBonus > 1.5 {
		assistBonus = 1.5
	}
	rating += assistBonus

	if stats.PassesAttempted > 5 {
		pct := float64(stats.PassesCompleted) / float64(stats.PassesAttempted)
		rating += clampFloat((pct-0.70)*2.0, -0.4, 0.5)
	}

	if stats.ShotsTaken > 0 {
		accuracy := float64(stats.ShotsOnTarget) / float64(stats.ShotsTaken)
		rating += clampFloat((accuracy-0.4)*0.6, -0.2, 0.3)
	}

	tackleWeight := 0.05
	switch in.Group {
	case GroupDefender:
		tackleWeight = 0.12
	case GroupMidfielder:
		tackleWeight = 0.08
	}
	tackleBonus := float64(stats.Tackles) * tackleWeight
	if tackleBonus > 0.5 {
		tackleBonus = 0.5
	}
	rating += tackleBonus

	if in.GoalsFor > in.GoalsAgainst {
		rating += 0.3
	} else if in.GoalsFor < in.GoalsAgainst {
		rating -= 0.2
	}

	if in.GoalsAgainst == 0 {
		switch in.Group {
		case GroupGoalkeeper:
			rating += 0.8
		case GroupDefender:
			rating += 0.4
		case GroupMidfielder:
			rating += 0.1
		}
	} else if in.GoalsAgainst >= 3 {
		switch in.Group {
		case GroupGoalkeeper:
			rating -= 0.5
		case GroupDefender:
			rating -= 0.3
		}
	}

	return clampFloat(rating, 1.0, 10.0)
}
