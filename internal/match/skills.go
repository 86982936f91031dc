package match

// Skill values are on the 1..20 scale.

type TechnicalSkills struct {
	Corners       float64 `json:"corners"`
	Crossing      float64 `json:"crossing"`
	Dribbling     float64 `json:"dribbling"`
	Finishing     float64 `json:"finishing"`
	FirstTouch    float64 `json:"first_touch"`
	FreeKicks     float64 `json:"free_kicks"`
	Heading       float64 `json:"heading"`
	LongShots     float64 `json:"long_shots"`
	LongThrows    float64 `json:"long_throws"`
	Marking       float64 `json:"marking"`
	Passing       float64 `json:"passing"`
	PenaltyTaking float64 `json:"penalty_taking"`
	Tackling      float64 `json:"tackling"`
	Technique     float64 `json:"technique"`
}

type MentalSkills struct {
	Aggression    float64 `json:"aggression"`
	Anticipation  float64 `json:"anticipation"`
	Bravery       float64 `json:"bravery"`
	Composure     float64 `json:"composure"`
	Concentration float64 `json:"concentration"`
	Decisions     float64 `json:"decisions"`
	Determination float64 `json:"determination"`
	Flair         float64 `json:"flair"`
	Leadership    float64 `json:"leadership"`
	OffTheBall    float64 `json:"off_the_ball"`
	Positioning   float64 `json:"positioning"`
	Teamwork      float64 `json:"teamwork"`
	Vision        float64 `json:"vision"`
	WorkRate      float64 `json:"work_rate"`
}

type PhysicalSkills struct {
	Acceleration   float64 `json:"acceleration"`
	Agility        float64 `json:"agility"`
	Balance        float64 `json:"balance"`
	Jumping        float64 `json:"jumping"`
	NaturalFitness float64 `json:"natural_fitness"`
	Pace           float64 `json:"pace"`
	Stamina        float64 `json:"stamina"`
	Strength       float64 `json:"strength"`
}

type PlayerSkills struct {
	Technical TechnicalSkills `json:"technical"`
	Mental    MentalSkills    `json:"mental"`
	Physical  PhysicalSkills  `json:"physical"`
}

// skillUnit maps a 1..20 skill onto [0, 1].
func skillUnit(skill float64) float64 {
	if skill < 1 {
		skill = 1
	}
	if skill > 20 {
		skill = 20
	}
	return (skill - 1.0) / 19.0
}

// skillFactor maps a 1..20 skill onto a [0.8, 1.8] multiplier for steering.
func skillFactor(skill float64) float64 {
	return 0.8 + skillUnit(skill)
}

// MaxSpeed is the player's top speed in field units per tick, from physical
// skills alone.
func (s *PlayerSkills) MaxSpeed() float64 {
	return 1.3 * (0.6*skillUnit(s.Physical.Pace) +
		0.2*skillUnit(s.Physical.Acceleration) +
		0.1*skillUnit(s.Physical.Agility) +
		0.1*skillUnit(s.Physical.Balance))
}

// conditionSpeedFloor keeps an exhausted player at half speed rather than
// stationary.
const conditionSpeedFloor = 0.5

// MaxSpeedWithCondition scales MaxSpeed by the current condition; the factor
// is clamped to [0.5, 1.0].
func (s *PlayerSkills) MaxSpeedWithCondition(condition int) float64 {
	factor := conditionSpeedFloor + 0.5*float64(condition)/float64(MaxConditionValue)
	if factor > 1.0 {
		factor = 1.0
	}
	if factor < conditionSpeedFloor {
		factor = conditionSpeedFloor
	}
	return s.MaxSpeed() * factor
}

// PlayerAttributes is the mutable per-match physical record.
type PlayerAttributes struct {
	Condition      int     `json:"condition"`
	Fitness        int     `json:"fitness"`
	Jadedness      int     `json:"jadedness"`
	IsInjured      bool    `json:"is_injured"`
	CurrentAbility float64 `json:"current_ability"`
}

// ConditionPercentage is the condition on a 0..100 scale.
func (a *PlayerAttributes) ConditionPercentage() int {
	return a.Condition * 100 / MaxConditionValue
}

// Rest restores condition, saturating at the maximum.
func (a *PlayerAttributes) Rest(amount int) {
	a.Condition += amount
	if a.Condition > MaxConditionValue {
		a.Condition = MaxConditionValue
	}
}
