package match

import (
	"football-sim/internal/match/steering"
	"football-sim/internal/match/vector"
)

// MatchPlayer is one player in a match, starter or substitute. All mutation
// happens on the match goroutine.
type MatchPlayer struct {
	ID       int    `json:"id"`
	TeamID   int    `json:"team_id"`
	FullName string `json:"full_name"`

	Position      vector.Vector3 `json:"position"`
	StartPosition vector.Vector3 `json:"start_position"`
	Velocity      vector.Vector3 `json:"velocity"`

	Side             PlayerSide       `json:"side"`
	Skills           PlayerSkills     `json:"skills"`
	Attributes       PlayerAttributes `json:"attributes"`
	NaturalPositions []PositionType   `json:"natural_positions"`
	Tactical         TacticalPosition `json:"-"`

	State       PlayerState `json:"state"`
	InStateTime uint64      `json:"in_state_time"`
	OnField     bool        `json:"on_field"`
	SubbedOff   bool        `json:"subbed_off"`

	Statistics MatchPlayerStatistics `json:"-"`

	condAccum conditionAccumulator
	wander    steering.Wander
}

func NewMatchPlayer(id, teamID int, fullName string, skills PlayerSkills, attributes PlayerAttributes) *MatchPlayer {
	return &MatchPlayer{
		ID:         id,
		TeamID:     teamID,
		FullName:   fullName,
		Skills:     skills,
		Attributes: attributes,
		wander:     steering.Wander{Radius: 12, Jitter: 0.3, Distance: 25},
	}
}

// SetupOnField stages the player at the formation slot for the given side.
func (p *MatchPlayer) SetupOnField(position PositionType, side PlayerSide) {
	p.Side = side
	p.Tactical = NewTacticalPosition(position, side)
	p.StartPosition = BasePosition(position, side)
	p.Position = p.StartPosition
	p.Velocity = vector.Zero()
	p.State = DefaultState(position.Group())
	p.InStateTime = 0
}

// SwapSide moves the player to the opposite half and rebuilds the patrol
// route; used at half time.
func (p *MatchPlayer) SwapSide() {
	p.Side = p.Side.Opposite()
	p.StartPosition = BasePosition(p.Tactical.Current, p.Side)
	p.Position = p.StartPosition
	p.Velocity = vector.Zero()
	p.Tactical.Regenerate(p.Side, p.Position)
	p.ChangeState(DefaultState(p.Tactical.Current.Group()))
}

// ReturnToStartPosition restages the player for a kickoff.
func (p *MatchPlayer) ReturnToStartPosition() {
	p.Position = p.StartPosition
	p.Velocity = vector.Zero()
	p.ChangeState(DefaultState(p.Tactical.Current.Group()))
}

func (p *MatchPlayer) ChangeState(s PlayerState) {
	p.State = s
	p.InStateTime = 0
}

// RunForBall sends the player to collect a dead ball.
func (p *MatchPlayer) RunForBall() {
	if p.State == StateInjured || !p.OnField {
		return
	}
	p.ChangeState(StateTakeBall)
}

// SetVelocity applies a desired velocity, clamped to the player's current
// top speed and guarded against non-finite input.
func (p *MatchPlayer) SetVelocity(v vector.Vector3) {
	if !v.IsFinite() {
		v = vector.Zero()
	}
	p.Velocity = v.Limit(p.MaxSpeedWithCondition())
}

// ApplyMovement integrates one tick of movement and clamps to the field.
func (p *MatchPlayer) ApplyMovement() {
	if !p.OnField {
		return
	}
	p.Position.X = clampFloat(p.Position.X+p.Velocity.X, 0, FieldWidth)
	p.Position.Y = clampFloat(p.Position.Y+p.Velocity.Y, 0, FieldHeight)
}

func (p *MatchPlayer) MaxSpeedWithCondition() float64 {
	return p.Skills.MaxSpeedWithCondition(p.Attributes.Condition)
}

func (p *MatchPlayer) IsGoalkeeper() bool {
	return p.Tactical.Current.Group() == GroupGoalkeeper
}

// Agent is the steering view of the player.
func (p *MatchPlayer) Agent() steering.Agent {
	return steering.Agent{
		Position:     p.Position,
		Velocity:     p.Velocity,
		MaxSpeed:     p.MaxSpeedWithCondition(),
		Pace:         skillFactor(p.Skills.Physical.Pace),
		Acceleration: skillFactor(p.Skills.Physical.Acceleration),
		Agility:      skillFactor(p.Skills.Physical.Agility),
	}
}

// Wander returns the player's persistent wander behavior bound to the match
// RNG.
func (p *MatchPlayer) Wander(ctx *MatchContext) *steering.Wander {
	p.wander.Rng = ctx.Rng
	p.wander.Target = p.StartPosition
	return &p.wander
}

// Lite is the read-only projection used by query operations.
func (p *MatchPlayer) Lite() PlayerLite {
	return PlayerLite{
		ID:       p.ID,
		TeamID:   p.TeamID,
		Side:     p.Side,
		Position: p.Position,
		Velocity: p.Velocity,
		Tactical: p.Tactical.Current,
	}
}

// PlayerLite is a cheap positional snapshot of a player.
type PlayerLite struct {
	ID       int
	TeamID   int
	Side     PlayerSide
	Position vector.Vector3
	Velocity vector.Vector3
	Tactical PositionType
}

func (l PlayerLite) Group() PositionGroup {
	return l.Tactical.Group()
}
